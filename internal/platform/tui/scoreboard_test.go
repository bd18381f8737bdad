package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cat-tunnel/internal/registry"
	"github.com/vovakirdan/cat-tunnel/internal/storage"
)

func init() {
	registry.Register("recording", func() registry.Game { return &recordingGame{} })
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestScoreboardTogglesRecentRuns(t *testing.T) {
	store := openTestStore(t)
	for _, score := range []int{12, 40} {
		if _, err := store.SaveRun(storage.Run{GameID: "recording", Seed: 987654, Score: score}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	view := m.View()
	if !strings.Contains(view, "HIGH SCORES") || !strings.Contains(view, "best 40") {
		t.Errorf("top scores view missing title or summary:\n%s", view)
	}

	next, _ := m.Update(runeKey('r'))
	m = next.(ScoreboardModel)
	view = m.View()
	if !strings.Contains(view, "RECENT RUNS") || !strings.Contains(view, "987654") {
		t.Errorf("recent runs view missing title or seed:\n%s", view)
	}
}

func TestScoreboardEmbeddedBackDoesNotQuit(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	m.embedded = true

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil {
		t.Error("embedded scoreboard must not quit the program")
	}
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("expected going back")
	}
}

func TestMenuShowsStats(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(storage.Run{GameID: "recording", Seed: 1, Score: 33}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	m := NewMenuModel(store, coreConfig(80, 24))
	var item *MenuItem
	for i := range m.items {
		if m.items[i].GameID == "recording" {
			item = &m.items[i]
		}
	}
	if item == nil {
		t.Fatal("registered mode missing from menu")
	}
	if item.HighScore != 33 || item.Plays != 1 {
		t.Errorf("item = %+v, want best 33 and 1 run", *item)
	}
}
