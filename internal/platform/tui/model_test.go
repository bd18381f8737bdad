package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cat-tunnel/internal/core"
	"github.com/vovakirdan/cat-tunnel/internal/storage"
)

// recordingGame records every frame it is stepped with.
type recordingGame struct {
	frames []core.InputFrame
	resets int
	state  core.GameState
	overAt int // Step count that ends the game; 0 never
}

func (g *recordingGame) ID() string    { return "recording" }
func (g *recordingGame) Title() string { return "Recording" }

func (g *recordingGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.frames = nil
	g.state = core.GameState{}
}

func (g *recordingGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	g.state.Ticks++
	g.state.Score = len(g.frames)
	if g.overAt > 0 && len(g.frames) >= g.overAt {
		g.state.GameOver = true
	}
	return core.StepResult{State: g.state}
}

func (g *recordingGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "recording")
}

func (g *recordingGame) State() core.GameState { return g.state }

func (g *recordingGame) MaxSpeed() float64 { return 7.5 }

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func TestModelDeliversPressOnce(t *testing.T) {
	g := &recordingGame{}
	m := NewModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1}, ModelOptions{})
	m.Init()

	m = step(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = step(t, m, TickMsg{})
	m = step(t, m, TickMsg{})

	if len(g.frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(g.frames))
	}
	if !g.frames[0].Has(core.ActionJump) {
		t.Error("first frame should carry the jump press")
	}
	if g.frames[1].Has(core.ActionJump) {
		t.Error("second frame must not repeat the press")
	}
	if !g.frames[1].Held(core.ActionJump) {
		t.Error("jump should still be held right after the press")
	}
}

func TestModelCommandsAreOneShot(t *testing.T) {
	g := &recordingGame{}
	m := NewModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, Seed: 1}, ModelOptions{})
	m.Init()

	m = step(t, m, runeKey('p'))
	m = step(t, m, TickMsg{})
	m = step(t, m, TickMsg{})

	if !g.frames[0].Has(core.ActionPause) || g.frames[1].Has(core.ActionPause) {
		t.Error("pause should reach exactly one frame")
	}
}

func TestModelSavesRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &recordingGame{overAt: 3}
	m := NewModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, Seed: 77}, ModelOptions{Store: store, Player: "tester"})
	m.Init()

	for i := 0; i < 6; i++ {
		m = step(t, m, TickMsg{})
	}
	if !m.State().GameOver {
		t.Fatal("expected game over")
	}

	runs, err := store.RecentRuns("recording", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected exactly one saved run, got %d", len(runs))
	}
	if runs[0].Seed != 77 || runs[0].Player != "tester" || runs[0].MaxSpeed != 7.5 {
		t.Errorf("unexpected run: %+v", runs[0])
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	g := &recordingGame{overAt: 1}
	m := NewModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, Seed: 5}, ModelOptions{})
	m.Init()

	m = step(t, m, TickMsg{})
	if !m.State().GameOver {
		t.Fatal("expected game over")
	}

	m = step(t, m, runeKey('r'))
	m = step(t, m, TickMsg{})
	if g.resets != 2 {
		t.Errorf("expected a second reset, got %d", g.resets)
	}
	if m.State().GameOver {
		t.Error("restart should clear game over")
	}
}

func TestModelBackToMenu(t *testing.T) {
	g := &recordingGame{}
	m := NewModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, Seed: 5}, ModelOptions{Embedded: true})
	m.Init()

	// Back is ignored while playing
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("back must not leave a running game")
	}

	g.state.Paused = true
	m = step(t, m, TickMsg{})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back should leave a paused game")
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	g := &recordingGame{}
	m := NewModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, Seed: 5}, ModelOptions{})
	m.Init()
	m = step(t, m, TickMsg{})

	m = step(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	if g.resets != 1 {
		t.Error("resize must not reset the game")
	}
	if m.screen.Width() != 60 || m.screen.Height() != 20 {
		t.Errorf("screen not resized: %dx%d", m.screen.Width(), m.screen.Height())
	}
	if !strings.Contains(m.View(), "recording") {
		t.Error("view should show the game")
	}
}

func TestRenderScreenKeepsWidth(t *testing.T) {
	s := core.NewScreen(20, 3)
	s.DrawTextColored(0, 0, "score", core.ColorBrightWhite)
	s.SetColored(10, 1, '█', core.ColorBrightGreen)
	s.SetColored(11, 1, '▓', core.ColorGreen)
	s.SetColored(15, 1, '●', core.ColorOrange)

	lines := strings.Split(RenderScreen(s), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, l := range lines {
		if w := lipgloss.Width(l); w != 20 {
			t.Errorf("line %d width = %d, want 20", i, w)
		}
	}
	if !strings.Contains(lines[0], "score") {
		t.Error("text lost in rendering")
	}
}

func coreConfig(w, h int) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: w, ScreenH: h, TickRate: 60, Seed: 1}
}
