package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cat-tunnel/internal/core"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{runeKey('a'), core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{runeKey('d'), core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionJump, false},
		{runeKey('w'), core.ActionJump, false},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump, false},
		{runeKey('p'), core.ActionPause, false},
		{runeKey('r'), core.ActionRestart, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{runeKey('q'), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runeKey('x'), core.ActionNone, false},
	}
	for _, tt := range tests {
		action, quit := km.MapKey(tt.msg)
		if action != tt.action || quit != tt.quit {
			t.Errorf("MapKey(%q) = (%v, %v), want (%v, %v)", tt.msg.String(), action, quit, tt.action, tt.quit)
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	if got := km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}); got != MenuActionScoreboard {
		t.Errorf("tab = %v, want scoreboard", got)
	}
	if got := km.MapKeyToMenuAction(runeKey('j')); got != MenuActionDown {
		t.Errorf("j = %v, want down", got)
	}
	if got := km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEnter}); got != MenuActionSelect {
		t.Errorf("enter = %v, want select", got)
	}
}

func fill(h *HoldTracker) core.InputFrame {
	f := core.NewInputFrame()
	h.Fill(&f)
	return f
}

func TestHoldTrackerPressThenHold(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	h := newHoldTrackerWithClock(500*time.Millisecond, 120*time.Millisecond, clk.now)

	h.Key(core.ActionRight)
	f := fill(h)
	if !f.Has(core.ActionRight) || !f.Held(core.ActionRight) {
		t.Fatal("first key event should be a press")
	}

	// Still held inside the initial window, but not pressed again
	clk.advance(400 * time.Millisecond)
	f = fill(h)
	if f.Has(core.ActionRight) || !f.Held(core.ActionRight) {
		t.Error("expected held without press inside initial window")
	}

	// Released after the window
	clk.advance(200 * time.Millisecond)
	f = fill(h)
	if f.Held(core.ActionRight) {
		t.Error("expected release after initial window")
	}
	if h.Held(core.ActionRight) {
		t.Error("Held() should agree with the frame")
	}
}

func TestHoldTrackerRepeatsAreNotPresses(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	h := newHoldTrackerWithClock(500*time.Millisecond, 120*time.Millisecond, clk.now)

	h.Key(core.ActionRight)
	if !fill(h).Has(core.ActionRight) {
		t.Fatal("expected press")
	}

	// Auto-repeat stream keeps the key held for as long as it arrives
	clk.advance(450 * time.Millisecond)
	for i := 0; i < 20; i++ {
		h.Key(core.ActionRight)
		f := fill(h)
		if f.Has(core.ActionRight) {
			t.Fatalf("repeat %d reported as a new press", i)
		}
		if !f.Held(core.ActionRight) {
			t.Fatalf("repeat %d not held", i)
		}
		clk.advance(50 * time.Millisecond)
	}

	// Repeats stop: the hold decays after the repeat window
	clk.advance(200 * time.Millisecond)
	if fill(h).Held(core.ActionRight) {
		t.Error("expected release after repeats stop")
	}

	// The next event is a fresh press
	h.Key(core.ActionRight)
	if !fill(h).Has(core.ActionRight) {
		t.Error("expected a new press after release")
	}
}

func TestHoldTrackerRepeatDoesNotShortenInitialWindow(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	h := newHoldTrackerWithClock(500*time.Millisecond, 120*time.Millisecond, clk.now)

	h.Key(core.ActionLeft)
	clk.advance(10 * time.Millisecond)
	h.Key(core.ActionLeft)
	clk.advance(300 * time.Millisecond)
	if !h.Held(core.ActionLeft) {
		t.Error("repeat shortened the initial hold")
	}
}

func TestHoldTrackerQuickJumpTaps(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	h := newHoldTrackerWithClock(500*time.Millisecond, 120*time.Millisecond, clk.now)

	h.Key(core.ActionJump)
	if !fill(h).Has(core.ActionJump) {
		t.Fatal("first tap should be a press")
	}

	// A second tap well inside the movement window is its own press
	clk.advance(300 * time.Millisecond)
	h.Key(core.ActionJump)
	if !fill(h).Has(core.ActionJump) {
		t.Error("second tap was merged into the first")
	}

	// Auto-repeat right after a press still merges
	clk.advance(40 * time.Millisecond)
	h.Key(core.ActionJump)
	f := fill(h)
	if f.Has(core.ActionJump) || !f.Held(core.ActionJump) {
		t.Error("fast repeat should extend the hold, not press again")
	}
}

func TestHoldTrackerJumpWindowNotBelowRepeat(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	h := newHoldTrackerWithClock(500*time.Millisecond, 200*time.Millisecond, clk.now)

	h.Key(core.ActionJump)
	clk.advance(180 * time.Millisecond)
	if !h.Held(core.ActionJump) {
		t.Error("jump window shorter than the repeat window")
	}
}

func TestHoldTrackerPressSurvivesLateFrame(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	h := newHoldTrackerWithClock(500*time.Millisecond, 120*time.Millisecond, clk.now)

	h.Key(core.ActionJump)
	clk.advance(time.Second)
	if !fill(h).Has(core.ActionJump) {
		t.Error("a press must reach one frame even if the frame is late")
	}
	if fill(h).Held(core.ActionJump) {
		t.Error("expired press should not stay held")
	}
}

func TestHoldTrackerReset(t *testing.T) {
	h := NewHoldTracker(0, 0)
	h.Key(core.ActionLeft)
	h.Reset()
	f := fill(h)
	if f.Held(core.ActionLeft) || f.Has(core.ActionLeft) {
		t.Error("Reset should release everything")
	}
}
