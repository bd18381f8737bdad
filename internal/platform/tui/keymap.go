package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cat-tunnel/internal/core"
)

// Default hold windows. Terminals send a key once, wait for the keyboard's
// repeat delay, then repeat quickly; the windows cover both gaps.
//
// Jump uses a shorter initial window so that two quick taps are two presses.
// Holding jump then yields one extra press when auto-repeat starts.
const (
	DefaultInitialHold = 500 * time.Millisecond
	DefaultRepeatHold  = 120 * time.Millisecond
	DefaultJumpHold    = 150 * time.Millisecond
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case " ", "space", "w", "up":
		return core.ActionJump, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// IsHoldable reports whether an action is tracked as a held button rather
// than a one-shot command.
func IsHoldable(a core.Action) bool {
	return a == core.ActionLeft || a == core.ActionRight || a == core.ActionJump
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}

// HoldTracker emulates held buttons on top of terminal key events, which
// carry no release. The first event for an action is a press and keeps the
// action held for the initial window; every further event while it is held
// is a repeat and extends the hold by the repeat window. Once a window runs
// out the action is released and the next event is a new press.
type HoldTracker struct {
	initial time.Duration
	jump    time.Duration // initial window for ActionJump
	repeat  time.Duration
	now     func() time.Time

	until   map[core.Action]time.Time
	pressed map[core.Action]bool // New presses not yet delivered to a frame
}

// NewHoldTracker creates a tracker using the wall clock.
func NewHoldTracker(initial, repeat time.Duration) *HoldTracker {
	return newHoldTrackerWithClock(initial, repeat, time.Now)
}

func newHoldTrackerWithClock(initial, repeat time.Duration, now func() time.Time) *HoldTracker {
	if initial <= 0 {
		initial = DefaultInitialHold
	}
	if repeat <= 0 {
		repeat = DefaultRepeatHold
	}
	jump := max(min(initial, DefaultJumpHold), repeat)
	return &HoldTracker{
		initial: initial,
		jump:    jump,
		repeat:  repeat,
		now:     now,
		until:   make(map[core.Action]time.Time),
		pressed: make(map[core.Action]bool),
	}
}

// Key records a key event for an action.
func (h *HoldTracker) Key(a core.Action) {
	now := h.now()
	if until, ok := h.until[a]; ok && now.Before(until) {
		if next := now.Add(h.repeat); next.After(until) {
			h.until[a] = next
		}
		return
	}
	window := h.initial
	if a == core.ActionJump {
		window = h.jump
	}
	h.until[a] = now.Add(window)
	h.pressed[a] = true
}

// Held reports whether an action is currently held.
func (h *HoldTracker) Held(a core.Action) bool {
	until, ok := h.until[a]
	return ok && h.now().Before(until)
}

// Fill writes this frame's button states into f: actions pressed since the
// last call are marked pressed, the rest that are still within their window
// are marked held. Expired actions are released.
func (h *HoldTracker) Fill(f *core.InputFrame) {
	now := h.now()
	for a, until := range h.until {
		if !now.Before(until) && !h.pressed[a] {
			delete(h.until, a)
			continue
		}
		if h.pressed[a] {
			f.Set(a)
		} else {
			f.Hold(a)
		}
	}
	clear(h.pressed)
}

// Reset releases every action.
func (h *HoldTracker) Reset() {
	clear(h.until)
	clear(h.pressed)
}
