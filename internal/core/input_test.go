package core

import "testing"

func TestInputFramePressedImpliesHeld(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionJump)

	if !f.Has(ActionJump) || !f.Held(ActionJump) {
		t.Error("a pressed action should be both pressed and held")
	}
	if f.Has(ActionLeft) || f.Held(ActionLeft) {
		t.Error("untouched action should be neither pressed nor held")
	}
}

func TestInputFrameHoldOnly(t *testing.T) {
	f := NewInputFrame()
	f.Hold(ActionRight)

	if f.Has(ActionRight) {
		t.Error("a held action is not newly pressed")
	}
	if !f.Held(ActionRight) {
		t.Error("Held() should report a held action")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionJump) || f.Held(ActionJump) {
		t.Error("zero frame should report nothing")
	}
	f.Set(ActionJump)
	if !f.Has(ActionJump) {
		t.Error("Set on a zero frame should allocate")
	}
}

func TestInputFrameClearAndClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionJump)
	f.Hold(ActionLeft)

	c := f.Clone()
	f.Clear()

	if f.Held(ActionLeft) || f.Has(ActionJump) {
		t.Error("Clear should drop pressed and held actions")
	}
	if !c.Has(ActionJump) || !c.Held(ActionLeft) {
		t.Error("Clone should be independent of the original")
	}
}

func TestActionString(t *testing.T) {
	if ActionLeft.String() != "Left" || Action(99).String() != "Unknown" {
		t.Error("unexpected action names")
	}
}
