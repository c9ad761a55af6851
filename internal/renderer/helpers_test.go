package renderer

import "testing"

func TestUnwindRunsNewestFirst(t *testing.T) {
	var u Unwind
	var order []int

	u.Add(func() { order = append(order, 1) })
	u.Add(func() { order = append(order, 2) })
	u.Unwind()

	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Errorf("Cleanups should run newest first, got %v", order)
	}

	// A second unwind must be a no-op
	u.Unwind()
	if len(order) != 2 {
		t.Error("Unwind should clear the list after running")
	}
}

func TestUnwindDiscard(t *testing.T) {
	var u Unwind
	ran := false

	u.Add(func() { ran = true })
	u.Discard()
	u.Unwind()

	if ran {
		t.Error("Discarded cleanups should not run")
	}
}
