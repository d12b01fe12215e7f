package app

import "testing"

func mustSelected(t *testing.T, c Cursor, want int) {
	t.Helper()
	got, ok := c.Selected()
	if !ok {
		t.Fatalf("expected cursor at %d, got unset", want)
	}
	if got != want {
		t.Fatalf("expected cursor at %d, got %d", want, got)
	}
}

func TestCursorMovesWithinBounds(t *testing.T) {
	var c Cursor
	if _, ok := c.Selected(); ok {
		t.Fatalf("expected zero cursor to be unset")
	}

	c.Next(3)
	mustSelected(t, c, 0)
	c.Next(3)
	c.Next(3)
	c.Next(3)
	mustSelected(t, c, 2)

	c.Prev(3)
	mustSelected(t, c, 1)
	c.First(3)
	c.Prev(3)
	mustSelected(t, c, 0)

	c.Last(3)
	mustSelected(t, c, 2)
}

func TestCursorUnsetPrevLandsOnLast(t *testing.T) {
	var c Cursor
	c.Prev(4)
	mustSelected(t, c, 3)
}

func TestCursorClamp(t *testing.T) {
	var c Cursor
	c.Select(5, 10)
	c.Clamp(3)
	mustSelected(t, c, 2)

	c.Clamp(0)
	if _, ok := c.Selected(); ok {
		t.Fatalf("expected cursor unset on empty list")
	}

	c.Clamp(5)
	if _, ok := c.Selected(); ok {
		t.Fatalf("expected clamp to keep an unset cursor unset")
	}
}

func TestCursorEmptyListStaysUnset(t *testing.T) {
	var c Cursor
	c.Next(0)
	c.Prev(0)
	c.Last(0)
	if _, ok := c.Selected(); ok {
		t.Fatalf("expected cursor unset on empty list")
	}
}
