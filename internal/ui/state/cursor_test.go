package state

import "testing"

func newTestLevel(ids ...string) *Level {
	items := make([]Item, len(ids))
	for i, id := range ids {
		items[i] = Item{ID: id, Label: id}
	}
	return NewLevel("test", "Test", items)
}

func TestMoveCursorWraps(t *testing.T) {
	l := newTestLevel("a", "b", "c")
	if !l.MoveCursor(-1) || l.Cursor != 2 {
		t.Fatalf("expected wrap to last, got %d", l.Cursor)
	}
	if !l.MoveCursor(1) || l.Cursor != 0 {
		t.Fatalf("expected wrap to first, got %d", l.Cursor)
	}

	empty := newTestLevel()
	empty.Cursor = 4
	if empty.MoveCursor(1) || empty.Cursor != 0 {
		t.Fatalf("expected empty level to reset cursor, got %d", empty.Cursor)
	}
}

func TestMoveCursorHomeAndEnd(t *testing.T) {
	l := newTestLevel("a", "b", "c")
	if !l.MoveCursorEnd() || l.Cursor != 2 {
		t.Fatalf("expected cursor at end, got %d", l.Cursor)
	}
	if l.MoveCursorEnd() {
		t.Fatalf("expected no movement when already at end")
	}
	if !l.MoveCursorHome() || l.Cursor != 0 {
		t.Fatalf("expected cursor at start, got %d", l.Cursor)
	}
}

func TestEnsureCursorVisible(t *testing.T) {
	l := newTestLevel("a", "b", "c", "d", "e")
	l.Cursor = 4
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 3 {
		t.Fatalf("expected offset 3, got %d", l.ViewportOffset)
	}
	if rows := l.Visible(2); len(rows) != 2 || rows[1].ID != "e" {
		t.Fatalf("unexpected visible rows %+v", rows)
	}
	l.Cursor = 0
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 0 {
		t.Fatalf("expected offset 0, got %d", l.ViewportOffset)
	}
}

func TestUpdateItemsKeepsSelection(t *testing.T) {
	l := newTestLevel("a", "b", "c")
	l.Cursor = 1
	l.UpdateItems([]Item{{ID: "z", Label: "z"}, {ID: "b", Label: "b"}})
	if item, ok := l.Selected(); !ok || item.ID != "b" {
		t.Fatalf("expected cursor to follow b, got %+v", item)
	}
	l.UpdateItems([]Item{{ID: "q", Label: "q"}})
	if l.Cursor != 0 {
		t.Fatalf("expected cursor reset, got %d", l.Cursor)
	}
}
