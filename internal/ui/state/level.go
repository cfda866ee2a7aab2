package state

// Level holds a filterable list: the full item set, the filtered view, the
// filter text with its edit cursor, the selection cursor and the viewport.
type Level struct {
	ID             string
	Title          string
	Items          []Item
	Full           []Item
	Filter         string
	FilterCursor   int
	Cursor         int
	ViewportOffset int
}

// NewLevel constructs a Level with the cursor on the first item.
func NewLevel(id, title string, items []Item) *Level {
	l := &Level{ID: id, Title: title}
	l.UpdateItems(items)
	return l
}

// IndexOf returns the filtered index for an item id, or -1.
func (l *Level) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Focus moves the cursor onto id when it is visible.
func (l *Level) Focus(id string) bool {
	idx := l.IndexOf(id)
	if idx < 0 {
		return false
	}
	l.Cursor = idx
	return true
}

// Selected returns the item under the cursor.
func (l *Level) Selected() (Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[l.Cursor], true
}

// UpdateItems replaces the item set, keeping the cursor on the same id when
// it survives.
func (l *Level) UpdateItems(items []Item) {
	var keep string
	if item, ok := l.Selected(); ok {
		keep = item.ID
	}
	l.Full = CloneItems(items)
	l.applyFilter()
	if !l.Focus(keep) && l.Cursor >= len(l.Items) {
		l.Cursor = 0
	}
	if l.ViewportOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
	}
}
