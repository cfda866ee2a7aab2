package state

// Item is one selectable row of a Level.
type Item struct {
	ID    string
	Label string
	// Detail is matched by the filter but rendered dimmed.
	Detail string
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
