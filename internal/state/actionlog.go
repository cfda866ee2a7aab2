package state

import "sync"

// DefaultActionLogSize is how many entries the presentation keeps.
const DefaultActionLogSize = 12

// ActionLog is a bounded, newest-first record of user and timeline actions.
type ActionLog interface {
	Entries() []string
	Latest(n int) []string
	Push(entry string)
	Clear()
}

type actionLog struct {
	mu      sync.Mutex
	limit   int
	entries []string
}

func NewActionLog(limit int) ActionLog {
	if limit <= 0 {
		limit = DefaultActionLogSize
	}
	return &actionLog{limit: limit}
}

func (l *actionLog) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneEntries(l.entries)
}

// Latest returns at most n entries, newest first.
func (l *actionLog) Latest(n int) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n > len(l.entries) {
		n = len(l.entries)
	}
	if n <= 0 {
		return nil
	}
	return cloneEntries(l.entries[:n])
}

func (l *actionLog) Push(entry string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	next := make([]string, 0, l.limit)
	next = append(next, entry)
	for _, e := range l.entries {
		if len(next) == l.limit {
			break
		}
		next = append(next, e)
	}
	l.entries = next
}

func (l *actionLog) Clear() {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()
}

func cloneEntries(entries []string) []string {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]string, len(entries))
	copy(dup, entries)
	return dup
}
