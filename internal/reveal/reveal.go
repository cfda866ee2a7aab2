// Package reveal tracks which gated UI regions are visible. A region whose
// reveal action appears in the cue list starts hidden and becomes visible the
// first time that action fires. Regions never hide again within a session.
package reveal

import (
	"sync"

	"github.com/atomicstack/darktriad/internal/timeline"
)

const (
	ActionNav     = "reveal.nav"
	ActionButtons = "reveal.buttons"
)

// Region is a gated UI area.
type Region int

const (
	RegionNav Region = iota
	RegionButtons
)

// Action returns the cue action that reveals the region.
func (r Region) Action() string {
	if r == RegionButtons {
		return ActionButtons
	}
	return ActionNav
}

func (r Region) String() string {
	if r == RegionButtons {
		return "buttons"
	}
	return "nav"
}

// Visibility is a snapshot of both regions.
type Visibility struct {
	Nav     bool `json:"nav"`
	Buttons bool `json:"buttons"`
}

// Machine is safe for concurrent use. Observers run synchronously after the
// state changed and must not block.
type Machine struct {
	mu        sync.Mutex
	vis       Visibility
	observers map[int]func(Visibility)
	nextID    int
}

func New(cues []timeline.Cue) *Machine {
	m := &Machine{observers: make(map[int]func(Visibility))}
	m.vis = derive(cues)
	return m
}

func derive(cues []timeline.Cue) Visibility {
	return Visibility{
		Nav:     !timeline.Contains(cues, ActionNav),
		Buttons: !timeline.Contains(cues, ActionButtons),
	}
}

// Reset re-derives visibility from a new cue list.
func (m *Machine) Reset(cues []timeline.Cue) {
	m.mu.Lock()
	prev := m.vis
	m.vis = derive(cues)
	next := m.vis
	observers := m.observersLocked()
	m.mu.Unlock()
	if prev != next {
		notify(observers, next)
	}
}

// Handle applies a fired action. It reports whether visibility changed;
// unknown actions are ignored.
func (m *Machine) Handle(action string, _ map[string]any) bool {
	m.mu.Lock()
	changed := false
	switch action {
	case ActionNav:
		if !m.vis.Nav {
			m.vis.Nav = true
			changed = true
		}
	case ActionButtons:
		if !m.vis.Buttons {
			m.vis.Buttons = true
			changed = true
		}
	}
	next := m.vis
	var observers []func(Visibility)
	if changed {
		observers = m.observersLocked()
	}
	m.mu.Unlock()
	if changed {
		notify(observers, next)
	}
	return changed
}

func (m *Machine) Visibility() Visibility {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vis
}

// Visible reports the visibility of one region.
func (m *Machine) Visible(r Region) bool {
	vis := m.Visibility()
	if r == RegionButtons {
		return vis.Buttons
	}
	return vis.Nav
}

// Subscribe registers fn for visibility changes.
func (m *Machine) Subscribe(fn func(Visibility)) (cancel func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.observers[id] = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.observers, id)
		m.mu.Unlock()
	}
}

func (m *Machine) observersLocked() []func(Visibility) {
	out := make([]func(Visibility), 0, len(m.observers))
	for i := 0; i < m.nextID; i++ {
		if fn, ok := m.observers[i]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func notify(observers []func(Visibility), vis Visibility) {
	for _, fn := range observers {
		fn(vis)
	}
}
