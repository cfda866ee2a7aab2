package session

import (
	"github.com/atomicstack/darktriad/internal/background"
	"github.com/atomicstack/darktriad/internal/reveal"
)

// EventKind classifies outbox events.
type EventKind int

const (
	// EventCue reports a fired cue.
	EventCue EventKind = iota
	// EventReveal reports a visibility change.
	EventReveal
	// EventBackground reports that a background started, with Err set when
	// playback was blocked.
	EventBackground
)

func (k EventKind) String() string {
	switch k {
	case EventReveal:
		return "reveal"
	case EventBackground:
		return "background"
	default:
		return "cue"
	}
}

// Event is queued for the presentation layer.
type Event struct {
	Kind       EventKind
	SessionID  string
	Action     string
	Payload    map[string]any
	At         float64
	Visibility reveal.Visibility
	Background background.Descriptor
	Err        error
}

// Events signals that Drain has something to return. The channel has a
// single slot; one signal may cover several events.
func (s *Session) Events() <-chan struct{} {
	return s.notify
}

// push never blocks. The outbox is bounded and drops its oldest entries.
func (s *Session) push(evt Event) {
	evt.SessionID = s.DispatchID()
	s.outMu.Lock()
	s.outbox = append(s.outbox, evt)
	if over := len(s.outbox) - outboxLimit; over > 0 {
		s.outbox = append([]Event(nil), s.outbox[over:]...)
	}
	s.outMu.Unlock()
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Drain returns queued events from the current dispatch session and
// discards the rest.
func (s *Session) Drain() []Event {
	current := s.DispatchID()
	s.outMu.Lock()
	queued := s.outbox
	s.outbox = nil
	s.outMu.Unlock()
	out := make([]Event, 0, len(queued))
	for _, evt := range queued {
		if evt.SessionID != current {
			continue
		}
		out = append(out, evt)
	}
	return out
}
