package timeline

import (
	"errors"
	"math"
	"sync"

	"github.com/atomicstack/darktriad/internal/logging/events"
	"github.com/atomicstack/darktriad/internal/playback"
)

// State is the dispatcher lifecycle position.
type State int

const (
	StateIdle State = iota
	StateArmed
	StateDraining
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateArmed:
		return "armed"
	case StateDraining:
		return "draining"
	case StateExhausted:
		return "exhausted"
	default:
		return "idle"
	}
}

// ErrNotLoaded is returned by Attach before any cue list was loaded.
var ErrNotLoaded = errors.New("no cue list loaded")

// Fired describes one dispatched cue.
type Fired struct {
	Cue
	BackgroundID string
	Generation   uint64
	T            float64
}

// Handler receives fired cues. It runs while the dispatcher lock is held and
// must not call back into the Dispatcher.
type Handler func(Fired)

// Dispatcher fires each distinct cue action at most once per session, in
// ascending time order, as clock ticks arrive. A session ends when the
// background is reset, the cue list is replaced, or the source is detached.
type Dispatcher struct {
	handler Handler
	metrics *metrics

	mu           sync.Mutex
	cues         []Cue
	actions      map[string]struct{}
	fired        map[string]struct{}
	state        State
	backgroundID string
	generation   uint64
	unsubscribe  func()
}

func NewDispatcher(handler Handler) *Dispatcher {
	return &Dispatcher{
		handler: handler,
		metrics: newMetrics(),
		fired:   make(map[string]struct{}),
		actions: make(map[string]struct{}),
	}
}

// Load replaces the cue list, detaches any source and re-arms.
func (d *Dispatcher) Load(cues []Cue) error {
	if err := Validate(cues); err != nil {
		return err
	}
	sorted := Sorted(cues)
	d.mu.Lock()
	unsub := d.detachLocked()
	d.cues = sorted
	d.actions = make(map[string]struct{}, len(sorted))
	for _, cue := range sorted {
		d.actions[cue.Action] = struct{}{}
	}
	d.fired = make(map[string]struct{})
	d.state = StateArmed
	bg := d.backgroundID
	d.mu.Unlock()
	if unsub != nil {
		unsub()
	}
	d.metrics.reset(bg, "cues")
	events.Cue.Reset(bg, len(sorted))
	return nil
}

// Reset starts a new session for backgroundID: the source is detached and
// the fired set cleared.
func (d *Dispatcher) Reset(backgroundID string) {
	d.mu.Lock()
	unsub := d.detachLocked()
	d.backgroundID = backgroundID
	d.fired = make(map[string]struct{})
	if d.state != StateIdle {
		d.state = StateArmed
	}
	cues := len(d.cues)
	d.mu.Unlock()
	if unsub != nil {
		unsub()
	}
	d.metrics.reset(backgroundID, "background")
	events.Cue.Reset(backgroundID, cues)
}

// Attach subscribes to src. Any previously attached source is detached
// first. Ticks from a source that has since been detached are ignored.
func (d *Dispatcher) Attach(src playback.Source) error {
	d.mu.Lock()
	if d.state == StateIdle {
		d.mu.Unlock()
		return ErrNotLoaded
	}
	prev := d.detachLocked()
	d.generation++
	gen := d.generation
	if d.state == StateArmed {
		d.state = StateDraining
	}
	d.settleLocked()
	bg := d.backgroundID
	d.mu.Unlock()
	if prev != nil {
		prev()
	}
	events.Cue.Attach(bg, gen)

	unsub := src.Subscribe(func(t float64) {
		d.tick(gen, t)
	})

	d.mu.Lock()
	if d.generation != gen {
		d.mu.Unlock()
		unsub()
		return nil
	}
	d.unsubscribe = unsub
	d.mu.Unlock()
	return nil
}

// Detach stops the current source. Once Detach returns no handler call for
// the detached source is running or will run.
func (d *Dispatcher) Detach() {
	d.mu.Lock()
	unsub := d.detachLocked()
	d.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// detachLocked invalidates the current generation and hands back the
// unsubscribe function, which the caller invokes after releasing the lock.
func (d *Dispatcher) detachLocked() func() {
	if d.unsubscribe == nil && d.state != StateDraining {
		return nil
	}
	events.Cue.Detach(d.backgroundID, d.generation)
	d.generation++
	unsub := d.unsubscribe
	d.unsubscribe = nil
	if d.state == StateDraining {
		d.state = StateArmed
	}
	return unsub
}

// Tick dispatches against the current session regardless of source and
// returns the cues it fired.
func (d *Dispatcher) Tick(t float64) []Fired {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == StateArmed {
		d.state = StateDraining
	}
	return d.fireLocked(t)
}

func (d *Dispatcher) tick(gen uint64, t float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.generation {
		events.Cue.Stale(gen, d.generation)
		return
	}
	d.fireLocked(t)
}

func (d *Dispatcher) fireLocked(t float64) []Fired {
	if d.state != StateArmed && d.state != StateDraining {
		return nil
	}
	if math.IsNaN(t) {
		return nil
	}
	var out []Fired
	for _, cue := range d.cues {
		if cue.At > t {
			break
		}
		if _, done := d.fired[cue.Action]; done {
			continue
		}
		d.fired[cue.Action] = struct{}{}
		f := Fired{Cue: cue, BackgroundID: d.backgroundID, Generation: d.generation, T: t}
		events.Cue.Fire(d.backgroundID, cue.Action, cue.At, t)
		d.metrics.dispatch(d.backgroundID, cue.Action)
		if d.handler != nil {
			d.handler(f)
		}
		out = append(out, f)
	}
	d.settleLocked()
	return out
}

func (d *Dispatcher) settleLocked() {
	if d.state != StateDraining {
		return
	}
	if len(d.fired) >= len(d.actions) {
		d.state = StateExhausted
		events.Cue.Exhausted(d.backgroundID)
	}
}

func (d *Dispatcher) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Dispatcher) BackgroundID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.backgroundID
}

// Generation identifies the current source attachment.
func (d *Dispatcher) Generation() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.generation
}

// HasFired reports whether action fired in the current session.
func (d *Dispatcher) HasFired(action string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.fired[action]
	return ok
}

// Cues returns the loaded cue list in dispatch order.
func (d *Dispatcher) Cues() []Cue {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Clone(d.cues)
}
