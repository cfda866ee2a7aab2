package timeline

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/atomicstack/darktriad/internal/playback"
)

// manualSource hands the subscriber callback back to the test.
type manualSource struct {
	mu           sync.Mutex
	onTick       func(float64)
	unsubscribed bool
}

func (m *manualSource) Subscribe(onTick func(float64)) func() {
	m.mu.Lock()
	m.onTick = onTick
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		m.unsubscribed = true
		m.mu.Unlock()
	}
}

func (m *manualSource) emit(t float64) {
	m.mu.Lock()
	fn := m.onTick
	m.mu.Unlock()
	fn(t)
}

type recorder struct {
	mu      sync.Mutex
	actions []string
	times   []float64
}

func (r *recorder) handle(f Fired) {
	r.mu.Lock()
	r.actions = append(r.actions, f.Action)
	r.times = append(r.times, f.At)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.actions...)
}

func newLoaded(t *testing.T, cues []Cue) (*Dispatcher, *recorder) {
	t.Helper()
	rec := &recorder{}
	d := NewDispatcher(rec.handle)
	if err := d.Load(cues); err != nil {
		t.Fatalf("load: %v", err)
	}
	d.Reset("hero1")
	return d, rec
}

func TestSortedIsStable(t *testing.T) {
	cues := []Cue{{At: 2, Action: "b"}, {At: 1, Action: "a1"}, {At: 1, Action: "a2"}, {At: 0, Action: "z"}}
	got := Sorted(cues)
	want := []string{"z", "a1", "a2", "b"}
	for i, cue := range got {
		if cue.Action != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], cue.Action)
		}
	}
	if cues[0].Action != "b" {
		t.Fatalf("Sorted must not reorder its input")
	}
}

func TestValidateRejectsBadCues(t *testing.T) {
	if err := Validate([]Cue{{At: -1, Action: "x"}}); !errors.Is(err, ErrNegativeAt) {
		t.Fatalf("expected ErrNegativeAt, got %v", err)
	}
	if err := Validate([]Cue{{At: 1}}); !errors.Is(err, ErrEmptyAction) {
		t.Fatalf("expected ErrEmptyAction, got %v", err)
	}
}

func TestTickFiresInOrderAtMostOnce(t *testing.T) {
	d, rec := newLoaded(t, []Cue{
		{At: 3, Action: "c"},
		{At: 1, Action: "a"},
		{At: 2, Action: "b"},
		{At: 4, Action: "a"},
	})
	src := &manualSource{}
	if err := d.Attach(src); err != nil {
		t.Fatalf("attach: %v", err)
	}
	src.emit(0.5)
	src.emit(2.5)
	src.emit(2.5)
	src.emit(10)
	got := rec.snapshot()
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	for i := 1; i < len(rec.times); i++ {
		if rec.times[i] < rec.times[i-1] {
			t.Fatalf("cue times must be non-decreasing: %v", rec.times)
		}
	}
	if d.State() != StateExhausted {
		t.Fatalf("expected exhausted, got %s", d.State())
	}
}

func TestLateFirstTickFiresAllDueCues(t *testing.T) {
	d, rec := newLoaded(t, []Cue{{At: 0, Action: "reveal.nav"}, {At: 2, Action: "reveal.buttons"}})
	src := &manualSource{}
	_ = d.Attach(src)
	src.emit(5)
	if got := rec.snapshot(); len(got) != 2 || got[0] != "reveal.nav" || got[1] != "reveal.buttons" {
		t.Fatalf("expected both reveals in order, got %v", got)
	}
}

func TestResetAllowsRefire(t *testing.T) {
	d, rec := newLoaded(t, []Cue{{At: 0, Action: "reveal.nav"}})
	src := &manualSource{}
	_ = d.Attach(src)
	src.emit(1)
	d.Reset("hero2")
	if d.HasFired("reveal.nav") {
		t.Fatalf("reset must clear fired actions")
	}
	if d.State() != StateArmed {
		t.Fatalf("expected armed after reset, got %s", d.State())
	}
	next := &manualSource{}
	_ = d.Attach(next)
	next.emit(1)
	if got := rec.snapshot(); len(got) != 2 {
		t.Fatalf("expected cue to fire again after reset, got %v", got)
	}
}

func TestDetachedSourceCannotFire(t *testing.T) {
	d, rec := newLoaded(t, []Cue{{At: 1, Action: "reveal.buttons"}})
	src := &manualSource{}
	_ = d.Attach(src)
	d.Detach()
	if !src.unsubscribed {
		t.Fatalf("expected source to be unsubscribed")
	}
	src.emit(5)
	if got := rec.snapshot(); len(got) != 0 {
		t.Fatalf("late tick fired %v", got)
	}
}

func TestReattachInvalidatesPreviousSource(t *testing.T) {
	d, rec := newLoaded(t, []Cue{{At: 1, Action: "a"}, {At: 2, Action: "b"}})
	first := &manualSource{}
	_ = d.Attach(first)
	second := &manualSource{}
	_ = d.Attach(second)
	first.emit(5)
	if got := rec.snapshot(); len(got) != 0 {
		t.Fatalf("stale source fired %v", got)
	}
	second.emit(1.5)
	if got := rec.snapshot(); len(got) != 1 || got[0] != "a" {
		t.Fatalf("expected a from current source, got %v", got)
	}
}

func TestStaticSourceFiresOnlyZeroCues(t *testing.T) {
	d, rec := newLoaded(t, []Cue{{At: 0, Action: "reveal.nav"}, {At: 2, Action: "reveal.buttons"}})
	if err := d.Attach(playback.Static{}); err != nil {
		t.Fatalf("attach: %v", err)
	}
	got := rec.snapshot()
	if len(got) != 1 || got[0] != "reveal.nav" {
		t.Fatalf("expected only reveal.nav, got %v", got)
	}
	if d.State() != StateDraining {
		t.Fatalf("expected draining, got %s", d.State())
	}
}

func TestAttachBeforeLoad(t *testing.T) {
	d := NewDispatcher(nil)
	if err := d.Attach(playback.Static{}); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}
}

func TestEmptyCueListExhaustsImmediately(t *testing.T) {
	d, _ := newLoaded(t, nil)
	_ = d.Attach(&manualSource{})
	if d.State() != StateExhausted {
		t.Fatalf("expected exhausted, got %s", d.State())
	}
}

func TestPollerDetachStopsTicks(t *testing.T) {
	d, rec := newLoaded(t, []Cue{{At: 0, Action: "a"}, {At: 1000, Action: "never"}})
	var mu sync.Mutex
	now := 0.0
	poller := playback.Poller{Interval: time.Millisecond, Sample: func() float64 {
		mu.Lock()
		defer mu.Unlock()
		return now
	}}
	_ = d.Attach(poller)
	deadline := time.Now().Add(time.Second)
	for len(rec.snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	d.Detach()
	mu.Lock()
	now = 5000
	mu.Unlock()
	time.Sleep(5 * time.Millisecond)
	if got := rec.snapshot(); len(got) != 1 || got[0] != "a" {
		t.Fatalf("expected only a, got %v", got)
	}
}
