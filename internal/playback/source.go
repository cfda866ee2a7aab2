// Package playback provides the clocks that drive cue dispatch. A Source
// delivers media time in seconds to a single subscriber until the returned
// unsubscribe function is called. Unsubscribe blocks until no further ticks
// can be delivered.
package playback

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/atomicstack/darktriad/internal/background"
)

// DefaultPollInterval is the sampling period used when frame callbacks are
// unavailable.
const DefaultPollInterval = 120 * time.Millisecond

// Source is a clock that can be subscribed to.
type Source interface {
	Subscribe(onTick func(seconds float64)) (unsubscribe func())
}

// Static delivers a single synthetic tick on subscribe. Image backgrounds use
// it so that cues at 0 fire once and later cues never do.
type Static struct {
	At float64
}

func (s Static) Subscribe(onTick func(float64)) func() {
	onTick(s.At)
	return func() {}
}

// Poller samples a media clock at a fixed interval.
type Poller struct {
	Interval time.Duration
	Sample   func() float64
}

func (p Poller) Subscribe(onTick func(float64)) func() {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return runTicker(interval, func() {
		onTick(p.Sample())
	})
}

// FrameNotifier is implemented by players that can report media time once
// per rendered frame.
type FrameNotifier interface {
	OnFrame(fn func(seconds float64)) (cancel func())
}

// FrameSource adapts a FrameNotifier to Source.
type FrameSource struct {
	Notifier FrameNotifier
}

func (f FrameSource) Subscribe(onTick func(float64)) func() {
	return f.Notifier.OnFrame(onTick)
}

// ClockMode selects between frame callbacks and polling.
type ClockMode string

const (
	ClockAuto  ClockMode = "auto"
	ClockFrame ClockMode = "frame"
	ClockPoll  ClockMode = "poll"
)

// ParseClockMode accepts auto, frame and poll. Empty means auto.
func ParseClockMode(value string) (ClockMode, error) {
	switch ClockMode(strings.ToLower(strings.TrimSpace(value))) {
	case "", ClockAuto:
		return ClockAuto, nil
	case ClockFrame:
		return ClockFrame, nil
	case ClockPoll:
		return ClockPoll, nil
	}
	return ClockAuto, fmt.Errorf("unknown clock mode %q", value)
}

// SourceFor picks the tick source for a background. Images always get a
// Static source. Videos prefer frame callbacks and fall back to polling the
// player's intended time.
func SourceFor(desc background.Descriptor, player *Player, mode ClockMode, interval time.Duration) (Source, string) {
	if desc.Static() || player == nil {
		return Static{}, "static"
	}
	if mode != ClockPoll && player.SupportsFrames() {
		return FrameSource{Notifier: player}, "frame"
	}
	return Poller{Interval: interval, Sample: player.CurrentTime}, "poll"
}

// runTicker calls fn every interval on its own goroutine. The returned stop
// function is idempotent and waits for the goroutine to exit.
func runTicker(interval time.Duration, fn func()) func() {
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				select {
				case <-stop:
					return
				default:
				}
				fn()
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() { close(stop) })
		<-done
	}
}
