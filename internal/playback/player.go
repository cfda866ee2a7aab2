package playback

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

// ErrPlaybackBlocked reports that media could not start. The intended
// playback clock keeps running regardless, so cue timing is unaffected.
var ErrPlaybackBlocked = errors.New("media playback blocked")

// PlayerOptions tunes a Player. Zero values pick sensible defaults.
type PlayerOptions struct {
	// FrameRate enables frame callbacks when positive.
	FrameRate float64
	Now       func() time.Time
	Stat      func(path string) error
}

// Player is a simulated media element. It does not decode anything; it
// tracks the time the media would be at had playback started when Play was
// called.
type Player struct {
	path          string
	frameInterval time.Duration
	now           func() time.Time
	stat          func(string) error

	mu      sync.Mutex
	started time.Time
	playing bool
	blocked error
	cancels []func()
}

func NewPlayer(path string, opts PlayerOptions) *Player {
	p := &Player{path: path, now: opts.Now, stat: opts.Stat}
	if p.now == nil {
		p.now = time.Now
	}
	if p.stat == nil {
		p.stat = func(path string) error {
			_, err := os.Stat(path)
			return err
		}
	}
	if opts.FrameRate > 0 {
		p.frameInterval = time.Duration(float64(time.Second) / opts.FrameRate)
	}
	return p
}

// Play resets media time to zero and starts the intended clock. A missing
// media file returns ErrPlaybackBlocked but the clock still starts.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.started = p.now()
	p.playing = true
	p.blocked = nil
	if err := p.stat(p.path); err != nil {
		p.blocked = fmt.Errorf("%w: %s: %v", ErrPlaybackBlocked, p.path, err)
	}
	return p.blocked
}

// CurrentTime returns media time in seconds, or 0 before Play.
func (p *Player) CurrentTime() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.playing {
		return 0
	}
	return p.now().Sub(p.started).Seconds()
}

// Blocked returns the error recorded by the last Play call.
func (p *Player) Blocked() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.blocked
}

func (p *Player) Path() string {
	return p.path
}

func (p *Player) SupportsFrames() bool {
	return p.frameInterval > 0
}

// OnFrame emits the media time once per frame until cancelled.
func (p *Player) OnFrame(fn func(float64)) func() {
	interval := p.frameInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	cancel := runTicker(interval, func() {
		fn(p.CurrentTime())
	})
	p.mu.Lock()
	p.cancels = append(p.cancels, cancel)
	p.mu.Unlock()
	return cancel
}

// Stop halts the clock and cancels every frame subscription.
func (p *Player) Stop() {
	p.mu.Lock()
	cancels := p.cancels
	p.cancels = nil
	p.playing = false
	p.mu.Unlock()
	for _, cancel := range cancels {
		cancel()
	}
}
