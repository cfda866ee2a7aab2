// Package session holds the explicit context a presentation runs in. It owns
// the background catalog, the cue list, the rotation state and the active
// dispatch session, and exposes the three operations the presentation layer
// uses: LoadSession, SwapBackground and PlayTimeline.
//
// A dispatch session starts when a background is shown and ends when the
// background changes, the cue list is replaced or the Session is closed.
// Events produced by a dispatch session carry its id; events from a session
// that has already ended are dropped by Drain.
package session

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/atomicstack/darktriad/internal/assets"
	"github.com/atomicstack/darktriad/internal/background"
	"github.com/atomicstack/darktriad/internal/glyph"
	"github.com/atomicstack/darktriad/internal/logging"
	"github.com/atomicstack/darktriad/internal/logging/events"
	"github.com/atomicstack/darktriad/internal/playback"
	"github.com/atomicstack/darktriad/internal/reveal"
	"github.com/atomicstack/darktriad/internal/state"
	"github.com/atomicstack/darktriad/internal/timeline"
	"github.com/google/uuid"
)

// ErrClosed is returned by operations on a closed Session.
var ErrClosed = errors.New("session closed")

const outboxLimit = 256

// Options tunes playback and bookkeeping. Zero values pick defaults.
type Options struct {
	Clock        playback.ClockMode
	PollInterval time.Duration
	FrameRate    float64
	ActionLog    int
	Now          func() time.Time
	// Stat overrides the media existence check used to detect blocked playback.
	Stat func(path string) error
}

// Session is safe for concurrent use.
type Session struct {
	id         string
	opts       Options
	rotator    *background.Rotator
	dispatcher *timeline.Dispatcher
	reveal     *reveal.Machine
	log        state.ActionLog
	dispatchID atomic.Value

	mu      sync.Mutex
	catalog background.Catalog
	cues    []timeline.Cue
	tuning  assets.Tuning
	glyphs  []glyph.Definition
	logo    string
	current background.Descriptor
	player  *playback.Player
	clock   string
	playErr error
	closed  bool

	outMu  sync.Mutex
	outbox []Event
	notify chan struct{}
}

// New builds a session from loaded assets. It fails with
// background.ErrEmptyCatalog when there is nothing to show.
func New(payload assets.Payload, kv background.KV, opts Options) (*Session, error) {
	catalog := background.NewCatalog(payload.Backgrounds)
	if catalog.Len() == 0 {
		return nil, background.ErrEmptyCatalog
	}
	if opts.Clock == "" {
		opts.Clock = playback.ClockAuto
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = playback.DefaultPollInterval
	}
	s := &Session{
		id:      uuid.NewString(),
		opts:    opts,
		rotator: background.NewRotator(kv),
		reveal:  reveal.New(payload.Timeline),
		log:     state.NewActionLog(opts.ActionLog),
		catalog: catalog,
		cues:    timeline.Clone(payload.Timeline),
		tuning:  payload.Tuning,
		glyphs:  cloneGlyphs(payload.Glyphs),
		logo:    payload.Logo,
		notify:  make(chan struct{}, 1),
	}
	s.dispatchID.Store("")
	s.dispatcher = timeline.NewDispatcher(s.onCue)
	if err := s.dispatcher.Load(payload.Timeline); err != nil {
		return nil, fmt.Errorf("load timeline: %w", err)
	}
	s.reveal.Subscribe(func(v reveal.Visibility) {
		s.push(Event{Kind: EventReveal, Visibility: v})
	})
	current, err := s.rotator.Current(catalog)
	if err != nil {
		return nil, err
	}
	s.current = current
	events.Session.Load(s.id, current.ID, len(s.cues))
	return s, nil
}

// ID identifies this session context in traces.
func (s *Session) ID() string {
	return s.id
}

// Start begins playback of the current background and attaches its clock.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return s.startPlaybackLocked(s.current, false)
}

// LoadSession returns the payload the presentation is built from.
func (s *Session) LoadSession() ConfigPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.catalog.Entries()
	infos := make([]BackgroundInfo, len(entries))
	for i, entry := range entries {
		infos[i] = NewBackgroundInfo(entry)
	}
	return ConfigPayload{
		GlyphRateMs:         s.tuning.GlyphRateMs,
		RevealDurationMs:    s.tuning.RevealDurationMs,
		Glyphs:              cloneGlyphs(s.glyphs),
		Backgrounds:         infos,
		Timeline:            timeline.Clone(s.cues),
		CurrentBackgroundID: s.current.ID,
		Logo:                s.logo,
	}
}

// SwapBackground rotates to another background and persists the choice.
// Moving to a different background starts a new dispatch session.
func (s *Session) SwapBackground(mode background.Mode, id string) (background.Descriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return background.Descriptor{}, ErrClosed
	}
	desc, err := s.rotator.Swap(s.catalog, mode, id)
	if err != nil {
		return background.Descriptor{}, err
	}
	events.Session.Swap(s.id, mode.String(), id, desc.ID)
	s.log.Push("background:" + desc.ID)
	if desc.ID != s.current.ID {
		if err := s.startPlaybackLocked(desc, false); err != nil {
			return background.Descriptor{}, err
		}
	}
	return desc, nil
}

// PlayTimeline returns the cue list in source order.
func (s *Session) PlayTimeline() []timeline.Cue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return timeline.Clone(s.cues)
}

// ReloadResult reports which parts of the session changed.
type ReloadResult struct {
	CatalogChanged    bool
	TimelineChanged   bool
	TuningChanged     bool
	GlyphsChanged     bool
	BackgroundChanged bool
}

// Reload swaps in freshly loaded assets. An empty catalog is rejected and
// leaves the session untouched. A new cue list restarts the dispatch
// session; a current background that no longer exists falls back to the
// first entry.
func (s *Session) Reload(payload assets.Payload) (ReloadResult, error) {
	var res ReloadResult
	catalog := background.NewCatalog(payload.Backgrounds)
	if catalog.Len() == 0 {
		return res, background.ErrEmptyCatalog
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return res, ErrClosed
	}
	res.CatalogChanged = !catalog.Equal(s.catalog)
	res.TimelineChanged = !timeline.Equal(payload.Timeline, s.cues)
	res.TuningChanged = payload.Tuning != s.tuning
	res.GlyphsChanged = !equalGlyphs(payload.Glyphs, s.glyphs)

	if res.TimelineChanged {
		if err := s.dispatcher.Load(payload.Timeline); err != nil {
			return ReloadResult{}, fmt.Errorf("load timeline: %w", err)
		}
		s.cues = timeline.Clone(payload.Timeline)
	}
	s.catalog = catalog
	s.tuning = payload.Tuning
	s.glyphs = cloneGlyphs(payload.Glyphs)
	s.logo = payload.Logo

	next, _ := catalog.Lookup(s.current.ID)
	switch {
	case next.ID != s.current.ID:
		res.BackgroundChanged = true
		if err := s.startPlaybackLocked(next, res.TimelineChanged); err != nil {
			return res, err
		}
	case next.MediaPath != s.current.MediaPath || next.Kind != s.current.Kind:
		if err := s.startPlaybackLocked(next, res.TimelineChanged); err != nil {
			return res, err
		}
	case res.TimelineChanged:
		s.current = next
		if err := s.attachLocked(true); err != nil {
			return res, err
		}
	case next != s.current:
		// Label or overlay edits keep the running dispatch session.
		s.current = next
		s.push(Event{Kind: EventBackground, Background: next, Err: s.playErr})
	}
	events.Session.Reload(s.id, res.CatalogChanged, res.TimelineChanged)
	return res, nil
}

// Close detaches the clock and stops playback.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.dispatcher.Detach()
	if s.player != nil {
		s.player.Stop()
		s.player = nil
	}
	s.dispatchID.Store("")
	events.Session.Close(s.id)
	return nil
}

// startPlaybackLocked makes desc the current background with a fresh player
// and dispatch session. resetReveal re-derives visibility from the cue list.
func (s *Session) startPlaybackLocked(desc background.Descriptor, resetReveal bool) error {
	s.dispatcher.Detach()
	if s.player != nil {
		s.player.Stop()
		s.player = nil
	}
	s.current = desc
	s.playErr = nil
	if !desc.Static() {
		s.player = playback.NewPlayer(desc.MediaPath, playback.PlayerOptions{
			FrameRate: s.opts.FrameRate,
			Now:       s.opts.Now,
			Stat:      s.opts.Stat,
		})
		if err := s.player.Play(); err != nil {
			s.playErr = err
			logging.Warn("background playback blocked", map[string]interface{}{
				"background": desc.ID,
				"error":      err.Error(),
			})
		}
	}
	return s.attachLocked(resetReveal)
}

// attachLocked starts a new dispatch session for the current background on
// the existing player.
func (s *Session) attachLocked(resetReveal bool) error {
	s.dispatcher.Reset(s.current.ID)
	dispatchID := uuid.NewString()
	s.dispatchID.Store(dispatchID)
	// The reset notifies observers, so it must follow the new dispatch id.
	if resetReveal {
		s.reveal.Reset(s.cues)
	}
	src, clock := playback.SourceFor(s.current, s.player, s.opts.Clock, s.opts.PollInterval)
	s.clock = clock
	events.Session.Playback(s.current.ID, clock, s.playErr)
	s.push(Event{Kind: EventBackground, Background: s.current, Err: s.playErr})
	if err := s.dispatcher.Attach(src); err != nil {
		return fmt.Errorf("attach %s clock: %w", clock, err)
	}
	return nil
}

// onCue runs under the dispatcher lock; it must only touch state guarded by
// its own locks.
func (s *Session) onCue(f timeline.Fired) {
	s.log.Push("timeline:" + f.Action)
	s.reveal.Handle(f.Action, f.Payload)
	s.push(Event{
		Kind:       EventCue,
		Action:     f.Action,
		Payload:    f.Payload,
		At:         f.At,
		Background: background.Descriptor{ID: f.BackgroundID},
	})
}

// Current returns the background being shown.
func (s *Session) Current() background.Descriptor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Catalog returns the active catalog.
func (s *Session) Catalog() background.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog
}

func (s *Session) Tuning() assets.Tuning {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tuning
}

func (s *Session) Glyphs() []glyph.Definition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneGlyphs(s.glyphs)
}

// Playback reports the clock kind and any blocked-playback error for the
// current background.
func (s *Session) Playback() (clock string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock, s.playErr
}

// MediaTime returns the intended playback position of the current video, or
// 0 for images.
func (s *Session) MediaTime() float64 {
	s.mu.Lock()
	player := s.player
	s.mu.Unlock()
	if player == nil {
		return 0
	}
	return player.CurrentTime()
}

func (s *Session) Visibility() reveal.Visibility {
	return s.reveal.Visibility()
}

// Actions returns up to n action log entries, newest first.
func (s *Session) Actions(n int) []string {
	return s.log.Latest(n)
}

func (s *Session) DispatchState() timeline.State {
	return s.dispatcher.State()
}

// DispatchID identifies the current dispatch session.
func (s *Session) DispatchID() string {
	id, _ := s.dispatchID.Load().(string)
	return id
}

func cloneGlyphs(defs []glyph.Definition) []glyph.Definition {
	if len(defs) == 0 {
		return nil
	}
	out := make([]glyph.Definition, len(defs))
	for i, def := range defs {
		out[i] = def
		out[i].Glyphs = append([]string(nil), def.Glyphs...)
	}
	return out
}

func equalGlyphs(a, b []glyph.Definition) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Real != b[i].Real || len(a[i].Glyphs) != len(b[i].Glyphs) {
			return false
		}
		for j := range a[i].Glyphs {
			if a[i].Glyphs[j] != b[i].Glyphs[j] {
				return false
			}
		}
	}
	return true
}
