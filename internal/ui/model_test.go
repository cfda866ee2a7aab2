package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/darktriad/internal/assets"
	"github.com/atomicstack/darktriad/internal/backend"
	"github.com/atomicstack/darktriad/internal/background"
	"github.com/atomicstack/darktriad/internal/glyph"
	"github.com/atomicstack/darktriad/internal/reveal"
	"github.com/atomicstack/darktriad/internal/session"
	"github.com/atomicstack/darktriad/internal/store"
	"github.com/atomicstack/darktriad/internal/timeline"
	tea "github.com/charmbracelet/bubbletea"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func testPayload(cues []timeline.Cue, glyphs ...glyph.Definition) assets.Payload {
	if len(glyphs) == 0 {
		glyphs = []glyph.Definition{
			{ID: "gate", Real: "GATE", Glyphs: []string{"#"}},
			{ID: "eye", Real: "EYE", Glyphs: []string{"%"}},
		}
	}
	backgrounds := make([]background.Descriptor, 0, 3)
	for _, id := range []string{"a", "b", "c"} {
		backgrounds = append(backgrounds, background.Descriptor{
			ID:               id,
			MediaPath:        "/res/" + id + ".jpg",
			Kind:             background.KindImage,
			OverlayIntensity: 0.5,
		})
	}
	return assets.Payload{
		Tuning:      assets.DefaultTuning(),
		Glyphs:      glyphs,
		Backgrounds: backgrounds,
		Timeline:    cues,
	}
}

type fixture struct {
	h     *Harness
	s     *session.Session
	kv    *store.Memory
	clock *testClock
}

func newFixture(t *testing.T, cues []timeline.Cue) *fixture {
	t.Helper()
	kv := store.NewMemory()
	s, err := session.New(testPayload(cues), kv, session.Options{})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("start session: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	clock := &testClock{now: time.Unix(1000, 0)}
	m := NewModel(Options{
		Session:    s,
		Width:      100,
		Height:     40,
		ShowFooter: true,
		Manual:     true,
		Now:        clock.Now,
		Seed:       1,
	})
	return &fixture{h: NewHarness(m), s: s, kv: kv, clock: clock}
}

func (f *fixture) start(t *testing.T) *Model {
	t.Helper()
	f.h.Start()
	f.h.Pump()
	m := f.h.Model()
	if m.loading {
		t.Fatalf("expected session to be loaded")
	}
	return m
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewShowsLoadingUntilSessionLoads(t *testing.T) {
	f := newFixture(t, nil)
	if view := f.h.View(); !strings.Contains(view, "INVOKING THE TRIAD") {
		t.Fatalf("expected loading copy, got %q", view)
	}
	f.h.Send(runeKey("n"))
	if f.s.Current().ID != "a" {
		t.Fatalf("keys must be ignored while loading")
	}
	f.start(t)
	view := f.h.View()
	if !strings.Contains(view, "T H E   D A R K") || !strings.Contains(view, "T R I A D") {
		t.Fatalf("expected title in view:\n%s", view)
	}
	if !strings.Contains(view, "VISION a") {
		t.Fatalf("expected current background in panel:\n%s", view)
	}
	if !strings.Contains(view, "TEMPLE") {
		t.Fatalf("expected copy in view:\n%s", view)
	}
}

func TestNextAndPreviousRotateBackground(t *testing.T) {
	f := newFixture(t, nil)
	m := f.start(t)

	f.h.Send(runeKey("n"))
	f.h.Pump()
	if m.current.ID != "b" || f.s.Current().ID != "b" {
		t.Fatalf("expected b, got %s / %s", m.current.ID, f.s.Current().ID)
	}
	if v, _, _ := f.kv.Get(background.StateKey); v != "b" {
		t.Fatalf("expected b persisted, got %q", v)
	}

	f.h.Send(runeKey("p"))
	f.h.Send(runeKey("p"))
	f.h.Pump()
	if m.current.ID != "c" {
		t.Fatalf("expected previous to wrap to c, got %s", m.current.ID)
	}
	if !strings.Contains(f.h.View(), "VISION c") {
		t.Fatalf("expected panel to follow the swap")
	}
}

func TestPickerSelectsBackground(t *testing.T) {
	f := newFixture(t, nil)
	m := f.start(t)

	f.h.Send(runeKey("/"))
	if m.picker == nil {
		t.Fatalf("expected picker to open")
	}
	if item, _ := m.picker.Selected(); item.ID != "a" {
		t.Fatalf("expected cursor on current background, got %q", item.ID)
	}
	f.h.Send(runeKey("c"))
	if m.picker.Filter != "c" || len(m.picker.Items) != 1 {
		t.Fatalf("expected filtered picker, got %q %+v", m.picker.Filter, m.picker.Items)
	}
	if !strings.Contains(f.h.View(), "CHOOSE A VISION") {
		t.Fatalf("expected picker header in view")
	}
	f.h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if m.picker != nil {
		t.Fatalf("expected picker to close after choosing")
	}
	if m.current.ID != "c" || f.s.Current().ID != "c" {
		t.Fatalf("expected c, got %s", m.current.ID)
	}
}

func TestPickerEscapeKeepsBackground(t *testing.T) {
	f := newFixture(t, nil)
	m := f.start(t)

	f.h.Send(runeKey("/"))
	f.h.Send(runeKey("q"))
	if m.picker == nil || m.picker.Filter != "q" {
		t.Fatalf("expected q to be typed into the filter")
	}
	f.h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	if m.picker != nil {
		t.Fatalf("expected esc to close the picker")
	}
	if f.s.Current().ID != "a" {
		t.Fatalf("expected background unchanged, got %s", f.s.Current().ID)
	}
}

func TestButtonsHiddenUntilRevealed(t *testing.T) {
	cues := []timeline.Cue{{At: 0, Action: reveal.ActionNav}, {At: 5, Action: reveal.ActionButtons}}
	f := newFixture(t, cues)
	m := f.start(t)

	if !m.visibility.Nav || m.visibility.Buttons {
		t.Fatalf("expected nav only, got %+v", m.visibility)
	}
	view := f.h.View()
	if !strings.Contains(view, "CYCLE VISION") {
		t.Fatalf("expected nav in view:\n%s", view)
	}
	if len(m.hits.buttons) != 0 {
		t.Fatalf("hidden buttons must not be hit-testable")
	}
	f.h.Send(tea.KeyMsg{Type: tea.KeyRight})
	if m.focus != -1 {
		t.Fatalf("expected focus to stay unset, got %d", m.focus)
	}
}

func TestNavHiddenUntilRevealed(t *testing.T) {
	cues := []timeline.Cue{{At: 3, Action: reveal.ActionNav}}
	f := newFixture(t, cues)
	m := f.start(t)
	view := f.h.View()
	if strings.Contains(view, "CYCLE VISION") {
		t.Fatalf("nav should be hidden:\n%s", view)
	}
	if m.hits.cycle.ok {
		t.Fatalf("hidden nav must not be hit-testable")
	}
}

func TestFocusRevealsAndReverts(t *testing.T) {
	f := newFixture(t, nil)
	m := f.start(t)
	start := f.clock.now

	f.h.Send(tea.KeyMsg{Type: tea.KeyRight})
	if m.focus != 0 || m.controls[0].Mode() != glyph.ModeReveal {
		t.Fatalf("expected first control revealing, focus=%d mode=%s", m.focus, m.controls[0].Mode())
	}
	f.h.Frame(start.Add(900 * time.Millisecond))
	if m.controls[0].Mode() != glyph.ModeSteady || m.texts[0] != "GATE" {
		t.Fatalf("expected steady label, got %s %q", m.controls[0].Mode(), m.texts[0])
	}
	if !strings.Contains(f.h.View(), "GATE") {
		t.Fatalf("expected revealed label in view")
	}

	f.clock.now = start.Add(time.Second)
	f.h.Send(tea.KeyMsg{Type: tea.KeyRight})
	if m.focus != 1 {
		t.Fatalf("expected focus to move to second control, got %d", m.focus)
	}
	f.h.Frame(f.clock.now.Add(499 * time.Millisecond))
	if m.texts[0] != "GATE" {
		t.Fatalf("label should hold until the revert delay, got %q", m.texts[0])
	}
	f.h.Frame(f.clock.now.Add(500 * time.Millisecond))
	if m.controls[0].Mode() != glyph.ModeGlyph || m.texts[0] != "#" {
		t.Fatalf("expected glyph stream, got %s %q", m.controls[0].Mode(), m.texts[0])
	}
}

func TestFocusWrapsLeft(t *testing.T) {
	f := newFixture(t, nil)
	m := f.start(t)
	f.h.Send(tea.KeyMsg{Type: tea.KeyLeft})
	if m.focus != 1 {
		t.Fatalf("expected focus on last control, got %d", m.focus)
	}
	f.h.Send(tea.KeyMsg{Type: tea.KeyRight})
	if m.focus != 0 {
		t.Fatalf("expected focus to wrap to 0, got %d", m.focus)
	}
}

func TestAuraIntensityClamps(t *testing.T) {
	f := newFixture(t, nil)
	m := f.start(t)
	for i := 0; i < 30; i++ {
		f.h.Send(runeKey("+"))
	}
	if m.intensity != maxIntensity {
		t.Fatalf("expected %v, got %v", maxIntensity, m.intensity)
	}
	if m.overlayOpacity() != 0.75 {
		t.Fatalf("expected opacity 0.75, got %v", m.overlayOpacity())
	}
	for i := 0; i < 30; i++ {
		f.h.Send(runeKey("-"))
	}
	if m.intensity != minIntensity {
		t.Fatalf("expected %v, got %v", minIntensity, m.intensity)
	}
	if !strings.Contains(f.h.View(), "0.50") {
		t.Fatalf("expected intensity in view")
	}
}

func TestDebugOverlayToggles(t *testing.T) {
	f := newFixture(t, nil)
	f.start(t)
	if strings.Contains(f.h.View(), "GLYPH RATE") {
		t.Fatalf("debug overlay should start hidden")
	}
	f.h.Send(runeKey("d"))
	view := f.h.View()
	if !strings.Contains(view, "GLYPH RATE") || !strings.Contains(view, "70ms") {
		t.Fatalf("expected debug overlay:\n%s", view)
	}
}

func TestMouseHoverAndTitleClick(t *testing.T) {
	f := newFixture(t, nil)
	m := f.start(t)
	f.h.View()
	if len(m.hits.buttons) != 2 {
		t.Fatalf("expected two button hitboxes, got %d", len(m.hits.buttons))
	}
	b := m.hits.buttons[1]
	f.h.Send(tea.MouseMsg{X: b.x0, Y: b.y0, Action: tea.MouseActionMotion})
	if m.hover != 1 || m.controls[1].Mode() != glyph.ModeReveal {
		t.Fatalf("expected hover on second control, got %d", m.hover)
	}
	f.h.Send(tea.MouseMsg{X: 0, Y: 39, Action: tea.MouseActionMotion})
	if m.hover != -1 {
		t.Fatalf("expected hover cleared, got %d", m.hover)
	}

	title := m.hits.title
	f.h.Send(tea.MouseMsg{X: title.x0, Y: title.y0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if f.s.Current().ID != "b" {
		t.Fatalf("expected title click to cycle, got %s", f.s.Current().ID)
	}
}

func TestBackendEventRebuildsGlyphs(t *testing.T) {
	f := newFixture(t, nil)
	m := f.start(t)

	next := testPayload(nil, glyph.Definition{ID: "veil", Real: "VEIL", Glyphs: []string{"~"}})
	f.h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindAssets, Data: next}})
	if len(m.controls) != 1 || m.controls[0].Definition().ID != "veil" {
		t.Fatalf("expected rebuilt controls, got %d", len(m.controls))
	}
	if m.backendErr != "" {
		t.Fatalf("unexpected backend error %q", m.backendErr)
	}

	f.h.Send(backendEventMsg{event: backend.Event{Err: errors.New("boom")}})
	if !strings.Contains(f.h.View(), "reload failed: boom") {
		t.Fatalf("expected reload error in view")
	}
}

func TestGlitchCyclesLayers(t *testing.T) {
	f := newFixture(t, nil)
	m := f.start(t)
	for i := 1; i <= 3; i++ {
		f.h.Send(glitchMsg{})
		if m.glitch != i%3 {
			t.Fatalf("expected layer %d, got %d", i%3, m.glitch)
		}
	}
}

func TestFrameRateIsMeasured(t *testing.T) {
	f := newFixture(t, nil)
	m := f.start(t)
	start := f.clock.now
	for i := 0; i <= 16; i++ {
		f.h.Frame(start.Add(time.Duration(i) * 33 * time.Millisecond))
	}
	if m.fps != 30 {
		t.Fatalf("expected 30 fps, got %d", m.fps)
	}
}

func TestQuitKey(t *testing.T) {
	f := newFixture(t, nil)
	m := f.start(t)
	_, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}
