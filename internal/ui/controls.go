package ui

import (
	"time"

	"github.com/atomicstack/darktriad/internal/glyph"
	"github.com/atomicstack/darktriad/internal/logging/events"
	"github.com/mattn/go-runewidth"
)

type box struct {
	x0, x1, y0, y1 int
	ok             bool
}

func (b box) contains(x, y int) bool {
	return b.ok && x >= b.x0 && x < b.x1 && y >= b.y0 && y < b.y1
}

// hitboxes records where the last View placed the interactive elements.
type hitboxes struct {
	title   box
	cycle   box
	buttons []box
}

func (h hitboxes) button(x, y int) int {
	for i, b := range h.buttons {
		if b.contains(x, y) {
			return i
		}
	}
	return -1
}

func (m *Model) timing() glyph.Timing {
	return glyph.Timing{
		Rate:   time.Duration(m.config.GlyphRateMs) * time.Millisecond,
		Reveal: time.Duration(m.config.RevealDurationMs) * time.Millisecond,
	}
}

// buildControls recreates one glyph control per definition.
func (m *Model) buildControls() {
	timing := m.timing()
	m.controls = make([]*glyph.Control, len(m.config.Glyphs))
	m.texts = make([]string, len(m.config.Glyphs))
	m.buttonWidth = 0
	for i, def := range m.config.Glyphs {
		m.controls[i] = glyph.NewControl(def, timing, m.rng)
		m.texts[i] = m.controls[i].Text()
		if w := runewidth.StringWidth(def.Real); w > m.buttonWidth {
			m.buttonWidth = w
		}
		for _, g := range def.Glyphs {
			if w := runewidth.StringWidth(g); w > m.buttonWidth {
				m.buttonWidth = w
			}
		}
	}
	m.focus = -1
	m.hover = -1
	m.hits.buttons = nil
}

func (m *Model) retime() {
	timing := m.timing()
	for _, c := range m.controls {
		c.SetTiming(timing)
	}
}

func (m *Model) engaged(i int) bool {
	return i >= 0 && (i == m.focus || i == m.hover)
}

// setPointer moves focus or hover and translates the change into
// PointerEnter/PointerLeave calls on the affected controls.
func (m *Model) setPointer(focus, hover int) {
	if !m.visibility.Buttons {
		focus, hover = -1, -1
	}
	now := m.now()
	before := make([]bool, len(m.controls))
	for i := range m.controls {
		before[i] = m.engaged(i)
	}
	m.focus, m.hover = focus, hover
	for i, c := range m.controls {
		after := m.engaged(i)
		switch {
		case after && !before[i]:
			c.PointerEnter(now)
			events.UI.Focus(c.Definition().ID, true)
		case !after && before[i]:
			c.PointerLeave(now)
			events.UI.Focus(c.Definition().ID, false)
		}
	}
}

func (m *Model) moveFocus(delta int) {
	n := len(m.controls)
	if n == 0 || !m.visibility.Buttons {
		return
	}
	next := 0
	switch {
	case m.focus < 0 && delta < 0:
		next = n - 1
	case m.focus >= 0:
		next = ((m.focus+delta)%n + n) % n
	}
	m.setPointer(next, m.hover)
}

func (m *Model) setHover(idx int) {
	if idx == m.hover {
		return
	}
	m.setPointer(m.focus, idx)
}

// advanceControls renders every control at now.
func (m *Model) advanceControls(now time.Time) {
	for i, c := range m.controls {
		m.texts[i] = c.Frame(now)
	}
}

func (m *Model) buttonLabel(i int) string {
	text := runewidth.Truncate(m.texts[i], m.buttonWidth, "")
	return runewidth.FillRight(text, m.buttonWidth)
}
