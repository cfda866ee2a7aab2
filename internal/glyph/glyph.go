// Package glyph implements the hover controls that stream scrambled glyphs
// and resolve into their real label.
package glyph

import (
	"math"
	"math/rand"
	"strings"
	"time"
)

const (
	// MinRate bounds how often the glyph stream may resample.
	MinRate = 16 * time.Millisecond
	// RevertDelay is how long a control keeps its label after the pointer leaves.
	RevertDelay = 500 * time.Millisecond
)

// Definition pairs a label with the glyph strings shown while it is hidden.
type Definition struct {
	ID     string   `json:"id" yaml:"id"`
	Real   string   `json:"real" yaml:"real"`
	Glyphs []string `json:"glyphs" yaml:"glyphs"`
}

// Sample returns a random glyph string, or fallback for an empty set.
func Sample(set []string, fallback string, rng *rand.Rand) string {
	if len(set) == 0 {
		return fallback
	}
	return set[rng.Intn(len(set))]
}

// RevealFrame renders real with the first round(len*progress) runes in place
// and every remaining rune replaced by a rune taken from a freshly sampled
// glyph string.
func RevealFrame(real string, progress float64, set []string, rng *rand.Rand) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	runes := []rune(real)
	visible := int(math.Round(float64(len(runes)) * progress))
	var b strings.Builder
	b.WriteString(string(runes[:visible]))
	remainder := len(runes) - visible
	for i := 0; i < remainder; i++ {
		sample := []rune(Sample(set, real, rng))
		if len(sample) == 0 {
			continue
		}
		b.WriteRune(sample[i%len(sample)])
	}
	return b.String()
}

// Mode is the display state of a Control.
type Mode int

const (
	ModeGlyph Mode = iota
	ModeReveal
	ModeSteady
)

func (m Mode) String() string {
	switch m {
	case ModeReveal:
		return "reveal"
	case ModeSteady:
		return "steady"
	default:
		return "glyph"
	}
}

// Timing carries the tuning values a Control animates with.
type Timing struct {
	Rate   time.Duration
	Reveal time.Duration
}

// Control is one hover button. It is driven entirely by the timestamps
// passed to its methods so that rendering frames can be replayed in tests.
// Control is not safe for concurrent use.
type Control struct {
	def    Definition
	timing Timing
	rng    *rand.Rand

	mode        Mode
	text        string
	lastSample  time.Time
	revealStart time.Time
	revertAt    time.Time
}

func NewControl(def Definition, timing Timing, rng *rand.Rand) *Control {
	c := &Control{def: def, rng: rng}
	c.SetTiming(timing)
	c.text = def.Real
	if len(def.Glyphs) > 0 {
		c.text = def.Glyphs[0]
	}
	return c
}

// SetTiming updates the animation tuning, clamping the stream rate.
func (c *Control) SetTiming(timing Timing) {
	if timing.Rate < MinRate {
		timing.Rate = MinRate
	}
	if timing.Reveal <= 0 {
		timing.Reveal = time.Millisecond
	}
	c.timing = timing
}

func (c *Control) Definition() Definition { return c.def }
func (c *Control) Mode() Mode             { return c.mode }
func (c *Control) Text() string           { return c.text }

// PointerEnter starts resolving the label and cancels a pending revert.
func (c *Control) PointerEnter(now time.Time) {
	c.revertAt = time.Time{}
	c.mode = ModeReveal
	c.revealStart = now
}

// PointerLeave schedules a return to the glyph stream.
func (c *Control) PointerLeave(now time.Time) {
	c.revertAt = now.Add(RevertDelay)
}

// Frame advances the control to now and returns the text to display.
func (c *Control) Frame(now time.Time) string {
	if !c.revertAt.IsZero() && !now.Before(c.revertAt) {
		c.revertAt = time.Time{}
		c.mode = ModeGlyph
		c.text = Sample(c.def.Glyphs, c.def.Real, c.rng)
		c.lastSample = now
		return c.text
	}
	switch c.mode {
	case ModeGlyph:
		if c.lastSample.IsZero() || now.Sub(c.lastSample) >= c.timing.Rate {
			c.text = Sample(c.def.Glyphs, c.def.Real, c.rng)
			c.lastSample = now
		}
	case ModeReveal:
		progress := float64(now.Sub(c.revealStart)) / float64(c.timing.Reveal)
		if progress >= 1 {
			c.mode = ModeSteady
			c.text = c.def.Real
			return c.text
		}
		c.text = RevealFrame(c.def.Real, progress, c.def.Glyphs, c.rng)
	}
	return c.text
}
