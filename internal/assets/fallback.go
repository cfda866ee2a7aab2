package assets

import (
	"github.com/atomicstack/darktriad/internal/background"
	"github.com/atomicstack/darktriad/internal/glyph"
	"github.com/atomicstack/darktriad/internal/timeline"
)

const (
	DefaultGlyphRateMs      = 70
	DefaultRevealDurationMs = 900

	MinGlyphRateMs      = 16
	MaxGlyphRateMs      = 2000
	MinRevealDurationMs = 100
	MaxRevealDurationMs = 5000
)

// DefaultTuning is used when the config file is missing or invalid.
func DefaultTuning() Tuning {
	return Tuning{GlyphRateMs: DefaultGlyphRateMs, RevealDurationMs: DefaultRevealDurationMs}
}

// DefaultGlyphs is the built-in glyph set.
func DefaultGlyphs() []glyph.Definition {
	return []glyph.Definition{
		{ID: "intro", Real: "ENTER TEMPLE", Glyphs: []string{"ꖦꗃꕥ", "ᚷᛃᛞ", "𐌂𐌂𐌂", "⛧⸸⛧", "シ卍ネ"}},
		{ID: "triad", Real: "THE DARK TRIAD", Glyphs: []string{"⎔⟟⟊", "𐍉𐍊𐌼", "卄丶乂", "₪✠₪", "ᚾᛁᛟ"}},
		{ID: "library", Real: "LIBRARY", Glyphs: []string{"◬◩◪", "ϞϟϞ", "₪₪₪", "卍卍卍", "☿☌☍"}},
	}
}

// DefaultBackgrounds is the built-in catalog. Media paths are relative to the
// resources directory.
func DefaultBackgrounds() []background.Descriptor {
	return []background.Descriptor{
		{ID: "hero1", MediaPath: "hero1.mp4", Kind: background.KindVideo, Label: "Incantation I", OverlayIntensity: 0.55},
		{ID: "hero2", MediaPath: "hero2.mp4", Kind: background.KindVideo, Label: "Incantation II", OverlayIntensity: 0.5},
		{ID: "fallback", MediaPath: "hero-fallback.jpg", Kind: background.KindImage, Label: "Obelisk Still", OverlayIntensity: 0.65},
	}
}

// DefaultTimeline is empty: every gated region starts visible.
func DefaultTimeline() []timeline.Cue {
	return nil
}
