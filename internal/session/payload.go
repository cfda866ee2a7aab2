package session

import (
	"github.com/atomicstack/darktriad/internal/assets"
	"github.com/atomicstack/darktriad/internal/background"
	"github.com/atomicstack/darktriad/internal/glyph"
	"github.com/atomicstack/darktriad/internal/timeline"
)

// BackgroundInfo is a descriptor as handed to the presentation layer, with
// its media path also expressed as a file URL.
type BackgroundInfo struct {
	background.Descriptor
	URL string `json:"url"`
}

func NewBackgroundInfo(desc background.Descriptor) BackgroundInfo {
	return BackgroundInfo{Descriptor: desc, URL: assets.FileURL(desc.MediaPath)}
}

// ConfigPayload is the result of LoadSession.
type ConfigPayload struct {
	GlyphRateMs         int                `json:"glyphRateMs"`
	RevealDurationMs    int                `json:"revealDurationMs"`
	Glyphs              []glyph.Definition `json:"glyphs"`
	Backgrounds         []BackgroundInfo   `json:"backgrounds"`
	Timeline            []timeline.Cue     `json:"timeline"`
	CurrentBackgroundID string             `json:"currentBackgroundId"`
	Logo                string             `json:"logo,omitempty"`
}
