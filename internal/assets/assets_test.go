package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/darktriad/internal/background"
	"github.com/atomicstack/darktriad/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesMissingDirAndFallsBack(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "resources")
	p, err := NewLoader(dir).Load()
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.Equal(t, DefaultTuning(), p.Tuning)
	assert.Len(t, p.Glyphs, 3)
	assert.Empty(t, p.Timeline)
	assert.Empty(t, p.Logo)
	require.Len(t, p.Backgrounds, 3)
	assert.Equal(t, "hero1", p.Backgrounds[0].ID)
	assert.Equal(t, filepath.Join(dir, "hero1.mp4"), p.Backgrounds[0].MediaPath)
	assert.ElementsMatch(t, []string{GlyphsName, BackgroundsName, ConfigName, TimelineName}, p.Fallbacks)
}

func TestLoadReadsEveryFormat(t *testing.T) {
	dir := testutil.ResourceDir(t, map[string]string{
		"backgrounds.json": testutil.BackgroundsJSON,
		"config.jsonc": `{
  // faster stream
  "glyphRateMs": 40,
  "revealDurationMs": 1200,
}`,
		"glyphs.yaml": `
- id: gate
  real: GATE
  glyphs: ["#", "%"]
`,
		"timeline.yml": `
- at: 2
  action: reveal.buttons
- at: 0
  action: reveal.nav
`,
		LogoFile: "png",
	})
	p, err := NewLoader(dir).Load()
	require.NoError(t, err)
	assert.Empty(t, p.Fallbacks)

	assert.Equal(t, Tuning{GlyphRateMs: 40, RevealDurationMs: 1200}, p.Tuning)
	require.Len(t, p.Glyphs, 1)
	assert.Equal(t, "GATE", p.Glyphs[0].Real)
	require.Len(t, p.Timeline, 2)
	assert.Equal(t, "reveal.buttons", p.Timeline[0].Action, "source order is preserved")
	require.Len(t, p.Backgrounds, 3)
	assert.Equal(t, background.DefaultOverlayIntensity, p.Backgrounds[1].OverlayIntensity)
	assert.Equal(t, background.KindImage, p.Backgrounds[2].Kind)
	assert.Equal(t, FileURL(filepath.Join(p.Dir, LogoFile)), p.Logo)
}

func TestInvalidFilesFallBackIndependently(t *testing.T) {
	dir := testutil.ResourceDir(t, map[string]string{
		"backgrounds.json": `[{"id": "x", "file": "x.mp4", "type": "hologram"}]`,
		"config.json":      `{"glyphRateMs": 5}`,
		"glyphs.json":      `[{"id": "g", "real": "G", "glyphs": []}]`,
		"timeline.json":    `[{"at": 1, "action": "reveal.nav"}]`,
	})
	p, err := NewLoader(dir).Load()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{GlyphsName, BackgroundsName, ConfigName}, p.Fallbacks)
	assert.Len(t, p.Timeline, 1)
	assert.Equal(t, "hero1", p.Backgrounds[0].ID)
}

func TestParseErrorsAreTyped(t *testing.T) {
	dir := testutil.ResourceDir(t, map[string]string{
		"timeline.json": `[{"at": -1, "action": "reveal.nav"}]`,
	})
	_, err := readTimeline(dir)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "timeline.json", perr.File)

	_, err = readGlyphs(dir)
	assert.True(t, errors.Is(err, errMissing))
}

func TestEmptyBackgroundListFallsBack(t *testing.T) {
	dir := testutil.ResourceDir(t, map[string]string{"backgrounds.json": `[]`})
	p, err := NewLoader(dir).Load()
	require.NoError(t, err)
	require.Len(t, p.Backgrounds, len(DefaultBackgrounds()))
	assert.Equal(t, "hero1", p.Backgrounds[0].ID)
	assert.Contains(t, p.Fallbacks, BackgroundsName)

	_, err = readBackgrounds(dir)
	var perr *ParseError
	assert.True(t, errors.As(err, &perr))
}

func TestGlyphWithoutRealLabelRejected(t *testing.T) {
	dir := testutil.ResourceDir(t, map[string]string{
		"glyphs.json": `[{"id": "g", "real": "", "glyphs": ["#"]}]`,
	})
	_, err := readGlyphs(dir)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "glyphs.json", perr.File)

	p, err := NewLoader(dir).Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultGlyphs(), p.Glyphs)
	assert.Contains(t, p.Fallbacks, GlyphsName)
}

func TestTuningDefaultsFillMissingKeys(t *testing.T) {
	dir := testutil.ResourceDir(t, map[string]string{"config.yaml": "revealDurationMs: 300\n"})
	tuning, err := readTuning(dir)
	require.NoError(t, err)
	assert.Equal(t, Tuning{GlyphRateMs: DefaultGlyphRateMs, RevealDurationMs: 300}, tuning)
}

func TestDuplicateBackgroundIDsRejected(t *testing.T) {
	dir := testutil.ResourceDir(t, map[string]string{
		"backgrounds.json": `[{"id": "a", "file": "a.mp4", "type": "video"}, {"id": "a", "file": "b.mp4", "type": "video"}]`,
	})
	_, err := readBackgrounds(dir)
	assert.Error(t, err)
}

func TestIsResourceFile(t *testing.T) {
	for _, name := range []string{"glyphs.json", "timeline.yml", "config.jsonc", LogoFile} {
		assert.True(t, IsResourceFile(name), name)
	}
	for _, name := range []string{"hero1.mp4", "notes.json", "glyphs.txt"} {
		assert.False(t, IsResourceFile(name), name)
	}
}

func TestFileURL(t *testing.T) {
	assert.Equal(t, "file:///srv/resources/hero%201.mp4", FileURL("/srv/resources/hero 1.mp4"))
}
