// Package assets loads the presentation's resource files. Each file is read
// independently; a missing or invalid file is replaced by its built-in
// fallback and never fails the load as a whole.
//
// Every file may be written as JSON, JSON with comments (.jsonc) or YAML.
// The first of name.json, name.jsonc, name.yaml and name.yml that exists is
// used.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/atomicstack/darktriad/internal/background"
	"github.com/atomicstack/darktriad/internal/glyph"
	"github.com/atomicstack/darktriad/internal/logging"
	"github.com/atomicstack/darktriad/internal/logging/events"
	"github.com/atomicstack/darktriad/internal/timeline"
)

const (
	GlyphsName      = "glyphs"
	BackgroundsName = "backgrounds"
	ConfigName      = "config"
	TimelineName    = "timeline"
	LogoFile        = "logo-triangle.png"
)

var extensions = []string{".json", ".jsonc", ".yaml", ".yml"}

// ParseError reports a resource file that could not be decoded or failed
// validation.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// errMissing marks a file that does not exist under any extension.
var errMissing = errors.New("not found")

// Tuning holds the animation timing values.
type Tuning struct {
	GlyphRateMs      int `json:"glyphRateMs"`
	RevealDurationMs int `json:"revealDurationMs"`
}

// Validate checks both values are inside their accepted ranges.
func (t Tuning) Validate() error {
	if t.GlyphRateMs < MinGlyphRateMs || t.GlyphRateMs > MaxGlyphRateMs {
		return fmt.Errorf("glyphRateMs must be within [%d, %d] (got %d)", MinGlyphRateMs, MaxGlyphRateMs, t.GlyphRateMs)
	}
	if t.RevealDurationMs < MinRevealDurationMs || t.RevealDurationMs > MaxRevealDurationMs {
		return fmt.Errorf("revealDurationMs must be within [%d, %d] (got %d)", MinRevealDurationMs, MaxRevealDurationMs, t.RevealDurationMs)
	}
	return nil
}

// Payload is the result of one load.
type Payload struct {
	Dir         string
	Tuning      Tuning
	Glyphs      []glyph.Definition
	Backgrounds []background.Descriptor
	Timeline    []timeline.Cue
	// Logo is a file URL, empty when the logo image is absent.
	Logo string
	// Fallbacks lists the resource names that were replaced by defaults.
	Fallbacks []string
}

// Loader reads resources from a directory.
type Loader struct {
	dir string
}

func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

func (l *Loader) Dir() string {
	return l.dir
}

// Load reads every resource file. It only fails when the resources directory
// cannot be resolved or created.
func (l *Loader) Load() (Payload, error) {
	dir, err := filepath.Abs(l.dir)
	if err != nil {
		return Payload{}, fmt.Errorf("resolve resources dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Payload{}, fmt.Errorf("create resources dir: %w", err)
	}
	p := Payload{Dir: dir}

	if glyphs, err := readGlyphs(dir); err != nil {
		p.Glyphs = DefaultGlyphs()
		p.fallback(GlyphsName, err)
	} else {
		p.Glyphs = glyphs
	}

	backgrounds, err := readBackgrounds(dir)
	if err != nil {
		backgrounds = DefaultBackgrounds()
		p.fallback(BackgroundsName, err)
	}
	p.Backgrounds = resolveMedia(dir, backgrounds)

	if tuning, err := readTuning(dir); err != nil {
		p.Tuning = DefaultTuning()
		p.fallback(ConfigName, err)
	} else {
		p.Tuning = tuning
	}

	if cues, err := readTimeline(dir); err != nil {
		p.Timeline = DefaultTimeline()
		p.fallback(TimelineName, err)
	} else {
		p.Timeline = cues
	}

	logo := filepath.Join(dir, LogoFile)
	if _, err := os.Stat(logo); err == nil {
		p.Logo = FileURL(logo)
	}

	events.Assets.Loaded(dir, len(p.Backgrounds), len(p.Glyphs), len(p.Timeline))
	return p, nil
}

func (p *Payload) fallback(name string, err error) {
	p.Fallbacks = append(p.Fallbacks, name)
	events.Assets.Fallback(name, err)
	if errors.Is(err, errMissing) {
		return
	}
	logging.Warn("resource replaced by built-in default", map[string]interface{}{
		"file":  name,
		"error": err.Error(),
	})
}

// findFile returns the first existing candidate for a resource name.
func findFile(dir, name string) (string, error) {
	for _, ext := range extensions {
		path := filepath.Join(dir, name+ext)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", &ParseError{File: filepath.Base(path), Err: err}
		}
	}
	return "", fmt.Errorf("%s: %w", name, errMissing)
}

// IsResourceFile reports whether base names one of the recognised resource
// files, including the logo.
func IsResourceFile(base string) bool {
	if base == LogoFile {
		return true
	}
	ext := filepath.Ext(base)
	stem := base[:len(base)-len(ext)]
	switch stem {
	case GlyphsName, BackgroundsName, ConfigName, TimelineName:
	default:
		return false
	}
	for _, candidate := range extensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

func resolveMedia(dir string, entries []background.Descriptor) []background.Descriptor {
	out := make([]background.Descriptor, len(entries))
	for i, entry := range entries {
		out[i] = entry
		out[i].MediaPath = ResolvePath(dir, entry.MediaPath)
	}
	return out
}

// ResolvePath joins relative media paths onto the resources directory.
func ResolvePath(dir, file string) string {
	if filepath.IsAbs(file) {
		return filepath.Clean(file)
	}
	return filepath.Join(dir, file)
}

// FileURL converts an absolute path to a file:// URL.
func FileURL(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}
