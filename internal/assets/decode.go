package assets

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atomicstack/darktriad/internal/background"
	"github.com/atomicstack/darktriad/internal/glyph"
	"github.com/atomicstack/darktriad/internal/timeline"
	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

type rawBackground struct {
	ID               string   `json:"id"`
	File             string   `json:"file"`
	Type             string   `json:"type"`
	Label            string   `json:"label"`
	OverlayIntensity *float64 `json:"overlayIntensity"`
}

type rawCue struct {
	At      *float64       `json:"at"`
	Action  string         `json:"action"`
	Payload map[string]any `json:"payload"`
}

// readDocument locates a resource and returns its contents normalised to
// plain JSON.
func readDocument(dir, name string) (string, []byte, error) {
	path, err := findFile(dir, name)
	if err != nil {
		return "", nil, err
	}
	base := filepath.Base(path)
	raw, err := os.ReadFile(path)
	if err != nil {
		return base, nil, &ParseError{File: base, Err: err}
	}
	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return base, nil, &ParseError{File: base, Err: err}
		}
		data, err = json.Marshal(doc)
		if err != nil {
			return base, nil, &ParseError{File: base, Err: err}
		}
	default:
		data = jsonc.ToJSON(raw)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return base, nil, &ParseError{File: base, Err: errors.New("empty document")}
	}
	return base, data, nil
}

func decode(base string, data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return &ParseError{File: base, Err: err}
	}
	return nil
}

func readGlyphs(dir string) ([]glyph.Definition, error) {
	base, data, err := readDocument(dir, GlyphsName)
	if err != nil {
		return nil, err
	}
	var defs []glyph.Definition
	if err := decode(base, data, &defs); err != nil {
		return nil, err
	}
	for i, def := range defs {
		if def.ID == "" {
			return nil, &ParseError{File: base, Err: fmt.Errorf("entry %d: id is required", i)}
		}
		if def.Real == "" {
			return nil, &ParseError{File: base, Err: fmt.Errorf("entry %q: real is required", def.ID)}
		}
		if len(def.Glyphs) == 0 {
			return nil, &ParseError{File: base, Err: fmt.Errorf("entry %q: at least one glyph is required", def.ID)}
		}
	}
	return defs, nil
}

func readBackgrounds(dir string) ([]background.Descriptor, error) {
	base, data, err := readDocument(dir, BackgroundsName)
	if err != nil {
		return nil, err
	}
	var raws []rawBackground
	if err := decode(base, data, &raws); err != nil {
		return nil, err
	}
	if len(raws) == 0 {
		return nil, &ParseError{File: base, Err: errors.New("at least one background is required")}
	}
	seen := make(map[string]struct{}, len(raws))
	out := make([]background.Descriptor, 0, len(raws))
	for i, raw := range raws {
		if raw.ID == "" {
			return nil, &ParseError{File: base, Err: fmt.Errorf("entry %d: id is required", i)}
		}
		if _, dup := seen[raw.ID]; dup {
			return nil, &ParseError{File: base, Err: fmt.Errorf("duplicate id %q", raw.ID)}
		}
		seen[raw.ID] = struct{}{}
		if raw.File == "" {
			return nil, &ParseError{File: base, Err: fmt.Errorf("entry %q: file is required", raw.ID)}
		}
		kind, err := background.ParseKind(raw.Type)
		if err != nil {
			return nil, &ParseError{File: base, Err: fmt.Errorf("entry %q: %w", raw.ID, err)}
		}
		intensity := background.DefaultOverlayIntensity
		if raw.OverlayIntensity != nil {
			intensity = *raw.OverlayIntensity
			if intensity < 0 || intensity > 1 {
				return nil, &ParseError{File: base, Err: fmt.Errorf("entry %q: overlayIntensity must be within [0, 1]", raw.ID)}
			}
		}
		out = append(out, background.Descriptor{
			ID:               raw.ID,
			MediaPath:        raw.File,
			Kind:             kind,
			Label:            raw.Label,
			OverlayIntensity: intensity,
		})
	}
	return out, nil
}

func readTuning(dir string) (Tuning, error) {
	base, data, err := readDocument(dir, ConfigName)
	if err != nil {
		return Tuning{}, err
	}
	v := viper.New()
	v.SetConfigType("json")
	v.SetDefault("glyphRateMs", DefaultGlyphRateMs)
	v.SetDefault("revealDurationMs", DefaultRevealDurationMs)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return Tuning{}, &ParseError{File: base, Err: err}
	}
	t := Tuning{
		GlyphRateMs:      v.GetInt("glyphRateMs"),
		RevealDurationMs: v.GetInt("revealDurationMs"),
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, &ParseError{File: base, Err: err}
	}
	return t, nil
}

func readTimeline(dir string) ([]timeline.Cue, error) {
	base, data, err := readDocument(dir, TimelineName)
	if err != nil {
		return nil, err
	}
	var raws []rawCue
	if err := decode(base, data, &raws); err != nil {
		return nil, err
	}
	cues := make([]timeline.Cue, 0, len(raws))
	for i, raw := range raws {
		if raw.At == nil {
			return nil, &ParseError{File: base, Err: fmt.Errorf("cue %d: at is required", i)}
		}
		cues = append(cues, timeline.Cue{At: *raw.At, Action: raw.Action, Payload: raw.Payload})
	}
	if err := timeline.Validate(cues); err != nil {
		return nil, &ParseError{File: base, Err: err}
	}
	return cues, nil
}
