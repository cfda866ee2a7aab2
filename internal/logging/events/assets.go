package events

import "github.com/atomicstack/darktriad/internal/logging"

type AssetsTracer struct{}

var Assets = AssetsTracer{}

func (AssetsTracer) Loaded(dir string, backgrounds, glyphs, cues int) {
	logging.Trace("assets.loaded", map[string]interface{}{
		"dir":         dir,
		"backgrounds": backgrounds,
		"glyphs":      glyphs,
		"cues":        cues,
	})
}

func (AssetsTracer) Fallback(file string, err error) {
	payload := map[string]interface{}{"file": file}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("assets.fallback", payload)
}

func (AssetsTracer) Change(path, op string) {
	logging.Trace("assets.change", map[string]interface{}{"path": path, "op": op})
}
