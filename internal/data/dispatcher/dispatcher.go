package dispatcher

import (
	"github.com/atomicstack/darktriad/internal/assets"
	"github.com/atomicstack/darktriad/internal/backend"
	"github.com/atomicstack/darktriad/internal/logging"
	"github.com/atomicstack/darktriad/internal/session"
)

// Reloader applies freshly loaded assets.
type Reloader interface {
	Reload(assets.Payload) (session.ReloadResult, error)
}

type Result struct {
	CatalogUpdated    bool
	TimelineUpdated   bool
	TuningUpdated     bool
	GlyphsUpdated     bool
	BackgroundUpdated bool
	Err               error
}

// Changed reports whether anything visible was updated.
func (r Result) Changed() bool {
	return r.CatalogUpdated || r.TimelineUpdated || r.TuningUpdated || r.GlyphsUpdated || r.BackgroundUpdated
}

type Dispatcher struct {
	target Reloader
}

func New(target Reloader) *Dispatcher {
	return &Dispatcher{target: target}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		logging.Error(evt.Err)
		res.Err = evt.Err
		return res
	}
	switch evt.Kind {
	case backend.KindAssets:
		payload, ok := evt.Data.(assets.Payload)
		if !ok {
			return res
		}
		out, err := d.target.Reload(payload)
		if err != nil {
			logging.Warn("resource reload rejected", map[string]interface{}{
				"dir":   payload.Dir,
				"error": err.Error(),
			})
			res.Err = err
		}
		res.CatalogUpdated = out.CatalogChanged
		res.TimelineUpdated = out.TimelineChanged
		res.TuningUpdated = out.TuningChanged
		res.GlyphsUpdated = out.GlyphsChanged
		res.BackgroundUpdated = out.BackgroundChanged
	}
	return res
}
