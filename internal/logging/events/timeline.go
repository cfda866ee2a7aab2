package events

import "github.com/atomicstack/darktriad/internal/logging"

type CueTracer struct{}

var Cue = CueTracer{}

func (CueTracer) Fire(backgroundID, action string, at, t float64) {
	logging.Trace("cue.fire", map[string]interface{}{
		"background": backgroundID,
		"action":     action,
		"at":         at,
		"t":          t,
	})
}

func (CueTracer) Reset(backgroundID string, cues int) {
	logging.Trace("cue.reset", map[string]interface{}{"background": backgroundID, "cues": cues})
}

func (CueTracer) Attach(backgroundID string, generation uint64) {
	logging.Trace("cue.attach", map[string]interface{}{"background": backgroundID, "generation": generation})
}

func (CueTracer) Detach(backgroundID string, generation uint64) {
	logging.Trace("cue.detach", map[string]interface{}{"background": backgroundID, "generation": generation})
}

func (CueTracer) Stale(generation, current uint64) {
	logging.Trace("cue.stale", map[string]interface{}{"generation": generation, "current": current})
}

func (CueTracer) Exhausted(backgroundID string) {
	logging.Trace("cue.exhausted", map[string]interface{}{"background": backgroundID})
}
