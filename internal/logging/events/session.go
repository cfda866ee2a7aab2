package events

import "github.com/atomicstack/darktriad/internal/logging"

type SessionTracer struct{}

var Session = SessionTracer{}

func (SessionTracer) Load(sessionID, backgroundID string, cues int) {
	logging.Trace("session.load", map[string]interface{}{
		"session":    sessionID,
		"background": backgroundID,
		"cues":       cues,
	})
}

func (SessionTracer) Swap(sessionID, mode, requested, selected string) {
	logging.Trace("session.swap", map[string]interface{}{
		"session":   sessionID,
		"mode":      mode,
		"requested": requested,
		"selected":  selected,
	})
}

func (SessionTracer) Reload(sessionID string, catalogChanged, timelineChanged bool) {
	logging.Trace("session.reload", map[string]interface{}{
		"session":  sessionID,
		"catalog":  catalogChanged,
		"timeline": timelineChanged,
	})
}

func (SessionTracer) Playback(backgroundID, clock string, err error) {
	payload := map[string]interface{}{"background": backgroundID, "clock": clock}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("session.playback", payload)
}

func (SessionTracer) Close(sessionID string) {
	logging.Trace("session.close", map[string]interface{}{"session": sessionID})
}
