package events

import "github.com/atomicstack/darktriad/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Command = CommandTracer{}
)

func (UITracer) Key(key string) {
	logging.Trace("ui.key", map[string]interface{}{"key": key})
}

func (UITracer) Focus(control string, focused bool) {
	logging.Trace("ui.focus", map[string]interface{}{"control": control, "focused": focused})
}

func (UITracer) Intensity(value float64) {
	logging.Trace("ui.intensity", map[string]interface{}{"value": value})
}

func (UITracer) Reveal(nav, buttons bool) {
	logging.Trace("ui.reveal", map[string]interface{}{"nav": nav, "buttons": buttons})
}

func (UITracer) PickerOpen(entries int) {
	logging.Trace("ui.picker.open", map[string]interface{}{"entries": entries})
}

func (UITracer) PickerCursor(cursor int) {
	logging.Trace("ui.picker.cursor", map[string]interface{}{"cursor": cursor})
}

func (FilterTracer) Cleared(levelID string) {
	logging.Trace("filter.clear", map[string]interface{}{"level": levelID})
}

func (FilterTracer) Append(levelID, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"level": levelID, "filter": filter})
}

func (FilterTracer) Backspace(levelID, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"level": levelID, "filter": filter})
}

func (FilterTracer) WordBackspace(levelID, filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"level": levelID, "filter": filter})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}

func (CommandTracer) Error(id string, err error) {
	if err == nil {
		return
	}
	logging.Trace("command.error", map[string]interface{}{"id": id, "error": err.Error()})
}
