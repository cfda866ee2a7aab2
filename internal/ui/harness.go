package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Harness drives a manual Model synchronously. Commands returned by Update
// are executed in place, so tests observe their effects before the next
// call.
type Harness struct {
	model *Model
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Start runs Init and everything it returns.
func (h *Harness) Start() {
	if h.model == nil {
		return
	}
	h.processCmd(h.model.Init())
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

// Pump delivers whatever session events are pending.
func (h *Harness) Pump() {
	if h.model == nil {
		return
	}
	h.Send(sessionEventMsg{events: h.model.session.Drain()})
}

// Frame delivers one animation frame stamped at.
func (h *Harness) Frame(at time.Time) {
	h.Send(frameMsg{at: at})
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, c := range msg {
			h.processCmd(c)
		}
	default:
		mdl, next := h.model.Update(msg)
		if updated, ok := mdl.(*Model); ok {
			h.model = updated
		}
		h.processCmd(next)
	}
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
