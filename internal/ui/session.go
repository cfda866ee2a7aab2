package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/darktriad/internal/background"
	"github.com/atomicstack/darktriad/internal/logging/events"
	"github.com/atomicstack/darktriad/internal/session"
	"github.com/atomicstack/darktriad/internal/state"
	"github.com/atomicstack/darktriad/internal/ui/command"
	uistate "github.com/atomicstack/darktriad/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

type sessionLoadedMsg struct {
	payload session.ConfigPayload
}

type sessionEventMsg struct {
	events []session.Event
}

type swapResultMsg struct {
	mode       background.Mode
	requested  string
	background background.Descriptor
	err        error
}

// Failure lets the command bus trace failed swaps.
func (m swapResultMsg) Failure() error { return m.err }

func loadSessionCmd(s Session) tea.Cmd {
	return func() tea.Msg {
		return sessionLoadedMsg{payload: s.LoadSession()}
	}
}

func waitForSessionEvent(s Session) tea.Cmd {
	return func() tea.Msg {
		<-s.Events()
		return sessionEventMsg{events: s.Drain()}
	}
}

func (m *Model) swapCmd(mode background.Mode, id string) tea.Cmd {
	s := m.session
	label := mode.String()
	if id != "" {
		label = fmt.Sprintf("%s:%s", label, id)
	}
	return m.bus.Execute(command.Request{
		ID:    "swap:" + label,
		Label: label,
		Run: func() tea.Msg {
			desc, err := s.SwapBackground(mode, id)
			return swapResultMsg{mode: mode, requested: id, background: desc, err: err}
		},
	})
}

func (m *Model) handleSessionLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(sessionLoadedMsg)
	if !ok {
		return nil
	}
	m.applyConfig(loaded.payload, true, true)
	m.loading = false
	m.refreshSession()
	return nil
}

// applyConfig takes over a payload from the session. Glyph controls are only
// rebuilt when asked so that running reveals survive unrelated reloads.
func (m *Model) applyConfig(payload session.ConfigPayload, glyphs, catalog bool) {
	retime := payload.GlyphRateMs != m.config.GlyphRateMs || payload.RevealDurationMs != m.config.RevealDurationMs
	m.config = payload
	for _, info := range payload.Backgrounds {
		if info.ID == payload.CurrentBackgroundID {
			m.current = info.Descriptor
			break
		}
	}
	switch {
	case glyphs:
		m.buildControls()
	case retime:
		m.retime()
	}
	if catalog && m.picker != nil {
		m.picker.UpdateItems(m.pickerItems())
	}
}

// refreshSession pulls the state the session owns.
func (m *Model) refreshSession() {
	m.visibility = m.session.Visibility()
	m.clock, m.playErr = m.session.Playback()
	m.mediaTime = m.session.MediaTime()
	m.actions = m.session.Actions(state.DefaultActionLogSize)
	if !m.visibility.Buttons && (m.focus >= 0 || m.hover >= 0) {
		m.setPointer(-1, -1)
	}
}

func (m *Model) handleSessionEventMsg(msg tea.Msg) tea.Cmd {
	evtMsg, ok := msg.(sessionEventMsg)
	if !ok {
		return nil
	}
	for _, evt := range evtMsg.events {
		switch evt.Kind {
		case session.EventBackground:
			m.current = evt.Background
		case session.EventReveal:
			events.UI.Reveal(evt.Visibility.Nav, evt.Visibility.Buttons)
		}
	}
	m.refreshSession()
	if m.manual {
		return nil
	}
	return waitForSessionEvent(m.session)
}

func (m *Model) handleSwapResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(swapResultMsg)
	if !ok {
		return nil
	}
	if result.err != nil {
		m.errMsg = result.err.Error()
		return nil
	}
	m.errMsg = ""
	m.current = result.background
	m.config.CurrentBackgroundID = result.background.ID
	m.closePicker()
	m.refreshSession()
	return nil
}

func (m *Model) pickerItems() []uistate.Item {
	items := make([]uistate.Item, len(m.config.Backgrounds))
	for i, info := range m.config.Backgrounds {
		items[i] = uistate.Item{
			ID:     info.ID,
			Label:  info.DisplayLabel(),
			Detail: strings.ToLower(string(info.Kind)),
		}
	}
	return items
}
