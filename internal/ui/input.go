package ui

import (
	"math"

	"github.com/atomicstack/darktriad/internal/background"
	"github.com/atomicstack/darktriad/internal/logging/events"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	events.UI.Key(keyMsg.String())
	if key.Matches(keyMsg, m.keys.Quit) && (m.picker == nil || keyMsg.String() == "ctrl+c") {
		return tea.Quit
	}
	if m.loading {
		return nil
	}
	if m.picker != nil {
		return m.handlePickerKey(keyMsg)
	}
	m.errMsg = ""

	switch {
	case key.Matches(keyMsg, m.keys.Next), key.Matches(keyMsg, m.keys.Activate):
		return m.swapCmd(background.ModeNext, "")
	case key.Matches(keyMsg, m.keys.Previous):
		return m.swapCmd(background.ModePrevious, "")
	case key.Matches(keyMsg, m.keys.Picker):
		m.openPicker()
	case key.Matches(keyMsg, m.keys.Left):
		m.moveFocus(-1)
	case key.Matches(keyMsg, m.keys.Right):
		m.moveFocus(1)
	case key.Matches(keyMsg, m.keys.AuraUp):
		m.adjustIntensity(intensityStep)
	case key.Matches(keyMsg, m.keys.AuraDown):
		m.adjustIntensity(-intensityStep)
	case key.Matches(keyMsg, m.keys.Debug):
		m.showDebug = !m.showDebug
	}
	return nil
}

func (m *Model) adjustIntensity(delta float64) {
	value := math.Round((m.intensity+delta)*100) / 100
	if value < minIntensity {
		value = minIntensity
	}
	if value > maxIntensity {
		value = maxIntensity
	}
	if value == m.intensity {
		return
	}
	m.intensity = value
	events.UI.Intensity(value)
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok || m.loading || m.picker != nil {
		return nil
	}
	switch ev.Action {
	case tea.MouseActionMotion:
		m.setHover(m.hits.button(ev.X, ev.Y))
	case tea.MouseActionPress:
		if ev.Button != tea.MouseButtonLeft {
			return nil
		}
		if m.hits.title.contains(ev.X, ev.Y) {
			return m.swapCmd(background.ModeNext, "")
		}
		if m.visibility.Nav && m.hits.cycle.contains(ev.X, ev.Y) {
			return m.swapCmd(background.ModeNext, "")
		}
	}
	return nil
}
