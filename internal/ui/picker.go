package ui

import (
	"github.com/atomicstack/darktriad/internal/background"
	"github.com/atomicstack/darktriad/internal/logging/events"
	uistate "github.com/atomicstack/darktriad/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	pickerID         = "picker:background"
	pickerTitle      = "Choose a Vision"
	pickerMaxVisible = 8
)

func (m *Model) openPicker() {
	m.picker = uistate.NewLevel(pickerID, pickerTitle, m.pickerItems())
	m.picker.Focus(m.current.ID)
	m.picker.EnsureCursorVisible(pickerMaxVisible)
	events.UI.PickerOpen(len(m.picker.Items))
}

func (m *Model) closePicker() {
	m.picker = nil
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	p := m.picker
	switch {
	case key.Matches(msg, pickerKeys.Close):
		m.closePicker()
		return nil
	case key.Matches(msg, pickerKeys.Choose):
		item, ok := p.Selected()
		if !ok {
			return nil
		}
		return m.swapCmd(background.ModeSet, item.ID)
	case key.Matches(msg, pickerKeys.Up):
		if p.MoveCursor(-1) {
			events.UI.PickerCursor(p.Cursor)
		}
	case key.Matches(msg, pickerKeys.Down):
		if p.MoveCursor(1) {
			events.UI.PickerCursor(p.Cursor)
		}
	case key.Matches(msg, pickerKeys.Clear):
		if p.ClearFilter() {
			events.Filter.Cleared(p.ID)
		}
	case key.Matches(msg, pickerKeys.WordBackspace):
		if p.DeleteFilterWordBackward() {
			events.Filter.WordBackspace(p.ID, p.Filter)
		}
	case key.Matches(msg, pickerKeys.Backspace):
		if p.DeleteFilterRuneBackward() {
			events.Filter.Backspace(p.ID, p.Filter)
		}
	case msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace:
		if p.InsertFilterText(string(msg.Runes)) {
			events.Filter.Append(p.ID, p.Filter)
		}
	}
	p.EnsureCursorVisible(pickerMaxVisible)
	return nil
}
