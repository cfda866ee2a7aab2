package ui

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type frameMsg struct {
	at time.Time
}

type glitchMsg struct{}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg{at: t}
	})
}

func glitchTick() tea.Cmd {
	return tea.Tick(glitchInterval, func(time.Time) tea.Msg {
		return glitchMsg{}
	})
}

func (m *Model) handleFrameMsg(msg tea.Msg) tea.Cmd {
	frame, ok := msg.(frameMsg)
	if !ok {
		return nil
	}
	now := frame.at
	if now.IsZero() {
		now = m.now()
	}
	m.lastFrame = now
	m.countFrame(now)
	m.advanceControls(now)
	if !m.loading {
		m.mediaTime = m.session.MediaTime()
	}
	if m.manual {
		return nil
	}
	return frameTick()
}

// countFrame recomputes fps over windows of at least half a second.
func (m *Model) countFrame(now time.Time) {
	if m.fpsMark.IsZero() {
		m.fpsMark = now
		return
	}
	m.frames++
	delta := now.Sub(m.fpsMark)
	if delta < fpsWindow {
		return
	}
	m.fps = int(math.Round(float64(m.frames) / delta.Seconds()))
	m.frames = 0
	m.fpsMark = now
}

func (m *Model) handleGlitchMsg(tea.Msg) tea.Cmd {
	m.glitch = (m.glitch + 1) % 3
	if m.manual {
		return nil
	}
	return glitchTick()
}
