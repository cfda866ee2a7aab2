package command

import (
	"fmt"

	"github.com/atomicstack/darktriad/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Request encapsulates one session operation.
type Request struct {
	ID    string
	Label string
	Run   func() tea.Msg
}

// Bus runs session operations off the update goroutine.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps a request into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Run == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		msg := req.Run()
		if failed, ok := msg.(interface{ Failure() error }); ok && failed.Failure() != nil {
			events.Command.Error(req.ID, failed.Failure())
		}
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
