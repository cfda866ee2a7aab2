package command

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type doneMsg struct{ err error }

func (m doneMsg) Failure() error { return m.err }

func TestExecuteRunsRequest(t *testing.T) {
	calls := 0
	cmd := New().Execute(Request{ID: "swap:next", Label: "next", Run: func() tea.Msg {
		calls++
		return doneMsg{}
	}})
	if calls != 0 {
		t.Fatalf("request must not run before the command is executed")
	}
	msg := cmd()
	if _, ok := msg.(doneMsg); !ok || calls != 1 {
		t.Fatalf("unexpected result %T after %d calls", msg, calls)
	}
}

func TestExecuteSkipsNilRun(t *testing.T) {
	if msg := New().Execute(Request{ID: "noop"})(); msg != nil {
		t.Fatalf("expected nil msg, got %T", msg)
	}
}

func TestExecutePassesFailures(t *testing.T) {
	boom := errors.New("boom")
	msg := New().Execute(Request{ID: "swap:set", Run: func() tea.Msg { return doneMsg{err: boom} }})()
	if got, ok := msg.(doneMsg); !ok || !errors.Is(got.err, boom) {
		t.Fatalf("expected failure passthrough, got %#v", msg)
	}
}
