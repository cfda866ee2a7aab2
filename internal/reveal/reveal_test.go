package reveal

import (
	"testing"

	"github.com/atomicstack/darktriad/internal/playback"
	"github.com/atomicstack/darktriad/internal/timeline"
)

func TestEmptyTimelineShowsEverything(t *testing.T) {
	m := New(nil)
	if vis := m.Visibility(); !vis.Nav || !vis.Buttons {
		t.Fatalf("expected both regions visible, got %+v", vis)
	}
}

func TestOnlyTargetedRegionsStartHidden(t *testing.T) {
	m := New([]timeline.Cue{{At: 1, Action: ActionButtons}, {At: 2, Action: "flash"}})
	if !m.Visible(RegionNav) {
		t.Fatalf("nav is not targeted and should be visible")
	}
	if m.Visible(RegionButtons) {
		t.Fatalf("buttons are targeted and should start hidden")
	}
}

func TestHandleIsOneDirectional(t *testing.T) {
	m := New([]timeline.Cue{{At: 0, Action: ActionNav}})
	var seen []Visibility
	cancel := m.Subscribe(func(v Visibility) { seen = append(seen, v) })
	defer cancel()

	if !m.Handle(ActionNav, nil) {
		t.Fatalf("expected first reveal to change state")
	}
	if m.Handle(ActionNav, nil) {
		t.Fatalf("second reveal must be a no-op")
	}
	if m.Handle("unknown.action", nil) {
		t.Fatalf("unknown actions must be ignored")
	}
	if len(seen) != 1 || !seen[0].Nav {
		t.Fatalf("expected one observer call, got %+v", seen)
	}
}

func TestTimelineRevealScenario(t *testing.T) {
	cues := []timeline.Cue{{At: 0, Action: ActionNav}, {At: 2, Action: ActionButtons}}
	m := New(cues)
	d := timeline.NewDispatcher(func(f timeline.Fired) {
		m.Handle(f.Action, f.Payload)
	})
	if err := d.Load(cues); err != nil {
		t.Fatalf("load: %v", err)
	}
	d.Reset("hero1")
	if err := d.Attach(playback.Static{}); err != nil {
		t.Fatalf("attach: %v", err)
	}

	if vis := m.Visibility(); !vis.Nav || vis.Buttons {
		t.Fatalf("after t=0 expected nav only, got %+v", vis)
	}
	d.Tick(1.9)
	if m.Visible(RegionButtons) {
		t.Fatalf("buttons must stay hidden before t=2")
	}
	d.Tick(2.0)
	if vis := m.Visibility(); !vis.Nav || !vis.Buttons {
		t.Fatalf("after t=2 expected both visible, got %+v", vis)
	}
}

func TestResetRederivesFromNewCues(t *testing.T) {
	m := New([]timeline.Cue{{At: 0, Action: ActionNav}})
	m.Handle(ActionNav, nil)
	m.Reset([]timeline.Cue{{At: 0, Action: ActionNav}})
	if m.Visible(RegionNav) {
		t.Fatalf("expected nav hidden again after reset")
	}
}
