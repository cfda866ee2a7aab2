package app

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/atomicstack/darktriad/internal/background"
	"github.com/atomicstack/darktriad/internal/session"
	"github.com/atomicstack/darktriad/internal/store"
	"github.com/atomicstack/darktriad/internal/testutil"
	"github.com/atomicstack/darktriad/internal/timeline"
)

func testConfig(t *testing.T, files map[string]string) Config {
	t.Helper()
	return Config{
		ResourcesDir: testutil.ResourceDir(t, files),
		StateDir:     t.TempDir(),
		StoreBackend: store.BackendSQLite,
	}
}

func TestSwapPersistsAcrossRuns(t *testing.T) {
	cfg := testConfig(t, map[string]string{"backgrounds.json": testutil.BackgroundsJSON})

	var out bytes.Buffer
	if err := Swap(cfg, background.ModeNext, "", &out); err != nil {
		t.Fatalf("swap: %v", err)
	}
	var info session.BackgroundInfo
	if err := json.Unmarshal(out.Bytes(), &info); err != nil {
		t.Fatalf("decode swap output: %v", err)
	}
	if info.ID != "beta" {
		t.Fatalf("expected beta, got %s", info.ID)
	}

	out.Reset()
	if err := Swap(cfg, background.ModeNext, "", &out); err != nil {
		t.Fatalf("second swap: %v", err)
	}
	out.Reset()
	if err := DumpSession(cfg, &out); err != nil {
		t.Fatalf("dump: %v", err)
	}
	var payload session.ConfigPayload
	if err := json.Unmarshal(out.Bytes(), &payload); err != nil {
		t.Fatalf("decode dump output: %v", err)
	}
	if payload.CurrentBackgroundID != "still" {
		t.Fatalf("expected still to be persisted, got %s", payload.CurrentBackgroundID)
	}
	if len(payload.Backgrounds) != 3 {
		t.Fatalf("expected 3 backgrounds, got %d", len(payload.Backgrounds))
	}
}

func TestSwapSetUnknownFallsBackToFirst(t *testing.T) {
	cfg := testConfig(t, map[string]string{"backgrounds.json": testutil.BackgroundsJSON})
	cfg.StoreBackend = store.BackendMemory

	var out bytes.Buffer
	if err := Swap(cfg, background.ModeSet, "nope", &out); err != nil {
		t.Fatalf("swap: %v", err)
	}
	var info session.BackgroundInfo
	if err := json.Unmarshal(out.Bytes(), &info); err != nil {
		t.Fatalf("decode swap output: %v", err)
	}
	if info.ID != "alpha" {
		t.Fatalf("expected alpha, got %s", info.ID)
	}
}

func TestPrintTimelineKeepsSourceOrder(t *testing.T) {
	cfg := testConfig(t, map[string]string{
		"timeline.json": `[{"at": 3, "action": "reveal.buttons"}, {"at": 0, "action": "reveal.nav"}]`,
	})

	var out bytes.Buffer
	if err := PrintTimeline(cfg, &out); err != nil {
		t.Fatalf("print timeline: %v", err)
	}
	var cues []timeline.Cue
	if err := json.Unmarshal(out.Bytes(), &cues); err != nil {
		t.Fatalf("decode timeline: %v", err)
	}
	if len(cues) != 2 || cues[0].Action != "reveal.buttons" {
		t.Fatalf("unexpected cues %+v", cues)
	}
}

func TestOpenReplacesEmptyCatalog(t *testing.T) {
	cfg := testConfig(t, map[string]string{"backgrounds.json": `[]`})
	cfg.StoreBackend = store.BackendMemory
	rt, err := Open(cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rt.Close()
	payload := rt.Session.LoadSession()
	if len(payload.Backgrounds) == 0 || payload.CurrentBackgroundID != "hero1" {
		t.Fatalf("expected built-in backgrounds, got %+v", payload.Backgrounds)
	}
}
