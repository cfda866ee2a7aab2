package main

import (
	"bytes"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/darktriad/internal/app"
	"github.com/atomicstack/darktriad/internal/config"
	"github.com/atomicstack/darktriad/internal/testutil"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			ResourcesDir: "resources",
			StoreBackend: "memory",
			PollInterval: 120 * time.Millisecond,
			Width:        80,
			Height:       24,
			ShowFooter:   true,
			Debug:        true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"resources": "resources",
			"width":     "80",
			"height":    "24",
			"footer":    "true",
			"debug":     "true",
		},
		Args: []string{"--resources", "resources"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["resources"] != "resources" {
		t.Fatalf("expected resources flag %q, got %v", "resources", flagsValue["resources"])
	}
	if flagsValue["width"] != "80" {
		t.Fatalf("expected width 80, got %v", flagsValue["width"])
	}
	if flagsValue["height"] != "24" {
		t.Fatalf("expected height 24, got %v", flagsValue["height"])
	}
	if flagsValue["footer"] != "true" {
		t.Fatalf("expected footer flag true, got %v", flagsValue["footer"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["debug"] != "true" {
		t.Fatalf("expected debug flag true, got %v", flagsValue["debug"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

func TestRunDispatchesHeadlessSwap(t *testing.T) {
	dir := testutil.ResourceDir(t, map[string]string{"backgrounds.json": testutil.BackgroundsJSON})
	cfg, err := config.LoadArgs([]string{
		"--resources", dir,
		"--store", "memory",
		"--swap", "set:still",
	}, nil)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	var out bytes.Buffer
	if err := run(cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), `"id": "still"`) {
		t.Fatalf("expected still in output, got %s", out.String())
	}
}

func TestPrintTimelineGolden(t *testing.T) {
	bin := testutil.BuildBinary(t)
	dir := testutil.ResourceDir(t, map[string]string{"timeline.json": testutil.RevealTimelineJSON})
	cmd := exec.Command(bin,
		"--resources", dir,
		"--store", "memory",
		"--log-file", filepath.Join(t.TempDir(), "darktriad.log"),
		"--print-timeline",
	)
	cmd.Env = []string{"HOME=" + t.TempDir()}
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("run binary: %v", err)
	}
	testutil.AssertGolden(t, "print_timeline.golden", string(out))
}
