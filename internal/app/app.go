// Package app wires resources, the preferences store and the session into
// either the interactive program or a one-shot headless operation.
package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/atomicstack/darktriad/internal/assets"
	"github.com/atomicstack/darktriad/internal/backend"
	"github.com/atomicstack/darktriad/internal/background"
	"github.com/atomicstack/darktriad/internal/logging"
	"github.com/atomicstack/darktriad/internal/logging/events"
	"github.com/atomicstack/darktriad/internal/playback"
	"github.com/atomicstack/darktriad/internal/session"
	"github.com/atomicstack/darktriad/internal/store"
	"github.com/atomicstack/darktriad/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// reloadInterval is the minimum spacing between two resource reloads.
const reloadInterval = 500 * time.Millisecond

// Config describes user-provided application options.
type Config struct {
	ResourcesDir   string
	StateDir       string
	StoreBackend   string
	Clock          playback.ClockMode
	PollInterval   time.Duration
	FrameRate      float64
	Width          int
	Height         int
	ShowFooter     bool
	Debug          bool
	Watch          bool
	ReloadDebounce time.Duration
}

// Runtime holds what Open builds. Close releases it.
type Runtime struct {
	Loader  *assets.Loader
	Dir     string
	Store   store.Store
	Session *session.Session
}

// Open loads the resources, opens the store and creates a session that has
// not been started yet.
func Open(cfg Config) (*Runtime, error) {
	loader := assets.NewLoader(cfg.ResourcesDir)
	payload, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load resources: %w", err)
	}
	kv, err := store.Open(cfg.StoreBackend, filepath.Join(cfg.StateDir, store.DefaultFileName))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	sess, err := session.New(payload, kv, session.Options{
		Clock:        cfg.Clock,
		PollInterval: cfg.PollInterval,
		FrameRate:    cfg.FrameRate,
	})
	if err != nil {
		kv.Close()
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &Runtime{Loader: loader, Dir: payload.Dir, Store: kv, Session: sess}, nil
}

// Close stops the session before closing the store it writes to.
func (r *Runtime) Close() error {
	return errors.Join(r.Session.Close(), r.Store.Close())
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	rt, err := Open(cfg)
	if err != nil {
		return err
	}
	defer rt.Close()
	if err := rt.Session.Start(); err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	var watcher *backend.Watcher
	if cfg.Watch {
		watcher, err = backend.NewWatcher(rt.Dir, rt.Loader, cfg.ReloadDebounce, reloadInterval)
		if err != nil {
			logging.Warn("resource watcher disabled", map[string]interface{}{
				"dir":   rt.Dir,
				"error": err.Error(),
			})
			watcher = nil
		} else {
			defer func() {
				watcher.Stop()
				watcher.Wait()
			}()
		}
	}

	model := ui.NewModel(ui.Options{
		Session:    rt.Session,
		Watcher:    watcher,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Debug:      cfg.Debug,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		events.App.Stop("killed")
		return nil
	}
	events.App.Stop("exit")
	return err
}

// DumpSession writes the payload the presentation would be built from.
func DumpSession(cfg Config, w io.Writer) error {
	return withRuntime(cfg, func(rt *Runtime) error {
		return writeJSON(w, rt.Session.LoadSession())
	})
}

// PrintTimeline writes the cue list in source order.
func PrintTimeline(cfg Config, w io.Writer) error {
	return withRuntime(cfg, func(rt *Runtime) error {
		return writeJSON(w, rt.Session.PlayTimeline())
	})
}

// Swap performs one rotation, persists it and writes the chosen background.
func Swap(cfg Config, mode background.Mode, id string, w io.Writer) error {
	return withRuntime(cfg, func(rt *Runtime) error {
		desc, err := rt.Session.SwapBackground(mode, id)
		if err != nil {
			return err
		}
		return writeJSON(w, session.NewBackgroundInfo(desc))
	})
}

func withRuntime(cfg Config, fn func(*Runtime) error) error {
	rt, err := Open(cfg)
	if err != nil {
		return err
	}
	err = fn(rt)
	if cerr := rt.Close(); err == nil {
		err = cerr
	}
	return err
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
