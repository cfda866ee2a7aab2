package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/atomicstack/darktriad/internal/assets"
	"github.com/atomicstack/darktriad/internal/logging/events"
	"github.com/fsnotify/fsnotify"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	// KindAssets carries a freshly loaded assets.Payload.
	KindAssets Kind = iota
)

// Event conveys updated data or an error from a backend reload.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Loader reloads the resources directory.
type Loader interface {
	Load() (assets.Payload, error)
}

// Watcher observes the resources directory and publishes a reload whenever
// one of the resource files changes. Bursts of filesystem events collapse
// into a single reload once the directory has been quiet for the debounce
// period.
type Watcher struct {
	dir      string
	loader   Loader
	debounce time.Duration
	gate     *reloadGate

	ctx    context.Context
	cancel context.CancelFunc

	fsw    *fsnotify.Watcher
	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching dir. Reloads are spaced at least minInterval
// apart.
func NewWatcher(dir string, loader Loader, debounce, minInterval time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		dir:      dir,
		loader:   loader,
		debounce: debounce,
		gate:     newReloadGate(minInterval),
		ctx:      ctx,
		cancel:   cancel,
		fsw:      fsw,
		events:   make(chan Event, 16),
	}

	w.wg.Add(1)
	go w.run()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w, nil
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The loop exits after its current reload
// completes; use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watch loop has exited and the events channel is
// closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()
	defer w.fsw.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !assets.IsResourceFile(filepath.Base(ev.Name)) {
				continue
			}
			events.Assets.Change(ev.Name, ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if !w.emit(Event{Kind: KindAssets, Err: err}) {
				return
			}
		case <-fire:
			fire = nil
			if !w.gate.pass(w.ctx) {
				return
			}
			payload, err := w.loader.Load()
			if !w.emit(Event{Kind: KindAssets, Data: payload, Err: err}) {
				return
			}
		}
	}
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}
