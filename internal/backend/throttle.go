package backend

import (
	"context"
	"sync"
	"time"
)

// reloadGate spaces resource reloads at least interval apart.
type reloadGate struct {
	interval time.Duration

	mu   sync.Mutex
	last time.Time
}

func newReloadGate(interval time.Duration) *reloadGate {
	if interval < 0 {
		interval = 0
	}
	return &reloadGate{interval: interval}
}

// pass blocks until the next reload may run. It reports false when ctx is
// cancelled first.
func (g *reloadGate) pass(ctx context.Context) bool {
	if g == nil || g.interval == 0 {
		return ctx.Err() == nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.last.IsZero() {
		if wait := g.interval - time.Since(g.last); wait > 0 {
			timer := time.NewTimer(wait)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return false
			case <-timer.C:
			}
		}
	}
	g.last = time.Now()
	return true
}
