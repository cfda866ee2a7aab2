package background

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// StateKey is the durable store key holding the last selected background id.
const StateKey = "lastBackgroundId"

// ErrEmptyCatalog is returned when a selection is attempted on an empty catalog.
var ErrEmptyCatalog = errors.New("no backgrounds available")

// ErrUnknownMode is returned by ParseMode for unrecognised mode names.
var ErrUnknownMode = errors.New("unknown selection mode")

// Mode picks how Select moves through the catalog.
type Mode int

const (
	ModeNext Mode = iota
	ModePrevious
	ModeSet
)

func (m Mode) String() string {
	switch m {
	case ModePrevious:
		return "previous"
	case ModeSet:
		return "set"
	default:
		return "next"
	}
}

// ParseMode accepts next, previous and set. An empty value means next.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "next":
		return ModeNext, nil
	case "previous", "prev":
		return ModePrevious, nil
	case "set":
		return ModeSet, nil
	}
	return ModeNext, fmt.Errorf("%w: %q", ErrUnknownMode, value)
}

// Select chooses a descriptor from the catalog. It is pure: the caller is
// responsible for persisting the returned descriptor's id.
//
// ModeSet with an explicit id returns that entry, or the first entry when the
// id is unknown. ModeSet without an id behaves like ModeNext. Next and
// Previous step from the persisted id with wrap-around; a missing or stale
// persisted id yields the first entry.
func Select(catalog Catalog, persisted string, mode Mode, explicitID string) (Descriptor, error) {
	n := catalog.Len()
	if n == 0 {
		return Descriptor{}, ErrEmptyCatalog
	}
	if mode == ModeSet && explicitID != "" {
		entry, _ := catalog.Lookup(explicitID)
		return entry, nil
	}
	idx := catalog.IndexOf(persisted)
	if idx < 0 {
		return catalog.At(0), nil
	}
	if mode == ModePrevious {
		return catalog.At((idx - 1 + n) % n), nil
	}
	return catalog.At((idx + 1) % n), nil
}

// KV is the subset of the durable store the rotator needs.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Rotator couples Select with persistence so that every returned selection
// has already been written to the store.
type Rotator struct {
	mu sync.Mutex
	kv KV
}

func NewRotator(kv KV) *Rotator {
	return &Rotator{kv: kv}
}

// Persisted returns the stored background id, or "" when none was stored.
func (r *Rotator) Persisted() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.persistedLocked()
}

func (r *Rotator) persistedLocked() (string, error) {
	id, ok, err := r.kv.Get(StateKey)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", StateKey, err)
	}
	if !ok {
		return "", nil
	}
	return id, nil
}

// Current resolves the background a new session starts on: the persisted
// entry when it still exists, otherwise the first entry. Nothing is written.
func (r *Rotator) Current(catalog Catalog) (Descriptor, error) {
	if catalog.Len() == 0 {
		return Descriptor{}, ErrEmptyCatalog
	}
	id, err := r.Persisted()
	if err != nil {
		return Descriptor{}, err
	}
	entry, _ := catalog.Lookup(id)
	return entry, nil
}

// Swap selects and persists the next background. The descriptor is only
// returned once the store write succeeded.
func (r *Rotator) Swap(catalog Catalog, mode Mode, explicitID string) (Descriptor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	persisted, err := r.persistedLocked()
	if err != nil {
		return Descriptor{}, err
	}
	entry, err := Select(catalog, persisted, mode, explicitID)
	if err != nil {
		return Descriptor{}, err
	}
	if err := r.kv.Set(StateKey, entry.ID); err != nil {
		return Descriptor{}, fmt.Errorf("persist %s: %w", StateKey, err)
	}
	return entry, nil
}
