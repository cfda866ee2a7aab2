package background

import (
	"fmt"
	"strings"
)

// Kind distinguishes looping video backgrounds from static images.
type Kind string

const (
	KindVideo Kind = "video"
	KindImage Kind = "image"
)

// DefaultOverlayIntensity applies when a descriptor omits its intensity.
const DefaultOverlayIntensity = 0.5

// ParseKind maps the asset spelling of a kind onto Kind.
func ParseKind(value string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case KindVideo:
		return KindVideo, nil
	case KindImage:
		return KindImage, nil
	}
	return "", fmt.Errorf("unknown background kind %q", value)
}

// Descriptor describes one selectable background.
type Descriptor struct {
	ID               string  `json:"id"`
	MediaPath        string  `json:"mediaPath"`
	Kind             Kind    `json:"kind"`
	Label            string  `json:"label,omitempty"`
	OverlayIntensity float64 `json:"overlayIntensity"`
}

// DisplayLabel falls back to the id when no label was configured.
func (d Descriptor) DisplayLabel() string {
	if strings.TrimSpace(d.Label) != "" {
		return d.Label
	}
	return d.ID
}

// Static reports whether the background has no playback clock.
func (d Descriptor) Static() bool {
	return d.Kind == KindImage
}

// OverlayOpacity scales an overlay intensity by the user multiplier and
// clamps the result to [0, 1].
func OverlayOpacity(intensity, multiplier float64) float64 {
	v := intensity * multiplier
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Catalog is an ordered, immutable list of descriptors. Order defines the
// rotation cycle.
type Catalog struct {
	entries []Descriptor
}

// NewCatalog copies entries into a catalog.
func NewCatalog(entries []Descriptor) Catalog {
	return Catalog{entries: cloneDescriptors(entries)}
}

func (c Catalog) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the catalog contents.
func (c Catalog) Entries() []Descriptor {
	return cloneDescriptors(c.entries)
}

func (c Catalog) At(index int) Descriptor {
	return c.entries[index]
}

// IndexOf returns the position of id, or -1.
func (c Catalog) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, entry := range c.entries {
		if entry.ID == id {
			return i
		}
	}
	return -1
}

// Lookup returns the descriptor named id, falling back to the first entry.
// ok is false only for an empty catalog.
func (c Catalog) Lookup(id string) (Descriptor, bool) {
	if len(c.entries) == 0 {
		return Descriptor{}, false
	}
	if idx := c.IndexOf(id); idx >= 0 {
		return c.entries[idx], true
	}
	return c.entries[0], true
}

// Equal reports whether both catalogs hold the same descriptors in order.
func (c Catalog) Equal(other Catalog) bool {
	if len(c.entries) != len(other.entries) {
		return false
	}
	for i := range c.entries {
		if c.entries[i] != other.entries[i] {
			return false
		}
	}
	return true
}

func cloneDescriptors(entries []Descriptor) []Descriptor {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]Descriptor, len(entries))
	copy(dup, entries)
	return dup
}
