package timeline

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
)

// Cue is a timed action. At is media time in seconds.
type Cue struct {
	At      float64        `json:"at" yaml:"at"`
	Action  string         `json:"action" yaml:"action"`
	Payload map[string]any `json:"payload,omitempty" yaml:"payload,omitempty"`
}

var (
	ErrNegativeAt  = errors.New("cue time must be >= 0")
	ErrEmptyAction = errors.New("cue action must not be empty")
)

func (c Cue) Validate() error {
	if c.At < 0 {
		return fmt.Errorf("%w (got %v)", ErrNegativeAt, c.At)
	}
	if c.Action == "" {
		return ErrEmptyAction
	}
	return nil
}

// Validate checks every cue, reporting the first invalid index.
func Validate(cues []Cue) error {
	for i, cue := range cues {
		if err := cue.Validate(); err != nil {
			return fmt.Errorf("cue %d: %w", i, err)
		}
	}
	return nil
}

// Sorted returns a copy of cues ordered by At. Cues sharing a time keep their
// declaration order.
func Sorted(cues []Cue) []Cue {
	out := Clone(cues)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].At < out[j].At
	})
	return out
}

// Clone copies the slice and each payload map.
func Clone(cues []Cue) []Cue {
	if len(cues) == 0 {
		return nil
	}
	out := make([]Cue, len(cues))
	for i, cue := range cues {
		out[i] = cue
		if cue.Payload != nil {
			payload := make(map[string]any, len(cue.Payload))
			for k, v := range cue.Payload {
				payload[k] = v
			}
			out[i].Payload = payload
		}
	}
	return out
}

// Contains reports whether any cue names action.
func Contains(cues []Cue, action string) bool {
	for _, cue := range cues {
		if cue.Action == action {
			return true
		}
	}
	return false
}

// Equal compares two cue lists element by element. Nil and empty payloads
// are equal.
func Equal(a, b []Cue) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].At != b[i].At || a[i].Action != b[i].Action {
			return false
		}
		if len(a[i].Payload) == 0 && len(b[i].Payload) == 0 {
			continue
		}
		if !reflect.DeepEqual(a[i].Payload, b[i].Payload) {
			return false
		}
	}
	return true
}
