package metrics

import (
	"time"
)

// Snapshot is an immutable set of values sampled at one instant.
type Snapshot struct {
	At     time.Time
	values Map
}

// NewSnapshot wraps values taken at the given time.
func NewSnapshot(at time.Time, values map[string]string) *Snapshot {
	return &Snapshot{At: at, values: NewMap(values)}
}

// Lookup implements Source. A nil snapshot resolves nothing.
func (s *Snapshot) Lookup(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	return s.values.Lookup(name)
}

// Len returns the number of attributes in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}

// Names returns the attribute names in sorted order.
func (s *Snapshot) Names() []string {
	if s == nil {
		return nil
	}
	return s.values.Names()
}
