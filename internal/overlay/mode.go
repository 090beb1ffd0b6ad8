package overlay

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/osd/internal/errors"
)

// Mode selects how verbose the overlay is. Entries opt in or out of modes
// through their Include and Exclude lists.
type Mode int

const (
	// FPS shows only the frame rate.
	FPS Mode = iota
	// Minimal shows a single line of battery, GPU, CPU and RAM readings.
	Minimal
	// Detail shows one line per subsystem plus the frame time graph.
	Detail
	// All shows everything Detail does.
	All
)

var modeNames = [...]string{"fps", "minimal", "detail", "all"}

// Modes returns every mode in declaration order.
func Modes() []Mode {
	return []Mode{FPS, Minimal, Detail, All}
}

// ModeNames returns the lowercase mode names in declaration order.
func ModeNames() []string {
	return append([]string(nil), modeNames[:]...)
}

// String returns the lowercase name used in config files and layouts.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// Next cycles to the following mode, wrapping after All.
func (m Mode) Next() Mode {
	return Mode((int(m) + 1) % len(modeNames))
}

// ParseMode converts a mode name to a Mode. Matching is case-insensitive.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return FPS, errors.New(errors.ErrConfig,
		fmt.Sprintf("'%s' is not an overlay mode", s),
		"Use one of: "+strings.Join(modeNames[:], ", "))
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func containsMode(modes []Mode, m Mode) bool {
	for _, candidate := range modes {
		if candidate == m {
			return true
		}
	}
	return false
}
