package parsers

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSysfsInt parses a single-integer sysfs attribute such as
// power_supply/BAT0/capacity or thermal_zone0/temp.
func ParseSysfsInt(content string) (int64, error) {
	s := strings.TrimSpace(content)
	if s == "" {
		return 0, fmt.Errorf("empty sysfs value")
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid sysfs value %q: %w", s, err)
	}
	return v, nil
}

// MilliCelsius converts a thermal_zone temp reading to degrees Celsius.
func MilliCelsius(v int64) float64 {
	return float64(v) / 1000
}

// MicroToUnit converts µW, µV or µA readings to W, V or A.
func MicroToUnit(v int64) float64 {
	return float64(v) / 1e6
}

// RAPLWatts computes average package power from two energy_uj readings taken
// seconds apart. ok is false when the counter wrapped or no time passed.
func RAPLWatts(prevUJ, curUJ int64, seconds float64) (watts float64, ok bool) {
	if seconds <= 0 || curUJ < prevUJ {
		return 0, false
	}
	return float64(curUJ-prevUJ) / 1e6 / seconds, true
}
