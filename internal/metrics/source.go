// Package metrics provides the named, pre-formatted values an overlay
// template reads through {NAME} placeholders.
//
// Names are case-insensitive. Values are final display strings: sources do
// any rounding or unit conversion, the overlay engine only substitutes.
package metrics

import (
	"sort"
	"strings"
)

// Attribute names produced by the local collector.
const (
	BatteryPercent = "BATT_%"
	BatteryWatts   = "BATT_W"
	CPUPercent     = "CPU_%"
	CPUWatts       = "CPU_W"
	CPUTemp        = "CPU_T"
	GPUPercent     = "GPU_%"
	GPUWatts       = "GPU_W"
	GPUTemp        = "GPU_T"
	GPUMemoryMB    = "GPU_MB"
	MemoryMB       = "MEM_MB"
	MemoryGB       = "MEM_GB"
)

// Attributes returns every name the local collector can produce.
func Attributes() []string {
	return []string{
		BatteryPercent, BatteryWatts,
		CPUPercent, CPUWatts, CPUTemp,
		GPUPercent, GPUWatts, GPUTemp, GPUMemoryMB,
		MemoryMB, MemoryGB,
	}
}

// IsAttribute reports whether the collector produces name.
func IsAttribute(name string) bool {
	upper := strings.ToUpper(name)
	for _, a := range Attributes() {
		if a == upper {
			return true
		}
	}
	return false
}

// Source resolves a metric name to its display value.
// Implementations must be safe for concurrent Lookup calls if the overlay is
// rendered from more than one goroutine.
type Source interface {
	Lookup(name string) (string, bool)
}

// Map is a static, case-insensitive Source. Keys are stored upper-cased.
type Map map[string]string

// NewMap copies values into a Map, normalizing key case.
func NewMap(values map[string]string) Map {
	m := make(Map, len(values))
	for k, v := range values {
		m[strings.ToUpper(k)] = v
	}
	return m
}

// Lookup implements Source.
func (m Map) Lookup(name string) (string, bool) {
	v, ok := m[strings.ToUpper(name)]
	return v, ok
}

// Names returns the keys in sorted order.
func (m Map) Names() []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Chain consults each source in order and returns the first hit.
type Chain []Source

// Lookup implements Source.
func (c Chain) Lookup(name string) (string, bool) {
	for _, src := range c {
		if src == nil {
			continue
		}
		if v, ok := src.Lookup(name); ok {
			return v, true
		}
	}
	return "", false
}

// Func adapts a plain function to Source.
type Func func(name string) (string, bool)

// Lookup implements Source.
func (f Func) Lookup(name string) (string, bool) {
	return f(name)
}
