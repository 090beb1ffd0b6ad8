package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMap_CaseInsensitive(t *testing.T) {
	m := NewMap(map[string]string{"batt_%": "87", "GPU_T": "70"})

	tests := []struct {
		name   string
		want   string
		wantOk bool
	}{
		{"BATT_%", "87", true},
		{"batt_%", "87", true},
		{"Gpu_t", "70", true},
		{"CPU_%", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.Lookup(tt.name)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, []string{"BATT_%", "GPU_T"}, m.Names())
}

func TestChain_FirstHitWins(t *testing.T) {
	overrides := NewMap(map[string]string{"CPU_%": "99"})
	live := NewMap(map[string]string{"CPU_%": "12", "MEM_MB": "2048"})

	c := Chain{nil, overrides, live}

	v, ok := c.Lookup("cpu_%")
	assert.True(t, ok)
	assert.Equal(t, "99", v)

	v, ok = c.Lookup("MEM_MB")
	assert.True(t, ok)
	assert.Equal(t, "2048", v)

	_, ok = c.Lookup("GPU_%")
	assert.False(t, ok)
}

func TestFunc(t *testing.T) {
	calls := 0
	f := Func(func(name string) (string, bool) {
		calls++
		return name + "!", name != ""
	})

	v, ok := f.Lookup("X")
	assert.True(t, ok)
	assert.Equal(t, "X!", v)
	assert.Equal(t, 1, calls)
}

func TestSnapshot(t *testing.T) {
	at := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	s := NewSnapshot(at, map[string]string{"mem_gb": "7.6"})

	v, ok := s.Lookup("MEM_GB")
	assert.True(t, ok)
	assert.Equal(t, "7.6", v)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, at, s.At)

	var nilSnap *Snapshot
	_, ok = nilSnap.Lookup("MEM_GB")
	assert.False(t, ok)
	assert.Equal(t, 0, nilSnap.Len())
	assert.Nil(t, nilSnap.Names())
}

func TestIsAttribute(t *testing.T) {
	assert.Len(t, Attributes(), 11)
	assert.True(t, IsAttribute("cpu_%"))
	assert.True(t, IsAttribute(MemoryGB))
	assert.False(t, IsAttribute("FR"))
}
