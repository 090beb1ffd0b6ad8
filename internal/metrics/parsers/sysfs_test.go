package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSysfsInt(t *testing.T) {
	v, err := ParseSysfsInt("87\n")
	require.NoError(t, err)
	assert.Equal(t, int64(87), v)

	_, err = ParseSysfsInt("  \n")
	assert.Error(t, err)

	_, err = ParseSysfsInt("Discharging\n")
	assert.Error(t, err)
}

func TestUnitConversions(t *testing.T) {
	assert.InDelta(t, 54.5, MilliCelsius(54500), 0.0001)
	assert.InDelta(t, 12.345, MicroToUnit(12345000), 0.0001)
}

func TestRAPLWatts(t *testing.T) {
	tests := []struct {
		name    string
		prev    int64
		cur     int64
		seconds float64
		want    float64
		wantOk  bool
	}{
		{name: "fifteen watts", prev: 1_000_000, cur: 16_000_000, seconds: 1, want: 15, wantOk: true},
		{name: "half second window", prev: 0, cur: 5_000_000, seconds: 0.5, want: 10, wantOk: true},
		{name: "counter wrapped", prev: 9_000_000, cur: 1_000, seconds: 1},
		{name: "no elapsed time", prev: 0, cur: 10, seconds: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RAPLWatts(tt.prev, tt.cur, tt.seconds)
			assert.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.InDelta(t, tt.want, got, 0.0001)
			}
		})
	}
}
