package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProcStat(t *testing.T) {
	tests := []struct {
		name      string
		procStat  string
		wantTotal int64
		wantIdle  int64
		wantCores int
		wantErr   bool
	}{
		{
			name: "two core system",
			procStat: `cpu  1234567 12345 234567 8901234 12345 0 6789 0 0 0
cpu0 617283 6172 117283 4450617 6172 0 3394 0 0 0
cpu1 617284 6173 117284 4450617 6173 0 3395 0 0 0
intr 123456 0 0
ctxt 987654`,
			wantTotal: 10401847,
			wantIdle:  8913579,
			wantCores: 2,
		},
		{
			name: "four core system",
			procStat: `cpu  2000000 20000 400000 16000000 20000 0 10000 0 0 0
cpu0 500000 5000 100000 4000000 5000 0 2500 0 0 0
cpu1 500000 5000 100000 4000000 5000 0 2500 0 0 0
cpu2 500000 5000 100000 4000000 5000 0 2500 0 0 0
cpu3 500000 5000 100000 4000000 5000 0 2500 0 0 0`,
			wantTotal: 18450000,
			wantIdle:  16020000,
			wantCores: 4,
		},
		{
			name:     "invalid cpu line",
			procStat: "cpu  invalid data here now",
			wantErr:  true,
		},
		{
			name:     "too few fields",
			procStat: "cpu  1 2 3",
			wantErr:  true,
		},
		{
			name:     "missing aggregate line",
			procStat: "cpu0 1 2 3 4 5 6 7",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			times, err := ParseProcStat(tt.procStat)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, times.Total)
			assert.Equal(t, tt.wantIdle, times.Idle)
			assert.Equal(t, tt.wantCores, times.Cores)
		})
	}
}

func TestCPUPercent(t *testing.T) {
	tests := []struct {
		name   string
		prev   CPUTimes
		cur    CPUTimes
		want   float64
		wantOk bool
	}{
		{
			name:   "quarter busy",
			prev:   CPUTimes{Total: 1000, Idle: 800},
			cur:    CPUTimes{Total: 1400, Idle: 1100},
			want:   25,
			wantOk: true,
		},
		{
			name:   "fully busy",
			prev:   CPUTimes{Total: 1000, Idle: 500},
			cur:    CPUTimes{Total: 1100, Idle: 500},
			want:   100,
			wantOk: true,
		},
		{
			name: "no time passed",
			prev: CPUTimes{Total: 1000, Idle: 500},
			cur:  CPUTimes{Total: 1000, Idle: 500},
		},
		{
			name: "counter reset",
			prev: CPUTimes{Total: 5000, Idle: 2000},
			cur:  CPUTimes{Total: 100, Idle: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CPUPercent(tt.prev, tt.cur)
			assert.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.InDelta(t, tt.want, got, 0.001)
			}
		})
	}
}

func TestParseMeminfo(t *testing.T) {
	tests := []struct {
		name          string
		procMeminfo   string
		wantTotal     int64
		wantAvailable int64
		wantUsed      int64
		wantErr       bool
	}{
		{
			name: "valid meminfo",
			procMeminfo: `MemTotal:       16384000 kB
MemFree:         1234567 kB
MemAvailable:    8765432 kB
Buffers:          123456 kB
Cached:          4567890 kB
SwapCached:        12345 kB`,
			wantTotal:     16384000 * 1024,
			wantAvailable: 8765432 * 1024,
			wantUsed:      (16384000 - 1234567 - 123456 - 4567890) * 1024,
		},
		{
			name: "minimal meminfo",
			procMeminfo: `MemTotal:       8000000 kB
MemFree:         500000 kB
MemAvailable:   2000000 kB
Buffers:          50000 kB
Cached:         1000000 kB`,
			wantTotal:     8000000 * 1024,
			wantAvailable: 2000000 * 1024,
			wantUsed:      (8000000 - 500000 - 50000 - 1000000) * 1024,
		},
		{
			name:        "insufficient fields",
			procMeminfo: `MemTotal:       16384000 kB`,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem, err := ParseMeminfo(tt.procMeminfo)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, mem.TotalBytes)
			assert.Equal(t, tt.wantAvailable, mem.Available)
			assert.Equal(t, tt.wantUsed, mem.UsedBytes)
		})
	}
}
