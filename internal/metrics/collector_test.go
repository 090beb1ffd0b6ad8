package metrics

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rileyhilliard/osd/internal/errors"
	"github.com/rileyhilliard/osd/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSyntheticFile creates a file (and parent dirs) inside root.
func writeSyntheticFile(t *testing.T, root, path, content string) {
	t.Helper()
	fullPath := filepath.Join(root, path)
	require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
	require.NoError(t, os.WriteFile(fullPath, []byte(content), 0o644))
}

const syntheticMeminfo = `MemTotal:       16384000 kB
MemFree:         4000000 kB
MemAvailable:    8000000 kB
Buffers:          384000 kB
Cached:          4000000 kB
`

// fakeClock advances one second per call.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func nvidiaRunner(output string, err error) CommandRunner {
	return func(ctx context.Context, name string, args ...string) ([]byte, error) {
		if name != "nvidia-smi" {
			return nil, fmt.Errorf("unexpected command %s", name)
		}
		return []byte(output), err
	}
}

func newSyntheticMachine(t *testing.T) (procRoot, sysRoot string) {
	t.Helper()
	root := t.TempDir()
	procRoot = filepath.Join(root, "proc")
	sysRoot = filepath.Join(root, "sys")

	writeSyntheticFile(t, procRoot, "stat", "cpu  100 0 100 800 0 0 0 0 0 0\ncpu0 100 0 100 800 0 0 0 0 0 0\n")
	writeSyntheticFile(t, procRoot, "meminfo", syntheticMeminfo)

	writeSyntheticFile(t, sysRoot, "class/power_supply/AC/online", "0\n")
	writeSyntheticFile(t, sysRoot, "class/power_supply/BAT0/capacity", "87\n")
	writeSyntheticFile(t, sysRoot, "class/power_supply/BAT0/power_now", "12345000\n")

	writeSyntheticFile(t, sysRoot, "class/thermal/thermal_zone0/type", "acpitz\n")
	writeSyntheticFile(t, sysRoot, "class/thermal/thermal_zone0/temp", "40000\n")
	writeSyntheticFile(t, sysRoot, "class/thermal/thermal_zone1/type", "x86_pkg_temp\n")
	writeSyntheticFile(t, sysRoot, "class/thermal/thermal_zone1/temp", "55000\n")

	writeSyntheticFile(t, sysRoot, "class/powercap/intel-rapl:0/energy_uj", "1000000\n")
	return procRoot, sysRoot
}

func TestCollector_Collect(t *testing.T) {
	procRoot, sysRoot := newSyntheticMachine(t)
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}

	c := NewCollector(Options{
		ProcRoot:  procRoot,
		SysRoot:   sysRoot,
		NvidiaSMI: true,
		Runner:    nvidiaRunner("NVIDIA GeForce RTX 4090, 50, 8192, 70, 185.50\n", nil),
		Now:       clock.Now,
		Logger:    logger.Noop(),
	})

	first, err := c.Collect(context.Background())
	require.NoError(t, err)

	// Deltas need two samples.
	_, ok := first.Lookup(CPUPercent)
	assert.False(t, ok)
	_, ok = first.Lookup(CPUWatts)
	assert.False(t, ok)

	expectFirst := map[string]string{
		MemoryMB:       "7813",
		MemoryGB:       "7.6",
		BatteryPercent: "87",
		BatteryWatts:   "12.3",
		CPUTemp:        "55",
		GPUPercent:     "50",
		GPUMemoryMB:    "8192",
		GPUTemp:        "70",
		GPUWatts:       "185.5",
	}
	for name, want := range expectFirst {
		got, ok := first.Lookup(name)
		assert.True(t, ok, "missing %s", name)
		assert.Equal(t, want, got, name)
	}

	writeSyntheticFile(t, procRoot, "stat", "cpu  150 0 150 1100 0 0 0 0 0 0\ncpu0 150 0 150 1100 0 0 0 0 0 0\n")
	writeSyntheticFile(t, sysRoot, "class/powercap/intel-rapl:0/energy_uj", "16000000\n")

	second, err := c.Collect(context.Background())
	require.NoError(t, err)

	cpu, ok := second.Lookup("cpu_%")
	require.True(t, ok)
	assert.Equal(t, "25", cpu)

	watts, ok := second.Lookup(CPUWatts)
	require.True(t, ok)
	assert.Equal(t, "15.0", watts)

	assert.True(t, second.At.After(first.At))
}

func TestCollector_BatteryCurrentTimesVoltage(t *testing.T) {
	sysRoot := t.TempDir()
	writeSyntheticFile(t, sysRoot, "class/power_supply/BAT1/capacity", "40\n")
	writeSyntheticFile(t, sysRoot, "class/power_supply/BAT1/current_now", "1500000\n")
	writeSyntheticFile(t, sysRoot, "class/power_supply/BAT1/voltage_now", "12000000\n")

	c := NewCollector(Options{ProcRoot: t.TempDir(), SysRoot: sysRoot, Logger: logger.Noop()})
	snap, err := c.Collect(context.Background())
	require.NoError(t, err)

	pct, _ := snap.Lookup(BatteryPercent)
	assert.Equal(t, "40", pct)
	w, _ := snap.Lookup(BatteryWatts)
	assert.Equal(t, "18.0", w)
}

func TestCollector_AMDGPUFallback(t *testing.T) {
	sysRoot := t.TempDir()
	writeSyntheticFile(t, sysRoot, "class/drm/card0/device/gpu_busy_percent", "33\n")
	writeSyntheticFile(t, sysRoot, "class/drm/card0/device/mem_info_vram_used", "27860992\n")
	writeSyntheticFile(t, sysRoot, "class/drm/card0/device/hwmon/hwmon0/temp1_input", "61000\n")
	writeSyntheticFile(t, sysRoot, "class/drm/card0/device/hwmon/hwmon0/power1_average", "45000000\n")

	c := NewCollector(Options{
		ProcRoot:  t.TempDir(),
		SysRoot:   sysRoot,
		NvidiaSMI: true,
		Runner:    nvidiaRunner("", fmt.Errorf("exec: \"nvidia-smi\": executable file not found in $PATH")),
		Logger:    logger.Noop(),
	})
	snap, err := c.Collect(context.Background())
	require.NoError(t, err)

	expect := map[string]string{
		GPUPercent:  "33",
		GPUMemoryMB: "27",
		GPUTemp:     "61",
		GPUWatts:    "45.0",
	}
	for name, want := range expect {
		got, ok := snap.Lookup(name)
		assert.True(t, ok, "missing %s", name)
		assert.Equal(t, want, got, name)
	}
}

func TestCollector_NvidiaDisabledSkipsRunner(t *testing.T) {
	called := false
	c := NewCollector(Options{
		ProcRoot: t.TempDir(),
		SysRoot:  t.TempDir(),
		Runner: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			called = true
			return nil, nil
		},
		Logger: logger.Noop(),
	})

	_, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.False(t, called)
}

func TestCollector_MissingFilesOmitAttributes(t *testing.T) {
	c := NewCollector(Options{ProcRoot: t.TempDir(), SysRoot: t.TempDir(), Logger: logger.Noop()})

	snap, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Len())
}

func TestCollector_MalformedProcStat(t *testing.T) {
	procRoot := t.TempDir()
	writeSyntheticFile(t, procRoot, "stat", "cpu  not numbers at all\n")

	c := NewCollector(Options{ProcRoot: procRoot, SysRoot: t.TempDir(), Logger: logger.Noop()})
	_, err := c.Collect(context.Background())

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrMetrics))
}

func TestCollector_BadNvidiaOutputIsWarned(t *testing.T) {
	log := logger.NewBufferLogger()
	c := NewCollector(Options{
		ProcRoot:  t.TempDir(),
		SysRoot:   t.TempDir(),
		NvidiaSMI: true,
		Runner:    nvidiaRunner("NVIDIA, 12", nil),
		Logger:    log,
	})

	snap, err := c.Collect(context.Background())
	require.NoError(t, err)
	_, ok := snap.Lookup(GPUPercent)
	assert.False(t, ok)
	assert.True(t, log.HasLevel("warn"))
}

func TestCollector_ConcurrentCollect(t *testing.T) {
	procRoot, sysRoot := newSyntheticMachine(t)
	c := NewCollector(Options{ProcRoot: procRoot, SysRoot: sysRoot, Logger: logger.Noop()})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap, err := c.Collect(context.Background())
			assert.NoError(t, err)
			assert.NotNil(t, snap)
		}()
	}
	wg.Wait()
}
