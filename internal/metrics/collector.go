package metrics

import (
	"context"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/osd/internal/errors"
	"github.com/rileyhilliard/osd/internal/logger"
	"github.com/rileyhilliard/osd/internal/metrics/parsers"
)

const (
	// DefaultProcRoot is where /proc is read from.
	DefaultProcRoot = "/proc"
	// DefaultSysRoot is where /sys is read from.
	DefaultSysRoot = "/sys"
	// DefaultNvidiaTimeout bounds a single nvidia-smi invocation.
	DefaultNvidiaTimeout = 2 * time.Second
)

// Preferred thermal zone types for CPU temperature, best first.
var cpuThermalTypes = []string{"x86_pkg_temp", "k10temp", "cpu-thermal", "cpu_thermal", "soc_thermal", "acpitz"}

// CommandRunner runs an external command and returns its stdout.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Options configures a Collector.
type Options struct {
	ProcRoot      string
	SysRoot       string
	NvidiaSMI     bool
	NvidiaTimeout time.Duration
	Logger        logger.Logger

	// Runner replaces os/exec for nvidia-smi. Tests use it to feed fixtures.
	Runner CommandRunner
	// Now replaces time.Now for power deltas.
	Now func() time.Time
}

// Collector samples the local machine into Snapshots. CPU utilization and
// package power are deltas, so the first Collect omits CPU_% and CPU_W.
//
// Collect may be called from several goroutines; delta state is guarded.
type Collector struct {
	opts Options
	log  logger.Logger

	mu         sync.Mutex
	prevCPU    *parsers.CPUTimes
	prevEnergy int64
	prevAt     time.Time
	haveEnergy bool
}

// NewCollector creates a collector, filling unset options with defaults.
func NewCollector(opts Options) *Collector {
	if opts.ProcRoot == "" {
		opts.ProcRoot = DefaultProcRoot
	}
	if opts.SysRoot == "" {
		opts.SysRoot = DefaultSysRoot
	}
	if opts.NvidiaTimeout <= 0 {
		opts.NvidiaTimeout = DefaultNvidiaTimeout
	}
	if opts.Runner == nil {
		opts.Runner = runCommand
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewEnvLogger("[metrics]")
	}
	return &Collector{opts: opts, log: log}
}

// Collect takes one sample. Unreadable files just leave their attributes
// out; the overlay shows a dash or hides the entry. Only malformed
// /proc/stat content is reported as an error.
func (c *Collector) Collect(ctx context.Context) (*Snapshot, error) {
	now := c.opts.Now()
	values := make(map[string]string)

	if err := c.collectCPU(values); err != nil {
		return nil, err
	}
	c.collectMemory(values)
	c.collectBattery(values)
	c.collectCPUTemp(values)
	c.collectCPUPower(values, now)
	if !c.collectNvidia(ctx, values) {
		c.collectAMDGPU(values)
	}

	c.log.Debug("sampled %d attributes", len(values))
	return NewSnapshot(now, values), nil
}

func (c *Collector) collectCPU(values map[string]string) error {
	content, err := c.readProc("stat")
	if err != nil {
		c.log.Debug("skipping cpu: %v", err)
		return nil
	}
	cur, err := parsers.ParseProcStat(content)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrMetrics,
			"Can't parse "+filepath.Join(c.opts.ProcRoot, "stat"),
			"Check the metrics.proc_root setting points at a Linux /proc")
	}

	c.mu.Lock()
	prev := c.prevCPU
	c.prevCPU = cur
	c.mu.Unlock()

	if prev == nil {
		return nil
	}
	if pct, ok := parsers.CPUPercent(*prev, *cur); ok {
		values[CPUPercent] = formatWhole(pct)
	}
	return nil
}

func (c *Collector) collectMemory(values map[string]string) {
	content, err := c.readProc("meminfo")
	if err != nil {
		c.log.Debug("skipping memory: %v", err)
		return
	}
	mem, err := parsers.ParseMeminfo(content)
	if err != nil {
		c.log.Debug("skipping memory: %v", err)
		return
	}

	used := float64(mem.UsedBytes)
	values[MemoryMB] = formatWhole(used / (1 << 20))
	values[MemoryGB] = formatTenths(used / (1 << 30))
	c.log.Debug("memory used %s of %s", humanize.IBytes(uint64(mem.UsedBytes)), humanize.IBytes(uint64(mem.TotalBytes)))
}

func (c *Collector) collectBattery(values map[string]string) {
	dirs, _ := filepath.Glob(filepath.Join(c.opts.SysRoot, "class", "power_supply", "BAT*"))
	sort.Strings(dirs)

	for _, dir := range dirs {
		capacity, err := readSysfsInt(filepath.Join(dir, "capacity"))
		if err != nil {
			continue
		}
		values[BatteryPercent] = strconv.FormatInt(capacity, 10)

		if watts, ok := batteryWatts(dir); ok {
			values[BatteryWatts] = formatTenths(watts)
		}
		return
	}
}

// batteryWatts prefers power_now and falls back to current_now * voltage_now.
func batteryWatts(dir string) (float64, bool) {
	if uw, err := readSysfsInt(filepath.Join(dir, "power_now")); err == nil {
		return math.Abs(parsers.MicroToUnit(uw)), true
	}
	ua, errA := readSysfsInt(filepath.Join(dir, "current_now"))
	uv, errV := readSysfsInt(filepath.Join(dir, "voltage_now"))
	if errA != nil || errV != nil {
		return 0, false
	}
	return math.Abs(parsers.MicroToUnit(ua) * parsers.MicroToUnit(uv)), true
}

func (c *Collector) collectCPUTemp(values map[string]string) {
	zones, _ := filepath.Glob(filepath.Join(c.opts.SysRoot, "class", "thermal", "thermal_zone*"))
	sort.Strings(zones)

	best, bestRank := "", len(cpuThermalTypes)+1
	for _, zone := range zones {
		kind, err := os.ReadFile(filepath.Join(zone, "type"))
		if err != nil {
			continue
		}
		rank := len(cpuThermalTypes)
		for i, t := range cpuThermalTypes {
			if strings.TrimSpace(string(kind)) == t {
				rank = i
				break
			}
		}
		if rank < bestRank {
			best, bestRank = zone, rank
		}
	}
	if best == "" {
		return
	}

	milli, err := readSysfsInt(filepath.Join(best, "temp"))
	if err != nil {
		c.log.Debug("skipping cpu temperature: %v", err)
		return
	}
	values[CPUTemp] = formatWhole(parsers.MilliCelsius(milli))
}

func (c *Collector) collectCPUPower(values map[string]string, now time.Time) {
	energy, err := readSysfsInt(filepath.Join(c.opts.SysRoot, "class", "powercap", "intel-rapl:0", "energy_uj"))
	if err != nil {
		return
	}

	c.mu.Lock()
	prevEnergy, prevAt, had := c.prevEnergy, c.prevAt, c.haveEnergy
	c.prevEnergy, c.prevAt, c.haveEnergy = energy, now, true
	c.mu.Unlock()

	if !had {
		return
	}
	if watts, ok := parsers.RAPLWatts(prevEnergy, energy, now.Sub(prevAt).Seconds()); ok {
		values[CPUWatts] = formatTenths(watts)
	}
}

// collectNvidia reports whether nvidia-smi produced a GPU reading.
func (c *Collector) collectNvidia(ctx context.Context, values map[string]string) bool {
	if !c.opts.NvidiaSMI {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.NvidiaTimeout)
	defer cancel()

	out, err := c.opts.Runner(ctx, "nvidia-smi", parsers.NvidiaQuery...)
	if err != nil {
		c.log.Debug("nvidia-smi unavailable: %v", err)
		return false
	}
	gpu, err := parsers.ParseNvidiaSMI(string(out))
	if err != nil {
		c.log.Warn("ignoring nvidia-smi output: %v", err)
		return false
	}
	if gpu == nil {
		return false
	}

	if gpu.Percent != nil {
		values[GPUPercent] = formatWhole(*gpu.Percent)
	}
	if gpu.MemoryUsedMiB != nil {
		values[GPUMemoryMB] = formatWhole(*gpu.MemoryUsedMiB)
	}
	if gpu.Temperature != nil {
		values[GPUTemp] = formatWhole(*gpu.Temperature)
	}
	if gpu.PowerWatts != nil {
		values[GPUWatts] = formatTenths(*gpu.PowerWatts)
	}
	return true
}

// collectAMDGPU reads the first amdgpu card exposing gpu_busy_percent.
func (c *Collector) collectAMDGPU(values map[string]string) {
	devices, _ := filepath.Glob(filepath.Join(c.opts.SysRoot, "class", "drm", "card*", "device"))
	sort.Strings(devices)

	for _, dev := range devices {
		busy, err := readSysfsInt(filepath.Join(dev, "gpu_busy_percent"))
		if err != nil {
			continue
		}
		values[GPUPercent] = strconv.FormatInt(busy, 10)

		if vram, err := readSysfsInt(filepath.Join(dev, "mem_info_vram_used")); err == nil {
			values[GPUMemoryMB] = formatWhole(float64(vram) / (1 << 20))
		}

		hwmons, _ := filepath.Glob(filepath.Join(dev, "hwmon", "hwmon*"))
		sort.Strings(hwmons)
		for _, hw := range hwmons {
			if milli, err := readSysfsInt(filepath.Join(hw, "temp1_input")); err == nil {
				values[GPUTemp] = formatWhole(parsers.MilliCelsius(milli))
			}
			if uw, err := readSysfsInt(filepath.Join(hw, "power1_average")); err == nil {
				values[GPUWatts] = formatTenths(parsers.MicroToUnit(uw))
			}
		}
		return
	}
}

func (c *Collector) readProc(name string) (string, error) {
	b, err := os.ReadFile(filepath.Join(c.opts.ProcRoot, name))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func readSysfsInt(path string) (int64, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return parsers.ParseSysfsInt(string(b))
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

func formatWhole(v float64) string {
	return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
}

func formatTenths(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
