// Package parsers turns raw /proc, /sys and nvidia-smi output into numbers.
// Parsers are pure: they never touch the filesystem, so the collector can
// feed them fixture text in tests.
package parsers

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// CPUTimes holds cumulative jiffies from the aggregate "cpu" line of /proc/stat.
type CPUTimes struct {
	Total int64
	Idle  int64 // idle + iowait
	Cores int
}

// Busy returns the non-idle jiffies.
func (c CPUTimes) Busy() int64 {
	return c.Total - c.Idle
}

// ParseProcStat parses the aggregate CPU counters and core count from /proc/stat.
func ParseProcStat(procStat string) (*CPUTimes, error) {
	times := &CPUTimes{}
	found := false

	scanner := bufio.NewScanner(strings.NewReader(procStat))
	for scanner.Scan() {
		line := scanner.Text()

		// cpu0, cpu1, ...
		if strings.HasPrefix(line, "cpu") && len(line) > 3 && line[3] >= '0' && line[3] <= '9' {
			times.Cores++
			continue
		}

		if !strings.HasPrefix(line, "cpu ") {
			continue
		}

		// cpu user nice system idle iowait irq softirq steal guest guest_nice
		fields := strings.Fields(line)
		if len(fields) < 5 {
			return nil, fmt.Errorf("invalid /proc/stat cpu line: %s", line)
		}
		for i := 1; i < len(fields); i++ {
			val, err := strconv.ParseInt(fields[i], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse cpu field %d: %w", i, err)
			}
			times.Total += val
			if i == 4 || i == 5 {
				times.Idle += val
			}
		}
		found = true
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning /proc/stat: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("no aggregate cpu line in /proc/stat")
	}

	return times, nil
}

// CPUPercent computes utilization between two readings. ok is false when the
// counters did not advance or went backwards (e.g. after a counter reset).
func CPUPercent(prev, cur CPUTimes) (percent float64, ok bool) {
	totalDelta := cur.Total - prev.Total
	if totalDelta <= 0 {
		return 0, false
	}
	busyDelta := cur.Busy() - prev.Busy()
	if busyDelta < 0 {
		return 0, false
	}
	return float64(busyDelta) / float64(totalDelta) * 100, true
}

// Memory holds /proc/meminfo values in bytes.
type Memory struct {
	TotalBytes int64
	FreeBytes  int64
	Available  int64
	Buffers    int64
	Cached     int64
	UsedBytes  int64
}

// ParseMeminfo parses /proc/meminfo. Used memory excludes buffers and page cache.
func ParseMeminfo(procMeminfo string) (*Memory, error) {
	mem := &Memory{}
	foundFields := 0

	scanner := bufio.NewScanner(strings.NewReader(procMeminfo))
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}

		val, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			continue
		}
		// Values are in kB.
		valBytes := val * 1024

		switch strings.TrimSuffix(parts[0], ":") {
		case "MemTotal":
			mem.TotalBytes = valBytes
			foundFields++
		case "MemFree":
			mem.FreeBytes = valBytes
			foundFields++
		case "MemAvailable":
			mem.Available = valBytes
			foundFields++
		case "Buffers":
			mem.Buffers = valBytes
			foundFields++
		case "Cached":
			mem.Cached = valBytes
			foundFields++
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning /proc/meminfo: %w", err)
	}
	if foundFields < 3 {
		return nil, fmt.Errorf("insufficient memory info found in /proc/meminfo")
	}

	mem.UsedBytes = mem.TotalBytes - mem.FreeBytes - mem.Buffers - mem.Cached
	return mem, nil
}
