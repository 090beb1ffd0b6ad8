package parsers

import (
	"fmt"
	"strconv"
	"strings"
)

// NvidiaQuery is the nvidia-smi argument list whose output ParseNvidiaSMI expects.
var NvidiaQuery = []string{
	"--query-gpu=name,utilization.gpu,memory.used,temperature.gpu,power.draw",
	"--format=csv,noheader,nounits",
}

// GPU holds one GPU's readings. Nil fields were reported as [N/A].
type GPU struct {
	Name          string
	Percent       *float64
	MemoryUsedMiB *float64
	Temperature   *float64
	PowerWatts    *float64
}

// ParseNvidiaSMI parses the first line of nvidia-smi CSV output produced
// with NvidiaQuery. It returns nil, nil when no GPU is present.
func ParseNvidiaSMI(output string) (*GPU, error) {
	output = strings.TrimSpace(output)
	if output == "" {
		return nil, nil
	}

	lower := strings.ToLower(output)
	if strings.Contains(lower, "no devices") ||
		strings.Contains(lower, "not found") ||
		strings.Contains(lower, "failed") ||
		strings.Contains(lower, "error") {
		return nil, nil
	}

	// Multi-GPU machines report one line per device; the overlay shows the first.
	line := strings.SplitN(output, "\n", 2)[0]

	// name, utilization.gpu, memory.used, temperature.gpu, power.draw
	// e.g. "NVIDIA GeForce RTX 3080, 45, 2048, 65, 220.31"
	fields := strings.Split(line, ",")
	if len(fields) < 5 {
		return nil, fmt.Errorf("nvidia-smi output has insufficient fields: expected 5, got %d", len(fields))
	}

	gpu := &GPU{Name: strings.TrimSpace(fields[0])}
	targets := []struct {
		label string
		dst   **float64
	}{
		{"utilization", &gpu.Percent},
		{"memory used", &gpu.MemoryUsedMiB},
		{"temperature", &gpu.Temperature},
		{"power", &gpu.PowerWatts},
	}
	for i, target := range targets {
		v, err := optionalFloat(fields[i+1])
		if err != nil {
			return nil, fmt.Errorf("failed to parse GPU %s: %w", target.label, err)
		}
		*target.dst = v
	}

	return gpu, nil
}

func optionalFloat(field string) (*float64, error) {
	s := strings.TrimSpace(field)
	if s == "" || s == "[N/A]" || s == "[Not Supported]" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
