package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// MinInterval is the fastest refresh rate the collector is asked for.
const MinInterval = 100 * time.Millisecond

// Config represents the complete .osd.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Mode is the overlay verbosity: "fps", "minimal", "detail" or "all".
	Mode string `yaml:"mode" mapstructure:"mode"`

	// Interval between metric samples, as a Go duration string ("1s", "500ms").
	Interval string `yaml:"interval" mapstructure:"interval"`

	// Layout is an optional path to a YAML layout replacing the built-in one.
	// Relative paths resolve against the config file's directory.
	Layout string `yaml:"layout" mapstructure:"layout"`

	// Helpers toggles the color/alignment preamble in rendered output.
	Helpers bool `yaml:"helpers" mapstructure:"helpers"`

	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
}

// MetricsConfig controls where the collector reads from.
type MetricsConfig struct {
	// ProcRoot and SysRoot point at procfs and sysfs. Tests and containers
	// override them.
	ProcRoot string `yaml:"proc_root" mapstructure:"proc_root"`
	SysRoot  string `yaml:"sys_root" mapstructure:"sys_root"`

	// NvidiaSMI enables the nvidia-smi query for GPU attributes.
	NvidiaSMI bool `yaml:"nvidia_smi" mapstructure:"nvidia_smi"`

	// NvidiaTimeout bounds a single nvidia-smi call.
	NvidiaTimeout string `yaml:"nvidia_timeout" mapstructure:"nvidia_timeout"`

	// Static values are looked up before live metrics. Keys are matched
	// case-insensitively.
	Static map[string]string `yaml:"static" mapstructure:"static"`
}

// OutputConfig controls terminal output formatting.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:  CurrentConfigVersion,
		Mode:     "minimal",
		Interval: "1s",
		Helpers:  true,
		Metrics: MetricsConfig{
			ProcRoot:      "/proc",
			SysRoot:       "/sys",
			NvidiaSMI:     true,
			NvidiaTimeout: "2s",
			Static:        make(map[string]string),
		},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}

// RefreshInterval returns Interval as a duration, falling back to one second
// when it is unset or unparseable.
func (c *Config) RefreshInterval() time.Duration {
	return parseDuration(c.Interval, time.Second)
}

// Timeout returns the nvidia-smi timeout, defaulting to two seconds.
func (m MetricsConfig) Timeout() time.Duration {
	return parseDuration(m.NvidiaTimeout, 2*time.Second)
}
