package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/osd/internal/errors"
	"github.com/rileyhilliard/osd/internal/overlay"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but osd only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest osd release")
	}

	if _, err := overlay.ParseMode(cfg.Mode); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("mode '%s' isn't valid", cfg.Mode),
			"Use one of: "+strings.Join(overlay.ModeNames(), ", "))
	}

	if err := validateInterval("interval", cfg.Interval, MinInterval); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'interval' setting in your .osd.yaml.")
	}

	if err := validateMetrics(cfg.Metrics); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'metrics' section in your .osd.yaml.")
	}

	if err := validateOutput(cfg.Output); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'output' section in your .osd.yaml.")
	}

	return nil
}

// validateInterval checks a duration string. Empty means "use the default".
func validateInterval(field, value string, min time.Duration) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%s '%s' isn't a valid duration - try something like '1s' or '500ms'", field, value)
	}
	if d < min {
		return fmt.Errorf("%s %s is too short - the minimum is %s", field, d, min)
	}
	return nil
}

func validateMetrics(m MetricsConfig) error {
	if err := validateInterval("metrics.nvidia_timeout", m.NvidiaTimeout, time.Millisecond); err != nil {
		return err
	}
	for name := range m.Static {
		if strings.ContainsAny(name, "{}") {
			return fmt.Errorf("metrics.static name '%s' can't contain braces - use the bare name, like CPU_T", name)
		}
	}
	return nil
}

// validateOutput checks output configuration.
func validateOutput(out OutputConfig) error {
	validColors := map[string]bool{"auto": true, "always": true, "never": true, "": true}
	if !validColors[out.Color] {
		return fmt.Errorf("output.color '%s' isn't valid - use 'auto', 'always', or 'never'", out.Color)
	}
	return nil
}
