package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/osd/internal/config"
	"github.com/rileyhilliard/osd/internal/errors"
	"github.com/rileyhilliard/osd/internal/logger"
	"github.com/rileyhilliard/osd/internal/metrics"
	"github.com/rileyhilliard/osd/internal/overlay"
	"github.com/rileyhilliard/osd/internal/ui"
)

var log = logger.NewEnvLogger("[osd]")

// loadConfig finds, loads and validates the config named by --config, or the
// defaults when no file exists. Color output follows output.color unless
// --no-color already forced it off.
func loadConfig() (*config.Config, string, error) {
	cfg, path, err := config.LoadOrDefault(configFlag)
	if err != nil {
		return nil, "", err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, "", err
	}
	if path != "" {
		log.Debug("config: %s", path)
	} else {
		log.Debug("config: defaults")
	}
	if !noColorFlag {
		ui.SetColorMode(cfg.Output.Color)
	}
	return cfg, path, nil
}

// resolveMode picks the --mode flag when given, otherwise the configured mode.
func resolveMode(flag string, cfg *config.Config) (overlay.Mode, error) {
	if flag != "" {
		return overlay.ParseMode(flag)
	}
	return overlay.ParseMode(cfg.Mode)
}

// loadTemplate returns the layout named by --layout, the configured layout,
// or the built-in one, in that order.
func loadTemplate(flag string, cfg *config.Config) (overlay.Template, error) {
	path := flag
	if path == "" && cfg != nil {
		path = cfg.Layout
	}
	if path == "" {
		return overlay.Default(), nil
	}
	log.Debug("layout: %s", path)
	return overlay.LoadTemplate(config.ExpandTilde(path))
}

// parseSets turns repeated NAME=VALUE flags into a case-insensitive source.
func parseSets(sets []string) (metrics.Map, error) {
	values := make(map[string]string, len(sets))
	for _, s := range sets {
		name, value, ok := strings.Cut(s, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.New(errors.ErrConfig,
				fmt.Sprintf("'%s' isn't a NAME=VALUE pair", s),
				"Use something like --set CPU_T=55")
		}
		values[name] = value
	}
	return metrics.NewMap(values), nil
}

// parseInterval parses an --interval flag. Empty returns fallback.
func parseInterval(flag string, fallback time.Duration) (time.Duration, error) {
	if flag == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid interval", flag),
			"Try something like 1s, 500ms, or 2s.")
	}
	if d < config.MinInterval {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval %s is too short", d),
			fmt.Sprintf("Use %s or more.", config.MinInterval))
	}
	return d, nil
}

// newCollector builds a metrics collector from the metrics config section.
// A nil log uses the collector's own env logger.
func newCollector(cfg *config.Config, log logger.Logger) *metrics.Collector {
	return metrics.NewCollector(metrics.Options{
		ProcRoot:      cfg.Metrics.ProcRoot,
		SysRoot:       cfg.Metrics.SysRoot,
		NvidiaSMI:     cfg.Metrics.NvidiaSMI,
		NvidiaTimeout: cfg.Metrics.Timeout(),
		Logger:        log,
	})
}

// sampleLive collects twice, interval apart, so delta attributes such as
// CPU_% are present in the returned snapshot.
func sampleLive(ctx context.Context, c *metrics.Collector, interval time.Duration) (*metrics.Snapshot, error) {
	if _, err := c.Collect(ctx); err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, errors.WrapWithCode(ctx.Err(), errors.ErrMetrics,
			"Sampling was interrupted",
			"Use --static to render without live metrics")
	case <-time.After(interval):
	}

	return c.Collect(ctx)
}
