package cli

import (
	"os"

	"github.com/rileyhilliard/osd/internal/errors"
	"github.com/rileyhilliard/osd/internal/logger"
	"github.com/rileyhilliard/osd/internal/metrics"
	"github.com/rileyhilliard/osd/internal/preview"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// WatchOptions holds options for the watch command.
type WatchOptions struct {
	Mode     string
	Layout   string
	Interval string
}

var watchOpts WatchOptions

// watchCmd runs the live terminal preview.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live preview of the overlay in the terminal",
	Long: `Show the overlay in a full-screen terminal preview, re-sampled every interval.

Keys: m cycles the mode, p toggles raw markup, r samples now, ? shows help,
q quits.

Examples:
  osd watch
  osd watch --mode detail --interval 500ms`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Watch(watchOpts)
	},
}

func init() {
	watchCmd.Flags().StringVarP(&watchOpts.Mode, "mode", "m", "", "starting mode: fps, minimal, detail, all")
	watchCmd.Flags().StringVarP(&watchOpts.Layout, "layout", "l", "", "YAML layout file")
	watchCmd.Flags().StringVarP(&watchOpts.Interval, "interval", "i", "", "refresh interval (e.g. 1s, 500ms)")
	rootCmd.AddCommand(watchCmd)
}

// Watch starts the preview on the current terminal.
func Watch(opts WatchOptions) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrExec,
			"osd watch needs a terminal",
			"Use 'osd render' when piping or scripting")
	}

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	mode, err := resolveMode(opts.Mode, cfg)
	if err != nil {
		return err
	}

	tmpl, err := loadTemplate(opts.Layout, cfg)
	if err != nil {
		return err
	}
	if !cfg.Helpers {
		tmpl.Helpers = nil
	}

	interval, err := parseInterval(opts.Interval, cfg.RefreshInterval())
	if err != nil {
		return err
	}

	plog := previewLogger()
	final, err := preview.Run(preview.Options{
		Template:  tmpl,
		Mode:      mode,
		Sampler:   newCollector(cfg, plog),
		Overrides: metrics.NewMap(cfg.Metrics.Static),
		Interval:  interval,
		Logger:    plog,
	}, os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	log.Debug("preview closed in mode %s", final.Mode())
	return nil
}

// previewLogger keeps stderr quiet under the alt screen unless debugging.
func previewLogger() logger.Logger {
	if logger.DebugEnabled() {
		return logger.NewEnvLogger("[preview]")
	}
	return logger.Noop()
}
