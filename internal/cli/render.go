package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rileyhilliard/osd/internal/metrics"
	"github.com/spf13/cobra"
)

// RenderOptions holds options for the render command.
type RenderOptions struct {
	Mode      string   // Overrides the configured mode
	Layout    string   // Overrides the configured layout file
	Sets      []string // NAME=VALUE overrides, looked up first
	Static    bool     // Skip live collection
	NoHelpers bool     // Omit the preamble
}

var renderOpts RenderOptions

// renderCmd prints one rendered overlay.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the overlay text once",
	Long: `Render the overlay for one mode and print the markup to stdout.

Live metrics are sampled twice, one interval apart, so CPU usage and power
have a delta to work from. Values given with --set win over live readings and
over metrics.static from the config file. Missing values render as "-".

Examples:
  osd render
  osd render --mode detail
  osd render --static --set CPU_%=42 --set GPU_T=70
  osd render --layout ./compact.yaml --no-helpers`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Render(cmd.Context(), cmd.OutOrStdout(), renderOpts)
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOpts.Mode, "mode", "m", "", "overlay mode: fps, minimal, detail, all")
	renderCmd.Flags().StringVarP(&renderOpts.Layout, "layout", "l", "", "YAML layout file")
	renderCmd.Flags().StringArrayVarP(&renderOpts.Sets, "set", "s", nil, "override a value, e.g. --set CPU_T=55 (repeatable)")
	renderCmd.Flags().BoolVar(&renderOpts.Static, "static", false, "don't read live metrics")
	renderCmd.Flags().BoolVar(&renderOpts.NoHelpers, "no-helpers", false, "omit the color/alignment preamble")
	rootCmd.AddCommand(renderCmd)
}

// Render writes a single rendered overlay to out.
func Render(ctx context.Context, out io.Writer, opts RenderOptions) error {
	if ctx == nil {
		ctx = context.Background()
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
	if opts.NoHelpers || !cfg.Helpers {
		tmpl.Helpers = nil
	}

	sets, err := parseSets(opts.Sets)
	if err != nil {
		return err
	}

	src := metrics.Chain{sets, metrics.NewMap(cfg.Metrics.Static)}
	if !opts.Static {
		snap, err := sampleLive(ctx, newCollector(cfg, nil), cfg.RefreshInterval())
		if err != nil {
			return err
		}
		log.Debug("sampled %d attributes", snap.Len())
		src = append(src, snap)
	}

	_, err = fmt.Fprintln(out, tmpl.Render(mode, src))
	return err
}
