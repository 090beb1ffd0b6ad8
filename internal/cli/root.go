package cli

import (
	"fmt"
	"os"

	"github.com/rileyhilliard/osd/internal/logger"
	"github.com/rileyhilliard/osd/internal/ui"
	"github.com/spf13/cobra"
)

// Global flags
var (
	configFlag  string
	verboseFlag bool
	noColorFlag bool
)

// rootCmd is the base command when osd is called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "osd",
	Short: "Render performance overlay text from live system metrics",
	Long: `osd turns a template of overlay markup into the text an on-screen
display draws: frame rate, battery, CPU, GPU and memory readings, filtered by
the active mode (fps, minimal, detail, all).

Examples:
  osd render --mode detail
  osd watch
  osd layout dump > my-layout.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applyGlobalFlags()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default: .osd.yaml, searched upward)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "debug logging (same as OSD_DEBUG=1)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
}

// applyGlobalFlags wires --verbose and --no-color into the logger and styles.
func applyGlobalFlags() {
	if verboseFlag {
		logger.EnableDebug(true)
	}
	if noColorFlag || os.Getenv("NO_COLOR") != "" {
		ui.SetColorMode("never")
	}
}

// Execute runs the root command. Errors are printed and the process exits 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

// formatError returns err the way the CLI prints it. Structured errors carry
// their own layout; anything else (usually from cobra) gets a plain prefix.
func formatError(err error) string {
	msg := err.Error()
	if len(msg) > 0 && msg[len(msg)-1] == '\n' {
		return msg
	}
	return "Error: " + msg + "\n"
}
