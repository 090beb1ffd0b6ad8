package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/osd/internal/config"
	"github.com/rileyhilliard/osd/internal/errors"
	"github.com/rileyhilliard/osd/internal/overlay"
	"github.com/rileyhilliard/osd/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Dir            string // Directory to write .osd.yaml into
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use defaults
}

var initForce bool

// initCmd creates a new .osd.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .osd.yaml configuration",
	Long: `Create a .osd.yaml file in the current directory.

On a terminal you are asked for the default mode, refresh interval, whether
to query nvidia-smi, and the color setting. Otherwise defaults are written.

Examples:
  osd init
  osd init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(cmd.OutOrStdout(), InitOptions{
			Dir:            ".",
			Overwrite:      initForce,
			NonInteractive: !term.IsTerminal(int(os.Stdin.Fd())),
		})
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	rootCmd.AddCommand(initCmd)
}

// Init creates a new .osd.yaml configuration file.
func Init(out io.Writer, opts InitOptions) error {
	configPath := filepath.Join(opts.Dir, config.ConfigFileName)

	overwrite := opts.Overwrite
	if _, err := os.Stat(configPath); err == nil && !overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if !opts.NonInteractive {
		if err := promptConfig(cfg); err != nil {
			return err
		}
	}

	if err := config.Write(configPath, cfg, overwrite); err != nil {
		return err
	}

	ui.Success(out, "Created %s", configPath)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  osd render        - Print the overlay once")
	fmt.Fprintln(out, "  osd watch         - Live preview in the terminal")
	fmt.Fprintln(out, "  osd layout dump   - Start a custom layout")
	return nil
}

// promptConfig asks for the settings most people change.
func promptConfig(cfg *config.Config) error {
	modeOptions := make([]huh.Option[string], 0, len(overlay.Modes()))
	for _, m := range overlay.Modes() {
		modeOptions = append(modeOptions, huh.NewOption(fmt.Sprintf("%s - %s", m, modeDescriptions[m]), m.String()))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default mode").
				Options(modeOptions...).
				Value(&cfg.Mode),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Refresh interval").
				Description("How often metrics are sampled").
				Placeholder("1s").
				Value(&cfg.Interval).
				Validate(func(s string) error {
					d, err := time.ParseDuration(s)
					if err != nil {
						return fmt.Errorf("use a duration like 1s or 500ms")
					}
					if d < config.MinInterval {
						return fmt.Errorf("minimum is %s", config.MinInterval)
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Query nvidia-smi for GPU readings?").
				Description("Without it, AMD GPUs are still read from sysfs").
				Value(&cfg.Metrics.NvidiaSMI),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Colored output").
				Options(
					huh.NewOption("auto", "auto"),
					huh.NewOption("always", "always"),
					huh.NewOption("never", "never"),
				).
				Value(&cfg.Output.Color),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility, or pipe stdin to write defaults")
	}
	return nil
}
