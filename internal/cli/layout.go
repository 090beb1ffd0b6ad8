package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/osd/internal/errors"
	"github.com/rileyhilliard/osd/internal/metrics"
	"github.com/rileyhilliard/osd/internal/overlay"
	"github.com/rileyhilliard/osd/internal/ui"
	"github.com/spf13/cobra"
)

var (
	layoutDumpDefault bool
	layoutCheckStrict bool
)

// layoutCmd groups the layout file tools.
var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Inspect and validate overlay layouts",
	Long: `Work with YAML overlay layouts.

A layout is the template tree osd renders: each entry has text with {NAME}
placeholders, optional include/exclude mode lists, a separator for its
children, and ignore_missing to drop the text when a value is unavailable.

Examples:
  osd layout dump > layout.yaml
  osd layout check layout.yaml
  osd layout vars layout.yaml`,
}

var layoutDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the active layout as YAML",
	Long: `Print the configured layout, or the built-in one when none is configured,
as YAML that 'osd layout check' and the 'layout' config key accept.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return layoutDump(cmd.OutOrStdout(), layoutDumpDefault)
	},
}

var layoutCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a layout file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return layoutCheck(cmd.OutOrStdout(), args[0], layoutCheckStrict)
	},
}

var layoutVarsCmd = &cobra.Command{
	Use:   "vars [file]",
	Short: "List the placeholders a layout uses",
	Long: `List every {NAME} placeholder in a layout, in tree order. Names the local
collector doesn't produce must come from --set or metrics.static.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := ""
		if len(args) == 1 {
			file = args[0]
		}
		return layoutVars(cmd.OutOrStdout(), file)
	},
}

func init() {
	layoutDumpCmd.Flags().BoolVar(&layoutDumpDefault, "default", false, "dump the built-in layout even if one is configured")
	layoutCheckCmd.Flags().BoolVar(&layoutCheckStrict, "strict", false, "treat warnings as errors")

	layoutCmd.AddCommand(layoutDumpCmd)
	layoutCmd.AddCommand(layoutCheckCmd)
	layoutCmd.AddCommand(layoutVarsCmd)
	rootCmd.AddCommand(layoutCmd)
}

func layoutDump(out io.Writer, builtin bool) error {
	tmpl := overlay.Default()
	if !builtin {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		if tmpl, err = loadTemplate("", cfg); err != nil {
			return err
		}
	}
	return overlay.EncodeTemplate(out, tmpl)
}

func layoutCheck(out io.Writer, file string, strict bool) error {
	tmpl, err := overlay.LoadTemplate(file)
	if err != nil {
		return err
	}

	warnings := overlay.Validate(tmpl)
	for _, w := range warnings {
		ui.Warn(out, "%s", w)
	}

	if len(warnings) > 0 && strict {
		return errors.New(errors.ErrLayout,
			fmt.Sprintf("%s has %s warnings", file, humanize.Comma(int64(len(warnings)))),
			"Fix the entries listed above, or drop --strict")
	}

	ui.Success(out, "%s: %s entries, %s placeholders",
		file,
		humanize.Comma(int64(countEntries(tmpl))),
		humanize.Comma(int64(len(overlay.Variables(tmpl)))))
	return nil
}

func layoutVars(out io.Writer, file string) error {
	tmpl, err := varsTemplate(file)
	if err != nil {
		return err
	}

	for _, name := range overlay.Variables(tmpl) {
		if metrics.IsAttribute(name) {
			fmt.Fprintln(out, name)
		} else {
			fmt.Fprintf(out, "%s\t%s\n", name, ui.Muted("(not collected; use --set or metrics.static)"))
		}
	}
	return nil
}

// varsTemplate loads file, or the configured layout when file is empty.
func varsTemplate(file string) (overlay.Template, error) {
	if file != "" {
		return overlay.LoadTemplate(file)
	}
	cfg, _, err := loadConfig()
	if err != nil {
		return overlay.Template{}, err
	}
	return loadTemplate("", cfg)
}

func countEntries(t overlay.Template) int {
	n := 0
	t.Root.Walk("root", func(string, overlay.Entry) { n++ })
	return n
}
