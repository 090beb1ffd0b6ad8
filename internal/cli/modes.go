package cli

import (
	"fmt"
	"io"

	"github.com/rileyhilliard/osd/internal/overlay"
	"github.com/rileyhilliard/osd/internal/ui"
	"github.com/spf13/cobra"
)

// modeDescriptions says what the built-in layout shows in each mode.
var modeDescriptions = map[overlay.Mode]string{
	overlay.FPS:     "frame rate only",
	overlay.Minimal: "one line: battery, GPU, CPU, RAM, app FPS",
	overlay.Detail:  "one line per reading plus frame time",
	overlay.All:     "everything detail shows",
}

// modesCmd lists the overlay modes.
var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List overlay modes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listModes(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(modesCmd)
}

func listModes(out io.Writer) error {
	rows := make([][]string, 0, len(overlay.Modes()))
	for _, m := range overlay.Modes() {
		rows = append(rows, []string{m.String(), modeDescriptions[m]})
	}

	table := ui.RenderSimpleTable([]ui.TableColumn{
		{Title: "MODE", Width: 10},
		{Title: "BUILT-IN LAYOUT SHOWS", Width: 44},
	}, rows)
	_, err := fmt.Fprintln(out, table)
	return err
}
