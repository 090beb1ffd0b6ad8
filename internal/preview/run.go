package preview

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/osd/internal/errors"
)

// Run starts the preview TUI and blocks until the user quits.
// The final model is returned so callers can read the mode active on exit.
func Run(opts Options, input io.Reader, output io.Writer) (Model, error) {
	program := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
		tea.WithInput(input),
		tea.WithOutput(output),
	)

	final, err := program.Run()
	if err != nil {
		return Model{}, errors.WrapWithCode(err, errors.ErrExec,
			"Preview failed",
			"Run 'osd render' for a one-shot render instead")
	}

	m, _ := final.(Model)
	return m, nil
}
