package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary lipgloss.Color = "7" // White/default
	ColorMuted   lipgloss.Color = "8" // Gray (bright black)
)

// SetColorMode applies an output.color setting to every lipgloss style.
// "auto" keeps lipgloss's own terminal detection.
func SetColorMode(mode string) {
	switch mode {
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI256)
	}
}

// ColorEnabled reports whether styles currently emit color.
func ColorEnabled() bool {
	return lipgloss.ColorProfile() != termenv.Ascii
}

var (
	successStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	errorStyle   = lipgloss.NewStyle().Foreground(ColorError)
	warnStyle    = lipgloss.NewStyle().Foreground(ColorWarning)
	mutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
)

// Success writes a green check line.
func Success(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", successStyle.Render(SymbolSuccess), fmt.Sprintf(format, args...))
}

// Warn writes a yellow warning line.
func Warn(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", warnStyle.Render(SymbolWarn), fmt.Sprintf(format, args...))
}

// Fail writes a red cross line.
func Fail(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", errorStyle.Render(SymbolFail), fmt.Sprintf(format, args...))
}

// Muted renders secondary text.
func Muted(s string) string {
	return mutedStyle.Render(s)
}
