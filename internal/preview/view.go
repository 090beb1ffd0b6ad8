package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// View renders the preview.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	body := m.body()
	if m.viewportReady {
		body = m.viewport.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		BodyStyle.Render(body),
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	title := fmt.Sprintf("osd preview  %s  every %s", ModeStyle.Render(m.mode.String()), m.interval)
	if m.plain {
		title += "  (plain)"
	}
	return HeaderStyle.Render(title)
}

func (m Model) renderFooter() string {
	var status string
	switch {
	case m.samples == 0 && m.lastErr == nil:
		status = "waiting for first sample"
	case m.lastUpdate.IsZero():
		status = "no samples"
	default:
		status = fmt.Sprintf("sampled %s · %s attributes · %s samples",
			humanize.Time(m.lastUpdate),
			humanize.Comma(int64(m.snapshot.Len())),
			humanize.Comma(int64(m.samples)))
	}

	lines := []string{FooterStyle.Render(status)}
	if m.lastErr != nil {
		lines = append(lines, FooterStyle.Render(ErrorStyle.Render("last sample failed: "+firstLine(m.lastErr.Error()))))
	}

	var hints []string
	for _, b := range m.keys.ShortHelp() {
		hints = append(hints, b.Help().Key+" "+b.Help().Desc)
	}
	lines = append(lines, FooterStyle.Render(strings.Join(hints, " · ")))
	return strings.Join(lines, "\n")
}

// renderHelpOverlay renders a centered help box with keyboard shortcuts.
func (m Model) renderHelpOverlay() string {
	var lines []string
	lines = append(lines, helpTitleStyle.Render("Keyboard Shortcuts"))

	for _, group := range m.keys.FullHelp() {
		for _, b := range group {
			lines = append(lines, helpKeyStyle.Render(b.Help().Key)+helpDescStyle.Render(b.Help().Desc))
		}
	}

	lines = append(lines, "")
	lines = append(lines, helpDescStyle.Render("Press ? to close"))

	helpBox := helpBoxStyle.Render(strings.Join(lines, "\n"))
	if m.width == 0 || m.height == 0 {
		return helpBox
	}

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		helpBox,
		lipgloss.WithWhitespaceChars(" "),
	)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
