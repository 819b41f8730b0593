package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var divider = strings.Repeat("─", 54)

// renderPage lays out one screen: title, body and the key help line.
func renderPage(title, body, hotKeys string) string {
	if strings.TrimSpace(body) == "" {
		body = "-"
	}

	help := "ctrl+c: quit"
	if hotKeys != "" {
		help = hotKeys + " │ " + help
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		divider,
		"",
		bodyStyle.Render(body),
		"",
		divider,
		helpStyle.Render(help),
	)
}

// fitText cuts v to at most width runes, marking the cut with "...".
func fitText(v string, width int) string {
	runes := []rune(v)
	if width <= 0 || len(runes) <= width {
		return v
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
