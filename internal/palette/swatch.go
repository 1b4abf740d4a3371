package palette

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	slugStyle = lipgloss.NewStyle().
			Width(18).
			Foreground(lipgloss.Color("#9CA3AF"))

	hexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))
)

func chip(hex string) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Render("    ")
}

// Swatch renders one theme as a terminal line: two color chips, the slug,
// the display name in the primary color and the hex values.
func Swatch(t Theme) string {
	name := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.Primary)).
		Render(t.Name)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		chip(t.Primary),
		chip(t.Secondary),
		"  ",
		slugStyle.Render(t.Slug),
		name,
		"  ",
		hexStyle.Render(t.Primary+" "+t.Secondary),
	)
}

// Swatches renders every theme, one per line.
func Swatches() string {
	lines := make([]string, 0, len(themes))
	for _, t := range themes {
		lines = append(lines, Swatch(t))
	}
	return strings.Join(lines, "\n")
}
