package render

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"tinge/internal/style"
)

// Theme maps style kinds to terminal styles. Kinds without an entry
// render unstyled.
type Theme map[style.Kind]lipgloss.Style

// DefaultTheme mirrors the classic editor palette.
func DefaultTheme() Theme {
	return Theme{
		style.Keyword:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		style.Type:       lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		style.Comment:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		style.String:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		style.Identifier: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		style.Number:     lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		style.Function:   lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
		style.Preprocess: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// ThemeFromColors builds a theme from kind-name to color overrides, on
// top of the default palette. Color values are anything lipgloss
// accepts: ANSI indexes ("3"), or hex ("#a8cc8c").
func ThemeFromColors(colors map[string]string) (Theme, error) {
	theme := DefaultTheme()
	for name, color := range colors {
		kind, ok := kindByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown style kind %q in theme", name)
		}
		theme[kind] = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	return theme, nil
}

func kindByName(name string) (style.Kind, bool) {
	for _, k := range style.Kinds() {
		if k.String() == name {
			return k, true
		}
	}
	return style.Text, false
}
