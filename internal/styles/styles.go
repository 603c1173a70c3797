package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// ANSI color codes used by the CLI
const (
	ColorDarkRed     = "160"
	ColorMediumGreen = "40"
	ColorLightBlue   = "39"
	ColorDimGray     = "240"
	ColorYellow      = "3"
)

var (
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMediumGreen))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkRed)).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow))
	DimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDimGray))
	KeyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLightBlue))
)

// Status renders a yes/no cell. Styling is skipped when plain is true so
// piped output stays free of escape codes.
func Status(ok bool, plain bool) string {
	text := "no"
	style := ErrorStyle
	if ok {
		text = "yes"
		style = SuccessStyle
	}
	if plain {
		return text
	}
	return style.Render(text)
}

// Field renders a "label: value" line, or "label: placeholder" when value is
// empty. Styling is skipped when plain is true.
func Field(label, value, placeholder string, plain bool) string {
	if plain {
		if value == "" {
			value = placeholder
		}
		return label + ": " + value
	}
	if value == "" {
		return KeyStyle.Render(label+":") + " " + DimStyle.Render(placeholder)
	}
	return KeyStyle.Render(label+":") + " " + value
}
