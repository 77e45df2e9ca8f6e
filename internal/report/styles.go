package report

import "github.com/charmbracelet/lipgloss"

const (
	colorGreen  = "42"
	colorRed    = "196"
	colorYellow = "220"
	colorGray   = "245"
)

// Styles holds the render styles for check output.
type Styles struct {
	Pass lipgloss.Style
	Fail lipgloss.Style
	Warn lipgloss.Style
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// DefaultStyles returns the colored style set.
func DefaultStyles() Styles {
	return Styles{
		Pass: lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen)),
		Fail: lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed)),
		Warn: lipgloss.NewStyle().Foreground(lipgloss.Color(colorYellow)),
		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// PlainStyles returns unstyled output for pipes and --no-color.
func PlainStyles() Styles {
	return Styles{
		Pass: lipgloss.NewStyle(),
		Fail: lipgloss.NewStyle(),
		Warn: lipgloss.NewStyle(),
		Dim:  lipgloss.NewStyle(),
		Bold: lipgloss.NewStyle(),
	}
}
