/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package terminal

import "github.com/charmbracelet/lipgloss"

var (
	colorTitle     = lipgloss.Color("99")
	colorMuted     = lipgloss.Color("242")
	colorCorrect   = lipgloss.Color("42")
	colorIncorrect = lipgloss.Color("196")
	colorWarning   = lipgloss.Color("214")
)

var frame = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(1, 2)

// stylize applies an optional foreground color.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

func bold(text string, noColor bool) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Render(text)
}
