package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent = lipgloss.Color("39")
	colorMuted  = lipgloss.Color("245")
	colorDanger = lipgloss.Color("196")
	colorOK     = lipgloss.Color("42")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorOK)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	dangerDialogStyle = dialogStyle.BorderForeground(colorDanger)
)

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorMuted).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	return s
}
