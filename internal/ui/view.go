package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const aboutText = `Features:
  - View saved WiFi passwords
  - Export passwords to CSV, text or JSON
  - Delete individual or all profiles
  - Copy a password to the clipboard`

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("WiFi Password Manager") + "\n")
	b.WriteString(subtitleStyle.Render("View, manage, and remove saved WiFi passwords") + "\n")
	b.WriteString(m.table.View() + "\n\n")

	switch m.mode {
	case modeConfirmDelete:
		b.WriteString(dangerDialogStyle.Render(fmt.Sprintf(
			"Delete %s?\nThis action cannot be undone.\n\n[y] yes   [any key] no",
			describe(m.pending))) + "\n")
	case modeConfirmDeleteAll:
		b.WriteString(dangerDialogStyle.Render(fmt.Sprintf(
			"WARNING: This will delete ALL %d saved WiFi profiles!\n"+
				"You will need to re-enter passwords for all networks.\n"+
				"This action cannot be undone.\n\n"+
				"Are you absolutely sure you want to continue? [y/N]",
			len(m.profiles))) + "\n")
	case modeConfirmDeleteAllFinal:
		b.WriteString(dangerDialogStyle.Render(
			"This is your final confirmation.\n\n"+
				"Press y to permanently delete all WiFi profiles.") + "\n")
	case modeExport:
		b.WriteString(dialogStyle.Render(
			"Export WiFi Profiles (.csv, .txt or .json)\n\n"+
				m.input.View()+"\n\n[enter] save   [esc] cancel") + "\n")
	case modeAbout:
		version := m.deps.Version
		if version == "" {
			version = "dev"
		}
		b.WriteString(dialogStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("WiFi Password Manager"),
			"Version "+version,
			"",
			aboutText,
			"",
			helpStyle.Render("press any key to close"),
		)) + "\n")
	default:
		b.WriteString(helpStyle.Render(
			"f5 refresh • p show/hide passwords • space mark • x delete • D delete all • e export • c copy • ? about • q quit") + "\n")
	}

	status := m.status
	if m.busy {
		status = m.spinner.View() + " " + status
	}
	b.WriteString(statusStyle.Render(status))
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg))
	}
	return b.String()
}

func describe(names []string) string {
	switch len(names) {
	case 0:
		return "nothing"
	case 1:
		return fmt.Sprintf("the WiFi profile %q", names[0])
	}
	return fmt.Sprintf("the %d selected WiFi profiles", len(names))
}
