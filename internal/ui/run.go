package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the profile browser until the user quits.
func Run(ctx context.Context, deps Deps) error {
	p := tea.NewProgram(New(ctx, deps), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
