// Package tui is the interactive terminal front end: one bubbletea model that renders the
// current route and turns keys into router, session and locale operations.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"userdir-cli/internal/app"
)

// Run starts the program at start (the initial "address bar" path).
func Run(ctx context.Context, a *app.App, start string) error {
	m := newAppModel(ctx, a, start)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
