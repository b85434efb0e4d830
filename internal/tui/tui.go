package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive editor and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()

	m := newAppModel(opts)
	defer m.expands.close()
	defer m.expander.Cancel()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
