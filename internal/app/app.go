// Package app wires the viewer to the operating system and runs it.
package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/kyaoi/markread/internal/config"
	"github.com/kyaoi/markread/internal/host"
	"github.com/kyaoi/markread/internal/render"
	"github.com/kyaoi/markread/internal/ui"
	"github.com/kyaoi/markread/internal/viewer"
)

// Run executes the Bubble Tea program for the viewer until the user quits
// or ctx is cancelled. args are the process arguments, program name first.
func Run(ctx context.Context, args []string, cfg *config.Config, log zerolog.Logger) error {
	theme, err := viewer.ParseTheme(cfg.Theme)
	if err != nil {
		return fmt.Errorf("start theme: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	broker := host.NewBroker()
	shell := viewer.NewShell(host.NewOS(broker, log), render.New(), log)
	if err := shell.SetTheme(theme); err != nil {
		return err
	}
	model := ui.NewModel(ui.Options{
		Shell:       shell,
		Dialogs:     broker.Requests(),
		Log:         log,
		Context:     ctx,
		Args:        args,
		Watch:       cfg.Watch,
		PreviewPath: cfg.PreviewPath,
		StartDir:    StartDir(args),
	})
	defer func() {
		if err := model.Close(); err != nil {
			log.Warn().Err(err).Msg("closing watcher")
		}
	}()

	log.Info().Strs("args", args).Msg("starting viewer")
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running viewer: %w", err)
	}
	return nil
}
