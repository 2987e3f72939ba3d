package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/popmix/internal/shared"
	"github.com/desertthunder/popmix/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive playlist builder.
//
// The catalog is loaded before the terminal is taken over; a catalog that cannot be read ends the program.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	tracks, err := r.catalog(ctx)
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	if err := shared.SetLogLevel(fileLogger, r.config.Log.Level); err != nil {
		return err
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, tracks, r.playlists(), ui.Options{
		BulkLimit:     r.config.UI.BulkLimit,
		NotifyTimeout: time.Duration(r.config.UI.NotifySeconds) * time.Second,
		Logger:        fileLogger,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
