package system

import (
	"errors"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/journeyline/internal/cli"
	"github.com/julianstephens/journeyline/internal/instance"
	"github.com/julianstephens/journeyline/internal/logger"
	"github.com/julianstephens/journeyline/internal/storage"
	"github.com/julianstephens/journeyline/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if !storage.IsPostgresConnString(ctx.Store.GetConfigPath()) {
		lock, err := instance.Acquire(filepath.Dir(ctx.Store.GetConfigPath()))
		if err != nil {
			if errors.Is(err, instance.ErrAlreadyRunning) {
				return err
			}
			logger.Warn("Could not write lockfile", "error", err)
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn("Could not remove lockfile", "error", err)
			}
		}()
	}

	s, err := ctx.Session()
	if err != nil {
		return err
	}

	model := tui.NewModel(tui.Deps{
		Session:  s,
		Engine:   ctx.Engine,
		Guidance: ctx.Guidance,
		Router:   ctx.Router,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	return nil
}
