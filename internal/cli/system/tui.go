package system

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/mealframe/internal/cli"
	"github.com/julianstephens/mealframe/internal/tui"
)

type TuiCmd struct {
	Days int `help:"Initial window size in days (defaults to the default_period_days setting)."`
}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup(context.Background())

	svc, err := ctx.StatsService()
	if err != nil {
		return err
	}
	days := c.Days
	if days == 0 {
		days = ctx.Settings().DefaultPeriodDays
	}

	p := tea.NewProgram(tui.NewModel(svc, days), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}
