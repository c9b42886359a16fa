package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/mealframe/internal/api"
	"github.com/julianstephens/mealframe/internal/cli"
	"github.com/julianstephens/mealframe/internal/constants"
	"github.com/julianstephens/mealframe/internal/logger"
	"github.com/julianstephens/mealframe/internal/metrics"
	"github.com/julianstephens/mealframe/internal/serverlock"
	"github.com/julianstephens/mealframe/internal/stats"
)

type ServeCmd struct {
	Host        string   `help:"Address to listen on." default:"localhost" env:"MEALFRAME_HOST"`
	Port        int      `help:"Port to listen on." default:"8000" env:"MEALFRAME_PORT"`
	CORSOrigins []string `name:"cors-origins" help:"Allowed CORS origins (comma separated)." env:"CORS_ORIGINS" sep:","`
	NoMetrics   bool     `help:"Disable the /metrics endpoint."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	server, err := c.build(ctx)
	if err != nil {
		return err
	}

	lock, err := serverlock.Acquire(ctx.LockDir(), c.Port)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("Failed to release server lock", "error", err)
		}
	}()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.Printf("Serving %s on http://%s:%d\n", constants.APIPrefix+"/stats", c.Host, c.Port)
	return server.Run(sigCtx)
}

func (c *ServeCmd) build(ctx *cli.Context) (*api.Server, error) {
	settings := ctx.Settings()

	var (
		m    *metrics.Metrics
		opts []stats.Option
	)
	if !c.NoMetrics {
		m = metrics.New(true)
		opts = append(opts, stats.WithObserver(m))
	}

	svc, err := ctx.StatsService(opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone setting: %w", err)
	}

	return api.NewServer(svc, m, &api.Config{
		Host:        c.Host,
		Port:        c.Port,
		CORSOrigins: c.CORSOrigins,
		DefaultDays: settings.DefaultPeriodDays,
	})
}
