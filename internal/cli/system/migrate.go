package system

import (
	"context"
	"fmt"

	"github.com/julianstephens/mealframe/internal/cli"
	"github.com/julianstephens/mealframe/internal/storage"
)

type MigrateCmd struct {
	NoBackup bool `help:"Skip the automatic backup taken before migrating."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	migrator, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return fmt.Errorf("storage backend does not support migrations")
	}
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	bg := context.Background()
	status, err := migrator.SchemaStatus(bg)
	if err != nil {
		return err
	}
	if status.UpToDate() {
		ctx.Println("No migrations to apply. Database is up to date.")
		return nil
	}

	if !c.NoBackup {
		ctx.PerformAutomaticBackup(bg)
	}

	count, err := migrator.Migrate(bg, func(msg string) { ctx.Println(msg) })
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	return nil
}
