package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/mealframe/internal/cli"
	"github.com/julianstephens/mealframe/internal/storage"
	"github.com/julianstephens/mealframe/internal/utils"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing SQLite database before initialization."`
	Source string `help:"Database path or connection string to copy meal types, tracked days and settings from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized mealframe storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		source, _, err := cli.ResolveStore(c.Source)
		if err != nil {
			return fmt.Errorf("invalid source: %w", err)
		}
		if err := copyData(ctx, source); err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		ctx.Println("Copy completed successfully!")
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	dbPath, ok := ctx.SQLitePath()
	if !ok {
		return fmt.Errorf("--force is only supported for SQLite storage")
	}
	if c.Source != "" {
		absDB, err1 := filepath.Abs(dbPath)
		absSource, err2 := filepath.Abs(c.Source)
		if err1 == nil && err2 == nil && absDB == absSource {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", absDB)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		ctx.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

// copyData copies settings, meal types and tracked days from source into ctx.Store.
func copyData(ctx *cli.Context, source storage.Provider) error {
	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	ctx.Println("  Copying settings...")
	settings, err := source.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	ctx.Println("  Copying meal types...")
	mealTypes, err := source.GetAllMealTypes()
	if err != nil {
		return fmt.Errorf("failed to get meal types from source: %w", err)
	}
	for _, mt := range mealTypes {
		if err := ctx.Store.AddMealType(mt); err != nil {
			return fmt.Errorf("failed to add meal type %s: %w", mt.Name, err)
		}
	}
	ctx.Printf("    Copied %d meal types\n", len(mealTypes))

	ctx.Println("  Copying tracked days...")
	days, err := source.GetAllTrackedDays()
	if err != nil {
		return fmt.Errorf("failed to get tracked days from source: %w", err)
	}
	slots := 0
	for _, day := range days {
		if err := ctx.Store.SaveTrackedDay(day); err != nil {
			return fmt.Errorf("failed to save day %s: %w", utils.FormatDate(day.Date), err)
		}
		slots += len(day.Slots)
	}
	ctx.Printf("    Copied %d days (%d slots)\n", len(days), slots)
	return nil
}
