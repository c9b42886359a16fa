package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/mealframe/internal/cli"
	"github.com/julianstephens/mealframe/internal/cli/backups"
	"github.com/julianstephens/mealframe/internal/cli/report"
	"github.com/julianstephens/mealframe/internal/cli/settings"
	"github.com/julianstephens/mealframe/internal/cli/system"
	"github.com/julianstephens/mealframe/internal/cli/tracking"
	"github.com/julianstephens/mealframe/internal/constants"
	apperrors "github.com/julianstephens/mealframe/internal/errors"
	"github.com/julianstephens/mealframe/internal/logger"
)

type cliArgs struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite file path or PostgreSQL connection string. Defaults to the OS keyring entry, then ~/.config/mealframe/mealframe.db. PostgreSQL passwords must NOT be embedded here; use the keyring, .pgpass or PGPASSWORD." env:"MEALFRAME_DB_CONNECTION,DATABASE_URL"`
	Debug   bool   `help:"Log debug output to stderr." env:"MEALFRAME_DEBUG,DEBUG"`

	Init    system.InitCmd    `cmd:"" help:"Initialize mealframe storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Serve   system.ServeCmd   `cmd:"" help:"Serve the stats HTTP API."`
	Stats   report.StatsCmd   `cmd:"" help:"Show adherence statistics for a trailing window."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive dashboard." default:"1"`

	Mealtype struct {
		Add  tracking.MealTypeAddCmd  `cmd:"" help:"Add a meal type."`
		List tracking.MealTypeListCmd `cmd:"" help:"List meal types."`
	} `cmd:"" name:"mealtype" help:"Manage meal types."`
	Day struct {
		Add  tracking.DayAddCmd  `cmd:"" help:"Track a day with its planned slots."`
		Show tracking.DayShowCmd `cmd:"" help:"Show a tracked day."`
	} `cmd:"" help:"Track planned days."`
	Slot struct {
		Mark tracking.SlotMarkCmd `cmd:"" help:"Record the outcome of a slot."`
	} `cmd:"" help:"Record slot outcomes."`

	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Keyring  struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password redacted)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Report whether the OS keyring is usable." default:"1"`
	} `cmd:"" help:"Manage the database connection stored in the OS keyring."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
}

var CLI cliArgs

func parserOptions() []kong.Option {
	return []kong.Option{
		kong.Name(constants.AppName),
		kong.Description("Meal plan adherence tracking and statistics"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	}
}

// selfLoading commands open (or create) the store themselves.
var selfLoading = map[string]bool{
	"init":    true,
	"migrate": true,
	"doctor":  true,
	"keyring": true,
	"tui":     true,
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	ctx := kong.Parse(&CLI, parserOptions()...)
	command := topLevel(ctx.Command())

	store, source, err := cli.ResolveStore(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}

	configDir, err := cli.DefaultConfigDir()
	if err != nil {
		apperrors.Fatal(err)
	}
	appCtx := &cli.Context{Store: store, ConfigDir: configDir}
	if path, ok := appCtx.SQLitePath(); ok {
		configDir = filepath.Dir(path)
		appCtx.ConfigDir = configDir
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: configDir,
		Stderr:    command == "serve",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	logger.Debug("Resolved storage", "source", source, "command", command)

	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("Failed to close database", "error", err)
		}
	}()

	if !selfLoading[command] {
		if err := store.Load(); err != nil {
			store.Close()
			apperrors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

// topLevel returns the first word of a kong command path, e.g. "backup" for
// "backup restore <backup-file>".
func topLevel(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
