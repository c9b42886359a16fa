package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/mealframe/internal/cli"
	"github.com/julianstephens/mealframe/internal/keyring"
	"github.com/julianstephens/mealframe/internal/serverlock"
	"github.com/julianstephens/mealframe/internal/storage"
	"github.com/julianstephens/mealframe/internal/storage/sqlite"
	"github.com/julianstephens/mealframe/internal/utils"
	"github.com/julianstephens/mealframe/internal/validation"
)

type DoctorCmd struct{}

// errSkipped marks a check that does not apply to the current setup.
var errSkipped = errors.New("not applicable")

type severity int

const (
	failOnError severity = iota
	warnOnError
)

type check struct {
	name     string
	needsDB  bool
	severity severity
	run      func(*cli.Context) (string, error)
}

var checks = []check{
	{"Database reachable", false, failOnError, checkDBReachable},
	{"Schema version", true, failOnError, checkSchemaVersion},
	{"Migrations complete", true, failOnError, checkMigrationsComplete},
	{"Backups present", false, warnOnError, checkBackupsPresent},
	{"Data validation", true, failOnError, checkValidation},
	{"Timezone setting", true, failOnError, checkTimezone},
	{"Clock", false, failOnError, checkClock},
	{"API server", false, warnOnError, checkServer},
	{"OS keyring", false, warnOnError, checkKeyring},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := false

	for i, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}

		detail, err := c.run(ctx)
		switch {
		case errors.Is(err, errSkipped):
			ctx.Printf("⊘ %s: SKIPPED (%s)\n", c.name, detail)
		case err != nil && c.severity == warnOnError:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		case err != nil:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		default:
			if detail != "" {
				ctx.Printf("✓ %s: OK (%s)\n", c.name, detail)
			} else {
				ctx.Printf("✓ %s: OK\n", c.name)
			}
			if i == 0 {
				dbReachable = true
			}
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) (string, error) {
	if err := ctx.Store.Load(); err != nil {
		return "", fmt.Errorf("failed to load database: %w", err)
	}
	if s, ok := ctx.Store.(*sqlite.Store); ok {
		db := s.GetDB()
		if db == nil {
			return "", fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return "", fmt.Errorf("failed to query database: %w", err)
		}
	}
	return ctx.Store.GetConfigPath(), nil
}

func checkSchemaVersion(ctx *cli.Context) (string, error) {
	migrator, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return "unversioned storage", errSkipped
	}
	status, err := migrator.SchemaStatus(context.Background())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("version %d", status.Current), nil
}

func checkMigrationsComplete(ctx *cli.Context) (string, error) {
	migrator, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return "unversioned storage", errSkipped
	}
	status, err := migrator.SchemaStatus(context.Background())
	if err != nil {
		return "", err
	}
	if !status.UpToDate() {
		return "", fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'mealframe migrate')", status.Current, status.Latest)
	}
	return "", nil
}

func checkBackupsPresent(ctx *cli.Context) (string, error) {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return "SQLite only", errSkipped
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return "", fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return "", fmt.Errorf("no backups found - consider creating one with 'mealframe backup create'")
	}
	return fmt.Sprintf("%d, newest %s", len(backups), backups[0].Name()), nil
}

func checkValidation(ctx *cli.Context) (string, error) {
	mealTypes, err := ctx.Store.GetAllMealTypes()
	if err != nil {
		return "", fmt.Errorf("failed to get meal types: %w", err)
	}
	days, err := ctx.Store.GetAllTrackedDays()
	if err != nil {
		return "", fmt.Errorf("failed to get tracked days: %w", err)
	}
	today, err := ctx.Today()
	if err != nil {
		today = time.Time{}
	}

	validator := validation.New(today)
	result := validator.ValidateMealTypes(mealTypes)
	dayResult := validator.ValidateDays(days, mealTypes)
	result.Conflicts = append(result.Conflicts, dayResult.Conflicts...)

	if result.HasErrors() {
		return "", errors.New(result.FormatReport())
	}
	detail := fmt.Sprintf("%d meal types, %d days", len(mealTypes), len(days))
	if n := result.Count(validation.SeverityWarning); n > 0 {
		detail += fmt.Sprintf(", %d warning(s)", n)
		for _, c := range result.Conflicts {
			ctx.Printf("   ⚠ %s\n", c.Description)
		}
	}
	return detail, nil
}

func checkTimezone(ctx *cli.Context) (string, error) {
	tz := ctx.Settings().Timezone
	if !utils.ValidateTimezone(tz) {
		return "", fmt.Errorf("invalid timezone %q (fix with 'mealframe settings --timezone')", tz)
	}
	return tz, nil
}

func checkClock(ctx *cli.Context) (string, error) {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return "", fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return "", nil
}

func checkServer(ctx *cli.Context) (string, error) {
	info, err := serverlock.Check(ctx.LockDir())
	if errors.Is(err, serverlock.ErrNotRunning) {
		return "not running", errSkipped
	}
	if err != nil {
		return "", fmt.Errorf("lockfile %s: %w", serverlock.Path(ctx.LockDir()), err)
	}
	return fmt.Sprintf("running on port %d, pid %d", info.Port, info.PID), nil
}

func checkKeyring(ctx *cli.Context) (string, error) {
	if !keyring.IsAvailable() {
		return "", keyring.ErrKeyringUnavailable
	}
	if _, err := keyring.GetConnectionString(); err == nil {
		return "connection string stored", nil
	}
	return "available", nil
}
