package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/mealframe/internal/backup"
	"github.com/julianstephens/mealframe/internal/logger"
	"github.com/julianstephens/mealframe/internal/models"
	"github.com/julianstephens/mealframe/internal/stats"
	"github.com/julianstephens/mealframe/internal/storage"
	"github.com/julianstephens/mealframe/internal/storage/sqlite"
	"github.com/julianstephens/mealframe/internal/utils"
)

// Context is handed to every command's Run method.
type Context struct {
	Store storage.Provider
	// ConfigDir holds logs, backups and the server lockfile.
	ConfigDir string
	// Out receives command output; nil means stdout.
	Out io.Writer
	// Now is the wall clock; nil means time.Now.
	Now func() time.Time
}

// Stdout returns the command output writer.
func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Printf writes formatted command output.
func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

// Println writes a line of command output.
func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Stdout(), args...)
}

func (c *Context) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Settings loads the stored settings, falling back to defaults when none are saved.
func (c *Context) Settings() models.Settings {
	settings, err := c.Store.GetSettings()
	if err != nil {
		logger.Warn("Failed to load settings, using defaults", "error", err)
		return models.DefaultSettings()
	}
	return settings
}

// Location returns the configured timezone.
func (c *Context) Location() (*time.Location, error) {
	return utils.LoadLocation(c.Settings().Timezone)
}

// Today returns today's civil date in the configured timezone.
func (c *Context) Today() (time.Time, error) {
	loc, err := c.Location()
	if err != nil {
		return time.Time{}, err
	}
	return utils.TodayInLocation(c.now(), loc), nil
}

// ParseDay accepts YYYY-MM-DD, "today" or "yesterday".
func (c *Context) ParseDay(value string) (time.Time, error) {
	switch value {
	case "today", "yesterday":
		today, err := c.Today()
		if err != nil {
			return time.Time{}, err
		}
		if value == "yesterday" {
			return utils.AddDays(today, -1), nil
		}
		return today, nil
	}
	return utils.ParseDate(value)
}

// StatsService builds a report service over the store in the configured timezone.
func (c *Context) StatsService(opts ...stats.Option) (*stats.Service, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	opts = append([]stats.Option{stats.WithClock(c.now)}, opts...)
	return stats.NewService(c.Store, loc, opts...), nil
}

// SQLitePath returns the database file when the store is SQLite.
func (c *Context) SQLitePath() (string, bool) {
	if s, ok := c.Store.(*sqlite.Store); ok {
		return s.GetConfigPath(), true
	}
	return "", false
}

// BackupManager returns a backup manager for SQLite stores.
func (c *Context) BackupManager() (*backup.Manager, error) {
	path, ok := c.SQLitePath()
	if !ok {
		return nil, fmt.Errorf("backups are only supported for SQLite storage")
	}
	return backup.NewManager(path), nil
}

// PerformAutomaticBackup creates a backup and logs, rather than returns, failures
func (c *Context) PerformAutomaticBackup(ctx context.Context) {
	mgr, err := c.BackupManager()
	if err != nil {
		logger.Debug("Skipping automatic backup", "reason", err)
		return
	}
	if _, err := mgr.CreateBackup(ctx); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// LockDir is where the server lockfile lives.
func (c *Context) LockDir() string {
	if c.ConfigDir != "" {
		return c.ConfigDir
	}
	if path, ok := c.SQLitePath(); ok {
		return filepath.Dir(path)
	}
	return "."
}
