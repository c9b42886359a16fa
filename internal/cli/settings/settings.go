package settings

import (
	"fmt"
	"time"

	"github.com/julianstephens/mealframe/internal/cli"
	"github.com/julianstephens/mealframe/internal/stats"
	"github.com/julianstephens/mealframe/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone          *string `help:"IANA timezone used to decide which day is today (or 'Local')."`
	WeekStartDay      *int    `help:"First day of the week, 0=Monday through 6=Sunday."`
	DefaultPeriodDays *int    `help:"Window size in days used when none is requested (1-365)."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Timezone:            %s\n", settings.Timezone)
		ctx.Printf("  Week Start Day:      %s\n", weekdayName(settings.WeekStartDay))
		ctx.Printf("  Default Period Days: %d\n", settings.DefaultPeriodDays)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone: %s", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.WeekStartDay != nil {
		if *c.WeekStartDay < 0 || *c.WeekStartDay > 6 {
			return fmt.Errorf("week start day must be between 0 (Monday) and 6 (Sunday), got %d", *c.WeekStartDay)
		}
		settings.WeekStartDay = *c.WeekStartDay
		updated = true
	}
	if c.DefaultPeriodDays != nil {
		if err := stats.ValidateDays(*c.DefaultPeriodDays); err != nil {
			return err
		}
		settings.DefaultPeriodDays = *c.DefaultPeriodDays
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.Println("Settings updated successfully.")
	} else {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}

// weekdayName maps 0=Monday..6=Sunday to a name.
func weekdayName(day int) string {
	if day < 0 || day > 6 {
		return fmt.Sprintf("invalid (%d)", day)
	}
	return time.Weekday((day + 1) % 7).String()
}
