package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/mealframe/internal/constants"
)

// DefaultSettings returns the settings written on first initialization.
func DefaultSettings() Settings {
	return Settings{
		Timezone:          constants.DefaultTimezone,
		WeekStartDay:      constants.DefaultWeekStartDay,
		DefaultPeriodDays: constants.DefaultPeriodDays,
	}
}

// MapToSettings converts a map of key-value pairs to a Settings struct.
// Keys missing from data keep their default value.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingWeekStartDay:
			if _, err := fmt.Sscanf(value, "%d", &settings.WeekStartDay); err != nil {
				return Settings{}, fmt.Errorf("parsing week_start_day: %w", err)
			}
		case constants.SettingDefaultPeriodDays:
			if _, err := fmt.Sscanf(value, "%d", &settings.DefaultPeriodDays); err != nil {
				return Settings{}, fmt.Errorf("parsing default_period_days: %w", err)
			}
		}
	}

	return settings, nil
}

// SettingsToMap converts a Settings struct to the key-value form stored in the settings table.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:          settings.Timezone,
		constants.SettingWeekStartDay:      strconv.Itoa(settings.WeekStartDay),
		constants.SettingDefaultPeriodDays: strconv.Itoa(settings.DefaultPeriodDays),
	}
}
