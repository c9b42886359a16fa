package constants

const (
	// General Settings
	SettingTimezone          = "timezone"
	SettingWeekStartDay      = "week_start_day"
	SettingDefaultPeriodDays = "default_period_days"

	// Default Settings Values
	DefaultTimezone     = "UTC"
	DefaultWeekStartDay = 0 // 0=Monday
)
