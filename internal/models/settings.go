package models

// Settings represents application-wide settings
type Settings struct {
	Timezone          string `json:"timezone"`            // IANA timezone name used to decide "today" (or "Local" for system timezone)
	WeekStartDay      int    `json:"week_start_day"`      // 0=Monday
	DefaultPeriodDays int    `json:"default_period_days"` // stats window used when none is requested
}
