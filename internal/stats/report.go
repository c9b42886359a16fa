package stats

// StatusBreakdown counts slots per completion status.
type StatusBreakdown struct {
	Followed int `json:"followed"`
	Adjusted int `json:"adjusted"`
	Skipped  int `json:"skipped"`
	Replaced int `json:"replaced"`
	Social   int `json:"social"`
	Unmarked int `json:"unmarked"`
}

// Sum returns the number of slots across all statuses.
func (b StatusBreakdown) Sum() int {
	return b.Followed + b.Adjusted + b.Skipped + b.Replaced + b.Social + b.Unmarked
}

// MealTypeAdherence is the adherence rate of one meal type.
type MealTypeAdherence struct {
	MealTypeID string `json:"-"`
	Name       string `json:"name"`
	Rate       Rate   `json:"adherence_rate"`
}

// DailyAdherence is one point of the daily adherence series.
type DailyAdherence struct {
	Date     string `json:"date"`
	Total    int    `json:"total"`
	Followed int    `json:"followed"`
	Rate     Rate   `json:"adherence_rate"`
}

// Report is the adherence summary for a trailing window.
type Report struct {
	PeriodDays     int                 `json:"period_days"`
	TotalSlots     int                 `json:"total_slots"`
	CompletedSlots int                 `json:"completed_slots"`
	ByStatus       StatusBreakdown     `json:"by_status"`
	AdherenceRate  Rate                `json:"adherence_rate"`
	CurrentStreak  int                 `json:"current_streak"`
	BestStreak     int                 `json:"best_streak"`
	OverrideDays   int                 `json:"override_days"`
	ByMealType     []MealTypeAdherence `json:"by_meal_type"`
	Daily          []DailyAdherence    `json:"daily_adherence"`
}
