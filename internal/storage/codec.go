package storage

import (
	"database/sql"
	"sort"
	"time"

	"github.com/julianstephens/mealframe/internal/models"
	"github.com/julianstephens/mealframe/internal/utils"
)

// StatusFromColumn maps a nullable completion_status column to a status.
// NULL reads as unmarked; unknown strings are kept so integrity checks can report them.
func StatusFromColumn(v sql.NullString) models.CompletionStatus {
	if !v.Valid || v.String == "" {
		return models.StatusUnmarked
	}
	return models.CompletionStatus(v.String)
}

// StatusToColumn maps a status to its column value; unmarked is stored as NULL.
func StatusToColumn(status models.CompletionStatus) sql.NullString {
	if !status.IsMarked() {
		return sql.NullString{}
	}
	return sql.NullString{String: string(status), Valid: true}
}

// MergeDays attaches slots to their days by date. Slots whose date has no
// day get a synthetic non-override day. The result is ordered by date and
// each day's slots by position.
func MergeDays(days []models.TrackedDay, slots []models.TrackedSlot) []models.TrackedDay {
	byDate := make(map[time.Time]*models.TrackedDay, len(days))
	for i := range days {
		d := days[i]
		d.Date = utils.DateOf(d.Date)
		byDate[d.Date] = &d
	}
	for _, slot := range slots {
		date := utils.DateOf(slot.Date)
		day, ok := byDate[date]
		if !ok {
			day = &models.TrackedDay{Date: date}
			byDate[date] = day
		}
		day.Slots = append(day.Slots, slot)
	}

	merged := make([]models.TrackedDay, 0, len(byDate))
	for _, day := range byDate {
		sort.SliceStable(day.Slots, func(i, j int) bool {
			return day.Slots[i].Position < day.Slots[j].Position
		})
		merged = append(merged, *day)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Date.Before(merged[j].Date) })
	return merged
}
