package stats

import (
	"context"
	"time"

	"github.com/julianstephens/mealframe/internal/models"
	"github.com/julianstephens/mealframe/internal/utils"
)

var today = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return utils.AddDays(today, -n)
}

// day builds a tracked day whose slots all belong to one meal type.
func day(date time.Time, statuses ...models.CompletionStatus) models.TrackedDay {
	d := models.TrackedDay{Date: date}
	for i, s := range statuses {
		d.Slots = append(d.Slots, models.TrackedSlot{
			Date:         date,
			Position:     i + 1,
			MealTypeID:   "mt-breakfast",
			MealTypeName: "Breakfast",
			Status:       s,
		})
	}
	return d
}

func slot(date time.Time, mealTypeID, name string, status models.CompletionStatus) models.TrackedSlot {
	return models.TrackedSlot{Date: date, MealTypeID: mealTypeID, MealTypeName: name, Status: status}
}

func mustWindow(end time.Time, days int) Window {
	w, err := NewWindow(end, days)
	if err != nil {
		panic(err)
	}
	return w
}

type fakeReader struct {
	days  []models.TrackedDay
	err   error
	calls int
	start time.Time
	end   time.Time
	after func()
}

func (f *fakeReader) GetTrackedDays(_ context.Context, start, end time.Time) ([]models.TrackedDay, error) {
	f.calls++
	f.start, f.end = start, end
	if f.after != nil {
		f.after()
	}
	return f.days, f.err
}

type observation struct {
	days    int
	outcome string
}

type recordingObserver struct {
	seen []observation
}

func (r *recordingObserver) ObserveReport(days int, outcome string, _ time.Duration) {
	r.seen = append(r.seen, observation{days: days, outcome: outcome})
}

const (
	followed = models.StatusFollowed
	adjusted = models.StatusAdjusted
	skipped  = models.StatusSkipped
	replaced = models.StatusReplaced
	social   = models.StatusSocial
	unmarked = models.StatusUnmarked
)
