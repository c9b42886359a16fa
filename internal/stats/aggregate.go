package stats

import (
	"sort"
	"time"

	"github.com/julianstephens/mealframe/internal/models"
	"github.com/julianstephens/mealframe/internal/utils"
)

// Aggregate folds tracked days into a report for window.
// Days outside the window are ignored. Days sharing a date are merged.
func Aggregate(days []models.TrackedDay, window Window) Report {
	index := indexDays(days, window)

	var overall Tally
	overrideDays := 0
	groups := make(map[string]*mealTypeGroup)
	daily := make([]DailyAdherence, 0, len(index))

	for _, date := range sortedDates(index) {
		day := index[date]
		if day.IsOverride {
			overrideDays++
		}
		if len(day.Slots) == 0 {
			continue
		}

		var dayTally Tally
		for _, slot := range day.Slots {
			overall.Add(slot.Status)
			dayTally.Add(slot.Status)

			g, ok := groups[slot.MealTypeID]
			if !ok {
				g = &mealTypeGroup{id: slot.MealTypeID, name: slot.MealTypeName}
				groups[slot.MealTypeID] = g
			}
			g.tally.Add(slot.Status)
		}

		daily = append(daily, DailyAdherence{
			Date:     utils.FormatDate(date),
			Total:    dayTally.Total(),
			Followed: dayTally.Count(models.StatusFollowed),
			Rate:     dayTally.Rate(),
		})
	}

	current, best := streaks(index, window)

	return Report{
		PeriodDays:     window.Days,
		TotalSlots:     overall.Total(),
		CompletedSlots: overall.Completed(),
		ByStatus:       overall.Breakdown(),
		AdherenceRate:  overall.Rate(),
		CurrentStreak:  current,
		BestStreak:     best,
		OverrideDays:   overrideDays,
		ByMealType:     rankMealTypes(groups),
		Daily:          daily,
	}
}

type mealTypeGroup struct {
	id    string
	name  string
	tally Tally
}

// rankMealTypes orders groups ascending by rate, then by name and id.
func rankMealTypes(groups map[string]*mealTypeGroup) []MealTypeAdherence {
	out := make([]MealTypeAdherence, 0, len(groups))
	for _, g := range groups {
		out = append(out, MealTypeAdherence{
			MealTypeID: g.id,
			Name:       g.name,
			Rate:       g.tally.Rate(),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Rate.Cmp(out[j].Rate); c != 0 {
			return c < 0
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].MealTypeID < out[j].MealTypeID
	})
	return out
}

// indexDays keys in-window days by calendar date.
func indexDays(days []models.TrackedDay, window Window) map[time.Time]models.TrackedDay {
	index := make(map[time.Time]models.TrackedDay, len(days))
	for _, day := range days {
		date := utils.DateOf(day.Date)
		if !window.Contains(date) {
			continue
		}
		if existing, ok := index[date]; ok {
			existing.IsOverride = existing.IsOverride || day.IsOverride
			existing.Slots = append(existing.Slots, day.Slots...)
			index[date] = existing
			continue
		}
		day.Date = date
		day.Slots = append([]models.TrackedSlot(nil), day.Slots...)
		index[date] = day
	}
	return index
}

func sortedDates(index map[time.Time]models.TrackedDay) []time.Time {
	dates := make([]time.Time, 0, len(index))
	for date := range index {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
