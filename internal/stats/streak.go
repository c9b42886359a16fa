package stats

import (
	"time"

	"github.com/julianstephens/mealframe/internal/models"
	"github.com/julianstephens/mealframe/internal/utils"
)

// streaks returns the current and best runs of fully marked dates.
// Every calendar date of the window is visited once, oldest first; a date
// with no tracked day or no slots ends the run.
func streaks(index map[time.Time]models.TrackedDay, window Window) (current, best int) {
	run := 0
	date := window.Start()
	for i := 0; i < window.Days; i++ {
		if day, ok := index[date]; ok && day.FullyMarked() {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
		date = utils.AddDays(date, 1)
	}
	// The scan ends on the window's end date, so the open run is the current streak.
	return run, best
}
