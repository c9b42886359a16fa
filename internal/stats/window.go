package stats

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/mealframe/internal/constants"
	"github.com/julianstephens/mealframe/internal/utils"
)

// ErrInvalidWindow is matched by every ValidationError.
var ErrInvalidWindow = errors.New("invalid stats window")

// ValidationError reports a rejected report request.
type ValidationError struct {
	Field   string
	Value   int
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s=%d: %s", e.Field, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidWindow
}

// ExitCode marks the error as a usage error for the CLI.
func (e *ValidationError) ExitCode() int {
	return 2
}

// ValidateDays checks that days lies in [MinPeriodDays, MaxPeriodDays].
func ValidateDays(days int) error {
	if days < constants.MinPeriodDays || days > constants.MaxPeriodDays {
		return &ValidationError{
			Field: "days",
			Value: days,
			Message: fmt.Sprintf("must be between %d and %d",
				constants.MinPeriodDays, constants.MaxPeriodDays),
		}
	}
	return nil
}

// Window is a trailing range of calendar dates ending at End, inclusive.
type Window struct {
	End  time.Time
	Days int
}

// NewWindow validates days and normalizes end to a calendar date.
func NewWindow(end time.Time, days int) (Window, error) {
	if err := ValidateDays(days); err != nil {
		return Window{}, err
	}
	return Window{End: utils.DateOf(end), Days: days}, nil
}

// Start returns the first date of the window.
func (w Window) Start() time.Time {
	return utils.AddDays(w.End, -(w.Days - 1))
}

// Contains reports whether date falls inside the window.
func (w Window) Contains(date time.Time) bool {
	d := utils.DateOf(date)
	return !d.Before(w.Start()) && !d.After(utils.DateOf(w.End))
}
