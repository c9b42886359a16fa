package models

import (
	"fmt"
	"strings"
	"time"
)

// CompletionStatus is the recorded outcome of a planned meal slot.
type CompletionStatus string

const (
	StatusFollowed CompletionStatus = "followed"
	StatusAdjusted CompletionStatus = "adjusted"
	StatusSkipped  CompletionStatus = "skipped"
	StatusReplaced CompletionStatus = "replaced"
	StatusSocial   CompletionStatus = "social"
	// StatusUnmarked means no outcome was recorded for the slot.
	StatusUnmarked CompletionStatus = "unmarked"
)

// AllStatuses lists every completion status in report order.
var AllStatuses = []CompletionStatus{
	StatusFollowed,
	StatusAdjusted,
	StatusSkipped,
	StatusReplaced,
	StatusSocial,
	StatusUnmarked,
}

// IsValid reports whether s is one of the known statuses.
func (s CompletionStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsMarked reports whether an outcome was recorded.
func (s CompletionStatus) IsMarked() bool {
	return s.Normalize() != StatusUnmarked
}

// Normalize maps the zero value and unknown statuses to StatusUnmarked.
func (s CompletionStatus) Normalize() CompletionStatus {
	if !s.IsValid() {
		return StatusUnmarked
	}
	return s
}

func (s CompletionStatus) String() string {
	return string(s)
}

// ParseCompletionStatus parses a status name. An empty string parses as unmarked.
func ParseCompletionStatus(value string) (CompletionStatus, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return StatusUnmarked, nil
	}
	status := CompletionStatus(v)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid completion status %q (expected one of %s)", value, statusNames())
	}
	return status, nil
}

func statusNames() string {
	names := make([]string, len(AllStatuses))
	for i, s := range AllStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// TrackedSlot is one planned meal occurrence with its recorded outcome.
type TrackedSlot struct {
	ID           string           `json:"id"`
	Date         time.Time        `json:"date"`
	Position     int              `json:"position"`
	MealTypeID   string           `json:"meal_type_id"`
	MealTypeName string           `json:"meal_type_name"`
	Status       CompletionStatus `json:"completion_status"`
}

// TrackedDay is a calendar day of a meal plan and the slots planned for it.
type TrackedDay struct {
	Date       time.Time     `json:"date"`
	IsOverride bool          `json:"is_override"`
	Slots      []TrackedSlot `json:"slots"`
}

// FullyMarked reports whether the day has at least one slot and every slot has an outcome.
func (d TrackedDay) FullyMarked() bool {
	if len(d.Slots) == 0 {
		return false
	}
	for _, slot := range d.Slots {
		if !slot.Status.IsMarked() {
			return false
		}
	}
	return true
}
