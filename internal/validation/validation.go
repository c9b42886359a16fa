package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/mealframe/internal/models"
	"github.com/julianstephens/mealframe/internal/utils"
)

// ConflictType represents the type of integrity problem
type ConflictType string

const (
	ConflictUnknownStatus     ConflictType = "unknown_status"
	ConflictDuplicatePosition ConflictType = "duplicate_position"
	ConflictInvalidPosition   ConflictType = "invalid_position"
	ConflictDateMismatch      ConflictType = "date_mismatch"
	ConflictUnknownMealType   ConflictType = "unknown_meal_type"
	ConflictDuplicateMealType ConflictType = "duplicate_meal_type"
	ConflictFutureDay         ConflictType = "future_day"
)

// Severity separates data that corrupts statistics from data that is merely suspicious.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Conflict represents a detected problem in tracked data
type Conflict struct {
	Type        ConflictType
	Severity    Severity
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Slot or meal type IDs involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// HasErrors returns true if any conflict has error severity
func (vr *ValidationResult) HasErrors() bool {
	for _, c := range vr.Conflicts {
		if c.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns the number of conflicts with the given severity
func (vr *ValidationResult) Count(severity Severity) int {
	n := 0
	for _, c := range vr.Conflicts {
		if c.Severity == severity {
			n++
		}
	}
	return n
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- [%s] %s\n", conflict.Severity, conflict.Description)
	}
	return b.String()
}

func (vr *ValidationResult) add(c Conflict) {
	vr.Conflicts = append(vr.Conflicts, c)
}

// Validator checks tracked days and meal types for integrity problems
type Validator struct {
	today time.Time
}

// New creates a Validator that treats days after today as future-dated.
// A zero today disables the future-day check.
func New(today time.Time) *Validator {
	if !today.IsZero() {
		today = utils.DateOf(today)
	}
	return &Validator{today: today}
}

// ValidateMealTypes reports meal types whose names collide ignoring case
func (v *Validator) ValidateMealTypes(mealTypes []models.MealType) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	byName := make(map[string][]string)
	var names []string
	for _, mt := range mealTypes {
		key := strings.ToLower(strings.TrimSpace(mt.Name))
		if _, seen := byName[key]; !seen {
			names = append(names, key)
		}
		byName[key] = append(byName[key], mt.ID)
	}

	for _, name := range names {
		ids := byName[name]
		if len(ids) > 1 {
			result.add(Conflict{
				Type:        ConflictDuplicateMealType,
				Severity:    SeverityError,
				Description: fmt.Sprintf("Duplicate meal type name: %q (IDs: %v)", name, ids),
				Items:       ids,
			})
		}
	}
	return result
}

// ValidateDays checks every day and slot against the known meal types.
// Conflicts are ordered by date, then by the order the checks run.
func (v *Validator) ValidateDays(days []models.TrackedDay, mealTypes []models.MealType) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	known := make(map[string]bool, len(mealTypes))
	for _, mt := range mealTypes {
		known[mt.ID] = true
	}

	sorted := make([]models.TrackedDay, len(days))
	copy(sorted, days)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	for _, day := range sorted {
		v.validateDay(&result, day, known)
	}
	return result
}

func (v *Validator) validateDay(result *ValidationResult, day models.TrackedDay, known map[string]bool) {
	date := utils.DateOf(day.Date)
	dateStr := utils.FormatDate(date)

	if !v.today.IsZero() && date.After(v.today) {
		result.add(Conflict{
			Type:        ConflictFutureDay,
			Severity:    SeverityWarning,
			Description: fmt.Sprintf("%s: day is after today (%s)", dateStr, utils.FormatDate(v.today)),
			Date:        dateStr,
		})
	}

	positions := make(map[int][]string)
	var order []int
	for _, slot := range day.Slots {
		if slot.Position <= 0 {
			result.add(Conflict{
				Type:        ConflictInvalidPosition,
				Severity:    SeverityError,
				Description: fmt.Sprintf("%s: slot %s has non-positive position %d", dateStr, slot.ID, slot.Position),
				Date:        dateStr,
				Items:       []string{slot.ID},
			})
		} else {
			if _, seen := positions[slot.Position]; !seen {
				order = append(order, slot.Position)
			}
			positions[slot.Position] = append(positions[slot.Position], slot.ID)
		}

		if !slot.Date.IsZero() && !utils.DateOf(slot.Date).Equal(date) {
			result.add(Conflict{
				Type:        ConflictDateMismatch,
				Severity:    SeverityError,
				Description: fmt.Sprintf("%s: slot %s is dated %s", dateStr, slot.ID, utils.FormatDate(slot.Date)),
				Date:        dateStr,
				Items:       []string{slot.ID},
			})
		}

		if slot.Status != "" && !slot.Status.IsValid() {
			result.add(Conflict{
				Type:        ConflictUnknownStatus,
				Severity:    SeverityError,
				Description: fmt.Sprintf("%s: slot %s has unknown status %q", dateStr, slot.ID, slot.Status),
				Date:        dateStr,
				Items:       []string{slot.ID},
			})
		}

		if !known[slot.MealTypeID] {
			result.add(Conflict{
				Type:        ConflictUnknownMealType,
				Severity:    SeverityError,
				Description: fmt.Sprintf("%s: slot %s references missing meal type ID: %s", dateStr, slot.ID, slot.MealTypeID),
				Date:        dateStr,
				Items:       []string{slot.ID},
			})
		}
	}

	for _, pos := range order {
		ids := positions[pos]
		if len(ids) > 1 {
			result.add(Conflict{
				Type:        ConflictDuplicatePosition,
				Severity:    SeverityError,
				Description: fmt.Sprintf("%s: %d slots share position %d", dateStr, len(ids), pos),
				Date:        dateStr,
				Items:       ids,
			})
		}
	}
}
