package storage

import (
	"context"
	"errors"
	"time"

	"github.com/julianstephens/mealframe/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a unique key is already taken.
	ErrAlreadyExists = errors.New("already exists")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Meal types
	AddMealType(models.MealType) error
	GetMealType(id string) (models.MealType, error)
	GetMealTypeByName(name string) (models.MealType, error)
	GetAllMealTypes() ([]models.MealType, error)

	// Tracked days
	// SaveTrackedDay writes the day row and replaces all of its slots.
	SaveTrackedDay(models.TrackedDay) error
	GetTrackedDay(date time.Time) (models.TrackedDay, error)
	// GetTrackedDays returns days dated within [start, end] in ascending date
	// order, each with its slots ordered by position. Slots without a day row
	// are returned under a non-override day of their own.
	GetTrackedDays(ctx context.Context, start, end time.Time) ([]models.TrackedDay, error)
	// SetSlotStatus records the outcome of one slot. StatusUnmarked clears it.
	SetSlotStatus(date time.Time, position int, status models.CompletionStatus) error

	// Bulk retrieval for integrity checks
	GetAllTrackedDays() ([]models.TrackedDay, error)

	// Utils
	GetConfigPath() string
}
