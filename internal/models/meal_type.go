package models

import "time"

// MealType is a functional eating slot, e.g. "Pre-Workout Snack".
type MealType struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
