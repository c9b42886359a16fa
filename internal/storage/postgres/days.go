package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/mealframe/internal/models"
	"github.com/julianstephens/mealframe/internal/storage"
	"github.com/julianstephens/mealframe/internal/utils"
)

func (s *Store) SaveTrackedDay(day models.TrackedDay) error {
	date := utils.FormatDate(day.Date)

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO tracked_days (date, is_override) VALUES ($1, $2)
		ON CONFLICT (date) DO UPDATE SET is_override = EXCLUDED.is_override`,
		date, day.IsOverride)
	if err != nil {
		return fmt.Errorf("failed to save day %s: %w", date, err)
	}

	if _, err := tx.Exec("DELETE FROM tracked_slots WHERE date = $1", date); err != nil {
		return fmt.Errorf("failed to clear slots for %s: %w", date, err)
	}

	for i, slot := range day.Slots {
		if slot.ID == "" {
			slot.ID = uuid.NewString()
		}
		if slot.Position == 0 {
			slot.Position = i + 1
		}
		_, err := tx.Exec(`
			INSERT INTO tracked_slots (id, date, position, meal_type_id, completion_status)
			VALUES ($1, $2, $3, $4, $5)`,
			slot.ID, date, slot.Position, slot.MealTypeID, storage.StatusToColumn(slot.Status))
		if err != nil {
			return fmt.Errorf("failed to save slot %d for %s: %w", slot.Position, date, err)
		}
	}

	return tx.Commit()
}

func (s *Store) GetTrackedDay(date time.Time) (models.TrackedDay, error) {
	days, err := s.GetTrackedDays(context.Background(), date, date)
	if err != nil {
		return models.TrackedDay{}, err
	}
	if len(days) == 0 {
		return models.TrackedDay{}, storage.ErrNotFound
	}
	return days[0], nil
}

func (s *Store) GetTrackedDays(ctx context.Context, start, end time.Time) ([]models.TrackedDay, error) {
	return s.readDays(ctx, true, utils.FormatDate(start), utils.FormatDate(end))
}

func (s *Store) GetAllTrackedDays() ([]models.TrackedDay, error) {
	return s.readDays(context.Background(), false)
}

func (s *Store) SetSlotStatus(date time.Time, position int, status models.CompletionStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid completion status %q", status)
	}
	res, err := s.db.Exec(
		"UPDATE tracked_slots SET completion_status = $1 WHERE date = $2 AND position = $3",
		storage.StatusToColumn(status), utils.FormatDate(date), position)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("slot %d on %s: %w", position, utils.FormatDate(date), storage.ErrNotFound)
	}
	return nil
}

// readDays loads day rows and slot rows, optionally limited to [args[0], args[1]],
// and merges them by date.
func (s *Store) readDays(ctx context.Context, ranged bool, args ...any) ([]models.TrackedDay, error) {
	dayQuery := "SELECT date::text, is_override FROM tracked_days"
	slotFilter := ""
	if ranged {
		dayQuery += " WHERE date BETWEEN $1::date AND $2::date"
		slotFilter = "WHERE s.date BETWEEN $1::date AND $2::date"
	}

	dayRows, err := s.db.QueryContext(ctx, dayQuery+" ORDER BY date", args...)
	if err != nil {
		return nil, err
	}
	defer dayRows.Close()

	var days []models.TrackedDay
	for dayRows.Next() {
		var raw string
		var day models.TrackedDay
		if err := dayRows.Scan(&raw, &day.IsOverride); err != nil {
			return nil, err
		}
		if day.Date, err = utils.ParseDate(raw); err != nil {
			return nil, fmt.Errorf("tracked_days: %w", err)
		}
		days = append(days, day)
	}
	if err := dayRows.Err(); err != nil {
		return nil, err
	}

	slotRows, err := s.db.QueryContext(ctx, `
		SELECT s.id::text, s.date::text, s.position, s.meal_type_id::text, COALESCE(m.name, ''), s.completion_status
		FROM tracked_slots s
		LEFT JOIN meal_types m ON m.id = s.meal_type_id
		`+slotFilter+`
		ORDER BY s.date, s.position`, args...)
	if err != nil {
		return nil, err
	}
	defer slotRows.Close()

	var slots []models.TrackedSlot
	for slotRows.Next() {
		var raw string
		var status sql.NullString
		var slot models.TrackedSlot
		if err := slotRows.Scan(&slot.ID, &raw, &slot.Position, &slot.MealTypeID, &slot.MealTypeName, &status); err != nil {
			return nil, err
		}
		if slot.Date, err = utils.ParseDate(raw); err != nil {
			return nil, fmt.Errorf("tracked_slots %s: %w", slot.ID, err)
		}
		slot.Status = storage.StatusFromColumn(status)
		slots = append(slots, slot)
	}
	if err := slotRows.Err(); err != nil {
		return nil, err
	}

	return storage.MergeDays(days, slots), nil
}
