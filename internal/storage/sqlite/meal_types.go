package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/mealframe/internal/models"
	"github.com/julianstephens/mealframe/internal/storage"
)

func (s *Store) AddMealType(mt models.MealType) error {
	if mt.ID == "" || strings.TrimSpace(mt.Name) == "" {
		return fmt.Errorf("meal type requires an id and a name")
	}
	if mt.CreatedAt.IsZero() {
		mt.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		"INSERT INTO meal_types (id, name, description, created_at) VALUES (?, ?, ?, ?)",
		mt.ID, mt.Name, mt.Description, mt.CreatedAt.Format(time.RFC3339))
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("meal type %q: %w", mt.Name, storage.ErrAlreadyExists)
	}
	return err
}

func (s *Store) GetMealType(id string) (models.MealType, error) {
	row := s.db.QueryRow("SELECT id, name, description, created_at FROM meal_types WHERE id = ?", id)
	return scanMealType(row)
}

func (s *Store) GetMealTypeByName(name string) (models.MealType, error) {
	row := s.db.QueryRow(
		"SELECT id, name, description, created_at FROM meal_types WHERE name = ? COLLATE NOCASE", name)
	return scanMealType(row)
}

func (s *Store) GetAllMealTypes() ([]models.MealType, error) {
	rows, err := s.db.Query("SELECT id, name, description, created_at FROM meal_types ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mealTypes := []models.MealType{}
	for rows.Next() {
		mt, err := scanMealType(rows)
		if err != nil {
			return nil, err
		}
		mealTypes = append(mealTypes, mt)
	}
	return mealTypes, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMealType(row scanner) (models.MealType, error) {
	var mt models.MealType
	var createdAt string
	if err := row.Scan(&mt.ID, &mt.Name, &mt.Description, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.MealType{}, storage.ErrNotFound
		}
		return models.MealType{}, err
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.MealType{}, fmt.Errorf("failed to parse created_at for meal type %s: %w", mt.ID, err)
	}
	mt.CreatedAt = t
	return mt, nil
}
