package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/mealframe/internal/models"
	"github.com/julianstephens/mealframe/internal/storage"
)

const mealTypeColumns = "id::text, name, description, created_at"

func (s *Store) AddMealType(mt models.MealType) error {
	if mt.ID == "" || strings.TrimSpace(mt.Name) == "" {
		return fmt.Errorf("meal type requires an id and a name")
	}
	if mt.CreatedAt.IsZero() {
		mt.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		"INSERT INTO meal_types (id, name, description, created_at) VALUES ($1, $2, $3, $4)",
		mt.ID, mt.Name, mt.Description, mt.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("meal type %q: %w", mt.Name, storage.ErrAlreadyExists)
	}
	return err
}

func (s *Store) GetMealType(id string) (models.MealType, error) {
	return scanMealType(s.db.QueryRow("SELECT "+mealTypeColumns+" FROM meal_types WHERE id::text = $1", id))
}

func (s *Store) GetMealTypeByName(name string) (models.MealType, error) {
	return scanMealType(s.db.QueryRow("SELECT "+mealTypeColumns+" FROM meal_types WHERE lower(name) = lower($1)", name))
}

func (s *Store) GetAllMealTypes() ([]models.MealType, error) {
	rows, err := s.db.Query("SELECT " + mealTypeColumns + " FROM meal_types ORDER BY name, id")
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
	if err := row.Scan(&mt.ID, &mt.Name, &mt.Description, &mt.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.MealType{}, storage.ErrNotFound
		}
		return models.MealType{}, err
	}
	return mt, nil
}
