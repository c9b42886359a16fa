package tracking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/mealframe/internal/cli"
	"github.com/julianstephens/mealframe/internal/models"
	"github.com/julianstephens/mealframe/internal/storage"
)

type MealTypeAddCmd struct {
	Name        string `arg:"" help:"Meal type name, e.g. 'Pre-Workout Snack'."`
	Description string `short:"d" help:"Optional description."`
}

func (c *MealTypeAddCmd) Run(ctx *cli.Context) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("meal type name cannot be empty")
	}

	mt := models.MealType{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(c.Description),
	}
	if err := ctx.Store.AddMealType(mt); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return fmt.Errorf("a meal type named %q already exists", name)
		}
		return fmt.Errorf("failed to add meal type: %w", err)
	}

	ctx.Printf("Added meal type: %s\n", mt.Name)
	return nil
}

type MealTypeListCmd struct{}

func (c *MealTypeListCmd) Run(ctx *cli.Context) error {
	mealTypes, err := ctx.Store.GetAllMealTypes()
	if err != nil {
		return fmt.Errorf("failed to list meal types: %w", err)
	}
	if len(mealTypes) == 0 {
		ctx.Println("No meal types defined. Add one with 'mealframe mealtype add <name>'.")
		return nil
	}

	for _, mt := range mealTypes {
		if mt.Description != "" {
			ctx.Printf("- %s: %s\n", mt.Name, mt.Description)
		} else {
			ctx.Printf("- %s\n", mt.Name)
		}
	}
	return nil
}
