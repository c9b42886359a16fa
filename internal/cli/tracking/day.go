package tracking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/mealframe/internal/cli"
	"github.com/julianstephens/mealframe/internal/models"
	"github.com/julianstephens/mealframe/internal/storage"
	"github.com/julianstephens/mealframe/internal/utils"
)

type DayAddCmd struct {
	Date     string   `arg:"" help:"Day to plan (YYYY-MM-DD, 'today' or 'yesterday')."`
	Slot     []string `short:"s" help:"Meal type name for the next slot; repeat in eating order." required:""`
	Override bool     `help:"Mark the day as a one-off override of the normal template."`
	Replace  bool     `help:"Replace the slots of a day that is already tracked."`
}

func (c *DayAddCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDay(c.Date)
	if err != nil {
		return err
	}

	existing, err := ctx.Store.GetTrackedDay(date)
	switch {
	case err == nil:
		if !c.Replace {
			return fmt.Errorf("%s already has %d slots; use --replace to overwrite it", utils.FormatDate(date), len(existing.Slots))
		}
	case !errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("failed to read day: %w", err)
	}

	day := models.TrackedDay{Date: date, IsOverride: c.Override}
	for i, name := range c.Slot {
		mt, err := ctx.Store.GetMealTypeByName(strings.TrimSpace(name))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("unknown meal type %q (see 'mealframe mealtype list')", name)
			}
			return fmt.Errorf("failed to look up meal type %q: %w", name, err)
		}
		day.Slots = append(day.Slots, models.TrackedSlot{
			Date:         date,
			Position:     i + 1,
			MealTypeID:   mt.ID,
			MealTypeName: mt.Name,
			Status:       models.StatusUnmarked,
		})
	}

	if err := ctx.Store.SaveTrackedDay(day); err != nil {
		return fmt.Errorf("failed to save day: %w", err)
	}

	ctx.Printf("Tracked %s with %d slots.\n", utils.FormatDate(date), len(day.Slots))
	return nil
}

type DayShowCmd struct {
	Date string `arg:"" optional:"" default:"today" help:"Day to show (YYYY-MM-DD, 'today' or 'yesterday')."`
}

func (c *DayShowCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDay(c.Date)
	if err != nil {
		return err
	}

	day, err := ctx.Store.GetTrackedDay(date)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			ctx.Printf("%s is not tracked.\n", utils.FormatDate(date))
			return nil
		}
		return fmt.Errorf("failed to read day: %w", err)
	}

	header := utils.FormatDate(day.Date)
	if day.IsOverride {
		header += " (override)"
	}
	ctx.Println(header)
	if len(day.Slots) == 0 {
		ctx.Println("  no slots")
		return nil
	}
	for _, slot := range day.Slots {
		name := slot.MealTypeName
		if name == "" {
			name = slot.MealTypeID
		}
		ctx.Printf("  %d. %-24s %s\n", slot.Position, name, slot.Status.Normalize())
	}
	return nil
}
