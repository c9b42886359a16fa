package tracking

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mealframe/internal/cli"
	"github.com/julianstephens/mealframe/internal/models"
	"github.com/julianstephens/mealframe/internal/storage"
	"github.com/julianstephens/mealframe/internal/utils"
)

// pickStatus asks for a status interactively when none is given.
var pickStatus = promptStatus

func promptStatus(slot models.TrackedSlot) (models.CompletionStatus, error) {
	status := slot.Status.Normalize()
	options := make([]huh.Option[models.CompletionStatus], 0, len(models.AllStatuses))
	for _, s := range models.AllStatuses {
		options = append(options, huh.NewOption(s.String(), s))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.CompletionStatus]().
				Title(fmt.Sprintf("%s, slot %d: %s", utils.FormatDate(slot.Date), slot.Position, slot.MealTypeName)).
				Options(options...).
				Value(&status),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return status, nil
}

type SlotMarkCmd struct {
	Date     string `arg:"" help:"Day of the slot (YYYY-MM-DD, 'today' or 'yesterday')."`
	Position int    `arg:"" help:"Slot position within the day, starting at 1."`
	Status   string `arg:"" optional:"" help:"followed, adjusted, skipped, replaced, social or unmarked. Prompts when omitted."`
}

func (c *SlotMarkCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDay(c.Date)
	if err != nil {
		return err
	}

	day, err := ctx.Store.GetTrackedDay(date)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s is not tracked", utils.FormatDate(date))
		}
		return fmt.Errorf("failed to read day: %w", err)
	}
	slot, ok := findSlot(day, c.Position)
	if !ok {
		return fmt.Errorf("%s has no slot at position %d", utils.FormatDate(date), c.Position)
	}

	var status models.CompletionStatus
	if c.Status == "" {
		if status, err = pickStatus(slot); err != nil {
			return err
		}
	} else if status, err = models.ParseCompletionStatus(c.Status); err != nil {
		return err
	}

	if err := ctx.Store.SetSlotStatus(date, c.Position, status); err != nil {
		return fmt.Errorf("failed to update slot: %w", err)
	}

	ctx.Printf("%s slot %d (%s): %s\n", utils.FormatDate(date), c.Position, slot.MealTypeName, status)
	return nil
}

func findSlot(day models.TrackedDay, position int) (models.TrackedSlot, bool) {
	for _, slot := range day.Slots {
		if slot.Position == position {
			return slot, true
		}
	}
	return models.TrackedSlot{}, false
}
