package stats_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/julianstephens/mealframe/internal/models"
	"github.com/julianstephens/mealframe/internal/stats"
	"github.com/julianstephens/mealframe/internal/storage/sqlite"
	"github.com/julianstephens/mealframe/internal/utils"
)

func TestReportFromSQLiteStore(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "mealframe.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	defer store.Close()

	breakfast := models.MealType{ID: "b", Name: "Breakfast"}
	lunch := models.MealType{ID: "l", Name: "Lunch"}
	for _, mt := range []models.MealType{breakfast, lunch} {
		if err := store.AddMealType(mt); err != nil {
			t.Fatalf("AddMealType() failed: %v", err)
		}
	}

	end, _ := utils.ParseDate("2026-10-19")
	save := func(offset int, override bool, statuses ...models.CompletionStatus) {
		day := models.TrackedDay{Date: utils.AddDays(end, -offset), IsOverride: override}
		for i, s := range statuses {
			mt := breakfast
			if i%2 == 1 {
				mt = lunch
			}
			day.Slots = append(day.Slots, models.TrackedSlot{MealTypeID: mt.ID, Status: s})
		}
		if err := store.SaveTrackedDay(day); err != nil {
			t.Fatalf("SaveTrackedDay() failed: %v", err)
		}
	}
	save(0, false, models.StatusFollowed, models.StatusSkipped)
	save(1, true, models.StatusAdjusted, models.StatusFollowed)
	save(2, false, models.StatusUnmarked, models.StatusSocial)
	save(10, false, models.StatusFollowed, models.StatusFollowed)

	svc := stats.NewService(store, nil)
	report, err := svc.ReportAt(context.Background(), end, 7)
	if err != nil {
		t.Fatalf("ReportAt() failed: %v", err)
	}

	if report.TotalSlots != 6 || report.CompletedSlots != 5 {
		t.Errorf("slots = %d/%d, want 6/5", report.TotalSlots, report.CompletedSlots)
	}
	// (followed 2 + adjusted 1) / (6 - social - unmarked)
	if got := report.AdherenceRate.String(); got != "0.750" {
		t.Errorf("AdherenceRate = %s, want 0.750", got)
	}
	if report.CurrentStreak != 2 || report.BestStreak != 2 {
		t.Errorf("streaks = %d/%d, want 2/2", report.CurrentStreak, report.BestStreak)
	}
	if report.OverrideDays != 1 {
		t.Errorf("OverrideDays = %d, want 1", report.OverrideDays)
	}
	if len(report.ByMealType) != 2 || report.ByMealType[0].Name != "Lunch" {
		t.Errorf("ByMealType = %+v, want Lunch (0.500) before Breakfast (1.000)", report.ByMealType)
	}
	if len(report.Daily) != 3 || report.Daily[0].Date != "2026-10-17" {
		t.Errorf("Daily = %+v", report.Daily)
	}

	if _, err := svc.ReportAt(context.Background(), end, 0); !stats.IsValidationError(err) {
		t.Errorf("ReportAt(days=0) error = %v, want validation error", err)
	}
}
