package system

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/mealframe/internal/models"
	"github.com/julianstephens/mealframe/internal/storage/sqlite"
	"github.com/julianstephens/mealframe/internal/utils"
)

func TestInitCmd_Success(t *testing.T) {
	ctx, out, dbPath := newTestContext(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init command failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}
	if !strings.Contains(out.String(), "Initialized mealframe storage at: "+dbPath) {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	cmd := &InitCmd{}

	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if err := ctx.Store.AddMealType(models.MealType{ID: "mt-1", Name: "Lunch"}); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("second init failed: %v", err)
	}

	mealTypes, err := ctx.Store.GetAllMealTypes()
	if err != nil {
		t.Fatal(err)
	}
	if len(mealTypes) != 1 {
		t.Errorf("re-init should keep data, got %d meal types", len(mealTypes))
	}
}

func TestInitCmd_Force(t *testing.T) {
	ctx, out, _ := newInitializedContext(t)
	if err := ctx.Store.AddMealType(models.MealType{ID: "mt-1", Name: "Lunch"}); err != nil {
		t.Fatal(err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}
	if !strings.Contains(out.String(), "Deleted existing database") {
		t.Errorf("expected deletion notice, got %q", out.String())
	}

	mealTypes, err := ctx.Store.GetAllMealTypes()
	if err != nil {
		t.Fatal(err)
	}
	if len(mealTypes) != 0 {
		t.Errorf("expected empty database after --force, got %d meal types", len(mealTypes))
	}
}

func TestInitCmd_ForceRejectsSameSource(t *testing.T) {
	ctx, _, dbPath := newInitializedContext(t)

	err := (&InitCmd{Force: true, Source: dbPath}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "same") {
		t.Errorf("expected same-source error, got %v", err)
	}
}

func TestInitCmd_CopiesFromSource(t *testing.T) {
	sourcePath := filepath.Join(t.TempDir(), "source.db")
	source := sqlite.NewStore(sourcePath)
	if err := source.Init(); err != nil {
		t.Fatal(err)
	}
	if err := source.AddMealType(models.MealType{ID: "mt-1", Name: "Breakfast"}); err != nil {
		t.Fatal(err)
	}
	day := models.TrackedDay{Date: utils.DateOf(testNow), IsOverride: true, Slots: []models.TrackedSlot{
		{MealTypeID: "mt-1", Status: models.StatusAdjusted},
	}}
	if err := source.SaveTrackedDay(day); err != nil {
		t.Fatal(err)
	}
	settings := models.DefaultSettings()
	settings.Timezone = "Europe/Berlin"
	if err := source.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}
	source.Close()

	ctx, out, _ := newTestContext(t)
	if err := (&InitCmd{Source: sourcePath}).Run(ctx); err != nil {
		t.Fatalf("init --source failed: %v", err)
	}
	if !strings.Contains(out.String(), "Copied 1 days (1 slots)") {
		t.Errorf("unexpected output: %q", out.String())
	}

	days, err := ctx.Store.GetAllTrackedDays()
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 1 || !days[0].IsOverride || days[0].Slots[0].Status != models.StatusAdjusted {
		t.Errorf("copied days = %+v", days)
	}
	got, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	if got.Timezone != "Europe/Berlin" {
		t.Errorf("timezone = %q, want Europe/Berlin", got.Timezone)
	}
}
