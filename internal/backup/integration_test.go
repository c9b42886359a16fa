package backup_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/mealframe/internal/backup"
	"github.com/julianstephens/mealframe/internal/models"
	"github.com/julianstephens/mealframe/internal/storage/sqlite"
	"github.com/julianstephens/mealframe/internal/utils"
)

// TestBackupRestoreWorkflow snapshots a migrated store, changes it, and restores.
func TestBackupRestoreWorkflow(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "mealframe.db")
	date, err := utils.ParseDate("2026-10-18")
	if err != nil {
		t.Fatal(err)
	}

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.AddMealType(models.MealType{ID: "mt-1", Name: "Breakfast"}); err != nil {
		t.Fatal(err)
	}
	day := models.TrackedDay{Date: date, Slots: []models.TrackedSlot{
		{MealTypeID: "mt-1", Status: models.StatusFollowed},
	}}
	if err := store.SaveTrackedDay(day); err != nil {
		t.Fatal(err)
	}
	store.Close()

	ctx := context.Background()
	start := time.Date(2026, 10, 19, 6, 0, 0, 0, time.Local)
	clock := start
	mgr := backup.NewManager(dbPath, backup.WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}))

	snapshot, err := mgr.CreateBackup(ctx)
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	store = sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := store.SetSlotStatus(date, 1, models.StatusSkipped); err != nil {
		t.Fatalf("SetSlotStatus failed: %v", err)
	}
	store.Close()

	if _, err := mgr.RestoreBackup(ctx, snapshot); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	store = sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("Load after restore failed: %v", err)
	}
	defer store.Close()

	got, err := store.GetTrackedDay(date)
	if err != nil {
		t.Fatalf("GetTrackedDay failed: %v", err)
	}
	if len(got.Slots) != 1 || got.Slots[0].Status != models.StatusFollowed {
		t.Errorf("restored day = %+v, want one followed slot", got)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	// The original snapshot plus the pre-restore one.
	if len(backups) != 2 {
		t.Errorf("expected 2 backups after restore, got %d", len(backups))
	}
}
