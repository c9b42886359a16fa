package system

import (
	"strings"
	"testing"
)

func TestMigrateCmd_UpToDate(t *testing.T) {
	ctx, out, _ := newInitializedContext(t)

	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out.String(), "Database is up to date") {
		t.Errorf("unexpected output: %q", out.String())
	}

	mgr, err := ctx.BackupManager()
	if err != nil {
		t.Fatal(err)
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 0 {
		t.Errorf("no backup expected when nothing is applied, got %d", len(backups))
	}
}

func TestMigrateCmd_NotInitialized(t *testing.T) {
	ctx, _, _ := newTestContext(t)

	if err := (&MigrateCmd{}).Run(ctx); err == nil {
		t.Error("expected migrate to fail before init")
	}
}
