package system

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/mealframe/internal/cli"
	"github.com/julianstephens/mealframe/internal/storage/sqlite"
)

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

// newTestContext returns a context over an uninitialized SQLite store.
func newTestContext(t *testing.T) (*cli.Context, *bytes.Buffer, string) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "mealframe.db")
	store := sqlite.NewStore(dbPath)
	t.Cleanup(func() { store.Close() })

	var out bytes.Buffer
	ctx := &cli.Context{
		Store:     store,
		ConfigDir: dir,
		Out:       &out,
		Now:       func() time.Time { return testNow },
	}
	return ctx, &out, dbPath
}

func newInitializedContext(t *testing.T) (*cli.Context, *bytes.Buffer, string) {
	t.Helper()
	ctx, out, dbPath := newTestContext(t)
	if err := ctx.Store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	out.Reset()
	return ctx, out, dbPath
}
