package storage

import (
	"context"

	"github.com/julianstephens/mealframe/internal/migration"
)

// Migrator is implemented by providers backed by a versioned SQL schema.
type Migrator interface {
	Migrate(ctx context.Context, logFn func(string)) (int, error)
	SchemaStatus(ctx context.Context) (migration.Status, error)
}
