package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/mwantia/cookbook/pkg/db/migrations"
)

// Row is a single result row keyed by column name or alias
type Row map[string]any

// Executor runs parameterized SQL statements
type Executor interface {
	// Query executes a statement and returns all result rows in order
	Query(ctx context.Context, sql string, args ...any) ([]Row, error)

	// Exec executes a statement and returns the number of affected rows
	Exec(ctx context.Context, sql string, args ...any) (int64, error)

	// Placeholder returns the bind variable format understood by the driver
	Placeholder() sq.PlaceholderFormat
}

// Store defines the interface for database operations
type Store interface {
	Executor

	// Lifecycle
	Connect(ctx context.Context) error
	Close() error
	Migrate(ctx context.Context) error
	Health(ctx context.Context) error

	// Migrator exposes status and rollback of the versioned schema
	Migrator() (*migrations.Migrator, error)

	// WithTx runs fn inside a transaction that is committed when fn
	// returns nil and rolled back otherwise
	WithTx(ctx context.Context, fn func(tx Executor) error) error
}
