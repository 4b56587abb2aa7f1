package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/glebarez/sqlite"
	"github.com/mwantia/cookbook/pkg/db/migrations"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteStore implements Store using an embedded SQLite database
type SQLiteStore struct {
	gormExecutor

	path string
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	Path     string
	LogLevel logger.LogLevel
}

// NewSQLiteStore creates a new SQLite-backed store
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	// Default to silent logging
	if cfg.LogLevel == 0 {
		cfg.LogLevel = logger.Silent
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(cfg.LogLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return &SQLiteStore{
		gormExecutor: gormExecutor{db: db},
		path:         cfg.Path,
	}, nil
}

// DB returns the underlying GORM database instance
func (s *SQLiteStore) DB() *gorm.DB {
	return s.db
}

// Connect initializes the database connection
func (s *SQLiteStore) Connect(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	// SQLite only supports 1 writer; a single connection also keeps
	// in-memory databases alive for the lifetime of the store
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// Migrator returns a schema migrator bound to this database
func (s *SQLiteStore) Migrator() (*migrations.Migrator, error) {
	return migrations.NewMigrator(s.db), nil
}

// Migrate applies all pending migrations
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := migrations.NewMigrator(s.db).Migrate(ctx)
	return err
}

// Health checks database connectivity
func (s *SQLiteStore) Health(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQLiteStore) WithTx(ctx context.Context, fn func(tx Executor) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormExecutor{db: tx})
	})
}

// gormExecutor runs raw statements through a gorm session, which is either
// the root connection or an open transaction
type gormExecutor struct {
	db *gorm.DB
}

func (g *gormExecutor) Query(ctx context.Context, sql string, args ...any) ([]Row, error) {
	rows, err := g.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, errors.Wrap(err, "sqlite query failed")
	}
	defer rows.Close()

	result, err := scanRows(rows)
	if err != nil {
		return nil, errors.Wrap(err, "sqlite scan failed")
	}
	return result, nil
}

func (g *gormExecutor) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	res := g.db.WithContext(ctx).Exec(sql, args...)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "sqlite exec failed")
	}
	return res.RowsAffected, nil
}

func (g *gormExecutor) Placeholder() sq.PlaceholderFormat {
	return sq.Question
}
