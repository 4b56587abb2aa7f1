package store

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/mwantia/cookbook/pkg/db/migrations"
	"github.com/pkg/errors"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PostgresConfig holds PostgreSQL-specific configuration
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
}

// DSN renders the configuration as a postgres:// connection URL
func (c PostgresConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Name,
	}
	if c.User != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}
	if c.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{c.SSLMode}}.Encode()
	}
	return u.String()
}

// PostgresStore implements Store on top of a pgx connection pool
type PostgresStore struct {
	cfg  *pgxpool.Config
	pool *pgxpool.Pool
}

// NewPostgresStore validates the configuration; the pool is created by Connect
func NewPostgresStore(cfg PostgresConfig) (*PostgresStore, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("postgres host is required")
	}
	if cfg.Name == "" {
		return nil, fmt.Errorf("postgres database name is required")
	}

	pc, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}

	return &PostgresStore{cfg: pc}, nil
}

// Connect creates the connection pool and verifies connectivity
func (s *PostgresStore) Connect(ctx context.Context) error {
	pool, err := pgxpool.NewWithConfig(ctx, s.cfg)
	if err != nil {
		return fmt.Errorf("failed to create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to reach postgres: %w", err)
	}

	s.pool = pool
	return nil
}

// Close releases all pooled connections
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// Migrator returns a schema migrator that runs through gorm over the same pool
func (s *PostgresStore) Migrator() (*migrations.Migrator, error) {
	if s.pool == nil {
		return nil, fmt.Errorf("postgres store is not connected")
	}

	db, err := gorm.Open(gormpg.New(gormpg.Config{Conn: stdlib.OpenDBFromPool(s.pool)}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open migration session: %w", err)
	}
	return migrations.NewMigrator(db), nil
}

// Migrate applies all pending migrations
func (s *PostgresStore) Migrate(ctx context.Context) error {
	m, err := s.Migrator()
	if err != nil {
		return err
	}
	_, err = m.Migrate(ctx)
	return err
}

// Health checks database connectivity
func (s *PostgresStore) Health(ctx context.Context) error {
	if s.pool == nil {
		return fmt.Errorf("postgres store is not connected")
	}
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Query(ctx context.Context, sql string, args ...any) ([]Row, error) {
	if s.pool == nil {
		return nil, fmt.Errorf("postgres store is not connected")
	}
	return pgxQuery(ctx, s.pool, sql, args...)
}

func (s *PostgresStore) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	if s.pool == nil {
		return 0, fmt.Errorf("postgres store is not connected")
	}
	return pgxExec(ctx, s.pool, sql, args...)
}

func (s *PostgresStore) Placeholder() sq.PlaceholderFormat {
	return sq.Dollar
}

func (s *PostgresStore) WithTx(ctx context.Context, fn func(tx Executor) error) error {
	if s.pool == nil {
		return fmt.Errorf("postgres store is not connected")
	}
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(&pgxTxExecutor{tx: tx})
	})
}

// pgxQuerier is satisfied by both *pgxpool.Pool and pgx.Tx
type pgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type pgxTxExecutor struct {
	tx pgx.Tx
}

func (e *pgxTxExecutor) Query(ctx context.Context, sql string, args ...any) ([]Row, error) {
	return pgxQuery(ctx, e.tx, sql, args...)
}

func (e *pgxTxExecutor) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	return pgxExec(ctx, e.tx, sql, args...)
}

func (e *pgxTxExecutor) Placeholder() sq.PlaceholderFormat {
	return sq.Dollar
}

func pgxQuery(ctx context.Context, q pgxQuerier, sql string, args ...any) ([]Row, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "postgres query failed")
	}

	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, errors.Wrap(err, "postgres scan failed")
	}

	result := make([]Row, 0, len(maps))
	for _, m := range maps {
		result = append(result, Row(m))
	}
	return result, nil
}

func pgxExec(ctx context.Context, q pgxQuerier, sql string, args ...any) (int64, error) {
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, errors.Wrap(err, "postgres exec failed")
	}
	return tag.RowsAffected(), nil
}
