package store

import (
	"fmt"

	config "github.com/mwantia/cookbook/internal/config/server"
)

var (
	_ Store = (*PostgresStore)(nil)
	_ Store = (*SQLiteStore)(nil)
)

// Open creates the store selected by the database configuration without
// connecting it
func Open(cfg config.DatabaseServerConfig) (Store, error) {
	switch cfg.Type {
	case "postgres":
		return NewPostgresStore(PostgresConfig{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			Name:     cfg.Postgres.Name,
			SSLMode:  cfg.Postgres.SSLMode,
			MaxConns: cfg.Postgres.MaxConns,
		})
	case "sqlite":
		return NewSQLiteStore(SQLiteConfig{
			Path: cfg.SQLite.Path,
		})
	default:
		return nil, fmt.Errorf("unsupported database type '%s'", cfg.Type)
	}
}
