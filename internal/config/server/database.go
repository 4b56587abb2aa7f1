package server

// DatabaseServerConfig selects and configures the relational store
type DatabaseServerConfig struct {
	Type        string                 `mapstructure:"type"         yaml:"type"`
	AutoMigrate bool                   `mapstructure:"auto_migrate" yaml:"auto_migrate"`
	Postgres    DatabasePostgresConfig `mapstructure:"postgres"     yaml:"postgres"`
	SQLite      DatabaseSQLiteConfig   `mapstructure:"sqlite"       yaml:"sqlite"`
}

// DatabasePostgresConfig holds PostgreSQL-specific configuration
type DatabasePostgresConfig struct {
	Host     string `mapstructure:"host"      yaml:"host"`
	Port     int    `mapstructure:"port"      yaml:"port"`
	User     string `mapstructure:"user"      yaml:"user"`
	Password string `mapstructure:"password"  yaml:"password"`
	Name     string `mapstructure:"name"      yaml:"name"`
	SSLMode  string `mapstructure:"sslmode"   yaml:"sslmode"`
	MaxConns int32  `mapstructure:"max_conns" yaml:"max_conns"`
}

// DatabaseSQLiteConfig holds SQLite-specific configuration
type DatabaseSQLiteConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}
