package server

import "github.com/spf13/viper"

func GetServerDefault() BaseServerConfig {
	return BaseServerConfig{
		ShutdownTimeout: "10s",

		Log: LogServerConfig{
			Level:      "INFO",
			TimeFormat: "2006-01-02 15:04:05",
			File:       "",
			NoColor:    false,
			JSON:       false,
			NoTerminal: false,
			Requests:   true,
			Rotation: LogServerRotationConfig{
				MaxSize:    128,
				MaxBackups: 5,
				MaxAge:     16,
				Compress:   false,
			},
		},

		HTTP: HTTPServerConfig{
			Address:         "",
			Port:            8080,
			ReadTimeout:     "10s",
			WriteTimeout:    "30s",
			IdleTimeout:     "120s",
			RateLimit:       100,
			RateLimitBurst:  200,
			MaxRequestBytes: 1 << 20,
		},

		Database: DatabaseServerConfig{
			Type:        "postgres",
			AutoMigrate: false,
			Postgres: DatabasePostgresConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "postgres",
				Password: "",
				Name:     "cookbook",
				SSLMode:  "disable",
				MaxConns: 10,
			},
			SQLite: DatabaseSQLiteConfig{
				Path: "cookbook.db",
			},
		},

		Pagination: PaginationServerConfig{
			DefaultLimit: 5,
			MaxLimit:     100,
			MaxPage:      10_000_000,
		},
	}
}

func setDefaults() {
	defaults := GetServerDefault()

	viper.SetDefault("shutdown_timeout", defaults.ShutdownTimeout)

	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.time_format", defaults.Log.TimeFormat)
	viper.SetDefault("log.file", defaults.Log.File)
	viper.SetDefault("log.no_color", defaults.Log.NoColor)
	viper.SetDefault("log.json", defaults.Log.JSON)
	viper.SetDefault("log.no_terminal", defaults.Log.NoTerminal)
	viper.SetDefault("log.requests", defaults.Log.Requests)
	viper.SetDefault("log.rotation.max_size", defaults.Log.Rotation.MaxSize)
	viper.SetDefault("log.rotation.max_backups", defaults.Log.Rotation.MaxBackups)
	viper.SetDefault("log.rotation.max_age", defaults.Log.Rotation.MaxAge)
	viper.SetDefault("log.rotation.compress", defaults.Log.Rotation.Compress)

	viper.SetDefault("http.address", defaults.HTTP.Address)
	viper.SetDefault("http.port", defaults.HTTP.Port)
	viper.SetDefault("http.read_timeout", defaults.HTTP.ReadTimeout)
	viper.SetDefault("http.write_timeout", defaults.HTTP.WriteTimeout)
	viper.SetDefault("http.idle_timeout", defaults.HTTP.IdleTimeout)
	viper.SetDefault("http.rate_limit", defaults.HTTP.RateLimit)
	viper.SetDefault("http.rate_limit_burst", defaults.HTTP.RateLimitBurst)
	viper.SetDefault("http.max_request_bytes", defaults.HTTP.MaxRequestBytes)

	viper.SetDefault("database.type", defaults.Database.Type)
	viper.SetDefault("database.auto_migrate", defaults.Database.AutoMigrate)
	viper.SetDefault("database.postgres.host", defaults.Database.Postgres.Host)
	viper.SetDefault("database.postgres.port", defaults.Database.Postgres.Port)
	viper.SetDefault("database.postgres.user", defaults.Database.Postgres.User)
	viper.SetDefault("database.postgres.password", defaults.Database.Postgres.Password)
	viper.SetDefault("database.postgres.name", defaults.Database.Postgres.Name)
	viper.SetDefault("database.postgres.sslmode", defaults.Database.Postgres.SSLMode)
	viper.SetDefault("database.postgres.max_conns", defaults.Database.Postgres.MaxConns)
	viper.SetDefault("database.sqlite.path", defaults.Database.SQLite.Path)

	viper.SetDefault("pagination.default_limit", defaults.Pagination.DefaultLimit)
	viper.SetDefault("pagination.max_limit", defaults.Pagination.MaxLimit)
	viper.SetDefault("pagination.max_page", defaults.Pagination.MaxPage)
}
