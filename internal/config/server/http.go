package server

type HTTPServerConfig struct {
	Address         string  `mapstructure:"address"          yaml:"address"`
	Port            int     `mapstructure:"port"             yaml:"port"`
	ReadTimeout     string  `mapstructure:"read_timeout"     yaml:"read_timeout"`
	WriteTimeout    string  `mapstructure:"write_timeout"    yaml:"write_timeout"`
	IdleTimeout     string  `mapstructure:"idle_timeout"     yaml:"idle_timeout"`
	RateLimit       float64 `mapstructure:"rate_limit"       yaml:"rate_limit"`
	RateLimitBurst  int     `mapstructure:"rate_limit_burst" yaml:"rate_limit_burst"`
	MaxRequestBytes int64   `mapstructure:"max_request_bytes" yaml:"max_request_bytes"`
}

// PaginationServerConfig bounds the list endpoints
type PaginationServerConfig struct {
	DefaultLimit int `mapstructure:"default_limit" yaml:"default_limit"`
	MaxLimit     int `mapstructure:"max_limit"     yaml:"max_limit"`
	MaxPage      int `mapstructure:"max_page"      yaml:"max_page"`
}
