package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`

	// Room coordination knobs.
	RoomCapacity  int           `mapstructure:"room_capacity" yaml:"room_capacity"`
	BreakDuration time.Duration `mapstructure:"break_duration" yaml:"break_duration"`
	EventBuffer   int           `mapstructure:"event_buffer" yaml:"event_buffer"`

	// WSControlLimit caps non-audio websocket messages per connection per
	// minute. Zero disables the limiter.
	WSControlLimit int `mapstructure:"ws_control_limit" yaml:"ws_control_limit"`

	// TokenSecret signs guest session tokens. A random per-process secret
	// is generated when empty.
	TokenSecret string        `mapstructure:"token_secret" yaml:"token_secret"`
	TokenTTL    time.Duration `mapstructure:"token_ttl" yaml:"token_ttl"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		RoomCapacity:      7,
		BreakDuration:     60 * time.Second,
		EventBuffer:       32,
		WSControlLimit:    120,
		TokenTTL:          24 * time.Hour,
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
// Used for command-line flag overrides.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
}
