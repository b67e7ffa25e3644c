package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Queue      QueueConfig      `yaml:"queue"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	AllowedMethods string `yaml:"allowed_methods" env:"CORS_ALLOWED_METHODS" env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders string `yaml:"allowed_headers" env:"CORS_ALLOWED_HEADERS" env-default:"Content-Type,X-Request-Id"`
	MaxAge         int    `yaml:"max_age"         env:"CORS_MAX_AGE"         env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"5000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path         string        `yaml:"path"           env:"DATABASE_PATH"           env-default:"data/words.db"`
	BusyTimeout  time.Duration `yaml:"busy_timeout"   env:"DATABASE_BUSY_TIMEOUT"   env-default:"5s"`
	MaxOpenConns int           `yaml:"max_open_conns" env:"DATABASE_MAX_OPEN_CONNS" env-default:"4"`
}

// Dictionary providers.
const (
	ProviderFreeDict = "freedict"
	ProviderOxford   = "oxford"
)

// DictionaryConfig holds external dictionary lookup settings.
type DictionaryConfig struct {
	Provider   string        `yaml:"provider"    env:"DICT_PROVIDER"    env-default:"freedict"`
	BaseURL    string        `yaml:"base_url"    env:"DICT_BASE_URL"`
	Lang       string        `yaml:"lang"        env:"DICT_LANG"`
	AppID      string        `yaml:"app_id"      env:"DICT_APP_ID"`
	AppKey     string        `yaml:"app_key"     env:"DICT_APP_KEY"`
	Timeout    time.Duration `yaml:"timeout"     env:"DICT_TIMEOUT"     env-default:"10s"`
	RetryCount int           `yaml:"retry_count" env:"DICT_RETRY_COUNT" env-default:"1"`
}

// QueueConfig controls the asynchronous lookup queue.
type QueueConfig struct {
	Enabled   bool          `yaml:"enabled"    env:"QUEUE_ENABLED"    env-default:"false"`
	Interval  time.Duration `yaml:"interval"   env:"QUEUE_INTERVAL"   env-default:"60s"`
	BatchSize int           `yaml:"batch_size" env:"QUEUE_BATCH_SIZE" env-default:"1"`
	Retention time.Duration `yaml:"retention"  env:"QUEUE_RETENTION"  env-default:"720h"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig limits record submissions per client IP.
type RateLimitConfig struct {
	RecordPerMinute int `yaml:"record_per_minute" env:"RATE_LIMIT_RECORD_PER_MINUTE" env-default:"30"`
	Burst           int `yaml:"burst"             env:"RATE_LIMIT_BURST"             env-default:"5"`
}

// ResolvedBaseURL returns the configured base URL or the provider's public endpoint.
func (c DictionaryConfig) ResolvedBaseURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	switch c.Provider {
	case ProviderOxford:
		return "https://od-api.oxforddictionaries.com/api/v2"
	default:
		return "https://api.dictionaryapi.dev/api/v2/entries"
	}
}

// ResolvedLang returns the configured language or the provider's default:
// "en" for FreeDictionary, "en-us" for Oxford, which wants a regional code.
func (c DictionaryConfig) ResolvedLang() string {
	if c.Lang != "" {
		return c.Lang
	}
	if c.Provider == ProviderOxford {
		return "en-us"
	}
	return "en"
}
