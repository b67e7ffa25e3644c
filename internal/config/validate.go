package config

import (
	"fmt"
	"slices"
	"strings"
)

// oxfordLangs are the source languages served by the Oxford entries endpoint.
var oxfordLangs = []string{"en-gb", "en-us", "es", "fr", "gu", "hi", "lv", "ro", "sw", "ta"}

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("database.max_open_conns must be >= 1 (got %d)", c.Database.MaxOpenConns)
	}

	if err := c.Dictionary.validate(); err != nil {
		return fmt.Errorf("dictionary: %w", err)
	}

	if c.Queue.Enabled {
		if c.Queue.Interval <= 0 {
			return fmt.Errorf("queue.interval must be > 0 (got %v)", c.Queue.Interval)
		}
		if c.Queue.BatchSize < 1 {
			return fmt.Errorf("queue.batch_size must be >= 1 (got %d)", c.Queue.BatchSize)
		}
	}

	if c.RateLimit.RecordPerMinute < 0 {
		return fmt.Errorf("rate_limit.record_per_minute must be >= 0 (got %d)", c.RateLimit.RecordPerMinute)
	}

	return nil
}

func (d *DictionaryConfig) validate() error {
	switch d.Provider {
	case ProviderFreeDict:
	case ProviderOxford:
		if d.AppID == "" || d.AppKey == "" {
			return fmt.Errorf("oxford provider requires app_id and app_key")
		}
		if lang := d.ResolvedLang(); !slices.Contains(oxfordLangs, lang) {
			return fmt.Errorf("oxford does not support lang %q (want one of %s)", lang, strings.Join(oxfordLangs, ", "))
		}
	default:
		return fmt.Errorf("unknown provider %q (want %s or %s)", d.Provider, ProviderFreeDict, ProviderOxford)
	}
	if d.RetryCount < 0 {
		return fmt.Errorf("retry_count must be >= 0 (got %d)", d.RetryCount)
	}
	return nil
}
