package dashboard

import (
	"fmt"
	"time"
)

// Config holds dashboard refresh configuration.
type Config struct {
	Timezone       string        `mapstructure:"timezone"`
	WorkerInterval time.Duration `mapstructure:"worker_interval"`
	Jitter         time.Duration `mapstructure:"jitter"`
	InitialDelay   time.Duration `mapstructure:"initial_delay"`
	IdleAfter      time.Duration `mapstructure:"idle_after"` // negative never skips
	FetchTimeout   time.Duration `mapstructure:"fetch_timeout"`
	FYStartMonth   int           `mapstructure:"fy_start_month"`
}

// DefaultConfig returns default configuration values.
func DefaultConfig() Config {
	return Config{
		Timezone:       "Australia/Perth",
		WorkerInterval: 10 * time.Minute,
		Jitter:         15 * time.Second,
		InitialDelay:   30 * time.Second,
		IdleAfter:      30 * time.Minute,
		FetchTimeout:   time.Minute,
		FYStartMonth:   int(time.July),
	}
}

// withDefaults fills zero values from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Timezone == "" {
		c.Timezone = d.Timezone
	}
	if c.WorkerInterval <= 0 {
		c.WorkerInterval = d.WorkerInterval
	}
	switch {
	case c.Jitter == 0:
		c.Jitter = d.Jitter
	case c.Jitter < 0:
		c.Jitter = 0
	}
	if c.Jitter >= c.WorkerInterval {
		c.Jitter = c.WorkerInterval / 2
	}
	if c.InitialDelay <= 0 {
		c.InitialDelay = d.InitialDelay
	}
	if c.IdleAfter == 0 {
		c.IdleAfter = d.IdleAfter
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = d.FetchTimeout
	}
	if c.FYStartMonth < 1 || c.FYStartMonth > 12 {
		c.FYStartMonth = d.FYStartMonth
	}
	return c
}

func (c Config) location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("can't load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
