package prune

import "time"

// Config controls the chat message pruner loop.
type Config struct {
	MaxAge       time.Duration
	PollInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxAge:       12 * time.Hour,
		PollInterval: 10 * time.Minute,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.MaxAge <= 0 {
		c.MaxAge = defaults.MaxAge
	}
	if c.PollInterval <= 0 {
		c.PollInterval = defaults.PollInterval
	}
	return c
}
