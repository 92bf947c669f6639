package session

import "fmt"

// Config holds session initialization parameters.
type Config struct {
	// HistoryLimit bounds the number of undo steps kept. Zero keeps every
	// step.
	HistoryLimit int `json:"history_limit,omitempty" yaml:"history_limit,omitempty"`
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{HistoryLimit: 100}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.HistoryLimit > 0 {
		c.HistoryLimit = source.HistoryLimit
	}
}

// New creates a Session from configuration. Currently returns an in-memory
// session.
func New(cfg *Config, opts ...Option) (Session, error) {
	if cfg.HistoryLimit < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHistoryLimit, cfg.HistoryLimit)
	}
	return NewMemorySession(append([]Option{WithHistoryLimit(cfg.HistoryLimit)}, opts...)...), nil
}
