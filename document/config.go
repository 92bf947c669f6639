package document

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Config holds document store initialization parameters.
type Config struct {
	// Backend names a registered store backend: "memory", "file" or
	// "sqlite" unless more are registered.
	Backend string `json:"backend,omitempty" yaml:"backend,omitempty"`
	// Path is the directory of the file backend or the database file of the
	// sqlite backend.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// DefaultConfig returns the default store configuration (in memory).
func DefaultConfig() Config {
	return Config{Backend: "memory"}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Backend != "" {
		c.Backend = source.Backend
	}
	if source.Path != "" {
		c.Path = source.Path
	}
}

// Backend builds a Store from configuration.
type Backend func(cfg *Config) (Store, error)

var (
	backends = map[string]Backend{
		"memory": func(*Config) (Store, error) { return NewMemoryStore(), nil },
		"file":   newFileBackend,
		"sqlite": newSQLiteBackend,
	}
	mutex sync.RWMutex
)

func newFileBackend(cfg *Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("file store: path is required")
	}
	return NewFileStore(cfg.Path), nil
}

func newSQLiteBackend(cfg *Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite store: path is required")
	}
	return NewSQLiteStore(cfg.Path)
}

// RegisterBackend adds a named backend to the registry, replacing any
// backend registered under the same name.
func RegisterBackend(name string, b Backend) {
	mutex.Lock()
	defer mutex.Unlock()
	backends[name] = b
}

// Backends returns the registered backend names in ascending order.
func Backends() []string {
	mutex.RLock()
	defer mutex.RUnlock()
	return slices.Sorted(maps.Keys(backends))
}

// NewStore creates the Store selected by cfg.Backend.
func NewStore(cfg *Config) (Store, error) {
	mutex.RLock()
	b, ok := backends[cfg.Backend]
	mutex.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Backend)
	}
	return b(cfg)
}
