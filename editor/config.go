package editor

import "fmt"

// Cleanup selects which IDs are purged from the collapse and visibility
// sets when nodes leave the forest.
type Cleanup string

const (
	// CleanupSubtree purges the removed node and all of its descendants.
	CleanupSubtree Cleanup = "subtree"
	// CleanupDirect purges only the ID that was deleted. Descendant IDs of a
	// deleted group stay behind in the collapse and visibility sets.
	CleanupDirect Cleanup = "direct"
)

// Config holds reducer initialization parameters.
type Config struct {
	Cleanup Cleanup `json:"cleanup,omitempty" yaml:"cleanup,omitempty"`
}

// DefaultConfig returns the default reducer configuration.
func DefaultConfig() Config {
	return Config{Cleanup: CleanupSubtree}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Cleanup != "" {
		c.Cleanup = source.Cleanup
	}
}

// New creates a Reducer from configuration. Options are applied after the
// configuration and take precedence over it.
func New(cfg *Config, opts ...Option) (*Reducer, error) {
	cleanup := cfg.Cleanup
	switch cleanup {
	case CleanupSubtree, CleanupDirect:
	case "":
		cleanup = CleanupSubtree
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCleanup, cleanup)
	}

	return NewReducer(append([]Option{WithCleanup(cleanup)}, opts...)...), nil
}
