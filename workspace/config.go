package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailored-agentic-units/layers/document"
	"github.com/tailored-agentic-units/layers/editor"
	"github.com/tailored-agentic-units/layers/session"
	"gopkg.in/yaml.v3"
)

// Config holds initialization parameters for all workspace subsystems.
// Each subsystem section delegates to that subsystem's config-driven
// constructor.
type Config struct {
	Editor   editor.Config   `json:"editor" yaml:"editor"`
	Session  session.Config  `json:"session" yaml:"session"`
	Document document.Config `json:"document" yaml:"document"`
	// Observer names a registered observer; see observability.GetObserver.
	Observer string `json:"observer,omitempty" yaml:"observer,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults for all subsystems.
func DefaultConfig() Config {
	return Config{
		Editor:   editor.DefaultConfig(),
		Session:  session.DefaultConfig(),
		Document: document.DefaultConfig(),
		Observer: "slog",
	}
}

// Merge applies non-zero values from source into c, delegating to each
// subsystem's Merge method.
func (c *Config) Merge(source *Config) {
	c.Editor.Merge(&source.Editor)
	c.Session.Merge(&source.Session)
	c.Document.Merge(&source.Document)

	if source.Observer != "" {
		c.Observer = source.Observer
	}
}

// LoadConfig reads a config file, merges it with defaults, and returns the
// resulting Config. Files ending in .yaml or .yml are parsed as YAML, every
// other file as JSON.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &loaded)
	default:
		err = json.Unmarshal(data, &loaded)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
