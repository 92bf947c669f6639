package document

import (
	"context"
	"fmt"
	"strings"

	"github.com/tailored-agentic-units/layers/editor"
)

// Store persists snapshots under document names. Implementations must be
// safe for concurrent use, and Load, Save and Delete reject names that fail
// ValidateName with ErrInvalidName.
type Store interface {
	// List returns the stored document names in ascending order.
	List(ctx context.Context) ([]string, error)
	// Load returns the snapshot saved under name, or an error matching
	// ErrNotFound.
	Load(ctx context.Context, name string) (*editor.Snapshot, error)
	// Save stores s under name, replacing any previous version.
	Save(ctx context.Context, name string, s *editor.Snapshot) error
	// Delete removes name. Missing documents are ignored.
	Delete(ctx context.Context, name string) error
	// Close releases resources held by the store.
	Close() error
}

// ValidateName reports whether name can be used as a document name in every
// backend: non-empty, without path separators and not starting with a dot.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: %q starts with a dot", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}
