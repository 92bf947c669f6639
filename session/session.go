// Package session hosts a single editable document: it owns the current
// editor snapshot, serializes writers against it and keeps undo history.
package session

import (
	"context"

	"github.com/tailored-agentic-units/layers/editor"
)

// Session holds the current snapshot of one document. Implementations must
// be safe for concurrent use.
type Session interface {
	// ID returns the unique session identifier.
	ID() string
	// Current returns the latest snapshot.
	Current() *editor.Snapshot
	// Apply runs reqs in order against the current snapshot. Either every
	// request succeeds and the result becomes current, or the first failure
	// is returned and the current snapshot is left untouched.
	Apply(ctx context.Context, reqs ...editor.Request) (*editor.Snapshot, error)
	// Undo steps back to the previous snapshot. It reports false when there
	// is nothing to undo.
	Undo() bool
	// Redo re-applies the last undone snapshot. It reports false when there
	// is nothing to redo.
	Redo() bool
	CanUndo() bool
	CanRedo() bool
	// Reset replaces the current snapshot and discards history.
	Reset(s *editor.Snapshot)
}
