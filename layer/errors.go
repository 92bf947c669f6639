package layer

import "errors"

// Sentinel errors for tree queries and edits. Callers test with errors.Is;
// returned errors wrap these with the offending ID.
var (
	ErrNodeNotFound  = errors.New("node not found")
	ErrRemoveRoot    = errors.New("node is the root itself")
	ErrDuplicateID   = errors.New("duplicate node id")
	ErrKindMismatch  = errors.New("node kind mismatch")
	ErrInvalidForest = errors.New("invalid forest")
)
