package editor

import (
	"errors"
	"fmt"

	"github.com/tailored-agentic-units/layers/layer"
)

var (
	// ErrInvariantViolation matches a *TransitionError whose cause is a
	// forest reference error: the caller passed a stale or foreign ID, or a
	// replacement that would corrupt the forest. Nil requests and invalid
	// snapshots do not match it.
	ErrInvariantViolation = errors.New("invariant violation")

	ErrInvalidSnapshot = errors.New("invalid snapshot")
	ErrUnknownRequest  = errors.New("unknown request")
	ErrUnknownCleanup  = errors.New("unknown cleanup mode")
)

// TransitionError reports a rejected request. The snapshot the request was
// applied to is unaffected and remains the current state.
type TransitionError struct {
	Request RequestKind
	Err     error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s rejected: %v", e.Request, e.Err)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}

var referenceErrors = []error{
	layer.ErrNodeNotFound,
	layer.ErrDuplicateID,
	layer.ErrKindMismatch,
	layer.ErrInvalidForest,
}

func (e *TransitionError) Is(target error) bool {
	if target != ErrInvariantViolation {
		return false
	}
	for _, ref := range referenceErrors {
		if errors.Is(e.Err, ref) {
			return true
		}
	}
	return false
}
