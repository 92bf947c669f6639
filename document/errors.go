package document

import "errors"

// Sentinel errors for codec and store operations.
var (
	ErrVersion        = errors.New("unsupported document version")
	ErrInvalidRequest = errors.New("invalid request")
	ErrInvalidName    = errors.New("invalid document name")
	ErrNotFound       = errors.New("document not found")
	ErrLoadFailed     = errors.New("load failed")
	ErrSaveFailed     = errors.New("save failed")
	ErrDeleteFailed   = errors.New("delete failed")
	ErrUnknownBackend = errors.New("unknown store backend")
)
