package workspace

import "errors"

// ErrNoDocument is returned by operations that need an open document when
// none has been opened.
var ErrNoDocument = errors.New("no document open")
