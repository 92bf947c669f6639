package session

import "errors"

var ErrInvalidHistoryLimit = errors.New("history limit must not be negative")
