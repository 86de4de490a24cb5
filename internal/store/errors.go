package store

import "errors"

// ErrNotFound is returned when a session has no record under the requested name
var ErrNotFound = errors.New("record not found")
