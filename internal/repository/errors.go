package repository

import "errors"

// ErrNotFound marks a lookup for an entity that does not exist. Wrapped with
// the entity name at each call site; check with errors.Is.
var ErrNotFound = errors.New("not found")
