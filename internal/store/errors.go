package store

import "errors"

// ErrNotFound is returned when a record does not exist. For expenses it
// also covers rows owned by a different user, so callers cannot tell the
// two cases apart.
var ErrNotFound = errors.New("not found")
