package interfaces

import "errors"

// ErrNotFound is returned by repositories when a lookup misses. Services
// translate it into their own not-found error kinds.
var ErrNotFound = errors.New("not found")
