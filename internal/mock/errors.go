package mock

import "errors"

// ErrNotFound is returned by Host.ReadFile when ReadFileFn is unset.
var ErrNotFound = errors.New("file not found")
