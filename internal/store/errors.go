package store

import "errors"

// ErrKeyNotFound is returned by a Backend when a key has no value.
var ErrKeyNotFound = errors.New("key not found")
