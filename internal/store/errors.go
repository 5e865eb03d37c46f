package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by updates and deletes of a nonexistent id.
// Read paths return nil or an empty collection instead.
var ErrNotFound = errors.New("not found")

// StorageError wraps a backend-level failure (connectivity, constraint
// violation). The cause is opaque to callers and is never retried by the
// core; retry policy belongs to the concrete adapter or its caller.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsStorage reports whether err is (or wraps) a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
