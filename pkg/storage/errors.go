package storage

import "errors"

// Common storage errors.
var (
	// ErrStorageUnavailable is returned when no workspace root can be resolved.
	ErrStorageUnavailable = errors.New("no storage location available")

	// ErrDuplicateName is returned when a name is already taken.
	ErrDuplicateName = errors.New("name already exists")

	// ErrNotFound is returned when a request or folder does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidName is returned for empty request or folder names.
	ErrInvalidName = errors.New("name is required")

	// ErrLockTimeout is returned when the collection file lock cannot be acquired in time.
	ErrLockTimeout = errors.New("timed out waiting for collection lock")
)
