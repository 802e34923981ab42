package dataset

import "errors"

var (
	// ErrDirectoryNotFound reports a split directory required by the subset
	// selector that is missing under a root.
	ErrDirectoryNotFound = errors.New("directory not found")
	// ErrIndexOutOfRange reports a Get outside [0, Len()).
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNoRoots reports an Open call without any dataset root.
	ErrNoRoots = errors.New("at least one dataset root is required")
)
