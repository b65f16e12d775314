package scanner

import "errors"

var (
	// ErrNotFound is returned when the requested directory or file does not exist.
	ErrNotFound = errors.New("not found")
	// ErrOutsideRoot is returned for paths escaping the gallery root.
	ErrOutsideRoot = errors.New("path outside gallery root")
)
