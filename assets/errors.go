package assets

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the path does not exist in the asset file system.
	ErrNotFound = errors.New("resource not found")
	// ErrNotReady means the resource was read before a successful load.
	ErrNotReady = errors.New("resource not loaded")
	// ErrUnsupported means the path has an extension the loader cannot decode.
	ErrUnsupported = errors.New("unsupported resource type")
	// ErrMissingFrame means a sprite sheet did not cover a grid cell.
	ErrMissingFrame = errors.New("missing animation frame")
)

// ResourceError records a failed loader operation and the path it concerned.
type ResourceError struct {
	Op   string
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}
