package quill

import (
	"errors"
	"fmt"
)

// Errors reported by the dependency registry and the default materializer.
var (
	// ErrNilAnimated is returned when a property tree holds a nil animated
	// reference.
	ErrNilAnimated = errors.New("quill: nil animated value")

	// ErrDisposedValue is returned when an animated value is read or
	// subscribed to after Dispose.
	ErrDisposedValue = errors.New("quill: animated value disposed")

	// ErrUnresolvable is returned when an animated value resolves to another
	// animated value instead of a concrete one.
	ErrUnresolvable = errors.New("quill: animated value did not resolve to a concrete value")

	// ErrInvalidProp is returned by the paint processor for a prop whose
	// value has the wrong type or an unknown name.
	ErrInvalidProp = errors.New("quill: invalid prop value")
)

// PropError reports which key of a property tree failed.
type PropError struct {
	// Path is the dotted key path, e.g. "style.color" or "points[2]".
	Path string
	// Err is the underlying error.
	Err error
}

func (e *PropError) Error() string {
	return fmt.Sprintf("prop %s: %v", e.Path, e.Err)
}

func (e *PropError) Unwrap() error {
	return e.Err
}

// FrameError is returned by Scene.Draw when a frame's traversal failed. The
// scene itself is left intact; the next Draw starts a fresh traversal.
type FrameError struct {
	// Frame is the 1-based index of the failed frame.
	Frame uint64
	// Err is the error that aborted the traversal, unchanged.
	Err error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("quill: frame %d: %v", e.Frame, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}
