package editor

import (
	"errors"
	"fmt"
)

// ErrAborted is returned by Open when no dialog was opened. The cancel
// callback has already been invoked.
var ErrAborted = errors.New("attachment editor aborted")

var (
	// ErrNotEditable means the object is neither attachable nor movable.
	ErrNotEditable = fmt.Errorf("%w: object is neither movable nor attachable", ErrAborted)
	// ErrCanceled means the user declined to align a non-attachable object.
	ErrCanceled = fmt.Errorf("%w: canceled by user", ErrAborted)
)

// brokenLinkError reports references the engine could not resolve.
type brokenLinkError struct {
	detail string
}

func (e *brokenLinkError) Error() string {
	return "Failed to resolve links. " + e.detail
}
