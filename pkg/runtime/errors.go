package runtime

import (
	"errors"
	"fmt"
)

// ErrNilContainer is returned by Mount when the target container is
// missing. The instance stays unmounted; callers detect the failure
// through the returned error and Phase.
var ErrNilContainer = errors.New("runtime: mount container is nil")

// ErrDestroyed is returned when operating on a destroyed instance.
var ErrDestroyed = errors.New("runtime: instance is destroyed")

// ErrAlreadyMounted is returned by Mount on a mounted instance.
var ErrAlreadyMounted = errors.New("runtime: instance is already mounted")

// ErrNilRender is the render-boundary error for a nil render result.
var ErrNilRender = errors.New("runtime: render produced no output")

// ErrRootNotElement is the render-boundary error for render output
// whose root is not an element node.
var ErrRootNotElement = errors.New("runtime: render root must be an element")

// RenderError reports a render function that panicked. The update was
// aborted at the render boundary; the previously committed DOM is
// untouched.
type RenderError struct {
	Component string
	Cause     error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("runtime: render of %s panicked: %v", e.Component, e.Cause)
}

func (e *RenderError) Unwrap() error { return e.Cause }
