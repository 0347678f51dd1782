package svg2ico

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNoImages is returned when none of the requested sizes could be rendered.
var ErrNoImages = errors.New("no images were created")

// LoadError reports a vector source which is missing, unreadable or empty.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load SVG %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// RenderError reports the failure of a single icon size.
// The conversion skips the size and carries on with the remaining ones.
type RenderError struct {
	Size int
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to create %dx%d: %v", e.Size, e.Size, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// EncodeError reports a failure while writing the icon file.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("error saving ICO file %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
