package gesture

import (
	"errors"
	"fmt"
)

// ErrUnsupportedDelta is returned when a Delta cannot be converted to an
// affine transform (non-finite components or a negative scale).
var ErrUnsupportedDelta = errors.New("gesture: unsupported delta")

// UnknownSettingError reports a gesture setting name that ParseGestureSettings
// does not recognize.
type UnknownSettingError struct {
	Name string
}

func (e *UnknownSettingError) Error() string {
	return fmt.Sprintf("gesture: unknown setting %q", e.Name)
}
