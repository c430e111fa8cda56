package gesture

import (
	"math"
	"time"
)

// Thresholds is one set of per-axis tolerances. Translation and expansion
// are in px (px/ms for inertia), rotation in degrees (degrees/ms).
type Thresholds struct {
	TranslateX float64 `toml:"translate_x"`
	TranslateY float64 `toml:"translate_y"`
	Rotate     float64 `toml:"rotate"`
	Expansion  float64 `toml:"expansion"`
}

// Exceeded reports whether any single component of d is above its limit.
// The axes are tested independently, never as a combined magnitude.
func (t Thresholds) Exceeded(d Delta) bool {
	return math.Abs(d.Translation.X) > t.TranslateX ||
		math.Abs(d.Translation.Y) > t.TranslateY ||
		math.Abs(d.Rotation) > t.Rotate ||
		math.Abs(d.Expansion) > t.Expansion
}

// ExceededBy reports whether any velocity component is above its limit.
func (t Thresholds) ExceededBy(v Velocities) bool {
	return math.Abs(v.Linear.X) > t.TranslateX ||
		math.Abs(v.Linear.Y) > t.TranslateY ||
		math.Abs(v.Angular) > t.Rotate ||
		math.Abs(v.Expansion) > t.Expansion
}

// Profile holds the tolerances of one device type.
type Profile struct {
	// Start is the cumulative change needed to leave StateStarting.
	Start Thresholds
	// Delta is the incremental change needed to publish an update.
	Delta Thresholds
	// Inertia is the release velocity needed to start inertia.
	Inertia Thresholds

	// TapRange is the per-axis distance from the down position a contact
	// may travel and still be considered a tap. Leaving it starts a drag.
	TapRange float64
	// DragHoldDelay is how long a touch must be held before it may start a
	// drag. Zero disables the hold phase.
	DragHoldDelay time.Duration
}

// outOfTapRange reports whether current left the tap range around down.
func (p Profile) outOfTapRange(down, current Vec2) bool {
	return math.Abs(current.X-down.X) > p.TapRange ||
		math.Abs(current.Y-down.Y) > p.TapRange
}

// Tables maps each device type to its Profile. Tables is a plain value:
// it is copied into every Manipulation at construction.
type Tables struct {
	Touch Profile
	Pen   Profile
	Mouse Profile
}

// For returns the profile of the given device type. Unknown types get the
// touch profile.
func (t Tables) For(d DeviceType) Profile {
	switch d {
	case DeviceMouse:
		return t.Mouse
	case DevicePen:
		return t.Pen
	default:
		return t.Touch
	}
}

// Inertia thresholds are expressed per millisecond.
var defaultInertiaThresholds = Thresholds{
	TranslateX: 15.0 / 1000,
	TranslateY: 15.0 / 1000,
	Rotate:     5.0 / 1000,
	Expansion:  15.0 / 1000,
}

// DefaultTables returns the stock tolerances. Mouse limits are sub-pixel so
// precise pointing devices react immediately.
func DefaultTables() Tables {
	touch := Profile{
		Start:         Thresholds{TranslateX: 15, TranslateY: 15, Rotate: 5, Expansion: 15},
		Delta:         Thresholds{TranslateX: 2, TranslateY: 2, Rotate: .1, Expansion: 1},
		Inertia:       defaultInertiaThresholds,
		TapRange:      10,
		DragHoldDelay: 300 * time.Millisecond,
	}
	pen := touch
	pen.DragHoldDelay = 0

	mouse := Profile{
		Start:    Thresholds{TranslateX: 1, TranslateY: 1, Rotate: .1, Expansion: 1},
		Delta:    Thresholds{TranslateX: .1, TranslateY: .1, Rotate: .1, Expansion: .1},
		Inertia:  defaultInertiaThresholds,
		TapRange: 1,
	}
	return Tables{Touch: touch, Pen: pen, Mouse: mouse}
}
