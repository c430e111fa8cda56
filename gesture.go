package gesture

import (
	"math"
	"strings"
	"time"
)

// Vec2 is a 2D vector used for positions, translations and velocities.
// Coordinates are absolute screen units with Y increasing downward.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// DeviceType identifies the kind of device behind a contact. Each device type
// gets its own gesture channel in a Recognizer.
type DeviceType uint8

const (
	DeviceTouch DeviceType = iota // finger on a touch screen
	DevicePen                     // stylus
	DeviceMouse                   // mouse with a button held

	deviceCount = 3
)

// String returns the lower-case device name used in config files and scripts.
func (d DeviceType) String() string {
	switch d {
	case DeviceTouch:
		return "touch"
	case DevicePen:
		return "pen"
	case DeviceMouse:
		return "mouse"
	default:
		return "unknown"
	}
}

// ParseDeviceType is the inverse of DeviceType.String.
func ParseDeviceType(s string) (DeviceType, bool) {
	switch strings.ToLower(s) {
	case "touch":
		return DeviceTouch, true
	case "pen":
		return DevicePen, true
	case "mouse":
		return DeviceMouse, true
	}
	return 0, false
}

// PointerID identifies one contact for its whole down/up session.
type PointerID uint32

// Contact is one active pointer sample. Contacts are values: every move
// produces a new Contact that replaces the previous one.
type Contact struct {
	ID     PointerID
	Device DeviceType
	// Position is in absolute screen coordinates, independent of any
	// transform applied to the element under the gesture.
	Position Vec2
	// Timestamp is a monotonic time since an arbitrary epoch shared by all
	// contacts fed to the same Recognizer.
	Timestamp time.Duration
}

// GestureSettings is a bitmask selecting the gestures and manipulation axes
// an episode may recognize. Values can be combined with bitwise OR.
type GestureSettings uint16

const (
	ManipulationTranslateX       GestureSettings = 1 << iota // horizontal translation
	ManipulationTranslateY                                   // vertical translation
	ManipulationRotate                                       // two-contact rotation
	ManipulationScale                                        // two-contact scale and expansion
	ManipulationTranslateInertia                             // inertia on enabled translate axes
	ManipulationRotateInertia                                // inertia on rotation
	ManipulationScaleInertia                                 // inertia on scale and expansion
	Drag                                                     // drag, exclusive with manipulation once started

	ManipulationTranslate = ManipulationTranslateX | ManipulationTranslateY
	ManipulationInertia   = ManipulationTranslateInertia | ManipulationRotateInertia | ManipulationScaleInertia
	ManipulationAll       = ManipulationTranslate | ManipulationRotate | ManipulationScale | ManipulationInertia
)

// Has reports whether every flag in f is set.
func (s GestureSettings) Has(f GestureSettings) bool { return s&f == f }

// Manipulates reports whether any manipulation axis is enabled.
func (s GestureSettings) Manipulates() bool {
	return s&(ManipulationTranslate|ManipulationRotate|ManipulationScale) != 0
}

var settingNames = []struct {
	name string
	flag GestureSettings
}{
	{"translate-x", ManipulationTranslateX},
	{"translate-y", ManipulationTranslateY},
	{"translate", ManipulationTranslate},
	{"rotate", ManipulationRotate},
	{"scale", ManipulationScale},
	{"translate-inertia", ManipulationTranslateInertia},
	{"rotate-inertia", ManipulationRotateInertia},
	{"scale-inertia", ManipulationScaleInertia},
	{"inertia", ManipulationInertia},
	{"all", ManipulationAll},
	{"drag", Drag},
}

// ParseGestureSettings ORs together the named flags ("translate-x",
// "rotate", "inertia", "drag", ...). Unknown names are reported.
func ParseGestureSettings(names []string) (GestureSettings, error) {
	var s GestureSettings
	for _, n := range names {
		found := false
		for _, sn := range settingNames {
			if strings.EqualFold(n, sn.name) {
				s |= sn.flag
				found = true
				break
			}
		}
		if !found {
			return 0, &UnknownSettingError{Name: n}
		}
	}
	return s, nil
}

// State is the lifecycle position of a Manipulation. States only move
// forward; StateCompleted is terminal.
type State uint8

const (
	StateStarting  State = iota // first contact seen, waiting for a start threshold
	StateStarted                // manipulation or drag in progress
	StateInertia                // contacts released, simulated deceleration running
	StateCompleted              // terminal
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateStarted:
		return "started"
	case StateInertia:
		return "inertia"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// EventType identifies a kind of gesture event.
type EventType uint8

const (
	EventManipulationStarting        EventType = iota // settings negotiation for a new episode
	EventManipulationStarted                          // start threshold crossed or second contact added
	EventManipulationUpdated                          // significant change, real or simulated
	EventManipulationInertiaStarting                  // release fast enough to start inertia
	EventManipulationCompleted                        // episode finished
	EventDragStarted                                  // contact left tap range with drag enabled
	EventDragContinuing                               // every move while dragging
	EventDragCompleted                                // drag contact released or cancelled
)

func (e EventType) String() string {
	switch e {
	case EventManipulationStarting:
		return "ManipulationStarting"
	case EventManipulationStarted:
		return "ManipulationStarted"
	case EventManipulationUpdated:
		return "ManipulationUpdated"
	case EventManipulationInertiaStarting:
		return "ManipulationInertiaStarting"
	case EventManipulationCompleted:
		return "ManipulationCompleted"
	case EventDragStarted:
		return "DragStarted"
	case EventDragContinuing:
		return "DragContinuing"
	case EventDragCompleted:
		return "DragCompleted"
	default:
		return "Unknown"
	}
}
