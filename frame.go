package gesture

import (
	"math"
	"time"
)

// Frame is the geometry of one or two contacts: their center, the distance
// between them and the angle of the vector from the first to the second.
// Frames are values; every operation returns a new Frame.
//
// With a single contact the distance and angle are both 0 and the center is
// the contact position.
type Frame struct {
	first     Contact
	second    Contact
	hasSecond bool

	center   Vec2
	distance float64
	angle    float64 // degrees
}

// NewFrame returns the frame of a single contact.
func NewFrame(c Contact) Frame {
	f := Frame{first: c}
	f.compute()
	return f
}

// WithSecond returns f with c attached as the second contact. If f already
// has a second contact it is replaced.
func (f Frame) WithSecond(c Contact) Frame {
	f.second = c
	f.hasSecond = true
	f.compute()
	return f
}

// Replace returns f with the contact matching c.ID replaced by c. The
// boolean is false, and f is returned unchanged, if the ID is unknown.
func (f Frame) Replace(c Contact) (Frame, bool) {
	switch {
	case f.first.ID == c.ID:
		f.first = c
	case f.hasSecond && f.second.ID == c.ID:
		f.second = c
	default:
		return f, false
	}
	f.compute()
	return f, true
}

// compute refreshes the derived quantities from the raw positions.
func (f *Frame) compute() {
	if !f.hasSecond {
		f.center = f.first.Position
		f.distance = 0
		f.angle = 0
		return
	}
	p1, p2 := f.first.Position, f.second.Position
	f.center = Vec2{(p1.X + p2.X) / 2, (p1.Y + p2.Y) / 2}
	v := p2.Sub(p1)
	f.distance = v.Len()
	f.angle = math.Atan2(v.Y, v.X) * 180 / math.Pi
}

// Center returns the midpoint of the contacts, or the single contact position.
func (f Frame) Center() Vec2 { return f.center }

// Distance returns the distance between the two contacts, 0 with one contact.
func (f Frame) Distance() float64 { return f.distance }

// Angle returns the angle in degrees of the vector from the first to the
// second contact, 0 with one contact.
func (f Frame) Angle() float64 { return f.angle }

// Timestamp returns the most recent timestamp among the frame's contacts.
func (f Frame) Timestamp() time.Duration {
	if f.hasSecond && f.second.Timestamp > f.first.Timestamp {
		return f.second.Timestamp
	}
	return f.first.Timestamp
}

// Count returns the number of contacts in the frame (1 or 2).
func (f Frame) Count() int {
	if f.hasSecond {
		return 2
	}
	return 1
}

// HasSecond reports whether a second contact is attached.
func (f Frame) HasSecond() bool { return f.hasSecond }

// First returns the contact the frame was created from.
func (f Frame) First() Contact { return f.first }

// Second returns the second contact, if any.
func (f Frame) Second() (Contact, bool) { return f.second, f.hasSecond }

// Has reports whether the frame tracks the given pointer.
func (f Frame) Has(id PointerID) bool {
	return f.first.ID == id || (f.hasSecond && f.second.ID == id)
}
