package gesture

import "math"

type syntheticKind uint8

const (
	syntheticDown syntheticKind = iota
	syntheticMove
	syntheticUp
	syntheticCancel
)

// syntheticEvent is one injected pointer event. Contacts are stamped with
// the recognizer clock when the event is consumed, not when it is queued.
type syntheticEvent struct {
	kind     syntheticKind
	contacts []Contact
}

// InjectDown queues a contact press at the given screen coordinates. The
// event is consumed by the next Update.
func (r *Recognizer) InjectDown(d DeviceType, id PointerID, x, y float64) {
	r.inject(syntheticDown, Contact{ID: id, Device: d, Position: Vec2{x, y}})
}

// InjectMove queues a move of one or more held contacts. All contacts of a
// single call are delivered as one batch.
func (r *Recognizer) InjectMove(contacts ...Contact) {
	r.inject(syntheticMove, contacts...)
}

// InjectUp queues a contact release at the given screen coordinates.
func (r *Recognizer) InjectUp(d DeviceType, id PointerID, x, y float64) {
	r.inject(syntheticUp, Contact{ID: id, Device: d, Position: Vec2{x, y}})
}

// InjectCancel queues a cancellation of the contact.
func (r *Recognizer) InjectCancel(d DeviceType, id PointerID) {
	r.inject(syntheticCancel, Contact{ID: id, Device: d})
}

// InjectDrag queues a full single-contact sequence: press at from, linearly
// interpolated moves over frames-2 intermediate frames, and release at to.
// The sequence consumes `frames` frames. Minimum frames is 2.
func (r *Recognizer) InjectDrag(d DeviceType, id PointerID, from, to Vec2, frames int) {
	if frames < 2 {
		frames = 2
	}
	r.InjectDown(d, id, from.X, from.Y)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		r.InjectMove(Contact{ID: id, Device: d, Position: lerp(from, to, t)})
	}
	r.InjectUp(d, id, to.X, to.Y)
}

// InjectPinch queues a two-touch sequence around center using pointers 1
// and 2: both press with the contacts fromDist apart on a horizontal line,
// then move so that they end toDist apart rotated by rotation degrees, then
// the second contact releases followed by the first. The sequence consumes
// frames+4 frames; frames is at least 1.
func (r *Recognizer) InjectPinch(center Vec2, fromDist, toDist, rotation float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	pair := func(dist, deg float64) (Vec2, Vec2) {
		sin, cos := math.Sincos(deg * math.Pi / 180)
		h := Vec2{cos * dist / 2, sin * dist / 2}
		return center.Sub(h), center.Add(h)
	}

	p1, p2 := pair(fromDist, 0)
	r.InjectDown(DeviceTouch, 1, p1.X, p1.Y)
	r.InjectDown(DeviceTouch, 2, p2.X, p2.Y)
	for i := 1; i <= frames; i++ {
		t := float64(i) / float64(frames)
		p1, p2 = pair(fromDist+(toDist-fromDist)*t, rotation*t)
		r.InjectMove(
			Contact{ID: 1, Device: DeviceTouch, Position: p1},
			Contact{ID: 2, Device: DeviceTouch, Position: p2},
		)
	}
	r.InjectUp(DeviceTouch, 2, p2.X, p2.Y)
	r.InjectUp(DeviceTouch, 1, p1.X, p1.Y)
}

// PendingInjections returns the number of queued synthetic events.
func (r *Recognizer) PendingInjections() int { return len(r.injectQueue) }

func (r *Recognizer) inject(kind syntheticKind, contacts ...Contact) {
	r.injectQueue = append(r.injectQueue, syntheticEvent{kind: kind, contacts: contacts})
}

// processInjected pops one event from the inject queue and feeds it through
// the same entry points as real input. Returns true if an event was consumed.
func (r *Recognizer) processInjected() bool {
	if len(r.injectQueue) == 0 {
		return false
	}
	evt := r.injectQueue[0]
	copy(r.injectQueue, r.injectQueue[1:])
	r.injectQueue[len(r.injectQueue)-1] = syntheticEvent{}
	r.injectQueue = r.injectQueue[:len(r.injectQueue)-1]

	for i := range evt.contacts {
		evt.contacts[i].Timestamp = r.now
	}
	switch evt.kind {
	case syntheticDown:
		r.ProcessDown(evt.contacts[0])
	case syntheticMove:
		r.ProcessMove(evt.contacts...)
	case syntheticUp:
		r.ProcessUp(evt.contacts[0])
	case syntheticCancel:
		r.ProcessCancel(evt.contacts[0])
	}
	return true
}

func lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}
