// Package ebitenin feeds Ebitengine mouse and touch input into a
// gesture.Recognizer.
//
// Call Input.Update from your game's Update method. It advances the
// recognizer by one tick, then polls the cursor and the active touches and
// turns their transitions into ProcessDown, ProcessMove and ProcessUp calls.
package ebitenin

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/gesture"
)

const (
	maxPointers  = 10 // pointer 0 = mouse, 1-9 = touch
	mousePointer = 0
	defaultTPS   = 60
)

type touchSample struct {
	id  ebiten.TouchID
	pos gesture.Vec2
}

// Input polls Ebitengine input once per tick.
type Input struct {
	rec *gesture.Recognizer

	mouseDown bool
	mouseLast gesture.Vec2

	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	touchLast    [maxPointers]gesture.Vec2
	prevTouchIDs []ebiten.TouchID
	samples      []touchSample
	moves        []gesture.Contact
}

// New returns an Input feeding rec.
func New(rec *gesture.Recognizer) *Input {
	return &Input{rec: rec}
}

// Recognizer returns the recognizer fed by this input.
func (in *Input) Recognizer() *gesture.Recognizer { return in.rec }

// Update advances the recognizer by one tick and processes this tick's
// mouse and touch state.
func (in *Input) Update() {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = defaultTPS
	}
	in.rec.Update(time.Second / time.Duration(tps))

	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	touchIDs := ebiten.AppendTouchIDs(in.prevTouchIDs[:0])
	in.prevTouchIDs = touchIDs
	in.samples = in.samples[:0]
	for _, tid := range touchIDs {
		tx, ty := ebiten.TouchPosition(tid)
		in.samples = append(in.samples, touchSample{id: tid, pos: gesture.Vec2{X: float64(tx), Y: float64(ty)}})
	}

	in.step(in.rec.Now(), pressed, gesture.Vec2{X: float64(mx), Y: float64(my)}, in.samples)
}

// step applies one tick of sampled input at time now.
func (in *Input) step(now time.Duration, mousePressed bool, mouse gesture.Vec2, touches []touchSample) {
	in.processMouse(now, mousePressed, mouse)
	in.processTouches(now, touches)
}

// processMouse handles the left mouse button as pointer 0.
func (in *Input) processMouse(now time.Duration, pressed bool, pos gesture.Vec2) {
	c := gesture.Contact{ID: mousePointer, Device: gesture.DeviceMouse, Position: pos, Timestamp: now}
	switch {
	case pressed && !in.mouseDown:
		in.mouseDown = true
		in.rec.ProcessDown(c)
	case !pressed && in.mouseDown:
		in.mouseDown = false
		in.rec.ProcessUp(c)
	case pressed && pos != in.mouseLast:
		in.rec.ProcessMove(c)
	}
	in.mouseLast = pos
}

// processTouches handles touch input (pointers 1-9). Moves of every held
// touch are delivered as one batch.
func (in *Input) processTouches(now time.Duration, touches []touchSample) {
	var active [maxPointers]bool
	in.moves = in.moves[:0]
	for _, t := range touches {
		slot, isNew := in.touchSlot(t.id)
		if slot < 0 {
			continue
		}
		active[slot] = true
		c := gesture.Contact{ID: gesture.PointerID(slot), Device: gesture.DeviceTouch, Position: t.pos, Timestamp: now}
		switch {
		case isNew:
			in.rec.ProcessDown(c)
		case t.pos != in.touchLast[slot]:
			in.moves = append(in.moves, c)
		}
		in.touchLast[slot] = t.pos
	}
	if len(in.moves) > 0 {
		in.rec.ProcessMove(in.moves...)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && !active[i] {
			in.rec.ProcessUp(gesture.Contact{
				ID:        gesture.PointerID(i),
				Device:    gesture.DeviceTouch,
				Position:  in.touchLast[i],
				Timestamp: now,
			})
			in.touchUsed[i] = false
			in.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9), allocating one
// if needed. Returns -1 if all slots are taken.
func (in *Input) touchSlot(tid ebiten.TouchID) (slot int, isNew bool) {
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && in.touchMap[i] == tid {
			return i, false
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !in.touchUsed[i] {
			in.touchUsed[i] = true
			in.touchMap[i] = tid
			return i, true
		}
	}
	return -1, false
}
