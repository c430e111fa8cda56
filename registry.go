package gesture

// handlerKind identifies which registry list a CallbackHandle belongs to.
type handlerKind uint8

const (
	handlerStarting handlerKind = iota
	handlerStarted
	handlerUpdated
	handlerInertiaStarting
	handlerCompleted
	handlerDragStarted
	handlerDragContinuing
	handlerDragCompleted
	handlerHaptic
)

type handler[T any] struct {
	id uint32
	fn func(T)
}

type handlerList[T any] []handler[T]

// remove deletes the entry with the given id, keeping registration order.
func (s handlerList[T]) remove(id uint32) handlerList[T] {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = handler[T]{}
			return s[:len(s)-1]
		}
	}
	return s
}

func (s handlerList[T]) fire(v T) {
	for _, h := range s {
		h.fn(v)
	}
}

type handlerRegistry struct {
	starting        handlerList[*StartingContext]
	started         handlerList[ManipulationContext]
	updated         handlerList[ManipulationContext]
	inertiaStarting handlerList[ManipulationContext]
	completed       handlerList[ManipulationContext]
	dragStarted     handlerList[DragContext]
	dragContinuing  handlerList[DragContext]
	dragCompleted   handlerList[DragContext]
	haptic          handlerList[DeviceType]
	nextID          uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id   uint32
	reg  *handlerRegistry
	kind handlerKind
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.kind {
	case handlerStarting:
		h.reg.starting = h.reg.starting.remove(h.id)
	case handlerStarted:
		h.reg.started = h.reg.started.remove(h.id)
	case handlerUpdated:
		h.reg.updated = h.reg.updated.remove(h.id)
	case handlerInertiaStarting:
		h.reg.inertiaStarting = h.reg.inertiaStarting.remove(h.id)
	case handlerCompleted:
		h.reg.completed = h.reg.completed.remove(h.id)
	case handlerDragStarted:
		h.reg.dragStarted = h.reg.dragStarted.remove(h.id)
	case handlerDragContinuing:
		h.reg.dragContinuing = h.reg.dragContinuing.remove(h.id)
	case handlerDragCompleted:
		h.reg.dragCompleted = h.reg.dragCompleted.remove(h.id)
	case handlerHaptic:
		h.reg.haptic = h.reg.haptic.remove(h.id)
	}
}

func register[T any](reg *handlerRegistry, list *handlerList[T], kind handlerKind, fn func(T)) CallbackHandle {
	reg.nextID++
	id := reg.nextID
	*list = append(*list, handler[T]{id: id, fn: fn})
	return CallbackHandle{id: id, reg: reg, kind: kind}
}

// OnManipulationStarting registers a callback invoked when a new episode is
// created. The callback may change ctx.Settings to restrict or extend the
// gestures of that episode.
func (r *Recognizer) OnManipulationStarting(fn func(*StartingContext)) CallbackHandle {
	return register(&r.handlers, &r.handlers.starting, handlerStarting, fn)
}

// OnManipulationStarted registers a callback for manipulation start events.
func (r *Recognizer) OnManipulationStarted(fn func(ManipulationContext)) CallbackHandle {
	return register(&r.handlers, &r.handlers.started, handlerStarted, fn)
}

// OnManipulationUpdated registers a callback for manipulation updates, both
// real and inertial.
func (r *Recognizer) OnManipulationUpdated(fn func(ManipulationContext)) CallbackHandle {
	return register(&r.handlers, &r.handlers.updated, handlerUpdated, fn)
}

// OnManipulationInertiaStarting registers a callback fired when a release
// starts inertia.
func (r *Recognizer) OnManipulationInertiaStarting(fn func(ManipulationContext)) CallbackHandle {
	return register(&r.handlers, &r.handlers.inertiaStarting, handlerInertiaStarting, fn)
}

// OnManipulationCompleted registers a callback for manipulation completion.
func (r *Recognizer) OnManipulationCompleted(fn func(ManipulationContext)) CallbackHandle {
	return register(&r.handlers, &r.handlers.completed, handlerCompleted, fn)
}

// OnDragStarted registers a callback for drag start events.
func (r *Recognizer) OnDragStarted(fn func(DragContext)) CallbackHandle {
	return register(&r.handlers, &r.handlers.dragStarted, handlerDragStarted, fn)
}

// OnDragContinuing registers a callback fired on every drag move.
func (r *Recognizer) OnDragContinuing(fn func(DragContext)) CallbackHandle {
	return register(&r.handlers, &r.handlers.dragContinuing, handlerDragContinuing, fn)
}

// OnDragCompleted registers a callback for drag completion.
func (r *Recognizer) OnDragCompleted(fn func(DragContext)) CallbackHandle {
	return register(&r.handlers, &r.handlers.dragCompleted, handlerDragCompleted, fn)
}

// OnHaptic registers a callback fired when a touch drag starts after its
// hold delay. Hosts typically trigger a short vibration.
func (r *Recognizer) OnHaptic(fn func(DeviceType)) CallbackHandle {
	return register(&r.handlers, &r.handlers.haptic, handlerHaptic, fn)
}
