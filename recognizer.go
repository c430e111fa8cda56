package gesture

import "time"

// Recognizer owns the gesture episodes of one input surface. It keeps at
// most one active Manipulation per device type, routes contacts to it, and
// fans the episode's notifications out to registered callbacks and the
// optional EventStore.
//
// A Recognizer is driven from a single thread: call the Process methods as
// pointer events arrive and Update once per frame to advance inertia.
type Recognizer struct {
	settings GestureSettings
	tables   Tables
	inertia  InertiaConfig

	scheduler *FrameScheduler
	timers    TimerFactory
	store     EventStore

	handlers handlerRegistry
	active   [deviceCount]*Manipulation
	moveBuf  []Contact
	now      time.Duration

	injectQueue []syntheticEvent
	script      *ScriptRunner
}

// NewRecognizer creates a recognizer requesting the given gestures for every
// new episode. Inertia timers come from the recognizer's own FrameScheduler,
// advanced by Update.
func NewRecognizer(settings GestureSettings) *Recognizer {
	sched := NewFrameScheduler()
	return &Recognizer{
		settings:  settings,
		tables:    DefaultTables(),
		inertia:   DefaultInertiaConfig(),
		scheduler: sched,
		timers:    sched.NewTimer,
	}
}

// Settings returns the gestures requested for new episodes.
func (r *Recognizer) Settings() GestureSettings { return r.settings }

// SetSettings changes the gestures requested for new episodes. Active
// episodes keep the settings they negotiated.
func (r *Recognizer) SetSettings(s GestureSettings) { r.settings = s }

// SetTables replaces the threshold tables used by new episodes.
func (r *Recognizer) SetTables(t Tables) { r.tables = t }

// SetInertiaConfig replaces the inertia configuration used by new episodes.
func (r *Recognizer) SetInertiaConfig(c InertiaConfig) { r.inertia = c }

// SetTimerFactory makes new episodes take their inertia timers from f
// instead of the built-in scheduler. Passing nil disables inertia.
func (r *Recognizer) SetTimerFactory(f TimerFactory) { r.timers = f }

// SetEventStore forwards every notification to store. Pass nil to stop.
func (r *Recognizer) SetEventStore(store EventStore) { r.store = store }

// Scheduler returns the built-in timer scheduler.
func (r *Recognizer) Scheduler() *FrameScheduler { return r.scheduler }

// Now returns the recognizer clock, the sum of every Update dt. Injected
// contacts are stamped with it.
func (r *Recognizer) Now() time.Duration { return r.now }

// Active returns the active episode of a device type, or nil.
func (r *Recognizer) Active(d DeviceType) *Manipulation {
	if int(d) >= deviceCount {
		return nil
	}
	return r.active[d]
}

// Update advances the recognizer clock by dt, runs one step of the script
// runner and one injected event, then advances inertia timers.
func (r *Recognizer) Update(dt time.Duration) {
	r.now += dt
	if r.script != nil {
		r.script.step(r)
	}
	r.processInjected()
	r.scheduler.Advance(dt)
}

// ProcessDown handles a new contact. It becomes the second contact of the
// device's active episode when possible; otherwise a new episode starts. A
// down arriving during inertia completes the inertial episode first.
func (r *Recognizer) ProcessDown(c Contact) {
	if int(c.Device) >= deviceCount {
		return
	}
	if m := r.active[c.Device]; m != nil {
		if m.TryAdd(c) {
			return
		}
		m.Complete()
	}

	m := NewManipulation(r.owner(), c, ManipulationConfig{
		Settings: r.settings,
		Tables:   r.tables,
		Inertia:  r.inertia,
		Timers:   r.timers,
	})
	if !m.IsCompleted() {
		r.active[c.Device] = m
	}
}

// ProcessMove applies a batch of contact moves. Contacts are grouped by
// device type and each active episode sees its contacts in order.
func (r *Recognizer) ProcessMove(contacts ...Contact) {
	for d := DeviceType(0); d < deviceCount; d++ {
		m := r.active[d]
		if m == nil {
			continue
		}
		r.moveBuf = r.moveBuf[:0]
		for _, c := range contacts {
			if c.Device == d {
				r.moveBuf = append(r.moveBuf, c)
			}
		}
		if len(r.moveBuf) > 0 {
			m.Update(r.moveBuf...)
		}
	}
}

// ProcessUp handles a released contact.
func (r *Recognizer) ProcessUp(c Contact) {
	if m := r.Active(c.Device); m != nil {
		m.Remove(c)
	}
}

// ProcessCancel forces completion of the episode holding the contact.
func (r *Recognizer) ProcessCancel(c Contact) {
	if m := r.Active(c.Device); m != nil && m.Has(c.ID) {
		m.Complete()
	}
}

// CompleteAll forces completion of every active episode.
func (r *Recognizer) CompleteAll() {
	for _, m := range r.active {
		if m != nil {
			m.Complete()
		}
	}
}

func (r *Recognizer) emit(e Event) {
	if r.store != nil {
		r.store.EmitEvent(e)
	}
}

func (r *Recognizer) owner() Owner { return (*recognizerOwner)(r) }

// recognizerOwner is the Owner side of a Recognizer, kept off the
// Recognizer's exported method set. Each notification reaches the store
// before the callbacks.
type recognizerOwner Recognizer

func (o *recognizerOwner) ManipulationStarting(ctx *StartingContext) {
	(*Recognizer)(o).emit(Event{
		Type:     EventManipulationStarting,
		Device:   ctx.Device,
		Position: ctx.Position,
	})
	o.handlers.starting.fire(ctx)
}

func (o *recognizerOwner) ManipulationStarted(ctx ManipulationContext) {
	(*Recognizer)(o).emit(ctx.event())
	o.handlers.started.fire(ctx)
}

func (o *recognizerOwner) ManipulationUpdated(ctx ManipulationContext) {
	(*Recognizer)(o).emit(ctx.event())
	o.handlers.updated.fire(ctx)
}

func (o *recognizerOwner) ManipulationInertiaStarting(ctx ManipulationContext) {
	(*Recognizer)(o).emit(ctx.event())
	o.handlers.inertiaStarting.fire(ctx)
}

func (o *recognizerOwner) ManipulationCompleted(ctx ManipulationContext) {
	(*Recognizer)(o).emit(ctx.event())
	o.handlers.completed.fire(ctx)
}

func (o *recognizerOwner) DragStarted(ctx DragContext) {
	(*Recognizer)(o).emit(ctx.event())
	if ctx.Device == DeviceTouch {
		o.handlers.haptic.fire(ctx.Device)
	}
	o.handlers.dragStarted.fire(ctx)
}

func (o *recognizerOwner) DragContinuing(ctx DragContext) {
	(*Recognizer)(o).emit(ctx.event())
	o.handlers.dragContinuing.fire(ctx)
}

func (o *recognizerOwner) DragCompleted(ctx DragContext) {
	(*Recognizer)(o).emit(ctx.event())
	o.handlers.dragCompleted.fire(ctx)
}

// Detach forgets m if it is still the active episode of its device.
func (o *recognizerOwner) Detach(m *Manipulation) {
	if int(m.device) < deviceCount && o.active[m.device] == m {
		o.active[m.device] = nil
	}
}
