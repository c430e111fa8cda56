package gesture

// StartingContext is passed to the owner when an episode is created. The
// owner may restrict or extend Settings before the episode commits to its
// enabled axes and gesture kinds.
type StartingContext struct {
	Device   DeviceType
	Position Vec2
	Settings GestureSettings
}

// ManipulationContext is the payload of every manipulation notification.
// Real and inertia-simulated updates share the same shape.
type ManipulationContext struct {
	Type     EventType
	Device   DeviceType
	Position Vec2 // center of the contacts, absolute coordinates
	// Delta is the change since the previously published event.
	Delta Delta
	// Cumulative is the change since the gesture origin.
	Cumulative Delta
	Velocities Velocities
	IsInertial bool

	ContactsAtStart int
	ContactsCurrent int

	// Inertia is set on EventManipulationInertiaStarting.
	Inertia *InertiaSimulator
}

// DragContext is the payload of drag notifications. Drags carry only the
// translation of the first contact.
type DragContext struct {
	Type      EventType
	Device    DeviceType
	PointerID PointerID
	Position  Vec2 // current position of the dragged contact
	Start     Vec2 // position at pointer down
	Delta     Vec2 // movement since the previous drag event

	ContactsAtStart int
	ContactsCurrent int
}

// Owner receives the notifications of a Manipulation. Every method runs
// synchronously on the caller's thread; the episode's state is already
// updated when a method is invoked.
type Owner interface {
	ManipulationStarting(ctx *StartingContext)
	ManipulationStarted(ctx ManipulationContext)
	ManipulationUpdated(ctx ManipulationContext)
	ManipulationInertiaStarting(ctx ManipulationContext)
	ManipulationCompleted(ctx ManipulationContext)

	DragStarted(ctx DragContext)
	DragContinuing(ctx DragContext)
	DragCompleted(ctx DragContext)

	// Detach is called once when the episode completes. The owner should
	// forget m only if it still references that exact episode.
	Detach(m *Manipulation)
}

// Event is a flattened gesture notification for stores that want a single
// event type, such as an ECS world.
type Event struct {
	Type      EventType
	Device    DeviceType
	PointerID PointerID // drag events only
	Position  Vec2

	Delta      Delta
	Cumulative Delta
	Velocities Velocities
	IsInertial bool

	ContactsAtStart int
	ContactsCurrent int
}

// EventStore is the interface for optional event forwarding. When set on a
// Recognizer, every notification is also emitted to the store.
type EventStore interface {
	EmitEvent(event Event)
}

func (c ManipulationContext) event() Event {
	return Event{
		Type:            c.Type,
		Device:          c.Device,
		Position:        c.Position,
		Delta:           c.Delta,
		Cumulative:      c.Cumulative,
		Velocities:      c.Velocities,
		IsInertial:      c.IsInertial,
		ContactsAtStart: c.ContactsAtStart,
		ContactsCurrent: c.ContactsCurrent,
	}
}

func (c DragContext) event() Event {
	return Event{
		Type:      c.Type,
		Device:    c.Device,
		PointerID: c.PointerID,
		Position:  c.Position,
		Delta:     Delta{Translation: c.Delta, Scale: 1},
		Cumulative: Delta{
			Translation: c.Position.Sub(c.Start),
			Scale:       1,
		},
		ContactsAtStart: c.ContactsAtStart,
		ContactsCurrent: c.ContactsCurrent,
	}
}
