package gesture

import (
	"math"
	"slices"
	"time"
)

// ManipulationConfig is everything a Manipulation needs at construction.
type ManipulationConfig struct {
	// Settings are the requested gestures, offered to the owner for
	// negotiation through ManipulationStarting.
	Settings GestureSettings
	// Tables holds the per-device tolerances. The zero value means
	// DefaultTables.
	Tables Tables
	// Inertia configures the simulation. The zero value means
	// DefaultInertiaConfig.
	Inertia InertiaConfig
	// Timers creates the inertia timer. Inertia is disabled when nil.
	Timers TimerFactory
}

// publishedState is the state as last seen by the owner.
type publishedState struct {
	cumulative Delta // sum of every published incremental delta
	timestamp  time.Duration
	contacts   int
}

// Manipulation is one gesture episode: a state machine fed with the contacts
// of a single device type that decides between a drag and a manipulation,
// publishes lifecycle notifications to its Owner and, after a fast release,
// runs an InertiaSimulator.
//
// A Manipulation is not safe for concurrent use. Contact updates, Complete
// and inertia ticks must be delivered serially.
type Manipulation struct {
	owner      Owner
	device     DeviceType
	settings   GestureSettings
	profile    Profile
	inertiaCfg InertiaConfig
	timers     TimerFactory

	origin  Frame
	current Frame
	live    []PointerID

	contactsAtStart int
	contactsCurrent int

	state  State
	isDrag bool

	isDragEnabled         bool
	isManipulationEnabled bool
	translateX            bool
	translateY            bool
	rotate                bool
	scale                 bool
	inertiaAxes           inertiaAxes

	published        publishedState
	lastVelocities   Velocities
	lastDragPosition Vec2

	inertia *InertiaSimulator
}

// NewManipulation starts an episode from its first contact. The owner's
// ManipulationStarting is called before the enabled axes are fixed; if the
// negotiated settings enable neither drag nor manipulation the episode is
// returned already completed.
func NewManipulation(owner Owner, first Contact, cfg ManipulationConfig) *Manipulation {
	if cfg.Tables == (Tables{}) {
		cfg.Tables = DefaultTables()
	}
	if cfg.Inertia == (InertiaConfig{}) {
		cfg.Inertia = DefaultInertiaConfig()
	}

	m := &Manipulation{
		owner:            owner,
		device:           first.Device,
		profile:          cfg.Tables.For(first.Device),
		inertiaCfg:       cfg.Inertia,
		timers:           cfg.Timers,
		origin:           NewFrame(first),
		current:          NewFrame(first),
		live:             []PointerID{first.ID},
		contactsAtStart:  1,
		contactsCurrent:  1,
		lastDragPosition: first.Position,
		published: publishedState{
			cumulative: Identity,
			timestamp:  first.Timestamp,
			contacts:   1,
		},
	}

	ctx := &StartingContext{Device: first.Device, Position: first.Position, Settings: cfg.Settings}
	owner.ManipulationStarting(ctx)
	m.applySettings(ctx.Settings)

	if !m.isDragEnabled && !m.isManipulationEnabled {
		Logger().V(1).Info("manipulation disabled by settings", "device", m.device, "settings", ctx.Settings)
		m.Complete()
	}
	return m
}

func (m *Manipulation) applySettings(s GestureSettings) {
	m.settings = s
	m.isDragEnabled = s.Has(Drag)
	m.isManipulationEnabled = s.Manipulates()
	m.translateX = s.Has(ManipulationTranslateX)
	m.translateY = s.Has(ManipulationTranslateY)
	m.rotate = s.Has(ManipulationRotate)
	m.scale = s.Has(ManipulationScale)
	m.inertiaAxes = inertiaAxes{
		translateX: m.translateX && s.Has(ManipulationTranslateInertia),
		translateY: m.translateY && s.Has(ManipulationTranslateInertia),
		rotate:     m.rotate && s.Has(ManipulationRotateInertia),
		expansion:  m.scale && s.Has(ManipulationScaleInertia),
	}
}

// Device returns the device type of the episode's contacts.
func (m *Manipulation) Device() DeviceType { return m.device }

// State returns the current lifecycle state.
func (m *Manipulation) State() State { return m.state }

// Settings returns the negotiated settings.
func (m *Manipulation) Settings() GestureSettings { return m.settings }

// IsDragging reports whether the episode was classified as a drag.
func (m *Manipulation) IsDragging() bool { return m.isDrag }

// IsCompleted reports whether the episode reached its terminal state.
func (m *Manipulation) IsCompleted() bool { return m.state == StateCompleted }

// Inertia returns the running simulator, or nil outside of inertia.
func (m *Manipulation) Inertia() *InertiaSimulator { return m.inertia }

// Has reports whether the pointer is one of the episode's live contacts.
func (m *Manipulation) Has(id PointerID) bool { return slices.Contains(m.live, id) }

// TryAdd attaches a second contact. It returns false only when the episode
// can no longer accept contacts (inertia or completed), in which case the
// caller should start a new episode. A contact of another device type, a
// third contact or a contact added to a drag is ignored but reported as
// handled.
func (m *Manipulation) TryAdd(c Contact) bool {
	if m.state >= StateInertia {
		return false
	}
	if c.Device != m.device || len(m.live) >= 2 || m.isDrag || m.Has(c.ID) {
		return true
	}

	m.origin = m.origin.WithSecond(c)
	m.current = m.current.WithSecond(c)
	m.live = append(m.live, c.ID)
	m.contactsCurrent++

	m.notifyUpdate(true, false)
	return true
}

// Update applies a batch of contact moves in order, then evaluates the state
// machine once. Unknown pointers are ignored. Real input is ignored while
// inertia is running.
func (m *Manipulation) Update(contacts ...Contact) {
	if m.state >= StateInertia {
		return
	}
	changed := false
	for _, c := range contacts {
		if c.Device != m.device || !m.Has(c.ID) {
			continue
		}
		if f, ok := m.current.Replace(c); ok {
			m.current = f
			changed = true
		}
	}
	if changed {
		m.notifyUpdate(false, false)
	}
}

// Remove releases a contact. The contact's final position is applied before
// the release is evaluated. Unknown pointers are ignored.
func (m *Manipulation) Remove(c Contact) {
	if m.state >= StateInertia || c.Device != m.device || !m.Has(c.ID) {
		return
	}
	if f, ok := m.current.Replace(c); ok {
		m.current = f
	}
	m.live = slices.DeleteFunc(m.live, func(id PointerID) bool { return id == c.ID })
	m.contactsCurrent--

	m.notifyUpdate(false, true)
}

// Complete ends the episode. It is idempotent. A started drag emits
// DragCompleted, a started or inertial manipulation emits
// ManipulationCompleted, anything else completes silently. The inertia
// simulator is disposed before any notification and the owner is detached
// last.
func (m *Manipulation) Complete() {
	if m.state == StateCompleted {
		return
	}
	prev := m.state

	var cumulative, delta Delta
	var velocities Velocities
	if prev == StateStarted || prev == StateInertia {
		cumulative = m.cumulative()
		delta = cumulative.Sub(m.published.cumulative)
		velocities = m.velocities(delta, m.timestamp())
	}
	position := m.position(cumulative)

	m.state = StateCompleted
	if m.inertia != nil {
		m.inertia.Dispose()
	}
	defer m.owner.Detach(m)

	Logger().V(1).Info("manipulation completed", "device", m.device, "from", prev, "drag", m.isDrag)

	switch {
	case prev == StateStarted && m.isDrag:
		m.owner.DragCompleted(m.dragContext(EventDragCompleted))
	case prev == StateStarted || prev == StateInertia:
		m.published = publishedState{
			cumulative: m.published.cumulative.Add(delta),
			timestamp:  m.timestamp(),
			contacts:   m.contactsCurrent,
		}
		m.owner.ManipulationCompleted(ManipulationContext{
			Type:            EventManipulationCompleted,
			Device:          m.device,
			Position:        position,
			Delta:           delta,
			Cumulative:      cumulative,
			Velocities:      velocities,
			IsInertial:      prev == StateInertia,
			ContactsAtStart: m.contactsAtStart,
			ContactsCurrent: m.contactsCurrent,
		})
	}
}

// notifyUpdate evaluates the transition table after a contact mutation or an
// inertia tick and emits at most one transition's notifications.
func (m *Manipulation) notifyUpdate(added, removed bool) {
	if m.state == StateCompleted {
		return
	}

	cumulative := m.cumulative()
	delta := cumulative.Sub(m.published.cumulative)
	now := m.timestamp()
	velocities := m.velocities(delta, now)

	switch {
	case m.state == StateStarting && removed:
		m.Complete()

	case m.state == StateStarting && m.isBeginningOfDrag():
		m.state = StateStarted
		m.isDrag = true
		m.contactsAtStart = m.contactsCurrent
		Logger().V(1).Info("drag started", "device", m.device)
		m.owner.DragStarted(m.dragContext(EventDragStarted))

	case m.state == StateStarting && added && m.isManipulationEnabled:
		m.state = StateStarted
		m.contactsAtStart = m.contactsCurrent
		m.published = publishedState{cumulative: m.published.cumulative, timestamp: now, contacts: m.contactsCurrent}
		Logger().V(1).Info("manipulation started", "device", m.device, "contacts", m.contactsCurrent)
		m.owner.ManipulationStarted(m.context(EventManipulationStarted, Identity, Identity, Velocities{}))

	case m.state == StateStarting && m.isManipulationEnabled && m.profile.Start.Exceeded(cumulative):
		m.state = StateStarted
		m.contactsAtStart = m.contactsCurrent
		Logger().V(1).Info("manipulation started", "device", m.device, "cumulative", cumulative)
		m.owner.ManipulationStarted(m.context(EventManipulationStarted, Identity, Identity, Velocities{}))
		if m.state != StateStarted {
			return
		}
		// Report the whole initial motion as the first delta so listeners
		// that only sum deltas still see it.
		m.published = publishedState{cumulative: cumulative, timestamp: now, contacts: m.contactsCurrent}
		m.owner.ManipulationUpdated(m.context(EventManipulationUpdated, cumulative, cumulative, velocities))

	case m.state == StateStarted && m.isDrag && removed:
		m.Complete()

	case m.state == StateStarted && m.isDrag:
		m.owner.DragContinuing(m.dragContext(EventDragContinuing))

	case m.state == StateStarted && removed && m.shouldStartInertia(velocities):
		m.state = StateInertia
		m.inertia = newInertiaSimulator(m.timers, m.inertiaCfg, m.inertiaAxes,
			cumulative, m.inertiaDirection(velocities), m.origin.Distance(), now, m.onInertiaTick)
		m.published = publishedState{
			cumulative: m.published.cumulative.Add(delta),
			timestamp:  now,
			contacts:   m.contactsCurrent,
		}
		Logger().V(1).Info("inertia starting", "device", m.device, "velocities", velocities)
		ctx := m.context(EventManipulationInertiaStarting, delta, cumulative, velocities)
		ctx.Inertia = m.inertia
		m.owner.ManipulationInertiaStarting(ctx)
		if m.state == StateInertia {
			m.inertia.Start()
		}

	case m.state == StateStarted && removed,
		m.state == StateInertia && !m.inertia.IsRunning():
		m.Complete()

	case m.state == StateStarted && added,
		m.state == StateStarted && m.profile.Delta.Exceeded(delta),
		m.state == StateInertia:
		m.published = publishedState{
			cumulative: m.published.cumulative.Add(delta),
			timestamp:  now,
			contacts:   m.contactsCurrent,
		}
		Logger().V(2).Info("manipulation updated", "device", m.device, "delta", delta, "inertial", m.state == StateInertia)
		m.owner.ManipulationUpdated(m.context(EventManipulationUpdated, delta, cumulative, velocities))
	}
}

func (m *Manipulation) onInertiaTick() {
	m.notifyUpdate(false, false)
}

// cumulative returns the change from the origin frame to the current frame,
// or the simulated change while inertia is running.
func (m *Manipulation) cumulative() Delta {
	if m.state == StateInertia && m.inertia != nil {
		return m.inertia.Cumulative()
	}

	d := Identity
	from, to := m.origin.Center(), m.current.Center()
	if m.translateX {
		d.Translation.X = to.X - from.X
	}
	if m.translateY {
		d.Translation.Y = to.Y - from.Y
	}
	if m.origin.HasSecond() && m.current.HasSecond() {
		if m.rotate {
			d.Rotation = normalizeDegrees(m.current.Angle() - m.origin.Angle())
		}
		if m.scale && m.origin.Distance() > 0 {
			d.Scale = m.current.Distance() / m.origin.Distance()
			d.Expansion = m.current.Distance() - m.origin.Distance()
		}
	}
	return d
}

// velocities divides delta by the time since the last publish. A zero
// elapsed time or an empty delta returns the last non-zero sample, so that
// coalesced duplicate events do not look like a stop.
func (m *Manipulation) velocities(delta Delta, now time.Duration) Velocities {
	elapsed := float64(now-m.published.timestamp) / float64(time.Millisecond)
	if elapsed <= 0 || delta.IsEmpty() {
		return m.lastVelocities
	}
	v := Velocities{
		Linear:    Vec2{delta.Translation.X / elapsed, delta.Translation.Y / elapsed},
		Angular:   delta.Rotation / elapsed,
		Expansion: delta.Expansion / elapsed,
	}
	if !v.IsZero() {
		m.lastVelocities = v
	}
	return v
}

func (m *Manipulation) timestamp() time.Duration {
	if m.state == StateInertia && m.inertia != nil {
		return m.inertia.Timestamp()
	}
	return m.current.Timestamp()
}

// position is the center of the contacts, or the origin center moved by the
// simulated translation while inertia is running.
func (m *Manipulation) position(cumulative Delta) Vec2 {
	if m.state == StateInertia {
		return m.origin.Center().Add(cumulative.Translation)
	}
	return m.current.Center()
}

// isBeginningOfDrag reports whether the first contact qualifies as a drag.
// Mouse and pen only need to leave the tap range. Touch must also be held
// for the profile's hold delay: leaving the tap range before the delay is a
// jostle and disables drag for the rest of the episode.
func (m *Manipulation) isBeginningOfDrag() bool {
	if !m.isDragEnabled {
		return false
	}
	down := m.origin.First()
	current := m.current.First()
	out := m.profile.outOfTapRange(down.Position, current.Position)

	switch m.device {
	case DeviceMouse, DevicePen:
		return out
	default:
		inHold := current.Timestamp-down.Timestamp < m.profile.DragHoldDelay
		if inHold && out {
			m.isDragEnabled = false
			return false
		}
		return !inHold && out
	}
}

// shouldStartInertia tests the release velocity of the inertia-enabled axes
// against the inertia thresholds.
func (m *Manipulation) shouldStartInertia(v Velocities) bool {
	if m.isDrag || m.timers == nil {
		return false
	}
	a := m.inertiaAxes
	if !a.translateX && !a.translateY && !a.rotate && !a.expansion {
		return false
	}
	var masked Velocities
	if a.translateX {
		masked.Linear.X = v.Linear.X
	}
	if a.translateY {
		masked.Linear.Y = v.Linear.Y
	}
	if a.rotate {
		masked.Angular = v.Angular
	}
	if a.expansion {
		masked.Expansion = v.Expansion
	}
	return m.profile.Inertia.ExceededBy(masked)
}

// inertiaDirection keeps only the velocity components that are above their
// inertia threshold. Slower axes stay at their release value.
func (m *Manipulation) inertiaDirection(v Velocities) Velocities {
	t := m.profile.Inertia
	var d Velocities
	if math.Abs(v.Linear.X) > t.TranslateX {
		d.Linear.X = v.Linear.X
	}
	if math.Abs(v.Linear.Y) > t.TranslateY {
		d.Linear.Y = v.Linear.Y
	}
	if math.Abs(v.Angular) > t.Rotate {
		d.Angular = v.Angular
	}
	if math.Abs(v.Expansion) > t.Expansion {
		d.Expansion = v.Expansion
	}
	return d
}

func (m *Manipulation) context(t EventType, delta, cumulative Delta, v Velocities) ManipulationContext {
	return ManipulationContext{
		Type:            t,
		Device:          m.device,
		Position:        m.position(cumulative),
		Delta:           delta,
		Cumulative:      cumulative,
		Velocities:      v,
		IsInertial:      m.state == StateInertia,
		ContactsAtStart: m.contactsAtStart,
		ContactsCurrent: m.contactsCurrent,
	}
}

func (m *Manipulation) dragContext(t EventType) DragContext {
	c := m.current.First()
	ctx := DragContext{
		Type:            t,
		Device:          m.device,
		PointerID:       c.ID,
		Position:        c.Position,
		Start:           m.origin.First().Position,
		Delta:           c.Position.Sub(m.lastDragPosition),
		ContactsAtStart: m.contactsAtStart,
		ContactsCurrent: m.contactsCurrent,
	}
	m.lastDragPosition = c.Position
	return ctx
}
