// Package ecs provides ECS adapters for gesture.
package ecs

import (
	"github.com/phanxgames/gesture"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType is the Donburi event type for gesture events.
// Subscribe to this in your ECS systems to receive manipulation and drag
// events.
var GestureEventType = events.NewEventType[gesture.Event]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Gesture events are published to GestureEventType and can be consumed
// with Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) gesture.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event gesture.Event) {
	GestureEventType.Publish(s.world, event)
}
