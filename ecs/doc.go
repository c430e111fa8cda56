// Package ecs provides ECS adapters for gesture's event system.
//
// The primary adapter is [NewDonburiStore], which bridges manipulation and
// drag events into a [Donburi] world as typed events. Subscribe to
// [GestureEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	recognizer.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
