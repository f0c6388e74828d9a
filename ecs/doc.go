// Package ecs mirrors kaboom object events into a [Donburi] world.
//
// [NewDonburiStore] publishes every forwarded [kaboom.ObjectEvent] (add,
// destroy, grounded, headbump, animation and tween events) as a typed
// Donburi event. Subscribe to [ObjectEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	engine.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
