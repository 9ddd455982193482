// Package ecs bridges trellis drag events into a [Donburi] world.
//
// [NewDonburiSink] publishes every [trellis.DragEvent] as a typed Donburi
// event. Subscribe to [DragEventType] in your ECS systems to receive drag
// starts, hovers, drops and sortable reorders.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetEventSink(sink)
//
// Pass event kinds to only forward those:
//
//	scene.SetEventSink(ecs.NewDonburiSink(world, trellis.EventDrop, trellis.EventReorder))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
