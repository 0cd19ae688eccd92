// Package ecs provides ECS adapters for the globe's gesture events.
//
// The primary adapter is [NewDonburiSink], which bridges gesture events
// (pan, pinch, zoom, marker click) into a [Donburi] world as typed events.
// Subscribe to [GestureEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	g.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
