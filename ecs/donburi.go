// Package ecs provides ECS adapters for the globe.
package ecs

import (
	"github.com/phanxgames/globe"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType is the Donburi event type for globe gesture events.
// Subscribe to this in your ECS systems to receive pan, pinch, zoom and
// marker click events.
var GestureEventType = events.NewEventType[globe.GestureEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Gesture events are published to GestureEventType and can be consumed
// with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) globe.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event globe.GestureEvent) {
	GestureEventType.Publish(s.world, event)
}
