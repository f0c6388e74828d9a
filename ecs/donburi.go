package ecs

import (
	"github.com/phanxgames/kaboom"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ObjectEventType is the Donburi event type for kaboom object events.
var ObjectEventType = events.NewEventType[kaboom.ObjectEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world. Events
// are queued on ObjectEventType and delivered by ProcessEvents.
func NewDonburiStore(world donburi.World) kaboom.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event kaboom.ObjectEvent) {
	ObjectEventType.Publish(s.world, event)
}
