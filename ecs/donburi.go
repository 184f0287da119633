package ecs

import (
	"github.com/phanxgames/pulltorefresh"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// RefreshEventType is the Donburi event type for pulltorefresh controller
// events. Subscribe to this in your ECS systems to react to refreshes.
var RefreshEventType = events.NewEventType[pulltorefresh.RefreshEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Controller events are published to RefreshEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) pulltorefresh.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event pulltorefresh.RefreshEvent) {
	RefreshEventType.Publish(s.world, event)
}
