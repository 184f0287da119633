// Package ecs provides ECS adapters for pulltorefresh's event system.
//
// The primary adapter is [NewDonburiStore], which bridges controller events
// (state changes, refresh triggers, offset changes, gesture and interception
// changes) into a [Donburi] world as typed events. Subscribe to
// [RefreshEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	ctrl.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
