package engine

import (
	"github.com/lixenwraith/revenant/event"
)

// EventHandler processes specific event types
// Systems implement this interface to receive routed events
type EventHandler interface {
	// HandleEvent processes a single event
	// Called synchronously during the dispatch phase, before World.Update()
	HandleEvent(world *World, ev event.GameEvent)

	// EventTypes returns the event types this handler processes
	// The router uses this for registration
	EventTypes() []event.EventType
}

// EventRouter dispatches events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch (no concurrency issues with World mutation)
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
//   - All events consumed and dispatched before World.Update() runs
type EventRouter struct {
	handlers map[event.EventType][]EventHandler
	queue    *event.EventQueue
}

// NewEventRouter creates a router attached to the given queue
func NewEventRouter(queue *event.EventQueue) *EventRouter {
	return &EventRouter{
		handlers: make(map[event.EventType][]EventHandler),
		queue:    queue,
	}
}

// Register adds a handler for its declared event types
// A handler can register for multiple event types
// Multiple handlers can register for the same event type
func (r *EventRouter) Register(handler EventHandler) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// DispatchAll consumes all pending events and routes to handlers
// Events are processed in FIFO order
// All handlers for an event type are called before moving to the next event
//
// Must be called once per tick, BEFORE World.Update()
func (r *EventRouter) DispatchAll(world *World) {
	pending := r.queue.Consume()
	for _, ev := range pending {
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(world, ev)
		}
	}
}
