package slide

import (
	"github.com/akmonengine/slide/actor"
)

const (
	COLLISION_ENTER EventType = iota
	COLLISION_STAY
	COLLISION_EXIT
	GROUND_ENTER
	GROUND_EXIT
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// Collision events: the body touched the environment during the step
type CollisionEnterEvent struct {
	Body *actor.Body
}

func (e CollisionEnterEvent) Type() EventType { return COLLISION_ENTER }

type CollisionStayEvent struct {
	Body *actor.Body
}

func (e CollisionStayEvent) Type() EventType { return COLLISION_STAY }

type CollisionExitEvent struct {
	Body *actor.Body
}

func (e CollisionExitEvent) Type() EventType { return COLLISION_EXIT }

// Ground events: the body landed on, or left, the ground
type GroundEnterEvent struct {
	Body *actor.Body
}

func (e GroundEnterEvent) Type() EventType { return GROUND_ENTER }

type GroundExitEvent struct {
	Body *actor.Body
}

func (e GroundExitEvent) Type() EventType { return GROUND_EXIT }

// EventListener - callback for events
type EventListener func(event Event)

type contactState struct {
	colliding bool
	grounded  bool
}

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Contact state of each body at the previous step. A body never seen is neither colliding nor grounded.
	states map[*actor.Body]contactState
}

func NewEvents() Events {
	return Events{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 256),
		states:    make(map[*actor.Body]contactState),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]EventListener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordContacts compares each body's contact state with the previous step to detect Enter/Stay/Exit
func (e *Events) recordContacts(bodies []*actor.Body) {
	if e.states == nil {
		e.states = make(map[*actor.Body]contactState)
	}

	for _, body := range bodies {
		previous := e.states[body]

		switch {
		case body.Colliding && previous.colliding:
			e.buffer = append(e.buffer, CollisionStayEvent{Body: body})
		case body.Colliding:
			e.buffer = append(e.buffer, CollisionEnterEvent{Body: body})
		case previous.colliding:
			e.buffer = append(e.buffer, CollisionExitEvent{Body: body})
		}

		if body.Grounded && !previous.grounded {
			e.buffer = append(e.buffer, GroundEnterEvent{Body: body})
		} else if !body.Grounded && previous.grounded {
			e.buffer = append(e.buffer, GroundExitEvent{Body: body})
		}

		e.states[body] = contactState{colliding: body.Colliding, grounded: body.Grounded}
	}
}

// forget drops the tracked state of a removed body, without emitting exit events
func (e *Events) forget(body *actor.Body) {
	delete(e.states, body)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
