package ecs

// EventType names what happened.
type EventType string

const (
	EventTakeoff        EventType = "takeoff"
	EventLanding        EventType = "landing"
	EventDisplayChanged EventType = "display_changed"
	EventSessionEnded   EventType = "session_ended"
	EventConfigReloaded EventType = "config_reloaded"
)

// Event is a generic ECS event payload.
type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

// EventQueue is a FIFO the host drains once per frame.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
