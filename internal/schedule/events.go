package schedule

import "time"

// EventKind names a widget lifecycle event.
type EventKind string

const (
	EventInit       EventKind = "init"
	EventView       EventKind = "view"
	EventAdd        EventKind = "add"
	EventEdit       EventKind = "edit"
	EventDelete     EventKind = "delete"
	EventBeforeLoad EventKind = "beforeLoad"
)

// Event is emitted by widgets on state transitions. Payload depends on the
// kind: beforeLoad carries the outgoing query, add carries a SlotProposal,
// view carries the new view name.
type Event struct {
	Kind     EventKind
	WidgetID string
	Payload  any
	At       time.Time
}

// Listener receives widget events. Listeners run synchronously on the
// emitting goroutine and must not block.
type Listener func(Event)
