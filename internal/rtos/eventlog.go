package rtos

import "math"

// VisualState is the per-record rendering hint consumed by the ASCII
// renderer. VisNone marks an annotation-only record (boosts, restores,
// mutex operations, releases, misses, preemptions).
type VisualState int

const (
	VisRunning VisualState = iota
	VisReady
	VisBlocked
	VisSuspended
	VisNone
)

func (v VisualState) String() string {
	switch v {
	case VisRunning:
		return "RUNNING"
	case VisReady:
		return "READY"
	case VisBlocked:
		return "BLOCKED"
	case VisSuspended:
		return "SUSPENDED"
	default:
		return "NONE"
	}
}

// Event is one append-only record: the tick it occurred at, the task it
// concerns (TaskID 0 and an empty TaskName for scheduler-wide
// annotations), the visual state, and a
// free-form annotation.
type Event struct {
	Tick       int
	TaskID     int
	TaskName   string
	Visual     VisualState
	Annotation string
}

const eventLogInitialCap = 64

// EventLog is an append-only sequence of Events. It grows geometrically
// rather than relying on an implicit slice grow, so the growth policy
// stays an explicit, documented contract.
type EventLog struct {
	records  []Event
	minTick  int
	maxTick  int
	anyEvent bool
}

// NewEventLog returns an empty log pre-sized to eventLogInitialCap.
func NewEventLog() *EventLog {
	return &EventLog{
		records: make([]Event, 0, eventLogInitialCap),
		minTick: math.MaxInt,
		maxTick: 0,
	}
}

// Append adds a record, growing capacity geometrically if needed, and
// updates MinTick/MaxTick.
func (l *EventLog) Append(tick int, taskID int, taskName string, state VisualState, annotation string) {
	if len(l.records) == cap(l.records) {
		newCap := cap(l.records) * 2
		if newCap == 0 {
			newCap = eventLogInitialCap
		}
		grown := make([]Event, len(l.records), newCap)
		copy(grown, l.records)
		l.records = grown
	}

	l.records = append(l.records, Event{
		Tick:       tick,
		TaskID:     taskID,
		TaskName:   taskName,
		Visual:     state,
		Annotation: annotation,
	})

	if tick < l.minTick {
		l.minTick = tick
	}
	if tick > l.maxTick {
		l.maxTick = tick
	}
	l.anyEvent = true
}

// Records returns the full record sequence in append order. Callers must
// not mutate the returned slice.
func (l *EventLog) Records() []Event {
	return l.records
}

// Len returns the number of recorded events.
func (l *EventLog) Len() int {
	return len(l.records)
}

// MinTick returns the earliest recorded tick, or 0 if the log is empty.
func (l *EventLog) MinTick() int {
	if !l.anyEvent {
		return 0
	}
	return l.minTick
}

// MaxTick returns the latest recorded tick, or 0 if the log is empty.
func (l *EventLog) MaxTick() int {
	return l.maxTick
}
