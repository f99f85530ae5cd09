package affinity

// EventType identifies a guard lifecycle event.
type EventType uint8

const (
	EventCreated EventType = iota
	EventReleased
	EventViolation
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventReleased:
		return "released"
	case EventViolation:
		return "violation"
	}
	return "unknown"
}

// Event describes a guard lifecycle event.
// Caller equals Owner except for violations.
type Event struct {
	Label  string
	Source string
	Owner  ThreadID
	Caller ThreadID
	Type   EventType
}

// Observer receives guard events. Violations are reported from the violating
// thread, so implementations must be safe for concurrent use.
type Observer interface {
	OnGuardEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// OnGuardEvent calls f(e).
func (f ObserverFunc) OnGuardEvent(e Event) { f(e) }
