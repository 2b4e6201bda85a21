package core

// EventID is a canonical camera event.
type EventID uint8

const (
	EventMotion EventID = iota
	EventTamper
	EventLineCross
	EventIntrusion
	EventLoitering
	EventObjectCount
	EventNoMotion
	EventAudioException
	EventAlarmIn1
	EventAlarmIn2
	EventCount
)

var eventNames = [EventCount]string{
	"motion",
	"tamper",
	"line-cross",
	"intrusion",
	"loitering",
	"object-count",
	"no-motion",
	"audio-exception",
	"alarm-in-1",
	"alarm-in-2",
}

func (e EventID) String() string {
	if e < EventCount {
		return eventNames[e]
	}
	return "unknown"
}

func (e EventID) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// EventState is the state of one event at poll time.
type EventState uint8

const (
	EventInactive EventState = iota
	EventActive
)

func (s EventState) String() string {
	if s == EventActive {
		return "active"
	}
	return "inactive"
}

func (s EventState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// EventResult holds one poll. Parsers build a fresh value for every response.
type EventResult [EventCount]EventState

// Active lists the active events in canonical order.
func (r EventResult) Active() []EventID {
	var ids []EventID
	for i, s := range r {
		if s == EventActive {
			ids = append(ids, EventID(i))
		}
	}
	return ids
}

// Map returns the result keyed by event name.
func (r EventResult) Map() map[string]EventState {
	m := make(map[string]EventState, EventCount)
	for i, s := range r {
		m[EventID(i).String()] = s
	}
	return m
}
