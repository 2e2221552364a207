package otevents

import (
	"github.com/launchdarkly/go-sdk-common/v3/ldtime"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// Event is an application or business event as reported by the application.
//
// An Event is turned into a WireRecord by an EventBuilder before it is queued.
type Event struct {
	// Name is the event name. It is required.
	Name string
	// Category overrides the record category. If empty, DefaultCategory is used.
	Category string
	// Properties is a JSON object of event parameters. Null is treated as an empty object.
	Properties ldvalue.Value
	// Realtime requests an immediate best-effort delivery in addition to normal queuing.
	Realtime bool
	// Timestamp is the time the event occurred. If zero, the build time is used.
	Timestamp ldtime.UnixMillisecondTime
}

// NewEvent creates an Event with the given name and properties.
func NewEvent(name string, properties ldvalue.Value) Event {
	return Event{Name: name, Properties: properties}
}

// NewRealtimeEvent creates an Event that will also be sent on the realtime fast path.
func NewRealtimeEvent(name string, properties ldvalue.Value) Event {
	return Event{Name: name, Properties: properties, Realtime: true}
}
