package subsystems

import (
	"io"
	"time"

	"github.com/optistream/go-tracking-sdk/otevents"
)

// EventHandler is the capability of a component that accepts events and dispatch requests.
type EventHandler interface {
	// ReportEvent records an event. It never blocks on I/O and never returns an error to the caller;
	// an invalid event is logged and dropped.
	ReportEvent(event otevents.Event)

	// DispatchNow requests an immediate delivery of queued records. If a delivery is already in
	// progress, the request has no effect.
	DispatchNow()
}

// EventProcessor is an interface for the component that queues events and delivers them.
//
// The standard implementation is created by otcomponents.SendEvents().
type EventProcessor interface {
	EventHandler
	io.Closer

	// SetDispatchInterval changes the interval between scheduled deliveries. The pending schedule
	// is replaced. Zero or a negative value disables scheduled delivery.
	SetDispatchInterval(interval time.Duration)

	// FlushBlocking requests an immediate delivery and waits until the queue has been drained or the
	// delivery has failed, or the timeout has elapsed. It returns false if the timeout elapsed.
	FlushBlocking(timeout time.Duration) bool
}
