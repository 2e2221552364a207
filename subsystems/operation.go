package subsystems

import (
	"github.com/optistream/go-tracking-sdk/otevents"
)

// OperationKind identifies the type of an Operation.
type OperationKind string

const (
	// ReportEventKind is the kind of ReportEventOperation.
	ReportEventKind OperationKind = "report"
	// DispatchNowKind is the kind of DispatchNowOperation.
	DispatchNowKind OperationKind = "dispatchNow"
)

// Operation is a generic request from the control plane that the client routes to the components
// that can accept it. Operations of a kind that no component accepts are ignored.
type Operation interface {
	Kind() OperationKind
}

// ReportEventOperation asks every event handler to record an event.
type ReportEventOperation struct {
	Event otevents.Event
}

// Kind returns ReportEventKind.
func (o ReportEventOperation) Kind() OperationKind { return ReportEventKind }

// DispatchNowOperation asks every event handler to deliver its queued records now.
type DispatchNowOperation struct{}

// Kind returns DispatchNowKind.
func (o DispatchNowOperation) Kind() OperationKind { return DispatchNowKind }
