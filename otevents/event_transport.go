package otevents

import (
	"context"
	"fmt"
)

// EventTransport delivers WireRecords to the ingestion service.
//
// Each call is atomic at the granularity of its argument: the whole batch is either accepted or
// not. Implementations may block; the dispatch engine never calls them from its own goroutine.
type EventTransport interface {
	// SendOne delivers a single record on the realtime path.
	SendOne(ctx context.Context, record WireRecord) (Response, error)
	// SendBatch delivers a batch of records in order.
	SendBatch(ctx context.Context, records []WireRecord) (Response, error)
}

// Response describes a successful delivery.
type Response struct {
	// StatusCode is the transport status, if the transport has one (for HTTP, the response status).
	StatusCode int
	// Message is a human-readable status message.
	Message string
}

// TransportError is returned by an EventTransport when delivery failed.
type TransportError struct {
	// StatusCode is the HTTP status returned by the service, or zero for a network error.
	StatusCode int
	// Cause is the underlying error.
	Cause error
}

func (e TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("event delivery failed: %s", e.Cause)
	}
	return fmt.Sprintf("event delivery failed with status %d: %s", e.StatusCode, e.Cause)
}

func (e TransportError) Unwrap() error {
	return e.Cause
}

// Recoverable returns false if the service rejected the request in a way that will not succeed
// on its own, such as an invalid tenant token.
func (e TransportError) Recoverable() bool {
	return e.StatusCode == 0 || isHTTPErrorRecoverable(e.StatusCode)
}
