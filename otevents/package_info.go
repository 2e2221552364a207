// Package otevents contains the event model used by the tracking SDK: the Event type that
// applications report, the immutable WireRecord that is queued and delivered, and the
// EventBuilder and EventTransport contracts along with their default implementations.
//
// Most applications will not need to use this package directly except to construct events;
// delivery is managed by the client in the otclient package.
package otevents
