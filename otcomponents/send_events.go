package otcomponents

import (
	"errors"
	"time"

	"github.com/optistream/go-tracking-sdk/internal/dispatch"
	"github.com/optistream/go-tracking-sdk/subsystems"
)

const (
	// DefaultDispatchInterval is the default value for EventProcessorBuilder.DispatchInterval.
	DefaultDispatchInterval = 30 * time.Second
	// DefaultInboxCapacity is the default value for EventProcessorBuilder.InboxCapacity.
	DefaultInboxCapacity = dispatch.DefaultInboxCapacity
	// DefaultSendTimeout is the default value for EventProcessorBuilder.SendTimeout.
	DefaultSendTimeout = dispatch.DefaultSendTimeout
)

// EventProcessorBuilder provides methods for configuring event queuing and delivery.
//
// See SendEvents for usage.
type EventProcessorBuilder struct {
	dispatchInterval time.Duration
	inboxCapacity    int
	sendTimeout      time.Duration
}

// SendEvents returns a configuration builder for event delivery.
//
// The default configuration has events enabled with default settings. If you want to customize this
// behavior, call this method to obtain a builder, change its properties with the EventProcessorBuilder
// methods, and store it in Config.Events:
//
//	config := otclient.Config{
//	    Events: otcomponents.SendEvents().DispatchInterval(10 * time.Second),
//	}
//
// To disable event delivery, use NoEvents instead of SendEvents.
func SendEvents() *EventProcessorBuilder {
	return &EventProcessorBuilder{
		dispatchInterval: DefaultDispatchInterval,
		inboxCapacity:    DefaultInboxCapacity,
		sendTimeout:      DefaultSendTimeout,
	}
}

// DispatchInterval sets the time between the end of one delivery of queued records and the start of
// the next scheduled one.
//
// Zero or a negative value disables scheduled delivery, so that records are only sent when the
// application calls DispatchNow or for realtime events. The interval can be changed later with
// the client's SetDispatchInterval.
//
// The default value is DefaultDispatchInterval.
func (b *EventProcessorBuilder) DispatchInterval(interval time.Duration) *EventProcessorBuilder {
	b.dispatchInterval = interval
	return b
}

// InboxCapacity sets the number of requests that can be waiting to be processed.
//
// Reporting an event never blocks the application. If events are reported faster than they can be
// written to the queue store and the inbox fills up, further events are discarded until there is room.
//
// The default value is DefaultInboxCapacity.
func (b *EventProcessorBuilder) InboxCapacity(capacity int) *EventProcessorBuilder {
	b.inboxCapacity = capacity
	return b
}

// SendTimeout sets the maximum time for one delivery attempt, including its retry.
//
// The default value is DefaultSendTimeout.
func (b *EventProcessorBuilder) SendTimeout(timeout time.Duration) *EventProcessorBuilder {
	b.sendTimeout = timeout
	return b
}

// Build is called internally by the SDK.
func (b *EventProcessorBuilder) Build(clientContext subsystems.ClientContext) (subsystems.EventProcessor, error) {
	queue := clientContext.GetQueueStore()
	builder := clientContext.GetEventBuilder()
	transport := clientContext.GetEventTransport()
	if queue == nil || builder == nil || transport == nil {
		return nil, errors.New("event processor requires a queue store, an event builder and an event transport")
	}
	return dispatch.NewEngine(dispatch.Config{
		Queue:            queue,
		Builder:          builder,
		Transport:        transport,
		DispatchInterval: b.dispatchInterval,
		SendTimeout:      b.sendTimeout,
		InboxCapacity:    b.inboxCapacity,
		Loggers:          clientContext.GetLogging().Loggers,
	}), nil
}
