package otclient

import (
	"errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	"github.com/optistream/go-tracking-sdk/internal"
	"github.com/optistream/go-tracking-sdk/internal/router"
	"github.com/optistream/go-tracking-sdk/otcomponents"
	"github.com/optistream/go-tracking-sdk/otevents"
	"github.com/optistream/go-tracking-sdk/subsystems"
)

// Version is the SDK version.
const Version = internal.SDKVersion

// OTClient is the Optistream tracking client.
//
// Create it with MakeClient or MakeCustomClient. An application should use a single OTClient for its
// whole lifetime and call Close before exiting, so that queued events get a final chance to be
// delivered.
type OTClient struct {
	loggers        ldlog.Loggers
	queue          subsystems.QueueStore
	eventBuilder   otevents.EventBuilder
	eventProcessor subsystems.EventProcessor
	settingsSource subsystems.SettingsSource
	router         *router.Router
	closed         atomic.Bool
}

// ErrClientClosed is returned by methods that cannot be used after Close.
var ErrClientClosed = errors.New("client has been closed")

type nullEventProcessorFactoryDescription interface {
	IsNullEventProcessorFactory() bool
}

func isNullEventProcessorFactory(f subsystems.ComponentConfigurer[subsystems.EventProcessor]) bool {
	if nf, ok := f.(nullEventProcessorFactoryDescription); ok {
		return nf.IsNullEventProcessorFactory()
	}
	return false
}

// MakeClient creates a new client instance that connects to the Optistream ingestion service with a
// default configuration.
//
// For advanced configuration options, use MakeCustomClient.
//
// The tenant token is sent with every delivery as the Authorization header.
func MakeClient(tenantToken string) (*OTClient, error) {
	return MakeCustomClient(tenantToken, Config{})
}

// MakeCustomClient creates a new client instance that connects to the Optistream ingestion service,
// using a custom configuration.
//
// An error is returned if any component cannot be created, for instance because of an invalid HTTP
// option. In that case any components that were already created are closed again.
func MakeCustomClient(tenantToken string, config Config) (*OTClient, error) {
	clientContext, err := newClientContextFromConfig(tenantToken, config)
	if err != nil {
		return nil, err
	}

	loggers := clientContext.GetLogging().Loggers
	loggers.Infof("Starting Optistream client %s", Version)

	client := &OTClient{loggers: loggers}

	if err := client.buildComponents(config, clientContext); err != nil {
		loggers.Errorf("Optistream client initialization failed: %s", err)
		_ = client.closeComponents()
		return nil, err
	}

	client.router = router.NewRouter(loggers, client.eventProcessor)
	if client.settingsSource != nil {
		client.settingsSource.Start(client.eventProcessor)
	}
	return client, nil
}

func (client *OTClient) buildComponents(config Config, clientContext subsystems.BasicClientContext) error {
	var err error

	eventBuilderFactory := config.EventBuilder
	if eventBuilderFactory == nil {
		eventBuilderFactory = otcomponents.DefaultEventBuilder()
	}
	if client.eventBuilder, err = buildComponent("event builder", eventBuilderFactory, clientContext); err != nil {
		return err
	}

	eventsFactory := config.Events
	if eventsFactory == nil {
		eventsFactory = otcomponents.SendEvents()
	}
	if !isNullEventProcessorFactory(eventsFactory) {
		queueFactory := config.Queue
		if queueFactory == nil {
			queueFactory = otcomponents.InMemoryQueue()
		}
		if client.queue, err = buildComponent("queue store", queueFactory, clientContext); err != nil {
			return err
		}

		transportFactory := config.Transport
		if transportFactory == nil {
			transportFactory = otcomponents.HTTPTransport()
		}
		var transport otevents.EventTransport
		if transport, err = buildComponent("event transport", transportFactory, clientContext); err != nil {
			return err
		}

		clientContext.QueueStore = client.queue
		clientContext.EventBuilder = client.eventBuilder
		clientContext.EventTransport = transport
	}
	if client.eventProcessor, err = buildComponent("event processor", eventsFactory, clientContext); err != nil {
		return err
	}

	if config.Settings != nil {
		clientContext.QueueStore, clientContext.EventBuilder, clientContext.EventTransport = nil, nil, nil
		if client.settingsSource, err = buildComponent("settings source", config.Settings, clientContext); err != nil {
			return err
		}
	}
	return nil
}

// ReportEvent records an application event.
//
// The event is validated and queued on the client's own goroutine, so this method never blocks on
// I/O. An invalid event is logged and dropped. If the event is marked as realtime, the client also
// attempts to deliver it immediately; if that fails, it is delivered with the next batch.
func (client *OTClient) ReportEvent(event otevents.Event) {
	if client.closed.Load() {
		return
	}
	client.eventProcessor.ReportEvent(event)
}

// DispatchNow requests an immediate delivery of all queued events.
//
// Delivery happens asynchronously. If a delivery is already in progress, the request has no effect.
// To wait for delivery, use FlushBlocking.
func (client *OTClient) DispatchNow() {
	if client.closed.Load() {
		return
	}
	client.eventProcessor.DispatchNow()
}

// FlushBlocking delivers all queued events and waits until delivery has finished or failed, or the
// timeout has elapsed. It returns false if the timeout elapsed or the client is closed.
//
// This is mainly useful in short-lived processes, such as command-line tools, that want to be sure
// their events have been delivered before doing anything else.
func (client *OTClient) FlushBlocking(timeout time.Duration) bool {
	if client.closed.Load() {
		return false
	}
	return client.eventProcessor.FlushBlocking(timeout)
}

// SetDispatchInterval changes the time between scheduled deliveries. The current schedule is replaced
// by one using the new interval. Zero or a negative value disables scheduled delivery.
func (client *OTClient) SetDispatchInterval(interval time.Duration) {
	if client.closed.Load() {
		return
	}
	client.eventProcessor.SetDispatchInterval(interval)
}

// SetUserID sets the customer ID that is attached to every event reported after this call.
//
// An empty ID, or a placeholder such as "null", "none" or "undefined", is logged and ignored, and the
// previous ID stays in effect. Setting the ID that is already in use does nothing. This also has no
// effect if the configured EventBuilder does not support identities.
func (client *OTClient) SetUserID(userID string) {
	if client.closed.Load() {
		return
	}
	ia, ok := client.eventBuilder.(otevents.IdentityAware)
	if !ok {
		client.loggers.Warn("The configured event builder does not support user IDs; SetUserID has no effect")
		return
	}
	if err := ia.SetCustomerID(userID); err != nil {
		client.loggers.Warnf("Ignoring user ID: %s", err)
	}
}

// Handle routes a generic operation to every component that accepts it. Operations of a kind that
// no component accepts are ignored.
func (client *OTClient) Handle(op subsystems.Operation) {
	if client.closed.Load() {
		return
	}
	client.router.Handle(op)
}

// PendingEventCount returns the number of events in the queue that have not been delivered yet.
//
// Events that were reported very recently may not have been queued yet. If events are disabled, it
// always returns zero.
func (client *OTClient) PendingEventCount() (int, error) {
	if client.closed.Load() {
		return 0, ErrClientClosed
	}
	if client.queue == nil {
		return 0, nil
	}
	return client.queue.Count()
}

// Close shuts down the client.
//
// It stops any settings source, makes a final attempt to deliver queued events and waits for any
// deliveries in progress, and then closes the queue store. Events that are still queued at that point
// remain in a durable queue store for the next process. After Close, the client discards all events.
func (client *OTClient) Close() error {
	if client.closed.Swap(true) {
		return nil
	}
	client.loggers.Info("Closing Optistream client")
	return client.closeComponents()
}

func (client *OTClient) closeComponents() error {
	var errs []error
	for _, c := range []io.Closer{client.settingsSource, client.eventProcessor, client.queue} {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
