package subsystems

import (
	"net/http"

	"github.com/optistream/go-tracking-sdk/otevents"
)

// ClientContext provides context information from the client when creating other components.
//
// This is passed as a parameter to the Build methods of component configurers. The actual implementation
// type may contain other properties that are only relevant to the built-in SDK components and are therefore
// not part of the public interface; this allows the SDK to add its own context information as needed
// without disturbing the public API. However, for test purposes you may use the simple struct type
// BasicClientContext.
type ClientContext interface {
	// GetTenantToken returns the configured tenant token.
	GetTenantToken() string

	// GetHTTP returns the configured HTTPConfiguration.
	GetHTTP() HTTPConfiguration

	// GetLogging returns the configured LoggingConfiguration.
	GetLogging() LoggingConfiguration

	// GetQueueStore returns the queue store that an EventProcessor should drain.
	//
	// This component is only available when the SDK is creating an EventProcessor. Otherwise the method
	// returns nil.
	GetQueueStore() QueueStore

	// GetEventBuilder returns the component that an EventProcessor uses to turn events into records.
	//
	// This component is only available when the SDK is creating an EventProcessor. Otherwise the method
	// returns nil.
	GetEventBuilder() otevents.EventBuilder

	// GetEventTransport returns the component that an EventProcessor uses to deliver records.
	//
	// This component is only available when the SDK is creating an EventProcessor. Otherwise the method
	// returns nil.
	GetEventTransport() otevents.EventTransport
}

// BasicClientContext is the basic implementation of the ClientContext interface, not including any
// private fields that the SDK may use for implementation details.
type BasicClientContext struct {
	TenantToken    string
	HTTP           HTTPConfiguration
	Logging        LoggingConfiguration
	QueueStore     QueueStore
	EventBuilder   otevents.EventBuilder
	EventTransport otevents.EventTransport
}

func (b BasicClientContext) GetTenantToken() string { return b.TenantToken } //nolint:revive

func (b BasicClientContext) GetHTTP() HTTPConfiguration { //nolint:revive
	ret := b.HTTP
	if ret.CreateHTTPClient == nil {
		ret.CreateHTTPClient = func() *http.Client {
			client := *http.DefaultClient
			return &client
		}
	}
	return ret
}

func (b BasicClientContext) GetLogging() LoggingConfiguration { return b.Logging } //nolint:revive

func (b BasicClientContext) GetQueueStore() QueueStore { return b.QueueStore } //nolint:revive

func (b BasicClientContext) GetEventBuilder() otevents.EventBuilder { return b.EventBuilder } //nolint:revive

func (b BasicClientContext) GetEventTransport() otevents.EventTransport { //nolint:revive
	return b.EventTransport
}
