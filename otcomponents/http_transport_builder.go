package otcomponents

import (
	"errors"
	"time"

	"github.com/optistream/go-tracking-sdk/otevents"
	"github.com/optistream/go-tracking-sdk/subsystems"
)

// DefaultEventsBaseURI is the default value for HTTPTransportBuilder.BaseURI.
const DefaultEventsBaseURI = "https://events.optistream.example"

// HTTPTransportBuilder provides methods for configuring delivery of records to the ingestion service.
//
// See HTTPTransport for usage.
type HTTPTransportBuilder struct {
	baseURI    string
	retryDelay time.Duration
}

// HTTPTransport returns a configuration builder for the standard event transport, which posts records
// to the ingestion service over HTTP.
//
//	config := otclient.Config{
//	    Transport: otcomponents.HTTPTransport().BaseURI("https://my-ingestion-host"),
//	}
//
// Headers, timeouts and proxy settings for these requests come from Config.HTTP.
func HTTPTransport() *HTTPTransportBuilder {
	return &HTTPTransportBuilder{
		baseURI:    DefaultEventsBaseURI,
		retryDelay: otevents.DefaultRetryDelay,
	}
}

// BaseURI sets the base URI of the ingestion service. The default is DefaultEventsBaseURI.
func (b *HTTPTransportBuilder) BaseURI(baseURI string) *HTTPTransportBuilder {
	if baseURI == "" {
		b.baseURI = DefaultEventsBaseURI
	} else {
		b.baseURI = baseURI
	}
	return b
}

// RetryDelay sets the pause before the transport repeats a request that failed with a recoverable
// error. Each request is retried at most once. The default is otevents.DefaultRetryDelay.
func (b *HTTPTransportBuilder) RetryDelay(retryDelay time.Duration) *HTTPTransportBuilder {
	b.retryDelay = retryDelay
	return b
}

// Build is called internally by the SDK.
func (b *HTTPTransportBuilder) Build(clientContext subsystems.ClientContext) (otevents.EventTransport, error) {
	if clientContext.GetTenantToken() == "" {
		return nil, errors.New("a tenant token is required for event delivery")
	}
	loggers := clientContext.GetLogging().Loggers
	loggers.SetPrefix("EventTransport:")
	httpConfig := clientContext.GetHTTP()
	return otevents.NewHTTPEventTransport(otevents.HTTPTransportConfig{
		Client:     httpConfig.CreateHTTPClient(),
		BaseURI:    b.baseURI,
		Headers:    httpConfig.DefaultHeaders,
		RetryDelay: b.retryDelay,
		Loggers:    loggers,
	}), nil
}
