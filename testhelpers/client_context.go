package testhelpers

import (
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	"github.com/optistream/go-tracking-sdk/otevents"
	"github.com/optistream/go-tracking-sdk/subsystems"
)

// SimpleClientContext is a reference implementation of subsystems.ClientContext for test code.
//
// The SDK uses the ClientContext interface to pass its configuration to subcomponents. Its standard
// implementation also contains other environment information that is only relevant to built-in SDK
// code. SimpleClientContext may be useful for external code to test a custom component.
type SimpleClientContext struct {
	subsystems.BasicClientContext
}

// NewSimpleClientContext creates a SimpleClientContext instance, with a standard HTTP configuration
// and a disabled logging configuration.
func NewSimpleClientContext(tenantToken string) SimpleClientContext {
	return SimpleClientContext{subsystems.BasicClientContext{
		TenantToken: tenantToken,
		Logging:     subsystems.LoggingConfiguration{Loggers: ldlog.NewDisabledLoggers()},
	}}
}

// WithHTTP returns a new SimpleClientContext based on the original one, but adding the specified
// HTTP configuration.
func (s SimpleClientContext) WithHTTP(httpConfig subsystems.HTTPConfiguration) SimpleClientContext {
	ret := s
	ret.HTTP = httpConfig
	return ret
}

// WithLogging returns a new SimpleClientContext based on the original one, but using the specified
// loggers.
func (s SimpleClientContext) WithLogging(loggers ldlog.Loggers) SimpleClientContext {
	ret := s
	ret.Logging = subsystems.LoggingConfiguration{Loggers: loggers}
	return ret
}

// WithEventComponents returns a new SimpleClientContext based on the original one, but providing the
// components that an EventProcessor is built from.
func (s SimpleClientContext) WithEventComponents(
	queue subsystems.QueueStore,
	builder otevents.EventBuilder,
	transport otevents.EventTransport,
) SimpleClientContext {
	ret := s
	ret.QueueStore, ret.EventBuilder, ret.EventTransport = queue, builder, transport
	return ret
}
