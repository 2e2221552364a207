package otcomponents

import (
	"github.com/optistream/go-tracking-sdk/internal/dispatch"
	"github.com/optistream/go-tracking-sdk/subsystems"
)

type nullEventProcessorFactory struct{}

// NoEvents returns a configuration object that disables event delivery.
//
// Storing this in Config.Events causes the SDK to discard all reported events, regardless of any
// other configuration.
//
//	config := otclient.Config{
//	    Events: otcomponents.NoEvents(),
//	}
func NoEvents() subsystems.ComponentConfigurer[subsystems.EventProcessor] {
	return nullEventProcessorFactory{}
}

func (f nullEventProcessorFactory) Build(
	clientContext subsystems.ClientContext,
) (subsystems.EventProcessor, error) {
	return dispatch.NewNullEventProcessor(), nil
}

// IsNullEventProcessorFactory is an internal method used to tell the client that no events will
// be delivered, so that it does not need to create a queue store or an event transport.
func (f nullEventProcessorFactory) IsNullEventProcessorFactory() bool {
	return true
}
