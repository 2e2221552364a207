package otclient

import (
	"github.com/optistream/go-tracking-sdk/otevents"
	"github.com/optistream/go-tracking-sdk/subsystems"
)

// Config exposes advanced configuration options for OTClient.
//
// All of these settings are optional, so an empty Config struct is always valid. See the description of each
// field for the default behavior if it is not set.
//
// The Config fields are configurers for subcomponents of the SDK. The types of these fields are
// subsystems.ComponentConfigurer; the actual implementation types, which have methods for configuring
// that subcomponent, are normally provided by corresponding functions in the otcomponents package. For
// instance, to set the Events field to a configuration in which the SDK will deliver queued events every
// 10 seconds:
//
//	var config otclient.Config
//	config.Events = otcomponents.SendEvents().DispatchInterval(time.Second * 10)
//
// The interfaces are defined separately from the built-in component implementations because you could also
// define your own implementation, for custom SDK integrations.
type Config struct {
	// Sets the SDK's behavior regarding event queuing and delivery.
	//
	// If nil, the default is otcomponents.SendEvents(); see that method for an explanation of how to further
	// configure event delivery. To disable event delivery, set this to otcomponents.NoEvents().
	//
	//	// example: deliver queued events every 10 seconds
	//	config.Events = otcomponents.SendEvents().DispatchInterval(time.Second * 10)
	Events subsystems.ComponentConfigurer[subsystems.EventProcessor]

	// Sets the implementation of QueueStore that holds events until they have been delivered.
	//
	// If nil, the default is otcomponents.InMemoryQueue(), which loses undelivered events when the process
	// exits. The other options are database integrations, which keep undelivered events for the next
	// process that uses the same database.
	//
	//	// example: use Redis, with default properties
	//	import "github.com/optistream/go-tracking-sdk/otredis"
	//
	//	config.Queue = otredis.QueueStore()
	Queue subsystems.ComponentConfigurer[subsystems.QueueStore]

	// Sets the implementation of EventTransport that delivers events to the ingestion service.
	//
	// If nil, the default is otcomponents.HTTPTransport().
	//
	//	// example: trace every delivery with OpenTelemetry
	//	import "github.com/optistream/go-tracking-sdk/ototel"
	//
	//	config.Transport = ototel.TracingTransport(otcomponents.HTTPTransport())
	Transport subsystems.ComponentConfigurer[otevents.EventTransport]

	// Sets the implementation of EventBuilder that validates events and turns them into records.
	//
	// If nil, the default is otcomponents.DefaultEventBuilder().
	//
	//	// example: set the tenant ID and the application version
	//	config.EventBuilder = otcomponents.DefaultEventBuilder().Tenant(123).Version("2.1.0")
	EventBuilder subsystems.ComponentConfigurer[otevents.EventBuilder]

	// Provides configuration of the SDK's network connection behavior.
	//
	// If nil, the default is otcomponents.HTTPConfiguration(); see that method for an explanation of how to
	// further configure these options.
	HTTP subsystems.ComponentConfigurer[subsystems.HTTPConfiguration]

	// Provides configuration of the SDK's logging behavior.
	//
	// If nil, the default is otcomponents.Logging(); see that method for an explanation of how to
	// further configure logging behavior. The other option is otcomponents.NoLogging().
	//
	//	// example: enable debug logging
	//	config.Logging = otcomponents.Logging().MinLevel(ldlog.Debug)
	Logging subsystems.ComponentConfigurer[subsystems.LoggingConfiguration]

	// Sets a source of tenant settings, such as the dispatch interval, that may change while the client
	// is running.
	//
	// If nil, there is no settings source and the settings in Events are used for the life of the client.
	//
	//	// example: read settings from a file and reload it when it changes
	//	import (
	//	    "github.com/optistream/go-tracking-sdk/otfiledata"
	//	    "github.com/optistream/go-tracking-sdk/otfilewatch"
	//	)
	//
	//	config.Settings = otfiledata.SettingsSource().
	//	    FilePaths("settings.yaml").
	//	    Reloader(otfilewatch.WatchFiles)
	Settings subsystems.ComponentConfigurer[subsystems.SettingsSource]
}
