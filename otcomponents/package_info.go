// Package otcomponents provides the configurable factories for the standard implementations of
// tracking SDK components.
//
// Some of the configuration options in otclient.Config affect the entire SDK, but others are
// specific to one area of functionality, such as how events are queued or delivered. Rather than
// put all of those options into the Config struct, the SDK uses a pattern where each component
// has its own configuration builder. For instance:
//
//	config := otclient.Config{
//	    Events:    otcomponents.SendEvents().DispatchInterval(10 * time.Second),
//	    Transport: otcomponents.HTTPTransport().BaseURI("https://my-ingestion-host"),
//	}
//
// Each builder implements subsystems.ComponentConfigurer for the component type it creates.
package otcomponents
