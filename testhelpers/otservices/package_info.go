// Package otservices provides HTTP handlers that simulate the behavior of the event ingestion service.
//
// This is mainly intended for use in the SDK's unit tests. It could also be useful in testing other
// applications that use the SDK if it is desirable to use real HTTP rather than other kinds of test
// fixtures.
package otservices
