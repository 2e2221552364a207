// Package ototel adds OpenTelemetry tracing to the delivery of Optistream events.
//
// TracingTransport wraps any event transport so that each delivery attempt is recorded as a span:
//
//	client, _ := otclient.MakeCustomClient("tenant-token", otclient.Config{
//	    Transport: ototel.TracingTransport(otcomponents.HTTPTransport()),
//	})
//
// Spans are created with the global tracer provider unless another one is configured.
package ototel

// Version is the current version string of the ototel package.
const Version = "1.0.0"
