package ototel

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.18.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/optistream/go-tracking-sdk/otevents"
	"github.com/optistream/go-tracking-sdk/subsystems"
)

const (
	tracerName = "github.com/optistream/go-tracking-sdk/ototel"

	sendOneSpanName   = "Optistream.SendOne"
	sendBatchSpanName = "Optistream.SendBatch"

	recordCountAttributeName = "optistream.record_count"
	realtimeAttributeName    = "optistream.realtime"
	eventNameAttributeName   = "optistream.event"
)

// TracingTransportBuilder is a builder for a transport decorator that records each delivery as a span.
//
// Obtain an instance of this type by calling TracingTransport(). After calling its methods to specify
// any desired custom settings, store it in the SDK configuration's Transport field.
type TracingTransportBuilder struct {
	inner          subsystems.ComponentConfigurer[otevents.EventTransport]
	tracerProvider trace.TracerProvider
}

// TracingTransport returns a configurable builder for a transport that delegates to the transport built
// by inner, recording a span for every delivery.
func TracingTransport(
	inner subsystems.ComponentConfigurer[otevents.EventTransport],
) *TracingTransportBuilder {
	return &TracingTransportBuilder{inner: inner}
}

// TracerProvider specifies the tracer provider to create spans with. If this is not set, the global
// provider from otel.GetTracerProvider is used at the time the transport is built.
func (b *TracingTransportBuilder) TracerProvider(provider trace.TracerProvider) *TracingTransportBuilder {
	b.tracerProvider = provider
	return b
}

// Build is called internally by the SDK.
func (b *TracingTransportBuilder) Build(clientContext subsystems.ClientContext) (otevents.EventTransport, error) {
	if b.inner == nil {
		return nil, errors.New("tracing transport requires a transport to wrap")
	}
	inner, err := b.inner.Build(clientContext)
	if err != nil {
		return nil, err
	}
	provider := b.tracerProvider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return tracingTransport{
		inner:  inner,
		tracer: provider.Tracer(tracerName, trace.WithInstrumentationVersion(Version)),
	}, nil
}

type tracingTransport struct {
	inner  otevents.EventTransport
	tracer trace.Tracer
}

func (t tracingTransport) SendOne(ctx context.Context, record otevents.WireRecord) (otevents.Response, error) {
	ctx, span := t.tracer.Start(ctx, sendOneSpanName, trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.Int(recordCountAttributeName, 1),
			attribute.Bool(realtimeAttributeName, true),
			attribute.String(eventNameAttributeName, record.Name),
		))
	defer span.End()

	resp, err := t.inner.SendOne(ctx, record)
	recordOutcome(span, resp, err)
	return resp, err
}

func (t tracingTransport) SendBatch(ctx context.Context, records []otevents.WireRecord) (otevents.Response, error) {
	ctx, span := t.tracer.Start(ctx, sendBatchSpanName, trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.Int(recordCountAttributeName, len(records)),
			attribute.Bool(realtimeAttributeName, false),
		))
	defer span.End()

	resp, err := t.inner.SendBatch(ctx, records)
	recordOutcome(span, resp, err)
	return resp, err
}

func recordOutcome(span trace.Span, resp otevents.Response, err error) {
	if err == nil {
		if resp.StatusCode != 0 {
			span.SetAttributes(semconv.HTTPStatusCodeKey.Int(resp.StatusCode))
		}
		span.SetStatus(codes.Ok, "")
		return
	}
	var te otevents.TransportError
	if errors.As(err, &te) && te.StatusCode != 0 {
		span.SetAttributes(semconv.HTTPStatusCodeKey.Int(te.StatusCode))
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
