package ototel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/optistream/go-tracking-sdk/internal/sharedtest"
	"github.com/optistream/go-tracking-sdk/internal/sharedtest/mocks"
	"github.com/optistream/go-tracking-sdk/otevents"
)

func configureMemoryExporter() (*tracetest.InMemoryExporter, *trace.TracerProvider) {
	exporter := tracetest.NewInMemoryExporter()
	provider := trace.NewTracerProvider(
		trace.WithSpanProcessor(trace.NewSimpleSpanProcessor(exporter)),
	)
	return exporter, provider
}

func makeTracingTransport(t *testing.T, provider *trace.TracerProvider) (otevents.EventTransport, *mocks.MockTransport) {
	inner := mocks.NewMockTransport()
	transport, err := TracingTransport(mocks.SingleComponentConfigurer[otevents.EventTransport]{Instance: inner}).
		TracerProvider(provider).
		Build(sharedtest.NewSimpleTestContext(""))
	require.NoError(t, err)
	return transport, inner
}

func attributeValue(attrs []attribute.KeyValue, key string) attribute.Value {
	set := attribute.NewSet(attrs...)
	value, _ := (&set).Value(attribute.Key(key))
	return value
}

func TestSendBatchCreatesSpan(t *testing.T) {
	exporter, provider := configureMemoryExporter()
	transport, inner := makeTracingTransport(t, provider)

	records := sharedtest.MakeRecords(3)
	_, err := transport.SendBatch(context.Background(), records)
	require.NoError(t, err)
	assert.Len(t, inner.DeliveredBatchRecords(), 3)

	spans := exporter.GetSpans().Snapshots()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, sendBatchSpanName, span.Name())
	assert.Equal(t, codes.Ok, span.Status().Code)
	assert.Equal(t, int64(3), attributeValue(span.Attributes(), recordCountAttributeName).AsInt64())
	assert.False(t, attributeValue(span.Attributes(), realtimeAttributeName).AsBool())
	assert.Equal(t, int64(202), attributeValue(span.Attributes(), "http.status_code").AsInt64())
}

func TestSendOneCreatesSpan(t *testing.T) {
	exporter, provider := configureMemoryExporter()
	transport, _ := makeTracingTransport(t, provider)

	_, err := transport.SendOne(context.Background(), sharedtest.MakeRecord("purchase"))
	require.NoError(t, err)

	spans := exporter.GetSpans().Snapshots()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, sendOneSpanName, span.Name())
	assert.True(t, attributeValue(span.Attributes(), realtimeAttributeName).AsBool())
	assert.Equal(t, "purchase", attributeValue(span.Attributes(), eventNameAttributeName).AsString())
}

func TestFailedDeliveryIsRecordedOnSpan(t *testing.T) {
	exporter, provider := configureMemoryExporter()
	transport, inner := makeTracingTransport(t, provider)
	inner.FailNextBatch(1)

	_, err := transport.SendBatch(context.Background(), sharedtest.MakeRecords(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, mocks.ErrFakeDelivery))

	spans := exporter.GetSpans().Snapshots()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Equal(t, int64(503), attributeValue(span.Attributes(), "http.status_code").AsInt64())
	require.Len(t, span.Events(), 1)
	assert.Equal(t, "exception", span.Events()[0].Name)
}

func TestSpanIsChildOfCallerSpan(t *testing.T) {
	exporter, provider := configureMemoryExporter()
	transport, _ := makeTracingTransport(t, provider)

	ctx, parent := provider.Tracer("test").Start(context.Background(), "parent")
	_, err := transport.SendBatch(ctx, sharedtest.MakeRecords(1))
	require.NoError(t, err)
	parent.End()

	spans := exporter.GetSpans().Snapshots()
	require.Len(t, spans, 2)
	assert.Equal(t, sendBatchSpanName, spans[0].Name())
	assert.Equal(t, parent.SpanContext().SpanID(), spans[0].Parent().SpanID())
}

func TestGlobalTracerProviderIsUsedByDefault(t *testing.T) {
	exporter, provider := configureMemoryExporter()
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	defer otel.SetTracerProvider(previous)

	transport, err := TracingTransport(mocks.SingleComponentConfigurer[otevents.EventTransport]{
		Instance: mocks.NewMockTransport(),
	}).Build(sharedtest.NewSimpleTestContext(""))
	require.NoError(t, err)

	_, err = transport.SendBatch(context.Background(), sharedtest.MakeRecords(1))
	require.NoError(t, err)
	assert.Len(t, exporter.GetSpans().Snapshots(), 1)
}

func TestBuildErrors(t *testing.T) {
	t.Run("no inner transport", func(t *testing.T) {
		_, err := TracingTransport(nil).Build(sharedtest.NewSimpleTestContext(""))
		assert.Error(t, err)
	})

	t.Run("inner transport error is returned", func(t *testing.T) {
		fakeErr := errors.New("sorry")
		_, err := TracingTransport(mocks.ComponentConfigurerThatReturnsError[otevents.EventTransport]{Err: fakeErr}).
			Build(sharedtest.NewSimpleTestContext(""))
		assert.Equal(t, fakeErr, err)
	})
}
