package otevents

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
)

const (
	// DefaultRetryDelay is the default value for HTTPTransportConfig.RetryDelay.
	DefaultRetryDelay = time.Second

	eventSchemaHeader  = "X-Optistream-Event-Schema"
	payloadIDHeader    = "X-Optistream-Payload-ID"
	currentEventSchema = "1"
	batchURIPath       = "/v1/events"
	realtimeURIPath    = "/v1/events/realtime"
	maxResponseMessage = 200
)

// HTTPTransportConfig contains the parameters for NewHTTPEventTransport.
type HTTPTransportConfig struct {
	// Client is the HTTP client to use. If nil, http.DefaultClient is used.
	Client *http.Client
	// BaseURI is the base URI of the ingestion service, without a trailing slash.
	BaseURI string
	// Headers are added to every request.
	Headers http.Header
	// RetryDelay is the pause before the single retry of a recoverable failure. If zero,
	// DefaultRetryDelay is used.
	RetryDelay time.Duration
	// Loggers is the destination for log output.
	Loggers ldlog.Loggers
}

// HTTPEventTransport is the standard EventTransport. It posts batches as a JSON array and realtime
// records as a single JSON object.
type HTTPEventTransport struct {
	config HTTPTransportConfig
}

// NewHTTPEventTransport creates an HTTPEventTransport.
func NewHTTPEventTransport(config HTTPTransportConfig) *HTTPEventTransport {
	if config.Client == nil {
		config.Client = http.DefaultClient
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = DefaultRetryDelay
	}
	config.BaseURI = strings.TrimRight(config.BaseURI, "/")
	return &HTTPEventTransport{config: config}
}

// SendOne implements EventTransport.
func (t *HTTPEventTransport) SendOne(ctx context.Context, record WireRecord) (Response, error) {
	data, err := record.MarshalJSON()
	if err != nil {
		return Response{}, TransportError{Cause: fmt.Errorf("unable to serialize event: %w", err)}
	}
	return t.post(ctx, t.config.BaseURI+realtimeURIPath, data, fmt.Sprintf("realtime event %q", record.Name))
}

// SendBatch implements EventTransport.
func (t *HTTPEventTransport) SendBatch(ctx context.Context, records []WireRecord) (Response, error) {
	data, err := MarshalRecords(records)
	if err != nil {
		return Response{}, TransportError{Cause: fmt.Errorf("unable to serialize events: %w", err)}
	}
	return t.post(ctx, t.config.BaseURI+batchURIPath, data, fmt.Sprintf("%d events", len(records)))
}

func (t *HTTPEventTransport) post(ctx context.Context, uri string, data []byte, description string) (Response, error) {
	payloadUUID, _ := uuid.NewRandom()
	payloadID := payloadUUID.String() // if NewRandom somehow failed, we'll just proceed with an empty string

	t.config.Loggers.Debugf("Sending %s: %s", description, data)

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			t.config.Loggers.Warnf("Will retry posting %s after %s", description, t.config.RetryDelay)
			select {
			case <-time.After(t.config.RetryDelay):
			case <-ctx.Done():
				return Response{}, TransportError{Cause: ctx.Err()}
			}
		}
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, uri, bytes.NewReader(data))
		if reqErr != nil {
			return Response{}, TransportError{Cause: reqErr}
		}
		for k, vv := range t.config.Headers {
			for _, v := range vv {
				req.Header.Add(k, v)
			}
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(eventSchemaHeader, currentEventSchema)
		req.Header.Set(payloadIDHeader, payloadID)

		resp, respErr := t.config.Client.Do(req)

		var body []byte
		if resp != nil && resp.Body != nil {
			body, _ = io.ReadAll(resp.Body)
			_ = resp.Body.Close()
		}

		if respErr != nil {
			t.config.Loggers.Warnf("Unexpected error while sending %s: %s", description, respErr)
			lastErr = TransportError{Cause: respErr}
			continue
		}
		if err := checkForHTTPError(resp.StatusCode, uri); err != nil {
			lastErr = TransportError{StatusCode: resp.StatusCode, Cause: err}
			if isHTTPErrorRecoverable(resp.StatusCode) {
				t.config.Loggers.Warn(httpErrorMessage(resp.StatusCode, "posting "+description, "will retry"))
				continue
			}
			t.config.Loggers.Error(httpErrorMessage(resp.StatusCode, "posting "+description, ""))
			return Response{}, lastErr
		}
		return Response{StatusCode: resp.StatusCode, Message: responseMessage(resp.StatusCode, body, description)}, nil
	}
	return Response{}, lastErr
}

func responseMessage(statusCode int, body []byte, description string) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return fmt.Sprintf("Delivered %s (HTTP %d)", description, statusCode)
	}
	if len(text) > maxResponseMessage {
		text = text[:maxResponseMessage] + "..."
	}
	return fmt.Sprintf("Delivered %s (HTTP %d): %s", description, statusCode, text)
}
