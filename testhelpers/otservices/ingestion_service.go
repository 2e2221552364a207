package otservices

import (
	"io"
	"net/http"

	"github.com/launchdarkly/go-test-helpers/v3/httphelpers"

	"github.com/optistream/go-tracking-sdk/otevents"
)

const (
	// BatchPath is the path that batches of records are posted to.
	BatchPath = "/v1/events"
	// RealtimePath is the path that realtime records are posted to.
	RealtimePath = "/v1/events/realtime"
)

// IngestionServiceHandler creates an HTTP handler to mimic the ingestion service. It returns a 202 status
// for POSTs to the batch and realtime endpoints, and 404 for all other requests.
func IngestionServiceHandler() http.Handler {
	accepted := httphelpers.HandlerWithStatus(http.StatusAccepted)
	return httphelpers.HandlerForPath(BatchPath, postOnly(accepted),
		httphelpers.HandlerForPath(RealtimePath, postOnly(accepted), httphelpers.HandlerWithStatus(http.StatusNotFound)))
}

func postOnly(h http.Handler) http.Handler {
	return httphelpers.HandlerForMethod(http.MethodPost, h, httphelpers.HandlerWithStatus(http.StatusMethodNotAllowed))
}

// Payload is one request body received by a RecordingIngestionService, decoded into records.
type Payload struct {
	Realtime bool
	Records  []otevents.WireRecord
	Header   http.Header
}

// RecordingIngestionService is an ingestion service simulator that decodes each request body and
// reports it on PayloadsCh. Requests that cannot be decoded get a 400 status.
type RecordingIngestionService struct {
	// PayloadsCh receives every decoded payload. It is buffered, so tests only need to read the
	// payloads they are interested in.
	PayloadsCh chan Payload
	status     int
}

// NewRecordingIngestionService creates a RecordingIngestionService that returns a 202 status.
func NewRecordingIngestionService() *RecordingIngestionService {
	return &RecordingIngestionService{PayloadsCh: make(chan Payload, 1000), status: http.StatusAccepted}
}

// Handler returns the HTTP handler for the service.
func (s *RecordingIngestionService) Handler() http.Handler {
	return httphelpers.HandlerForPath(BatchPath, postOnly(s.recordingHandler(false)),
		httphelpers.HandlerForPath(RealtimePath, postOnly(s.recordingHandler(true)),
			httphelpers.HandlerWithStatus(http.StatusNotFound)))
}

func (s *RecordingIngestionService) recordingHandler(realtime bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		payload := Payload{Realtime: realtime, Header: r.Header.Clone()}
		if realtime {
			var record otevents.WireRecord
			err = record.UnmarshalJSON(body)
			payload.Records = []otevents.WireRecord{record}
		} else {
			payload.Records, err = otevents.UnmarshalRecords(body)
		}
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.PayloadsCh <- payload
		w.WriteHeader(s.status)
	})
}
