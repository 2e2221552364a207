package mocks

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/optistream/go-tracking-sdk/otevents"
)

// ErrFakeDelivery is the cause of the TransportErrors returned by MockTransport when it is told to fail.
var ErrFakeDelivery = errors.New("fake delivery failure") //nolint:gochecknoglobals

// TransportCall describes one call to a MockTransport.
type TransportCall struct {
	Realtime bool
	Records  []otevents.WireRecord
}

// MockTransport is a test implementation of EventTransport. Every call is reported on CallsCh. By
// default every call succeeds; outcomes can be scripted per path with FailNextBatch and
// FailNextRealtime, or for all calls with SetFailing.
type MockTransport struct {
	CallsCh chan TransportCall

	lock             sync.Mutex
	batchResults     []bool
	realtimeResults  []bool
	failing          bool
	gate             chan struct{}
	batchRecordsSent []otevents.WireRecord
}

// NewMockTransport creates a MockTransport.
func NewMockTransport() *MockTransport {
	return &MockTransport{CallsCh: make(chan TransportCall, 1000)}
}

// FailNextBatch makes the next n batch calls fail.
func (m *MockTransport) FailNextBatch(n int) {
	m.lock.Lock()
	defer m.lock.Unlock()
	for i := 0; i < n; i++ {
		m.batchResults = append(m.batchResults, false)
	}
}

// FailNextRealtime makes the next n realtime calls fail.
func (m *MockTransport) FailNextRealtime(n int) {
	m.lock.Lock()
	defer m.lock.Unlock()
	for i := 0; i < n; i++ {
		m.realtimeResults = append(m.realtimeResults, false)
	}
}

// SetFailing makes all calls fail until it is called again with false. Outcomes scripted with
// FailNextBatch or FailNextRealtime take precedence.
func (m *MockTransport) SetFailing(failing bool) {
	m.lock.Lock()
	m.failing = failing
	m.lock.Unlock()
}

// Block makes every later call wait, after it has been reported on CallsCh, until Release is called
// once for that call. It returns the function to release one call.
func (m *MockTransport) Block() (release func()) {
	gate := make(chan struct{}, 1000)
	m.lock.Lock()
	m.gate = gate
	m.lock.Unlock()
	return func() { gate <- struct{}{} }
}

// DeliveredBatchRecords returns all records from batch calls that succeeded, in order.
func (m *MockTransport) DeliveredBatchRecords() []otevents.WireRecord {
	m.lock.Lock()
	defer m.lock.Unlock()
	return append([]otevents.WireRecord(nil), m.batchRecordsSent...)
}

// SendOne implements EventTransport.
func (m *MockTransport) SendOne(ctx context.Context, record otevents.WireRecord) (otevents.Response, error) {
	return m.send(ctx, true, []otevents.WireRecord{record})
}

// SendBatch implements EventTransport.
func (m *MockTransport) SendBatch(ctx context.Context, records []otevents.WireRecord) (otevents.Response, error) {
	return m.send(ctx, false, records)
}

func (m *MockTransport) send(ctx context.Context, realtime bool, records []otevents.WireRecord) (
	otevents.Response, error) {
	copied := append([]otevents.WireRecord(nil), records...)
	m.lock.Lock()
	succeed := !m.failing
	results := &m.batchResults
	if realtime {
		results = &m.realtimeResults
	}
	if len(*results) > 0 {
		succeed = (*results)[0]
		*results = (*results)[1:]
	}
	gate := m.gate
	m.lock.Unlock()

	m.CallsCh <- TransportCall{Realtime: realtime, Records: copied}

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return otevents.Response{}, otevents.TransportError{Cause: ctx.Err()}
		}
	}
	if !succeed {
		return otevents.Response{}, otevents.TransportError{StatusCode: 503, Cause: ErrFakeDelivery}
	}
	if !realtime {
		m.lock.Lock()
		m.batchRecordsSent = append(m.batchRecordsSent, copied...)
		m.lock.Unlock()
	}
	return otevents.Response{StatusCode: 202, Message: fmt.Sprintf("accepted %d", len(copied))}, nil
}
