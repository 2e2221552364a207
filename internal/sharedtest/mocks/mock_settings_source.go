package mocks

import (
	"sync"
	"time"

	"github.com/optistream/go-tracking-sdk/subsystems"
)

// MockSettingsSource is a test implementation of SettingsSource that lets tests push settings to
// whatever sink it was started with.
type MockSettingsSource struct {
	// InitialInterval, if non-zero, is delivered to the sink by Start.
	InitialInterval time.Duration

	sink   subsystems.SettingsSink
	closed bool
	lock   sync.Mutex
}

// Start records the sink and delivers InitialInterval.
func (m *MockSettingsSource) Start(sink subsystems.SettingsSink) { //nolint:revive
	m.lock.Lock()
	m.sink = sink
	m.lock.Unlock()
	if m.InitialInterval != 0 {
		sink.SetDispatchInterval(m.InitialInterval)
	}
}

// PushInterval delivers a new dispatch interval to the sink, if the source has been started.
func (m *MockSettingsSource) PushInterval(interval time.Duration) {
	m.lock.Lock()
	sink := m.sink
	m.lock.Unlock()
	if sink != nil {
		sink.SetDispatchInterval(interval)
	}
}

// IsStarted returns true if Start has been called.
func (m *MockSettingsSource) IsStarted() bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.sink != nil
}

// Close marks the source as closed.
func (m *MockSettingsSource) Close() error { //nolint:revive
	m.lock.Lock()
	m.closed = true
	m.lock.Unlock()
	return nil
}

// IsClosed returns true if Close has been called.
func (m *MockSettingsSource) IsClosed() bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.closed
}
