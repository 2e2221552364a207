package mocks

import (
	"sync"

	"github.com/optistream/go-tracking-sdk/internal/memqueue"
	"github.com/optistream/go-tracking-sdk/otevents"
	"github.com/optistream/go-tracking-sdk/subsystems"
)

// MockQueueStore is a test implementation of QueueStore that keeps records in memory and can be told
// to fail any of its operations.
type MockQueueStore struct {
	subsystems.QueueStore
	EnqueueErr error
	FirstErr   error
	RemoveErr  error
	CountErr   error
	Closed     bool
	lock       sync.Mutex
}

// NewMockQueueStore creates a MockQueueStore, optionally already containing some records.
func NewMockQueueStore(records ...otevents.WireRecord) *MockQueueStore {
	store := memqueue.NewQueueStore()
	_ = store.Enqueue(records)
	return &MockQueueStore{QueueStore: store}
}

// SetErrors changes the errors that the operations will return. Nil means the operation succeeds.
func (m *MockQueueStore) SetErrors(enqueueErr, firstErr, removeErr, countErr error) {
	m.lock.Lock()
	m.EnqueueErr, m.FirstErr, m.RemoveErr, m.CountErr = enqueueErr, firstErr, removeErr, countErr
	m.lock.Unlock()
}

// Enqueue implements QueueStore.
func (m *MockQueueStore) Enqueue(records []otevents.WireRecord) error {
	m.lock.Lock()
	err := m.EnqueueErr
	m.lock.Unlock()
	if err != nil {
		return err
	}
	return m.QueueStore.Enqueue(records)
}

// First implements QueueStore.
func (m *MockQueueStore) First(limit int) ([]otevents.WireRecord, error) {
	m.lock.Lock()
	err := m.FirstErr
	m.lock.Unlock()
	if err != nil {
		return nil, err
	}
	return m.QueueStore.First(limit)
}

// Remove implements QueueStore.
func (m *MockQueueStore) Remove(records []otevents.WireRecord) error {
	m.lock.Lock()
	err := m.RemoveErr
	m.lock.Unlock()
	if err != nil {
		return err
	}
	return m.QueueStore.Remove(records)
}

// Count implements QueueStore.
func (m *MockQueueStore) Count() (int, error) {
	m.lock.Lock()
	err := m.CountErr
	m.lock.Unlock()
	if err != nil {
		return 0, err
	}
	return m.QueueStore.Count()
}

// Close implements QueueStore.
func (m *MockQueueStore) Close() error {
	m.lock.Lock()
	m.Closed = true
	m.lock.Unlock()
	return m.QueueStore.Close()
}

// IsClosed returns true if Close has been called.
func (m *MockQueueStore) IsClosed() bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.Closed
}

// Snapshot returns all records currently in the queue, oldest first.
func (m *MockQueueStore) Snapshot() []otevents.WireRecord {
	records, _ := m.QueueStore.First(1 << 30)
	return records
}
