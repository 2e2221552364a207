package memqueue

import (
	"sync"

	"golang.org/x/exp/slices"

	"github.com/optistream/go-tracking-sdk/otevents"
)

// QueueStore is a memory based QueueStore implementation, backed by a slice guarded by a lock.
//
// Records do not survive a process restart; use one of the database integrations for that.
type QueueStore struct {
	records []otevents.WireRecord
	lock    sync.RWMutex
}

// NewQueueStore creates an empty QueueStore.
func NewQueueStore() *QueueStore {
	return &QueueStore{}
}

// Enqueue implements subsystems.QueueStore.
func (q *QueueStore) Enqueue(records []otevents.WireRecord) error {
	q.lock.Lock()
	q.records = append(q.records, records...)
	q.lock.Unlock()
	return nil
}

// First implements subsystems.QueueStore.
func (q *QueueStore) First(limit int) ([]otevents.WireRecord, error) {
	q.lock.RLock()
	defer q.lock.RUnlock()
	if limit > len(q.records) {
		limit = len(q.records)
	}
	if limit <= 0 {
		return nil, nil
	}
	return slices.Clone(q.records[:limit]), nil
}

// Remove implements subsystems.QueueStore.
func (q *QueueStore) Remove(records []otevents.WireRecord) error {
	if len(records) == 0 {
		return nil
	}
	q.lock.Lock()
	defer q.lock.Unlock()
	matched := otevents.MatchRecords(q.records, records)
	if len(matched) == 0 {
		return nil
	}
	remaining := make([]otevents.WireRecord, 0, len(q.records)-len(matched))
	next := 0
	for i, r := range q.records {
		if next < len(matched) && matched[next] == i {
			next++
			continue
		}
		remaining = append(remaining, r)
	}
	q.records = remaining
	return nil
}

// Count implements subsystems.QueueStore.
func (q *QueueStore) Count() (int, error) {
	q.lock.RLock()
	defer q.lock.RUnlock()
	return len(q.records), nil
}

// Close implements subsystems.QueueStore. The records are kept, so a closed store can still be read.
func (q *QueueStore) Close() error {
	return nil
}
