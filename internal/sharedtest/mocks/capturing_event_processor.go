package mocks

import (
	"sync"
	"time"

	"github.com/optistream/go-tracking-sdk/otevents"
)

// CapturingEventProcessor is a test implementation of EventProcessor that accumulates all calls.
type CapturingEventProcessor struct {
	Events        []otevents.Event
	DispatchCount int
	Intervals     []time.Duration
	Closed        bool
	lock          sync.Mutex
}

func (c *CapturingEventProcessor) ReportEvent(e otevents.Event) { //nolint:revive
	c.lock.Lock()
	c.Events = append(c.Events, e)
	c.lock.Unlock()
}

func (c *CapturingEventProcessor) DispatchNow() { //nolint:revive
	c.lock.Lock()
	c.DispatchCount++
	c.lock.Unlock()
}

func (c *CapturingEventProcessor) SetDispatchInterval(interval time.Duration) { //nolint:revive
	c.lock.Lock()
	c.Intervals = append(c.Intervals, interval)
	c.lock.Unlock()
}

func (c *CapturingEventProcessor) FlushBlocking(time.Duration) bool { //nolint:revive
	c.DispatchNow()
	return true
}

func (c *CapturingEventProcessor) Close() error { //nolint:revive
	c.lock.Lock()
	c.Closed = true
	c.lock.Unlock()
	return nil
}

// GetEvents returns a copy of the events received so far.
func (c *CapturingEventProcessor) GetEvents() []otevents.Event {
	c.lock.Lock()
	defer c.lock.Unlock()
	return append([]otevents.Event(nil), c.Events...)
}

// GetDispatchCount returns the number of DispatchNow calls so far.
func (c *CapturingEventProcessor) GetDispatchCount() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.DispatchCount
}

// GetIntervals returns the intervals passed to SetDispatchInterval so far.
func (c *CapturingEventProcessor) GetIntervals() []time.Duration {
	c.lock.Lock()
	defer c.lock.Unlock()
	return append([]time.Duration(nil), c.Intervals...)
}
