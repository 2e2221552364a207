package mocks

import (
	"time"
)

// CapturingSettingsSink is a SettingsSink that records every interval it is given.
type CapturingSettingsSink struct {
	IntervalsCh chan time.Duration
}

// NewCapturingSettingsSink creates a CapturingSettingsSink.
func NewCapturingSettingsSink() *CapturingSettingsSink {
	return &CapturingSettingsSink{IntervalsCh: make(chan time.Duration, 100)}
}

func (s *CapturingSettingsSink) SetDispatchInterval(interval time.Duration) {
	s.IntervalsCh <- interval
}
