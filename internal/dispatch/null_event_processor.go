package dispatch

import (
	"time"

	"github.com/optistream/go-tracking-sdk/otevents"
	"github.com/optistream/go-tracking-sdk/subsystems"
)

type nullEventProcessor struct{}

// NewNullEventProcessor creates a no-op implementation of subsystems.EventProcessor.
func NewNullEventProcessor() subsystems.EventProcessor {
	return nullEventProcessor{}
}

func (n nullEventProcessor) ReportEvent(otevents.Event) {}

func (n nullEventProcessor) DispatchNow() {}

func (n nullEventProcessor) SetDispatchInterval(time.Duration) {}

func (n nullEventProcessor) FlushBlocking(time.Duration) bool { return true }

func (n nullEventProcessor) Close() error {
	return nil
}
