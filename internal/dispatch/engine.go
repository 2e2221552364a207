package dispatch

import (
	"sync"
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	"github.com/optistream/go-tracking-sdk/otevents"
	"github.com/optistream/go-tracking-sdk/subsystems"
)

const (
	// EventBatchLimit is the maximum number of records in one batch delivery.
	EventBatchLimit = 100

	// DefaultInboxCapacity is the default value for Config.InboxCapacity.
	DefaultInboxCapacity = 1000

	// DefaultSendTimeout is the default value for Config.SendTimeout.
	DefaultSendTimeout = 30 * time.Second
)

// Config contains the collaborators and parameters of an Engine.
type Config struct {
	// Queue holds records until they have been delivered. It is required.
	Queue subsystems.QueueStore
	// Builder turns events into records. It is required.
	Builder otevents.EventBuilder
	// Transport delivers records. It is required.
	Transport otevents.EventTransport
	// DispatchInterval is the delay between the end of one drain cycle and the next scheduled one.
	// Zero or a negative value disables scheduled drains.
	DispatchInterval time.Duration
	// SendTimeout bounds each transport call. If zero, DefaultSendTimeout is used.
	SendTimeout time.Duration
	// InboxCapacity is the number of requests that can be waiting for the engine. If zero,
	// DefaultInboxCapacity is used.
	InboxCapacity int
	// Loggers is the destination for log output.
	Loggers ldlog.Loggers

	onSchedule func(interval time.Duration)
}

// Engine is the standard implementation of subsystems.EventProcessor.
type Engine struct {
	inboxCh       chan engineMessage
	doneCh        chan struct{}
	inboxFullOnce sync.Once
	closeOnce     sync.Once
	loggers       ldlog.Loggers
}

// Payload of the inboxCh channel.
type engineMessage interface{}

type reportEventMessage struct {
	event otevents.Event
}

type dispatchNowMessage struct {
	replyCh chan struct{} // if non-nil, closed when the drain cycle settles
}

type setIntervalMessage struct {
	interval time.Duration
}

type syncMessage struct {
	replyCh chan struct{} // closed when no drain or transport call is in progress
}

type shutdownMessage struct {
	replyCh chan struct{}
}

// NewEngine creates an Engine and starts its goroutine.
func NewEngine(config Config) *Engine {
	if config.SendTimeout <= 0 {
		config.SendTimeout = DefaultSendTimeout
	}
	if config.InboxCapacity <= 0 {
		config.InboxCapacity = DefaultInboxCapacity
	}
	loggers := config.Loggers
	loggers.SetPrefix("DispatchEngine:")
	config.Loggers = loggers

	e := &Engine{
		inboxCh: make(chan engineMessage, config.InboxCapacity),
		doneCh:  make(chan struct{}),
		loggers: loggers,
	}
	d := newDispatcher(config)
	go d.runMainLoop(e.inboxCh, e.doneCh)
	return e
}

// ReportEvent implements subsystems.EventHandler.
func (e *Engine) ReportEvent(event otevents.Event) {
	e.postNonBlockingMessageToInbox(reportEventMessage{event: event})
}

// DispatchNow implements subsystems.EventHandler.
func (e *Engine) DispatchNow() {
	e.postNonBlockingMessageToInbox(dispatchNowMessage{})
}

// SetDispatchInterval implements subsystems.EventProcessor.
func (e *Engine) SetDispatchInterval(interval time.Duration) {
	e.postNonBlockingMessageToInbox(setIntervalMessage{interval: interval})
}

// FlushBlocking implements subsystems.EventProcessor.
func (e *Engine) FlushBlocking(timeout time.Duration) bool {
	m := dispatchNowMessage{replyCh: make(chan struct{})}
	return e.postAndWait(m, m.replyCh, timeout)
}

// Close implements io.Closer. It runs a final drain cycle, waits for it and for any realtime
// deliveries that are in progress, and stops the engine. It does not close the queue store.
//
// Close always returns nil. A delivery failure during the final drain is logged, and the records
// stay in the queue store.
func (e *Engine) Close() error {
	e.closeOnce.Do(func() {
		// These are posted with a blocking send, since they are needed for an orderly shutdown.
		select {
		case e.inboxCh <- dispatchNowMessage{}:
		case <-e.doneCh:
			return
		}
		m := shutdownMessage{replyCh: make(chan struct{})}
		select {
		case e.inboxCh <- m:
			<-m.replyCh
		case <-e.doneCh:
		}
	})
	return nil
}

func (e *Engine) waitUntilIdle(timeout time.Duration) bool {
	m := syncMessage{replyCh: make(chan struct{})}
	return e.postAndWait(m, m.replyCh, timeout)
}

func (e *Engine) postAndWait(m engineMessage, replyCh <-chan struct{}, timeout time.Duration) bool {
	if !e.postNonBlockingMessageToInbox(m) {
		return false
	}
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	select {
	case <-replyCh:
		return true
	case <-deadline.C:
		return false
	case <-e.doneCh:
		return false
	}
}

func (e *Engine) postNonBlockingMessageToInbox(m engineMessage) bool {
	select {
	case <-e.doneCh:
		return false
	default:
	}
	select {
	case e.inboxCh <- m:
		return true
	default:
	}
	// A full inbox means the engine is far behind, most likely because the queue store is slow.
	// Waiting for room would block the application, so the request is dropped instead; the warning
	// is only logged once.
	e.inboxFullOnce.Do(func() {
		e.loggers.Warn("Events are being reported faster than they can be processed; some events will be dropped")
	})
	return false
}
