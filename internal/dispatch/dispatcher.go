package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	"github.com/optistream/go-tracking-sdk/otevents"
)

// dispatcher holds the state of an Engine. Everything in it is only accessed from the goroutine
// running runMainLoop.
type dispatcher struct {
	config        Config
	loggers       ldlog.Loggers
	interval      time.Duration
	timer         *time.Timer
	timerCh       <-chan time.Time
	isDispatching bool
	inFlight      int
	closing       bool
	resultCh      chan sendResult
	drainWaiters  []chan struct{}
	idleWaiters   []chan struct{}
}

// sendResult is the outcome of one transport call, posted back to the main loop.
type sendResult struct {
	records  []otevents.WireRecord
	realtime bool
	response otevents.Response
	err      error
}

func newDispatcher(config Config) *dispatcher {
	return &dispatcher{
		config:   config,
		loggers:  config.Loggers,
		interval: config.DispatchInterval,
		resultCh: make(chan sendResult),
	}
}

func (d *dispatcher) runMainLoop(inboxCh <-chan engineMessage, doneCh chan<- struct{}) {
	defer close(doneCh)

	var shutdownReplyCh chan struct{}
	d.scheduleNext()

	for {
		select {
		case message := <-inboxCh:
			switch m := message.(type) {
			case reportEventMessage:
				d.reportEvent(m.event)
			case dispatchNowMessage:
				if m.replyCh != nil {
					d.drainWaiters = append(d.drainWaiters, m.replyCh)
				}
				d.dispatch()
			case setIntervalMessage:
				d.interval = m.interval
				d.scheduleNext()
			case syncMessage:
				d.idleWaiters = append(d.idleWaiters, m.replyCh)
			case shutdownMessage:
				d.closing = true
				d.stopTimer()
				shutdownReplyCh = m.replyCh
				inboxCh = nil // anything posted after this is ignored
			}
		case result := <-d.resultCh:
			d.inFlight--
			if result.realtime {
				d.handleRealtimeResult(result)
			} else {
				d.handleBatchResult(result)
			}
		case <-d.timerCh:
			d.timerCh = nil
			d.dispatch()
		}

		if d.isDispatching || d.inFlight > 0 {
			continue
		}
		releaseWaiters(&d.idleWaiters)
		if d.closing {
			close(shutdownReplyCh)
			return
		}
	}
}

func (d *dispatcher) reportEvent(event otevents.Event) {
	record, err := d.config.Builder.Build(event)
	if err != nil {
		d.loggers.Errorf("Dropping event: %s", err)
		return
	}
	if err := d.config.Queue.Enqueue([]otevents.WireRecord{record}); err != nil {
		d.loggers.Errorf("Unable to queue event %q, it will be dropped: %s", event.Name, err)
		return
	}
	if event.Realtime {
		d.startSend(sendResult{records: []otevents.WireRecord{record}, realtime: true},
			func(ctx context.Context) (otevents.Response, error) {
				return d.config.Transport.SendOne(ctx, record)
			})
	}
}

func (d *dispatcher) handleRealtimeResult(result sendResult) {
	record := result.records[0]
	if result.err != nil {
		d.loggers.Warnf("Realtime delivery of event %q failed, it will be sent with the next batch: %s",
			record.Name, result.err)
		return
	}
	d.logResponse(result.response)
	if err := d.config.Queue.Remove(result.records); err != nil {
		d.loggers.Errorf("Unable to remove realtime event %q from the queue: %s", record.Name, err)
	}
}

// dispatch starts a drain cycle, unless one is already running or there is nothing to send.
func (d *dispatcher) dispatch() {
	if d.isDispatching {
		d.loggers.Debug("Already dispatching events, ignoring request")
		return
	}
	count, err := d.config.Queue.Count()
	if err != nil {
		d.loggers.Errorf("Unable to read the dispatch queue: %s", err)
		d.settle()
		return
	}
	if count == 0 {
		d.loggers.Debug("No need to dispatch. Dispatch queue is empty.")
		d.settle()
		return
	}
	d.loggers.Info("Start dispatching events")
	d.isDispatching = true
	d.sendNextBatch()
}

func (d *dispatcher) sendNextBatch() {
	records, err := d.config.Queue.First(EventBatchLimit)
	if err != nil {
		d.loggers.Errorf("Unable to read events from the dispatch queue: %s", err)
		d.settle()
		return
	}
	if len(records) == 0 {
		d.loggers.Debug("Finished dispatching events")
		d.settle()
		return
	}
	if len(records) > EventBatchLimit {
		records = records[:EventBatchLimit]
	}
	d.startSend(sendResult{records: records}, func(ctx context.Context) (otevents.Response, error) {
		return d.config.Transport.SendBatch(ctx, records)
	})
}

func (d *dispatcher) handleBatchResult(result sendResult) {
	if result.err != nil {
		d.loggers.Errorf("Failed to dispatch %d events, they will be retried at the next dispatch: %s",
			len(result.records), result.err)
		d.settle()
		return
	}
	d.logResponse(result.response)
	if err := d.config.Queue.Remove(result.records); err != nil {
		d.loggers.Errorf("Unable to remove dispatched events from the queue: %s", err)
		d.settle()
		return
	}
	d.sendNextBatch()
}

// settle returns the engine to idle and arms the timer for the next drain cycle.
func (d *dispatcher) settle() {
	d.isDispatching = false
	d.scheduleNext()
	releaseWaiters(&d.drainWaiters)
}

func (d *dispatcher) scheduleNext() {
	d.stopTimer()
	if d.interval <= 0 || d.closing {
		return
	}
	d.timer = time.NewTimer(d.interval)
	d.timerCh = d.timer.C
	if d.config.onSchedule != nil {
		d.config.onSchedule(d.interval)
	}
}

func (d *dispatcher) stopTimer() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.timerCh = nil
}

func (d *dispatcher) startSend(result sendResult, send func(context.Context) (otevents.Response, error)) {
	d.inFlight++
	go func() {
		result.response, result.err = d.callTransport(send)
		d.resultCh <- result
	}()
}

func (d *dispatcher) callTransport(send func(context.Context) (otevents.Response, error)) (
	resp otevents.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.loggers.Errorf("Unexpected panic in event transport: %+v", r)
			err = otevents.TransportError{Cause: fmt.Errorf("transport panicked: %v", r)}
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), d.config.SendTimeout)
	defer cancel()
	return send(ctx)
}

func (d *dispatcher) logResponse(resp otevents.Response) {
	if resp.Message != "" {
		d.loggers.Info(resp.Message)
	}
}

func releaseWaiters(waiters *[]chan struct{}) {
	for _, ch := range *waiters {
		close(ch)
	}
	*waiters = nil
}
