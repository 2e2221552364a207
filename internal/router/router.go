package router

import (
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	"github.com/optistream/go-tracking-sdk/subsystems"
)

// Router delivers each Operation to every component that accepts operations of that kind. The set of
// components is fixed when the Router is created.
type Router struct {
	eventHandlers []subsystems.EventHandler
	loggers       ldlog.Loggers
}

// NewRouter creates a Router. Nil handlers are skipped.
func NewRouter(loggers ldlog.Loggers, eventHandlers ...subsystems.EventHandler) *Router {
	r := &Router{loggers: loggers}
	for _, h := range eventHandlers {
		if h != nil {
			r.eventHandlers = append(r.eventHandlers, h)
		}
	}
	return r
}

// Handle delivers the operation. Operations of an unknown kind are logged at debug level and
// otherwise ignored.
func (r *Router) Handle(op subsystems.Operation) {
	switch o := op.(type) {
	case subsystems.ReportEventOperation:
		for _, h := range r.eventHandlers {
			h.ReportEvent(o.Event)
		}
	case subsystems.DispatchNowOperation:
		for _, h := range r.eventHandlers {
			h.DispatchNow()
		}
	case nil:
		r.loggers.Debug("Ignoring nil operation")
	default:
		r.loggers.Debugf("Ignoring operation of unsupported kind %q", op.Kind())
	}
}
