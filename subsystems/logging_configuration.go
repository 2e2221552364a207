package subsystems

import (
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
)

// LoggingConfiguration encapsulates the SDK's general logging configuration.
//
// See otcomponents.LoggingConfigurationBuilder for more details on these properties.
type LoggingConfiguration struct {
	// Loggers is a configured ldlog.Loggers instance for general SDK logging.
	Loggers ldlog.Loggers
}
