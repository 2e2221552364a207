package sharedtest

import (
	"github.com/optistream/go-tracking-sdk/subsystems"
)

// NewSimpleTestContext returns a basic implementation of subsystems.ClientContext for use in test code.
func NewSimpleTestContext(tenantToken string) subsystems.ClientContext {
	return NewTestContext(tenantToken, nil, nil)
}

// NewTestContext returns a basic implementation of subsystems.ClientContext for use in test code.
func NewTestContext(
	tenantToken string,
	optHTTPConfig *subsystems.HTTPConfiguration,
	optLoggingConfig *subsystems.LoggingConfiguration,
) subsystems.BasicClientContext {
	ret := subsystems.BasicClientContext{TenantToken: tenantToken}
	if optHTTPConfig != nil {
		ret.HTTP = *optHTTPConfig
	}
	if optLoggingConfig != nil {
		ret.Logging = *optLoggingConfig
	} else {
		ret.Logging = TestLoggingConfig()
	}
	return ret
}

// TestLoggingConfig returns a LoggingConfiguration corresponding to NewTestLoggers().
func TestLoggingConfig() subsystems.LoggingConfiguration {
	return subsystems.LoggingConfiguration{Loggers: NewTestLoggers()}
}
