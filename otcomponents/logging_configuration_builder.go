package otcomponents

import (
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	"github.com/optistream/go-tracking-sdk/subsystems"
)

// LoggingConfigurationBuilder contains methods for configuring the SDK's logging behavior.
//
// If you want to set non-default values for any of these properties, create a builder with
// otcomponents.Logging(), change its properties with the LoggingConfigurationBuilder methods, and
// store it in Config.Logging:
//
//	config := otclient.Config{
//	    Logging: otcomponents.Logging().MinLevel(ldlog.Warn),
//	}
type LoggingConfigurationBuilder struct {
	config subsystems.LoggingConfiguration
}

// Logging returns a configuration builder for the SDK's logging configuration.
//
// The default configuration has logging enabled with default settings, at a minimum level of
// ldlog.Info.
func Logging() *LoggingConfigurationBuilder {
	loggers := ldlog.NewDefaultLoggers()
	loggers.SetMinLevel(ldlog.Info)
	return &LoggingConfigurationBuilder{config: subsystems.LoggingConfiguration{Loggers: loggers}}
}

// Loggers specifies an instance of ldlog.Loggers to use for SDK logging. The ldlog package contains
// methods for customizing the destination and level filtering of log output.
func (b *LoggingConfigurationBuilder) Loggers(loggers ldlog.Loggers) *LoggingConfigurationBuilder {
	b.config.Loggers = loggers
	return b
}

// MinLevel specifies the minimum level for log output, where ldlog.Debug is the lowest and ldlog.Error
// is the highest. Log messages at a level lower than this will be suppressed. The default is
// ldlog.Info.
//
// This is equivalent to creating an ldlog.Loggers instance, calling SetMinLevel() on it, and then
// passing it to LoggingConfigurationBuilder.Loggers().
func (b *LoggingConfigurationBuilder) MinLevel(level ldlog.LogLevel) *LoggingConfigurationBuilder {
	b.config.Loggers.SetMinLevel(level)
	return b
}

// Build is called internally by the SDK.
func (b *LoggingConfigurationBuilder) Build(
	clientContext subsystems.ClientContext,
) (subsystems.LoggingConfiguration, error) {
	return b.config, nil
}

// NoLogging returns a configuration object that disables logging.
//
//	config := otclient.Config{
//	    Logging: otcomponents.NoLogging(),
//	}
func NoLogging() subsystems.ComponentConfigurer[subsystems.LoggingConfiguration] {
	return noLoggingConfigurationFactory{}
}

type noLoggingConfigurationFactory struct{}

func (f noLoggingConfigurationFactory) Build(
	clientContext subsystems.ClientContext,
) (subsystems.LoggingConfiguration, error) {
	return subsystems.LoggingConfiguration{Loggers: ldlog.NewDisabledLoggers()}, nil
}
