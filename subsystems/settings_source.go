package subsystems

import (
	"io"
	"time"
)

// SettingsSink receives tenant settings from a SettingsSource.
type SettingsSink interface {
	// SetDispatchInterval applies a new dispatch interval.
	SetDispatchInterval(interval time.Duration)
}

// SettingsSource is an interface for a component that provides tenant settings, such as the
// dispatch interval, and may update them while the client is running.
type SettingsSource interface {
	io.Closer

	// Start tells the source to deliver its current settings to the sink, and then any later changes.
	// The client calls it once. Settings that are available at startup should be applied before
	// Start returns.
	Start(sink SettingsSink)
}
