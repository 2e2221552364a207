package otcomponents

import (
	"github.com/optistream/go-tracking-sdk/internal"
	"github.com/optistream/go-tracking-sdk/otevents"
	"github.com/optistream/go-tracking-sdk/subsystems"
)

// DefaultPlatform is the default value for EventBuilderConfigurationBuilder.Platform.
const DefaultPlatform = "go"

// EventBuilderConfigurationBuilder provides methods for configuring how reported events are turned
// into records.
//
// See DefaultEventBuilder for usage.
type EventBuilderConfigurationBuilder struct {
	config otevents.EventBuilderConfig
}

// DefaultEventBuilder returns a configuration builder for the standard event builder, which validates
// each event and stamps it with the tenant and device information.
//
//	config := otclient.Config{
//	    EventBuilder: otcomponents.DefaultEventBuilder().Tenant(1234).Platform("kiosk"),
//	}
func DefaultEventBuilder() *EventBuilderConfigurationBuilder {
	return &EventBuilderConfigurationBuilder{
		config: otevents.EventBuilderConfig{
			Origin:   otevents.DefaultOrigin,
			Platform: DefaultPlatform,
			Version:  internal.SDKVersion,
		},
	}
}

// Tenant sets the numeric tenant ID stamped on every record.
func (b *EventBuilderConfigurationBuilder) Tenant(tenant int) *EventBuilderConfigurationBuilder {
	b.config.Tenant = tenant
	return b
}

// Origin sets the origin stamped on every record. The default is otevents.DefaultOrigin.
func (b *EventBuilderConfigurationBuilder) Origin(origin string) *EventBuilderConfigurationBuilder {
	b.config.Origin = origin
	return b
}

// Platform sets the platform name stamped on every record. The default is DefaultPlatform.
func (b *EventBuilderConfigurationBuilder) Platform(platform string) *EventBuilderConfigurationBuilder {
	b.config.Platform = platform
	return b
}

// Version sets the application version stamped on every record. The default is the SDK version.
func (b *EventBuilderConfigurationBuilder) Version(version string) *EventBuilderConfigurationBuilder {
	b.config.Version = version
	return b
}

// VisitorID sets the visitor ID stamped on every record. If it is not set, a random ID is generated
// when the client starts.
func (b *EventBuilderConfigurationBuilder) VisitorID(visitorID string) *EventBuilderConfigurationBuilder {
	b.config.VisitorID = visitorID
	return b
}

// Build is called internally by the SDK.
func (b *EventBuilderConfigurationBuilder) Build(
	clientContext subsystems.ClientContext,
) (otevents.EventBuilder, error) {
	return otevents.NewDefaultEventBuilder(b.config), nil
}
