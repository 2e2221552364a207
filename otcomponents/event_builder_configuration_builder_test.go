package otcomponents

import (
	"testing"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optistream/go-tracking-sdk/internal"
	"github.com/optistream/go-tracking-sdk/otevents"
)

func buildRecord(t *testing.T, b *EventBuilderConfigurationBuilder) otevents.WireRecord {
	builder, err := b.Build(basicClientContext())
	require.NoError(t, err)
	r, err := builder.Build(otevents.NewEvent("purchase", ldvalue.Null()))
	require.NoError(t, err)
	return r
}

func TestEventBuilderConfigurationBuilder(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		r := buildRecord(t, DefaultEventBuilder())
		assert.Equal(t, 0, r.Tenant)
		assert.Equal(t, otevents.DefaultOrigin, r.Origin)
		assert.Equal(t, DefaultPlatform, r.Metadata.Platform)
		assert.Equal(t, internal.SDKVersion, r.Metadata.Version)
		assert.Len(t, r.Visitor, 32)
	})

	t.Run("custom values", func(t *testing.T) {
		r := buildRecord(t, DefaultEventBuilder().
			Tenant(1234).
			Origin("kiosk-app").
			Platform("kiosk").
			Version("9.9").
			VisitorID("visitor-1"))
		assert.Equal(t, 1234, r.Tenant)
		assert.Equal(t, "kiosk-app", r.Origin)
		assert.Equal(t, "kiosk", r.Metadata.Platform)
		assert.Equal(t, "9.9", r.Metadata.Version)
		assert.Equal(t, "visitor-1", r.Visitor)
	})

	t.Run("builder supports customer ID", func(t *testing.T) {
		builder, err := DefaultEventBuilder().Build(basicClientContext())
		require.NoError(t, err)
		assert.Implements(t, (*otevents.IdentityAware)(nil), builder)
	})
}
