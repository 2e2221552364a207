package otcomponents

import (
	"github.com/optistream/go-tracking-sdk/internal/sharedtest"
	"github.com/optistream/go-tracking-sdk/subsystems"
)

const testTenantToken = "test-tenant-token"

func basicClientContext() subsystems.ClientContext {
	return sharedtest.NewSimpleTestContext(testTenantToken)
}
