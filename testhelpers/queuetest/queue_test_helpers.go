package queuetest

import (
	"fmt"
	"os"

	"github.com/launchdarkly/go-sdk-common/v3/ldlogtest"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"

	"github.com/optistream/go-tracking-sdk/otevents"
	"github.com/optistream/go-tracking-sdk/subsystems"
	"github.com/optistream/go-tracking-sdk/testhelpers"
)

type testCanFail interface {
	Failed() bool
}

// Creates a ClientContext that writes to a MockLog; at the end of the action's scope, the captured
// output is dumped to the console only if there's been a test failure. The test parameter is declared
// as type testCanFail instead of *testing.T to allow us to use other test interface types.
func withMockLoggingContext(t testCanFail, action func(subsystems.ClientContext)) {
	mockLog := ldlogtest.NewMockLog()
	context := testhelpers.NewSimpleClientContext("").WithLogging(mockLog.Loggers)
	defer func() {
		if t.Failed() {
			mockLog.Dump(os.Stdout)
		}
	}()
	action(context)
}

func makeRecords(label string, count int) []otevents.WireRecord {
	ret := make([]otevents.WireRecord, 0, count)
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("%s-%d", label, i)
		ret = append(ret, otevents.WireRecord{
			Tenant:    1,
			Category:  otevents.DefaultCategory,
			Name:      name,
			Origin:    otevents.DefaultOrigin,
			Customer:  ldvalue.NewOptionalString("customer"),
			Visitor:   "visitor",
			Timestamp: 1000,
			Context:   ldvalue.ObjectBuild().Set("index", ldvalue.Int(i)).Set("label", ldvalue.String(label)).Build(),
			Metadata:  otevents.RecordMetadata{EventID: "id-" + name, Platform: "go", Version: "1.0"},
		})
	}
	return ret
}

func recordNames(records []otevents.WireRecord) []string {
	ret := make([]string, 0, len(records))
	for _, r := range records {
		ret = append(ret, r.Name)
	}
	return ret
}
