package sharedtest

import (
	"fmt"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"

	"github.com/optistream/go-tracking-sdk/otevents"
)

// MakeRecord returns a WireRecord whose content is determined by the name. Records created with
// different names are never Equal.
func MakeRecord(name string) otevents.WireRecord {
	return otevents.WireRecord{
		Tenant:    1,
		Category:  otevents.DefaultCategory,
		Name:      name,
		Origin:    otevents.DefaultOrigin,
		Visitor:   "test-visitor",
		Timestamp: 1000,
		Context:   ldvalue.ObjectBuild().Set("name", ldvalue.String(name)).Build(),
		Metadata:  otevents.RecordMetadata{EventID: "id-" + name},
	}
}

// MakeRecords returns n distinct records named "event-0" through "event-<n-1>".
func MakeRecords(n int) []otevents.WireRecord {
	ret := make([]otevents.WireRecord, 0, n)
	for i := 0; i < n; i++ {
		ret = append(ret, MakeRecord(fmt.Sprintf("event-%d", i)))
	}
	return ret
}

// RecordNames returns the names of the records, in order.
func RecordNames(records []otevents.WireRecord) []string {
	ret := make([]string, 0, len(records))
	for _, r := range records {
		ret = append(ret, r.Name)
	}
	return ret
}
