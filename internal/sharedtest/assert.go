package sharedtest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/optistream/go-tracking-sdk/otevents"
)

// AssertRecordsEqual asserts that both slices contain records with the same content in the same order.
func AssertRecordsEqual(t *testing.T, expected []otevents.WireRecord, actual []otevents.WireRecord) bool {
	t.Helper()
	if !assert.Equal(t, RecordNames(expected), RecordNames(actual)) {
		return false
	}
	for i := range expected {
		if !assert.True(t, expected[i].Equal(actual[i]), "record %d (%s) has different content", i, expected[i].Name) {
			return false
		}
	}
	return true
}
