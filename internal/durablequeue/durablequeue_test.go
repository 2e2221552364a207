package durablequeue

import (
	"sort"
	"testing"
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/launchdarkly/go-sdk-common/v3/ldlogtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optistream/go-tracking-sdk/internal/sharedtest"
	"github.com/optistream/go-tracking-sdk/otevents"
)

func TestEncodeAndDecodeRecords(t *testing.T) {
	records := sharedtest.MakeRecords(3)
	values, err := EncodeRecords(records)
	require.NoError(t, err)
	require.Len(t, values, 3)

	collector := NewCollector(10, ldlog.NewDisabledLoggers())
	for _, v := range values {
		assert.True(t, collector.Add(v))
	}
	sharedtest.AssertRecordsEqual(t, records, collector.Records())
}

func TestCollectorSkipsBadRecords(t *testing.T) {
	records := sharedtest.MakeRecords(2)
	values, err := EncodeRecords(records)
	require.NoError(t, err)

	mockLog := ldlogtest.NewMockLog()
	collector := NewCollector(2, mockLog.Loggers)
	assert.True(t, collector.Add([]byte("{not json")))
	assert.True(t, collector.Add(values[0]))
	assert.False(t, collector.Add(values[1]))
	sharedtest.AssertRecordsEqual(t, records, collector.Records())
	mockLog.AssertMessageMatch(t, true, ldlog.Error, "Skipping unreadable queued record")
}

func TestCollectorDoesNotCountBadRecordsTowardLimit(t *testing.T) {
	records := sharedtest.MakeRecords(3)
	values, err := EncodeRecords(records)
	require.NoError(t, err)

	collector := NewCollector(3, ldlog.NewDisabledLoggers())
	for i := 0; i < 150; i++ {
		require.True(t, collector.Add([]byte("not json")))
	}
	assert.Len(t, collector.Records(), 0)
	assert.False(t, collector.Full())

	for _, v := range values {
		collector.Add(v)
	}
	assert.True(t, collector.Full())
	assert.False(t, collector.Add(values[0]))
	sharedtest.AssertRecordsEqual(t, records, collector.Records())
}

func TestMatchSerialized(t *testing.T) {
	records := sharedtest.MakeRecords(3)
	values, err := EncodeRecords(append(records, records[0]))
	require.NoError(t, err)
	values = append([][]byte{[]byte("bad")}, values...)

	targets := []otevents.WireRecord{records[0], records[2]}
	assert.Equal(t, []int{1, 3}, MatchSerialized(values, targets))
}

func TestSequencerKeysIncrease(t *testing.T) {
	s := NewSequencer()
	fixed := time.Unix(1000, 0)
	s.now = func() time.Time { return fixed }

	keys := s.NextN(3)
	assert.Equal(t, []string{"00000001000000000000", "00000001000000000001", "00000001000000000002"}, keys)

	fixed = time.Unix(999, 0)
	next := s.Next()
	assert.Greater(t, next, keys[2])
	assert.Len(t, next, SequenceKeyLength)
}

func TestSequencerKeysSortAsStrings(t *testing.T) {
	s := NewSequencer()
	keys := s.NextN(100)
	assert.True(t, sort.StringsAreSorted(keys))
}
