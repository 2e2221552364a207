package otevents

import (
	"encoding/json"
	"testing"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRecord(name string) WireRecord {
	return WireRecord{
		Tenant:    42,
		Category:  DefaultCategory,
		Name:      name,
		Origin:    DefaultOrigin,
		Customer:  ldvalue.NewOptionalString("customer-1"),
		Visitor:   "visitor-1",
		Timestamp: 1700000000123,
		Context: ldvalue.ObjectBuild().
			Set("color", ldvalue.String("red")).
			Set("count", ldvalue.Int(3)).
			Set("flag", ldvalue.Bool(true)).
			Build(),
		Metadata: RecordMetadata{Realtime: true, EventID: "id-" + name, Platform: "go", Version: "1.0.0"},
	}
}

func TestWireRecordJSONRoundTrip(t *testing.T) {
	r := makeRecord("purchase")
	data, err := json.Marshal(r)
	require.NoError(t, err)

	var r1 WireRecord
	require.NoError(t, json.Unmarshal(data, &r1))
	assert.True(t, r.Equal(r1))
}

func TestWireRecordJSONOmitsUndefinedCustomer(t *testing.T) {
	r := makeRecord("purchase")
	r.Customer = ldvalue.OptionalString{}
	data, err := r.MarshalJSON()
	require.NoError(t, err)

	parsed := ldvalue.Parse(data)
	assert.Equal(t, ldvalue.Null(), parsed.GetByKey("customer"))
	assert.Equal(t, ldvalue.String("purchase"), parsed.GetByKey("event"))
	assert.Equal(t, ldvalue.Bool(true), parsed.GetByKey("metadata").GetByKey("realtime"))

	var r1 WireRecord
	require.NoError(t, r1.UnmarshalJSON(data))
	assert.False(t, r1.Customer.IsDefined())
	assert.True(t, r.Equal(r1))
}

func TestWireRecordUnmarshalRejectsMalformedJSON(t *testing.T) {
	var r WireRecord
	assert.Error(t, r.UnmarshalJSON([]byte(`{"event":`)))
	assert.Error(t, r.UnmarshalJSON([]byte(`{"tenant":"not a number"}`)))
}

func TestWireRecordEqualComparesContent(t *testing.T) {
	r := makeRecord("a")

	t.Run("same content", func(t *testing.T) {
		copied := r
		copied.Context = ldvalue.CopyArbitraryValue(map[string]interface{}{"color": "red", "count": 3, "flag": true})
		assert.True(t, r.Equal(copied))
	})

	t.Run("different context", func(t *testing.T) {
		other := r
		other.Context = ldvalue.ObjectBuild().Set("color", ldvalue.String("blue")).Build()
		assert.False(t, r.Equal(other))
	})

	t.Run("different event ID", func(t *testing.T) {
		other := r
		other.Metadata.EventID = "other"
		assert.False(t, r.Equal(other))
	})

	t.Run("different customer", func(t *testing.T) {
		other := r
		other.Customer = ldvalue.OptionalString{}
		assert.False(t, r.Equal(other))
	})
}

func TestMarshalRecordsPreservesOrder(t *testing.T) {
	records := []WireRecord{makeRecord("a"), makeRecord("b"), makeRecord("c")}
	data, err := MarshalRecords(records)
	require.NoError(t, err)

	parsed, err := UnmarshalRecords(data)
	require.NoError(t, err)
	require.Len(t, parsed, 3)
	for i := range records {
		assert.True(t, records[i].Equal(parsed[i]), "record %d", i)
	}
}

func TestMarshalRecordsWithNoRecords(t *testing.T) {
	data, err := MarshalRecords(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestMatchRecords(t *testing.T) {
	a, b, c := makeRecord("a"), makeRecord("b"), makeRecord("c")

	t.Run("matches by content", func(t *testing.T) {
		data, err := MarshalRecords([]WireRecord{c, a})
		require.NoError(t, err)
		targets, err := UnmarshalRecords(data)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 2}, MatchRecords([]WireRecord{a, b, c}, targets))
	})

	t.Run("each target matches once", func(t *testing.T) {
		assert.Equal(t, []int{0}, MatchRecords([]WireRecord{a, a, b}, []WireRecord{a}))
		assert.Equal(t, []int{0, 1}, MatchRecords([]WireRecord{a, a, b}, []WireRecord{a, a}))
	})

	t.Run("no match", func(t *testing.T) {
		assert.Len(t, MatchRecords([]WireRecord{a, b}, []WireRecord{c}), 0)
		assert.Len(t, MatchRecords(nil, []WireRecord{c}), 0)
	})
}
