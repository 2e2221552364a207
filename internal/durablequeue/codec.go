package durablequeue

import (
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	"github.com/optistream/go-tracking-sdk/otevents"
)

// EncodeRecords serializes each record to its JSON form.
func EncodeRecords(records []otevents.WireRecord) ([][]byte, error) {
	ret := make([][]byte, 0, len(records))
	for _, r := range records {
		data, err := r.MarshalJSON()
		if err != nil {
			return nil, err
		}
		ret = append(ret, data)
	}
	return ret, nil
}

// DecodeRecord parses one serialized record.
func DecodeRecord(data []byte) (otevents.WireRecord, error) {
	var r otevents.WireRecord
	err := r.UnmarshalJSON(data)
	return r, err
}

// Collector gathers readable records from a store that is read in order, until it has the number of
// records that was asked for. Unreadable values are logged at error level and do not count toward the
// limit, so a store must keep reading past them.
type Collector struct {
	limit   int
	records []otevents.WireRecord
	loggers ldlog.Loggers
}

// NewCollector creates a Collector that wants up to limit records.
func NewCollector(limit int, loggers ldlog.Loggers) *Collector {
	capacity := limit
	if capacity > 1000 {
		capacity = 1000
	}
	if capacity < 0 {
		capacity = 0
	}
	return &Collector{limit: limit, records: make([]otevents.WireRecord, 0, capacity), loggers: loggers}
}

// Add parses one serialized value and keeps it if it is readable. It returns false once the
// Collector is full.
func (c *Collector) Add(value []byte) bool {
	if c.Full() {
		return false
	}
	r, err := DecodeRecord(value)
	if err != nil {
		c.loggers.Errorf("Skipping unreadable queued record: %s", err)
	} else {
		c.records = append(c.records, r)
	}
	return !c.Full()
}

// Full returns true if the Collector has all the records it wants.
func (c *Collector) Full() bool {
	return len(c.records) >= c.limit
}

// Records returns the records gathered so far, oldest first.
func (c *Collector) Records() []otevents.WireRecord {
	return c.records
}

// MatchSerialized returns the indexes of the serialized records that have the same content as one of
// the targets, with the same rules as otevents.MatchRecords. Records that cannot be parsed never match.
func MatchSerialized(values [][]byte, targets []otevents.WireRecord) []int {
	candidates := make([]otevents.WireRecord, len(values))
	for i, v := range values {
		if r, err := DecodeRecord(v); err == nil {
			candidates[i] = r
		}
	}
	return otevents.MatchRecords(candidates, targets)
}
