package otevents

import (
	"github.com/launchdarkly/go-jsonstream/v3/jreader"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/launchdarkly/go-sdk-common/v3/ldtime"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	"golang.org/x/exp/slices"
)

// WireRecord is the serializable form of one event, ready for delivery.
//
// A WireRecord is produced once by an EventBuilder and is never modified afterward. Queue stores may
// round-trip records through serialization, so records must be compared with Equal rather than by
// identity.
type WireRecord struct {
	Tenant    int
	Category  string
	Name      string
	Origin    string
	Customer  ldvalue.OptionalString
	Visitor   string
	Timestamp ldtime.UnixMillisecondTime
	Context   ldvalue.Value
	Metadata  RecordMetadata
}

// RecordMetadata contains delivery metadata for a WireRecord.
type RecordMetadata struct {
	Realtime bool
	EventID  string
	Platform string
	Version  string
}

// Equal returns true if both records have the same content.
func (r WireRecord) Equal(other WireRecord) bool {
	return r.Tenant == other.Tenant &&
		r.Category == other.Category &&
		r.Name == other.Name &&
		r.Origin == other.Origin &&
		r.Customer == other.Customer &&
		r.Visitor == other.Visitor &&
		r.Timestamp == other.Timestamp &&
		r.Context.Equal(other.Context) &&
		r.Metadata == other.Metadata
}

// WriteToJSONWriter provides JSON serialization for use with the jsonstream API.
func (r WireRecord) WriteToJSONWriter(w *jwriter.Writer) {
	obj := w.Object()
	obj.Name("tenant").Int(r.Tenant)
	obj.Name("category").String(r.Category)
	obj.Name("event").String(r.Name)
	obj.Name("origin").String(r.Origin)
	obj.Maybe("customer", r.Customer.IsDefined()).String(r.Customer.StringValue())
	obj.Name("visitor").String(r.Visitor)
	obj.Name("timestamp").Float64(float64(r.Timestamp))
	r.Context.WriteToJSONWriter(obj.Name("context"))
	meta := obj.Name("metadata").Object()
	meta.Name("realtime").Bool(r.Metadata.Realtime)
	meta.Name("eventId").String(r.Metadata.EventID)
	meta.Maybe("platform", r.Metadata.Platform != "").String(r.Metadata.Platform)
	meta.Maybe("version", r.Metadata.Version != "").String(r.Metadata.Version)
	meta.End()
	obj.End()
}

// ReadFromJSONReader provides JSON deserialization for use with the jsonstream API.
func (r *WireRecord) ReadFromJSONReader(reader *jreader.Reader) {
	var ret WireRecord
	for obj := reader.Object(); obj.Next(); {
		switch string(obj.Name()) {
		case "tenant":
			ret.Tenant = reader.Int()
		case "category":
			ret.Category = reader.String()
		case "event":
			ret.Name = reader.String()
		case "origin":
			ret.Origin = reader.String()
		case "customer":
			if s, nonNull := reader.StringOrNull(); nonNull {
				ret.Customer = ldvalue.NewOptionalString(s)
			}
		case "visitor":
			ret.Visitor = reader.String()
		case "timestamp":
			ret.Timestamp = ldtime.UnixMillisecondTime(reader.Float64())
		case "context":
			ret.Context.ReadFromJSONReader(reader)
		case "metadata":
			for meta := reader.Object(); meta.Next(); {
				switch string(meta.Name()) {
				case "realtime":
					ret.Metadata.Realtime = reader.Bool()
				case "eventId":
					ret.Metadata.EventID = reader.String()
				case "platform":
					ret.Metadata.Platform = reader.String()
				case "version":
					ret.Metadata.Version = reader.String()
				}
			}
		}
	}
	if reader.Error() == nil {
		*r = ret
	}
}

// MarshalJSON implements json.Marshaler.
func (r WireRecord) MarshalJSON() ([]byte, error) {
	w := jwriter.NewWriter()
	r.WriteToJSONWriter(&w)
	return w.Bytes(), w.Error()
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *WireRecord) UnmarshalJSON(data []byte) error {
	reader := jreader.NewReader(data)
	r.ReadFromJSONReader(&reader)
	return reader.Error()
}

// MarshalRecords serializes records as a JSON array, preserving their order.
func MarshalRecords(records []WireRecord) ([]byte, error) {
	w := jwriter.NewWriter()
	arr := w.Array()
	for _, r := range records {
		r.WriteToJSONWriter(&w)
	}
	arr.End()
	return w.Bytes(), w.Error()
}

// UnmarshalRecords parses a JSON array of records.
func UnmarshalRecords(data []byte) ([]WireRecord, error) {
	var ret []WireRecord
	reader := jreader.NewReader(data)
	for arr := reader.Array(); arr.Next(); {
		var r WireRecord
		r.ReadFromJSONReader(&reader)
		ret = append(ret, r)
	}
	if err := reader.Error(); err != nil {
		return nil, err
	}
	return ret, nil
}

// MatchRecords returns the indexes of the candidates that have the same content as one of the
// targets, in ascending order. Each target matches at most one candidate, so a record that was
// enqueued twice is only matched twice if it is targeted twice.
func MatchRecords(candidates []WireRecord, targets []WireRecord) []int {
	remaining := slices.Clone(targets)
	var matched []int
	for i, c := range candidates {
		if len(remaining) == 0 {
			break
		}
		j := slices.IndexFunc(remaining, c.Equal)
		if j < 0 {
			continue
		}
		matched = append(matched, i)
		remaining = slices.Delete(remaining, j, j+1)
	}
	return matched
}
