package otevents

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/launchdarkly/go-sdk-common/v3/ldtime"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

const (
	// DefaultCategory is the record category used when an Event does not specify one.
	DefaultCategory = "track"
	// DefaultOrigin is the default value for EventBuilderConfig.Origin.
	DefaultOrigin = "sdk"
	// MaxEventNameLength is the maximum length of an event name.
	MaxEventNameLength = 255
	// MaxPropertyCount is the maximum number of properties in one event.
	MaxPropertyCount = 50
	// MaxPropertyKeyLength is the maximum length of a property name.
	MaxPropertyKeyLength = 255
	// MaxPropertyValueLength is the maximum length of a string property value.
	MaxPropertyValueLength = 4000
)

// EventBuilder turns a reported Event into a WireRecord.
type EventBuilder interface {
	// Build validates the event and returns its wire form, or a BuildError.
	Build(event Event) (WireRecord, error)
}

// IdentityAware is implemented by an EventBuilder that stamps records with a customer ID.
type IdentityAware interface {
	// SetCustomerID sets the customer ID for records built after this call. It returns an
	// InvalidCustomerIDError, and leaves the current ID in place, if the ID is not acceptable.
	SetCustomerID(customerID string) error
}

// CustomerIDValidation is the result of ValidateCustomerID.
type CustomerIDValidation int

const (
	// CustomerIDValid means that the ID can be used.
	CustomerIDValid CustomerIDValidation = iota
	// CustomerIDNotValid means that the ID is empty or is a placeholder such as "null".
	CustomerIDNotValid
	// CustomerIDAlreadySet means that the ID is the one already in use.
	CustomerIDAlreadySet
)

// InvalidCustomerIDError is returned by SetCustomerID for an ID that is not acceptable.
type InvalidCustomerIDError struct {
	CustomerID string
}

func (e InvalidCustomerIDError) Error() string {
	return fmt.Sprintf("invalid customer ID %q", e.CustomerID)
}

// ValidateCustomerID checks a new customer ID against the one currently in use. Empty IDs and the
// placeholders "none", "null" and anything starting with "undefine" are rejected, ignoring case and
// surrounding whitespace.
func ValidateCustomerID(candidate string, current ldvalue.OptionalString) CustomerIDValidation {
	normalized := strings.ToLower(strings.TrimSpace(candidate))
	switch {
	case normalized == "", normalized == "none", normalized == "null",
		strings.HasPrefix(normalized, "undefine"):
		return CustomerIDNotValid
	case current.IsDefined() && current.StringValue() == candidate:
		return CustomerIDAlreadySet
	default:
		return CustomerIDValid
	}
}

// BuildError is returned by an EventBuilder when an event is invalid. Such an event is dropped
// and never retried.
type BuildError struct {
	EventName string
	Reason    string
}

func (e BuildError) Error() string {
	return fmt.Sprintf("invalid event %q: %s", e.EventName, e.Reason)
}

// EventBuilderConfig contains the values that DefaultEventBuilder stamps on every record.
type EventBuilderConfig struct {
	Tenant    int
	Origin    string
	Platform  string
	Version   string
	VisitorID string
}

// DefaultEventBuilder is the standard EventBuilder implementation.
type DefaultEventBuilder struct {
	config     EventBuilderConfig
	customerID ldvalue.OptionalString
	lock       sync.RWMutex
	now        func() ldtime.UnixMillisecondTime
	newID      func() string
}

// NewDefaultEventBuilder creates a DefaultEventBuilder. If config.VisitorID is empty, a random
// visitor ID is generated.
func NewDefaultEventBuilder(config EventBuilderConfig) *DefaultEventBuilder {
	if config.Origin == "" {
		config.Origin = DefaultOrigin
	}
	if config.VisitorID == "" {
		config.VisitorID = strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	return &DefaultEventBuilder{
		config: config,
		now:    ldtime.UnixMillisNow,
		newID:  uuid.NewString,
	}
}

// SetCustomerID implements IdentityAware. Setting the ID that is already in use does nothing.
func (b *DefaultEventBuilder) SetCustomerID(customerID string) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	switch ValidateCustomerID(customerID, b.customerID) {
	case CustomerIDNotValid:
		return InvalidCustomerIDError{CustomerID: customerID}
	case CustomerIDAlreadySet:
		return nil
	}
	b.customerID = ldvalue.NewOptionalString(customerID)
	return nil
}

// VisitorID returns the visitor ID stamped on every record.
func (b *DefaultEventBuilder) VisitorID() string {
	return b.config.VisitorID
}

// Build implements EventBuilder.
func (b *DefaultEventBuilder) Build(event Event) (WireRecord, error) {
	properties, err := validateEvent(event)
	if err != nil {
		return WireRecord{}, err
	}
	category := event.Category
	if category == "" {
		category = DefaultCategory
	}
	timestamp := event.Timestamp
	if timestamp == 0 {
		timestamp = b.now()
	}
	b.lock.RLock()
	customer := b.customerID
	b.lock.RUnlock()
	return WireRecord{
		Tenant:    b.config.Tenant,
		Category:  category,
		Name:      event.Name,
		Origin:    b.config.Origin,
		Customer:  customer,
		Visitor:   b.config.VisitorID,
		Timestamp: timestamp,
		Context:   properties,
		Metadata: RecordMetadata{
			Realtime: event.Realtime,
			EventID:  b.newID(),
			Platform: b.config.Platform,
			Version:  b.config.Version,
		},
	}, nil
}

// validateEvent checks the event against the delivery limits and returns its properties as an
// object with null values removed.
func validateEvent(event Event) (ldvalue.Value, error) {
	fail := func(format string, args ...interface{}) (ldvalue.Value, error) {
		return ldvalue.Null(), BuildError{EventName: event.Name, Reason: fmt.Sprintf(format, args...)}
	}
	if event.Name == "" {
		return fail("event name is required")
	}
	if len(event.Name) > MaxEventNameLength {
		return fail("event name is longer than %d characters", MaxEventNameLength)
	}
	switch event.Properties.Type() {
	case ldvalue.NullType:
		return ldvalue.ObjectBuild().Build(), nil
	case ldvalue.ObjectType:
	default:
		return fail("properties must be a JSON object, not %s", event.Properties.Type())
	}
	if event.Properties.Count() > MaxPropertyCount {
		return fail("event has more than %d properties", MaxPropertyCount)
	}
	props := ldvalue.ObjectBuild()
	for key, value := range event.Properties.AsValueMap().AsMap() {
		if len(key) > MaxPropertyKeyLength {
			return fail("property name %q is longer than %d characters", key, MaxPropertyKeyLength)
		}
		switch value.Type() {
		case ldvalue.NullType:
			continue
		case ldvalue.StringType:
			if len(value.StringValue()) > MaxPropertyValueLength {
				return fail("value of property %q is longer than %d characters", key, MaxPropertyValueLength)
			}
		case ldvalue.BoolType, ldvalue.NumberType:
		default:
			return fail("property %q has unsupported type %s", key, value.Type())
		}
		props.Set(key, value)
	}
	return props.Build(), nil
}
