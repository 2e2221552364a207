// Package otclient is the main package for the Optistream event tracking SDK.
//
// This package contains the types and methods for the SDK client ([OTClient]) and its overall
// configuration ([Config]).
//
// The client accepts application events, queues them, and delivers them to the Optistream ingestion
// service in batches. Events that are marked as realtime are also sent immediately.
//
// Subpackages in the same repository provide additional functionality for specific features of the
// client. Most applications that need to change any configuration settings will use the package
// [github.com/optistream/go-tracking-sdk/otcomponents]. Durable queue stores are provided by
// otredis, otdynamodb and otconsul.
//
// Event properties are represented with the ldvalue package
// ([github.com/launchdarkly/go-sdk-common/v3/ldvalue]).
package otclient
