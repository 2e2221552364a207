package otredis

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/optistream/go-tracking-sdk/subsystems"
)

const (
	// DefaultURL is the default URL for connecting to Redis, if you do not specify URL, HostAndPort or
	// UniversalOptions.
	DefaultURL = "redis://localhost:6379"
	// DefaultPrefix is a string that is prepended (along with a colon) to all Redis keys used by the
	// queue store. You can change this value with the Prefix option.
	DefaultPrefix = "optistream"
)

// QueueStoreBuilder is a builder for configuring the Redis-based queue store.
//
// Obtain an instance of this type by calling QueueStore(). After calling its methods to specify any
// desired custom settings, store it in the SDK configuration's Queue field.
//
// Builder calls can be chained, for example:
//
//	config.Queue = otredis.QueueStore().URL("redis://hostname").Prefix("prefix")
//
// You do not need to call the builder's Build method yourself to build the actual queue store; that
// will be done by the SDK.
type QueueStoreBuilder struct {
	prefix           string
	url              string
	universalOptions *redis.UniversalOptions
}

// QueueStore returns a configurable builder for a Redis-backed queue store.
func QueueStore() *QueueStoreBuilder {
	return &QueueStoreBuilder{
		prefix: DefaultPrefix,
		url:    DefaultURL,
	}
}

// Prefix specifies a string that should be prepended to all Redis keys used by the queue store. A
// colon will be added to this automatically. If this is unspecified or empty, DefaultPrefix will be
// used.
func (b *QueueStoreBuilder) Prefix(prefix string) *QueueStoreBuilder {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	b.prefix = prefix
	return b
}

// URL specifies the Redis host URL. If not specified, the default value is DefaultURL.
//
// The URL can include a password and a database number, as described for redis.ParseURL. Use the
// rediss:// scheme to enable TLS.
func (b *QueueStoreBuilder) URL(url string) *QueueStoreBuilder {
	if url == "" {
		url = DefaultURL
	}
	b.url = url
	return b
}

// HostAndPort is a shortcut for specifying the Redis host address as a hostname and port.
func (b *QueueStoreBuilder) HostAndPort(host string, port int) *QueueStoreBuilder {
	return b.URL(fmt.Sprintf("redis://%s:%d", host, port))
}

// UniversalOptions specifies all of the client options supported by go-redis, including Sentinel and
// cluster configurations. Specifying this option causes any address set with URL or HostAndPort to be
// ignored.
func (b *QueueStoreBuilder) UniversalOptions(options redis.UniversalOptions) *QueueStoreBuilder {
	b.universalOptions = &options
	return b
}

// Build is called internally by the SDK.
func (b *QueueStoreBuilder) Build(clientContext subsystems.ClientContext) (subsystems.QueueStore, error) {
	client, err := b.makeClient()
	if err != nil {
		return nil, err
	}
	return newRedisQueueStoreImpl(client, b.prefix, clientContext.GetLogging().Loggers), nil
}

func (b *QueueStoreBuilder) makeClient() (redis.UniversalClient, error) {
	if b.universalOptions != nil {
		return redis.NewUniversalClient(b.universalOptions), nil
	}
	options, err := redis.ParseURL(b.url)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}
	return redis.NewClient(options), nil
}
