package otconsul

import (
	"fmt"

	c "github.com/hashicorp/consul/api"

	"github.com/optistream/go-tracking-sdk/subsystems"
)

const (
	// DefaultPrefix is a string that is prepended (along with a slash) to all Consul keys used by the
	// queue store. You can change this value with the Prefix option.
	DefaultPrefix = "optistream"
)

// QueueStoreBuilder is a builder for configuring the Consul-based queue store.
//
// Obtain an instance of this type by calling QueueStore(). After calling its methods to specify any
// desired custom settings, store it in the SDK configuration's Queue field.
//
// Builder calls can be chained, for example:
//
//	config.Queue = otconsul.QueueStore().Address("host:8500").Prefix("prefix")
//
// You do not need to call the builder's Build method yourself to build the actual queue store; that
// will be done by the SDK.
type QueueStoreBuilder struct {
	consulConfig c.Config
	prefix       string
}

// QueueStore returns a configurable builder for a Consul-backed queue store.
func QueueStore() *QueueStoreBuilder {
	return &QueueStoreBuilder{
		prefix: DefaultPrefix,
	}
}

// Address sets the address of the Consul server. If placed in the options list after Config, this will
// modify the address in the Config.
func (b *QueueStoreBuilder) Address(address string) *QueueStoreBuilder {
	b.consulConfig.Address = address
	return b
}

// Config specifies a Consul configuration, as defined in the Consul API package. Any fields that are
// left empty get the defaults of the Consul client, which reads environment variables such as
// CONSUL_HTTP_ADDR.
func (b *QueueStoreBuilder) Config(consulConfig c.Config) *QueueStoreBuilder {
	b.consulConfig = consulConfig
	return b
}

// Prefix specifies a prefix for namespacing the queue store's keys. If this is unspecified or empty,
// DefaultPrefix will be used.
func (b *QueueStoreBuilder) Prefix(prefix string) *QueueStoreBuilder {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	b.prefix = prefix
	return b
}

// Build is called internally by the SDK.
func (b *QueueStoreBuilder) Build(clientContext subsystems.ClientContext) (subsystems.QueueStore, error) {
	loggers := clientContext.GetLogging().Loggers
	loggers.SetPrefix("ConsulQueueStore:")
	loggers.Infof("Using Consul address %q", b.consulConfig.Address)
	client, err := c.NewClient(&b.consulConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to configure Consul client: %w", err)
	}
	return newConsulQueueStoreImpl(client.KV(), b.prefix, loggers), nil
}
