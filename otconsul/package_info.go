// Package otconsul provides a Consul-backed queue store for the Optistream tracking SDK.
//
// Undelivered records are kept in the Consul key/value store, so they survive a restart of the
// application and can be delivered by the next process that uses the same Consul cluster and prefix.
//
//	config := otclient.Config{
//	    Queue: otconsul.QueueStore().Address("my-consul-host:8500"),
//	}
//
// Consul's key/value store is not designed for high write volumes; for applications that report many
// events, a Redis or DynamoDB queue store is a better choice.
package otconsul
