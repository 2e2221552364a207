// Package otredis provides a Redis-backed queue store for the Optistream tracking SDK.
//
// Records are kept in a Redis list, so undelivered events survive a restart of the application and
// can be delivered by the next process that uses the same Redis database and prefix.
//
//	config := otclient.Config{
//	    Queue: otredis.QueueStore().URL("redis://my-redis-host:6379").Prefix("my-app"),
//	}
//
// This package uses github.com/redis/go-redis/v9. Any client options it supports can be set with
// UniversalOptions.
package otredis
