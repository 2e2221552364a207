package otredis

import (
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optistream/go-tracking-sdk/internal/sharedtest"
)

func TestQueueStoreBuilder(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		b := QueueStore()
		assert.Nil(t, b.universalOptions)
		assert.Equal(t, DefaultPrefix, b.prefix)
		assert.Equal(t, DefaultURL, b.url)
	})

	t.Run("HostAndPort", func(t *testing.T) {
		b := QueueStore().HostAndPort("mine", 4000)
		assert.Equal(t, "redis://mine:4000", b.url)
	})

	t.Run("Prefix", func(t *testing.T) {
		b := QueueStore().Prefix("p")
		assert.Equal(t, "p", b.prefix)

		b.Prefix("")
		assert.Equal(t, DefaultPrefix, b.prefix)
	})

	t.Run("URL", func(t *testing.T) {
		url := "redis://mine"
		b := QueueStore().URL(url)
		assert.Equal(t, url, b.url)

		b.URL("")
		assert.Equal(t, DefaultURL, b.url)
	})

	t.Run("UniversalOptions", func(t *testing.T) {
		opts := redis.UniversalOptions{Addrs: []string{"a:1", "b:2"}}
		b := QueueStore().UniversalOptions(opts)
		require.NotNil(t, b.universalOptions)
		assert.Equal(t, opts.Addrs, b.universalOptions.Addrs)
	})

	t.Run("Build does not connect", func(t *testing.T) {
		store, err := QueueStore().HostAndPort("localhost", 1).Prefix("p").Build(sharedtest.NewSimpleTestContext(""))
		require.NoError(t, err)
		impl := store.(*redisQueueStoreImpl)
		assert.Equal(t, "p:queue", impl.queueKey())
		assert.NoError(t, store.Close())
	})

	t.Run("Build with invalid URL", func(t *testing.T) {
		_, err := QueueStore().URL("not-a-redis-url://x").Build(sharedtest.NewSimpleTestContext(""))
		assert.Error(t, err)
	})
}
