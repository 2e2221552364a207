package otredis

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/redis/go-redis/v9"

	"github.com/optistream/go-tracking-sdk/internal/durablequeue"
	"github.com/optistream/go-tracking-sdk/otevents"
)

// Internal implementation of the QueueStore interface for Redis.
//
// Records are kept as JSON strings in one list, oldest first. Enqueue is a single RPUSH, so it never
// conflicts with anything. Remove reads the list under WATCH and deletes the matching elements in a
// MULTI/EXEC transaction, retrying if the list was modified in between.
type redisQueueStoreImpl struct {
	client     redis.UniversalClient
	prefix     string
	loggers    ldlog.Loggers
	testTxHook func()
}

const (
	queueKeySuffix        = "queue"
	removedMarkerPrefix   = "$removed:"
	maxTransactionRetries = 10
)

func newRedisQueueStoreImpl(client redis.UniversalClient, prefix string, loggers ldlog.Loggers) *redisQueueStoreImpl {
	impl := &redisQueueStoreImpl{
		client:  client,
		prefix:  prefix,
		loggers: loggers,
	}
	impl.loggers.SetPrefix("RedisQueueStore:")
	return impl
}

func (store *redisQueueStoreImpl) Enqueue(records []otevents.WireRecord) error {
	if len(records) == 0 {
		return nil
	}
	values, err := durablequeue.EncodeRecords(records)
	if err != nil {
		return err
	}
	args := make([]interface{}, 0, len(values))
	for _, v := range values {
		args = append(args, string(v))
	}
	return store.client.RPush(context.Background(), store.queueKey(), args...).Err()
}

func (store *redisQueueStoreImpl) First(limit int) ([]otevents.WireRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	// Unreadable values don't count toward the limit, so reading continues past them one page at a time.
	ctx := context.Background()
	collector := durablequeue.NewCollector(limit, store.loggers)
	pageSize := int64(limit)
	for start := int64(0); ; start += pageSize {
		values, err := store.client.LRange(ctx, store.queueKey(), start, start+pageSize-1).Result()
		if err != nil {
			return nil, err
		}
		for _, v := range values {
			if !collector.Add([]byte(v)) {
				return collector.Records(), nil
			}
		}
		if int64(len(values)) < pageSize {
			return collector.Records(), nil
		}
	}
}

func (store *redisQueueStoreImpl) Remove(records []otevents.WireRecord) error {
	if len(records) == 0 {
		return nil
	}
	ctx := context.Background()
	key := store.queueKey()
	for i := 0; i < maxTransactionRetries; i++ {
		err := store.client.Watch(ctx, func(tx *redis.Tx) error {
			return store.removeInTransaction(ctx, tx, key, records)
		}, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		store.loggers.Debug("Concurrent modification detected, retrying")
	}
	return fmt.Errorf("could not remove records after %d attempts because of concurrent modifications",
		maxTransactionRetries)
}

func (store *redisQueueStoreImpl) removeInTransaction(
	ctx context.Context,
	tx *redis.Tx,
	key string,
	records []otevents.WireRecord,
) error {
	if store.testTxHook != nil { // instrumentation for unit tests
		store.testTxHook()
	}
	values, err := tx.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return err
	}
	matched := durablequeue.MatchSerialized(toBytes(values), records)
	if len(matched) == 0 {
		return nil
	}
	// Elements can only be deleted by value, so the matched ones are first overwritten with a marker
	// that no record can have.
	marker := removedMarkerPrefix + uuid.NewString()
	_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, index := range matched {
			pipe.LSet(ctx, key, int64(index), marker)
		}
		pipe.LRem(ctx, key, 0, marker)
		return nil
	})
	return err
}

func (store *redisQueueStoreImpl) Count() (int, error) {
	n, err := store.client.LLen(context.Background(), store.queueKey()).Result()
	return int(n), err
}

func (store *redisQueueStoreImpl) Close() error {
	return store.client.Close()
}

func (store *redisQueueStoreImpl) queueKey() string {
	return store.prefix + ":" + queueKeySuffix
}

func toBytes(values []string) [][]byte {
	ret := make([][]byte, len(values))
	for i, v := range values {
		ret[i] = []byte(v)
	}
	return ret
}
