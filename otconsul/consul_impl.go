package otconsul

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	c "github.com/hashicorp/consul/api"
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	"github.com/optistream/go-tracking-sdk/internal/durablequeue"
	"github.com/optistream/go-tracking-sdk/otevents"
)

// Implementation notes:
//
// - Each record is stored as an individual item with the key "{prefix}/queue/{sequence}-{instance}".
// The sequence is clock-based and zero-padded, and Consul lists keys in lexical order, so listing the
// queue returns records oldest first. The instance part keeps two processes from writing the same key.
//
// - Consul transactions can't contain more than 64 operations, so enqueuing more records than that
// is not atomic. The client enqueues one record at a time, so in practice every Enqueue is atomic.
//
// - Consul cannot list part of a key range, so First and Remove read every queued item.

const (
	queueSegment = "queue"
	maxTxnOps    = 64
)

type consulQueueStoreImpl struct {
	kv         *c.KV
	prefix     string
	instanceID string
	sequencer  *durablequeue.Sequencer
	loggers    ldlog.Loggers
}

func newConsulQueueStoreImpl(kv *c.KV, prefix string, loggers ldlog.Loggers) *consulQueueStoreImpl {
	return &consulQueueStoreImpl{
		kv:         kv,
		prefix:     prefix,
		instanceID: strings.ReplaceAll(uuid.NewString(), "-", "")[:12],
		sequencer:  durablequeue.NewSequencer(),
		loggers:    loggers,
	}
}

func (store *consulQueueStoreImpl) Enqueue(records []otevents.WireRecord) error {
	values, err := durablequeue.EncodeRecords(records)
	if err != nil {
		return err
	}
	keys := store.sequencer.NextN(len(values))
	ops := make(c.KVTxnOps, 0, len(values))
	for i, v := range values {
		ops = append(ops, &c.KVTxnOp{Verb: c.KVSet, Key: store.queueKeyPrefix() + keys[i] + "-" + store.instanceID, Value: v})
	}
	return batchOperations(store.kv, ops)
}

func (store *consulQueueStoreImpl) First(limit int) ([]otevents.WireRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	pairs, err := store.list()
	if err != nil {
		return nil, err
	}
	collector := durablequeue.NewCollector(limit, store.loggers)
	for _, p := range pairs {
		if !collector.Add(p.Value) {
			break
		}
	}
	return collector.Records(), nil
}

func (store *consulQueueStoreImpl) Remove(records []otevents.WireRecord) error {
	if len(records) == 0 {
		return nil
	}
	pairs, err := store.list()
	if err != nil {
		return err
	}
	values := make([][]byte, 0, len(pairs))
	for _, p := range pairs {
		values = append(values, p.Value)
	}
	matched := durablequeue.MatchSerialized(values, records)
	ops := make(c.KVTxnOps, 0, len(matched))
	for _, i := range matched {
		ops = append(ops, &c.KVTxnOp{Verb: c.KVDelete, Key: pairs[i].Key})
	}
	return batchOperations(store.kv, ops)
}

func (store *consulQueueStoreImpl) Count() (int, error) {
	keys, _, err := store.kv.Keys(store.queueKeyPrefix(), "", nil)
	if err != nil {
		return 0, fmt.Errorf("list failed for %s: %w", store.queueKeyPrefix(), err)
	}
	return len(keys), nil
}

func (store *consulQueueStoreImpl) Close() error {
	// The Consul client doesn't currently need to be explicitly disposed of
	return nil
}

func (store *consulQueueStoreImpl) list() (c.KVPairs, error) {
	pairs, _, err := store.kv.List(store.queueKeyPrefix(), nil)
	if err != nil {
		return nil, fmt.Errorf("list failed for %s: %w", store.queueKeyPrefix(), err)
	}
	return pairs, nil
}

func (store *consulQueueStoreImpl) queueKeyPrefix() string {
	return store.prefix + "/" + queueSegment + "/"
}

func batchOperations(kv *c.KV, ops c.KVTxnOps) error {
	for i := 0; i < len(ops); {
		j := i + maxTxnOps
		if j > len(ops) {
			j = len(ops)
		}
		batch := ops[i:j]
		ok, resp, _, err := kv.Txn(batch, nil)
		if err != nil {
			return err
		}
		if !ok {
			errs := make([]string, 0)
			for _, te := range resp.Errors {
				errs = append(errs, te.What)
			}
			return fmt.Errorf("Consul transaction failed: %s", strings.Join(errs, ", ")) //nolint:stylecheck // this error message is capitalized on purpose
		}
		i = j
	}
	return nil
}
