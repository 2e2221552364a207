package queuetest

import (
	"fmt"
	"sync"
	"testing"

	"github.com/launchdarkly/go-test-helpers/v3/testbox"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optistream/go-tracking-sdk/otevents"
	"github.com/optistream/go-tracking-sdk/subsystems"
)

const drainBatchSize = 100

// QueueStoreTestSuite provides a configurable test suite for all implementations of QueueStore.
//
// In order to be testable with this tool, a durable queue store implementation must have the
// following characteristics:
//
// 1. It has some notion of a "prefix" string that can be used to distinguish between different
// queues in the same underlying database.
//
// 2. Two instances of the same queue store type with the same configuration, and the same prefix,
// should be able to see each other's records.
//
// Stores that only keep records in memory are tested without those two properties; see Persistent.
type QueueStoreTestSuite struct {
	storeFactoryFn    func(string) subsystems.ComponentConfigurer[subsystems.QueueStore]
	clearDataFn       func(string) error
	errorStoreFactory subsystems.ComponentConfigurer[subsystems.QueueStore]
	errorValidator    func(assert.TestingT, error)
	unreadableWriter  func(prefix string, count int) error
	persistent        bool
}

// NewQueueStoreTestSuite creates a QueueStoreTestSuite for testing some implementation of QueueStore.
//
// The storeFactoryFn parameter is a function that takes a prefix string and returns a configured
// factory for this queue store type (for instance, otredis.QueueStore().Prefix(prefix)). If the
// prefix string is "", it should use the default prefix defined by the queue store implementation.
// The factory must include any necessary configuration that may be appropriate for the test
// environment (for instance, pointing it to a database instance that has been set up for the
// tests).
//
// The clearDataFn parameter is a function that takes a prefix string and deletes any existing
// records that may exist in the database corresponding to that prefix.
func NewQueueStoreTestSuite(
	storeFactoryFn func(prefix string) subsystems.ComponentConfigurer[subsystems.QueueStore],
	clearDataFn func(prefix string) error,
) *QueueStoreTestSuite {
	return &QueueStoreTestSuite{
		storeFactoryFn: storeFactoryFn,
		clearDataFn:    clearDataFn,
	}
}

// Persistent enables the tests that require records to be shared between store instances with the
// same prefix, and kept apart between different prefixes. All database integrations should enable it.
func (s *QueueStoreTestSuite) Persistent() *QueueStoreTestSuite {
	s.persistent = true
	return s
}

// ErrorStoreFactory enables a test of error handling. The provided errorStoreFactory is expected to
// produce a queue store instance whose operations should all fail and return an error. The errorValidator
// function, if any, will be called to verify that it is the expected error.
func (s *QueueStoreTestSuite) ErrorStoreFactory(
	errorStoreFactory subsystems.ComponentConfigurer[subsystems.QueueStore],
	errorValidator func(assert.TestingT, error),
) *QueueStoreTestSuite {
	s.errorStoreFactory = errorStoreFactory
	s.errorValidator = errorValidator
	return s
}

// UnreadableValueWriter enables tests of values that the store cannot parse, such as records written
// by an incompatible version. The writer function must store count unparseable values in the queue for
// the given prefix, ordered before any record that is enqueued afterward.
func (s *QueueStoreTestSuite) UnreadableValueWriter(
	writer func(prefix string, count int) error,
) *QueueStoreTestSuite {
	s.unreadableWriter = writer
	return s
}

// Run runs the configured test suite.
func (s *QueueStoreTestSuite) Run(t *testing.T) {
	s.runInternal(testbox.RealTest(t))
}

func (s *QueueStoreTestSuite) runInternal(t testbox.TestingT) {
	t.Run("empty queue", s.runEmptyQueueTests)
	t.Run("Enqueue and First", s.runEnqueueAndFirstTests)
	t.Run("Remove", s.runRemoveTests)
	t.Run("drain in batches", s.runDrainTests)
	t.Run("Enqueue during drain", s.runConcurrentEnqueueTests)

	if s.persistent {
		t.Run("records are shared between instances", s.runSharedInstanceTests)
		t.Run("prefix independence", s.runPrefixIndependenceTests)
	}

	if s.unreadableWriter != nil {
		t.Run("unreadable values", s.runUnreadableValueTests)
	}

	t.Run("error returns", s.runErrorTests)
}

func (s *QueueStoreTestSuite) makeStore(t testCanFail, prefix string) subsystems.QueueStore {
	var store subsystems.QueueStore
	withMockLoggingContext(t, func(context subsystems.ClientContext) {
		var err error
		store, err = s.storeFactoryFn(prefix).Build(context)
		if err != nil {
			panic(err) // COVERAGE: can't cause this condition in QueueStoreTestSuiteTest
		}
	})
	return store
}

func (s *QueueStoreTestSuite) clearData(prefix string) {
	err := s.clearDataFn(prefix)
	if err != nil {
		panic(err) // COVERAGE: can't cause this condition in QueueStoreTestSuiteTest
	}
}

func (s *QueueStoreTestSuite) withEmptyStore(t testbox.TestingT, action func(subsystems.QueueStore)) {
	s.clearData("")
	store := s.makeStore(t, "")
	defer store.Close() //nolint:errcheck
	action(store)
}

func readAll(t testbox.TestingT, store subsystems.QueueStore) []otevents.WireRecord {
	records, err := store.First(1 << 20)
	require.NoError(t, err)
	return records
}

func assertQueueContains(t testbox.TestingT, store subsystems.QueueStore, expected []otevents.WireRecord) {
	actual := readAll(t, store)
	if !assert.Equal(t, recordNames(expected), recordNames(actual)) {
		return
	}
	for i := range expected {
		assert.True(t, expected[i].Equal(actual[i]), "record %s did not round-trip with the same content",
			expected[i].Name)
	}
	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, len(expected), count)
}

func (s *QueueStoreTestSuite) runEmptyQueueTests(t testbox.TestingT) {
	t.Run("Count is zero", func(t testbox.TestingT) {
		s.withEmptyStore(t, func(store subsystems.QueueStore) {
			count, err := store.Count()
			require.NoError(t, err)
			assert.Equal(t, 0, count)
		})
	})

	t.Run("First returns no records", func(t testbox.TestingT) {
		s.withEmptyStore(t, func(store subsystems.QueueStore) {
			records, err := store.First(10)
			require.NoError(t, err)
			assert.Len(t, records, 0)
		})
	})

	t.Run("Remove is a no-op", func(t testbox.TestingT) {
		s.withEmptyStore(t, func(store subsystems.QueueStore) {
			require.NoError(t, store.Remove(makeRecords("absent", 2)))
			assertQueueContains(t, store, nil)
		})
	})
}

func (s *QueueStoreTestSuite) runEnqueueAndFirstTests(t testbox.TestingT) {
	t.Run("records are returned oldest first", func(t testbox.TestingT) {
		s.withEmptyStore(t, func(store subsystems.QueueStore) {
			first, second := makeRecords("first", 3), makeRecords("second", 2)
			require.NoError(t, store.Enqueue(first))
			require.NoError(t, store.Enqueue(second))

			assertQueueContains(t, store, append(append([]otevents.WireRecord(nil), first...), second...))
		})
	})

	t.Run("First is limited", func(t testbox.TestingT) {
		s.withEmptyStore(t, func(store subsystems.QueueStore) {
			records := makeRecords("a", 5)
			require.NoError(t, store.Enqueue(records))

			result, err := store.First(2)
			require.NoError(t, err)
			assert.Equal(t, recordNames(records[:2]), recordNames(result))
		})
	})

	t.Run("First does not remove records", func(t testbox.TestingT) {
		s.withEmptyStore(t, func(store subsystems.QueueStore) {
			records := makeRecords("a", 3)
			require.NoError(t, store.Enqueue(records))

			_, err := store.First(3)
			require.NoError(t, err)
			assertQueueContains(t, store, records)
		})
	})

	t.Run("enqueuing no records is a no-op", func(t testbox.TestingT) {
		s.withEmptyStore(t, func(store subsystems.QueueStore) {
			require.NoError(t, store.Enqueue(nil))
			assertQueueContains(t, store, nil)
		})
	})
}

func (s *QueueStoreTestSuite) runRemoveTests(t testbox.TestingT) {
	t.Run("removes records that were read from the store", func(t testbox.TestingT) {
		s.withEmptyStore(t, func(store subsystems.QueueStore) {
			records := makeRecords("a", 4)
			require.NoError(t, store.Enqueue(records))

			batch, err := store.First(2)
			require.NoError(t, err)
			require.NoError(t, store.Remove(batch))

			assertQueueContains(t, store, records[2:])
		})
	})

	t.Run("removes by content", func(t testbox.TestingT) {
		s.withEmptyStore(t, func(store subsystems.QueueStore) {
			records := makeRecords("a", 4)
			require.NoError(t, store.Enqueue(records))

			require.NoError(t, store.Remove([]otevents.WireRecord{makeRecords("a", 3)[2], records[0]}))

			assertQueueContains(t, store, []otevents.WireRecord{records[1], records[3]})
		})
	})

	t.Run("ignores records that are not queued", func(t testbox.TestingT) {
		s.withEmptyStore(t, func(store subsystems.QueueStore) {
			records := makeRecords("a", 2)
			require.NoError(t, store.Enqueue(records))

			require.NoError(t, store.Remove(makeRecords("b", 2)))

			assertQueueContains(t, store, records)
		})
	})

	t.Run("is idempotent", func(t testbox.TestingT) {
		s.withEmptyStore(t, func(store subsystems.QueueStore) {
			records := makeRecords("a", 3)
			require.NoError(t, store.Enqueue(records))

			require.NoError(t, store.Remove(records[:1]))
			require.NoError(t, store.Remove(records[:1]))

			assertQueueContains(t, store, records[1:])
		})
	})

	t.Run("removes one queued copy per given record", func(t testbox.TestingT) {
		s.withEmptyStore(t, func(store subsystems.QueueStore) {
			a, b := makeRecords("a", 1)[0], makeRecords("b", 1)[0]
			require.NoError(t, store.Enqueue([]otevents.WireRecord{a, b, a}))

			require.NoError(t, store.Remove([]otevents.WireRecord{a}))

			assertQueueContains(t, store, []otevents.WireRecord{b, a})
		})
	})
}

func (s *QueueStoreTestSuite) runDrainTests(t testbox.TestingT) {
	s.withEmptyStore(t, func(store subsystems.QueueStore) {
		records := makeRecords("a", 250)
		require.NoError(t, store.Enqueue(records))

		var drained []otevents.WireRecord
		var batchSizes []int
		for {
			batch, err := store.First(drainBatchSize)
			require.NoError(t, err)
			if len(batch) == 0 {
				break
			}
			batchSizes = append(batchSizes, len(batch))
			drained = append(drained, batch...)
			require.NoError(t, store.Remove(batch))
			if len(batchSizes) > 3 {
				require.Fail(t, "queue was not drained", "batch sizes so far: %v", batchSizes)
			}
		}

		assert.Equal(t, []int{100, 100, 50}, batchSizes)
		assert.Equal(t, recordNames(records), recordNames(drained))
		assertQueueContains(t, store, nil)
	})
}

func (s *QueueStoreTestSuite) runConcurrentEnqueueTests(t testbox.TestingT) {
	s.withEmptyStore(t, func(store subsystems.QueueStore) {
		initial := makeRecords("initial", 30)
		require.NoError(t, store.Enqueue(initial))
		added := makeRecords("added", 30)

		var wg sync.WaitGroup
		enqueueErrs := make(chan error, len(added))
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, r := range added {
				if err := store.Enqueue([]otevents.WireRecord{r}); err != nil {
					enqueueErrs <- err
				}
			}
		}()

		seen := make(map[string]int)
		drainOnce := func() int {
			batch, err := store.First(7)
			require.NoError(t, err)
			for _, r := range batch {
				seen[r.Name]++
			}
			require.NoError(t, store.Remove(batch))
			return len(batch)
		}
		for i := 0; i < 5; i++ {
			drainOnce()
		}
		wg.Wait()
		close(enqueueErrs)
		for err := range enqueueErrs {
			require.NoError(t, err)
		}
		for drainOnce() > 0 {
		}

		for _, r := range append(append([]otevents.WireRecord(nil), initial...), added...) {
			assert.Equal(t, 1, seen[r.Name], fmt.Sprintf("record %s should be drained exactly once", r.Name))
		}
		assert.Len(t, seen, len(initial)+len(added))
	})
}

func (s *QueueStoreTestSuite) runSharedInstanceTests(t testbox.TestingT) {
	s.clearData("")
	store1 := s.makeStore(t, "")
	records := makeRecords("a", 3)
	require.NoError(t, store1.Enqueue(records))
	require.NoError(t, store1.Close())

	store2 := s.makeStore(t, "")
	defer store2.Close() //nolint:errcheck
	assertQueueContains(t, store2, records)

	require.NoError(t, store2.Remove(records[:1]))
	store3 := s.makeStore(t, "")
	defer store3.Close() //nolint:errcheck
	assertQueueContains(t, store3, records[1:])
}

func (s *QueueStoreTestSuite) runPrefixIndependenceTests(t testbox.TestingT) {
	prefix1, prefix2 := "testprefix1", "testprefix2"
	s.clearData(prefix1)
	s.clearData(prefix2)

	store1 := s.makeStore(t, prefix1)
	defer store1.Close() //nolint:errcheck
	store2 := s.makeStore(t, prefix2)
	defer store2.Close() //nolint:errcheck

	records1, records2 := makeRecords("a", 2), makeRecords("b", 3)
	require.NoError(t, store1.Enqueue(records1))
	require.NoError(t, store2.Enqueue(records2))

	assertQueueContains(t, store1, records1)
	assertQueueContains(t, store2, records2)

	require.NoError(t, store1.Remove(records1))
	assertQueueContains(t, store1, nil)
	assertQueueContains(t, store2, records2)
}

func (s *QueueStoreTestSuite) runUnreadableValueTests(t testbox.TestingT) {
	unreadableCount := drainBatchSize + drainBatchSize/2

	t.Run("First reads past more unreadable values than the limit", func(t testbox.TestingT) {
		s.withEmptyStore(t, func(store subsystems.QueueStore) {
			require.NoError(t, s.unreadableWriter("", unreadableCount))
			records := makeRecords("a", 5)
			require.NoError(t, store.Enqueue(records))

			batch, err := store.First(drainBatchSize)
			require.NoError(t, err)
			assert.Equal(t, recordNames(records), recordNames(batch))

			count, err := store.Count()
			require.NoError(t, err)
			assert.Equal(t, unreadableCount+len(records), count)
		})
	})

	t.Run("records behind unreadable values can be drained", func(t testbox.TestingT) {
		s.withEmptyStore(t, func(store subsystems.QueueStore) {
			require.NoError(t, s.unreadableWriter("", unreadableCount))
			records := makeRecords("a", 3)
			require.NoError(t, store.Enqueue(records))

			batch, err := store.First(2)
			require.NoError(t, err)
			assert.Equal(t, recordNames(records[:2]), recordNames(batch))
			require.NoError(t, store.Remove(batch))

			batch, err = store.First(2)
			require.NoError(t, err)
			assert.Equal(t, recordNames(records[2:]), recordNames(batch))
			require.NoError(t, store.Remove(batch))

			batch, err = store.First(2)
			require.NoError(t, err)
			assert.Len(t, batch, 0)
		})
	})
}

func (s *QueueStoreTestSuite) runErrorTests(t testbox.TestingT) {
	if s.errorStoreFactory == nil {
		return
	}
	var store subsystems.QueueStore
	withMockLoggingContext(t, func(context subsystems.ClientContext) {
		var err error
		store, err = s.errorStoreFactory.Build(context)
		require.NoError(t, err)
	})
	defer store.Close() //nolint:errcheck

	validate := func(t testbox.TestingT, err error) {
		if assert.Error(t, err) && s.errorValidator != nil {
			s.errorValidator(t, err)
		}
	}

	t.Run("Enqueue", func(t testbox.TestingT) {
		validate(t, store.Enqueue(makeRecords("a", 1)))
	})
	t.Run("First", func(t testbox.TestingT) {
		_, err := store.First(10)
		validate(t, err)
	})
	t.Run("Remove", func(t testbox.TestingT) {
		validate(t, store.Remove(makeRecords("a", 1)))
	})
	t.Run("Count", func(t testbox.TestingT) {
		_, err := store.Count()
		validate(t, err)
	})
}
