package otcomponents

import (
	"github.com/optistream/go-tracking-sdk/internal/memqueue"
	"github.com/optistream/go-tracking-sdk/subsystems"
)

type inMemoryQueueFactory struct{}

func (f inMemoryQueueFactory) Build(clientContext subsystems.ClientContext) (subsystems.QueueStore, error) {
	return memqueue.NewQueueStore(), nil
}

// InMemoryQueue returns the default in-memory QueueStore implementation factory.
//
// Records in this queue are lost when the process exits. To keep them across restarts, use one of the
// database integrations such as otredis.
func InMemoryQueue() subsystems.ComponentConfigurer[subsystems.QueueStore] {
	return inMemoryQueueFactory{}
}
