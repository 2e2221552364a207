package otcomponents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optistream/go-tracking-sdk/internal/memqueue"
)

func TestInMemoryQueueFactory(t *testing.T) {
	store, err := InMemoryQueue().Build(basicClientContext())
	require.NoError(t, err)
	require.NotNil(t, store)
	assert.IsType(t, memqueue.NewQueueStore(), store)
}
