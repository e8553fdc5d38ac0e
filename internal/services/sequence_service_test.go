// internal/services/sequence_service_test.go
package services

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceNextStartsAtOne(t *testing.T) {
	seq := NewSequenceService(newTestDB(t))

	value, err := seq.Next("purchaseId")
	require.NoError(t, err)
	assert.Equal(t, int64(1), value)
}

func TestSequenceNextIsStrictlyIncreasing(t *testing.T) {
	seq := NewSequenceService(newTestDB(t))

	for want := int64(1); want <= 25; want++ {
		got, err := seq.Next("purchaseId")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestSequenceNamesAreIndependent(t *testing.T) {
	seq := NewSequenceService(newTestDB(t))

	for i := 0; i < 3; i++ {
		_, err := seq.Next("purchaseId")
		require.NoError(t, err)
	}

	value, err := seq.Next("other")
	require.NoError(t, err)
	assert.Equal(t, int64(1), value)
}

func TestSequenceNextConcurrentCallersNeverShareAValue(t *testing.T) {
	seq := NewSequenceService(newTestDB(t))

	const workers = 20
	results := make(chan int64, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := seq.Next("purchaseId")
			assert.NoError(t, err)
			results <- value
		}()
	}
	wg.Wait()
	close(results)

	values := make([]int64, 0, workers)
	for v := range results {
		values = append(values, v)
	}

	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	for i, v := range values {
		assert.Equal(t, int64(i+1), v, "ids must be consecutive with no repeats")
	}
}

func TestSequencePeekDoesNotMutate(t *testing.T) {
	seq := NewSequenceService(newTestDB(t))

	// Empty store previews 1
	next, err := seq.Peek("purchaseId")
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)

	// Repeated peeks stay at 1
	next, err = seq.Peek("purchaseId")
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)

	value, err := seq.Next("purchaseId")
	require.NoError(t, err)
	assert.Equal(t, int64(1), value)

	next, err = seq.Peek("purchaseId")
	require.NoError(t, err)
	assert.Equal(t, int64(2), next)
}
