package ident

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type kindA struct{}
type kindB struct{}

func TestAllocatorStartsAtZero(t *testing.T) {
	alloc := NewAllocator[kindA]()

	for want := uint32(0); want < 5; want++ {
		assert.Equal(t, want, alloc.Next().Value())
	}
	assert.Equal(t, uint32(5), alloc.Peek())
}

func TestAllocatorsDoNotShareCounters(t *testing.T) {
	a := NewAllocator[kindA]()
	b := NewAllocator[kindB]()

	a.Next()
	a.Next()

	assert.Equal(t, uint32(0), b.Next().Value())
	assert.Equal(t, uint32(2), a.Next().Value())
}

func TestAllocatorsOfSameKindAreIndependent(t *testing.T) {
	first := NewAllocator[kindA]()
	second := NewAllocator[kindA]()

	first.Next()

	assert.Equal(t, uint32(0), second.Next().Value())
}

func TestResumeAllocator(t *testing.T) {
	alloc := ResumeAllocator[kindA](7)

	assert.Equal(t, uint32(7), alloc.Next().Value())
	assert.Equal(t, uint32(8), alloc.Next().Value())
}

func TestAllocatorConcurrentUse(t *testing.T) {
	const workers = 16
	const perWorker = 500

	alloc := NewAllocator[kindA]()

	var mu sync.Mutex
	seen := make(map[uint32]struct{}, workers*perWorker)

	var g errgroup.Group
	for range workers {
		g.Go(func() error {
			local := make([]uint32, 0, perWorker)
			prev := int64(-1)
			for range perWorker {
				v := alloc.Next().Value()
				// Values seen by a single caller must still be increasing
				assert.Greater(t, int64(v), prev)
				prev = int64(v)
				local = append(local, v)
			}
			mu.Lock()
			defer mu.Unlock()
			for _, v := range local {
				seen[v] = struct{}{}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	require.Len(t, seen, workers*perWorker)
	for v := uint32(0); v < workers*perWorker; v++ {
		_, ok := seen[v]
		assert.True(t, ok, "missing id %d", v)
	}
}

func TestIDOrdering(t *testing.T) {
	low := FromValue[kindA](1)
	high := FromValue[kindA](2)

	assert.True(t, low.Less(high))
	assert.False(t, high.Less(low))
	assert.Equal(t, -1, low.Compare(high))
	assert.Equal(t, 1, high.Compare(low))
	assert.Equal(t, 0, low.Compare(FromValue[kindA](1)))
}

func TestIDsOfDifferentKindsAreDistinctTypes(t *testing.T) {
	a := FromValue[kindA](0)
	b := FromValue[kindB](0)

	// Same underlying value, but the types differ so they can never be
	// compared with ==; boxing them shows they are not equal either.
	assert.NotEqual(t, any(a), any(b))
	assert.Equal(t, a.Value(), b.Value())
}

func TestIDStringAndParse(t *testing.T) {
	id := FromValue[kindA](42)
	assert.Equal(t, "42", id.String())

	parsed, err := Parse[kindA]("42")
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = Parse[kindA]("-1")
	assert.Error(t, err)
	_, err = Parse[kindA]("abc")
	assert.Error(t, err)
}

func TestIDJSON(t *testing.T) {
	id := FromValue[kindA](3)

	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, "3", string(data))

	var decoded ID[kindA]
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded)
}
