package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockgraph-io/blockgraph/store"
	"github.com/blockgraph-io/blockgraph/store/storetest"
)

func TestContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return New()
	})
}

func TestGet_ReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()

	batch := s.NewBatch()
	batch.Put("k", []byte("abc"))
	require.NoError(t, batch.Commit(ctx))

	value, err := s.Get(ctx, "k")
	require.NoError(t, err)
	value[0] = 'x'

	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestLenAndSnapshot(t *testing.T) {
	s := New()
	ctx := context.Background()

	batch := s.NewBatch()
	batch.Put("tx/9", []byte("nine"))
	batch.Put("tx/12", []byte("twelve"))
	require.NoError(t, batch.Commit(ctx))

	assert.Equal(t, 2, s.Len())
	snap := s.Snapshot()
	assert.Equal(t, []byte("nine"), snap["tx/9"])

	// The snapshot is detached from later writes.
	batch = s.NewBatch()
	batch.Put("tx/13", []byte("thirteen"))
	require.NoError(t, batch.Commit(ctx))
	assert.Len(t, snap, 2)
}
