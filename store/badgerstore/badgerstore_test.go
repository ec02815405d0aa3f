package badgerstore

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
		s, err := New(t.TempDir())
		require.NoError(t, err)
		return s
	})
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := New(dir)
	require.NoError(t, err)
	batch := s.NewBatch()
	batch.Put("block/170", []byte("still here"))
	require.NoError(t, batch.Commit(ctx))
	require.NoError(t, s.Close())

	s, err = New(dir)
	require.NoError(t, err)
	defer s.Close()

	value, err := s.Get(ctx, "block/170")
	require.NoError(t, err)
	assert.Equal(t, []byte("still here"), value)
}
