// Package storetest exercises the store.Store contract. Every backend
// runs the same suite so Get, Exists, List, and batch semantics cannot
// drift between them.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockgraph-io/blockgraph/store"
)

// Run exercises a backend against the Store contract. open must return
// an empty store; each subtest gets its own.
func Run(t *testing.T, open func(t *testing.T) store.Store) {
	ctx := context.Background()

	t.Run("absent", func(t *testing.T) {
		s := open(t)
		defer s.Close()

		value, err := s.Get(ctx, "block/1")
		require.NoError(t, err)
		assert.Nil(t, value)

		ok, err := s.Exists(ctx, "block/1")
		require.NoError(t, err)
		assert.False(t, ok)

		children, err := s.List(ctx, "block")
		require.NoError(t, err)
		assert.Empty(t, children)
	})

	t.Run("put get exists", func(t *testing.T) {
		s := open(t)
		defer s.Close()

		batch := s.NewBatch()
		batch.Put("tx/9", []byte("nine"))
		require.NoError(t, batch.Commit(ctx))

		value, err := s.Get(ctx, "tx/9")
		require.NoError(t, err)
		assert.Equal(t, []byte("nine"), value)

		ok, err := s.Exists(ctx, "tx/9")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("list immediate children", func(t *testing.T) {
		s := open(t)
		defer s.Close()

		batch := s.NewBatch()
		batch.Put("index/block_txs/5/0", []byte("a"))
		batch.Put("index/block_txs/5/1", []byte("b"))
		batch.Put("index/block_txs/12/0", []byte("c"))
		require.NoError(t, batch.Commit(ctx))

		children, err := s.List(ctx, "index/block_txs")
		require.NoError(t, err)
		assert.Equal(t, []string{"12", "5"}, children)

		children, err = s.List(ctx, "index/block_txs/5")
		require.NoError(t, err)
		assert.Equal(t, []string{"0", "1"}, children)
	})

	t.Run("list extending sibling names", func(t *testing.T) {
		// "10" string-extends its sibling "1". Decimal heights and
		// ordinals hit this constantly, so no listing may skip it.
		s := open(t)
		defer s.Close()

		batch := s.NewBatch()
		for _, height := range []string{"1", "10", "11", "2"} {
			batch.Put("block/"+height, []byte(height))
		}
		batch.Put("index/block_txs/5/1", []byte("a"))
		batch.Put("index/block_txs/5/10", []byte("b"))
		batch.Put("index/block_txs/5/2", []byte("c"))
		require.NoError(t, batch.Commit(ctx))

		children, err := s.List(ctx, "block")
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "10", "11", "2"}, children)

		children, err = s.List(ctx, "index/block_txs/5")
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "10", "2"}, children)
	})

	t.Run("list leaf with subtree", func(t *testing.T) {
		s := open(t)
		defer s.Close()

		batch := s.NewBatch()
		batch.Put("output/9", []byte("leaf"))
		batch.Put("output/9/0", []byte("zero"))
		batch.Put("output/9/1", []byte("one"))
		batch.Put("output/10/0", []byte("ten"))
		require.NoError(t, batch.Commit(ctx))

		children, err := s.List(ctx, "output")
		require.NoError(t, err)
		assert.Equal(t, []string{"10", "9"}, children)

		children, err = s.List(ctx, "output/9")
		require.NoError(t, err)
		assert.Equal(t, []string{"0", "1"}, children)
	})

	t.Run("batch invisible until commit", func(t *testing.T) {
		s := open(t)
		defer s.Close()

		batch := s.NewBatch()
		batch.Put("tx/9", []byte("pending"))
		assert.Equal(t, 1, batch.Len())

		ok, err := s.Exists(ctx, "tx/9")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, batch.Commit(ctx))
		assert.Equal(t, 0, batch.Len())

		ok, err = s.Exists(ctx, "tx/9")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
