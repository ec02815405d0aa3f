package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockgraph-io/blockgraph/lib"
	"github.com/blockgraph-io/blockgraph/store/memstore"
)

func TestGetters_Absent(t *testing.T) {
	g := New(memstore.New())
	ctx := context.Background()

	block, err := g.GetBlock(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, block)

	tx, err := g.GetTransaction(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, tx)

	output, err := g.GetOutput(ctx, lib.NewCoord(999, 0))
	require.NoError(t, err)
	assert.Nil(t, output)

	addr, err := g.GetAddress(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, addr)

	spender, err := g.OutputSpentBy(ctx, lib.NewCoord(999, 0))
	require.NoError(t, err)
	assert.Nil(t, spender)

	owner, err := g.OutputAddress(ctx, lib.NewCoord(999, 0))
	require.NoError(t, err)
	assert.Nil(t, owner)
}

func TestGetBlock_Fields(t *testing.T) {
	s := memstore.New()
	_, err := importExport(t, s, twoBlockExport())
	require.NoError(t, err)

	block, err := New(s).GetBlock(context.Background(), 170)
	require.NoError(t, err)
	require.NotNil(t, block)
	assert.Equal(t, uint64(170), block.Height)
	assert.Equal(t, "00000000d1145790a8694403d4063f32", block.Hash)
	assert.Equal(t, int64(1231731025), block.Timestamp)
	assert.Equal(t, uint64(1889418792), block.Nonce)
	assert.Equal(t, uint64(486604799), block.Bits)
	assert.Equal(t, int64(1), block.Version)
}

func TestTxOutputs_VoutOrder(t *testing.T) {
	s := memstore.New()
	_, err := importExport(t, s, twoBlockExport())
	require.NoError(t, err)

	outputs, err := New(s).TxOutputs(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, outputs, 2)
	assert.Equal(t, uint32(0), outputs[0].Vout)
	assert.Equal(t, int64(5000), outputs[0].Value)
	assert.Equal(t, uint32(1), outputs[1].Vout)
}

func TestTxInputs_ResolvesSpend(t *testing.T) {
	s := memstore.New()
	_, err := importExport(t, s, spendExport())
	require.NoError(t, err)

	inputs, err := New(s).TxInputs(context.Background(), 12)
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, lib.NewCoord(9, 0), inputs[0].Spent())
	assert.Equal(t, uint32(4294967295), inputs[0].Sequence)
}

func TestAddressOutputs(t *testing.T) {
	s := memstore.New()
	_, err := importExport(t, s, spendExport())
	require.NoError(t, err)

	outputs, err := New(s).AddressOutputs(context.Background(), "a1")
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	assert.Equal(t, lib.NewCoord(9, 0), outputs[0].Coord())
}

// An index entry whose target record never arrived is skipped, not an
// error.
func TestBlockTransactions_DanglingReferenceDropped(t *testing.T) {
	s := memstore.New()
	_, err := importExport(t, s, twoBlockExport())
	require.NoError(t, err)

	ctx := context.Background()
	batch := s.NewBatch()
	batch.Put(BlockTxKey(170, 1), Encode(&TxRef{TxID: 9999}))
	require.NoError(t, batch.Commit(ctx))

	txs, err := New(s).BlockTransactions(ctx, 170)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, uint64(9), txs[0].TxID)
}

func TestLastBlockHeight_Empty(t *testing.T) {
	last, err := New(memstore.New()).LastBlockHeight(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(-1), last)
}

func TestBlockChain_SkipsGaps(t *testing.T) {
	s := memstore.New()
	_, err := importExport(t, s, twoBlockExport())
	require.NoError(t, err)

	// Heights 0 and 170 exist; everything between is a gap.
	blocks, err := New(s).BlockChain(context.Background(), 0, 200)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, uint64(0), blocks[0].Height)
	assert.Equal(t, uint64(170), blocks[1].Height)
}

func TestTxDetails(t *testing.T) {
	s := memstore.New()
	_, err := importExport(t, s, spendExport())
	require.NoError(t, err)

	details, err := New(s).TxDetails(context.Background(), 12)
	require.NoError(t, err)
	require.NotNil(t, details)

	assert.Equal(t, uint64(12), details.Tx.TxID)
	require.NotNil(t, details.Block)
	assert.Equal(t, uint64(171), details.Block.Height)

	require.Len(t, details.Inputs, 1)
	require.NotNil(t, details.Inputs[0].SpentOutput)
	assert.Equal(t, int64(5000), details.Inputs[0].SpentOutput.Value)
	require.NotNil(t, details.Inputs[0].Address)
	assert.Equal(t, "a1", details.Inputs[0].Address.AddressID)

	require.Len(t, details.Outputs, 1)
	assert.Equal(t, int64(4900), details.Outputs[0].Output.Value)
	require.NotNil(t, details.Outputs[0].Address)
	assert.Equal(t, "a2", details.Outputs[0].Address.AddressID)
}

func TestTxDetails_Absent(t *testing.T) {
	details, err := New(memstore.New()).TxDetails(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, details)
}

func TestBlockWithCoinbase(t *testing.T) {
	s := memstore.New()
	_, err := importExport(t, s, twoBlockExport())
	require.NoError(t, err)
	g := New(s)
	ctx := context.Background()

	view, err := g.BlockWithCoinbase(ctx, 170)
	require.NoError(t, err)
	require.NotNil(t, view)
	require.NotNil(t, view.Coinbase)
	assert.Equal(t, uint64(9), view.Coinbase.TxID)

	// Block 0 has no transactions in this export.
	view, err = g.BlockWithCoinbase(ctx, 0)
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Nil(t, view.Coinbase)
}
