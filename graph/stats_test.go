package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockgraph-io/blockgraph/store/memstore"
)

func TestComputeStats(t *testing.T) {
	s := memstore.New()
	_, err := importExport(t, s, spendExport())
	require.NoError(t, err)

	stats, err := New(s).ComputeStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, &Stats{
		Blocks:           3,
		Transactions:     2,
		Addresses:        2,
		Inputs:           1,
		Outputs:          3,
		SpentOutputs:     1,
		UnspentOutputs:   2,
		MaxOutputValue:   5000,
		TotalOutputValue: 9900,
		MaxFee:           100,
		TotalFees:        100,
		TxLocktimeSet:    0,
		TxVersionGt1:     0,
		AvgTxPerBlockX1k: 666, // 2 txs over 3 blocks
		MaxTxPerBlock:    1,
	}, stats)
}

func TestComputeStats_Empty(t *testing.T) {
	stats, err := New(memstore.New()).ComputeStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Stats{}, stats)
}

func TestCountHighFeeTxs(t *testing.T) {
	rows := spendExport()
	rows[FileTransactions] = append(rows[FileTransactions],
		"20,hash20,500000,2,2000000000,300,1200,171,Transaction")
	rows[FileContains] = append(rows[FileContains], "171,20,CONTAINS")

	s := memstore.New()
	_, err := importExport(t, s, rows)
	require.NoError(t, err)
	g := New(s)
	ctx := context.Background()

	high, err := g.CountHighFeeTxs(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), high)

	locktime, err := g.CountTxLocktimeSet(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), locktime)

	version, err := g.CountTxVersionGt1(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	maxPerBlock, err := g.MaxTxPerBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), maxPerBlock)
}
