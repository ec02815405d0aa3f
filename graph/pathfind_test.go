package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockgraph-io/blockgraph/lib"
	"github.com/blockgraph-io/blockgraph/store/memstore"
)

// chainExport: a three-hop spend chain.
//
//	9:0 (a1) -> tx 12 -> 12:0 (a2) -> tx 13 -> 13:0 (a3)
//	                  \> 12:1 (a1, change, unspent)
//	9:1 (a1) unspent
func chainExport() map[string][]string {
	return map[string][]string{
		FileBlocks: {
			"1,1,hashb1,1231469665,1,486604799,1,Block",
			"2,2,hashb2,1231469744,2,486604799,1,Block",
			"3,3,hashb3,1231470173,3,486604799,1,Block",
		},
		FileTransactions: {
			"9,hasht9,0,1,0,200,800,1,Transaction",
			"12,hasht12,0,1,100,250,1000,2,Transaction",
			"13,hasht13,0,1,100,250,1000,3,Transaction",
		},
		FileOutputs: {
			"9:0,5000,pubkey,Output",
			"9:1,100,pubkey,Output",
			"12:0,3000,pubkeyhash,Output",
			"12:1,1900,pubkeyhash,Output",
			"13:0,2900,pubkeyhash,Output",
		},
		FileAddresses: {
			"a1,addr1,pubkey,Address",
			"a2,addr2,pubkeyhash,Address",
			"a3,addr3,pubkeyhash,Address",
		},
		FileContains: {
			"1,9,CONTAINS",
			"2,12,CONTAINS",
			"3,13,CONTAINS",
		},
		FileToAddress: {
			"9:0,a1,TO_ADDRESS",
			"9:1,a1,TO_ADDRESS",
			"12:0,a2,TO_ADDRESS",
			"12:1,a1,TO_ADDRESS",
			"13:0,a3,TO_ADDRESS",
		},
		FileTxInput: {
			"12,9:0,0,4294967295,TX_INPUT",
			"13,12:0,0,4294967295,TX_INPUT",
		},
		FileTxOutput: {
			"9,9:0,0,TX_OUTPUT",
			"9,9:1,1,TX_OUTPUT",
			"12,12:0,0,TX_OUTPUT",
			"12,12:1,1,TX_OUTPUT",
			"13,13:0,0,TX_OUTPUT",
		},
	}
}

func chainGraph(t *testing.T) *Graph {
	t.Helper()
	s := memstore.New()
	_, err := importExport(t, s, chainExport())
	require.NoError(t, err)
	return New(s)
}

func TestFindPathBetweenOutputs(t *testing.T) {
	g := chainGraph(t)
	ctx := context.Background()

	path, err := g.FindPathBetweenOutputs(ctx, lib.NewCoord(9, 0), lib.NewCoord(13, 0), 3)
	require.NoError(t, err)
	assert.Equal(t, []PathNode{
		{Type: NodeOutput, TxID: 9, Vout: 0},
		{Type: NodeTx, TxID: 12},
		{Type: NodeOutput, TxID: 12, Vout: 0},
		{Type: NodeTx, TxID: 13},
		{Type: NodeOutput, TxID: 13, Vout: 0},
	}, path)
}

func TestFindPathBetweenOutputs_DepthBound(t *testing.T) {
	g := chainGraph(t)
	ctx := context.Background()

	// The target is two spend edges away.
	path, err := g.FindPathBetweenOutputs(ctx, lib.NewCoord(9, 0), lib.NewCoord(13, 0), 1)
	require.NoError(t, err)
	assert.Nil(t, path)

	path, err = g.FindPathBetweenOutputs(ctx, lib.NewCoord(9, 0), lib.NewCoord(13, 0), 2)
	require.NoError(t, err)
	assert.Len(t, path, 5)
}

func TestFindPathBetweenOutputs_SameOutput(t *testing.T) {
	// Source equals target even at depth zero, and even when neither
	// exists in the store.
	path, err := New(memstore.New()).FindPathBetweenOutputs(
		context.Background(), lib.NewCoord(9, 0), lib.NewCoord(9, 0), 0)
	require.NoError(t, err)
	assert.Equal(t, []PathNode{{Type: NodeOutput, TxID: 9, Vout: 0}}, path)
}

func TestFindPathBetweenOutputs_ZeroDepth(t *testing.T) {
	g := chainGraph(t)
	path, err := g.FindPathBetweenOutputs(
		context.Background(), lib.NewCoord(9, 0), lib.NewCoord(12, 0), 0)
	require.NoError(t, err)
	assert.Nil(t, path)
}

func TestFindPathBetweenOutputs_UnspentDeadEnd(t *testing.T) {
	g := chainGraph(t)
	path, err := g.FindPathBetweenOutputs(
		context.Background(), lib.NewCoord(9, 1), lib.NewCoord(13, 0), 10)
	require.NoError(t, err)
	assert.Nil(t, path)
}

func TestFindPathBetweenAddresses(t *testing.T) {
	g := chainGraph(t)
	ctx := context.Background()

	path, err := g.FindPathBetweenAddresses(ctx, "a1", "a3", 5)
	require.NoError(t, err)
	require.NotEmpty(t, path)
	assert.Equal(t, PathNode{Type: NodeOutput, TxID: 13, Vout: 0}, path[len(path)-1])
	assert.Equal(t, NodeOutput, path[0].Type)
}

func TestFindPathBetweenAddresses_SharedAddress(t *testing.T) {
	// a1 owns 12:1, which is downstream of 9:0 via tx 12.
	g := chainGraph(t)
	path, err := g.FindPathBetweenAddresses(context.Background(), "a1", "a1", 5)
	require.NoError(t, err)
	require.NotEmpty(t, path)
	// A seed output owned by the target address is itself a path.
	assert.Len(t, path, 1)
}

func TestFindPathBetweenAddresses_NoOutputs(t *testing.T) {
	g := chainGraph(t)
	ctx := context.Background()

	path, err := g.FindPathBetweenAddresses(ctx, "nobody", "a3", 5)
	require.NoError(t, err)
	assert.Nil(t, path)

	path, err = g.FindPathBetweenAddresses(ctx, "a1", "nobody", 5)
	require.NoError(t, err)
	assert.Nil(t, path)
}
