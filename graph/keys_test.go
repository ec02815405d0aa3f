package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blockgraph-io/blockgraph/lib"
)

// The path scheme is shared by ingestion and every query; a drift in
// either direction is a silent correctness bug, so the layout is pinned
// here.
func TestPathScheme(t *testing.T) {
	c := lib.NewCoord(9, 1)

	assert.Equal(t, "block/170", BlockKey(170))
	assert.Equal(t, "tx/9", TxKey(9))
	assert.Equal(t, "output/9/1", OutputKey(c))
	assert.Equal(t, "address/a1", AddressKey("a1"))

	assert.Equal(t, "index/block_txs/170/0", BlockTxKey(170, 0))
	assert.Equal(t, "index/tx_inputs/9/2", TxInputKey(9, 2))
	assert.Equal(t, "index/tx_outputs/9/1", TxOutputKey(9, 1))
	assert.Equal(t, "index/addr_outputs/a1/9:1", AddrOutputKey("a1", c))
	assert.Equal(t, "index/output_addr/9/1", OutputAddrKey(c))
	assert.Equal(t, "index/spent_by/9/1", SpentByKey(c))
	assert.Equal(t, "meta/block_tx_count/170", BlockTxCountKey(170))
}
