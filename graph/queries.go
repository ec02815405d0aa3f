package graph

import (
	"context"
	"sort"
	"strconv"

	"github.com/blockgraph-io/blockgraph/lib"
	"github.com/blockgraph-io/blockgraph/store"
)

// Graph is the query handle over an ingested store. It holds no state
// beyond the store reference; concurrent reads are as safe as the
// backing store's snapshot guarantees.
type Graph struct {
	store store.Store
}

func New(s store.Store) *Graph {
	return &Graph{store: s}
}

// Store returns the backing store.
func (g *Graph) Store() store.Store {
	return g.store
}

// GetBlock returns the block at height, or nil if absent.
func (g *Graph) GetBlock(ctx context.Context, height uint64) (*Block, error) {
	blob, err := g.store.Get(ctx, BlockKey(height))
	if err != nil || blob == nil {
		return nil, err
	}
	block, _ := DecodeBlock(blob)
	return block, nil
}

// GetTransaction returns the transaction with txID, or nil if absent.
func (g *Graph) GetTransaction(ctx context.Context, txID uint64) (*Transaction, error) {
	blob, err := g.store.Get(ctx, TxKey(txID))
	if err != nil || blob == nil {
		return nil, err
	}
	tx, _ := DecodeTransaction(blob)
	return tx, nil
}

// GetOutput returns the output at coord, or nil if absent.
func (g *Graph) GetOutput(ctx context.Context, coord lib.Coord) (*Output, error) {
	blob, err := g.store.Get(ctx, OutputKey(coord))
	if err != nil || blob == nil {
		return nil, err
	}
	output, _ := DecodeOutput(blob)
	return output, nil
}

// GetAddress returns the address record, or nil if absent.
func (g *Graph) GetAddress(ctx context.Context, addressID string) (*Address, error) {
	blob, err := g.store.Get(ctx, AddressKey(addressID))
	if err != nil || blob == nil {
		return nil, err
	}
	addr, _ := DecodeAddress(blob)
	return addr, nil
}

// BlockTransactions returns the block's transactions in ordinal order —
// the order their contains rows were first encountered during ingestion.
// Callers rely on the coinbase being first. Dangling references are
// dropped.
func (g *Graph) BlockTransactions(ctx context.Context, height uint64) ([]*Transaction, error) {
	ordinals, err := g.listOrdinals(ctx, BlockTxsKey(height))
	if err != nil {
		return nil, err
	}

	txs := make([]*Transaction, 0, len(ordinals))
	for _, ordinal := range ordinals {
		blob, err := g.store.Get(ctx, BlockTxKey(height, ordinal))
		if err != nil {
			return nil, err
		}
		ref, ok := DecodeTxRef(blob)
		if !ok {
			continue
		}
		tx, err := g.GetTransaction(ctx, ref.TxID)
		if err != nil {
			return nil, err
		}
		if tx != nil {
			txs = append(txs, tx)
		}
	}
	return txs, nil
}

// TxInputs returns the transaction's inputs in declared-index order.
func (g *Graph) TxInputs(ctx context.Context, txID uint64) ([]*Input, error) {
	ordinals, err := g.listOrdinals(ctx, TxInputsKey(txID))
	if err != nil {
		return nil, err
	}

	inputs := make([]*Input, 0, len(ordinals))
	for _, ordinal := range ordinals {
		blob, err := g.store.Get(ctx, TxInputKey(txID, ordinal))
		if err != nil {
			return nil, err
		}
		if input, ok := DecodeInput(blob); ok {
			inputs = append(inputs, input)
		}
	}
	return inputs, nil
}

// TxOutputs returns the transaction's outputs in vout order. Dangling
// references are dropped.
func (g *Graph) TxOutputs(ctx context.Context, txID uint64) ([]*Output, error) {
	vouts, err := g.listOrdinals(ctx, TxOutputsKey(txID))
	if err != nil {
		return nil, err
	}

	outputs := make([]*Output, 0, len(vouts))
	for _, vout := range vouts {
		blob, err := g.store.Get(ctx, TxOutputKey(txID, uint32(vout)))
		if err != nil {
			return nil, err
		}
		ref, ok := DecodeOutputRef(blob)
		if !ok {
			continue
		}
		output, err := g.GetOutput(ctx, ref.Coord())
		if err != nil {
			return nil, err
		}
		if output != nil {
			outputs = append(outputs, output)
		}
	}
	return outputs, nil
}

// AddressOutputs returns every output ever received by the address, in
// stored order, spent or not. Dangling references are dropped.
func (g *Graph) AddressOutputs(ctx context.Context, addressID string) ([]*Output, error) {
	children, err := g.store.List(ctx, AddrOutputsKey(addressID))
	if err != nil {
		return nil, err
	}

	outputs := make([]*Output, 0, len(children))
	for _, child := range children {
		blob, err := g.store.Get(ctx, AddrOutputsKey(addressID)+"/"+child)
		if err != nil {
			return nil, err
		}
		ref, ok := DecodeOutputRef(blob)
		if !ok {
			continue
		}
		output, err := g.GetOutput(ctx, ref.Coord())
		if err != nil {
			return nil, err
		}
		if output != nil {
			outputs = append(outputs, output)
		}
	}
	return outputs, nil
}

// AddressBalance sums the value of the address's unspent outputs. The
// balance is recomputed from scratch on every call; cost is linear in
// the outputs the address has ever received.
func (g *Graph) AddressBalance(ctx context.Context, addressID string) (int64, error) {
	outputs, err := g.AddressOutputs(ctx, addressID)
	if err != nil {
		return 0, err
	}

	var balance int64
	for _, output := range outputs {
		spent, err := g.IsOutputSpent(ctx, output.Coord())
		if err != nil {
			return 0, err
		}
		if !spent {
			balance += output.Value
		}
	}
	return balance, nil
}

// OutputSpentBy returns the reference to the transaction that consumed
// the output, or nil if it is unspent.
func (g *Graph) OutputSpentBy(ctx context.Context, coord lib.Coord) (*TxRef, error) {
	blob, err := g.store.Get(ctx, SpentByKey(coord))
	if err != nil || blob == nil {
		return nil, err
	}
	ref, _ := DecodeTxRef(blob)
	return ref, nil
}

// IsOutputSpent reports whether the output has been consumed.
func (g *Graph) IsOutputSpent(ctx context.Context, coord lib.Coord) (bool, error) {
	return g.store.Exists(ctx, SpentByKey(coord))
}

// OutputAddress returns the address owning the output, or nil when no
// to_address relationship was recorded for it.
func (g *Graph) OutputAddress(ctx context.Context, coord lib.Coord) (*Address, error) {
	blob, err := g.store.Get(ctx, OutputAddrKey(coord))
	if err != nil || blob == nil {
		return nil, err
	}
	ref, ok := DecodeAddrRef(blob)
	if !ok {
		return nil, nil
	}
	return g.GetAddress(ctx, ref.AddressID)
}

// LastBlockHeight returns the maximum known block height, or -1 for an
// empty store.
func (g *Graph) LastBlockHeight(ctx context.Context) (int64, error) {
	children, err := g.store.List(ctx, BlocksPrefix)
	if err != nil {
		return -1, err
	}

	last := int64(-1)
	for _, child := range children {
		height, err := strconv.ParseInt(child, 10, 64)
		if err != nil {
			continue
		}
		if height > last {
			last = height
		}
	}
	return last, nil
}

// BlockChain returns up to count consecutive blocks starting at height
// start. Heights with no block are skipped.
func (g *Graph) BlockChain(ctx context.Context, start uint64, count int) ([]*Block, error) {
	blocks := make([]*Block, 0, count)
	for i := 0; i < count; i++ {
		block, err := g.GetBlock(ctx, start+uint64(i))
		if err != nil {
			return nil, err
		}
		if block != nil {
			blocks = append(blocks, block)
		}
	}
	return blocks, nil
}

// listOrdinals lists the children of an index prefix and returns them as
// numerically sorted ordinals. Non-numeric children are ignored.
func (g *Graph) listOrdinals(ctx context.Context, prefix string) ([]uint64, error) {
	children, err := g.store.List(ctx, prefix)
	if err != nil {
		return nil, err
	}

	ordinals := make([]uint64, 0, len(children))
	for _, child := range children {
		ordinal, err := strconv.ParseUint(child, 10, 64)
		if err != nil {
			continue
		}
		ordinals = append(ordinals, ordinal)
	}
	sort.Slice(ordinals, func(i, j int) bool { return ordinals[i] < ordinals[j] })
	return ordinals, nil
}
