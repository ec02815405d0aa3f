package graph

import (
	"context"
	"strconv"
)

// Full-store aggregate queries. These scan entire index families or
// entity prefixes and run to completion; there are no progress or
// cancellation hooks beyond ctx reaching the store adapter.

// HighFeeThreshold marks a transaction fee as unusually large, in base
// units (10 BTC in satoshis).
const HighFeeThreshold = 1_000_000_000

// MultiInputThreshold is the input count above which a transaction is
// counted as multi-input.
const MultiInputThreshold = 10

// Stats is the full aggregate view of the store.
type Stats struct {
	Blocks           int64 `json:"blocks"`
	Transactions     int64 `json:"transactions"`
	Addresses        int64 `json:"addresses"`
	Inputs           int64 `json:"inputs"`
	Outputs          int64 `json:"outputs"`
	SpentOutputs     int64 `json:"spent_outputs"`
	UnspentOutputs   int64 `json:"unspent_outputs"`
	MaxOutputValue   int64 `json:"max_output_value"`
	TotalOutputValue int64 `json:"total_output_value"`
	MaxFee           int64 `json:"max_fee"`
	TotalFees        int64 `json:"total_fees"`
	TxLocktimeSet    int64 `json:"tx_locktime_set"`
	TxVersionGt1     int64 `json:"tx_version_gt_1"`
	AvgTxPerBlockX1k int64 `json:"avg_tx_per_block_x1000"`
	MaxTxPerBlock    int64 `json:"max_tx_per_block"`
	HighFeeTxs       int64 `json:"high_fee_txs"`
	MultiInputTxs    int64 `json:"multi_input_txs"`
}

// ComputeStats runs every aggregate query.
func (g *Graph) ComputeStats(ctx context.Context) (*Stats, error) {
	s := &Stats{}
	var err error
	if s.Blocks, err = g.CountBlocks(ctx); err != nil {
		return nil, err
	}
	if s.Transactions, err = g.CountTransactions(ctx); err != nil {
		return nil, err
	}
	if s.Addresses, err = g.CountAddresses(ctx); err != nil {
		return nil, err
	}
	if s.Inputs, err = g.CountInputs(ctx); err != nil {
		return nil, err
	}
	if s.Outputs, err = g.CountOutputs(ctx); err != nil {
		return nil, err
	}
	if s.SpentOutputs, err = g.CountSpentOutputs(ctx); err != nil {
		return nil, err
	}
	s.UnspentOutputs = s.Outputs - s.SpentOutputs
	if s.MaxOutputValue, err = g.MaxOutputValue(ctx); err != nil {
		return nil, err
	}
	if s.TotalOutputValue, err = g.TotalOutputValue(ctx); err != nil {
		return nil, err
	}
	if s.MaxFee, err = g.MaxFee(ctx); err != nil {
		return nil, err
	}
	if s.TotalFees, err = g.TotalFees(ctx); err != nil {
		return nil, err
	}
	if s.TxLocktimeSet, err = g.CountTxLocktimeSet(ctx); err != nil {
		return nil, err
	}
	if s.TxVersionGt1, err = g.CountTxVersionGt1(ctx); err != nil {
		return nil, err
	}
	if s.AvgTxPerBlockX1k, err = g.AvgTxPerBlockMilli(ctx); err != nil {
		return nil, err
	}
	if s.MaxTxPerBlock, err = g.MaxTxPerBlock(ctx); err != nil {
		return nil, err
	}
	if s.HighFeeTxs, err = g.CountHighFeeTxs(ctx); err != nil {
		return nil, err
	}
	if s.MultiInputTxs, err = g.CountMultiInputTxs(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// CountBlocks returns the number of blocks in the store.
func (g *Graph) CountBlocks(ctx context.Context) (int64, error) {
	return g.countChildren(ctx, BlocksPrefix)
}

// CountTransactions returns the number of transactions in the store.
func (g *Graph) CountTransactions(ctx context.Context) (int64, error) {
	return g.countChildren(ctx, TxsPrefix)
}

// CountAddresses returns the number of addresses in the store.
func (g *Graph) CountAddresses(ctx context.Context) (int64, error) {
	return g.countChildren(ctx, AddressesPrefix)
}

// CountInputs returns the total entry count of the tx_inputs index.
func (g *Graph) CountInputs(ctx context.Context) (int64, error) {
	return g.countGrandchildren(ctx, TxInputsPrefix)
}

// CountOutputs returns the total entry count of the tx_outputs index.
func (g *Graph) CountOutputs(ctx context.Context) (int64, error) {
	return g.countGrandchildren(ctx, TxOutputsPrefix)
}

// CountSpentOutputs returns the total entry count of the spent_by index.
func (g *Graph) CountSpentOutputs(ctx context.Context) (int64, error) {
	return g.countGrandchildren(ctx, SpentByPrefix)
}

// CountUnspentOutputs returns the number of outputs with no spend entry.
func (g *Graph) CountUnspentOutputs(ctx context.Context) (int64, error) {
	outputs, err := g.CountOutputs(ctx)
	if err != nil {
		return 0, err
	}
	spent, err := g.CountSpentOutputs(ctx)
	if err != nil {
		return 0, err
	}
	return outputs - spent, nil
}

// MaxOutputValue returns the largest output value in the store.
func (g *Graph) MaxOutputValue(ctx context.Context) (int64, error) {
	var max int64
	err := g.scanOutputs(ctx, func(o *Output) {
		if o.Value > max {
			max = o.Value
		}
	})
	return max, err
}

// TotalOutputValue sums every output value in the store.
func (g *Graph) TotalOutputValue(ctx context.Context) (int64, error) {
	var total int64
	err := g.scanOutputs(ctx, func(o *Output) {
		total += o.Value
	})
	return total, err
}

// MaxFee returns the largest transaction fee.
func (g *Graph) MaxFee(ctx context.Context) (int64, error) {
	var max int64
	err := g.scanTransactions(ctx, func(tx *Transaction) {
		if tx.Fee > max {
			max = tx.Fee
		}
	})
	return max, err
}

// TotalFees sums every transaction fee.
func (g *Graph) TotalFees(ctx context.Context) (int64, error) {
	var total int64
	err := g.scanTransactions(ctx, func(tx *Transaction) {
		total += tx.Fee
	})
	return total, err
}

// CountTxLocktimeSet counts transactions with a non-zero locktime.
func (g *Graph) CountTxLocktimeSet(ctx context.Context) (int64, error) {
	var count int64
	err := g.scanTransactions(ctx, func(tx *Transaction) {
		if tx.Locktime > 0 {
			count++
		}
	})
	return count, err
}

// CountTxVersionGt1 counts transactions with version above 1.
func (g *Graph) CountTxVersionGt1(ctx context.Context) (int64, error) {
	var count int64
	err := g.scanTransactions(ctx, func(tx *Transaction) {
		if tx.Version > 1 {
			count++
		}
	})
	return count, err
}

// CountHighFeeTxs counts transactions whose fee exceeds
// HighFeeThreshold.
func (g *Graph) CountHighFeeTxs(ctx context.Context) (int64, error) {
	var count int64
	err := g.scanTransactions(ctx, func(tx *Transaction) {
		if tx.Fee > HighFeeThreshold {
			count++
		}
	})
	return count, err
}

// CountMultiInputTxs counts transactions with more than
// MultiInputThreshold inputs.
func (g *Graph) CountMultiInputTxs(ctx context.Context) (int64, error) {
	txDirs, err := g.store.List(ctx, TxInputsPrefix)
	if err != nil {
		return 0, err
	}

	var count int64
	for _, txDir := range txDirs {
		inputs, err := g.store.List(ctx, TxInputsPrefix+"/"+txDir)
		if err != nil {
			return 0, err
		}
		if len(inputs) > MultiInputThreshold {
			count++
		}
	}
	return count, nil
}

// AvgTxPerBlockMilli returns the mean transaction count per block,
// scaled by 1000 for precision.
func (g *Graph) AvgTxPerBlockMilli(ctx context.Context) (int64, error) {
	blocks, err := g.CountBlocks(ctx)
	if err != nil || blocks == 0 {
		return 0, err
	}
	txs, err := g.CountTransactions(ctx)
	if err != nil {
		return 0, err
	}
	return txs * 1000 / blocks, nil
}

// MaxTxPerBlock returns the largest per-block transaction count.
func (g *Graph) MaxTxPerBlock(ctx context.Context) (int64, error) {
	heights, err := g.store.List(ctx, BlockTxsPrefix)
	if err != nil {
		return 0, err
	}

	var max int64
	for _, height := range heights {
		txs, err := g.store.List(ctx, BlockTxsPrefix+"/"+height)
		if err != nil {
			return 0, err
		}
		if int64(len(txs)) > max {
			max = int64(len(txs))
		}
	}
	return max, nil
}

func (g *Graph) countChildren(ctx context.Context, prefix string) (int64, error) {
	children, err := g.store.List(ctx, prefix)
	if err != nil {
		return 0, err
	}
	return int64(len(children)), nil
}

func (g *Graph) countGrandchildren(ctx context.Context, prefix string) (int64, error) {
	dirs, err := g.store.List(ctx, prefix)
	if err != nil {
		return 0, err
	}

	var count int64
	for _, dir := range dirs {
		children, err := g.store.List(ctx, prefix+"/"+dir)
		if err != nil {
			return 0, err
		}
		count += int64(len(children))
	}
	return count, nil
}

func (g *Graph) scanTransactions(ctx context.Context, visit func(*Transaction)) error {
	children, err := g.store.List(ctx, TxsPrefix)
	if err != nil {
		return err
	}
	for _, child := range children {
		txID, err := strconv.ParseUint(child, 10, 64)
		if err != nil {
			continue
		}
		tx, err := g.GetTransaction(ctx, txID)
		if err != nil {
			return err
		}
		if tx != nil {
			visit(tx)
		}
	}
	return nil
}

func (g *Graph) scanOutputs(ctx context.Context, visit func(*Output)) error {
	txDirs, err := g.store.List(ctx, OutputsPrefix)
	if err != nil {
		return err
	}
	for _, txDir := range txDirs {
		vouts, err := g.store.List(ctx, OutputsPrefix+"/"+txDir)
		if err != nil {
			return err
		}
		for _, vout := range vouts {
			blob, err := g.store.Get(ctx, OutputsPrefix+"/"+txDir+"/"+vout)
			if err != nil {
				return err
			}
			if output, ok := DecodeOutput(blob); ok {
				visit(output)
			}
		}
	}
	return nil
}
