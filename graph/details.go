package graph

import "context"

// InputDetail pairs an input with its consumed output and that output's
// owning address, where resolvable.
type InputDetail struct {
	Input       *Input   `json:"input"`
	SpentOutput *Output  `json:"spent_output,omitempty"`
	Address     *Address `json:"address,omitempty"`
}

// OutputDetail pairs an output with its owning address, where known.
type OutputDetail struct {
	Output  *Output  `json:"output"`
	Address *Address `json:"address,omitempty"`
}

// TxDetails is a read-only aggregate over one transaction: the record
// itself, its resolved inputs and outputs, and its containing block. It
// is composed per call, never stored.
type TxDetails struct {
	Tx      *Transaction   `json:"tx"`
	Block   *Block         `json:"block,omitempty"`
	Inputs  []InputDetail  `json:"inputs"`
	Outputs []OutputDetail `json:"outputs"`
}

// TxDetails composes the full view of a transaction, or nil when the
// transaction is absent.
func (g *Graph) TxDetails(ctx context.Context, txID uint64) (*TxDetails, error) {
	tx, err := g.GetTransaction(ctx, txID)
	if err != nil || tx == nil {
		return nil, err
	}

	details := &TxDetails{Tx: tx}

	details.Block, err = g.GetBlock(ctx, tx.BlockHeight)
	if err != nil {
		return nil, err
	}

	inputs, err := g.TxInputs(ctx, txID)
	if err != nil {
		return nil, err
	}
	details.Inputs = make([]InputDetail, 0, len(inputs))
	for _, input := range inputs {
		detail := InputDetail{Input: input}
		if detail.SpentOutput, err = g.GetOutput(ctx, input.Spent()); err != nil {
			return nil, err
		}
		if detail.Address, err = g.OutputAddress(ctx, input.Spent()); err != nil {
			return nil, err
		}
		details.Inputs = append(details.Inputs, detail)
	}

	outputs, err := g.TxOutputs(ctx, txID)
	if err != nil {
		return nil, err
	}
	details.Outputs = make([]OutputDetail, 0, len(outputs))
	for _, output := range outputs {
		detail := OutputDetail{Output: output}
		if detail.Address, err = g.OutputAddress(ctx, output.Coord()); err != nil {
			return nil, err
		}
		details.Outputs = append(details.Outputs, detail)
	}

	return details, nil
}

// BlockView pairs a block with its coinbase transaction.
type BlockView struct {
	Block    *Block       `json:"block"`
	Coinbase *Transaction `json:"coinbase,omitempty"`
}

// BlockWithCoinbase returns the block plus its first transaction by
// ordinal position. First-by-ordinal is a heuristic coinbase detector:
// the contains relationship lists the coinbase first in well-formed
// exports, and no zero-input check is made.
func (g *Graph) BlockWithCoinbase(ctx context.Context, height uint64) (*BlockView, error) {
	block, err := g.GetBlock(ctx, height)
	if err != nil || block == nil {
		return nil, err
	}

	view := &BlockView{Block: block}
	txs, err := g.BlockTransactions(ctx, height)
	if err != nil {
		return nil, err
	}
	if len(txs) > 0 {
		view.Coinbase = txs[0]
	}
	return view, nil
}
