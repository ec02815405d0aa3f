// Package graph implements the blockchain graph engine: the record
// codec, the store path scheme, CSV export ingestion, traversal queries,
// and the bounded value-flow path finder.
package graph

import "github.com/blockgraph-io/blockgraph/lib"

// Record kinds, stored as the discriminator field of every encoded record.
const (
	KindBlock     = "block"
	KindTx        = "tx"
	KindOutput    = "output"
	KindInput     = "input"
	KindAddress   = "address"
	KindTxRef     = "tx_ref"
	KindOutputRef = "output_ref"
	KindAddrRef   = "addr_ref"
)

// Entity is the closed set of record variants held in the store.
type Entity interface {
	Kind() string
}

type Block struct {
	Height    uint64 `json:"height"`
	Hash      string `json:"hash"`
	Timestamp int64  `json:"timestamp"`
	Nonce     uint64 `json:"nonce"`
	Bits      uint64 `json:"bits"`
	Version   int64  `json:"version"`
}

func (*Block) Kind() string { return KindBlock }

type Transaction struct {
	TxID        uint64 `json:"tx_id"`
	Hash        string `json:"hash"`
	Locktime    uint32 `json:"locktime"`
	Version     int32  `json:"version"`
	Fee         int64  `json:"fee"`
	Size        int64  `json:"size"`
	Weight      int64  `json:"weight"`
	BlockHeight uint64 `json:"block_height"`
}

func (*Transaction) Kind() string { return KindTx }

type Output struct {
	TxID       uint64 `json:"tx_id"`
	Vout       uint32 `json:"vout"`
	Value      int64  `json:"value"`
	ScriptType string `json:"script_type"`
}

func (*Output) Kind() string { return KindOutput }

// Coord returns the output's coordinate.
func (o *Output) Coord() lib.Coord {
	return lib.NewCoord(o.TxID, o.Vout)
}

// Input records one output consumed by a transaction. The consuming
// transaction and the input's position live in the record's path.
type Input struct {
	SpentTxID uint64 `json:"spent_tx_id"`
	SpentVout uint32 `json:"spent_vout"`
	Sequence  uint32 `json:"sequence"`
}

func (*Input) Kind() string { return KindInput }

// Spent returns the coordinate of the consumed output.
func (in *Input) Spent() lib.Coord {
	return lib.NewCoord(in.SpentTxID, in.SpentVout)
}

type Address struct {
	AddressID   string `json:"address_id"`
	Address     string `json:"address"`
	AddressType string `json:"address_type"`
}

func (*Address) Kind() string { return KindAddress }

// TxRef is an index pointer to a transaction.
type TxRef struct {
	TxID uint64 `json:"tx_id"`
}

func (*TxRef) Kind() string { return KindTxRef }

// OutputRef is an index pointer to an output.
type OutputRef struct {
	TxID uint64 `json:"tx_id"`
	Vout uint32 `json:"vout"`
}

func (*OutputRef) Kind() string { return KindOutputRef }

// Coord returns the referenced output's coordinate.
func (r *OutputRef) Coord() lib.Coord {
	return lib.NewCoord(r.TxID, r.Vout)
}

// AddrRef is an index pointer to an address.
type AddrRef struct {
	AddressID string `json:"address_id"`
}

func (*AddrRef) Kind() string { return KindAddrRef }
