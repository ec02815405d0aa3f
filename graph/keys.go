package graph

import (
	"strconv"

	"github.com/blockgraph-io/blockgraph/lib"
)

// Store path scheme. These functions define the entire on-disk graph
// topology and are the single source of truth for both ingestion and
// queries.
//
//	block/<height>
//	tx/<tx_id>
//	output/<tx_id>/<vout>
//	address/<address_id>
//	index/block_txs/<height>/<ordinal>             -> TxRef
//	index/tx_inputs/<tx_id>/<ordinal>              -> Input
//	index/tx_outputs/<tx_id>/<vout>                -> OutputRef
//	index/addr_outputs/<address_id>/<tx_id>:<vout> -> OutputRef
//	index/output_addr/<tx_id>/<vout>               -> AddrRef
//	index/spent_by/<tx_id>/<vout>                  -> TxRef
//	meta/block_tx_count/<height>                   -> integer string

const (
	BlocksPrefix    = "block"
	TxsPrefix       = "tx"
	OutputsPrefix   = "output"
	AddressesPrefix = "address"

	BlockTxsPrefix     = "index/block_txs"
	TxInputsPrefix     = "index/tx_inputs"
	TxOutputsPrefix    = "index/tx_outputs"
	AddrOutputsPrefix  = "index/addr_outputs"
	OutputAddrPrefix   = "index/output_addr"
	SpentByPrefix      = "index/spent_by"
	BlockTxCountPrefix = "meta/block_tx_count"
)

func u64(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func u32(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}

func BlockKey(height uint64) string {
	return BlocksPrefix + "/" + u64(height)
}

func TxKey(txID uint64) string {
	return TxsPrefix + "/" + u64(txID)
}

func OutputKey(c lib.Coord) string {
	return OutputsPrefix + "/" + u64(c.TxID) + "/" + u32(c.Vout)
}

func AddressKey(addressID string) string {
	return AddressesPrefix + "/" + addressID
}

func BlockTxsKey(height uint64) string {
	return BlockTxsPrefix + "/" + u64(height)
}

func BlockTxKey(height, ordinal uint64) string {
	return BlockTxsKey(height) + "/" + u64(ordinal)
}

func TxInputsKey(txID uint64) string {
	return TxInputsPrefix + "/" + u64(txID)
}

func TxInputKey(txID, ordinal uint64) string {
	return TxInputsKey(txID) + "/" + u64(ordinal)
}

func TxOutputsKey(txID uint64) string {
	return TxOutputsPrefix + "/" + u64(txID)
}

func TxOutputKey(txID uint64, vout uint32) string {
	return TxOutputsKey(txID) + "/" + u32(vout)
}

func AddrOutputsKey(addressID string) string {
	return AddrOutputsPrefix + "/" + addressID
}

func AddrOutputKey(addressID string, c lib.Coord) string {
	return AddrOutputsKey(addressID) + "/" + c.String()
}

func OutputAddrKey(c lib.Coord) string {
	return OutputAddrPrefix + "/" + u64(c.TxID) + "/" + u32(c.Vout)
}

func SpentByKey(c lib.Coord) string {
	return SpentByPrefix + "/" + u64(c.TxID) + "/" + u32(c.Vout)
}

func BlockTxCountKey(height uint64) string {
	return BlockTxCountPrefix + "/" + u64(height)
}
