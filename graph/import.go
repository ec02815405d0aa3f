package graph

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/blockgraph-io/blockgraph/lib"
	"github.com/blockgraph-io/blockgraph/metrics"
	"github.com/blockgraph-io/blockgraph/store"
)

// DefaultBatchSize is the write-batch flush threshold used when the
// importer is not configured with one.
const DefaultBatchSize = 1000

// The eight files of a graph CSV export, in import order. Primary
// entities come before the relationship files that reference them.
const (
	FileBlocks       = "blocks.csv"
	FileTransactions = "transactions.csv"
	FileOutputs      = "outputs.csv"
	FileAddresses    = "addresses.csv"
	FileContains     = "contains.csv"
	FileToAddress    = "to_address.csv"
	FileTxInput      = "tx_input.csv"
	FileTxOutput     = "tx_output.csv"
)

// FileStats reports one file's progress: rows seen and rows that
// produced new records. A re-import of unchanged data reports New == 0.
type FileStats struct {
	Rows int `json:"rows"`
	New  int `json:"new"`
}

// ImportStats aggregates per-file progress for one import run.
type ImportStats struct {
	Blocks       FileStats `json:"blocks"`
	Transactions FileStats `json:"transactions"`
	Outputs      FileStats `json:"outputs"`
	Addresses    FileStats `json:"addresses"`
	Contains     FileStats `json:"contains"`
	ToAddress    FileStats `json:"to_address"`
	TxInputs     FileStats `json:"tx_inputs"`
	TxOutputs    FileStats `json:"tx_outputs"`
}

// Importer streams a CSV export directory into the store. Imports are
// idempotent and resumable: every record is written skip-if-exists, so
// re-running against a superset export only writes the new rows.
type Importer struct {
	Store     store.Store
	BatchSize int
	Logger    *zap.Logger
}

// Import ingests the eight export files from dir. A row with the wrong
// column count or a malformed output coordinate aborts the run.
func (im *Importer) Import(ctx context.Context, dir string) (*ImportStats, error) {
	batchSize := im.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	logger := im.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	run := &importRun{
		ctx:       ctx,
		store:     im.Store,
		batch:     im.Store.NewBatch(),
		pending:   make(map[string]struct{}),
		batchSize: batchSize,
		logger:    logger,
	}

	stats := &ImportStats{}
	steps := []struct {
		file    string
		columns int
		row     rowFunc
		done    func() error
		out     *FileStats
	}{
		{file: FileBlocks, columns: 8, row: run.blockRow, out: &stats.Blocks},
		{file: FileTransactions, columns: 9, row: run.transactionRow, out: &stats.Transactions},
		{file: FileOutputs, columns: 4, row: run.outputRow, out: &stats.Outputs},
		{file: FileAddresses, columns: 4, row: run.addressRow, out: &stats.Addresses},
		{file: FileContains, columns: 3, row: run.containsRow, done: run.containsDone, out: &stats.Contains},
		{file: FileToAddress, columns: 3, row: run.toAddressRow, out: &stats.ToAddress},
		{file: FileTxInput, columns: 5, row: run.txInputRow, out: &stats.TxInputs},
		{file: FileTxOutput, columns: 4, row: run.txOutputRow, out: &stats.TxOutputs},
	}

	for _, step := range steps {
		fs, err := run.importFile(filepath.Join(dir, step.file), step.file, step.columns, step.row)
		if err != nil {
			return nil, err
		}
		if step.done != nil {
			if err := step.done(); err != nil {
				return nil, err
			}
		}
		if err := run.flush(); err != nil {
			return nil, err
		}
		*step.out = fs
		logger.Info("imported file",
			zap.String("file", step.file),
			zap.Int("rows", fs.Rows),
			zap.Int("new", fs.New))
	}

	if err := run.flush(); err != nil {
		return nil, err
	}
	return stats, nil
}

// rowFunc handles one data row and reports whether it produced new
// records.
type rowFunc func(row []string) (bool, error)

type importRun struct {
	ctx       context.Context
	store     store.Store
	batch     store.Batch
	pending   map[string]struct{}
	batchSize int
	logger    *zap.Logger
	metrics   metrics.Import

	// per-block link state for contains.csv, lazily hydrated
	blockLinks map[uint64]*blockLinkState
}

type blockLinkState struct {
	linked  map[uint64]struct{}
	next    uint64
	hadMeta bool
	dirty   bool
}

func (r *importRun) importFile(path, name string, columns int, handle rowFunc) (FileStats, error) {
	var fs FileStats

	f, err := os.Open(path)
	if err != nil {
		return fs, fmt.Errorf("%s: %w", name, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = columns
	reader.ReuseRecord = true

	header := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fs, fmt.Errorf("%s: %w", name, err)
		}
		if header {
			header = false
			continue
		}
		fs.Rows++
		r.metrics.RowSeen(name)

		wrote, err := handle(row)
		if err != nil {
			return fs, fmt.Errorf("%s row %d: %w", name, fs.Rows, err)
		}
		if wrote {
			fs.New++
			r.metrics.RowWritten(name)
		}
	}
	return fs, nil
}

// exists consults the uncommitted batch first, so dedup sees writes from
// earlier rows of the current run.
func (r *importRun) exists(path string) (bool, error) {
	if _, ok := r.pending[path]; ok {
		return true, nil
	}
	return r.store.Exists(r.ctx, path)
}

func (r *importRun) put(path string, value []byte) error {
	r.batch.Put(path, value)
	r.pending[path] = struct{}{}
	if r.batch.Len() >= r.batchSize {
		return r.flush()
	}
	return nil
}

func (r *importRun) flush() error {
	size := r.batch.Len()
	if size == 0 {
		return nil
	}
	if err := r.batch.Commit(r.ctx); err != nil {
		return err
	}
	r.metrics.BatchCommitted(size)
	r.batch = r.store.NewBatch()
	r.pending = make(map[string]struct{})
	return nil
}

// blocks.csv: block_id, height, hash, timestamp, nonce, bits, version, label
func (r *importRun) blockRow(row []string) (bool, error) {
	height, err := parseUint(row[1], "height")
	if err != nil {
		return false, err
	}
	key := BlockKey(height)
	if ok, err := r.exists(key); err != nil || ok {
		return false, err
	}

	timestamp, err := parseInt(row[3], "timestamp")
	if err != nil {
		return false, err
	}
	nonce, err := parseUint(row[4], "nonce")
	if err != nil {
		return false, err
	}
	bits, err := parseUint(row[5], "bits")
	if err != nil {
		return false, err
	}
	version, err := parseInt(row[6], "version")
	if err != nil {
		return false, err
	}
	block := &Block{
		Height:    height,
		Hash:      row[2],
		Timestamp: timestamp,
		Nonce:     nonce,
		Bits:      bits,
		Version:   version,
	}
	return true, r.put(key, Encode(block))
}

// transactions.csv: tx_id, hash, locktime, version, fee, size, weight, block_height, label
func (r *importRun) transactionRow(row []string) (bool, error) {
	txID, err := parseUint(row[0], "tx_id")
	if err != nil {
		return false, err
	}
	key := TxKey(txID)
	if ok, err := r.exists(key); err != nil || ok {
		return false, err
	}

	locktime, err := parseUint32(row[2], "locktime")
	if err != nil {
		return false, err
	}
	version, err := parseInt32(row[3], "version")
	if err != nil {
		return false, err
	}
	fee, err := parseInt(row[4], "fee")
	if err != nil {
		return false, err
	}
	size, err := parseInt(row[5], "size")
	if err != nil {
		return false, err
	}
	weight, err := parseInt(row[6], "weight")
	if err != nil {
		return false, err
	}
	blockHeight, err := parseUint(row[7], "block_height")
	if err != nil {
		return false, err
	}
	tx := &Transaction{
		TxID:        txID,
		Hash:        row[1],
		Locktime:    locktime,
		Version:     version,
		Fee:         fee,
		Size:        size,
		Weight:      weight,
		BlockHeight: blockHeight,
	}
	return true, r.put(key, Encode(tx))
}

// outputs.csv: output_id("tx_id:vout"), value, script_type, label
func (r *importRun) outputRow(row []string) (bool, error) {
	coord, err := lib.ParseCoord(row[0])
	if err != nil {
		return false, err
	}
	key := OutputKey(coord)
	if ok, err := r.exists(key); err != nil || ok {
		return false, err
	}

	value, err := parseInt(row[1], "value")
	if err != nil {
		return false, err
	}
	output := &Output{
		TxID:       coord.TxID,
		Vout:       coord.Vout,
		Value:      value,
		ScriptType: row[2],
	}
	return true, r.put(key, Encode(output))
}

// addresses.csv: address_id, address, address_type, label
func (r *importRun) addressRow(row []string) (bool, error) {
	key := AddressKey(row[0])
	if ok, err := r.exists(key); err != nil || ok {
		return false, err
	}
	addr := &Address{
		AddressID:   row[0],
		Address:     row[1],
		AddressType: row[2],
	}
	return true, r.put(key, Encode(addr))
}

// contains.csv: block_id, tx_id, rel_type. Ordinals are assigned in
// first-seen order and stay stable across incremental imports: the
// per-block state is rebuilt from meta/block_tx_count and the existing
// index entries before any new link is appended.
func (r *importRun) containsRow(row []string) (bool, error) {
	height, err := parseUint(row[0], "block_id")
	if err != nil {
		return false, err
	}
	txID, err := parseUint(row[1], "tx_id")
	if err != nil {
		return false, err
	}

	state, err := r.hydrateBlockLinks(height)
	if err != nil {
		return false, err
	}
	if _, ok := state.linked[txID]; ok {
		return false, nil
	}

	if err := r.put(BlockTxKey(height, state.next), Encode(&TxRef{TxID: txID})); err != nil {
		return false, err
	}
	state.linked[txID] = struct{}{}
	state.next++
	state.dirty = true
	return true, nil
}

// containsDone persists the final per-block tx counts back to meta.
func (r *importRun) containsDone() error {
	for height, state := range r.blockLinks {
		if !state.dirty && state.hadMeta {
			continue
		}
		count := strconv.FormatUint(state.next, 10)
		if err := r.put(BlockTxCountKey(height), []byte(count)); err != nil {
			return err
		}
	}
	r.blockLinks = nil
	return nil
}

func (r *importRun) hydrateBlockLinks(height uint64) (*blockLinkState, error) {
	if r.blockLinks == nil {
		r.blockLinks = make(map[uint64]*blockLinkState)
	}
	if state, ok := r.blockLinks[height]; ok {
		return state, nil
	}

	state := &blockLinkState{linked: make(map[uint64]struct{})}
	countBlob, err := r.store.Get(r.ctx, BlockTxCountKey(height))
	if err != nil {
		return nil, err
	}
	if countBlob != nil {
		count, err := strconv.ParseUint(string(countBlob), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("block %d tx count %q: %w", height, countBlob, err)
		}
		for ordinal := uint64(0); ordinal < count; ordinal++ {
			blob, err := r.store.Get(r.ctx, BlockTxKey(height, ordinal))
			if err != nil {
				return nil, err
			}
			if blob == nil {
				continue
			}
			if ref, ok := DecodeTxRef(blob); ok {
				state.linked[ref.TxID] = struct{}{}
			}
		}
		state.next = count
		state.hadMeta = true
	}
	r.blockLinks[height] = state
	return state, nil
}

// to_address.csv: output_id, address_id, rel_type
func (r *importRun) toAddressRow(row []string) (bool, error) {
	coord, err := lib.ParseCoord(row[0])
	if err != nil {
		return false, err
	}
	addressID := row[1]

	key := AddrOutputKey(addressID, coord)
	if ok, err := r.exists(key); err != nil || ok {
		return false, err
	}
	if err := r.put(key, Encode(&OutputRef{TxID: coord.TxID, Vout: coord.Vout})); err != nil {
		return false, err
	}
	if err := r.put(OutputAddrKey(coord), Encode(&AddrRef{AddressID: addressID})); err != nil {
		return false, err
	}
	return true, nil
}

// tx_input.csv: tx_id, output_id, index, sequence, rel_type
func (r *importRun) txInputRow(row []string) (bool, error) {
	txID, err := parseUint(row[0], "tx_id")
	if err != nil {
		return false, err
	}
	coord, err := lib.ParseCoord(row[1])
	if err != nil {
		return false, err
	}
	ordinal, err := parseUint(row[2], "index")
	if err != nil {
		return false, err
	}
	sequence, err := parseUint32(row[3], "sequence")
	if err != nil {
		return false, err
	}

	key := TxInputKey(txID, ordinal)
	if ok, err := r.exists(key); err != nil || ok {
		return false, err
	}
	input := &Input{
		SpentTxID: coord.TxID,
		SpentVout: coord.Vout,
		Sequence:  sequence,
	}
	if err := r.put(key, Encode(input)); err != nil {
		return false, err
	}
	// UTXO invariant: one spender per output, so this is the first and
	// only write for the coordinate on valid input data.
	if err := r.put(SpentByKey(coord), Encode(&TxRef{TxID: txID})); err != nil {
		return false, err
	}
	return true, nil
}

// tx_output.csv: tx_id, output_id, index, rel_type
func (r *importRun) txOutputRow(row []string) (bool, error) {
	txID, err := parseUint(row[0], "tx_id")
	if err != nil {
		return false, err
	}
	coord, err := lib.ParseCoord(row[1])
	if err != nil {
		return false, err
	}

	key := TxOutputKey(txID, coord.Vout)
	if ok, err := r.exists(key); err != nil || ok {
		return false, err
	}
	return true, r.put(key, Encode(&OutputRef{TxID: coord.TxID, Vout: coord.Vout}))
}

func parseUint(s, field string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", field, err)
	}
	return v, nil
}

func parseInt(s, field string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", field, err)
	}
	return v, nil
}

func parseUint32(s, field string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", field, err)
	}
	return uint32(v), nil
}

func parseInt32(s, field string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", field, err)
	}
	return int32(v), nil
}
