// Package badgerstore backs store.Store with an embedded BadgerDB
// database. Store paths map directly to badger keys, so prefix iteration
// over the ordered keyspace yields the children of a directory.
package badgerstore

import (
	"context"
	"errors"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/blockgraph-io/blockgraph/store"
)

type BadgerStore struct {
	db *badger.DB
}

// New opens (creating if needed) a badger database at dir.
func New(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Get(ctx context.Context, path string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(path))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *BadgerStore) Exists(ctx context.Context, path string) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(path))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *BadgerStore) List(ctx context.Context, prefix string) ([]string, error) {
	dir := prefix
	if len(dir) == 0 || dir[len(dir)-1] != '/' {
		dir += "/"
	}
	dirBytes := []byte(dir)

	var children []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = dirBytes
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.ValidForPrefix(dirBytes); {
			key := it.Item().Key()
			rest := key[len(dirBytes):]
			child := rest
			for i, b := range rest {
				if b == '/' {
					child = rest[:i]
					break
				}
			}
			children = append(children, string(child))

			// Skip the rest of this child's subtree. The seek target is
			// the child name followed by '/'+1, the first byte past the
			// separator: anything below it is this child's own subtree,
			// while a sibling whose name merely extends this one (say
			// "10" after "1") sorts at or above it and is still visited.
			next := make([]byte, 0, len(dirBytes)+len(child)+1)
			next = append(next, dirBytes...)
			next = append(next, child...)
			next = append(next, '/'+1)
			it.Seek(next)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return children, nil
}

func (s *BadgerStore) NewBatch() store.Batch {
	return &badgerBatch{store: s}
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

type badgerBatch struct {
	store   *BadgerStore
	entries []entry
}

type entry struct {
	path  string
	value []byte
}

func (b *badgerBatch) Put(path string, value []byte) {
	v := make([]byte, len(value))
	copy(v, value)
	b.entries = append(b.entries, entry{path: path, value: v})
}

func (b *badgerBatch) Len() int {
	return len(b.entries)
}

// Commit applies the batch in a single badger transaction. Batches must
// stay beneath badger's per-transaction entry limit; the importer's
// default batch size does.
func (b *badgerBatch) Commit(ctx context.Context) error {
	err := b.store.db.Update(func(txn *badger.Txn) error {
		for _, e := range b.entries {
			if err := txn.Set([]byte(e.path), e.value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	b.entries = nil
	return nil
}
