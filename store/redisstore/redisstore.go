// Package redisstore backs store.Store with Redis. Values live under
// "val:" keys; the hierarchy is materialized as one child set per
// directory so List never scans the keyspace. Batches commit through a
// MULTI/EXEC pipeline.
package redisstore

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/blockgraph-io/blockgraph/store"
)

func valueKey(path string) string {
	return "val:" + path
}

func childrenKey(dir string) string {
	return "dir:" + dir
}

type RedisStore struct {
	db *redis.Client
}

// New connects to the Redis instance named by connString
// (e.g. "redis://localhost:6379/0").
func New(connString string) (*RedisStore, error) {
	opts, err := redis.ParseURL(connString)
	if err != nil {
		return nil, err
	}
	return &RedisStore{db: redis.NewClient(opts)}, nil
}

func (r *RedisStore) Get(ctx context.Context, path string) ([]byte, error) {
	value, err := r.db.Get(ctx, valueKey(path)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (r *RedisStore) Exists(ctx context.Context, path string) (bool, error) {
	n, err := r.db.Exists(ctx, valueKey(path)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RedisStore) List(ctx context.Context, prefix string) ([]string, error) {
	dir := strings.TrimSuffix(prefix, "/")
	children, err := r.db.SMembers(ctx, childrenKey(dir)).Result()
	if err != nil {
		return nil, err
	}
	if len(children) == 0 {
		return nil, nil
	}
	sort.Strings(children)
	return children, nil
}

func (r *RedisStore) NewBatch() store.Batch {
	return &redisBatch{store: r}
}

func (r *RedisStore) Close() error {
	return r.db.Close()
}

type redisBatch struct {
	store   *RedisStore
	entries []entry
}

type entry struct {
	path  string
	value []byte
}

func (b *redisBatch) Put(path string, value []byte) {
	v := make([]byte, len(value))
	copy(v, value)
	b.entries = append(b.entries, entry{path: path, value: v})
}

func (b *redisBatch) Len() int {
	return len(b.entries)
}

func (b *redisBatch) Commit(ctx context.Context) error {
	if len(b.entries) == 0 {
		return nil
	}
	_, err := b.store.db.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, e := range b.entries {
			pipe.Set(ctx, valueKey(e.path), e.value, 0)
			registerParents(ctx, pipe, e.path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	b.entries = nil
	return nil
}

// registerParents records the path's leaf segment in its directory's
// child set, and so on up to the root.
func registerParents(ctx context.Context, pipe redis.Pipeliner, path string) {
	for {
		i := strings.LastIndexByte(path, '/')
		if i < 0 {
			pipe.SAdd(ctx, childrenKey(""), path)
			return
		}
		dir, leaf := path[:i], path[i+1:]
		pipe.SAdd(ctx, childrenKey(dir), leaf)
		path = dir
	}
}
