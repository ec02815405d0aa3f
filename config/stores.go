package config

import (
	"fmt"

	"github.com/blockgraph-io/blockgraph/store"
	"github.com/blockgraph-io/blockgraph/store/badgerstore"
	"github.com/blockgraph-io/blockgraph/store/memstore"
	"github.com/blockgraph-io/blockgraph/store/redisstore"
)

// OpenStore opens the configured store backend.
func (c *Config) OpenStore() (store.Store, error) {
	switch c.Store.Type {
	case "badger", "":
		return badgerstore.New(c.Store.Badger)
	case "redis":
		return redisstore.New(c.Store.Redis)
	case "mem":
		return memstore.New(), nil
	default:
		return nil, fmt.Errorf("unknown store type %q", c.Store.Type)
	}
}
