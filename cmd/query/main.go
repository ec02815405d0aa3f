// Query one block from the store and print it, with its transactions.
package main

import (
	"context"
	"encoding/json"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/blockgraph-io/blockgraph/config"
	"github.com/blockgraph-io/blockgraph/graph"
)

func main() {
	godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	height := uint64(0)
	if len(os.Args) > 1 {
		height, err = strconv.ParseUint(os.Args[1], 10, 64)
		if err != nil {
			logger.Fatal("usage: query [height]", zap.Error(err))
		}
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	s, err := cfg.OpenStore()
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}
	defer s.Close()

	g := graph.New(s)
	ctx := context.Background()

	block, err := g.GetBlock(ctx, height)
	if err != nil {
		logger.Fatal("query failed", zap.Error(err))
	}
	if block == nil {
		logger.Fatal("block not found; run ingest first", zap.Uint64("height", height))
	}

	txs, err := g.BlockTransactions(ctx, height)
	if err != nil {
		logger.Fatal("query failed", zap.Error(err))
	}

	out, _ := json.MarshalIndent(map[string]any{
		"block": block,
		"txs":   txs,
	}, "", "  ")
	os.Stdout.Write(append(out, '\n'))
}
