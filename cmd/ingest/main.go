package main

import (
	"context"
	"os"

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

	if len(os.Args) < 2 {
		logger.Fatal("usage: ingest <export-dir>")
	}
	dir := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	s, err := cfg.OpenStore()
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}
	defer s.Close()

	importer := &graph.Importer{
		Store:     s,
		BatchSize: cfg.Import.BatchSize,
		Logger:    logger,
	}
	stats, err := importer.Import(context.Background(), dir)
	if err != nil {
		logger.Fatal("import failed", zap.Error(err))
	}

	logger.Info("import complete",
		zap.String("dir", dir),
		zap.Any("stats", stats))
}
