package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/blockgraph-io/blockgraph/config"
	"github.com/blockgraph-io/blockgraph/graph"
	"github.com/blockgraph-io/blockgraph/server"
)

func main() {
	godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	s, err := cfg.OpenStore()
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}
	defer s.Close()

	app := server.Initialize(graph.New(s))
	logger.Info("listening", zap.Int("port", cfg.Server.Port))
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
