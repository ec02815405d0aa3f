// Benchmark the aggregate queries against a populated store.
//
// Output format: CSV with columns Query,Time_ms,Result.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/blockgraph-io/blockgraph/config"
	"github.com/blockgraph-io/blockgraph/graph"
)

type benchmark struct {
	name  string
	query func(ctx context.Context) (int64, error)
}

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

	g := graph.New(s)
	benchmarks := []benchmark{
		{"Block count", g.CountBlocks},
		{"Tx count", g.CountTransactions},
		{"Input count", g.CountInputs},
		{"Output count", g.CountOutputs},
		{"Address count", g.CountAddresses},
		{"Tx locktime > 0", g.CountTxLocktimeSet},
		{"Max output value", g.MaxOutputValue},
		{"Calculate fee", g.MaxFee},
		{"Total output value", g.TotalOutputValue},
		{"Total fees", g.TotalFees},
		{"Tx version > 1", g.CountTxVersionGt1},
		{"Avg tx per block", g.AvgTxPerBlockMilli},
		{"Max tx per block", g.MaxTxPerBlock},
		{"Spent outputs", g.CountSpentOutputs},
		{"Unspent outputs", g.CountUnspentOutputs},
		{"High value tx", g.CountHighFeeTxs},
		{"Multi-input tx", g.CountMultiInputTxs},
	}

	ctx := context.Background()
	fmt.Println("Query,Time_ms,Result")
	for _, b := range benchmarks {
		start := time.Now()
		result, err := b.query(ctx)
		if err != nil {
			logger.Fatal("benchmark failed", zap.String("query", b.name), zap.Error(err))
		}
		elapsed := float64(time.Since(start).Microseconds()) / 1000.0
		fmt.Printf("%s,%.3f,%d\n", b.name, elapsed, result)
	}
}
