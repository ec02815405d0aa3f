// Package server exposes the graph engine as an HTTP JSON API.
package server

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/blockgraph-io/blockgraph/graph"
	"github.com/blockgraph-io/blockgraph/server/routes/address"
	"github.com/blockgraph-io/blockgraph/server/routes/blocks"
	"github.com/blockgraph-io/blockgraph/server/routes/path"
	"github.com/blockgraph-io/blockgraph/server/routes/stats"
	"github.com/blockgraph-io/blockgraph/server/routes/tx"
	"github.com/blockgraph-io/blockgraph/server/routes/txos"
)

func Initialize(g *graph.Graph) *fiber.App {
	app := fiber.New()
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{AllowOrigins: "*"}))

	app.Get("/yo", func(c *fiber.Ctx) error {
		return c.SendString("yo")
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/v1")
	blocks.RegisterRoutes(v1.Group("/block"), g)
	tx.RegisterRoutes(v1.Group("/tx"), g)
	txos.RegisterRoutes(v1.Group("/txo"), g)
	address.RegisterRoutes(v1.Group("/address"), g)
	path.RegisterRoutes(v1.Group("/path"), g)
	stats.RegisterRoutes(v1.Group("/stats"), g)

	return app
}
