package stats

import (
	"github.com/gofiber/fiber/v2"

	"github.com/blockgraph-io/blockgraph/graph"
)

var g *graph.Graph

func RegisterRoutes(r fiber.Router, graph *graph.Graph) {
	g = graph
	r.Get("/", GetStats)
}

// GetStats runs every aggregate query. This scans the whole store; on a
// large store expect it to take a while.
func GetStats(c *fiber.Ctx) error {
	if stats, err := g.ComputeStats(c.Context()); err != nil {
		return err
	} else {
		return c.JSON(stats)
	}
}
