package path

import (
	"github.com/gofiber/fiber/v2"

	"github.com/blockgraph-io/blockgraph/graph"
	"github.com/blockgraph-io/blockgraph/lib"
)

// DefaultMaxDepth bounds path searches when the caller does not supply
// a depth.
const DefaultMaxDepth = 10

var g *graph.Graph

func RegisterRoutes(r fiber.Router, graph *graph.Graph) {
	g = graph
	r.Get("/outputs", FindBetweenOutputs)
	r.Get("/addresses", FindBetweenAddresses)
}

func FindBetweenOutputs(c *fiber.Ctx) error {
	from, err := lib.ParseCoord(c.Query("from"))
	if err != nil {
		return c.SendStatus(400)
	}
	to, err := lib.ParseCoord(c.Query("to"))
	if err != nil {
		return c.SendStatus(400)
	}
	maxDepth := c.QueryInt("maxDepth", DefaultMaxDepth)

	if path, err := g.FindPathBetweenOutputs(c.Context(), from, to, maxDepth); err != nil {
		return err
	} else if path == nil {
		return c.SendStatus(404)
	} else {
		return c.JSON(path)
	}
}

func FindBetweenAddresses(c *fiber.Ctx) error {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		return c.SendStatus(400)
	}
	maxDepth := c.QueryInt("maxDepth", DefaultMaxDepth)

	if path, err := g.FindPathBetweenAddresses(c.Context(), from, to, maxDepth); err != nil {
		return err
	} else if path == nil {
		return c.SendStatus(404)
	} else {
		return c.JSON(path)
	}
}
