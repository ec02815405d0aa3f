package txos

import (
	"github.com/gofiber/fiber/v2"

	"github.com/blockgraph-io/blockgraph/graph"
	"github.com/blockgraph-io/blockgraph/lib"
)

var g *graph.Graph

func RegisterRoutes(r fiber.Router, graph *graph.Graph) {
	g = graph
	r.Get("/:outpoint", GetOutput)
	r.Get("/:outpoint/spend", GetSpend)
	r.Get("/:outpoint/address", GetOwner)
}

func coord(c *fiber.Ctx) (lib.Coord, error) {
	return lib.ParseCoord(c.Params("outpoint"))
}

func GetOutput(c *fiber.Ctx) error {
	cd, err := coord(c)
	if err != nil {
		return c.SendStatus(400)
	}
	if output, err := g.GetOutput(c.Context(), cd); err != nil {
		return err
	} else if output == nil {
		return c.SendStatus(404)
	} else {
		return c.JSON(output)
	}
}

func GetSpend(c *fiber.Ctx) error {
	cd, err := coord(c)
	if err != nil {
		return c.SendStatus(400)
	}
	if ref, err := g.OutputSpentBy(c.Context(), cd); err != nil {
		return err
	} else {
		return c.JSON(fiber.Map{"spent": ref != nil, "spent_by": ref})
	}
}

func GetOwner(c *fiber.Ctx) error {
	cd, err := coord(c)
	if err != nil {
		return c.SendStatus(400)
	}
	if addr, err := g.OutputAddress(c.Context(), cd); err != nil {
		return err
	} else if addr == nil {
		return c.SendStatus(404)
	} else {
		return c.JSON(addr)
	}
}
