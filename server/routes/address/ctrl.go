package address

import (
	"github.com/gofiber/fiber/v2"

	"github.com/blockgraph-io/blockgraph/graph"
)

var g *graph.Graph

func RegisterRoutes(r fiber.Router, graph *graph.Graph) {
	g = graph
	r.Get("/:addressId", GetAddress)
	r.Get("/:addressId/outputs", GetOutputs)
	r.Get("/:addressId/balance", GetBalance)
}

func GetAddress(c *fiber.Ctx) error {
	if addr, err := g.GetAddress(c.Context(), c.Params("addressId")); err != nil {
		return err
	} else if addr == nil {
		return c.SendStatus(404)
	} else {
		return c.JSON(addr)
	}
}

func GetOutputs(c *fiber.Ctx) error {
	if outputs, err := g.AddressOutputs(c.Context(), c.Params("addressId")); err != nil {
		return err
	} else {
		return c.JSON(outputs)
	}
}

func GetBalance(c *fiber.Ctx) error {
	if balance, err := g.AddressBalance(c.Context(), c.Params("addressId")); err != nil {
		return err
	} else {
		return c.JSON(fiber.Map{"address": c.Params("addressId"), "balance": balance})
	}
}
