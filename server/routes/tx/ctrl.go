package tx

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/blockgraph-io/blockgraph/graph"
)

var g *graph.Graph

func RegisterRoutes(r fiber.Router, graph *graph.Graph) {
	g = graph
	r.Get("/:txid", GetTransaction)
	r.Get("/:txid/inputs", GetTxInputs)
	r.Get("/:txid/outputs", GetTxOutputs)
	r.Get("/:txid/details", GetTxDetails)
}

func txid(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("txid"), 10, 64)
}

func GetTransaction(c *fiber.Ctx) error {
	id, err := txid(c)
	if err != nil {
		return c.SendStatus(400)
	}
	if tx, err := g.GetTransaction(c.Context(), id); err != nil {
		return err
	} else if tx == nil {
		return c.SendStatus(404)
	} else {
		return c.JSON(tx)
	}
}

func GetTxInputs(c *fiber.Ctx) error {
	id, err := txid(c)
	if err != nil {
		return c.SendStatus(400)
	}
	if inputs, err := g.TxInputs(c.Context(), id); err != nil {
		return err
	} else {
		return c.JSON(inputs)
	}
}

func GetTxOutputs(c *fiber.Ctx) error {
	id, err := txid(c)
	if err != nil {
		return c.SendStatus(400)
	}
	if outputs, err := g.TxOutputs(c.Context(), id); err != nil {
		return err
	} else {
		return c.JSON(outputs)
	}
}

func GetTxDetails(c *fiber.Ctx) error {
	id, err := txid(c)
	if err != nil {
		return c.SendStatus(400)
	}
	if details, err := g.TxDetails(c.Context(), id); err != nil {
		return err
	} else if details == nil {
		return c.SendStatus(404)
	} else {
		return c.JSON(details)
	}
}
