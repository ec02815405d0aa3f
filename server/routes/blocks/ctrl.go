package blocks

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/blockgraph-io/blockgraph/graph"
)

var g *graph.Graph

func RegisterRoutes(r fiber.Router, graph *graph.Graph) {
	g = graph
	r.Get("/tip", GetTip)
	r.Get("/list/:from", ListBlocks)
	r.Get("/:height", GetBlock)
	r.Get("/:height/txs", GetBlockTransactions)
	r.Get("/:height/coinbase", GetBlockWithCoinbase)
}

func GetTip(c *fiber.Ctx) error {
	height, err := g.LastBlockHeight(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"height": height})
}

func ListBlocks(c *fiber.Ctx) error {
	from, err := strconv.ParseUint(c.Params("from"), 10, 64)
	if err != nil {
		return c.SendStatus(400)
	}
	count := c.QueryInt("count", 10)
	if blocks, err := g.BlockChain(c.Context(), from, count); err != nil {
		return err
	} else {
		return c.JSON(blocks)
	}
}

func GetBlock(c *fiber.Ctx) error {
	height, err := strconv.ParseUint(c.Params("height"), 10, 64)
	if err != nil {
		return c.SendStatus(400)
	}
	if block, err := g.GetBlock(c.Context(), height); err != nil {
		return err
	} else if block == nil {
		return c.SendStatus(404)
	} else {
		return c.JSON(block)
	}
}

func GetBlockTransactions(c *fiber.Ctx) error {
	height, err := strconv.ParseUint(c.Params("height"), 10, 64)
	if err != nil {
		return c.SendStatus(400)
	}
	if txs, err := g.BlockTransactions(c.Context(), height); err != nil {
		return err
	} else {
		return c.JSON(txs)
	}
}

func GetBlockWithCoinbase(c *fiber.Ctx) error {
	height, err := strconv.ParseUint(c.Params("height"), 10, 64)
	if err != nil {
		return c.SendStatus(400)
	}
	if view, err := g.BlockWithCoinbase(c.Context(), height); err != nil {
		return err
	} else if view == nil {
		return c.SendStatus(404)
	} else {
		return c.JSON(view)
	}
}
