package graph

import (
	"context"

	"github.com/blockgraph-io/blockgraph/lib"
)

// NodeType discriminates path nodes.
type NodeType string

const (
	NodeOutput NodeType = "output"
	NodeTx     NodeType = "tx"
)

// PathNode is one step in a value-flow path: an output coordinate or a
// spending transaction.
type PathNode struct {
	Type NodeType `json:"type"`
	TxID uint64   `json:"tx_id"`
	Vout uint32   `json:"vout,omitempty"`
}

func outputNode(c lib.Coord) PathNode {
	return PathNode{Type: NodeOutput, TxID: c.TxID, Vout: c.Vout}
}

func txNode(txID uint64) PathNode {
	return PathNode{Type: NodeTx, TxID: txID}
}

// FindPathBetweenOutputs searches forward from one output along the
// spend relation for a path to another, traversing at most maxDepth
// spend edges. A nil path means none was found within the bound.
//
// Each output has at most one spending transaction, so branching only
// happens through a spender's outputs: the search is a layered flood
// fill forward from the source, bounded by the reachable output count,
// not a general-graph BFS.
func (g *Graph) FindPathBetweenOutputs(ctx context.Context, from, to lib.Coord, maxDepth int) ([]PathNode, error) {
	return g.findPath(ctx, []lib.Coord{from}, map[lib.Coord]struct{}{to: {}}, maxDepth)
}

// FindPathBetweenAddresses searches for a value-flow path from any
// output of fromAddr to any output of toAddr. All source outputs seed a
// single shared search that stops at the first coordinate owned by the
// target address, so work is never repeated across output pairs.
func (g *Graph) FindPathBetweenAddresses(ctx context.Context, fromAddr, toAddr string, maxDepth int) ([]PathNode, error) {
	seeds, err := g.addrOutputCoords(ctx, fromAddr)
	if err != nil {
		return nil, err
	}
	targetCoords, err := g.addrOutputCoords(ctx, toAddr)
	if err != nil {
		return nil, err
	}
	if len(seeds) == 0 || len(targetCoords) == 0 {
		return nil, nil
	}

	targets := make(map[lib.Coord]struct{}, len(targetCoords))
	for _, c := range targetCoords {
		targets[c] = struct{}{}
	}
	return g.findPath(ctx, seeds, targets, maxDepth)
}

type frontierEntry struct {
	coord lib.Coord
	path  []PathNode
	depth int
}

func (g *Graph) findPath(ctx context.Context, seeds []lib.Coord, targets map[lib.Coord]struct{}, maxDepth int) ([]PathNode, error) {
	queue := make([]frontierEntry, 0, len(seeds))
	for _, seed := range seeds {
		queue = append(queue, frontierEntry{coord: seed, path: []PathNode{outputNode(seed)}})
	}
	visited := make(map[lib.Coord]struct{})

	for len(queue) > 0 {
		head := queue[0]
		queue = queue[1:]

		if _, ok := visited[head.coord]; ok {
			continue
		}
		visited[head.coord] = struct{}{}

		if _, ok := targets[head.coord]; ok {
			return head.path, nil
		}
		if head.depth >= maxDepth {
			continue
		}

		spender, err := g.OutputSpentBy(ctx, head.coord)
		if err != nil {
			return nil, err
		}
		if spender == nil {
			// Unspent output: this branch dead-ends.
			continue
		}

		coords, err := g.txOutputCoords(ctx, spender.TxID)
		if err != nil {
			return nil, err
		}
		for _, next := range coords {
			if _, ok := visited[next]; ok {
				continue
			}
			path := make([]PathNode, len(head.path), len(head.path)+2)
			copy(path, head.path)
			path = append(path, txNode(spender.TxID), outputNode(next))
			queue = append(queue, frontierEntry{coord: next, path: path, depth: head.depth + 1})
		}
	}
	return nil, nil
}

// txOutputCoords enumerates the coordinates of a transaction's outputs
// from the tx_outputs index, without resolving the output records.
func (g *Graph) txOutputCoords(ctx context.Context, txID uint64) ([]lib.Coord, error) {
	vouts, err := g.listOrdinals(ctx, TxOutputsKey(txID))
	if err != nil {
		return nil, err
	}

	coords := make([]lib.Coord, 0, len(vouts))
	for _, vout := range vouts {
		blob, err := g.store.Get(ctx, TxOutputKey(txID, uint32(vout)))
		if err != nil {
			return nil, err
		}
		if ref, ok := DecodeOutputRef(blob); ok {
			coords = append(coords, ref.Coord())
		}
	}
	return coords, nil
}

// addrOutputCoords enumerates an address's output coordinates in stored
// order from the addr_outputs index.
func (g *Graph) addrOutputCoords(ctx context.Context, addressID string) ([]lib.Coord, error) {
	children, err := g.store.List(ctx, AddrOutputsKey(addressID))
	if err != nil {
		return nil, err
	}

	coords := make([]lib.Coord, 0, len(children))
	for _, child := range children {
		coord, err := lib.ParseCoord(child)
		if err != nil {
			continue
		}
		coords = append(coords, coord)
	}
	return coords, nil
}
