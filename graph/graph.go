// Package graph reduces a solved Sudoku grid to a graph coloring instance:
// one node per cell and one edge per pair of cells that must hold different
// values (same row, column or box). A correct solution to the grid is exactly
// a proper 9-coloring of the graph, which is what the interactive proof
// argues edge by edge.
package graph

import (
	"errors"
	"fmt"

	"github.com/SamBroomy/zk-sudoku-prover/sudoku"
	"github.com/bits-and-blooms/bitset"
)

const (
	// NbCellNodes is the number of cell nodes for a classic grid.
	NbCellNodes = sudoku.NbCells
	// nbPaletteNodes is the number of fixed-color nodes appended by the clue
	// extension, one per symbol.
	nbPaletteNodes = sudoku.Size
)

var (
	ErrConstraint = errors.New("graph: assignment violates a uniqueness constraint")
	ErrIncomplete = errors.New("graph: assignment must assign a value to every cell")
)

// Edge is an unordered "must differ" pair of node identifiers, normalized so
// that U < V. No self-loops, no duplicates in a Graph's edge set.
type Edge struct {
	U, V int
}

// Graph is the coloring instance: a fixed node count plus a deduplicated edge
// set in deterministic order. Built once, then read-only and shared by the
// prover, the verifier and the orchestrator.
type Graph struct {
	nbNodes int
	edges   []Edge
	pairs   *bitset.BitSet // u*nbNodes+v with u < v
}

// Build reduces a complete assignment (81 cell values, row by row) to its
// coloring graph. It re-validates the assignment while walking the unit
// pairs: any two cells that share a unit and hold the same value make the
// reduction fail with ErrConstraint, since there is nothing to prove about an
// inconsistent grid. Building twice from the same assignment yields an
// identical edge set.
func Build(assignment []sudoku.Value) (*Graph, error) {
	return build(assignment, nil)
}

// BuildWithClues extends Build with pinning of published clue cells: nine
// extra pairwise-connected palette nodes carry the fixed public colors 1..9,
// and every clue cell is connected to the eight palette nodes of the other
// values, forcing its color without revealing anything new. clues marks the
// pinned cells and must have one entry per cell.
func BuildWithClues(assignment []sudoku.Value, clues []bool) (*Graph, error) {
	if len(clues) != NbCellNodes {
		return nil, fmt.Errorf("%w: clue mask has %d entries", ErrIncomplete, len(clues))
	}
	return build(assignment, clues)
}

func build(assignment []sudoku.Value, clues []bool) (*Graph, error) {
	if len(assignment) != NbCellNodes {
		return nil, fmt.Errorf("%w: got %d values", ErrIncomplete, len(assignment))
	}
	for i, v := range assignment {
		if _, err := sudoku.NewValue(uint8(v)); err != nil {
			return nil, fmt.Errorf("%w: cell %d", ErrIncomplete, i)
		}
	}

	g := &Graph{nbNodes: NbCellNodes}
	if clues != nil {
		g.nbNodes += nbPaletteNodes
	}
	g.pairs = bitset.New(uint(g.nbNodes * g.nbNodes))

	colorOf := func(node int) sudoku.Value {
		if node < NbCellNodes {
			return assignment[node]
		}
		return sudoku.Value(node - NbCellNodes + 1)
	}
	addEdge := func(u, v int) error {
		if u > v {
			u, v = v, u
		}
		idx := uint(u*g.nbNodes + v)
		if g.pairs.Test(idx) {
			return nil
		}
		if colorOf(u) == colorOf(v) {
			return fmt.Errorf("%w: nodes %d and %d both hold %s", ErrConstraint, u, v, colorOf(u))
		}
		g.pairs.Set(idx)
		g.edges = append(g.edges, Edge{U: u, V: v})
		return nil
	}
	addClique := func(nodes []int) error {
		for i := 0; i < len(nodes); i++ {
			for j := i + 1; j < len(nodes); j++ {
				if err := addEdge(nodes[i], nodes[j]); err != nil {
					return err
				}
			}
		}
		return nil
	}

	unit := make([]int, sudoku.Size)
	for row := 0; row < sudoku.Size; row++ {
		for col := 0; col < sudoku.Size; col++ {
			unit[col] = row*sudoku.Size + col
		}
		if err := addClique(unit); err != nil {
			return nil, err
		}
	}
	for col := 0; col < sudoku.Size; col++ {
		for row := 0; row < sudoku.Size; row++ {
			unit[row] = row*sudoku.Size + col
		}
		if err := addClique(unit); err != nil {
			return nil, err
		}
	}
	for box := 0; box < sudoku.Size; box++ {
		baseRow := (box / sudoku.BoxSize) * sudoku.BoxSize
		baseCol := (box % sudoku.BoxSize) * sudoku.BoxSize
		for i := 0; i < sudoku.Size; i++ {
			row := baseRow + i/sudoku.BoxSize
			col := baseCol + i%sudoku.BoxSize
			unit[i] = row*sudoku.Size + col
		}
		if err := addClique(unit); err != nil {
			return nil, err
		}
	}

	if clues != nil {
		// the palette forms a proper clique so its nine nodes are forced to
		// take nine distinct colors
		palette := make([]int, nbPaletteNodes)
		for i := range palette {
			palette[i] = NbCellNodes + i
		}
		if err := addClique(palette); err != nil {
			return nil, err
		}
		for cell, pinned := range clues {
			if !pinned {
				continue
			}
			for i := 0; i < nbPaletteNodes; i++ {
				if assignment[cell].Index() == i {
					continue
				}
				if err := addEdge(cell, palette[i]); err != nil {
					return nil, err
				}
			}
		}
	}

	return g, nil
}

// NbNodes returns the node count.
func (g *Graph) NbNodes() int {
	return g.nbNodes
}

// NbEdges returns the edge count.
func (g *Graph) NbEdges() int {
	return len(g.edges)
}

// Edge returns the i-th edge in deterministic build order.
func (g *Graph) Edge(i int) (Edge, error) {
	if i < 0 || i >= len(g.edges) {
		return Edge{}, fmt.Errorf("graph: edge index %d out of range [0,%d)", i, len(g.edges))
	}
	return g.edges[i], nil
}

// Edges returns a copy of the edge set.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// HasEdge reports whether the unordered pair (u,v) is an edge.
func (g *Graph) HasEdge(u, v int) bool {
	if u > v {
		u, v = v, u
	}
	if u < 0 || v >= g.nbNodes || u == v {
		return false
	}
	return g.pairs.Test(uint(u*g.nbNodes + v))
}

// Degree returns the number of neighbors of node u.
func (g *Graph) Degree(u int) int {
	d := 0
	for _, e := range g.edges {
		if e.U == u || e.V == u {
			d++
		}
	}
	return d
}

// ExtendColoring maps a cell assignment to a full node coloring, appending
// the fixed public palette colors when the graph carries palette nodes.
func (g *Graph) ExtendColoring(assignment []sudoku.Value) ([]sudoku.Value, error) {
	if len(assignment) != NbCellNodes {
		return nil, fmt.Errorf("%w: got %d values", ErrIncomplete, len(assignment))
	}
	coloring := make([]sudoku.Value, g.nbNodes)
	copy(coloring, assignment)
	for i := NbCellNodes; i < g.nbNodes; i++ {
		coloring[i] = sudoku.Value(i - NbCellNodes + 1)
	}
	return coloring, nil
}
