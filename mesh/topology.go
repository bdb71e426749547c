package mesh

import (
	"fmt"
	"math"
)

// MaxCellEdges bounds the ring degree of any cell this package accepts.
// Voronoi meshes of near-uniform generators stay at 5-7 edges per cell;
// the bound leaves headroom for distorted planar meshes.
const MaxCellEdges = 10

// Unknown marks a neighbor cell that is not resident locally, not even as
// a halo copy. Stencils touching it are skipped by the builders.
const Unknown = -1

// Topology is the read-only mesh connectivity and geometry consumed by the
// stencil builders. Cells and edges carry partition-local indices used as
// array offsets; CellGlobalID carries the partition-independent identity.
//
// Invariant: EdgesOnCell[c][i] is the edge joining c to CellsOnCell[c][i].
type Topology struct {
	OnSphere bool    `json:"OnSphere"`
	Radius   float64 `json:"Radius,omitempty"`

	NumCells    int `json:"NumCells"`
	NumEdges    int `json:"NumEdges"`
	NumVertices int `json:"NumVertices"`

	// Per cell
	CellGlobalID []int     `json:"CellGlobalID"`
	CellX        []float64 `json:"CellX"`
	CellY        []float64 `json:"CellY"`
	CellZ        []float64 `json:"CellZ,omitempty"`
	NEdgesOnCell []int     `json:"NEdgesOnCell"`
	CellsOnCell  [][]int   `json:"CellsOnCell"`
	EdgesOnCell  [][]int   `json:"EdgesOnCell"`
	CellOwned    []bool    `json:"CellOwned"`
	CellValid    []bool    `json:"CellValid"`

	// Per edge
	CellsOnEdge    [][2]int  `json:"CellsOnEdge"`
	VerticesOnEdge [][2]int  `json:"VerticesOnEdge"`
	EdgeLength     []float64 `json:"EdgeLength"`
	DualLength     []float64 `json:"DualLength"`
	EdgeAngle      []float64 `json:"EdgeAngle,omitempty"` // planar meshes only

	// Per vertex
	VertexX []float64 `json:"VertexX"`
	VertexY []float64 `json:"VertexY"`
	VertexZ []float64 `json:"VertexZ,omitempty"`
}

// RingComplete reports whether every first-ring neighbor of cell c is
// locally known and carries valid data, the precondition for building the
// local polynomial fit of c.
func (t *Topology) RingComplete(c int) bool {
	if !t.CellValid[c] {
		return false
	}
	for i := 0; i < t.NEdgesOnCell[c]; i++ {
		nbr := t.CellsOnCell[c][i]
		if nbr == Unknown || nbr >= t.NumCells {
			return false
		}
		if !t.CellValid[nbr] {
			return false
		}
	}
	return true
}

// Check validates the structural invariants the stencil builders rely on.
func (t *Topology) Check() error {
	if t.NumCells != len(t.CellGlobalID) || t.NumCells != len(t.CellX) ||
		t.NumCells != len(t.CellY) || t.NumCells != len(t.NEdgesOnCell) ||
		t.NumCells != len(t.CellsOnCell) || t.NumCells != len(t.EdgesOnCell) ||
		t.NumCells != len(t.CellOwned) || t.NumCells != len(t.CellValid) {
		return fmt.Errorf("inconsistent per-cell array lengths for NumCells = %d", t.NumCells)
	}
	if t.NumEdges != len(t.CellsOnEdge) || t.NumEdges != len(t.VerticesOnEdge) ||
		t.NumEdges != len(t.EdgeLength) || t.NumEdges != len(t.DualLength) {
		return fmt.Errorf("inconsistent per-edge array lengths for NumEdges = %d", t.NumEdges)
	}
	if t.OnSphere {
		if t.Radius <= 0 {
			return fmt.Errorf("spherical mesh requires a positive radius, got %v", t.Radius)
		}
		if t.NumCells != len(t.CellZ) {
			return fmt.Errorf("spherical mesh requires CellZ for all %d cells", t.NumCells)
		}
	} else if t.NumEdges != len(t.EdgeAngle) {
		return fmt.Errorf("planar mesh requires EdgeAngle for all %d edges", t.NumEdges)
	}
	seen := make(map[int]int, t.NumCells)
	for c := 0; c < t.NumCells; c++ {
		n := t.NEdgesOnCell[c]
		if n > MaxCellEdges || n < 0 {
			return fmt.Errorf("cell %d has ring degree %d outside [0,%d]", c, n, MaxCellEdges)
		}
		if n == 0 && t.CellValid[c] {
			// Only a stencil-incomplete fringe cell may have an empty ring
			return fmt.Errorf("valid cell %d has an empty ring", c)
		}
		if len(t.CellsOnCell[c]) < n || len(t.EdgesOnCell[c]) < n {
			return fmt.Errorf("cell %d adjacency shorter than its ring degree %d", c, n)
		}
		g := t.CellGlobalID[c]
		if g < 0 {
			return fmt.Errorf("cell %d has negative global ID %d", c, g)
		}
		if prev, dup := seen[g]; dup {
			return fmt.Errorf("global ID %d assigned to both local cells %d and %d", g, prev, c)
		}
		seen[g] = c
		for i := 0; i < n; i++ {
			if nbr := t.CellsOnCell[c][i]; nbr != Unknown && (nbr < 0 || nbr >= t.NumCells) {
				return fmt.Errorf("cell %d neighbor slot %d out of range: %d", c, i, nbr)
			}
			e := t.EdgesOnCell[c][i]
			if e < 0 || e >= t.NumEdges {
				return fmt.Errorf("cell %d edge slot %d out of range: %d", c, i, e)
			}
			if c1, c2 := t.CellsOnEdge[e][0], t.CellsOnEdge[e][1]; c1 != c && c2 != c {
				return fmt.Errorf("edge %d listed on cell %d but owned by cells %d,%d", e, c, c1, c2)
			}
		}
	}
	for e := 0; e < t.NumEdges; e++ {
		for side := 0; side < 2; side++ {
			if c := t.CellsOnEdge[e][side]; c < 0 || c >= t.NumCells {
				return fmt.Errorf("edge %d owner %d out of range: %d", e, side, c)
			}
		}
		if !(t.EdgeLength[e] > 0) || !(t.DualLength[e] > 0) {
			return fmt.Errorf("edge %d has non-positive lengths: %v, %v", e, t.EdgeLength[e], t.DualLength[e])
		}
		if math.IsNaN(t.EdgeLength[e]) || math.IsNaN(t.DualLength[e]) {
			return fmt.Errorf("edge %d has NaN lengths", e)
		}
	}
	return nil
}
