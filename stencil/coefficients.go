package stencil

import (
	"log"

	"github.com/notargets/advstencil/mesh"
)

// Config is the fully explicit precompute configuration. Zero-valued
// fields are filled with documented defaults before the run; no optional
// pointers are consulted inside the assembly loops.
type Config struct {
	// HorizOrder selects the horizontal advection order: 2, 3 or 4.
	// Order 2 suppresses the high-order mask globally but still runs the
	// derivative computation, keeping the code path uniform. Default 2.
	HorizOrder int
	// PolyOrder is the local fit polynomial order. Only 2 is validated;
	// higher orders are refused at setup. Default 2.
	PolyOrder int
	// NVertLevels is the vertical dimension of the mask arrays. Default 1.
	NVertLevels int
	// MaxLevelCell caps the valid level range per cell. Default: all
	// levels valid on every cell.
	MaxLevelCell []int
	// BoundaryCell flags boundary cells per (cell, level). An edge whose
	// owner is flagged at level k is pinned to low order at k. Default:
	// no boundaries.
	BoundaryCell [][]bool
}

func (cfg Config) withDefaults(t *mesh.Topology) (Config, error) {
	if cfg.HorizOrder == 0 {
		cfg.HorizOrder = 2
	}
	if cfg.PolyOrder == 0 {
		cfg.PolyOrder = 2
	}
	if cfg.NVertLevels == 0 {
		cfg.NVertLevels = 1
	}
	if cfg.NVertLevels < 0 {
		return cfg, newError(ErrBadTopology, -1, "negative vertical level count %d", cfg.NVertLevels)
	}
	if cfg.HorizOrder < 2 || cfg.HorizOrder > 4 {
		return cfg, newError(ErrUnsupportedOrder, -1, "advection order %d not in [2,4]", cfg.HorizOrder)
	}
	if cfg.PolyOrder != 2 {
		// Higher-order fit paths exist in the literature but are not
		// validated here; refuse rather than run them blind.
		return cfg, newError(ErrUnsupportedOrder, -1, "polynomial fit order %d, only order 2 is supported", cfg.PolyOrder)
	}
	if cfg.MaxLevelCell == nil {
		cfg.MaxLevelCell = make([]int, t.NumCells)
		for c := range cfg.MaxLevelCell {
			cfg.MaxLevelCell[c] = cfg.NVertLevels
		}
	} else if len(cfg.MaxLevelCell) != t.NumCells {
		return cfg, newError(ErrBadTopology, -1, "MaxLevelCell length %d != NumCells %d", len(cfg.MaxLevelCell), t.NumCells)
	}
	if cfg.BoundaryCell == nil {
		cfg.BoundaryCell = make([][]bool, t.NumCells)
		for c := range cfg.BoundaryCell {
			cfg.BoundaryCell[c] = make([]bool, cfg.NVertLevels)
		}
	} else if len(cfg.BoundaryCell) != t.NumCells {
		return cfg, newError(ErrBadTopology, -1, "BoundaryCell length %d != NumCells %d", len(cfg.BoundaryCell), t.NumCells)
	} else {
		for c := range cfg.BoundaryCell {
			if len(cfg.BoundaryCell[c]) != cfg.NVertLevels {
				return cfg, newError(ErrBadTopology, -1,
					"BoundaryCell[%d] has %d levels, configuration has %d", c, len(cfg.BoundaryCell[c]), cfg.NVertLevels)
			}
		}
	}
	return cfg, nil
}

// Coefficients is the immutable per-edge advection coefficient table.
// Coefs and CoefsHigh are indexed by NeighborList slot, never by cell ID:
// callers map a slot back to a cell through Lists.
type Coefficients struct {
	Lists     []NeighborList `json:"Lists"`
	Coefs     [][]float64    `json:"Coefs"`
	CoefsHigh [][]float64    `json:"CoefsHigh"`
	// HighOrderMask enables the 3rd/4th-order correction per (edge,
	// level). Forced off near boundaries and under 2nd-order operation.
	HighOrderMask [][]bool `json:"HighOrderMask"`
}

// Precompute runs the full setup pass: neighbor lists, per-cell fits,
// per-edge coefficient assembly and masks. It is re-run only when the mesh
// geometry changes. The loops are write-disjoint per cell and per edge, so
// callers may shard them if setup time ever matters.
func Precompute(t *mesh.Topology, cfg Config) (coef *Coefficients, err error) {
	if cfg, err = cfg.withDefaults(t); err != nil {
		return nil, err
	}
	if err = t.Check(); err != nil {
		return nil, newError(ErrBadTopology, -1, "%v", err)
	}

	lists := BuildNeighborLists(t)
	d2, err := BuildDerivTwo(t)
	if err != nil {
		return nil, err
	}

	coef = &Coefficients{
		Lists:         lists,
		Coefs:         make([][]float64, t.NumEdges),
		CoefsHigh:     make([][]float64, t.NumEdges),
		HighOrderMask: make([][]bool, t.NumEdges),
	}
	populated := 0
	for e := 0; e < t.NumEdges; e++ {
		coef.HighOrderMask[e] = make([]bool, cfg.NVertLevels)
		if lists[e].N() == 0 {
			continue
		}
		populated++
		coef.assembleEdge(t, d2, e)
		coef.maskEdge(t, cfg, e)
	}
	log.Printf("Precomputed advection coefficients: %d/%d edges populated, order %d",
		populated, t.NumEdges, cfg.HorizOrder)
	return coef, nil
}

// assembleEdge fills Coefs and CoefsHigh for one edge from both owning
// cells' derivative rows. Missing rows (skipped fits, slot misses) simply
// contribute nothing, degrading the edge toward the centered average.
func (coef *Coefficients) assembleEdge(t *mesh.Topology, d2 *DerivTwo, e int) {
	var (
		nl     = coef.Lists[e]
		n      = nl.N()
		c1, c2 = t.CellsOnEdge[e][0], t.CellsOnEdge[e][1]
		cs     = make([]float64, n)
		high   = make([]float64, n)
	)
	addSide := func(c, side int) {
		row := d2.Row(e, side)
		if row == nil {
			return
		}
		if k := nl.FindSlot(t.CellGlobalID[c]); k >= 0 {
			cs[k] += row[0]
			high[k] += row[0]
		}
		for i := 0; i < t.NEdgesOnCell[c]; i++ {
			nbr := t.CellsOnCell[c][i]
			if nbr == mesh.Unknown {
				continue
			}
			if k := nl.FindSlot(t.CellGlobalID[nbr]); k >= 0 {
				cs[k] += row[i+1]
				high[k] += row[i+1]
			}
		}
	}
	addSide(c1, 0)
	addSide(c2, 1)

	scale := -(t.EdgeLength[e] * t.EdgeLength[e]) / 12.
	for k := 0; k < n; k++ {
		cs[k] *= scale
		high[k] *= scale
	}
	// Centered two-point average: the 2nd-order-consistent core
	cs[nl.FindSlot(t.CellGlobalID[c1])] += 0.5
	cs[nl.FindSlot(t.CellGlobalID[c2])] += 0.5
	for k := 0; k < n; k++ {
		cs[k] *= t.DualLength[e]
		high[k] *= t.DualLength[e]
	}
	coef.Coefs[e] = cs
	coef.CoefsHigh[e] = high
}

// maskEdge sets the high-order enable flags for one edge. Boundary
// suppression applies independently of the order policy.
func (coef *Coefficients) maskEdge(t *mesh.Topology, cfg Config, e int) {
	var (
		c1, c2 = t.CellsOnEdge[e][0], t.CellsOnEdge[e][1]
		kmax   = cfg.MaxLevelCell[c1]
	)
	if cfg.MaxLevelCell[c2] < kmax {
		kmax = cfg.MaxLevelCell[c2]
	}
	if kmax > cfg.NVertLevels {
		kmax = cfg.NVertLevels
	}
	for k := 0; k < kmax; k++ {
		on := cfg.HorizOrder > 2
		if cfg.BoundaryCell[c1][k] || cfg.BoundaryCell[c2][k] {
			on = false
		}
		coef.HighOrderMask[e][k] = on
	}
}
