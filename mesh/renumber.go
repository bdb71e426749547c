package mesh

import "fmt"

// Renumber returns a copy of the topology with cell local indices permuted
// by perm (perm[old] = new). Global IDs travel with their cells, so any
// result keyed by global ID must be identical on the renumbered mesh. This
// is how decomposition independence is exercised without a partitioner.
func (t *Topology) Renumber(perm []int) (r *Topology, err error) {
	if len(perm) != t.NumCells {
		return nil, fmt.Errorf("permutation length %d != NumCells %d", len(perm), t.NumCells)
	}
	hit := make([]bool, t.NumCells)
	for old, nw := range perm {
		if nw < 0 || nw >= t.NumCells {
			return nil, fmt.Errorf("permutation entry %d out of range: %d", old, nw)
		}
		if hit[nw] {
			return nil, fmt.Errorf("permutation is not a bijection, image %d repeated", nw)
		}
		hit[nw] = true
	}
	r = &Topology{
		OnSphere:       t.OnSphere,
		Radius:         t.Radius,
		NumCells:       t.NumCells,
		NumEdges:       t.NumEdges,
		NumVertices:    t.NumVertices,
		CellGlobalID:   make([]int, t.NumCells),
		CellX:          make([]float64, t.NumCells),
		CellY:          make([]float64, t.NumCells),
		NEdgesOnCell:   make([]int, t.NumCells),
		CellsOnCell:    make([][]int, t.NumCells),
		EdgesOnCell:    make([][]int, t.NumCells),
		CellOwned:      make([]bool, t.NumCells),
		CellValid:      make([]bool, t.NumCells),
		CellsOnEdge:    make([][2]int, t.NumEdges),
		VerticesOnEdge: append([][2]int{}, t.VerticesOnEdge...),
		EdgeLength:     append([]float64{}, t.EdgeLength...),
		DualLength:     append([]float64{}, t.DualLength...),
		VertexX:        append([]float64{}, t.VertexX...),
		VertexY:        append([]float64{}, t.VertexY...),
	}
	if t.OnSphere {
		r.CellZ = make([]float64, t.NumCells)
		r.VertexZ = append([]float64{}, t.VertexZ...)
	} else {
		r.EdgeAngle = append([]float64{}, t.EdgeAngle...)
	}
	remap := func(c int) int {
		if c == Unknown {
			return Unknown
		}
		return perm[c]
	}
	for old := 0; old < t.NumCells; old++ {
		nw := perm[old]
		r.CellGlobalID[nw] = t.CellGlobalID[old]
		r.CellX[nw] = t.CellX[old]
		r.CellY[nw] = t.CellY[old]
		if t.OnSphere {
			r.CellZ[nw] = t.CellZ[old]
		}
		r.NEdgesOnCell[nw] = t.NEdgesOnCell[old]
		r.CellOwned[nw] = t.CellOwned[old]
		r.CellValid[nw] = t.CellValid[old]
		ring := make([]int, len(t.CellsOnCell[old]))
		for i, nbr := range t.CellsOnCell[old] {
			ring[i] = remap(nbr)
		}
		r.CellsOnCell[nw] = ring
		r.EdgesOnCell[nw] = append([]int{}, t.EdgesOnCell[old]...)
	}
	for e := 0; e < t.NumEdges; e++ {
		r.CellsOnEdge[e] = [2]int{remap(t.CellsOnEdge[e][0]), remap(t.CellsOnEdge[e][1])}
	}
	return r, nil
}
