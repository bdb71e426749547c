package stencil

import (
	"sort"

	"github.com/notargets/advstencil/mesh"
)

// Slot pairs a cell's partition-independent global ID with its local array
// index. Sorting and lookup go through Global; array access goes through
// Local.
type Slot struct {
	Global int `json:"Global"`
	Local  int `json:"Local"`
}

// NeighborList is the influence stencil of one edge: the two owning cells
// plus the deduplicated union of their first rings, sorted ascending by
// global ID. The ordering is therefore identical no matter how the mesh was
// decomposed. An edge with an owner that is not locally owned gets an empty
// list and is skipped downstream.
type NeighborList struct {
	Slots []Slot `json:"Slots,omitempty"`
}

func (nl NeighborList) N() int { return len(nl.Slots) }

// FindSlot returns the position of globalID in the list, or -1 when the
// cell is not part of this edge's stencil. A miss is structural, not an
// error: contributions from missed cells are skipped.
func (nl NeighborList) FindSlot(globalID int) int {
	k := sort.Search(len(nl.Slots), func(i int) bool { return nl.Slots[i].Global >= globalID })
	if k < len(nl.Slots) && nl.Slots[k].Global == globalID {
		return k
	}
	return -1
}

// BuildNeighborLists constructs the per-edge stencil lists for every edge
// whose owning cells are both locally owned.
func BuildNeighborLists(t *mesh.Topology) (lists []NeighborList) {
	lists = make([]NeighborList, t.NumEdges)
	for e := 0; e < t.NumEdges; e++ {
		lists[e] = buildNeighborList(t, e)
	}
	return
}

func buildNeighborList(t *mesh.Topology, e int) (nl NeighborList) {
	var (
		c1, c2 = t.CellsOnEdge[e][0], t.CellsOnEdge[e][1]
	)
	if !t.CellOwned[c1] || !t.CellOwned[c2] {
		return
	}
	member := make(map[int]struct{}, 2*mesh.MaxCellEdges)
	add := func(c int) {
		g := t.CellGlobalID[c]
		if _, ok := member[g]; ok {
			return
		}
		member[g] = struct{}{}
		nl.Slots = append(nl.Slots, Slot{Global: g, Local: c})
	}
	add(c1)
	add(c2)
	for _, c := range [2]int{c1, c2} {
		for i := 0; i < t.NEdgesOnCell[c]; i++ {
			nbr := t.CellsOnCell[c][i]
			if nbr == mesh.Unknown {
				continue
			}
			add(nbr)
		}
	}
	sort.Slice(nl.Slots, func(i, j int) bool { return nl.Slots[i].Global < nl.Slots[j].Global })
	return
}
