package mesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimalTopology is the smallest planar topology Check accepts: two cells
// joined by one edge.
func minimalTopology() *Topology {
	return &Topology{
		NumCells:       2,
		NumEdges:       1,
		NumVertices:    2,
		CellGlobalID:   []int{0, 1},
		CellX:          []float64{0, 1},
		CellY:          []float64{0, 0},
		NEdgesOnCell:   []int{1, 1},
		CellsOnCell:    [][]int{{1}, {0}},
		EdgesOnCell:    [][]int{{0}, {0}},
		CellOwned:      []bool{true, true},
		CellValid:      []bool{true, true},
		CellsOnEdge:    [][2]int{{0, 1}},
		VerticesOnEdge: [][2]int{{0, 1}},
		EdgeLength:     []float64{1},
		DualLength:     []float64{1},
		EdgeAngle:      []float64{0},
		VertexX:        []float64{0.5, 0.5},
		VertexY:        []float64{-0.5, 0.5},
	}
}

func TestCheckAcceptsMinimal(t *testing.T) {
	require.NoError(t, minimalTopology().Check())
}

func TestCheckArrayLengths(t *testing.T) {
	tp := minimalTopology()
	tp.CellX = tp.CellX[:1]
	require.Error(t, tp.Check())

	tp = minimalTopology()
	tp.EdgeLength = nil
	require.Error(t, tp.Check())
}

func TestCheckGlobalIDs(t *testing.T) {
	tp := minimalTopology()
	tp.CellGlobalID[1] = 0
	err := tp.Check()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "global ID 0")

	tp = minimalTopology()
	tp.CellGlobalID[0] = -3
	require.Error(t, tp.Check())
}

func TestCheckRingDegree(t *testing.T) {
	tp := minimalTopology()
	tp.NEdgesOnCell[0] = MaxCellEdges + 1
	require.Error(t, tp.Check())

	// An empty ring is only legitimate on an invalid fringe cell
	tp = minimalTopology()
	tp.NEdgesOnCell[0] = 0
	require.Error(t, tp.Check())
	tp.CellValid[0] = false
	require.NoError(t, tp.Check())
}

func TestCheckAdjacencyRanges(t *testing.T) {
	tp := minimalTopology()
	tp.CellsOnCell[0][0] = 7
	require.Error(t, tp.Check())

	// Unknown is a legal neighbor, not a range violation
	tp = minimalTopology()
	tp.CellsOnCell[0][0] = Unknown
	require.NoError(t, tp.Check())

	tp = minimalTopology()
	tp.EdgesOnCell[1][0] = 3
	require.Error(t, tp.Check())
}

func TestCheckEdgeOwnership(t *testing.T) {
	tp := minimalTopology()
	tp.CellsOnEdge[0] = [2]int{0, 0}
	err := tp.Check()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "edge 0 listed on cell 1")

	tp = minimalTopology()
	tp.CellsOnEdge[0][1] = 5
	require.Error(t, tp.Check())
}

func TestCheckLengths(t *testing.T) {
	tp := minimalTopology()
	tp.EdgeLength[0] = 0
	require.Error(t, tp.Check())

	tp = minimalTopology()
	tp.DualLength[0] = math.NaN()
	require.Error(t, tp.Check())
}

func TestCheckGeometryMode(t *testing.T) {
	// Planar meshes carry per-edge angles
	tp := minimalTopology()
	tp.EdgeAngle = nil
	require.Error(t, tp.Check())

	// Spherical meshes carry a radius and a third coordinate
	tp = minimalTopology()
	tp.OnSphere = true
	tp.EdgeAngle = nil
	require.Error(t, tp.Check())
	tp.Radius = 1
	require.Error(t, tp.Check())
	tp.CellZ = []float64{0, 0}
	require.NoError(t, tp.Check())
}

func TestRingComplete(t *testing.T) {
	tp := minimalTopology()
	assert.True(t, tp.RingComplete(0))
	assert.True(t, tp.RingComplete(1))

	tp.CellsOnCell[0][0] = Unknown
	assert.False(t, tp.RingComplete(0))

	tp = minimalTopology()
	tp.CellValid[1] = false
	assert.False(t, tp.RingComplete(0), "invalid ring member breaks the fit")
	assert.False(t, tp.RingComplete(1), "invalid cell is never complete")
}
