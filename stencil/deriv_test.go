package stencil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/advstencil/mesh"
)

func planarTestMesh(t *testing.T) *mesh.Topology {
	tp, err := mesh.NewPlanarVoronoi(mesh.LatticePoints(10, 10, 0.08, 3))
	require.NoError(t, err)
	return tp
}

// The quadratic fit must reproduce an exact quadratic field, so applying a
// derivative row to samples of q recovers the analytic directional second
// derivative along the edge.
func TestDerivTwoPlanarExactness(t *testing.T) {
	var (
		tp      = planarTestMesh(t)
		a, b, c = 3., 2., -1.5
	)
	d2, err := BuildDerivTwo(tp)
	require.NoError(t, err)
	quad := func(x, y float64) float64 { return a*x*x + b*x*y + c*y*y }

	checked := 0
	for e := 0; e < tp.NumEdges; e++ {
		for side := 0; side < 2; side++ {
			row := d2.Row(e, side)
			if row == nil {
				continue
			}
			cell := tp.CellsOnEdge[e][side]
			require.Len(t, row, tp.NEdgesOnCell[cell]+1)
			got := row[0] * quad(0, 0)
			for i := 0; i < tp.NEdgesOnCell[cell]; i++ {
				nbr := tp.CellsOnCell[cell][i]
				got += row[i+1] * quad(tp.CellX[nbr]-tp.CellX[cell], tp.CellY[nbr]-tp.CellY[cell])
			}
			// d2q/ds2 along theta; invariant under theta+pi, so the side
			// does not enter
			cost, sint := math.Cos(tp.EdgeAngle[e]), math.Sin(tp.EdgeAngle[e])
			want := 2 * (a*cost*cost + b*cost*sint + c*sint*sint)
			require.InDelta(t, want, got, 1e-7, "edge %d side %d", e, side)
			checked++
		}
	}
	require.Greater(t, checked, 20)
}

// spherePoint places a point at arc distance delta from (rad,0,0) along
// azimuth phi (measured from local east toward the pole).
func spherePoint(rad, phi, delta float64) (x, y, z float64) {
	x = rad * math.Cos(delta)
	y = rad * math.Sin(delta) * math.Cos(phi)
	z = rad * math.Sin(delta) * math.Sin(phi)
	return
}

// sphereCellTopology builds a single fittable cell at (rad,0,0) with six
// ring neighbors at equal arc distance. The neighbors' own rings are left
// incomplete so only the center cell is fitted.
func sphereCellTopology(rad, phi0, delta float64) *mesh.Topology {
	const n = 6
	tp := &mesh.Topology{
		OnSphere:     true,
		Radius:       rad,
		NumCells:     n + 1,
		NumEdges:     n,
		NumVertices:  2 * n,
		CellGlobalID: []int{0, 1, 2, 3, 4, 5, 6},
		CellX:        make([]float64, n+1),
		CellY:        make([]float64, n+1),
		CellZ:        make([]float64, n+1),
		NEdgesOnCell: make([]int, n+1),
		CellsOnCell:  make([][]int, n+1),
		EdgesOnCell:  make([][]int, n+1),
		CellOwned:    make([]bool, n+1),
		CellValid:    make([]bool, n+1),
	}
	tp.CellX[0], tp.CellY[0], tp.CellZ[0] = rad, 0, 0
	tp.NEdgesOnCell[0] = n
	for k := 0; k < n; k++ {
		phi := phi0 + float64(k)*math.Pi/3
		x, y, z := spherePoint(rad, phi, delta)
		tp.CellX[k+1], tp.CellY[k+1], tp.CellZ[k+1] = x, y, z
		tp.CellsOnCell[0] = append(tp.CellsOnCell[0], k+1)
		tp.EdgesOnCell[0] = append(tp.EdgesOnCell[0], k)
		// Ring neighbors carry an unknown member so they are skipped
		tp.NEdgesOnCell[k+1] = 2
		tp.CellsOnCell[k+1] = []int{0, mesh.Unknown}
		tp.EdgesOnCell[k+1] = []int{k, k}

		v1x, v1y, v1z := spherePoint(rad, phi-0.2, delta*0.6)
		v2x, v2y, v2z := spherePoint(rad, phi+0.2, delta*0.6)
		tp.VertexX = append(tp.VertexX, v1x, v2x)
		tp.VertexY = append(tp.VertexY, v1y, v2y)
		tp.VertexZ = append(tp.VertexZ, v1z, v2z)
		tp.CellsOnEdge = append(tp.CellsOnEdge, [2]int{0, k + 1})
		tp.VerticesOnEdge = append(tp.VerticesOnEdge, [2]int{2 * k, 2*k + 1})
		tp.EdgeLength = append(tp.EdgeLength, 0.5*rad*delta)
		tp.DualLength = append(tp.DualLength, rad*delta)
	}
	for c := 0; c <= n; c++ {
		tp.CellOwned[c] = true
		tp.CellValid[c] = true
	}
	return tp
}

// On the sphere the tangent frame is built from accumulated spherical
// angles and arc lengths; for a symmetric ring those reduce to exact polar
// coordinates, so a quadratic in them must again be differentiated exactly.
func TestDerivTwoSphereExactness(t *testing.T) {
	var (
		rad, phi0, delta = 2.5, 0.3, 0.05
		a, b, c          = 1.2, -0.7, 2.1
	)
	tp := sphereCellTopology(rad, phi0, delta)
	d2, err := BuildDerivTwo(tp)
	require.NoError(t, err)

	quad := func(x, y float64) float64 { return a*x*x + b*x*y + c*y*y }
	arm := rad * delta
	for k := 0; k < tp.NumEdges; k++ {
		row := d2.Row(k, 0) // center cell is side 0 on every edge
		require.NotNil(t, row)
		require.Nil(t, d2.Row(k, 1), "neighbor cells have incomplete rings")

		got := row[0] * quad(0, 0)
		for i := 0; i < 6; i++ {
			phi := phi0 + float64(i)*math.Pi/3
			got += row[i+1] * quad(arm*math.Cos(phi), arm*math.Sin(phi))
		}
		phiE := phi0 + float64(k)*math.Pi/3 // edge midpoint azimuth
		cost, sint := math.Cos(phiE), math.Sin(phiE)
		want := 2 * (a*cost*cost + b*cost*sint + c*sint*sint)
		require.InDelta(t, want, got, 1e-7, "edge %d", k)
	}
}

func TestReferenceAnglePole(t *testing.T) {
	// First ring neighbor exactly at the north pole: the generic formula
	// is undefined there, the branch must pin the angle
	angle := referenceAngle(1, 0, 0, 0, 0, 1)
	require.Equal(t, math.Pi/2, angle)

	// Generic case stays finite
	angle = referenceAngle(1, 0, 0, 0, 0.6, 0.8)
	assert.False(t, math.IsNaN(angle))
}

func TestDerivTwoSkipsIncompleteRings(t *testing.T) {
	tp := planarTestMesh(t)
	// Pick a cell that would be fitted and invalidate it
	victim := -1
	for c := 0; c < tp.NumCells; c++ {
		if tp.RingComplete(c) {
			victim = c
			break
		}
	}
	require.GreaterOrEqual(t, victim, 0)
	tp.CellValid[victim] = false

	d2, err := BuildDerivTwo(tp)
	require.NoError(t, err)
	// The victim's own fits and those of every cell whose ring contains
	// it are gone; the rows are nil, never NaN or partial
	for i := 0; i < tp.NEdgesOnCell[victim]; i++ {
		e := tp.EdgesOnCell[victim][i]
		side := 0
		if tp.CellsOnEdge[e][1] == victim {
			side = 1
		}
		assert.Nil(t, d2.Row(e, side))
	}
	for e := 0; e < tp.NumEdges; e++ {
		for side := 0; side < 2; side++ {
			for _, v := range d2.Row(e, side) {
				assert.False(t, math.IsNaN(v))
			}
		}
	}
}

func TestDerivTwoDegenerateFit(t *testing.T) {
	// A valid cell with only four ring neighbors under-determines the
	// six-term basis and must fail fast, naming the cell
	tp := &mesh.Topology{
		NumCells:     5,
		NumEdges:     4,
		CellGlobalID: []int{77, 1, 2, 3, 4},
		NEdgesOnCell: []int{4, 1, 1, 1, 1},
		CellsOnCell:  [][]int{{1, 2, 3, 4}, {0}, {0}, {0}, {0}},
		EdgesOnCell:  [][]int{{0, 1, 2, 3}, {0}, {1}, {2}, {3}},
		CellOwned:    []bool{true, true, true, true, true},
		CellValid:    []bool{true, false, false, false, false},
	}
	// Make only cell 0's ring complete by validating its neighbors but
	// leaving their rings pointing at nothing valid
	for c := 1; c < 5; c++ {
		tp.CellValid[c] = true
		tp.CellsOnCell[c] = []int{mesh.Unknown}
	}
	_, err := BuildDerivTwo(tp)
	require.Error(t, err)
	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, ErrDegenerateFit, serr.Kind)
	assert.Equal(t, 77, serr.Entity)
}
