package mesh

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/pradeep-pyro/triangle"

	"github.com/notargets/advstencil/geometry"
)

/*
Planar Voronoi topology built from a Delaunay triangulation of generator
points. Each generator becomes a cell; each interior Delaunay edge becomes
a mesh edge whose endpoint vertices are the circumcenters of the two
triangles sharing it. Convex-hull generators have unbounded Voronoi cells,
and jittered boundary-row generators inside the hull keep truncated rings;
both are marked neither owned nor valid - the same role the outermost halo
layer plays on a decomposed mesh - so every remaining cell supports a full
quadratic fit.
*/

// minInteriorRing is the smallest ring degree kept as an interior cell: a
// quadratic fit over [cell, ring...] needs at least five ring samples.
const minInteriorRing = 5

// LatticePoints returns nx x ny generator points on a unit-spaced
// triangular lattice, each displaced uniformly within +/- jitter in x and
// y. The Voronoi cells are hexagonal-ish: every interior generator keeps
// exactly six ring neighbors for modest jitter, so local fits stay
// overdetermined. Keep jitter under about 0.15 lattice spacings.
func LatticePoints(nx, ny int, jitter float64, seed int64) (pts [][2]float64) {
	rng := rand.New(rand.NewSource(seed))
	pts = make([][2]float64, 0, nx*ny)
	rowHeight := math.Sqrt(3) / 2
	for j := 0; j < ny; j++ {
		offset := 0.0
		if j%2 == 1 {
			offset = 0.5
		}
		for i := 0; i < nx; i++ {
			pts = append(pts, [2]float64{
				float64(i) + offset + jitter*(2*rng.Float64()-1),
				float64(j)*rowHeight + jitter*(2*rng.Float64()-1),
			})
		}
	}
	return
}

// NewPlanarVoronoi builds a Topology from generator points. Global cell IDs
// are the generator ordinals.
func NewPlanarVoronoi(pts [][2]float64) (t *Topology, err error) {
	if len(pts) < 4 {
		return nil, fmt.Errorf("planar Voronoi needs at least 4 generators, got %d", len(pts))
	}
	tris := triangle.Delaunay(pts)
	if len(tris) == 0 {
		return nil, fmt.Errorf("degenerate generator set: empty triangulation")
	}

	// One Voronoi vertex per Delaunay triangle
	vx := make([]float64, len(tris))
	vy := make([]float64, len(tris))
	for i, tri := range tris {
		a, b, c := pts[tri[0]], pts[tri[1]], pts[tri[2]]
		if vx[i], vy[i], err = circumcenter(a, b, c); err != nil {
			return nil, err
		}
	}

	// Delaunay edge -> adjacent triangles
	type pair struct{ lo, hi int }
	triOnPair := make(map[pair][]int)
	for i, tri := range tris {
		for k := 0; k < 3; k++ {
			a, b := int(tri[k]), int(tri[(k+1)%3])
			if a > b {
				a, b = b, a
			}
			p := pair{a, b}
			triOnPair[p] = append(triOnPair[p], i)
		}
	}

	t = &Topology{
		OnSphere:     false,
		NumCells:     len(pts),
		NumVertices:  len(tris),
		CellGlobalID: make([]int, len(pts)),
		CellX:        make([]float64, len(pts)),
		CellY:        make([]float64, len(pts)),
		NEdgesOnCell: make([]int, len(pts)),
		CellsOnCell:  make([][]int, len(pts)),
		EdgesOnCell:  make([][]int, len(pts)),
		CellOwned:    make([]bool, len(pts)),
		CellValid:    make([]bool, len(pts)),
		VertexX:      vx,
		VertexY:      vy,
	}
	for c := range pts {
		t.CellGlobalID[c] = c
		t.CellX[c] = pts[c][0]
		t.CellY[c] = pts[c][1]
		t.CellOwned[c] = true
		t.CellValid[c] = true
	}

	// Deterministic edge ordering: sorted generator pairs
	pairs := make([]pair, 0, len(triOnPair))
	for p := range triOnPair {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].lo != pairs[j].lo {
			return pairs[i].lo < pairs[j].lo
		}
		return pairs[i].hi < pairs[j].hi
	})

	type incidence struct {
		edge, nbr int
		angle     float64
	}
	rings := make([][]incidence, len(pts))
	for _, p := range pairs {
		adj := triOnPair[p]
		if len(adj) != 2 {
			// Hull edge: the Voronoi edge is an unbounded ray. The two
			// generators keep unbounded cells and drop out of ownership.
			t.CellOwned[p.lo], t.CellValid[p.lo] = false, false
			t.CellOwned[p.hi], t.CellValid[p.hi] = false, false
			continue
		}
		length := geometry.Distance2D(vx[adj[0]], vy[adj[0]], vx[adj[1]], vy[adj[1]])
		if length == 0 {
			return nil, fmt.Errorf("cocircular generators %d,%d produce a zero-length Voronoi edge", p.lo, p.hi)
		}
		dx, dy := pts[p.hi][0]-pts[p.lo][0], pts[p.hi][1]-pts[p.lo][1]
		e := t.NumEdges
		t.NumEdges++
		t.CellsOnEdge = append(t.CellsOnEdge, [2]int{p.lo, p.hi})
		t.VerticesOnEdge = append(t.VerticesOnEdge, [2]int{adj[0], adj[1]})
		t.EdgeLength = append(t.EdgeLength, length)
		t.DualLength = append(t.DualLength, geometry.Distance2D(pts[p.lo][0], pts[p.lo][1], pts[p.hi][0], pts[p.hi][1]))
		t.EdgeAngle = append(t.EdgeAngle, math.Atan2(dy, dx))
		rings[p.lo] = append(rings[p.lo], incidence{e, p.hi, math.Atan2(dy, dx)})
		rings[p.hi] = append(rings[p.hi], incidence{e, p.lo, math.Atan2(-dy, -dx)})
	}

	for c := range pts {
		ring := rings[c]
		// Counter-clockwise ring ordering keeps EdgesOnCell aligned with
		// CellsOnCell for the tangent-frame projection.
		sort.Slice(ring, func(i, j int) bool { return ring[i].angle < ring[j].angle })
		if len(ring) > MaxCellEdges {
			return nil, fmt.Errorf("cell %d has ring degree %d exceeding bound %d", c, len(ring), MaxCellEdges)
		}
		if len(ring) < minInteriorRing {
			// Shallow fan: a boundary-row generator that escaped the hull
			// test. It cannot anchor a fit, so it joins the fringe.
			t.CellOwned[c], t.CellValid[c] = false, false
		}
		t.NEdgesOnCell[c] = len(ring)
		t.CellsOnCell[c] = make([]int, len(ring))
		t.EdgesOnCell[c] = make([]int, len(ring))
		for i, inc := range ring {
			t.CellsOnCell[c][i] = inc.nbr
			t.EdgesOnCell[c][i] = inc.edge
		}
	}
	if err = t.Check(); err != nil {
		return nil, fmt.Errorf("generated topology failed validation: %w", err)
	}
	return t, nil
}

func circumcenter(a, b, c [2]float64) (ux, uy float64, err error) {
	d := 2 * (a[0]*(b[1]-c[1]) + b[0]*(c[1]-a[1]) + c[0]*(a[1]-b[1]))
	if d == 0 {
		return 0, 0, fmt.Errorf("collinear generators have no circumcenter: %v %v %v", a, b, c)
	}
	a2 := a[0]*a[0] + a[1]*a[1]
	b2 := b[0]*b[0] + b[1]*b[1]
	c2 := c[0]*c[0] + c[1]*c[1]
	ux = (a2*(b[1]-c[1]) + b2*(c[1]-a[1]) + c2*(a[1]-b[1])) / d
	uy = (a2*(c[0]-b[0]) + b2*(a[0]-c[0]) + c2*(b[0]-a[0])) / d
	return
}
