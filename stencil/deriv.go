package stencil

import (
	"math"

	"github.com/notargets/advstencil/geometry"
	"github.com/notargets/advstencil/mesh"
	"github.com/notargets/advstencil/utils"
)

/*
Second-derivative stencil builder.

For every cell whose first ring is fully resident, a quadratic surface is
fitted over [cell, ring...] samples in a local tangent frame, and for each
edge of the cell the second derivative of that surface along the edge
direction is extracted as one coefficient per stencil member. The rows are
stored per edge under the side the cell occupies (side 0 for the first
owner in CellsOnEdge), so the coefficient assembler can consume both
owners' fits independently.
*/

// DerivTwo holds, per edge and side, the directional second-derivative
// coefficients aligned with [cell, neighbors(cell)...] of that side's
// owning cell. A nil row means the owning cell's fit was skipped; its
// contribution is exactly zero.
type DerivTwo struct {
	rows [][2][]float64
}

// Row returns the coefficients for one side of an edge, nil when skipped.
func (d *DerivTwo) Row(edge, side int) []float64 { return d.rows[edge][side] }

// BuildDerivTwo fits every locally complete cell and projects the fits
// onto edge directions. Cells with incomplete rings are skipped silently;
// an under-determined fit is a hard error naming the cell.
func BuildDerivTwo(t *mesh.Topology) (d *DerivTwo, err error) {
	d = &DerivTwo{rows: make([][2][]float64, t.NumEdges)}
	for c := 0; c < t.NumCells; c++ {
		if !t.RingComplete(c) {
			continue
		}
		if err = buildCellFit(t, c, d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func buildCellFit(t *mesh.Topology, c int, d *DerivTwo) (err error) {
	var (
		n    = t.NEdgesOnCell[c]
		ring = t.CellsOnCell[c][:n]
		m    = n + 1
	)
	if m < nFitTerms {
		return newError(ErrDegenerateFit, t.CellGlobalID[c],
			"cell has %d ring neighbors, fit needs at least %d samples", n, nFitTerms)
	}

	// Project the ring into local tangent coordinates
	var (
		xp, yp   = make([]float64, n), make([]float64, n)
		thetaAbs float64
	)
	if t.OnSphere {
		var (
			r          = t.Radius
			cx, cy, cz = t.CellX[c] / r, t.CellY[c] / r, t.CellZ[c] / r
			theta      float64
		)
		for i, nbr := range ring {
			nx, ny, nz := t.CellX[nbr]/r, t.CellY[nbr]/r, t.CellZ[nbr]/r
			if i == 0 {
				thetaAbs = referenceAngle(cx, cy, cz, nx, ny, nz)
				theta = thetaAbs
			} else {
				px := t.CellsOnCell[c][i-1]
				theta += geometry.SphereAngle(cx, cy, cz,
					t.CellX[px]/r, t.CellY[px]/r, t.CellZ[px]/r, nx, ny, nz)
			}
			dl := geometry.ArcLength(t.CellX[c], t.CellY[c], t.CellZ[c],
				t.CellX[nbr], t.CellY[nbr], t.CellZ[nbr])
			xp[i] = math.Cos(theta) * dl
			yp[i] = math.Sin(theta) * dl
		}
	} else {
		for i := 0; i < n; i++ {
			e := t.EdgesOnCell[c][i]
			dl, ang := t.DualLength[e], t.EdgeAngle[e]
			if t.CellsOnEdge[e][0] == c {
				xp[i] = dl * math.Cos(ang)
				yp[i] = dl * math.Sin(ang)
			} else {
				xp[i] = -dl * math.Cos(ang)
				yp[i] = -dl * math.Sin(ang)
			}
		}
	}

	// Overdetermined system: anchor row for the cell itself, then one
	// quadratic-basis row per ring neighbor. Unit weights.
	A := utils.NewMatrix(m, nFitTerms)
	A.Set(0, 0, 1)
	for i := 0; i < n; i++ {
		A.SetRow(i+1, []float64{1, xp[i], yp[i], xp[i] * xp[i], xp[i] * yp[i], yp[i] * yp[i]})
	}
	B, err := polyFit2(A, utils.NewIdentity(m))
	if err != nil {
		return newError(ErrDegenerateFit, t.CellGlobalID[c], "rank-deficient fit: %v", err)
	}

	// Rotate the fitted xx/xy/yy rows into each edge's direction
	for i := 0; i < n; i++ {
		var (
			e      = t.EdgesOnCell[c][i]
			side   = 0
			thetaE float64
		)
		if t.CellsOnEdge[e][1] == c {
			side = 1
		}
		if t.OnSphere {
			r := t.Radius
			v1, v2 := t.VerticesOnEdge[e][0], t.VerticesOnEdge[e][1]
			mx, my, mz := geometry.ArcBisect(
				t.VertexX[v1]/r, t.VertexY[v1]/r, t.VertexZ[v1]/r,
				t.VertexX[v2]/r, t.VertexY[v2]/r, t.VertexZ[v2]/r, 1)
			nbr0 := ring[0]
			thetaE = thetaAbs + geometry.SphereAngle(
				t.CellX[c]/r, t.CellY[c]/r, t.CellZ[c]/r,
				t.CellX[nbr0]/r, t.CellY[nbr0]/r, t.CellZ[nbr0]/r,
				mx, my, mz)
		} else {
			thetaE = t.EdgeAngle[e]
			if side == 1 {
				thetaE += math.Pi
			}
		}
		var (
			cost, sint = math.Cos(thetaE), math.Sin(thetaE)
			cos2t      = cost * cost
			sin2t      = sint * sint
			costsint   = cost * sint
			row        = make([]float64, m)
		)
		for k := 0; k < m; k++ {
			row[k] = 2 * (cos2t*B.At(3, k) + costsint*B.At(4, k) + sin2t*B.At(5, k))
		}
		d.rows[e][side] = row
	}
	return nil
}

// referenceAngle orients the cell's tangent frame: pi/2 minus the signed
// spherical angle between the first ring neighbor and the north pole. The
// generic angle formula is undefined when the neighbor sits exactly at the
// pole, so that case pins the angle to pi/2.
func referenceAngle(cx, cy, cz, nx, ny, nz float64) float64 {
	if nz == 1.0 {
		return math.Pi / 2
	}
	return math.Pi/2 - geometry.SphereAngle(cx, cy, cz, nx, ny, nz, 0, 0, 1)
}
