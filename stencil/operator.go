package stencil

import (
	"github.com/notargets/advstencil/mesh"
	"github.com/notargets/advstencil/utils"
)

// LowOrderOperator assembles the 2nd-order-consistent coefficients into an
// edges x cells sparse operator: applied to a cell field it yields the
// low-order flux factor per edge. Rows of unpopulated (halo) edges are
// empty.
func (coef *Coefficients) LowOrderOperator(t *mesh.Topology) utils.CSR {
	d := utils.NewDOK(t.NumEdges, t.NumCells)
	for e, nl := range coef.Lists {
		for k, s := range nl.Slots {
			if v := coef.Coefs[e][k]; v != 0 {
				d.Set(e, s.Local, v)
			}
		}
	}
	R := d.ToCSR()
	return R.SetReadOnly("LowOrderOperator")
}
