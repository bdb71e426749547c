package stencil

import (
	"github.com/notargets/advstencil/utils"
)

// nFitTerms is the quadratic basis size: 1, x, y, x^2, xy, y^2
const nFitTerms = 6

// polyFit2 computes the weighted normal-equations least-squares operator
//
//	B = (A' W A)^-1 A' W
//
// mapping m field samples to the nFitTerms basis coefficients. A is m x
// nFitTerms with one row per sample; W is the m x m row weight matrix.
func polyFit2(A, W utils.Matrix) (B utils.Matrix, err error) {
	var (
		at   = A.Transpose()
		atw  = at.Mul(W)
		atwa = atw.Mul(A)
	)
	inv, err := atwa.Inverse()
	if err != nil {
		return
	}
	B = inv.Mul(atw)
	return
}
