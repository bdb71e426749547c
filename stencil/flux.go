package stencil

import "math"

/*
Closed-form vertical flux stencils. These consume precomputed column values
at call time and are untouched by the horizontal precompute. The algebraic
form (including operation order) is fixed: flux evaluation must be
bit-reproducible across runs.
*/

// VFlux4 returns the centered fourth-order flux through level i for the
// column values q[i-2..i+1] and vertical velocity w.
func VFlux4(qim2, qim1, qi, qip1, w float64) float64 {
	return w * (7.*(qi+qim1) - (qip1 + qim2)) / 12.
}

// VFlux3 blends an upwind-biased third-order correction into the centered
// fourth-order flux. coef in [0,1]: 0 reproduces VFlux4 exactly, 1 applies
// the fully dissipative third-order form.
func VFlux3(qim2, qim1, qi, qip1, w, coef float64) float64 {
	return VFlux4(qim2, qim1, qi, qip1, w) -
		coef*math.Abs(w)*((qip1-qim2)-3.*(qi-qim1))/12.
}
