package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/advstencil/mesh"
)

func TestParse(t *testing.T) {
	data := `
Title: "Quadratic fit advection"
AdvectionOrder: 4
PolynomialOrder: 2
NVertLevels: 10
BoundaryLevelsBottom: 2
BoundaryLevelsTop: 1
`
	var ip InputParameters
	require.NoError(t, ip.Parse([]byte(data)))
	assert.Equal(t, "Quadratic fit advection", ip.Title)
	assert.Equal(t, 4, ip.AdvectionOrder)
	assert.Equal(t, 2, ip.PolynomialOrder)
	assert.Equal(t, 10, ip.NVertLevels)
	assert.Equal(t, 2, ip.BoundaryLevelsBottom)
	assert.Equal(t, 1, ip.BoundaryLevelsTop)

	require.Error(t, ip.Parse([]byte("AdvectionOrder: [oops")))
}

func TestStencilConfigBoundaryExpansion(t *testing.T) {
	tp := &mesh.Topology{NumCells: 3}
	ip := InputParameters{
		AdvectionOrder:       4,
		PolynomialOrder:      2,
		NVertLevels:          5,
		BoundaryLevelsBottom: 2,
		BoundaryLevelsTop:    1,
	}
	cfg := ip.StencilConfig(tp)
	assert.Equal(t, 4, cfg.HorizOrder)
	assert.Equal(t, 5, cfg.NVertLevels)
	require.Len(t, cfg.BoundaryCell, 3)
	for c := 0; c < 3; c++ {
		assert.Equal(t, []bool{true, true, false, false, true}, cfg.BoundaryCell[c])
	}
}

func TestStencilConfigNoBoundaries(t *testing.T) {
	tp := &mesh.Topology{NumCells: 2}
	ip := InputParameters{AdvectionOrder: 3, PolynomialOrder: 2}
	cfg := ip.StencilConfig(tp)
	assert.Nil(t, cfg.BoundaryCell, "defaults are left to the precompute setup")
	assert.Equal(t, 1, cfg.NVertLevels)
}
