package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/notargets/advstencil/mesh"
	"github.com/notargets/advstencil/stencil"
)

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title           string `json:"Title"`
	AdvectionOrder  int    `json:"AdvectionOrder"`  // 2, 3 or 4
	PolynomialOrder int    `json:"PolynomialOrder"` // local fit order, 2
	NVertLevels     int    `json:"NVertLevels"`
	// Level counts pinned to low order at the column ends. They expand
	// into a per-cell, per-level boundary mask.
	BoundaryLevelsBottom int `json:"BoundaryLevelsBottom"`
	BoundaryLevelsTop    int `json:"BoundaryLevelsTop"`
}

func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d]\t\t\t= Advection Order\n", ip.AdvectionOrder)
	fmt.Printf("[%d]\t\t\t= Polynomial Order\n", ip.PolynomialOrder)
	fmt.Printf("[%d]\t\t\t= NVertLevels\n", ip.NVertLevels)
	fmt.Printf("[%d,%d]\t\t\t= Boundary Levels (bottom, top)\n",
		ip.BoundaryLevelsBottom, ip.BoundaryLevelsTop)
}

// StencilConfig expands the parameters into the explicit precompute
// configuration, including the boundary-cell mask.
func (ip *InputParameters) StencilConfig(t *mesh.Topology) (cfg stencil.Config) {
	cfg = stencil.Config{
		HorizOrder:  ip.AdvectionOrder,
		PolyOrder:   ip.PolynomialOrder,
		NVertLevels: ip.NVertLevels,
	}
	if cfg.NVertLevels == 0 {
		cfg.NVertLevels = 1
	}
	if ip.BoundaryLevelsBottom > 0 || ip.BoundaryLevelsTop > 0 {
		cfg.BoundaryCell = make([][]bool, t.NumCells)
		for c := range cfg.BoundaryCell {
			levels := make([]bool, cfg.NVertLevels)
			for k := 0; k < ip.BoundaryLevelsBottom && k < cfg.NVertLevels; k++ {
				levels[k] = true
			}
			for k := cfg.NVertLevels - ip.BoundaryLevelsTop; k < cfg.NVertLevels; k++ {
				if k >= 0 {
					levels[k] = true
				}
			}
			cfg.BoundaryCell[c] = levels
		}
	}
	return
}
