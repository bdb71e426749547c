/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/ghodss/yaml"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/advstencil/InputParameters"
	"github.com/notargets/advstencil/mesh"
	"github.com/notargets/advstencil/stencil"
)

// PrecomputeCmd represents the precompute command
var PrecomputeCmd = &cobra.Command{
	Use:   "precompute",
	Short: "Build per-edge advection stencils and coefficients for a mesh",
	Long: `
Reads a mesh topology file and optional run parameters, builds the per-edge
neighbor lists, per-cell quadratic fits and the 2nd/3rd/4th-order advection
coefficient tables, and reports stencil statistics.

advstencil precompute -F mesh.yaml -I params.yaml -o coefs.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		meshFile, err := cmd.Flags().GetString("meshFile")
		if err != nil {
			panic(err)
		}
		paramsFile, _ := cmd.Flags().GetString("inputParametersFile")
		outFile, _ := cmd.Flags().GetString("outputFile")
		prof, _ := cmd.Flags().GetBool("profile")
		if len(meshFile) == 0 {
			fmt.Println("must supply a mesh file (-F, --meshFile) in YAML topology format")
			os.Exit(1)
		}
		if prof {
			defer profile.Start(profile.CPUProfile).Stop()
		}
		runPrecompute(meshFile, paramsFile, outFile)
	},
}

func init() {
	rootCmd.AddCommand(PrecomputeCmd)
	PrecomputeCmd.Flags().StringP("meshFile", "F", "", "Mesh topology file in YAML format")
	PrecomputeCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for input parameters like:\n\t- AdvectionOrder\n\t- NVertLevels")
	PrecomputeCmd.Flags().StringP("outputFile", "o", "", "write the coefficient tables as YAML")
	PrecomputeCmd.Flags().Bool("profile", false, "write a CPU profile of the precompute")
}

func runPrecompute(meshFile, paramsFile, outFile string) {
	t, err := mesh.ReadTopologyFile(meshFile)
	if err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("Read mesh: %d cells, %d edges, sphere=%v", t.NumCells, t.NumEdges, t.OnSphere)

	ip := &InputParameters.InputParameters{AdvectionOrder: 2, PolynomialOrder: 2, NVertLevels: 1}
	if len(paramsFile) != 0 {
		data, err := os.ReadFile(paramsFile)
		if err != nil {
			log.Fatalf("unable to read input parameters file: %v", err)
		}
		if err = ip.Parse(data); err != nil {
			log.Fatalf("unable to parse input parameters file: %v", err)
		}
	}
	ip.Print()

	coef, err := stencil.Precompute(t, ip.StencilConfig(t))
	if err != nil {
		log.Fatalf("precompute failed: %v", err)
	}
	reportStats(coef)

	if len(outFile) != 0 {
		data, err := yaml.Marshal(coef)
		if err != nil {
			log.Fatalf("unable to marshal coefficients: %v", err)
		}
		if err = os.WriteFile(outFile, data, 0644); err != nil {
			log.Fatalf("unable to write %s: %v", outFile, err)
		}
		log.Printf("Wrote coefficient tables to %s", outFile)
	}
}

func reportStats(coef *stencil.Coefficients) {
	var (
		populated, slots, maxN int
	)
	for _, nl := range coef.Lists {
		if nl.N() == 0 {
			continue
		}
		populated++
		slots += nl.N()
		if nl.N() > maxN {
			maxN = nl.N()
		}
	}
	if populated == 0 {
		log.Printf("No edges populated - no locally owned edge pairs in this mesh")
		return
	}
	fmt.Printf("%8d\t= populated edges\n", populated)
	fmt.Printf("%8.2f\t= mean stencil size\n", float64(slots)/float64(populated))
	fmt.Printf("%8d\t= max stencil size\n", maxN)
}
