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

	"github.com/spf13/cobra"

	"github.com/notargets/advstencil/mesh"
)

// GenMeshCmd represents the genmesh command
var GenMeshCmd = &cobra.Command{
	Use:   "genmesh",
	Short: "Generate a planar Voronoi test mesh",
	Long: `
Generates a planar Voronoi topology from a jittered lattice of generator
points and writes it in the YAML mesh format consumed by precompute.

advstencil genmesh -n 16 -o mesh.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		n, _ := cmd.Flags().GetInt("n")
		jitter, _ := cmd.Flags().GetFloat64("jitter")
		seed, _ := cmd.Flags().GetInt64("seed")
		outFile, _ := cmd.Flags().GetString("outputFile")
		if len(outFile) == 0 {
			fmt.Println("must supply an output file (-o, --outputFile)")
			os.Exit(1)
		}
		if jitter <= 0 {
			fmt.Println("jitter must be positive: exact lattices have cocircular generators")
			os.Exit(1)
		}
		t, err := mesh.NewPlanarVoronoi(mesh.LatticePoints(n, n, jitter, seed))
		if err != nil {
			log.Fatalf("mesh generation failed: %v", err)
		}
		if err = mesh.WriteTopologyFile(t, outFile); err != nil {
			log.Fatalf("%v", err)
		}
		log.Printf("Wrote %d cells, %d edges to %s", t.NumCells, t.NumEdges, outFile)
	},
}

func init() {
	rootCmd.AddCommand(GenMeshCmd)
	GenMeshCmd.Flags().IntP("n", "n", 16, "lattice size, generates n x n cells")
	GenMeshCmd.Flags().Float64P("jitter", "j", 0.2, "generator displacement within the lattice spacing")
	GenMeshCmd.Flags().Int64P("seed", "s", 1, "random seed for the jitter")
	GenMeshCmd.Flags().StringP("outputFile", "o", "", "output mesh file in YAML format")
}
