//go:build cgo
// +build cgo

package utils

/*
#cgo CFLAGS: -march=native -mavx -mavx2
#cgo LDFLAGS: -lopenblas -llapacke -lgfortran -lm -lpthread
#include <cblas.h>
#include <lapacke.h>
*/
import "C"

import (
	"log"

	"gonum.org/v1/gonum/blas/blas64"
	netblas "gonum.org/v1/netlib/blas/netlib"
)

// Routes the normal-equations solves through openblas. The fit matrices
// are tiny, so this only pays off on meshes with millions of cells.
func init() {
	blas64.Use(netblas.Implementation{})
	log.Printf("Using netlib BLAS for the least-squares fits")
}
