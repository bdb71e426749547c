package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrix(t *testing.T) {
	A := NewMatrix(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	nr, nc := A.Dims()
	require.Equal(t, 2, nr)
	require.Equal(t, 3, nc)
	require.Equal(t, 6., A.At(1, 2))

	At := A.Transpose()
	nr, nc = At.Dims()
	require.Equal(t, 3, nr)
	require.Equal(t, 2, nc)
	require.Equal(t, A.At(0, 1), At.At(1, 0))

	// (2x3)*(3x2) = 2x2
	B := A.Mul(At)
	require.Equal(t, []float64{14, 32, 32, 77}, B.Data())

	require.Equal(t, []float64{4, 5, 6}, A.Row(1))

	// Copy does not alias
	C := A.Copy()
	C.Set(0, 0, 100)
	assert.Equal(t, 1., A.At(0, 0))

	assert.Panics(t, func() { NewMatrix(2, 2, []float64{1}) })
}

func TestMatrixInverse(t *testing.T) {
	A := NewMatrix(2, 2, []float64{
		4, 7,
		2, 6,
	})
	Ainv, err := A.Inverse()
	require.NoError(t, err)
	I := A.Mul(Ainv)
	assert.InDelta(t, 1, I.At(0, 0), 1e-12)
	assert.InDelta(t, 0, I.At(0, 1), 1e-12)
	assert.InDelta(t, 0, I.At(1, 0), 1e-12)
	assert.InDelta(t, 1, I.At(1, 1), 1e-12)

	S := NewMatrix(2, 2, []float64{1, 2, 2, 4})
	_, err = S.Inverse()
	assert.Error(t, err)
}

func TestReadOnly(t *testing.T) {
	A := NewIdentity(2)
	A.SetReadOnly("A")
	assert.Panics(t, func() { A.Set(0, 0, 2) })
	A.SetWritable()
	assert.NotPanics(t, func() { A.Set(0, 0, 2) })
}

func TestSparse(t *testing.T) {
	d := NewDOK(3, 4)
	d.Set(0, 0, 1)
	d.Set(0, 3, 2)
	d.Set(2, 1, -1)
	R := d.ToCSR()
	nr, nc := R.Dims()
	require.Equal(t, 3, nr)
	require.Equal(t, 4, nc)
	require.Equal(t, 3, R.NNZ())
	require.Equal(t, 2., R.At(0, 3))

	b := R.MulVec([]float64{1, 1, 1, 1})
	assert.Equal(t, []float64{3, 0, -1}, b)
	assert.Panics(t, func() { R.MulVec([]float64{1, 2}) })
}
