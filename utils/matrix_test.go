package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrixBasics(t *testing.T) {
	M := NewMatrix(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	nr, nc := M.Dims()
	assert.Equal(t, 2, nr)
	assert.Equal(t, 3, nc)
	assert.Equal(t, 5.0, M.At(1, 1))

	A := M.Copy()
	A.Set(0, 0, 99)
	assert.Equal(t, 1.0, M.At(0, 0), "Copy must not alias the source")
	assert.Equal(t, 99.0, A.At(0, 0))
}

func TestMatrixReadOnly(t *testing.T) {
	M := NewMatrix(2, 2)
	M.SetReadOnly("frozen")
	assert.Panics(t, func() { M.Set(0, 0, 1) })
}

func TestMatrixReductions(t *testing.T) {
	M := NewMatrix(1, 4, []float64{3, -1, 7, 2})
	assert.Equal(t, 7.0, M.Max())
	assert.Equal(t, -1.0, M.Min())
}

func TestMatrixAddScalarAndScale(t *testing.T) {
	M := NewMatrix(1, 3, []float64{1, 2, 3})
	M.AddScalar(1)
	assert.Equal(t, []float64{2, 3, 4}, M.Data())
	M.Scale(2)
	assert.Equal(t, []float64{4, 6, 8}, M.Data())
}
