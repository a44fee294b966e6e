package utils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix wraps a gonum dense matrix with a writability guard, adapted from
// the DG solver's field-storage idiom. Fields in this module are addressed
// (row, col) = (z-index, x-index) over a padded logical extent.
type Matrix struct {
	M        *mat.Dense
	readOnly bool
	name     string
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			panic(fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %d,%d, len(data) = %d", nr, nc, len(dataO[0])))
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{M: m, name: "unnamed - hint: pass a name to SetReadOnly()"}
	return
}

func (m Matrix) Dims() (r, c int)    { return m.M.Dims() }
func (m Matrix) At(i, j int) float64 { return m.M.At(i, j) }

// Data returns the underlying row-major backing slice.
func (m Matrix) Data() []float64 { return m.M.RawMatrix().Data }

func (m *Matrix) SetReadOnly(name ...string) Matrix {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m Matrix) checkWritable() {
	if m.readOnly {
		panic(fmt.Errorf("attempt to write to read-only matrix %q", m.name))
	}
}

func (m Matrix) Set(i, j int, val float64) Matrix {
	m.checkWritable()
	m.M.Set(i, j, val)
	return m
}

func (m Matrix) Copy() (R Matrix) {
	nr, nc := m.Dims()
	dataR := make([]float64, nr*nc)
	copy(dataR, m.Data())
	return NewMatrix(nr, nc, dataR)
}

func (m Matrix) CopyFrom(A Matrix) Matrix {
	m.checkWritable()
	copy(m.Data(), A.Data())
	return m
}

func (m Matrix) AddScalar(a float64) Matrix {
	m.checkWritable()
	data := m.Data()
	for i := range data {
		data[i] += a
	}
	return m
}

func (m Matrix) Scale(a float64) Matrix {
	m.checkWritable()
	data := m.Data()
	for i := range data {
		data[i] *= a
	}
	return m
}

func (m Matrix) Apply(f func(float64) float64) Matrix {
	m.checkWritable()
	data := m.Data()
	for i, v := range data {
		data[i] = f(v)
	}
	return m
}

func (m Matrix) Min() (min float64) {
	data := m.Data()
	min = data[0]
	for _, v := range data {
		if v < min {
			min = v
		}
	}
	return
}

func (m Matrix) Max() (max float64) {
	data := m.Data()
	max = data[0]
	for _, v := range data {
		if v > max {
			max = v
		}
	}
	return
}
