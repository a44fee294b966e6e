package utils

// ConstArray returns a slice of length N filled with val.
func ConstArray(N int, val float64) (v []float64) {
	v = make([]float64, N)
	for i := range v {
		v[i] = val
	}
	return
}
