package atmos

import "math"

// gaussLegendre3 holds the 3-point Gauss-Legendre quadrature nodes (on [0,1])
// and weights used throughout this solver for cell-average integrals.
var (
	gaussLegendre3Nodes   = [3]float64{0.112701665379258311482073460022, 0.5, 0.887298334620741688517926539978}
	gaussLegendre3Weights = [3]float64{0.277777777777777777777777777779, 0.444444444444444444444444444444, 0.277777777777777777777777777779}
)

// Background holds the hydrostatic reference state: cell-averaged density and
// density*theta over the padded local vertical extent, plus interface
// density, density*theta and pressure over the local vertical extent.
type Background struct {
	CellRho      []float64 // length nz+2*hs
	CellRhoTheta []float64 // length nz+2*hs
	IntRho       []float64 // length nz+1
	IntRhoTheta  []float64 // length nz+1
	IntPressure  []float64 // length nz+1
}

// NewBackground precomputes the hydrostatic profiles for a rank's local
// vertical extent. kBeg is always 0 and nz is always nzGlob since this
// solver never decomposes along z (§3).
func NewBackground(scn Scenario, nz int, dz float64) *Background {
	b := &Background{
		CellRho:      make([]float64, nz+2*HaloSize),
		CellRhoTheta: make([]float64, nz+2*HaloSize),
		IntRho:       make([]float64, nz+1),
		IntRhoTheta:  make([]float64, nz+1),
		IntPressure:  make([]float64, nz+1),
	}
	for k := 0; k < nz+2*HaloSize; k++ {
		var rho, rhoTheta float64
		for q := 0; q < 3; q++ {
			z := (float64(k-HaloSize) + gaussLegendre3Nodes[q]) * dz
			rhoBar, thetaBar := scn.Background(z)
			rho += gaussLegendre3Weights[q] * rhoBar
			rhoTheta += gaussLegendre3Weights[q] * rhoBar * thetaBar
		}
		b.CellRho[k] = rho
		b.CellRhoTheta[k] = rhoTheta
	}
	for k := 0; k <= nz; k++ {
		z := float64(k) * dz
		rhoBar, thetaBar := scn.Background(z)
		b.IntRho[k] = rhoBar
		b.IntRhoTheta[k] = rhoBar * thetaBar
		b.IntPressure[k] = C0 * math.Pow(rhoBar*thetaBar, Gamma)
	}
	return b
}
