package atmos

import "github.com/stratosim/miniweather/utils"

// State is the padded conserved-variable store: four dense fields over
// (nz+2*hs, nx+2*hs), indexed (row, col) = (z, x). Values are perturbations
// from the hydrostatic background for DENS and RHOT; momenta are stored in
// full, matching §3's data model.
type State struct {
	Vars [NumVars]utils.Matrix
}

// NewState allocates a zeroed padded state for a local grid of nz by nx
// interior cells.
func NewState(nz, nx int) *State {
	s := &State{}
	for n := 0; n < NumVars; n++ {
		s.Vars[n] = utils.NewMatrix(nz+2*HaloSize, nx+2*HaloSize)
	}
	return s
}

// CopyFrom overwrites every variable of s with the contents of other.
func (s *State) CopyFrom(other *State) {
	for n := 0; n < NumVars; n++ {
		s.Vars[n].CopyFrom(other.Vars[n])
	}
}

// FluxBuffer is the interface-flux scratch array, (NumVars, nz+1, nx+1),
// valid only within a single directional kernel call.
type FluxBuffer struct {
	Vars [NumVars]utils.Matrix
}

func NewFluxBuffer(nz, nx int) *FluxBuffer {
	f := &FluxBuffer{}
	for n := 0; n < NumVars; n++ {
		f.Vars[n] = utils.NewMatrix(nz+1, nx+1)
	}
	return f
}

// TendencyBuffer is the per-cell tendency scratch array, (NumVars, nz, nx).
type TendencyBuffer struct {
	Vars [NumVars]utils.Matrix
}

func NewTendencyBuffer(nz, nx int) *TendencyBuffer {
	t := &TendencyBuffer{}
	for n := 0; n < NumVars; n++ {
		t.Vars[n] = utils.NewMatrix(nz, nx)
	}
	return t
}
