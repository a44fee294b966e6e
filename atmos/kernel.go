package atmos

import (
	"math"

	"github.com/stratosim/miniweather/utils"
)

// Direction names the dimension a kernel sweep operates along.
type Direction int

const (
	DirX Direction = iota
	DirZ
)

// reconstructed holds a 4th-order averaged interface value and a
// 3rd-derivative proxy used for hyper-viscosity, for one variable at one
// interface.
type reconstructed struct {
	val, d3 float64
}

// reconstruct4 applies the fixed stencil weights to four consecutive cell
// values s0..s3 straddling an interface (§4.5).
func reconstruct4(s0, s1, s2, s3 float64) reconstructed {
	return reconstructed{
		val: -s0/12 + 7*s1/12 + 7*s2/12 - s3/12,
		d3:  -s0 + 3*s1 - 3*s2 + s3,
	}
}

// ComputeFluxTendency evaluates the interface fluxes and cell tendencies for
// one directional sweep of q, writing into r.Flux and r.Tend. dtStage scales
// the hyper-viscosity coefficient, not the full step (§9 design note).
func (r *Rank) ComputeFluxTendency(dir Direction, q *State, dtStage float64) {
	if dir == DirX {
		r.fluxTendencyX(q, dtStage)
	} else {
		r.fluxTendencyZ(q, dtStage)
	}
	if r.Scn.Name == "gravity_waves" {
		r.addGravityWaveForcing(dir)
	}
}

func (r *Rank) fluxTendencyX(q *State, dtStage float64) {
	hvCoef := -r.Cfg.HVBeta * r.Dx / (16 * dtStage)
	nWorkers := r.Nz
	if nWorkers < 1 {
		nWorkers = 1
	}
	utils.Parallelize(nWorkers, func(k int) {
		for i := 0; i <= r.Nx; i++ {
			var rec [NumVars]reconstructed
			for n := 0; n < NumVars; n++ {
				v := q.Vars[n]
				row := k + HaloSize
				rec[n] = reconstruct4(
					v.At(row, i+HaloSize-2),
					v.At(row, i+HaloSize-1),
					v.At(row, i+HaloSize),
					v.At(row, i+HaloSize+1),
				)
			}
			rhoBar := r.Bg.CellRho[k+HaloSize]
			rhoThetaBar := r.Bg.CellRhoTheta[k+HaloSize]

			rr := rec[DENS].val + rhoBar
			u := rec[UMOM].val / rr
			w := rec[WMOM].val / rr
			t := (rec[RHOT].val + rhoThetaBar) / rr
			p := C0 * math.Pow(rr*t, Gamma)

			r.Flux.Vars[DENS].Set(k, i, rr*u-hvCoef*rec[DENS].d3)
			r.Flux.Vars[UMOM].Set(k, i, rr*u*u+p-hvCoef*rec[UMOM].d3)
			r.Flux.Vars[WMOM].Set(k, i, rr*u*w-hvCoef*rec[WMOM].d3)
			r.Flux.Vars[RHOT].Set(k, i, rr*u*t-hvCoef*rec[RHOT].d3)
		}
		for i := 0; i < r.Nx; i++ {
			for n := 0; n < NumVars; n++ {
				r.Tend.Vars[n].Set(k, i, -(r.Flux.Vars[n].At(k, i+1)-r.Flux.Vars[n].At(k, i))/r.Dx)
			}
		}
	})
}

func (r *Rank) fluxTendencyZ(q *State, dtStage float64) {
	hvCoef := -r.Cfg.HVBeta * r.Dz / (16 * dtStage)
	utils.Parallelize(r.Nx, func(i int) {
		for k := 0; k <= r.Nz; k++ {
			var rec [NumVars]reconstructed
			for n := 0; n < NumVars; n++ {
				v := q.Vars[n]
				col := i + HaloSize
				rec[n] = reconstruct4(
					v.At(k+HaloSize-2, col),
					v.At(k+HaloSize-1, col),
					v.At(k+HaloSize, col),
					v.At(k+HaloSize+1, col),
				)
			}
			if k == 0 || k == r.Nz {
				rec[WMOM].val = 0
				rec[DENS].d3 = 0
			}
			rhoBar := r.Bg.IntRho[k]
			rhoThetaBar := r.Bg.IntRhoTheta[k]

			rr := rec[DENS].val + rhoBar
			u := rec[UMOM].val / rr
			w := rec[WMOM].val / rr
			t := (rec[RHOT].val + rhoThetaBar) / rr
			p := C0*math.Pow(rr*t, Gamma) - r.Bg.IntPressure[k]

			r.Flux.Vars[DENS].Set(k, i, rr*w-hvCoef*rec[DENS].d3)
			r.Flux.Vars[UMOM].Set(k, i, rr*w*u-hvCoef*rec[UMOM].d3)
			r.Flux.Vars[WMOM].Set(k, i, rr*w*w+p-hvCoef*rec[WMOM].d3)
			r.Flux.Vars[RHOT].Set(k, i, rr*w*t-hvCoef*rec[RHOT].d3)
		}
		for k := 0; k < r.Nz; k++ {
			for n := 0; n < NumVars; n++ {
				r.Tend.Vars[n].Set(k, i, -(r.Flux.Vars[n].At(k+1, i)-r.Flux.Vars[n].At(k, i))/r.Dz)
			}
			densPrime := q.Vars[DENS].At(k+HaloSize, i+HaloSize)
			r.Tend.Vars[WMOM].Set(k, i, r.Tend.Vars[WMOM].At(k, i)-densPrime*Gravity)
		}
	})
}

// addGravityWaveForcing adds the fixed localized vertical-momentum forcing
// used only by the gravity_waves scenario, directly into r.Tend[WMOM]
// (§4.5). ComputeFluxTendency calls it after either directional kernel, so
// the state update picks it up once per RHS evaluation regardless of sweep
// direction.
func (r *Rank) addGravityWaveForcing(_ Direction) {
	for k := 0; k < r.Nz; k++ {
		z := (float64(k) + 0.5) * r.Dz
		rhoBar := r.Bg.CellRho[k+HaloSize]
		for i := 0; i < r.Nx; i++ {
			x := (float64(r.XBeg+i) + 0.5) * r.Dx
			wpert := bumpValue(x, z, gravityWaveForcingBump)
			r.Tend.Vars[WMOM].Set(k, i, r.Tend.Vars[WMOM].At(k, i)+wpert*rhoBar)
		}
	}
}
