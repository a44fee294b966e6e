package atmos

import "github.com/stratosim/miniweather/utils"

// rkWeights are the low-storage three-stage Runge-Kutta sub-step fractions
// of the full dimensional-sweep step (§4.6): Q_k = Q + (dt/w_k)*RHS(Q_{k-1}).
var rkWeights = [3]float64{3, 2, 1}

// Step advances every rank's state by one full simulated step: two dimensional
// sweeps in the order Strang alternation prescribes, toggling that order
// after every step. dt is the full step size derived from the CFL
// condition.
func (sim *Simulation) Step(dt float64) {
	// Every rank must run concurrently: the halo exchange inside sweep
	// rendezvous-blocks on its ring neighbors, so stepping ranks one at a
	// time would deadlock the moment the first rank waited on a neighbor
	// that hasn't posted yet.
	utils.Parallelize(len(sim.ranks), func(shard int) {
		r := sim.ranks[shard]
		if sim.directionSwitch {
			r.sweep(DirX, dt)
			r.sweep(DirZ, dt)
		} else {
			r.sweep(DirZ, dt)
			r.sweep(DirX, dt)
		}
	})
	sim.directionSwitch = !sim.directionSwitch
}

// sweep runs the three-stage low-storage RK for one dimension. init is the
// untouched state the sweep started with (Q) and stays untouched until the
// final stage: stages 0 and 1 both write their result into Scratch, so init
// (r.Primary) is still Q when stage 2 computes Q + dt*RHS(Q2) into it. Only
// the last stage aliases out with init, per §4.6 and §9's aliasing
// discipline (Q1=Q+dt/3*RHS(Q), Q2=Q+dt/2*RHS(Q1), Q=Q+dt*RHS(Q2)).
func (r *Rank) sweep(dir Direction, dt float64) {
	init := r.Primary
	forcing := init
	for stage := 0; stage < 3; stage++ {
		dtStage := dt / rkWeights[stage]
		out := r.Scratch
		if stage == 2 {
			out = r.Primary
		}
		r.ExchangeHalo(forcing)
		r.ComputeFluxTendency(dir, forcing, dtStage)
		r.updateState(init, out, dtStage)
		forcing = out
	}
}

// updateState writes out[l,k,i] = init[l,k,i] + dtStage*tend[l,k,i] for
// every interior cell, embarrassingly parallel over (l,k,i) per §5.
func (r *Rank) updateState(init, out *State, dtStage float64) {
	utils.Parallelize(r.Nz, func(k int) {
		for n := 0; n < NumVars; n++ {
			initV := init.Vars[n]
			outV := out.Vars[n]
			tendV := r.Tend.Vars[n]
			for i := 0; i < r.Nx; i++ {
				row, col := k+HaloSize, i+HaloSize
				outV.Set(row, col, initV.At(row, col)+dtStage*tendV.At(k, i))
			}
		}
	})
}
