package atmos

import (
	"math"
	"sync"

	"github.com/stratosim/miniweather/utils"
)

// LocalSums computes this rank's local mass and total-energy sums over its
// interior cells (§4.7), accumulating race-free partial sums per worker and
// combining them on join.
func (r *Rank) LocalSums() (mass, te float64) {
	dens := r.Primary.Vars[DENS]
	umom := r.Primary.Vars[UMOM]
	wmom := r.Primary.Vars[WMOM]
	rhot := r.Primary.Vars[RHOT]

	partialMass := make([]float64, r.Nz)
	partialTE := make([]float64, r.Nz)
	dVol := r.Dx * r.Dz

	utils.Parallelize(r.Nz, func(k int) {
		rhoBarCell := r.Bg.CellRho[k+HaloSize]
		rhoThetaBarCell := r.Bg.CellRhoTheta[k+HaloSize]
		var m, e float64
		for i := 0; i < r.Nx; i++ {
			row, col := k+HaloSize, i+HaloSize
			rho := dens.At(row, col) + rhoBarCell
			u := umom.At(row, col) / rho
			w := wmom.At(row, col) / rho
			theta := (rhot.At(row, col) + rhoThetaBarCell) / rho
			p := C0 * math.Pow(rho*theta, Gamma)
			temp := theta / math.Pow(P0/p, Rd/Cp)
			kinetic := rho * (u*u + w*w)
			internal := rho * Cv * temp
			m += rho * dVol
			e += (kinetic + internal) * dVol
		}
		partialMass[k] = m
		partialTE[k] = e
	})

	for k := 0; k < r.Nz; k++ {
		mass += partialMass[k]
		te += partialTE[k]
	}
	return
}

// AllReduceSums performs a star reduce of each rank's local (mass, te)
// across the ring: every non-root rank computes its own sums concurrently
// and posts to the root's mailbox; the root gathers all partials and sums
// them (§4.7, §5's synchronization point). Every rank participates even
// though only the root's return value is consumed by the driver, matching
// the all-reduce semantics of §5 rather than a plain point-to-point
// gather.
func (sim *Simulation) AllReduceSums() (mass, te float64) {
	var wg sync.WaitGroup
	wg.Add(len(sim.ranks))
	partials := make([]reduceMsg, len(sim.ranks))

	for shard := range sim.ranks {
		go func(shard int) {
			defer wg.Done()
			m, e := sim.ranks[shard].LocalSums()
			if shard == 0 {
				partials[0] = reduceMsg{mass: m, energy: e}
				return
			}
			sim.topo.reduceToRoot[shard].Post(reduceMsg{mass: m, energy: e})
		}(shard)
	}
	wg.Wait()

	for shard := 1; shard < len(sim.ranks); shard++ {
		partials[shard] = sim.topo.reduceToRoot[shard].Wait()
	}

	for _, p := range partials {
		mass += p.mass
		te += p.energy
	}
	return
}
