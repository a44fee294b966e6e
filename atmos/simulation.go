package atmos

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// Simulation is the single coherent owner of a run's state: the rank
// topology, every rank's fields, and the driver's scalar bookkeeping (dt,
// etime, direction_switch). Nothing here is package-level mutable state;
// kernels and the integrator take a *Simulation or *Rank by reference
// (§9 design note).
type Simulation struct {
	cfg   *Config
	topo  *Topology
	ranks []*Rank

	dt              float64
	etime           float64
	outputCounter   float64
	directionSwitch bool

	writer Writer
	log    *logrus.Entry
}

// NewSimulation builds the rank topology and every rank's initial state for
// cfg, which must already have passed Validate.
func NewSimulation(cfg *Config, writer Writer, log *logrus.Entry) *Simulation {
	topo := NewTopology(cfg.Ranks, cfg.NxGlob)
	sim := &Simulation{
		cfg:             cfg,
		topo:            topo,
		ranks:           make([]*Rank, cfg.Ranks),
		dt:              math.Min(cfg.Dx(), cfg.Dz()) * cfg.CFL / cfg.MaxSpeed,
		directionSwitch: true,
		writer:          writer,
		log:             log,
	}
	for i := 0; i < cfg.Ranks; i++ {
		sim.ranks[i] = NewRank(i, cfg, topo)
	}
	return sim
}

// Run executes the full driver loop of §4.8: initial reductions, the
// optional initial snapshot, the time-stepping loop with final-step
// clamping and output-frequency-triggered snapshots, and the closing
// reduction report.
func (sim *Simulation) Run() error {
	cfg := sim.cfg
	fmt.Printf("nx_glob, nz_glob: %d %d\n", cfg.NxGlob, cfg.NzGlob)
	fmt.Printf("dx,dz: %g %g\n", cfg.Dx(), cfg.Dz())
	fmt.Printf("dt: %g\n", sim.dt)
	sim.log.WithFields(logrus.Fields{
		"nx_glob": cfg.NxGlob, "nz_glob": cfg.NzGlob, "ranks": cfg.Ranks,
		"data_spec": cfg.DataSpec.String(), "dt": sim.dt,
	}).Info("simulation configured")

	mass0, te0 := sim.AllReduceSums()

	if cfg.OutputFreq >= 0 {
		if err := sim.emitOutput(); err != nil {
			return err
		}
	}

	start := time.Now()
	for sim.etime < cfg.SimTime {
		dt := sim.dt
		if sim.etime+dt > cfg.SimTime {
			dt = cfg.SimTime - sim.etime
		}
		sim.Step(dt)
		sim.etime += dt
		sim.outputCounter += dt

		fmt.Printf("Elapsed Time: %g / %g\n", sim.etime, cfg.SimTime)

		if cfg.OutputFreq >= 0 && sim.outputCounter >= cfg.OutputFreq {
			sim.outputCounter -= cfg.OutputFreq
			fmt.Println("*** OUTPUT ***")
			if err := sim.emitOutput(); err != nil {
				return err
			}
		}
	}
	elapsed := time.Since(start).Seconds()

	mass, te := sim.AllReduceSums()
	dMass := (mass - mass0) / mass0
	dTE := (te - te0) / te0

	fmt.Printf("CPU Time: %g\n", elapsed)
	fmt.Printf("d_mass: %g\n", dMass)
	fmt.Printf("d_te: %g\n", dTE)
	sim.log.WithFields(logrus.Fields{
		"cpu_time": elapsed, "d_mass": dMass, "d_te": dTE,
	}).Info("simulation complete")

	return nil
}

// emitOutput assembles the global (dens, u, w, theta-perturbation) arrays
// from every rank's interior cells and appends one time slice via the
// configured Writer (§6 external collaborator).
func (sim *Simulation) emitOutput() error {
	cfg := sim.cfg
	dens := make([][]float64, cfg.NzGlob)
	uwnd := make([][]float64, cfg.NzGlob)
	wwnd := make([][]float64, cfg.NzGlob)
	theta := make([][]float64, cfg.NzGlob)
	for k := range dens {
		dens[k] = make([]float64, cfg.NxGlob)
		uwnd[k] = make([]float64, cfg.NxGlob)
		wwnd[k] = make([]float64, cfg.NxGlob)
		theta[k] = make([]float64, cfg.NxGlob)
	}

	for _, r := range sim.ranks {
		d := r.Primary.Vars[DENS]
		u := r.Primary.Vars[UMOM]
		w := r.Primary.Vars[WMOM]
		rt := r.Primary.Vars[RHOT]
		for k := 0; k < r.Nz; k++ {
			rhoBarCell := r.Bg.CellRho[k+HaloSize]
			rhoThetaBarCell := r.Bg.CellRhoTheta[k+HaloSize]
			thetaBar := rhoThetaBarCell / rhoBarCell
			for i := 0; i < r.Nx; i++ {
				row, col := k+HaloSize, i+HaloSize
				rhoPrime := d.At(row, col)
				rho := rhoPrime + rhoBarCell
				dens[k][r.XBeg+i] = rhoPrime
				uwnd[k][r.XBeg+i] = u.At(row, col) / rho
				wwnd[k][r.XBeg+i] = w.At(row, col) / rho
				theta[k][r.XBeg+i] = (rt.At(row, col)+rhoThetaBarCell)/rho - thetaBar
			}
		}
	}

	return sim.writer.WriteSnapshot(sim.etime, dens, uwnd, wwnd, theta)
}
