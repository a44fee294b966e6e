package atmos

// Rank is one goroutine-resident shard of the global grid: its own column
// range, its own padded state, its own hydrostatic background, and the
// topology handles it needs to exchange halos and participate in the global
// reduction.
type Rank struct {
	ID, Left, Right int

	XBeg, Nx int // local interior column range within the global grid
	Nz       int // full vertical extent; z is never decomposed

	Cfg *Config
	Scn Scenario
	Bg  *Background

	Primary *State
	Scratch *State
	Flux    *FluxBuffer
	Tend    *TendencyBuffer

	Dx, Dz float64

	topo *Topology
}

// NewRank builds and initializes the state owned by rank id within topo.
func NewRank(id int, cfg *Config, topo *Topology) *Rank {
	left, right := topo.Neighbors(id)
	xBeg, _ := topo.ColumnRange(id)
	nx := topo.LocalNx(id)
	scn := Scenarios[cfg.DataSpec]
	bg := NewBackground(scn, cfg.NzGlob, cfg.Dz())

	r := &Rank{
		ID:      id,
		Left:    left,
		Right:   right,
		XBeg:    xBeg,
		Nx:      nx,
		Nz:      cfg.NzGlob,
		Cfg:     cfg,
		Scn:     scn,
		Bg:      bg,
		Primary: NewState(cfg.NzGlob, nx),
		Scratch: NewState(cfg.NzGlob, nx),
		Flux:    NewFluxBuffer(cfg.NzGlob, nx),
		Tend:    NewTendencyBuffer(cfg.NzGlob, nx),
		Dx:      cfg.Dx(),
		Dz:      cfg.Dz(),
		topo:    topo,
	}
	r.initState()
	r.Scratch.CopyFrom(r.Primary)
	return r
}

// initState fills the interior of Primary with the 3x3 tensor-product
// Gauss-Legendre cell average of the scenario's perturbation fields, per
// §4.3: (rho', (rho'+rhoBar)*u, (rho'+rhoBar)*w, (rho'+rhoBar)*(theta'+thetaBar) - rhoBar*thetaBar).
func (r *Rank) initState() {
	dens := r.Primary.Vars[DENS]
	umom := r.Primary.Vars[UMOM]
	wmom := r.Primary.Vars[WMOM]
	rhot := r.Primary.Vars[RHOT]

	for k := 0; k < r.Nz; k++ {
		for i := 0; i < r.Nx; i++ {
			var sumDens, sumUmom, sumWmom, sumRhot float64
			for kq := 0; kq < 3; kq++ {
				z := (float64(k) + gaussLegendre3Nodes[kq]) * r.Dz
				for iq := 0; iq < 3; iq++ {
					x := (float64(r.XBeg+i) + gaussLegendre3Nodes[iq]) * r.Dx
					w := gaussLegendre3Weights[kq] * gaussLegendre3Weights[iq]
					rhoP, u, wind, thetaP, rhoBar, thetaBar := r.Scn.Eval(x, z)
					sumDens += w * rhoP
					sumUmom += w * (rhoP + rhoBar) * u
					sumWmom += w * (rhoP + rhoBar) * wind
					sumRhot += w * ((rhoP+rhoBar)*(thetaP+thetaBar) - rhoBar*thetaBar)
				}
			}
			dens.Set(k+HaloSize, i+HaloSize, sumDens)
			umom.Set(k+HaloSize, i+HaloSize, sumUmom)
			wmom.Set(k+HaloSize, i+HaloSize, sumWmom)
			rhot.Set(k+HaloSize, i+HaloSize, sumRhot)
		}
	}
}
