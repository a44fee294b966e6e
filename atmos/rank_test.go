package atmos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestConfig() *Config {
	cfg := &Config{NxGlob: 16, NzGlob: 8, SimTime: 1, DataSpec: DataSpecThermal, Ranks: 1}
	_ = cfg.Validate()
	return cfg
}

func TestNewRankInitStateIsFiniteAndZeroOutsideBump(t *testing.T) {
	cfg := newTestConfig()
	topo := NewTopology(cfg.Ranks, cfg.NxGlob)
	r := NewRank(0, cfg, topo)

	// Far from the thermal bump (near x=0, z=0), the potential-temperature
	// perturbation should be exactly zero.
	rhot := r.Primary.Vars[RHOT]
	assert.Equal(t, 0.0, rhot.At(HaloSize, HaloSize))

	// Density perturbation is always zero at init for every scenario.
	dens := r.Primary.Vars[DENS]
	for k := 0; k < r.Nz; k++ {
		for i := 0; i < r.Nx; i++ {
			assert.Equal(t, 0.0, dens.At(k+HaloSize, i+HaloSize))
		}
	}
}

func TestNewRankDuplicatesStateForScratchViaCopyFrom(t *testing.T) {
	cfg := newTestConfig()
	topo := NewTopology(cfg.Ranks, cfg.NxGlob)
	r := NewRank(0, cfg, topo)
	for n := 0; n < NumVars; n++ {
		assert.Equal(t, r.Primary.Vars[n].Data(), r.Scratch.Vars[n].Data())
	}
}
