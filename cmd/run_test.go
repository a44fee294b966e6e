package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/stratosim/miniweather/atmos"
)

// newTestRunCmd builds a standalone command carrying the same flags as
// RunCmd so buildConfig/bindFlags can be exercised without depending on
// run's package-level init() registration or its global rootCmd wiring.
func newTestRunCmd() *cobra.Command {
	c := &cobra.Command{Use: "run"}
	c.Flags().Int("nx", 200, "")
	c.Flags().Int("nz", 100, "")
	c.Flags().Float64("sim-time", 1000, "")
	c.Flags().Float64("output-freq", 10, "")
	c.Flags().Int("data-spec", int(atmos.DataSpecThermal), "")
	c.Flags().Int("ranks", 1, "")
	c.Flags().Float64("cfl", atmos.DefaultCFL, "")
	c.Flags().Float64("max-speed", atmos.MaxWaveSpeed, "")
	c.Flags().Float64("hv-beta", atmos.DefaultHVBeta, "")
	c.Flags().String("output", "", "")
	c.Flags().String("params", "", "")
	c.Flags().String("cpuprofile", "", "")
	c.Flags().BoolP("verbose", "v", false, "")
	return c
}

func TestBuildConfigWiresFlagValuesIntoConfig(t *testing.T) {
	c := newTestRunCmd()
	assert.NoError(t, c.Flags().Set("nx", "64"))
	assert.NoError(t, c.Flags().Set("nz", "32"))
	assert.NoError(t, c.Flags().Set("sim-time", "500"))
	assert.NoError(t, c.Flags().Set("data-spec", "5"))
	assert.NoError(t, c.Flags().Set("ranks", "4"))

	cfg := buildConfig(c)

	assert.Equal(t, 64, cfg.NxGlob)
	assert.Equal(t, 32, cfg.NzGlob)
	assert.Equal(t, 500.0, cfg.SimTime)
	assert.Equal(t, atmos.DataSpecDensityCurrent, cfg.DataSpec)
	assert.Equal(t, 4, cfg.Ranks)
}

func TestBuildConfigLoadsParamsYAMLThenAppliesExplicitFlagOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(`
NxGlob: 40
NzGlob: 20
SimTime: 250
DataSpec: 3
Ranks: 2
`), 0o644))

	c := newTestRunCmd()
	assert.NoError(t, c.Flags().Set("params", path))
	assert.NoError(t, c.Flags().Set("nx", "48")) // explicit flag wins over the file

	cfg := buildConfig(c)

	assert.Equal(t, 48, cfg.NxGlob)
	assert.Equal(t, 20, cfg.NzGlob)
	assert.Equal(t, 250.0, cfg.SimTime)
	assert.Equal(t, atmos.DataSpecGravityWaves, cfg.DataSpec)
	assert.Equal(t, 2, cfg.Ranks)
}

func TestBuildWriterIsNoopWhenOutputPathEmpty(t *testing.T) {
	cfg := &atmos.Config{OutputFreq: 1, OutputPath: ""}
	w, err := buildWriter(cfg)
	assert.NoError(t, err)
	assert.IsType(t, atmos.NoopWriter{}, w)
}

func TestBuildWriterIsNoopWhenOutputFreqNegative(t *testing.T) {
	cfg := &atmos.Config{OutputFreq: -1, OutputPath: "/tmp/whatever.nc"}
	w, err := buildWriter(cfg)
	assert.NoError(t, err)
	assert.IsType(t, atmos.NoopWriter{}, w)
}
