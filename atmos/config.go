package atmos

import (
	"fmt"
	"math"
	"os"

	"github.com/ghodss/yaml"
)

// DataSpec selects an initial-condition scenario. The integer values match
// the CLI's --data-spec flag and the original value space {1,2,3,5,6}; 4 is
// deliberately absent.
type DataSpec int

const (
	DataSpecCollision      DataSpec = 1
	DataSpecThermal        DataSpec = 2
	DataSpecGravityWaves   DataSpec = 3
	DataSpecDensityCurrent DataSpec = 5
	DataSpecInjection      DataSpec = 6
)

func (d DataSpec) String() string {
	switch d {
	case DataSpecCollision:
		return "collision"
	case DataSpecThermal:
		return "thermal"
	case DataSpecGravityWaves:
		return "gravity_waves"
	case DataSpecDensityCurrent:
		return "density_current"
	case DataSpecInjection:
		return "injection"
	default:
		return fmt.Sprintf("DataSpec(%d)", int(d))
	}
}

func (d DataSpec) valid() bool {
	switch d {
	case DataSpecCollision, DataSpecThermal, DataSpecGravityWaves, DataSpecDensityCurrent, DataSpecInjection:
		return true
	default:
		return false
	}
}

// ConfigError reports a startup configuration failure (§7a): a non-positive
// extent or sim_time, an unknown data_spec, or a NaN output_freq.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string { return e.msg }

func configErrorf(format string, args ...interface{}) *ConfigError {
	return &ConfigError{msg: fmt.Sprintf(format, args...)}
}

// RankLayoutError reports that the requested rank count cannot be laid out
// over the global grid (§7b).
type RankLayoutError struct {
	msg string
}

func (e *RankLayoutError) Error() string { return e.msg }

// Config holds the run's numeric parameters and physical tuning knobs.
// Validate gives Ranks, CFL and MaxSpeed their defaults when they are zero
// or negative, and HVBeta its default when it is zero; the other fields get
// no default.
type Config struct {
	NxGlob     int      `yaml:"NxGlob"`
	NzGlob     int      `yaml:"NzGlob"`
	SimTime    float64  `yaml:"SimTime"`
	OutputFreq float64  `yaml:"OutputFreq"`
	DataSpec   DataSpec `yaml:"DataSpec"`
	Ranks      int      `yaml:"Ranks"`
	CFL        float64  `yaml:"CFL"`
	MaxSpeed   float64  `yaml:"MaxSpeed"`
	HVBeta     float64  `yaml:"HVBeta"`
	OutputPath string   `yaml:"OutputPath"`
}

// LoadParamsYAML reads a YAML parameter file directly into a Config by
// unmarshaling a flat tagged struct, independent of viper's own
// config-file layer. It supplies defaults for the CLI to layer explicit
// flags on top of via --params (§4.9).
func LoadParamsYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, configErrorf("reading params file %s: %v", path, err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, configErrorf("parsing params file %s: %v", path, err)
	}
	return cfg, nil
}

// Validate fills in defaults and checks the configuration against the §7
// error taxonomy. It must be called before constructing a Simulation.
func (c *Config) Validate() error {
	if c.NxGlob <= 0 {
		return configErrorf("nx_glob must be positive, got %d", c.NxGlob)
	}
	if c.NzGlob <= 0 {
		return configErrorf("nz_glob must be positive, got %d", c.NzGlob)
	}
	if c.SimTime <= 0 {
		return configErrorf("sim_time must be positive, got %g", c.SimTime)
	}
	if math.IsNaN(c.OutputFreq) {
		return configErrorf("output_freq must not be NaN")
	}
	if !c.DataSpec.valid() {
		return configErrorf("unknown data_spec %d, must be one of {1,2,3,5,6}", int(c.DataSpec))
	}
	if c.Ranks <= 0 {
		c.Ranks = 1
	}
	if c.Ranks > c.NxGlob {
		return &RankLayoutError{msg: fmt.Sprintf("rank count %d exceeds nx_glob %d", c.Ranks, c.NxGlob)}
	}
	if c.CFL <= 0 {
		c.CFL = DefaultCFL
	}
	if c.MaxSpeed <= 0 {
		c.MaxSpeed = MaxWaveSpeed
	}
	if c.HVBeta == 0 {
		c.HVBeta = DefaultHVBeta
	}
	return nil
}

// Dx, Dz return the derived grid spacing.
func (c *Config) Dx() float64 { return XLen / float64(c.NxGlob) }
func (c *Config) Dz() float64 { return ZLen / float64(c.NzGlob) }
