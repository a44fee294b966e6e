/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/stratosim/miniweather/atmos"
)

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the 2D Euler solver to a target simulated time",
	Long: `run advances the dry compressible Euler equations over a periodic-x,
rigid-lid-z Cartesian grid until the requested simulated time is reached,
reporting initial and final mass/energy conservation diagnostics.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := buildConfig(cmd)
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		if cpuprofile, _ := cmd.Flags().GetString("cpuprofile"); cpuprofile != "" {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(cpuprofile)).Stop()
		}

		log := atmos.NewLogger(viper.GetBool("verbose"))

		writer, err := buildWriter(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		defer writer.Close()

		sim := atmos.NewSimulation(cfg, writer, log)
		if err := sim.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	},
}

func buildConfig(cmd *cobra.Command) *atmos.Config {
	bindFlags(cmd)
	cfg := &atmos.Config{}

	if paramsPath, _ := cmd.Flags().GetString("params"); paramsPath != "" {
		loaded, err := atmos.LoadParamsYAML(paramsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Explicit flags override whatever --params supplied, matching cobra's
	// usual file-then-flag precedence. A field --params left at zero is
	// taken from viper (flag default, --config file or environment); a
	// non-zero --params field is not replaced by the --config file or the
	// environment.
	if cmd.Flags().Changed("nx") || cfg.NxGlob == 0 {
		cfg.NxGlob = viper.GetInt("nx")
	}
	if cmd.Flags().Changed("nz") || cfg.NzGlob == 0 {
		cfg.NzGlob = viper.GetInt("nz")
	}
	if cmd.Flags().Changed("sim-time") || cfg.SimTime == 0 {
		cfg.SimTime = viper.GetFloat64("sim-time")
	}
	if cmd.Flags().Changed("output-freq") || cfg.OutputFreq == 0 {
		cfg.OutputFreq = viper.GetFloat64("output-freq")
	}
	if cmd.Flags().Changed("data-spec") || cfg.DataSpec == 0 {
		cfg.DataSpec = atmos.DataSpec(viper.GetInt("data-spec"))
	}
	if cmd.Flags().Changed("ranks") || cfg.Ranks == 0 {
		cfg.Ranks = viper.GetInt("ranks")
	}
	if cmd.Flags().Changed("cfl") || cfg.CFL == 0 {
		cfg.CFL = viper.GetFloat64("cfl")
	}
	if cmd.Flags().Changed("max-speed") || cfg.MaxSpeed == 0 {
		cfg.MaxSpeed = viper.GetFloat64("max-speed")
	}
	if cmd.Flags().Changed("hv-beta") || cfg.HVBeta == 0 {
		cfg.HVBeta = viper.GetFloat64("hv-beta")
	}
	if cmd.Flags().Changed("output") || cfg.OutputPath == "" {
		cfg.OutputPath = viper.GetString("output")
	}
	return cfg
}

// bindFlags binds every run flag into viper so that the YAML config file
// and MINIWEATHER_ environment variables (wired in root.go's initConfig)
// can supply values a flag didn't explicitly set.
func bindFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = viper.BindPFlag(f.Name, f)
	})
}

func buildWriter(cfg *atmos.Config) (atmos.Writer, error) {
	if cfg.OutputFreq < 0 || cfg.OutputPath == "" {
		return atmos.NoopWriter{}, nil
	}
	return atmos.NewNetCDFWriter(cfg.OutputPath, cfg.NzGlob, cfg.NxGlob)
}

func init() {
	rootCmd.AddCommand(RunCmd)
	RunCmd.Flags().Int("nx", 200, "global cell count in x")
	RunCmd.Flags().Int("nz", 100, "global cell count in z")
	RunCmd.Flags().Float64("sim-time", 1000, "target simulated time in seconds")
	RunCmd.Flags().Float64("output-freq", 10, "seconds between output snapshots; negative disables output")
	RunCmd.Flags().Int("data-spec", int(atmos.DataSpecThermal), "initial condition: 1=collision 2=thermal 3=gravity_waves 5=density_current 6=injection")
	RunCmd.Flags().Int("ranks", 1, "number of simulated ranks (goroutine-resident domain shards)")
	RunCmd.Flags().Float64("cfl", atmos.DefaultCFL, "CFL number")
	RunCmd.Flags().Float64("max-speed", atmos.MaxWaveSpeed, "maximum anticipated wave speed, m/s")
	RunCmd.Flags().Float64("hv-beta", atmos.DefaultHVBeta, "hyper-viscosity coefficient")
	RunCmd.Flags().String("output", "", "NetCDF output file path; empty disables output regardless of output-freq")
	RunCmd.Flags().String("params", "", "YAML parameter file to load as a config base, overridden by any explicitly set flag")
	RunCmd.Flags().String("cpuprofile", "", "write a CPU profile to this path")
	RunCmd.Flags().BoolP("verbose", "v", false, "enable debug-level structured logging")
}
