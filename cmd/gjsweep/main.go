// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// gjsweep runs the gap junction experiments: single runs, parameter sweeps
// with synchrony statistics, stimulus generation, and a step loop benchmark.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd returns the root command.  The config is loaded from the --config
// file before any subcommand runs, and then overridden by the global flags.
func newRootCmd() *cobra.Command {
	cf := &Config{}
	cf.Defaults()
	var cfgFile, model, out string
	var seed int64
	var dt, dur float32
	var threads int
	rootCmd := &cobra.Command{
		Use:   "gjsweep",
		Short: "Gap junction coupled spiking network experiments",
		Long: `gjsweep simulates populations of leaky integrate-and-fire neurons coupled by
delayed gap junctions and voltage jump synapses (FSI, GJ2D and RGCSC circuits),
and computes the Omega synchrony index, ISI CV and cross-correlation of the
resulting spike rasters.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lc, err := LoadConfig(cfgFile)
			if err != nil {
				return err
			}
			fl := cmd.Flags()
			if fl.Changed("model") {
				lc.Model = model
			}
			if fl.Changed("out") {
				lc.Out = out
			}
			if fl.Changed("seed") {
				lc.Run.Seed = seed
			}
			if fl.Changed("dt") {
				lc.Run.DT = dt
			}
			if fl.Changed("duration") {
				lc.Run.Duration = dur
			}
			if fl.Changed("threads") {
				lc.Run.NThreads = threads
			}
			if err := lc.Run.Validate(); err != nil {
				return err
			}
			*cf = *lc
			return nil
		},
	}
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "TOML config file, applied over the defaults")
	pf.StringVarP(&model, "model", "m", cf.Model, "model: fsi, gj2d or rgcsc")
	pf.StringVarP(&out, "out", "o", cf.Out, "output directory")
	pf.Int64Var(&seed, "seed", cf.Run.Seed, "random seed")
	pf.Float32Var(&dt, "dt", cf.Run.DT, "integration step in msec")
	pf.Float32Var(&dur, "duration", cf.Run.Duration, "simulated duration in msec")
	pf.IntVar(&threads, "threads", cf.Run.NThreads, "number of synapse worker threads")

	rootCmd.AddCommand(
		newRunCmd(cf),
		newSweepCmd(cf),
		newStimCmd(cf),
		newBenchCmd(cf),
	)
	return rootCmd
}
