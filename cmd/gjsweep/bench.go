// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math"

	"github.com/emer/emergent/timer"
	"github.com/emer/gapjunc/models"
	"github.com/emer/gapjunc/stim"
	"github.com/spf13/cobra"
)

// bench runs a GJ2D grid of the given number of units under constant input,
// for benchmarking different size networks and thread counts.
func newBenchCmd(cf *Config) *cobra.Command {
	var units int
	var steps int
	var silent bool
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark the step loop on a gap junction grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cf
			w := cmd.OutOrStdout()
			squn := int(math.Sqrt(float64(units)))
			md := &models.GJ2D{}
			md.Defaults()
			md.Rows = squn
			md.Cols = squn
			rc := c.Run
			rc.Duration = float32(steps) * rc.DT
			nt, err := md.Build(rc)
			if err != nil {
				return err
			}
			defer nt.Close()
			if !silent {
				fmt.Fprintf(w, "Running bench with: %v steps, %v units, %v threads\n", nt.NSteps(), squn*squn, rc.NThreads)
				fmt.Fprint(w, nt.SizeReport())
			}
			in := make(stim.Const, squn*squn)
			for i := range in {
				in[i] = 15
			}
			tmr := timer.Time{}
			tmr.Start()
			if err := nt.Run(map[string]stim.Source{md.InputPop(): in}); err != nil {
				return err
			}
			tmr.Stop()
			if silent {
				fmt.Fprintf(w, "%v\n", tmr.TotalSecs())
				return nil
			}
			fmt.Fprintf(w, "Took %6.4g secs for %v steps, avg per step: %6.4g\n", tmr.TotalSecs(), nt.NSteps(), tmr.TotalSecs()/float64(nt.NSteps()))
			fmt.Fprint(w, nt.TimerReport())
			return nil
		},
	}
	cmd.Flags().IntVar(&units, "units", 2500, "number of units -- uses NxN where N = sqrt(units)")
	cmd.Flags().IntVar(&steps, "steps", 1000, "number of integration steps to run")
	cmd.Flags().BoolVar(&silent, "silent", false, "only report the total time")
	return cmd
}
