// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/emer/emergent/timer"
	"github.com/emer/gapjunc/measure"
	"github.com/emer/gapjunc/models"
	"github.com/emer/gapjunc/network"
	"github.com/emer/gapjunc/stim"
	"github.com/spf13/cobra"
)

func newRunCmd(cf *Config) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one experiment and save its spike rasters",
		Long: `run builds the configured model, drives it with the configured stimulus,
writes one spike csv per population to the output directory, and prints
the Omega, CV, cross-correlation and rate of the stimulated population.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := cf.ModelObj()
			if err != nil {
				return err
			}
			res, err := runExperiment(cf, md, cf.Model, verbose, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\tOmega: %.4f\tCV: %.4f\tCor: %.4f\tRate: %.2f Hz\n", cf.Model, res.Omega, res.CV, res.Cor, res.Rate)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print size and timer reports")
	return cmd
}

// inputs returns the stimulus for the input population of the model,
// loaded from StimFile or generated, with offset and gain applied.
func (cf *Config) inputs(md models.Model) (*stim.Matrix, error) {
	h, w := md.InputShape()
	var mt *stim.Matrix
	if cf.StimFile != "" {
		f, err := os.Open(cf.StimFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		mt, err = stim.LoadCSV(f, h*w)
		if err != nil {
			return nil, fmt.Errorf("stimulus %s: %w", cf.StimFile, err)
		}
	} else {
		sp := cf.Stim
		sp.Height = h
		sp.Width = w
		sp.Duration = cf.Run.Duration
		var err error
		mt, err = stim.Generate(&sp, cf.Run.DT, cf.Run.Seed)
		if err != nil {
			return nil, err
		}
	}
	mt.Offset(cf.InputOffset)
	mt.Scale(cf.InputGain)
	return mt, nil
}

// runExperiment builds and runs the model, saves spike rasters under cf.Out
// with given file name prefix, and returns the statistics of the input population.
func runExperiment(cf *Config, md models.Model, prefix string, verbose bool, w io.Writer) (measure.Stats, error) {
	var res measure.Stats
	in, err := cf.inputs(md)
	if err != nil {
		return res, err
	}
	nt, err := md.Build(cf.Run)
	if err != nil {
		return res, err
	}
	defer nt.Close()
	if verbose {
		fmt.Fprint(w, nt.SizeReport())
	}
	tmr := timer.Time{}
	tmr.Start()
	if err := nt.Run(map[string]stim.Source{md.InputPop(): in}); err != nil {
		return res, err
	}
	tmr.Stop()
	if verbose {
		fmt.Fprintf(w, "Took %6.4g secs for %v steps\n", tmr.TotalSecs(), nt.NSteps())
		fmt.Fprint(w, nt.TimerReport())
	}
	if err := saveSpikes(nt, cf.Out, prefix); err != nil {
		return res, err
	}
	spk, err := nt.Spikes(md.InputPop())
	if err != nil {
		return res, err
	}
	bin := cf.BinSteps()
	res = measure.Compute(spk, bin, cf.Run.DT)
	res.Omega = measure.Omega(spk, bin, cf.OmegaN)
	return res, nil
}

// saveSpikes writes the spike raster of each population to dir/prefix-pop.csv
func saveSpikes(nt *network.Network, dir, prefix string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, pp := range nt.Pops {
		fnm := filepath.Join(dir, prefix+"-"+pp.Nm+".csv")
		f, err := os.Create(fnm)
		if err != nil {
			return err
		}
		err = nt.WriteSpikesCSV(pp.Nm, f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("saving spikes %s: %w", fnm, err)
		}
	}
	log.Printf("saved spikes of %d populations to: %s\n", len(nt.Pops), dir)
	return nil
}
