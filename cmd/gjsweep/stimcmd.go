// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/emer/gapjunc/stim"
	"github.com/spf13/cobra"
)

func newStimCmd(cf *Config) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "stim",
		Short: "Generate the configured stimulus and save it as csv",
		Long: `stim generates the [Stim] stimulus sized for the input population of the
configured model, over the run duration, and saves it without offset or gain
so it can be reused with the StimFile option.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cf
			md, err := c.ModelObj()
			if err != nil {
				return err
			}
			sp := c.Stim
			sp.Height, sp.Width = md.InputShape()
			sp.Duration = c.Run.Duration
			mt, err := stim.Generate(&sp, c.Run.DT, c.Run.Seed)
			if err != nil {
				return err
			}
			if file == "" {
				file = filepath.Join(c.Out, "stimulus", fmt.Sprintf("%s-%g.csv", sp.Name, sp.Duration))
			}
			if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
				return err
			}
			f, err := os.Create(file)
			if err != nil {
				return err
			}
			err = mt.SaveCSV(f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s stimulus: %d steps x %d neurons to: %s\n", sp.Name, mt.NSteps(), mt.N(), file)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "output file (default: <out>/stimulus/<name>-<duration>.csv)")
	return cmd
}
