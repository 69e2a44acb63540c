// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/emer/gapjunc/measure"
	"github.com/spf13/cobra"
)

func newSweepCmd(cf *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Run a cartesian sweep over two model parameters",
		Long: `sweep runs the configured model for every combination of the two
parameter value lists in the [Sweep] config section, and writes
omegas.csv, cvs.csv, cors.csv and rates.csv to the output directory,
with one row per value of Param1 and one column per value of Param2.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cf, cmd.OutOrStdout())
		},
	}
}

// sweepTable returns a results table with a column for Param1 values
// followed by one column per Param2 value.
func sweepTable(sw *SweepConfig, name string) *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", name)
	dt.SetMetaData("desc", name+" by "+sw.Param1+" (rows) x "+sw.Param2+" (cols)")
	sch := etable.Schema{{Name: sw.Param1, Type: etensor.FLOAT32, CellShape: nil, DimNames: nil}}
	for _, v := range sw.Values2 {
		sch = append(sch, etable.Column{Name: sw.Param2 + "=" + strconv.FormatFloat(float64(v), 'g', -1, 32), Type: etensor.FLOAT64, CellShape: nil, DimNames: nil})
	}
	dt.SetFromSchema(sch, len(sw.Values1))
	for ri, v := range sw.Values1 {
		dt.SetCellFloatIdx(0, ri, float64(v))
	}
	return dt
}

func runSweep(cf *Config, w io.Writer) error {
	sw := &cf.Sweep
	if len(sw.Values1) == 0 || len(sw.Values2) == 0 {
		return fmt.Errorf("sweep: both value lists must be non-empty")
	}
	tbls := map[string]*etable.Table{}
	nms := []string{"omegas", "cvs", "cors", "rates"}
	for _, nm := range nms {
		tbls[nm] = sweepTable(sw, nm)
	}
	for ri, v1 := range sw.Values1 {
		for ci, v2 := range sw.Values2 {
			md, err := cf.ModelObj()
			if err != nil {
				return err
			}
			if err := md.SetParam(sw.Param1, v1); err != nil {
				return err
			}
			if err := md.SetParam(sw.Param2, v2); err != nil {
				return err
			}
			prefix := fmt.Sprintf("%s-%g-%g", cf.Model, v1, v2)
			res, err := runExperiment(cf, md, prefix, false, w)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s: %g\t%s: %g\tOmega: %.4f\tCV: %.4f\tCor: %.4f\tRate: %.2f Hz\n", sw.Param1, v1, sw.Param2, v2, res.Omega, res.CV, res.Cor, res.Rate)
			setResults(tbls, ri, ci+1, res)
		}
	}
	for _, nm := range nms {
		if err := saveTable(tbls[nm], filepath.Join(cf.Out, nm+".csv")); err != nil {
			return err
		}
	}
	return nil
}

func setResults(tbls map[string]*etable.Table, row, col int, res measure.Stats) {
	tbls["omegas"].SetCellFloatIdx(col, row, res.Omega)
	tbls["cvs"].SetCellFloatIdx(col, row, res.CV)
	tbls["cors"].SetCellFloatIdx(col, row, res.Cor)
	tbls["rates"].SetCellFloatIdx(col, row, res.Rate)
}

func saveTable(dt *etable.Table, fnm string) error {
	if err := os.MkdirAll(filepath.Dir(fnm), 0755); err != nil {
		return err
	}
	f, err := os.Create(fnm)
	if err != nil {
		return err
	}
	err = dt.WriteCSV(f, etable.Comma, etable.Headers)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
