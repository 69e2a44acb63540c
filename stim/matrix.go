// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stim

import (
	"fmt"
	"io"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/viterin/vek/vek32"
)

// Source provides the external input of one population at each step
type Source interface {
	// Input returns the input values for given step, one per neuron,
	// or nil for no input at that step.
	Input(step int) []float32
}

// Const is a Source with the same input at every step
type Const []float32

func (cs Const) Input(step int) []float32 {
	return cs
}

// Matrix is a steps x neurons matrix of input values, row-major
type Matrix struct {
	Tsr *etensor.Float32 `desc:"the values, shape [steps, neurons]"`
}

var _ Source = (*Matrix)(nil)

// NewMatrix returns a new zero matrix with given number of steps and neurons
func NewMatrix(nsteps, n int) *Matrix {
	mt := &Matrix{}
	mt.Tsr = etensor.NewFloat32([]int{nsteps, n}, nil, []string{"Step", "Neuron"})
	return mt
}

// NSteps returns the number of steps (rows)
func (mt *Matrix) NSteps() int {
	return mt.Tsr.Dim(0)
}

// N returns the number of neurons (columns)
func (mt *Matrix) N() int {
	return mt.Tsr.Dim(1)
}

// Values returns all the values, row-major
func (mt *Matrix) Values() []float32 {
	return mt.Tsr.Values
}

// Row returns the values of given step (not a copy)
func (mt *Matrix) Row(step int) []float32 {
	n := mt.N()
	return mt.Tsr.Values[step*n : (step+1)*n]
}

// Input returns the row of given step, or nil past the end of the matrix
func (mt *Matrix) Input(step int) []float32 {
	if step < 0 || step >= mt.NSteps() {
		return nil
	}
	return mt.Row(step)
}

// Offset adds v to every value
func (mt *Matrix) Offset(v float32) {
	vek32.AddNumber_Inplace(mt.Tsr.Values, v)
}

// Scale multiplies every value by v
func (mt *Matrix) Scale(v float32) {
	vek32.MulNumber_Inplace(mt.Tsr.Values, v)
}

func (mt *Matrix) table() *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", "Stimulus")
	sch := etable.Schema{
		{Name: "Input", Type: etensor.FLOAT32, CellShape: []int{mt.N()}, DimNames: []string{"Neuron"}},
	}
	dt.SetFromSchema(sch, mt.NSteps())
	return dt
}

// SaveCSV writes the matrix as comma-separated values, one row per step, no headers
func (mt *Matrix) SaveCSV(w io.Writer) error {
	dt := mt.table()
	col := dt.ColByName("Input").(*etensor.Float32)
	copy(col.Values, mt.Tsr.Values)
	return dt.WriteCSV(w, etable.Comma, false)
}

// LoadCSV reads a matrix of n neurons per row from comma-separated values
// without headers, as written by SaveCSV.
func LoadCSV(r io.Reader, n int) (*Matrix, error) {
	if n <= 0 {
		return nil, fmt.Errorf("LoadCSV: number of neurons: %d must be positive: %w", n, ErrConfig)
	}
	dt := NewMatrix(0, n).table()
	if err := dt.ReadCSV(r, etable.Comma); err != nil {
		return nil, fmt.Errorf("LoadCSV: %v: %w", err, ErrConfig)
	}
	col, ok := dt.ColByName("Input").(*etensor.Float32)
	if !ok || dt.NumCols() != 1 {
		return nil, fmt.Errorf("LoadCSV: rows do not have %d values: %w", n, ErrConfig)
	}
	mt := NewMatrix(dt.Rows, n)
	copy(mt.Tsr.Values, col.Values)
	return mt, nil
}
