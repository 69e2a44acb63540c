// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"io"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
)

// SpikeMon records the spike raster of one population into an etable.Table,
// one row per step, with columns Time, NSpike (count) and Spikes (0/1 per neuron).
type SpikeMon struct {
	Pop   *Pop          `desc:"population being recorded"`
	Table *etable.Table `desc:"the spike raster table"`
	NRec  int           `inactive:"+" desc:"number of steps recorded since Init"`
}

// NewSpikeMon returns a monitor for given population, pre-allocated for nsteps rows
func NewSpikeMon(pp *Pop, nsteps int) *SpikeMon {
	mon := &SpikeMon{Pop: pp}
	dt := &etable.Table{}
	dt.SetMetaData("name", pp.Nm+"Spikes")
	dt.SetMetaData("desc", "spike raster of population "+pp.Nm)
	dt.SetMetaData("read-only", "true")
	sch := etable.Schema{
		{Name: "Time", Type: etensor.FLOAT32, CellShape: nil, DimNames: nil},
		{Name: "NSpike", Type: etensor.FLOAT32, CellShape: nil, DimNames: nil},
		{Name: "Spikes", Type: etensor.FLOAT32, CellShape: []int{pp.Len()}, DimNames: []string{"Neuron"}},
	}
	dt.SetFromSchema(sch, nsteps)
	mon.Table = dt
	return mon
}

// Init clears the recorded spikes
func (mon *SpikeMon) Init() {
	spk := mon.spikeCol()
	for i := range spk.Values {
		spk.Values[i] = 0
	}
	mon.NRec = 0
}

func (mon *SpikeMon) spikeCol() *etensor.Float32 {
	return mon.Table.ColByName("Spikes").(*etensor.Float32)
}

// Record records the current spike flags of the population at given step and time,
// growing the table if needed.
func (mon *SpikeMon) Record(step int, t float32) {
	dt := mon.Table
	if step >= dt.Rows {
		dt.SetNumRows(step + 1)
	}
	st := mon.Pop.State()
	n := st.Len()
	spk := mon.spikeCol()
	off := step * n
	nspk := 0
	for i, s := range st.Spike {
		if s {
			spk.Values[off+i] = 1
			nspk++
		} else {
			spk.Values[off+i] = 0
		}
	}
	dt.SetCellFloat("Time", step, float64(t))
	dt.SetCellFloat("NSpike", step, float64(nspk))
	if step+1 > mon.NRec {
		mon.NRec = step + 1
	}
}

// Spikes returns the recorded raster as neuron x step booleans
func (mon *SpikeMon) Spikes() [][]bool {
	n := mon.Pop.Len()
	spk := mon.spikeCol()
	rs := make([][]bool, n)
	for i := range rs {
		rs[i] = make([]bool, mon.NRec)
		for st := 0; st < mon.NRec; st++ {
			rs[i][st] = spk.Values[st*n+i] != 0
		}
	}
	return rs
}

// Counts returns the number of recorded spikes of each neuron
func (mon *SpikeMon) Counts() []int {
	n := mon.Pop.Len()
	spk := mon.spikeCol()
	cnt := make([]int, n)
	for st := 0; st < mon.NRec; st++ {
		for i := 0; i < n; i++ {
			if spk.Values[st*n+i] != 0 {
				cnt[i]++
			}
		}
	}
	return cnt
}

// SpikeTimes returns the times at which neuron i spiked
func (mon *SpikeMon) SpikeTimes(i int) []float32 {
	n := mon.Pop.Len()
	spk := mon.spikeCol()
	var ts []float32
	for st := 0; st < mon.NRec; st++ {
		if spk.Values[st*n+i] != 0 {
			ts = append(ts, float32(mon.Table.CellFloat("Time", st)))
		}
	}
	return ts
}

// SpikeTable returns the spike raster table for given population, or nil
func (nt *Network) SpikeTable(pop string) *etable.Table {
	mon, ok := nt.MonMap[pop]
	if !ok {
		return nil
	}
	return mon.Table
}

// Spikes returns the recorded raster of given population as neuron x step booleans
func (nt *Network) Spikes(pop string) ([][]bool, error) {
	mon, ok := nt.MonMap[pop]
	if !ok {
		_, err := nt.PopTry(pop)
		if err == nil {
			err = errNotBuilt(nt)
		}
		return nil, err
	}
	return mon.Spikes(), nil
}

// WriteSpikesCSV writes the spike raster of given population as comma-separated
// values with a header row.
func (nt *Network) WriteSpikesCSV(pop string, w io.Writer) error {
	dt := nt.SpikeTable(pop)
	if dt == nil {
		_, err := nt.PopTry(pop)
		if err == nil {
			err = errNotBuilt(nt)
		}
		return err
	}
	return dt.WriteCSV(w, etable.Comma, etable.Headers)
}
