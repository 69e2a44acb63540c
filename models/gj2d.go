// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package models

import (
	"strings"

	"github.com/emer/gapjunc/conn"
	"github.com/emer/gapjunc/network"
	"github.com/emer/gapjunc/neuron"
	"github.com/emer/gapjunc/synapse"
)

// GJ2D is a grid of neurons each coupled to its 8 nearest neighbors by
// gap junctions with both continuous and spikelet terms.
type GJ2D struct {
	Rows   int              `def:"50" desc:"number of rows in the grid"`
	Cols   int              `def:"50" desc:"number of columns in the grid"`
	Neuron neuron.LIFParams `view:"inline" desc:"neuron parameters"`
	GJ     synapse.Params   `view:"inline" desc:"gap junction parameters -- Mode is always ContinuousSpikelet"`
}

func (md *GJ2D) Defaults() {
	md.Rows = 50
	md.Cols = 50
	md.Neuron.Defaults()
	md.Neuron.VInit = neuron.VInitGaussian
	md.Neuron.Tau = 5
	md.Neuron.TRefractory = 1
	md.Neuron.Noise = 0.2
	md.GJ.Defaults()
	md.GJ.Weight = 0.5
	md.GJ.Spikelet = 0.1
	md.GJ.Mode = synapse.ContinuousSpikelet
}

func (md *GJ2D) InputPop() string {
	return "Neurons"
}

func (md *GJ2D) InputShape() (height, width int) {
	return md.Rows, md.Cols
}

func (md *GJ2D) Build(cfg network.RunConfig) (*network.Network, error) {
	nt, err := network.NewNetwork("GJ2D", cfg)
	if err != nil {
		return nil, err
	}
	pp, err := nt.AddLIF("Neurons", []int{md.Rows, md.Cols})
	if err != nil {
		return nil, err
	}
	pp.LIF.Params = md.Neuron
	gp := md.GJ
	gp.Mode = synapse.ContinuousSpikelet
	if _, err := nt.ConnectGapJunction("GJ", "Neurons", "Neurons", conn.NewGridEight(md.Rows, md.Cols), gp); err != nil {
		return nil, err
	}
	if err := nt.Build(); err != nil {
		return nil, err
	}
	return nt, nil
}

// SetParam sets one of GJ.Weight, GJ.Spikelet, GJ.Delay, Neuron.Noise, Rows or Cols
func (md *GJ2D) SetParam(path string, val float32) error {
	switch strings.ToLower(path) {
	case "gj.weight":
		md.GJ.Weight = val
	case "gj.spikelet":
		md.GJ.Spikelet = val
	case "gj.delay":
		md.GJ.Delay = val
	case "neuron.noise":
		md.Neuron.Noise = val
	case "rows":
		md.Rows = int(val)
	case "cols":
		md.Cols = int(val)
	default:
		return errParam("GJ2D", path)
	}
	return nil
}
