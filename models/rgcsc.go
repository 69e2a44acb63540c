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

// RGCSC is a grid of retinal ganglion cells (RGC), coupled to their 8 nearest
// neighbors by gap junctions with spikelets, all projecting onto a single
// superior colliculus (SC) neuron through delayed voltage jumps.
// Neither synapse has the post refractory guard.
type RGCSC struct {
	Rows int              `def:"60" desc:"number of rows of RGCs"`
	Cols int              `def:"60" desc:"number of columns of RGCs"`
	RGC  neuron.LIFParams `desc:"RGC neuron parameters"`
	SC   neuron.LIFParams `desc:"SC neuron parameters"`
	GJ   synapse.Params   `desc:"RGC gap junction parameters"`
	R2SC synapse.Params   `desc:"RGC to SC voltage jump parameters"`
}

func (md *RGCSC) Defaults() {
	md.Rows = 60
	md.Cols = 60
	md.RGC.Defaults()
	md.RGC.TRefractory = 3.5
	md.RGC.Noise = 0.5
	md.SC.Defaults()
	md.SC.TRefractory = 0.5
	md.SC.Noise = 0.1
	md.GJ.Defaults()
	md.GJ.Weight = 0.5
	md.GJ.Spikelet = 0.15
	md.GJ.Mode = synapse.ContinuousSpikelet
	md.GJ.PostRefractory = false
	md.R2SC.Defaults()
	md.R2SC.Weight = 1
	md.R2SC.Delay = 0.1
	md.R2SC.PostRefractory = false
}

func (md *RGCSC) InputPop() string {
	return "RGC"
}

func (md *RGCSC) InputShape() (height, width int) {
	return md.Rows, md.Cols
}

func (md *RGCSC) Build(cfg network.RunConfig) (*network.Network, error) {
	nt, err := network.NewNetwork("RGCSC", cfg)
	if err != nil {
		return nil, err
	}
	rgc, err := nt.AddLIF("RGC", []int{md.Rows, md.Cols})
	if err != nil {
		return nil, err
	}
	rgc.LIF.Params = md.RGC
	sc, err := nt.AddLIF("SC", []int{1})
	if err != nil {
		return nil, err
	}
	sc.LIF.Params = md.SC
	if _, err := nt.ConnectGapJunction("GJ", "RGC", "RGC", conn.NewGridEight(md.Rows, md.Cols), md.GJ); err != nil {
		return nil, err
	}
	if _, err := nt.ConnectVoltageJump("R2SC", "RGC", "SC", &conn.Full{SelfCon: true}, md.R2SC); err != nil {
		return nil, err
	}
	if err := nt.Build(); err != nil {
		return nil, err
	}
	return nt, nil
}

// SetParam sets one of GJ.Weight, GJ.Spikelet, R2SC.Weight, R2SC.Delay,
// RGC.Noise, RGC.TRefractory, Rows or Cols
func (md *RGCSC) SetParam(path string, val float32) error {
	switch strings.ToLower(path) {
	case "gj.weight":
		md.GJ.Weight = val
	case "gj.spikelet":
		md.GJ.Spikelet = val
	case "r2sc.weight":
		md.R2SC.Weight = val
	case "r2sc.delay":
		md.R2SC.Delay = val
	case "rgc.noise":
		md.RGC.Noise = val
	case "rgc.trefractory":
		md.RGC.TRefractory = val
	case "rows":
		md.Rows = int(val)
	case "cols":
		md.Cols = int(val)
	default:
		return errParam("RGCSC", path)
	}
	return nil
}
