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

// RadiusParams are the parameters of a synapse over a Radius pattern
type RadiusParams struct {
	Radius float32 `desc:"maximum distance between connected neurons"`
	Prob   float32 `min:"0" max:"1" desc:"probability of each pair within Radius"`
	Weight float32 `desc:"gap junction conductance or voltage jump magnitude"`
	Delay  float32 `min:"0" desc:"transmission delay in msec"`
}

// FSI is a line of fast-spiking interneurons with gap junctions (GJ) and
// excitatory chemical synapses (Chem), each over a radius.
type FSI struct {
	N      int              `def:"200" desc:"number of neurons"`
	Neuron neuron.LIFParams `view:"inline" desc:"neuron parameters"`
	GJ     RadiusParams     `view:"inline" desc:"gap junctions"`
	Chem   RadiusParams     `view:"inline" desc:"chemical voltage jump synapses"`
}

func (md *FSI) Defaults() {
	md.N = 200
	md.Neuron.Defaults()
	md.Neuron.VInit = neuron.VInitReset
	md.GJ = RadiusParams{Radius: 1, Prob: 0, Weight: 0.3}
	md.Chem = RadiusParams{Radius: 30, Prob: 1, Weight: 2}
}

func (md *FSI) InputPop() string {
	return "FSI"
}

func (md *FSI) InputShape() (height, width int) {
	return md.N, 1
}

func (md *FSI) Build(cfg network.RunConfig) (*network.Network, error) {
	nt, err := network.NewNetwork("FSI", cfg)
	if err != nil {
		return nil, err
	}
	shp := []int{md.N}
	pp, err := nt.AddLIF("FSI", shp)
	if err != nil {
		return nil, err
	}
	pp.LIF.Params = md.Neuron

	var gp synapse.Params
	gp.Defaults()
	gp.Weight = md.GJ.Weight
	gp.Delay = md.GJ.Delay
	gp.Mode = synapse.Continuous
	if _, err := nt.ConnectGapJunction("GJ", "FSI", "FSI", conn.NewRadius(shp, md.GJ.Radius, md.GJ.Prob, cfg.Seed+1), gp); err != nil {
		return nil, err
	}

	var cp synapse.Params
	cp.Defaults()
	cp.Weight = md.Chem.Weight
	cp.Delay = md.Chem.Delay
	if _, err := nt.ConnectVoltageJump("Chem", "FSI", "FSI", conn.NewRadius(shp, md.Chem.Radius, md.Chem.Prob, cfg.Seed+2), cp); err != nil {
		return nil, err
	}
	if err := nt.Build(); err != nil {
		return nil, err
	}
	return nt, nil
}

// SetParam sets one of GJ.Radius, GJ.Prob, GJ.Weight, GJ.Delay, Chem.Radius,
// Chem.Prob, Chem.Weight, Chem.Delay, or N
func (md *FSI) SetParam(path string, val float32) error {
	switch strings.ToLower(path) {
	case "n":
		md.N = int(val)
		return nil
	}
	pth := strings.Split(strings.ToLower(path), ".")
	if len(pth) != 2 {
		return errParam("FSI", path)
	}
	var rp *RadiusParams
	switch pth[0] {
	case "gj":
		rp = &md.GJ
	case "chem":
		rp = &md.Chem
	default:
		return errParam("FSI", path)
	}
	return rp.SetParam(pth[1], val, path)
}

// SetParam sets the field of given lower-case name
func (rp *RadiusParams) SetParam(field string, val float32, path string) error {
	switch field {
	case "radius":
		rp.Radius = val
	case "prob":
		rp.Prob = val
	case "weight":
		rp.Weight = val
	case "delay":
		rp.Delay = val
	default:
		return errParam("FSI", path)
	}
	return nil
}
