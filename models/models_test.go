// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package models

import (
	"errors"
	"testing"

	"github.com/emer/gapjunc/network"
	"github.com/emer/gapjunc/stim"
)

func testCfg() network.RunConfig {
	var cfg network.RunConfig
	cfg.Defaults()
	cfg.DT = 0.05
	cfg.Duration = 10
	return cfg
}

func constInput(md Model, v float32) map[string]stim.Source {
	h, w := md.InputShape()
	in := make(stim.Const, h*w)
	for i := range in {
		in[i] = v
	}
	return map[string]stim.Source{md.InputPop(): in}
}

func TestNew(t *testing.T) {
	for _, nm := range Names() {
		md, err := New(nm)
		if err != nil {
			t.Fatal(err)
		}
		if md.InputPop() == "" {
			t.Errorf("model: %v no input population\n", nm)
		}
	}
	if _, err := New("nope"); !errors.Is(err, network.ErrConfig) {
		t.Errorf("unknown model: %v\n", err)
	}
	md, err := New("GJ2D")
	if err != nil {
		t.Fatal(err)
	}
	if gm := md.(*GJ2D); gm.Rows != 50 || gm.GJ.Weight != 0.5 || gm.GJ.Spikelet != 0.1 {
		t.Errorf("GJ2D defaults: %+v\n", gm)
	}
}

func TestFSI(t *testing.T) {
	md := &FSI{}
	md.Defaults()
	md.N = 10
	nt, err := md.Build(testCfg())
	if err != nil {
		t.Fatal(err)
	}
	// p = 0 means no gap junctions at all
	if n := nt.Prjn("GJ").Syn.AsBase().Len(); n != 0 {
		t.Errorf("GJ pairs with p = 0: %v\n", n)
	}
	// r = 30 covers the whole line
	if n := nt.Prjn("Chem").Syn.AsBase().Len(); n != 90 {
		t.Errorf("Chem pairs: %v != 90\n", n)
	}
	md.GJ.Prob = 1
	md.GJ.Radius = 1
	nt, err = md.Build(testCfg())
	if err != nil {
		t.Fatal(err)
	}
	if n := nt.Prjn("GJ").Syn.AsBase().Len(); n != 18 {
		t.Errorf("GJ pairs r = 1: %v != 18\n", n)
	}
	if err := nt.Run(constInput(md, 15)); err != nil {
		t.Fatal(err)
	}
	tot := 0
	for _, c := range nt.MonMap["FSI"].Counts() {
		tot += c
	}
	if tot == 0 {
		t.Errorf("FSI never spiked\n")
	}
}

func TestGJ2D(t *testing.T) {
	md := &GJ2D{}
	md.Defaults()
	md.Rows = 3
	md.Cols = 3
	nt, err := md.Build(testCfg())
	if err != nil {
		t.Fatal(err)
	}
	if n := nt.Prjn("GJ").Syn.AsBase().Len(); n != 40 {
		t.Errorf("GJ pairs: %v != 40\n", n)
	}
	if err := nt.Run(constInput(md, 20)); err != nil {
		t.Fatal(err)
	}
	if nt.MonMap["Neurons"].Counts()[4] == 0 {
		t.Errorf("center neuron never spiked\n")
	}
}

func TestRGCSC(t *testing.T) {
	md := &RGCSC{}
	md.Defaults()
	md.Rows = 4
	md.Cols = 4
	nt, err := md.Build(testCfg())
	if err != nil {
		t.Fatal(err)
	}
	r2sc := nt.Prjn("R2SC").Syn.AsBase()
	if r2sc.Len() != 16 {
		t.Errorf("R2SC pairs: %v != 16\n", r2sc.Len())
	}
	if r2sc.Dly.Steps() != 2 {
		t.Errorf("R2SC delay steps: %v != 2\n", r2sc.Dly.Steps())
	}
	if r2sc.Pars.PostRefractory || nt.Prjn("GJ").Syn.AsBase().Pars.PostRefractory {
		t.Errorf("RGCSC synapses should not have the refractory guard\n")
	}
	if err := nt.Run(constInput(md, 20)); err != nil {
		t.Fatal(err)
	}
	tot := 0
	for _, c := range nt.MonMap["RGC"].Counts() {
		tot += c
	}
	if tot == 0 {
		t.Errorf("RGCs never spiked\n")
	}
	// every RGC spike is a jump of 1 into the single SC neuron
	if nt.MonMap["SC"].Counts()[0] == 0 {
		t.Errorf("SC never spiked, RGC spikes: %v\n", tot)
	}
}

func TestSetParam(t *testing.T) {
	for _, nm := range Names() {
		md, _ := New(nm)
		if err := md.SetParam("GJ.Weight", 0.25); err != nil {
			t.Errorf("model: %v GJ.Weight: %v\n", nm, err)
		}
		if err := md.SetParam("GJ.Nope", 1); !errors.Is(err, network.ErrConfig) {
			t.Errorf("model: %v unknown param: %v\n", nm, err)
		}
	}
	fm := &FSI{}
	fm.Defaults()
	fm.SetParam("gj.radius", 5)
	fm.SetParam("Chem.Prob", 0.5)
	if fm.GJ.Radius != 5 || fm.Chem.Prob != 0.5 || fm.GJ.Weight != 0.3 {
		t.Errorf("FSI SetParam: %+v %+v\n", fm.GJ, fm.Chem)
	}
}
