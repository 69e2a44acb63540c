// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/emer/gapjunc/models"
	"github.com/emer/gapjunc/network"
	"github.com/emer/gapjunc/stim"
)

// SweepConfig is a cartesian sweep over two model parameters.
// Results tables have one row per Values1 and one column per Values2.
type SweepConfig struct {
	Param1  string    `desc:"first parameter path, e.g., GJ.Radius"`
	Values1 []float32 `desc:"values of the first parameter"`
	Param2  string    `desc:"second parameter path, e.g., GJ.Weight"`
	Values2 []float32 `desc:"values of the second parameter"`
}

// Config is the full configuration of a gjsweep run, read from a TOML file
// over Defaults, with flags applied last.
type Config struct {
	Model       string            `def:"gj2d" desc:"model to run: fsi, gj2d or rgcsc"`
	Out         string            `def:"outputs" desc:"directory for output files"`
	StimFile    string            `desc:"if set, load the stimulus from this csv file instead of generating it"`
	InputGain   float32           `def:"12" desc:"stimulus values are multiplied by this before being applied as input current"`
	InputOffset float32           `def:"0.5" desc:"added to stimulus values before the gain"`
	Bin         float32           `def:"1" desc:"bin width in msec for Omega and cross-correlation"`
	OmegaN      int               `def:"20" desc:"number of neurons used for Omega -- 0 = all"`
	Run         network.RunConfig `desc:"run configuration"`
	Stim        stim.Params       `desc:"stimulus parameters -- size and duration are taken from the model and run"`
	Sweep       SweepConfig       `desc:"parameter sweep"`
	FSI         models.FSI        `desc:"FSI model parameters"`
	GJ2D        models.GJ2D       `desc:"GJ2D model parameters"`
	RGCSC       models.RGCSC      `desc:"RGCSC model parameters"`
}

func (cf *Config) Defaults() {
	cf.Model = "gj2d"
	cf.Out = "outputs"
	cf.InputGain = 12
	cf.InputOffset = 0.5
	cf.Bin = 1
	cf.OmegaN = 20
	cf.Run.Defaults()
	cf.Run.Duration = 300
	cf.Stim.Defaults()
	cf.Stim.Name = "constant"
	cf.Sweep = SweepConfig{Param1: "GJ.Weight", Values1: []float32{0, 0.25, 0.5}, Param2: "GJ.Spikelet", Values2: []float32{0, 0.1}}
	cf.FSI.Defaults()
	cf.GJ2D.Defaults()
	cf.RGCSC.Defaults()
}

// LoadConfig returns the defaults, overridden by the TOML file at path if non-empty
func LoadConfig(path string) (*Config, error) {
	cf := &Config{}
	cf.Defaults()
	if path == "" {
		return cf, nil
	}
	md, err := toml.DecodeFile(path, cf)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if und := md.Undecoded(); len(und) > 0 {
		return nil, fmt.Errorf("config %s: unknown keys: %v", path, und)
	}
	return cf, nil
}

// ModelObj returns the configured model, with the parameters of this config
func (cf *Config) ModelObj() (models.Model, error) {
	md, err := models.New(cf.Model)
	if err != nil {
		return nil, err
	}
	switch mt := md.(type) {
	case *models.FSI:
		*mt = cf.FSI
	case *models.GJ2D:
		*mt = cf.GJ2D
	case *models.RGCSC:
		*mt = cf.RGCSC
	}
	return md, nil
}

// BinSteps returns the measure bin in integration steps
func (cf *Config) BinSteps() int {
	bs := int(cf.Bin/cf.Run.DT + 0.5)
	if bs < 1 {
		bs = 1
	}
	return bs
}
