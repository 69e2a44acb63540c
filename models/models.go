// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package models builds the three experiment circuits:

  - FSI: a line of fast-spiking interneurons, coupled by gap junctions within
    a radius and by excitatory chemical (voltage jump) synapses within a larger radius.
  - GJ2D: a 2D grid of neurons coupled to their 8 nearest neighbors by gap
    junctions with spikelets.
  - RGCSC: a grid of retinal ganglion cells coupled by gap junctions, all relaying
    to a single superior colliculus neuron through voltage jump synapses.

Each model has a parameter struct with Defaults, and Build(cfg) returns a
network ready to Run.
*/
package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emer/gapjunc/network"
)

// Model is the interface for the experiment circuits
type Model interface {
	// Defaults sets the default parameters
	Defaults()

	// Build returns a new network for given run configuration
	Build(cfg network.RunConfig) (*network.Network, error)

	// InputPop returns the name of the population that receives the stimulus
	InputPop() string

	// InputShape returns the [height, width] of the stimulated population
	InputShape() (height, width int)

	// SetParam sets a swept parameter by path, e.g., "GJ.Weight" (case insensitive).
	// Returns an error for unknown paths.
	SetParam(path string, val float32) error
}

// Models are the constructors of the available models, by lower-case name
var Models = map[string]func() Model{
	"fsi":   func() Model { return &FSI{} },
	"gj2d":  func() Model { return &GJ2D{} },
	"rgcsc": func() Model { return &RGCSC{} },
}

// New returns the model of given name, case insensitive, with default parameters
func New(name string) (Model, error) {
	fn, ok := Models[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("model: %q not found, options: %v: %w", name, Names(), network.ErrConfig)
	}
	md := fn()
	md.Defaults()
	return md, nil
}

// errParam returns the error for an unknown parameter path
func errParam(model, path string) error {
	return fmt.Errorf("model %s: parameter: %q not found: %w", model, path, network.ErrConfig)
}

// Names returns the sorted model names
func Names() []string {
	nms := make([]string, 0, len(Models))
	for nm := range Models {
		nms = append(nms, nm)
	}
	sort.Strings(nms)
	return nms
}
