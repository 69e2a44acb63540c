// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package neuron provides the population state shared by synapses (membrane
potential V, Spike and Refractory flags), and the leaky integrate-and-fire (LIF)
population that drives it in the host network.

Synapses borrow a State for the duration of one update: they read the pre State
and write only the post V values, never the Spike or Refractory flags.
*/
package neuron

import (
	"errors"

	"github.com/viterin/vek/vek32"
)

// ErrConfig is returned (wrapped) for invalid neuron configurations
var ErrConfig = errors.New("neuron: configuration error")

// State holds the per-neuron variables of a population that synapses read and write.
// All slices have the same length, the number of neurons.
type State struct {
	V          []float32 `desc:"membrane potential"`
	Spike      []bool    `desc:"true only on the step in which the neuron fired"`
	Refractory []bool    `desc:"true while the neuron is within its refractory period"`
}

// NewState returns a new State for n neurons, all zero
func NewState(n int) *State {
	st := &State{}
	st.SetN(n)
	return st
}

// SetN allocates the state for n neurons, all zero
func (st *State) SetN(n int) {
	st.V = make([]float32, n)
	st.Spike = make([]bool, n)
	st.Refractory = make([]bool, n)
}

// Len returns the number of neurons
func (st *State) Len() int {
	return len(st.V)
}

// NSpiking returns the number of neurons with Spike set
func (st *State) NSpiking() int {
	n := 0
	for _, s := range st.Spike {
		if s {
			n++
		}
	}
	return n
}

// MeanV returns the mean membrane potential over the population
func (st *State) MeanV() float32 {
	if len(st.V) == 0 {
		return 0
	}
	return vek32.Mean(st.V)
}

// AddV adds given per-neuron values into V.  acc must be the same length as V.
func (st *State) AddV(acc []float32) {
	vek32.Add_Inplace(st.V, acc)
}

// MemBytes returns the number of bytes of state storage
func (st *State) MemBytes() int {
	return len(st.V)*4 + len(st.Spike) + len(st.Refractory)
}
