// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synapse

import (
	"github.com/emer/gapjunc/conn"
	"github.com/emer/gapjunc/neuron"
)

// GapJunction is an electrical synapse: each pair delivers a current proportional
// to the potential difference between pre and post neurons (Continuous), a fixed
// spikelet on each pre spike (Spikelet), or both (ContinuousSpikelet).
type GapJunction struct {
	Base
}

var _ Synapse = (*GapJunction)(nil)

// NewGapJunction returns a new gap junction between populations of nPre and nPost
// neurons, connected by pattern, with integration step dt used to size the delay line.
// Returns an error wrapping ErrConfig for invalid parameters or connectivity.
func NewGapJunction(name string, nPre, nPost int, pat conn.Pattern, pars Params, dt float32) (*GapJunction, error) {
	gj := &GapJunction{}
	if err := gj.Config(name, nPre, nPost, pat, pars, dt); err != nil {
		return nil, err
	}
	return gj, nil
}

// Contrib returns the contribution of one pair for given pre and post potentials
// and pre spike, according to the coupling Mode.
func (gj *GapJunction) Contrib(preV, postV float32, preSpike bool) float32 {
	pr := &gj.Pars
	c := float32(0)
	if pr.Mode.HasContinuous() {
		c += pr.Weight * (preV - postV)
	}
	if preSpike && pr.Mode.HasSpikelet() {
		c += pr.Weight * pr.Spikelet
	}
	return c
}

// compute pushes this step's contribution for every pair and records the due values,
// reading only the start-of-update state.
func (gj *GapJunction) compute(pre, post *neuron.State) {
	for i, pi := range gj.PreIdx {
		ri := gj.PostIdx[i]
		gj.push(i, gj.Contrib(pre.V[pi], post.V[ri], pre.Spike[pi]))
	}
	gj.Dly.Advance()
}

// Update computes this step's coupling and adds the due values into post.V.
// t is the current simulation time, which the coupling law does not depend on.
func (gj *GapJunction) Update(t float32, pre, post *neuron.State) {
	gj.compute(pre, post)
	gj.deliver(post, post.V)
}

// UpdateInto is Update but accumulates due values into acc instead of post.V
func (gj *GapJunction) UpdateInto(t float32, pre, post *neuron.State, acc []float32) {
	gj.compute(pre, post)
	gj.deliver(post, acc)
}
