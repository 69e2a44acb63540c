// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synapse

import (
	"github.com/emer/gapjunc/conn"
	"github.com/emer/gapjunc/neuron"
)

// VoltageJump is a one-directional chemical synapse abstracted as an
// instantaneous jump of Weight in the post potential for each pre spike,
// delivered after Delay.
type VoltageJump struct {
	Base
}

var _ Synapse = (*VoltageJump)(nil)

// NewVoltageJump returns a new voltage jump synapse between populations of nPre
// and nPost neurons, connected by pattern.  Pars.Mode and Pars.Spikelet are ignored.
func NewVoltageJump(name string, nPre, nPost int, pat conn.Pattern, pars Params, dt float32) (*VoltageJump, error) {
	vj := &VoltageJump{}
	if err := vj.Config(name, nPre, nPost, pat, pars, dt); err != nil {
		return nil, err
	}
	return vj, nil
}

// Contrib returns Weight if the pre neuron spiked, else 0
func (vj *VoltageJump) Contrib(preSpike bool) float32 {
	if preSpike {
		return vj.Pars.Weight
	}
	return 0
}

func (vj *VoltageJump) compute(pre *neuron.State) {
	for i, pi := range vj.PreIdx {
		vj.push(i, vj.Contrib(pre.Spike[pi]))
	}
	vj.Dly.Advance()
}

// Update adds the jumps due at this step into post.V
func (vj *VoltageJump) Update(t float32, pre, post *neuron.State) {
	vj.compute(pre)
	vj.deliver(post, post.V)
}

// UpdateInto is Update but accumulates due values into acc instead of post.V
func (vj *VoltageJump) UpdateInto(t float32, pre, post *neuron.State, acc []float32) {
	vj.compute(pre)
	vj.deliver(post, acc)
}
