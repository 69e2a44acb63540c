// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synapse

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/goki/ki/kit"
)

// Modes are the coupling laws of a GapJunction
type Modes int

//go:generate stringer -type=Modes

var KiT_Modes = kit.Enums.AddEnum(ModesN, kit.NotBitFlag, nil)

func (ev Modes) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Modes) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The gap junction coupling modes
const (
	// Continuous couples via the potential difference: Weight * (pre.V - post.V)
	Continuous Modes = iota

	// Spikelet only delivers Weight * Spikelet on each pre spike
	Spikelet

	// ContinuousSpikelet is the sum of the Continuous and Spikelet terms
	ContinuousSpikelet

	ModesN
)

// HasContinuous returns true if the mode includes the potential difference term
func (md Modes) HasContinuous() bool {
	return md == Continuous || md == ContinuousSpikelet
}

// HasSpikelet returns true if the mode includes the spike-triggered term
func (md Modes) HasSpikelet() bool {
	return md == Spikelet || md == ContinuousSpikelet
}

// Params are the synapse parameters, fixed for the lifetime of the synapse
type Params struct {
	Weight         float32 `def:"1" desc:"conductance for gap junctions, or jump magnitude for voltage jumps"`
	Delay          float32 `def:"0" min:"0" desc:"transmission delay, in the same time units as the integration step -- 0 = same-step delivery"`
	Spikelet       float32 `def:"0" desc:"spikelet magnitude: a pre spike delivers Weight * Spikelet (gap junction Spikelet modes only)"`
	PostRefractory bool    `def:"true" desc:"if true, post neurons that are refractory do not receive any contribution (it is discarded)"`
	Mode           Modes   `desc:"gap junction coupling law -- ignored by VoltageJump"`
}

func (sp *Params) Defaults() {
	sp.Weight = 1
	sp.Delay = 0
	sp.Spikelet = 0
	sp.PostRefractory = true
	sp.Mode = Continuous
}

// Update must be called after any changes to parameters
func (sp *Params) Update() {
}

// Validate returns an error wrapping ErrConfig for invalid parameters.
// The sign and magnitude of Weight are not checked.
func (sp *Params) Validate() error {
	switch {
	case math32.IsNaN(sp.Delay) || sp.Delay < 0:
		return fmt.Errorf("delay: %v must be >= 0: %w", sp.Delay, ErrConfig)
	case sp.Mode < 0 || sp.Mode >= ModesN:
		return fmt.Errorf("mode: %d not valid: %w", sp.Mode, ErrConfig)
	}
	return nil
}
