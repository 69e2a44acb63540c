// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/emer/etable/minmax"
	"github.com/goki/ki/kit"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

///////////////////////////////////////////////////////////////////////
//  lif.go contains the leaky integrate-and-fire params and population

// VInits are the ways of initializing membrane potential at the start of a run
type VInits int

//go:generate stringer -type=VInits

var KiT_VInits = kit.Enums.AddEnum(VInitsN, kit.NotBitFlag, nil)

func (ev VInits) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *VInits) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The membrane potential initialization modes
const (
	// VInitReset starts all neurons at VReset
	VInitReset VInits = iota

	// VInitGaussian draws each V from a gaussian centered halfway between
	// VReset and VTh, with sigma of a quarter of that range, clipped to [VReset, VTh)
	VInitGaussian

	VInitsN
)

// LIFParams are the leaky integrate-and-fire parameters.
// Time constants are in the same units as the integration step (msec).
type LIFParams struct {
	VRest       float32    `def:"0" desc:"resting potential -- V decays toward this value"`
	VReset      float32    `def:"0" desc:"potential after a spike"`
	VTh         float32    `def:"10" desc:"spike threshold"`
	R           float32    `def:"1" desc:"membrane resistance -- input current is scaled by this"`
	Tau         float32    `def:"5" min:"0" desc:"membrane time constant"`
	TRefractory float32    `def:"1" min:"0" desc:"refractory period after a spike, during which V is held"`
	Noise       float32    `def:"0" min:"0" desc:"standard deviation of the gaussian noise on V, per unit sqrt(time)"`
	VInit       VInits     `desc:"how V is initialized at the start of a run"`
	ClipV       bool       `desc:"clip V into VRange after each integration step"`
	VRange      minmax.F32 `viewif:"ClipV" desc:"range for V when ClipV is on"`
}

func (lp *LIFParams) Defaults() {
	lp.VRest = 0
	lp.VReset = 0
	lp.VTh = 10
	lp.R = 1
	lp.Tau = 5
	lp.TRefractory = 1
	lp.Noise = 0
	lp.VInit = VInitReset
	lp.ClipV = false
	lp.VRange.Set(-20, 20)
	lp.Update()
}

// Update must be called after any changes to parameters
func (lp *LIFParams) Update() {
}

// Validate returns an error wrapping ErrConfig for invalid parameters
func (lp *LIFParams) Validate() error {
	for _, v := range []float32{lp.VRest, lp.VReset, lp.VTh, lp.R, lp.Tau, lp.TRefractory, lp.Noise} {
		if math32.IsNaN(v) {
			return fmt.Errorf("LIF params: %+v must not be NaN: %w", *lp, ErrConfig)
		}
	}
	switch {
	case lp.Tau <= 0:
		return fmt.Errorf("LIF Tau: %v must be > 0: %w", lp.Tau, ErrConfig)
	case lp.TRefractory < 0:
		return fmt.Errorf("LIF TRefractory: %v must be >= 0: %w", lp.TRefractory, ErrConfig)
	case lp.Noise < 0:
		return fmt.Errorf("LIF Noise: %v must be >= 0: %w", lp.Noise, ErrConfig)
	case lp.VTh <= lp.VReset:
		return fmt.Errorf("LIF VTh: %v must be > VReset: %v: %w", lp.VTh, lp.VReset, ErrConfig)
	}
	return nil
}

// DVdt returns the noise-free derivative of V for given V and input current
func (lp *LIFParams) DVdt(v, input float32) float32 {
	return (-(v - lp.VRest) + lp.R*input) / lp.Tau
}

// LIF is a population of leaky integrate-and-fire neurons
type LIF struct {
	Params    LIFParams `view:"inline" desc:"integration parameters"`
	State     State     `desc:"membrane potential, spike and refractory flags read and written by synapses"`
	TLast     []float32 `desc:"time of the last spike of each neuron -- -Inf if never spiked"`
	Input     []float32 `desc:"external input current for the current step -- consumed and zeroed by Integrate"`
	Shape     []int     `desc:"shape of the population, e.g., [N] or [Rows, Cols]"`
	Seed      int64     `desc:"random seed for noise and gaussian V init"`
	rnd       rand.Source
	gauss     distuv.Normal
}

// NewLIF returns a new LIF population with given shape, default parameters
// and seed.  Returns an error wrapping ErrConfig if the shape is empty or non-positive.
func NewLIF(shape []int, seed int64) (*LIF, error) {
	lf := &LIF{}
	lf.Params.Defaults()
	if err := lf.Config(shape, seed); err != nil {
		return nil, err
	}
	return lf, nil
}

// Config allocates the population for given shape and seed
func (lf *LIF) Config(shape []int, seed int64) error {
	if len(shape) == 0 {
		return fmt.Errorf("LIF: empty shape: %w", ErrConfig)
	}
	n := 1
	for _, s := range shape {
		if s <= 0 {
			return fmt.Errorf("LIF: shape: %v must be positive: %w", shape, ErrConfig)
		}
		n *= s
	}
	lf.Shape = append([]int(nil), shape...)
	lf.Seed = seed
	lf.State.SetN(n)
	lf.TLast = make([]float32, n)
	lf.Input = make([]float32, n)
	lf.Init()
	return nil
}

// Len returns the number of neurons
func (lf *LIF) Len() int {
	return lf.State.Len()
}

// Init re-seeds the noise source and initializes V, flags, input and spike times
func (lf *LIF) Init() {
	lf.rnd = rand.NewSource(uint64(lf.Seed))
	lf.gauss = distuv.Normal{Mu: 0, Sigma: 1, Src: lf.rnd}
	lp := &lf.Params
	mid := 0.5 * (lp.VReset + lp.VTh)
	sig := 0.25 * (lp.VTh - lp.VReset)
	for i := range lf.State.V {
		switch lp.VInit {
		case VInitGaussian:
			v := mid + sig*float32(lf.gauss.Rand())
			v = math32.Max(v, lp.VReset)
			v = math32.Min(v, lp.VTh-1.0e-3*sig)
			lf.State.V[i] = v
		default:
			lf.State.V[i] = lp.VReset
		}
		lf.State.Spike[i] = false
		lf.State.Refractory[i] = false
		lf.TLast[i] = math32.Inf(-1)
		lf.Input[i] = 0
	}
}

// SetInput sets the external input for the current step.
// in must have Len() values, or be nil for no input.
func (lf *LIF) SetInput(in []float32) {
	if in == nil {
		return
	}
	copy(lf.Input, in)
}

// Integrate advances all neurons from time t by dt: neurons within their
// refractory period hold V, others take an Euler-Maruyama step and spike
// (V = VReset) on reaching VTh.  Spike flags are set only for this step.
// Input is consumed and zeroed.
func (lf *LIF) Integrate(t, dt float32) {
	lp := &lf.Params
	nsd := lp.Noise * math32.Sqrt(dt)
	st := &lf.State
	for i := range st.V {
		st.Spike[i] = false
		if t-lf.TLast[i] <= lp.TRefractory {
			st.Refractory[i] = true
			lf.Input[i] = 0
			continue
		}
		st.Refractory[i] = false
		v := st.V[i] + dt*lp.DVdt(st.V[i], lf.Input[i])
		if nsd > 0 {
			v += nsd * float32(lf.gauss.Rand())
		}
		if lp.ClipV {
			v = lp.VRange.ClipVal(v)
		}
		if v >= lp.VTh {
			v = lp.VReset
			st.Spike[i] = true
			st.Refractory[i] = true
			lf.TLast[i] = t
		}
		st.V[i] = v
		lf.Input[i] = 0
	}
}

// MemBytes returns the number of bytes used by state, spike times and input
func (lf *LIF) MemBytes() int {
	return lf.State.MemBytes() + len(lf.TLast)*4 + len(lf.Input)*4
}
