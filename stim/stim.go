// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package stim generates the external input currents used to drive populations:
a steps x neurons Matrix, one row of input per integration step, which can be
saved to and loaded from comma-separated files.
*/
package stim

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/emer/gapjunc/delay"
	"github.com/goki/ki/kit"
	"github.com/goki/mat32"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrConfig is returned (wrapped) for invalid stimulus parameters or files
var ErrConfig = errors.New("stim: configuration error")

// Kinds are the kinds of stimulus that can be generated
type Kinds int

//go:generate stringer -type=Kinds

var KiT_Kinds = kit.Enums.AddEnum(KindsN, kit.NotBitFlag, nil)

func (ev Kinds) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Kinds) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The stimulus kinds
const (
	// Constant is Amp for every neuron at every step
	Constant Kinds = iota

	// Normal is independent Poisson events at Freqs Hz per neuron, each event
	// delivering an Amp pulse for one step
	Normal

	// White is a full-field flash on: 0 for the first half of the duration, then Amp
	White

	// Black is a full-field flash off: Amp for the first half of the duration, then 0
	Black

	// FrateIncrease is Normal, but a central Ratio fraction of the field fires
	// at Factor times the base rate
	FrateIncrease

	KindsN
)

// ParseKind returns the kind for given name, which can be the Go name (e.g.,
// FrateIncrease) or the lower-case underscore form (e.g., frate_increase).
func ParseKind(name string) (Kinds, error) {
	nm := strings.ReplaceAll(strings.ToLower(name), "_", "")
	for k := Constant; k < KindsN; k++ {
		if nm == strings.ToLower(k.String()) {
			return k, nil
		}
	}
	return Constant, fmt.Errorf("kind: %q not valid: %w", name, ErrConfig)
}

// Params are the stimulus generation parameters
type Params struct {
	Name     string    `def:"normal" desc:"kind of stimulus: constant, normal, white, black or frate_increase"`
	Height   int       `def:"1" min:"1" desc:"height of the stimulated field, in neurons"`
	Width    int       `def:"1" min:"1" desc:"width of the stimulated field, in neurons -- neuron index is row-major"`
	Duration float32   `def:"300" min:"0" desc:"duration in msec"`
	Freqs    []float32 `desc:"Poisson rate in Hz for normal and frate_increase: either one value for all neurons, or one per neuron"`
	Noise    float32   `def:"0" min:"0" desc:"standard deviation of gaussian noise added to every value"`
	Factor   float32   `def:"4" desc:"rate multiplier for the central region of frate_increase"`
	Ratio    float32   `def:"0.2" min:"0" max:"1" desc:"fraction of the field in the central region of frate_increase"`
	Amp      float32   `def:"1" desc:"amplitude of each pulse / on level"`
}

func (sp *Params) Defaults() {
	sp.Name = "normal"
	sp.Height = 1
	sp.Width = 1
	sp.Duration = 300
	sp.Freqs = []float32{20}
	sp.Noise = 0
	sp.Factor = 4
	sp.Ratio = 0.2
	sp.Amp = 1
}

// N returns the number of neurons in the field
func (sp *Params) N() int {
	return sp.Height * sp.Width
}

// Validate returns the kind, or an error wrapping ErrConfig for invalid parameters
func (sp *Params) Validate() (Kinds, error) {
	kind, err := ParseKind(sp.Name)
	if err != nil {
		return kind, err
	}
	switch {
	case sp.Height <= 0 || sp.Width <= 0:
		return kind, fmt.Errorf("size: %dx%d must be positive: %w", sp.Height, sp.Width, ErrConfig)
	case math32.IsNaN(sp.Duration) || sp.Duration < 0:
		return kind, fmt.Errorf("duration: %v must be >= 0: %w", sp.Duration, ErrConfig)
	case sp.Noise < 0:
		return kind, fmt.Errorf("noise: %v must be >= 0: %w", sp.Noise, ErrConfig)
	case sp.Ratio < 0 || sp.Ratio > 1:
		return kind, fmt.Errorf("ratio: %v must be in [0,1]: %w", sp.Ratio, ErrConfig)
	}
	if kind == Normal || kind == FrateIncrease {
		if nf := len(sp.Freqs); nf != 1 && nf != sp.N() {
			return kind, fmt.Errorf("freqs: %d values, need 1 or %d: %w", nf, sp.N(), ErrConfig)
		}
	}
	return kind, nil
}

// Freq returns the base rate of neuron i
func (sp *Params) Freq(i int) float32 {
	if len(sp.Freqs) == 1 {
		return sp.Freqs[0]
	}
	return sp.Freqs[i]
}

// InCenter returns true if neuron i is within the central Ratio fraction of the
// field: a centered rectangle with sides scaled by sqrt(Ratio).
func (sp *Params) InCenter(i int) bool {
	sr := math32.Sqrt(sp.Ratio)
	ch := int(mat32.Round(sr * float32(sp.Height)))
	cw := int(mat32.Round(sr * float32(sp.Width)))
	r0 := (sp.Height - ch) / 2
	c0 := (sp.Width - cw) / 2
	r := i / sp.Width
	c := i % sp.Width
	return r >= r0 && r < r0+ch && c >= c0 && c < c0+cw
}

// Generate returns the stimulus matrix for given parameters, integration step dt
// (msec) and random seed.  The same seed always produces the same matrix.
func Generate(p *Params, dt float32, seed int64) (*Matrix, error) {
	kind, err := p.Validate()
	if err != nil {
		return nil, err
	}
	if math32.IsNaN(dt) || dt <= 0 {
		return nil, fmt.Errorf("dt: %v must be > 0: %w", dt, ErrConfig)
	}
	n := p.N()
	nsteps := delay.Steps(p.Duration, dt)
	mt := NewMatrix(nsteps, n)
	src := rand.NewSource(uint64(seed))
	vals := mt.Values()
	half := nsteps / 2
	switch kind {
	case Constant:
		for i := range vals {
			vals[i] = p.Amp
		}
	case White, Black:
		on := kind == Black
		for st := 0; st < nsteps; st++ {
			if st == half {
				on = !on
			}
			if !on {
				continue
			}
			row := mt.Row(st)
			for i := range row {
				row[i] = p.Amp
			}
		}
	case Normal, FrateIncrease:
		pois := make([]distuv.Poisson, n)
		for i := range pois {
			f := p.Freq(i)
			if kind == FrateIncrease && p.InCenter(i) {
				f *= p.Factor
			}
			pois[i] = distuv.Poisson{Lambda: float64(f * dt / 1000), Src: src}
		}
		for st := 0; st < nsteps; st++ {
			row := mt.Row(st)
			for i := range row {
				if pois[i].Lambda <= 0 {
					continue
				}
				row[i] = p.Amp * float32(pois[i].Rand())
			}
		}
	}
	if p.Noise > 0 {
		nrm := distuv.Normal{Mu: 0, Sigma: float64(p.Noise), Src: src}
		for i := range vals {
			vals[i] += float32(nrm.Rand())
		}
	}
	return mt, nil
}
