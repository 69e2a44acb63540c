// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package synapse provides the delay-buffered GapJunction and VoltageJump synapses.

Both share one per-step pipeline, for each (pre, post) pair of their connectivity table:
compute a contribution from the pre (and for gap junctions, post) state, push it onto the
pair's delay line, pull the value due at this step, and add the due value to post V unless
PostRefractory is set and the post neuron is refractory.

All contributions of a step are computed before any post V is written, so every pair
reads the state as it was at the start of the update, and pairs sharing a post neuron
(fan-in) accumulate additively in any order.

Synapses hold no neuron state: pre and post State are passed to each Update.
*/
package synapse

import (
	"errors"
	"fmt"

	"github.com/emer/gapjunc/conn"
	"github.com/emer/gapjunc/delay"
	"github.com/emer/gapjunc/neuron"
)

// ErrConfig is returned (wrapped) for invalid synapse configurations,
// along with the originating conn or delay error.
var ErrConfig = errors.New("synapse: configuration error")

// Synapse is the interface for the synapse types, as called by the host network
type Synapse interface {
	// Name returns the name of the synapse
	Name() string

	// AsBase returns the shared base synapse
	AsBase() *Base

	// Init resets the delay line contents -- only at the start of a run
	Init()

	// Update computes contributions from pre and post state at time t,
	// and adds the values due at this step into post.V.
	Update(t float32, pre, post *neuron.State)

	// UpdateInto is Update but adds due values into acc (one per post neuron)
	// instead of post.V, for threaded accumulation by the host.
	UpdateInto(t float32, pre, post *neuron.State, acc []float32)
}

// SynapseVars are the names of the per-pair variables available from SynVals
var SynapseVars = []string{"Pre", "Post", "Due"}

// Base holds the connectivity, parameters and delay line shared by both synapse types
type Base struct {
	Nm      string      `desc:"name of the synapse"`
	Pars    Params      `view:"inline" desc:"synapse parameters"`
	Pattern string      `desc:"name of the connectivity pattern the table was built from"`
	Tbl     *conn.Table `view:"-" desc:"immutable (pre, post) pair table"`
	Dly     delay.Line  `view:"-" desc:"per-pair delay line"`
	Due     []float32   `view:"-" desc:"value delivered for each pair at the last update (before the refractory guard)"`
	PreIdx  []int       `view:"-" desc:"cached pre index of each pair"`
	PostIdx []int       `view:"-" desc:"cached post index of each pair"`
}

// Config validates parameters, builds the pair table from pattern, and allocates
// the delay line.  Returns an error wrapping ErrConfig (and the conn / delay error).
func (sb *Base) Config(name string, nPre, nPost int, pat conn.Pattern, pars Params, dt float32) error {
	sb.Nm = name
	if err := pars.Validate(); err != nil {
		return fmt.Errorf("synapse %s: %w", name, err)
	}
	if pat == nil {
		return fmt.Errorf("synapse %s: nil connectivity pattern: %w", name, ErrConfig)
	}
	tbl, err := pat.Connect(nPre, nPost)
	if err != nil {
		return fmt.Errorf("synapse %s: %w: %w", name, ErrConfig, err)
	}
	sb.Pars = pars
	sb.Pattern = pat.Name()
	sb.Tbl = tbl
	if err := sb.Dly.Config(tbl.Len(), pars.Delay, dt); err != nil {
		return fmt.Errorf("synapse %s: %w: %w", name, ErrConfig, err)
	}
	sb.Due = make([]float32, tbl.Len())
	sb.PreIdx = tbl.PreIdxs()
	sb.PostIdx = tbl.PostIdxs()
	return nil
}

func (sb *Base) Name() string      { return sb.Nm }
func (sb *Base) AsBase() *Base      { return sb }
func (sb *Base) Len() int           { return len(sb.PreIdx) }
func (sb *Base) Table() *conn.Table { return sb.Tbl }

// Init zeros the delay line and last delivered values
func (sb *Base) Init() {
	sb.Dly.Init()
	for i := range sb.Due {
		sb.Due[i] = 0
	}
}

// push enqueues the contribution of pair i and records the value due now
func (sb *Base) push(i int, val float32) {
	sb.Dly.Push(i, val)
	sb.Due[i] = sb.Dly.Pull(i)
}

// deliver adds the due values into dst, indexed by post neuron, skipping
// refractory post neurons if PostRefractory is set.
func (sb *Base) deliver(post *neuron.State, dst []float32) {
	guard := sb.Pars.PostRefractory
	for i, ri := range sb.PostIdx {
		if guard && post.Refractory[ri] {
			continue
		}
		dst[ri] += sb.Due[i]
	}
}

// SynVals sets values of given variable name for each pair, in table order,
// into given float32 slice (only resized if not big enough).
// Returns error on invalid var name.
func (sb *Base) SynVals(vals *[]float32, varNm string) error {
	ns := sb.Len()
	if *vals == nil || cap(*vals) < ns {
		*vals = make([]float32, ns)
	} else if len(*vals) < ns {
		*vals = (*vals)[0:ns]
	}
	switch varNm {
	case "Pre":
		for i, v := range sb.PreIdx {
			(*vals)[i] = float32(v)
		}
	case "Post":
		for i, v := range sb.PostIdx {
			(*vals)[i] = float32(v)
		}
	case "Due":
		copy(*vals, sb.Due)
	default:
		return fmt.Errorf("Synapse SynVals: variable name: %v not valid", varNm)
	}
	return nil
}

// MemBytes returns the number of bytes used by the pair table, delay line and due values
func (sb *Base) MemBytes() int {
	return sb.Tbl.MemBytes() + sb.Dly.MemBytes() + len(sb.Due)*4 + (len(sb.PreIdx)+len(sb.PostIdx))*8
}

// String returns a one-line summary
func (sb *Base) String() string {
	return fmt.Sprintf("%s: %s pairs: %d weight: %g delay: %g (%d steps) spikelet: %g post-refractory: %v",
		sb.Nm, sb.Pattern, sb.Len(), sb.Pars.Weight, sb.Pars.Delay, sb.Dly.Steps(), sb.Pars.Spikelet, sb.Pars.PostRefractory)
}
