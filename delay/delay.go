// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package delay provides the fixed-latency ring buffers used to realize synaptic
transmission delay in whole integration steps.

A Line holds one ring of Cap() = Steps()+1 slots for every synaptic pair, all sharing
a single cursor.  At each step the owner pushes exactly one value per pair, pulls
exactly one value per pair, and then calls Advance once.  A value pushed at step t
is returned by the pull at step t + Steps().

A delay of 0 means same-step delivery: Cap() is 1, so push and pull address the same
slot and the pull returns the value just pushed.  This follows the one zero-delay
construction observed in the gap-junction circuits.  It could also be read as a
push-before-pull ordering quirk, but same-step delivery is the contract here.

Steps is ceil(delay / dt) computed with an absolute tolerance of StepTol steps,
so a positive delay below StepTol * dt rounds to 0 steps and is delivered in the
same step, exactly like a delay of 0.  Any delay of at least that size gets 1 or
more steps.
*/
package delay

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// ErrConfig is returned (wrapped) for invalid delay line configurations
var ErrConfig = errors.New("delay: configuration error")

// StepTol is the tolerance used when converting a delay time into steps,
// so that e.g., 0.1 / 0.01 does not ceil up to 11 from float rounding
const StepTol = float32(1.0e-4)

// Steps returns the number of integration steps for given delay time and
// integration step size: ceil(delay / dt), with StepTol slack.
// Delays below StepTol * dt give 0 steps.
func Steps(delay, dt float32) int {
	if delay <= 0 {
		return 0
	}
	n := delay / dt
	return int(math32.Ceil(n - StepTol))
}

// Line is a per-pair ring buffer of float32 values queued for future delivery.
// Values are stored slot-major: Buf[slot*NPairs + pair].
type Line struct {
	NPairs int       `desc:"number of pairs (independent rings) in this line"`
	NSteps int       `desc:"delay in integration steps -- ceil(delay / dt)"`
	Delay  float32   `desc:"delay time, in the same units as the integration step"`
	Dt     float32   `desc:"integration step size the line was sized for"`
	Cur    int       `inactive:"+" desc:"current read (out) slot -- the write slot is Cur + NSteps"`
	Buf    []float32 `view:"-" desc:"ring storage, Cap() slots of NPairs values each"`
}

// New returns a new delay line for nPairs pairs, with capacity sized from
// delay and dt.  Returns an error wrapping ErrConfig for negative delay,
// non-positive dt or negative pair count.
func New(nPairs int, delay, dt float32) (*Line, error) {
	dl := &Line{}
	if err := dl.Config(nPairs, delay, dt); err != nil {
		return nil, err
	}
	return dl, nil
}

// Config configures the line for given number of pairs, delay and dt,
// allocating storage and initializing all values to 0.
func (dl *Line) Config(nPairs int, delay, dt float32) error {
	switch {
	case nPairs < 0:
		return fmt.Errorf("number of pairs: %d must be >= 0: %w", nPairs, ErrConfig)
	case math32.IsNaN(delay) || delay < 0:
		return fmt.Errorf("delay: %v must be >= 0: %w", delay, ErrConfig)
	case math32.IsNaN(dt) || dt <= 0:
		return fmt.Errorf("integration step dt: %v must be > 0: %w", dt, ErrConfig)
	}
	dl.NPairs = nPairs
	dl.Delay = delay
	dl.Dt = dt
	dl.NSteps = Steps(delay, dt)
	dl.Buf = make([]float32, dl.Cap()*nPairs)
	dl.Cur = 0
	return nil
}

// Init zeros all stored values and resets the cursor
func (dl *Line) Init() {
	for i := range dl.Buf {
		dl.Buf[i] = 0
	}
	dl.Cur = 0
}

// Steps returns the delay in integration steps
func (dl *Line) Steps() int {
	return dl.NSteps
}

// Cap returns the number of slots per pair, Steps()+1 (always >= 1)
func (dl *Line) Cap() int {
	return dl.NSteps + 1
}

// Len returns the number of pairs
func (dl *Line) Len() int {
	return dl.NPairs
}

// Push stores value for pair i, for delivery Steps() steps from now
func (dl *Line) Push(i int, val float32) {
	slot := (dl.Cur + dl.NSteps) % dl.Cap()
	dl.Buf[slot*dl.NPairs+i] = val
}

// Pull returns the value for pair i that is due at the current step,
// i.e., the value pushed Steps() steps ago, or 0 if none has been pushed.
func (dl *Line) Pull(i int) float32 {
	return dl.Buf[dl.Cur*dl.NPairs+i]
}

// Advance moves the cursor forward one step -- call once per step after
// all Push / Pull calls for that step.
func (dl *Line) Advance() {
	dl.Cur = (dl.Cur + 1) % dl.Cap()
}

// MemBytes returns the number of bytes of value storage
func (dl *Line) MemBytes() int {
	return len(dl.Buf) * 4
}
