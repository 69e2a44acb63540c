// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

// Time contains the timing state for running a network
type Time struct {
	Time  float32 `desc:"accumulated amount of simulated time the network has been running, in msec"`
	Cycle int     `desc:"step counter: number of integration steps since the last Reset"`
	Dt    float32 `def:"0.01" desc:"amount of time to increment per step"`
}

// NewTime returns a new Time with given step size
func NewTime(dt float32) *Time {
	tm := &Time{Dt: dt}
	return tm
}

// Reset resets the counters all back to zero
func (tm *Time) Reset() {
	tm.Time = 0
	tm.Cycle = 0
	if tm.Dt == 0 {
		tm.Dt = 0.01
	}
}

// CycleInc increments at the step level.  Time is recomputed from the
// step count so it does not drift over long runs.
func (tm *Time) CycleInc() {
	tm.Cycle++
	tm.Time = float32(tm.Cycle) * tm.Dt
}
