// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/emer/gapjunc/delay"
)

// RunConfig is the explicit configuration for one simulation run.
// There is no process-global integration step or backend: everything that
// needs dt gets it from here.
type RunConfig struct {
	DT       float32 `def:"0.01" min:"0" desc:"integration step, in msec"`
	Duration float32 `min:"0" desc:"total simulated time, in msec"`
	Seed     int64   `desc:"base random seed for populations and connectivity"`
	NThreads int     `def:"1" min:"1" desc:"number of worker goroutines for the synapse phase -- 1 = serial"`
}

func (rc *RunConfig) Defaults() {
	rc.DT = 0.01
	rc.NThreads = 1
}

// Validate returns an error wrapping ErrConfig for invalid settings
func (rc *RunConfig) Validate() error {
	switch {
	case math32.IsNaN(rc.DT) || rc.DT <= 0:
		return fmt.Errorf("DT: %v must be > 0: %w", rc.DT, ErrConfig)
	case math32.IsNaN(rc.Duration) || rc.Duration < 0:
		return fmt.Errorf("Duration: %v must be >= 0: %w", rc.Duration, ErrConfig)
	case rc.NThreads < 1:
		return fmt.Errorf("NThreads: %d must be >= 1: %w", rc.NThreads, ErrConfig)
	}
	return nil
}

// NSteps returns the number of integration steps in Duration
func (rc *RunConfig) NSteps() int {
	return delay.Steps(rc.Duration, rc.DT)
}
