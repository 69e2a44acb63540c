// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package delay

import (
	"errors"
	"testing"
)

func TestSteps(t *testing.T) {
	dels := []float32{0, 0.1, 0.1, 0.1, 0.25, 1, 0.5, 1.0e-6, 2.0e-5}
	dts := []float32{0.1, 0.1, 0.01, 0.03, 0.1, 0.1, 0.01, 0.1, 0.1}
	cor := []int{0, 1, 10, 4, 3, 10, 50, 0, 1}
	for i := range dels {
		st := Steps(dels[i], dts[i])
		if st != cor[i] {
			t.Errorf("Steps err: idx: %v, delay: %v, dt: %v, steps: %v, cor: %v\n", i, dels[i], dts[i], st, cor[i])
		}
	}
}

func TestZeroDelay(t *testing.T) {
	dl, err := New(3, 0, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if dl.Cap() != 1 {
		t.Errorf("zero delay cap: %v != 1\n", dl.Cap())
	}
	for st := 0; st < 5; st++ {
		for i := 0; i < dl.Len(); i++ {
			val := float32(st*10 + i)
			dl.Push(i, val)
			got := dl.Pull(i)
			if got != val {
				t.Errorf("zero delay step: %v pair: %v got: %v != pushed: %v\n", st, i, got, val)
			}
		}
		dl.Advance()
	}
}

func TestDelaySteps(t *testing.T) {
	for _, nst := range []int{1, 2, 5} {
		dl, err := New(2, float32(nst)*0.1, 0.1)
		if err != nil {
			t.Fatal(err)
		}
		if dl.Steps() != nst || dl.Cap() != nst+1 {
			t.Errorf("steps: %v cap: %v for delay steps: %v\n", dl.Steps(), dl.Cap(), nst)
		}
		nrun := 20
		for st := 0; st < nrun; st++ {
			// pair 0 pushes a unique value every step, pair 1 only at step 3
			dl.Push(0, float32(st+1))
			if st == 3 {
				dl.Push(1, 7)
			} else {
				dl.Push(1, 0)
			}
			got0 := dl.Pull(0)
			cor0 := float32(0)
			if st >= nst {
				cor0 = float32(st - nst + 1)
			}
			if got0 != cor0 {
				t.Errorf("delay: %v step: %v pair 0 got: %v cor: %v\n", nst, st, got0, cor0)
			}
			got1 := dl.Pull(1)
			cor1 := float32(0)
			if st == 3+nst {
				cor1 = 7
			}
			if got1 != cor1 {
				t.Errorf("delay: %v step: %v pair 1 got: %v cor: %v\n", nst, st, got1, cor1)
			}
			dl.Advance()
		}
	}
}

func TestInit(t *testing.T) {
	dl, _ := New(1, 0.2, 0.1)
	dl.Push(0, 5)
	dl.Advance()
	dl.Push(0, 6)
	dl.Init()
	for st := 0; st < dl.Cap(); st++ {
		if v := dl.Pull(0); v != 0 {
			t.Errorf("after Init step: %v got: %v != 0\n", st, v)
		}
		dl.Advance()
	}
	if dl.MemBytes() != 3*4 {
		t.Errorf("MemBytes: %v != 12\n", dl.MemBytes())
	}
}

func TestConfigErrs(t *testing.T) {
	if _, err := New(1, -0.1, 0.1); !errors.Is(err, ErrConfig) {
		t.Errorf("negative delay should give ErrConfig, got: %v\n", err)
	}
	if _, err := New(1, 0.1, 0); !errors.Is(err, ErrConfig) {
		t.Errorf("zero dt should give ErrConfig, got: %v\n", err)
	}
	if _, err := New(-1, 0.1, 0.1); !errors.Is(err, ErrConfig) {
		t.Errorf("negative pairs should give ErrConfig, got: %v\n", err)
	}
}
