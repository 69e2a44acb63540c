// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stim

import (
	"bytes"
	"errors"
	"testing"

	"github.com/chewxy/math32"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-5)

func TestParseKind(t *testing.T) {
	nms := []string{"constant", "normal", "white", "black", "frate_increase", "FrateIncrease"}
	cor := []Kinds{Constant, Normal, White, Black, FrateIncrease, FrateIncrease}
	for i, nm := range nms {
		k, err := ParseKind(nm)
		if err != nil {
			t.Error(err)
		}
		if k != cor[i] {
			t.Errorf("ParseKind: %v = %v != %v\n", nm, k, cor[i])
		}
	}
	if _, err := ParseKind("pink"); !errors.Is(err, ErrConfig) {
		t.Errorf("ParseKind should fail: %v\n", err)
	}
}

func TestConstant(t *testing.T) {
	var p Params
	p.Defaults()
	p.Name = "constant"
	p.Height = 2
	p.Width = 3
	p.Duration = 1
	p.Amp = 2.5
	mt, err := Generate(&p, 0.1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if mt.NSteps() != 10 || mt.N() != 6 {
		t.Errorf("shape: %v x %v != 10 x 6\n", mt.NSteps(), mt.N())
	}
	for i, v := range mt.Values() {
		if v != 2.5 {
			t.Errorf("constant idx: %v v: %v\n", i, v)
		}
	}
	mt.Offset(.5)
	mt.Scale(2)
	if math32.Abs(mt.Values()[0]-6) > difTol {
		t.Errorf("offset / scale: %v != 6\n", mt.Values()[0])
	}
	if mt.Input(10) != nil || mt.Input(-1) != nil {
		t.Errorf("Input past end should be nil\n")
	}
}

func TestFlash(t *testing.T) {
	var p Params
	p.Defaults()
	p.Duration = 1
	for _, nm := range []string{"white", "black"} {
		p.Name = nm
		mt, err := Generate(&p, 0.1, 1)
		if err != nil {
			t.Fatal(err)
		}
		for st := 0; st < mt.NSteps(); st++ {
			on := st >= 5
			if nm == "black" {
				on = !on
			}
			v := mt.Input(st)[0]
			if (v == p.Amp) != on {
				t.Errorf("%v step: %v v: %v on: %v\n", nm, st, v, on)
			}
		}
	}
}

func TestNormal(t *testing.T) {
	var p Params
	p.Defaults()
	p.Height = 10
	p.Width = 10
	p.Duration = 1000
	p.Freqs = []float32{20}
	mt, err := Generate(&p, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	tot := float32(0)
	for _, v := range mt.Values() {
		tot += v
	}
	// 100 neurons * 20 Hz * 1 sec = 2000 expected events
	if tot < 1700 || tot > 2300 {
		t.Errorf("normal total events: %v not near 2000\n", tot)
	}
	mt2, err := Generate(&p, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range mt.Values() {
		if mt2.Values()[i] != v {
			t.Fatalf("same seed differs at idx: %v\n", i)
		}
	}
}

func TestFrateIncrease(t *testing.T) {
	var p Params
	p.Defaults()
	p.Name = "frate_increase"
	p.Height = 10
	p.Width = 10
	p.Duration = 2000
	p.Ratio = 0.25
	p.Factor = 4
	ncen := 0
	for i := 0; i < p.N(); i++ {
		if p.InCenter(i) {
			ncen++
		}
	}
	if ncen != 25 {
		t.Errorf("center neurons: %v != 25\n", ncen)
	}
	if !p.InCenter(5*10+5) || p.InCenter(0) {
		t.Errorf("center region misplaced\n")
	}
	mt, err := Generate(&p, 1, 5)
	if err != nil {
		t.Fatal(err)
	}
	var cen, sur float32
	for st := 0; st < mt.NSteps(); st++ {
		for i, v := range mt.Row(st) {
			if p.InCenter(i) {
				cen += v
			} else {
				sur += v
			}
		}
	}
	cen /= 25
	sur /= 75
	if cen < 2.5*sur {
		t.Errorf("center rate: %v not ~4x surround: %v\n", cen, sur)
	}
}

func TestCSV(t *testing.T) {
	var p Params
	p.Defaults()
	p.Height = 2
	p.Width = 2
	p.Duration = 50
	p.Freqs = []float32{100}
	p.Noise = 0.1
	mt, err := Generate(&p, 1, 7)
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	if err := mt.SaveCSV(&b); err != nil {
		t.Fatal(err)
	}
	lm, err := LoadCSV(&b, 4)
	if err != nil {
		t.Fatal(err)
	}
	if lm.NSteps() != mt.NSteps() || lm.N() != 4 {
		t.Fatalf("loaded shape: %v x %v != %v x 4\n", lm.NSteps(), lm.N(), mt.NSteps())
	}
	for i, v := range mt.Values() {
		if math32.Abs(lm.Values()[i]-v) > difTol {
			t.Errorf("loaded idx: %v v: %v != %v\n", i, lm.Values()[i], v)
		}
	}
}

func TestParamErrs(t *testing.T) {
	var p Params
	p.Defaults()
	p.Height = 2
	p.Freqs = []float32{1, 2, 3}
	if _, err := Generate(&p, 0.1, 0); !errors.Is(err, ErrConfig) {
		t.Errorf("bad freqs: %v\n", err)
	}
	p.Defaults()
	if _, err := Generate(&p, 0, 0); !errors.Is(err, ErrConfig) {
		t.Errorf("zero dt: %v\n", err)
	}
	p.Width = 0
	if _, err := Generate(&p, 0.1, 0); !errors.Is(err, ErrConfig) {
		t.Errorf("zero width: %v\n", err)
	}
}
