// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synapse

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/emer/gapjunc/conn"
	"github.com/emer/gapjunc/delay"
	"github.com/emer/gapjunc/neuron"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-5)

func testPars(w, dly float32) Params {
	var pr Params
	pr.Defaults()
	pr.Weight = w
	pr.Delay = dly
	return pr
}

func TestGapContinuous(t *testing.T) {
	pre := neuron.NewState(1)
	post := neuron.NewState(1)
	gj, err := NewGapJunction("gj", 1, 1, conn.NewOneToOne(), testPars(0.3, 0), 0.1)
	if err != nil {
		t.Fatal(err)
	}
	pre.V[0] = 10
	gj.Update(0, pre, post)
	if math32.Abs(post.V[0]-3) > difTol {
		t.Errorf("post V: %v != 3\n", post.V[0])
	}
	if pre.V[0] != 10 {
		t.Errorf("pre V changed: %v\n", pre.V[0])
	}
	// equal potentials deliver nothing
	pre.V[0] = post.V[0]
	v := post.V[0]
	gj.Update(0.1, pre, post)
	if post.V[0] != v {
		t.Errorf("equal potentials changed post V: %v != %v\n", post.V[0], v)
	}
}

func TestGapZeroWeight(t *testing.T) {
	pre := neuron.NewState(3)
	post := neuron.NewState(3)
	gj, err := NewGapJunction("gj", 3, 3, conn.NewFull(), testPars(0, 0.2), 0.1)
	if err != nil {
		t.Fatal(err)
	}
	tm := float32(0)
	for st := 0; st < 10; st++ {
		for i := range pre.V {
			pre.V[i] = float32(i*5 + st)
			pre.Spike[i] = st%2 == 0
		}
		gj.Update(tm, pre, post)
		tm += 0.1
	}
	for i, v := range post.V {
		if v != 0 {
			t.Errorf("zero weight changed post V idx: %v v: %v\n", i, v)
		}
	}
}

func TestGapSpikelet(t *testing.T) {
	pre := neuron.NewState(1)
	post := neuron.NewState(1)
	pr := testPars(0.5, 0)
	pr.Mode = Spikelet
	pr.Spikelet = 2
	gj, err := NewGapJunction("gj", 1, 1, conn.NewOneToOne(), pr, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	pre.V[0] = 4
	gj.Update(0, pre, post)
	if post.V[0] != 0 {
		t.Errorf("spikelet without pre spike: %v != 0\n", post.V[0])
	}
	pre.Spike[0] = true
	gj.Update(0.1, pre, post)
	if math32.Abs(post.V[0]-1) > difTol {
		t.Errorf("spikelet: %v != 1\n", post.V[0])
	}

	pr.Mode = ContinuousSpikelet
	gj, err = NewGapJunction("gj", 1, 1, conn.NewOneToOne(), pr, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	post.V[0] = 0
	gj.Update(0, pre, post)
	// 0.5 * (4 - 0) + 0.5 * 2
	if math32.Abs(post.V[0]-3) > difTol {
		t.Errorf("continuous spikelet: %v != 3\n", post.V[0])
	}
}

func TestGapRefractory(t *testing.T) {
	pre := neuron.NewState(1)
	post := neuron.NewState(1)
	gj, err := NewGapJunction("gj", 1, 1, conn.NewOneToOne(), testPars(0.3, 0), 0.1)
	if err != nil {
		t.Fatal(err)
	}
	pre.V[0] = 10
	post.Refractory[0] = true
	gj.Update(0, pre, post)
	if post.V[0] != 0 {
		t.Errorf("refractory post received: %v\n", post.V[0])
	}
	if math32.Abs(gj.Due[0]-3) > difTol {
		t.Errorf("due value should still be computed: %v != 3\n", gj.Due[0])
	}

	pr := testPars(0.3, 0)
	pr.PostRefractory = false
	gj, err = NewGapJunction("gj", 1, 1, conn.NewOneToOne(), pr, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	gj.Update(0, pre, post)
	if math32.Abs(post.V[0]-3) > difTol {
		t.Errorf("guard off, refractory post V: %v != 3\n", post.V[0])
	}
}

func TestRefractoryWindow(t *testing.T) {
	// post refractory for 5 steps while pre is high and spiking every step
	for _, guard := range []bool{true, false} {
		pre := neuron.NewState(1)
		post := neuron.NewState(1)
		pr := testPars(0.1, 0)
		pr.Mode = ContinuousSpikelet
		pr.Spikelet = 10
		pr.PostRefractory = guard
		gj, err := NewGapJunction("gj", 1, 1, conn.NewOneToOne(), pr, 0.1)
		if err != nil {
			t.Fatal(err)
		}
		pre.V[0] = 10
		pre.Spike[0] = true
		cor := float32(0)
		for st := 0; st < 7; st++ {
			post.Refractory[0] = st < 5
			gj.Update(float32(st)*0.1, pre, post)
			if !guard || st >= 5 {
				c := float32(0)
				c += pr.Weight * (10 - cor)
				c += pr.Weight * pr.Spikelet
				cor += c
			}
			if math32.Abs(post.V[0]-cor) > difTol {
				t.Errorf("guard: %v step: %d post V: %v != %v\n", guard, st, post.V[0], cor)
			}
		}
	}
}

func TestVoltageJumpRefractory(t *testing.T) {
	// jump sent at step 0 with a 2 step delay becomes due while post is refractory
	pre := neuron.NewState(1)
	post := neuron.NewState(1)
	vj, err := NewVoltageJump("vj", 1, 1, conn.NewOneToOne(), testPars(2, 0.2), 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if vj.Dly.Steps() != 2 {
		t.Fatalf("delay steps: %v != 2\n", vj.Dly.Steps())
	}
	for st := 0; st < 6; st++ {
		pre.Spike[0] = st == 0
		post.Refractory[0] = st == 1 || st == 2
		vj.Update(float32(st)*0.1, pre, post)
		if st == 2 && vj.Due[0] != 2 {
			t.Errorf("step 2 due: %v != 2\n", vj.Due[0])
		}
		if post.V[0] != 0 {
			t.Errorf("step: %d jump reached refractory or was deferred, post V: %v\n", st, post.V[0])
		}
	}
}

func TestGapSnapshot(t *testing.T) {
	// reciprocal pairs must both see the start-of-update potentials
	st := neuron.NewState(2)
	gj, err := NewGapJunction("gj", 2, 2, conn.NewIndex([]int{0, 1}, []int{1, 0}), testPars(0.5, 0), 0.1)
	if err != nil {
		t.Fatal(err)
	}
	st.V[0] = 10
	st.V[1] = 0
	gj.Update(0, st, st)
	if math32.Abs(st.V[0]-5) > difTol || math32.Abs(st.V[1]-5) > difTol {
		t.Errorf("reciprocal coupling: %v != [5 5]\n", st.V)
	}
}

func TestFanIn(t *testing.T) {
	pres := []int{0, 1, 2}
	posts := []int{0, 0, 0}
	rpres := []int{2, 0, 1}
	pre := neuron.NewState(3)
	pre.V = []float32{1, 2, 4}
	var res [2]float32
	for k, pl := range [][]int{pres, rpres} {
		post := neuron.NewState(1)
		gj, err := NewGapJunction("gj", 3, 1, conn.NewIndex(pl, posts), testPars(0.25, 0), 0.1)
		if err != nil {
			t.Fatal(err)
		}
		gj.Update(0, pre, post)
		res[k] = post.V[0]
	}
	// 0.25 * (1 + 2 + 4)
	if math32.Abs(res[0]-1.75) > difTol {
		t.Errorf("fan-in sum: %v != 1.75\n", res[0])
	}
	if math32.Abs(res[0]-res[1]) > difTol {
		t.Errorf("fan-in depends on order: %v != %v\n", res[0], res[1])
	}
}

func TestGapNaN(t *testing.T) {
	pre := neuron.NewState(1)
	post := neuron.NewState(1)
	gj, err := NewGapJunction("gj", 1, 1, conn.NewOneToOne(), testPars(1, 0), 0.1)
	if err != nil {
		t.Fatal(err)
	}
	pre.V[0] = math32.NaN()
	gj.Update(0, pre, post)
	if !math32.IsNaN(post.V[0]) {
		t.Errorf("NaN pre V should propagate: %v\n", post.V[0])
	}
}

func TestVoltageJump(t *testing.T) {
	pre := neuron.NewState(2)
	post := neuron.NewState(2)
	vj, err := NewVoltageJump("vj", 2, 2, conn.NewOneToOne(), testPars(2, 0), 0.1)
	if err != nil {
		t.Fatal(err)
	}
	pre.V[0] = 50 // potentials are ignored
	pre.Spike[1] = true
	vj.Update(0, pre, post)
	if post.V[0] != 0 {
		t.Errorf("jump without spike: %v\n", post.V[0])
	}
	if post.V[1] != 2 {
		t.Errorf("jump on spike: %v != 2\n", post.V[1])
	}
}

func TestVoltageJumpDelay(t *testing.T) {
	pre := neuron.NewState(1)
	post := neuron.NewState(1)
	vj, err := NewVoltageJump("vj", 1, 1, conn.NewOneToOne(), testPars(2, 0.1), 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if vj.Dly.Steps() != 1 {
		t.Fatalf("delay steps: %v != 1\n", vj.Dly.Steps())
	}
	pre.Spike[0] = true
	vj.Update(0, pre, post)
	if post.V[0] != 0 {
		t.Errorf("step 0 delivered before delay: %v\n", post.V[0])
	}
	pre.Spike[0] = false
	vj.Update(0.1, pre, post)
	if post.V[0] != 2 {
		t.Errorf("step 1 jump: %v != 2\n", post.V[0])
	}
	vj.Update(0.2, pre, post)
	if post.V[0] != 2 {
		t.Errorf("step 2 extra delivery: %v != 2\n", post.V[0])
	}
}

func TestDelaySteps(t *testing.T) {
	pre := neuron.NewState(1)
	post := neuron.NewState(1)
	vj, err := NewVoltageJump("vj", 1, 1, conn.NewOneToOne(), testPars(1, 0.3), 0.1)
	if err != nil {
		t.Fatal(err)
	}
	d := vj.Dly.Steps()
	if d != 3 {
		t.Fatalf("delay steps: %v != 3\n", d)
	}
	for st := 0; st < 8; st++ {
		pre.Spike[0] = st == 0
		vj.Update(float32(st)*0.1, pre, post)
		cor := float32(0)
		if st >= d {
			cor = 1
		}
		if post.V[0] != cor {
			t.Errorf("step: %v post V: %v != %v\n", st, post.V[0], cor)
		}
	}

	// Init clears anything in flight
	vj.Init()
	post.V[0] = 0
	pre.Spike[0] = true
	vj.Update(0, pre, post)
	vj.Init()
	pre.Spike[0] = false
	for st := 0; st < 5; st++ {
		vj.Update(float32(st)*0.1, pre, post)
	}
	if post.V[0] != 0 {
		t.Errorf("Init did not clear delay line: %v\n", post.V[0])
	}
}

func TestUpdateInto(t *testing.T) {
	pre := neuron.NewState(2)
	post := neuron.NewState(2)
	gj, err := NewGapJunction("gj", 2, 2, conn.NewOneToOne(), testPars(0.5, 0), 0.1)
	if err != nil {
		t.Fatal(err)
	}
	pre.V = []float32{2, 4}
	post.Refractory[1] = true
	acc := make([]float32, 2)
	gj.UpdateInto(0, pre, post, acc)
	if post.V[0] != 0 || post.V[1] != 0 {
		t.Errorf("UpdateInto wrote post V: %v\n", post.V)
	}
	if acc[0] != 1 || acc[1] != 0 {
		t.Errorf("UpdateInto acc: %v != [1 0]\n", acc)
	}
}

func TestSynVals(t *testing.T) {
	vj, err := NewVoltageJump("vj", 2, 3, conn.NewFull(), testPars(1, 0), 0.1)
	if err != nil {
		t.Fatal(err)
	}
	var vals []float32
	if err := vj.SynVals(&vals, "Post"); err != nil {
		t.Fatal(err)
	}
	if len(vals) != 4 {
		t.Errorf("SynVals len: %v != 4\n", len(vals))
	}
	if err := vj.SynVals(&vals, "Nope"); err == nil {
		t.Errorf("SynVals should fail on invalid var name\n")
	}
}

func TestConfigErrs(t *testing.T) {
	_, err := NewGapJunction("gj", 1, 1, conn.NewOneToOne(), testPars(1, -0.1), 0.1)
	if !errors.Is(err, ErrConfig) {
		t.Errorf("negative delay: %v\n", err)
	}
	_, err = NewGapJunction("gj", 1, 1, nil, testPars(1, 0), 0.1)
	if !errors.Is(err, ErrConfig) {
		t.Errorf("nil pattern: %v\n", err)
	}
	_, err = NewVoltageJump("vj", 2, 2, conn.NewIndex([]int{0, 2}, []int{0, 1}), testPars(1, 0), 0.1)
	if !errors.Is(err, ErrConfig) || !errors.Is(err, conn.ErrConfig) {
		t.Errorf("out of range index: %v\n", err)
	}
	_, err = NewVoltageJump("vj", 1, 1, conn.NewOneToOne(), testPars(1, 0), 0)
	if !errors.Is(err, ErrConfig) || !errors.Is(err, delay.ErrConfig) {
		t.Errorf("zero dt: %v\n", err)
	}
	pr := testPars(1, 0)
	pr.Mode = ModesN
	_, err = NewGapJunction("gj", 1, 1, conn.NewOneToOne(), pr, 0.1)
	if !errors.Is(err, ErrConfig) {
		t.Errorf("invalid mode: %v\n", err)
	}
}

func TestFullSelfExcluded(t *testing.T) {
	// one population of two neurons: pairs 0 -> 1 and 1 -> 0 from the same snapshot
	st := neuron.NewState(2)
	gj, err := NewGapJunction("gj", 2, 2, conn.NewFull(), testPars(0.3, 0), 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if gj.Len() != 2 {
		t.Fatalf("pairs: %v != 2\n", gj.Len())
	}
	st.V[0] = 10
	st.V[1] = 0
	gj.Update(0, st, st)
	if math32.Abs(st.V[1]-3) > difTol {
		t.Errorf("V[1]: %v != 3\n", st.V[1])
	}
	if math32.Abs(st.V[0]-7) > difTol {
		t.Errorf("V[0]: %v != 7\n", st.V[0])
	}
}

func TestScenarioFull(t *testing.T) {
	// separate pre and post populations of one neuron each: Full with self gives the single pair (0, 0)
	for _, refr := range []bool{false, true} {
		pre := neuron.NewState(1)
		post := neuron.NewState(1)
		gj, err := NewGapJunction("gj", 1, 1, &conn.Full{SelfCon: true}, testPars(0.3, 0), 0.1)
		if err != nil {
			t.Fatal(err)
		}
		if gj.Len() != 1 {
			t.Fatalf("pairs: %v != 1\n", gj.Len())
		}
		pre.V[0] = 10
		post.Refractory[0] = refr
		gj.Update(0, pre, post)
		cor := float32(3)
		if refr {
			cor = 0
		}
		if math32.Abs(post.V[0]-cor) > difTol {
			t.Errorf("refractory: %v post V: %v != %v\n", refr, post.V[0], cor)
		}
	}
}
