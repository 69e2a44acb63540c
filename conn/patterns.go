// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package conn

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/goki/ki/ints"
	"github.com/goki/mat32"
	"golang.org/x/exp/rand"
)

//////////////////////////////////////////////////////////////////////////////////////
//  Full

// Full implements all-to-all connectivity, with pairs in pre-major order
type Full struct {
	SelfCon bool `desc:"if true, include pairs (i, i) -- must be set for distinct pre and post populations, where (i, i) is not a self connection"`
}

// NewFull returns a new all-to-all pattern with self pairs excluded
func NewFull() *Full {
	return &Full{}
}

func (fp *Full) Name() string {
	return "Full"
}

func (fp *Full) Connect(nPre, nPost int) (*Table, error) {
	if nPre < 0 || nPost < 0 {
		return nil, fmt.Errorf("Full: sizes pre: %d post: %d must be >= 0: %w", nPre, nPost, ErrConfig)
	}
	tb := newTableCap(nPre, nPost, nPre*nPost)
	for pi := 0; pi < nPre; pi++ {
		for ri := 0; ri < nPost; ri++ {
			if !fp.SelfCon && pi == ri {
				continue
			}
			tb.add(pi, ri)
		}
	}
	return tb, nil
}

//////////////////////////////////////////////////////////////////////////////////////
//  OneToOne

// OneToOne connects pre neuron i to post neuron i
type OneToOne struct {
}

// NewOneToOne returns a new one-to-one pattern
func NewOneToOne() *OneToOne {
	return &OneToOne{}
}

func (op *OneToOne) Name() string {
	return "OneToOne"
}

func (op *OneToOne) Connect(nPre, nPost int) (*Table, error) {
	if nPre != nPost || nPre < 0 {
		return nil, fmt.Errorf("OneToOne: sizes pre: %d post: %d must be equal: %w", nPre, nPost, ErrConfig)
	}
	tb := newTableCap(nPre, nPost, nPre)
	for i := 0; i < nPre; i++ {
		tb.add(i, i)
	}
	return tb, nil
}

//////////////////////////////////////////////////////////////////////////////////////
//  GridEight

// GridEight connects each neuron of a Rows x Cols grid (row-major index) to its
// 8 nearest neighbors, without wraparound at the edges.
type GridEight struct {
	Rows    int  `min:"1" desc:"number of rows in the grid"`
	Cols    int  `min:"1" desc:"number of columns in the grid"`
	SelfCon bool `desc:"if true, include the self pair (i, i) for each neuron"`
}

// NewGridEight returns a new 8-neighbor grid pattern, excluding self
func NewGridEight(rows, cols int) *GridEight {
	return &GridEight{Rows: rows, Cols: cols}
}

func (gp *GridEight) Name() string {
	return "GridEight"
}

func (gp *GridEight) Connect(nPre, nPost int) (*Table, error) {
	if gp.Rows <= 0 || gp.Cols <= 0 {
		return nil, fmt.Errorf("GridEight: shape %dx%d must be positive: %w", gp.Rows, gp.Cols, ErrConfig)
	}
	n := gp.Rows * gp.Cols
	if nPre != n || nPost != n {
		return nil, fmt.Errorf("GridEight: sizes pre: %d post: %d must both equal grid size: %d: %w", nPre, nPost, n, ErrConfig)
	}
	tb := newTableCap(n, n, 9*n)
	for r := 0; r < gp.Rows; r++ {
		rst := ints.MaxInt(r-1, 0)
		red := ints.MinInt(r+1, gp.Rows-1)
		for c := 0; c < gp.Cols; c++ {
			cst := ints.MaxInt(c-1, 0)
			ced := ints.MinInt(c+1, gp.Cols-1)
			pi := r*gp.Cols + c
			for rr := rst; rr <= red; rr++ {
				for cc := cst; cc <= ced; cc++ {
					if !gp.SelfCon && rr == r && cc == c {
						continue
					}
					tb.add(pi, rr*gp.Cols+cc)
				}
			}
		}
	}
	return tb, nil
}

//////////////////////////////////////////////////////////////////////////////////////
//  Radius

// Radius connects neurons of the same 1D or 2D shaped population whose
// Euclidean grid distance is <= Radius, each candidate pair being included
// with probability Prob.  Candidate pairs are visited in pre-major order and
// draw from an RNG seeded with Seed, so the result is deterministic per Seed.
type Radius struct {
	Shape   []int   `desc:"population shape: [N] for a line, [Rows, Cols] for a row-major grid"`
	Radius  float32 `min:"0" desc:"maximum distance, in grid units, between connected neurons"`
	Prob    float32 `min:"0" max:"1" desc:"probability of including each candidate pair within Radius"`
	Seed    int64   `desc:"random seed for the inclusion draws -- same seed = same table"`
	SelfCon bool    `desc:"if true, include self pairs (i, i) as candidates"`
}

// NewRadius returns a new radius pattern for given shape, radius and probability
func NewRadius(shape []int, radius, prob float32, seed int64) *Radius {
	return &Radius{Shape: shape, Radius: radius, Prob: prob, Seed: seed}
}

func (rp *Radius) Name() string {
	return "Radius"
}

// Len returns the number of neurons in Shape
func (rp *Radius) Len() int {
	if len(rp.Shape) == 0 {
		return 0
	}
	n := 1
	for _, s := range rp.Shape {
		n *= s
	}
	return n
}

// Pos returns the grid position of neuron index i
func (rp *Radius) Pos(i int) mat32.Vec2 {
	if len(rp.Shape) == 1 {
		return mat32.NewVec2(float32(i), 0)
	}
	cols := rp.Shape[1]
	return mat32.NewVec2(float32(i%cols), float32(i/cols))
}

// Validate returns an error wrapping ErrConfig if the parameters are not valid
func (rp *Radius) Validate() error {
	if len(rp.Shape) != 1 && len(rp.Shape) != 2 {
		return fmt.Errorf("Radius: shape: %v must be 1D or 2D: %w", rp.Shape, ErrConfig)
	}
	for _, s := range rp.Shape {
		if s <= 0 {
			return fmt.Errorf("Radius: shape: %v must be positive: %w", rp.Shape, ErrConfig)
		}
	}
	if math32.IsNaN(rp.Radius) || rp.Radius < 0 {
		return fmt.Errorf("Radius: radius: %v must be >= 0: %w", rp.Radius, ErrConfig)
	}
	if math32.IsNaN(rp.Prob) || rp.Prob < 0 || rp.Prob > 1 {
		return fmt.Errorf("Radius: prob: %v must be in [0,1]: %w", rp.Prob, ErrConfig)
	}
	return nil
}

func (rp *Radius) Connect(nPre, nPost int) (*Table, error) {
	if err := rp.Validate(); err != nil {
		return nil, err
	}
	n := rp.Len()
	if nPre != n || nPost != n {
		return nil, fmt.Errorf("Radius: sizes pre: %d post: %d must both equal shape size: %d: %w", nPre, nPost, n, ErrConfig)
	}
	rnd := rand.New(rand.NewSource(uint64(rp.Seed)))
	prob := float64(rp.Prob)
	tb := newTableCap(n, n, 0)
	if prob == 0 {
		return tb, nil
	}
	for pi := 0; pi < n; pi++ {
		pp := rp.Pos(pi)
		for ri := 0; ri < n; ri++ {
			if !rp.SelfCon && pi == ri {
				continue
			}
			if pp.DistTo(rp.Pos(ri)) > rp.Radius {
				continue
			}
			if prob < 1 && rnd.Float64() >= prob {
				continue
			}
			tb.add(pi, ri)
		}
	}
	return tb, nil
}

//////////////////////////////////////////////////////////////////////////////////////
//  Index

// Index uses explicit index pair lists supplied by the caller
type Index struct {
	Pre  []int `desc:"pre neuron index of each pair"`
	Post []int `desc:"post neuron index of each pair, same length as Pre"`
}

// NewIndex returns a new explicit index pattern
func NewIndex(pre, post []int) *Index {
	return &Index{Pre: pre, Post: post}
}

func (ip *Index) Name() string {
	return "Index"
}

func (ip *Index) Connect(nPre, nPost int) (*Table, error) {
	tb, err := NewTable(nPre, nPost, ip.Pre, ip.Post)
	if err != nil {
		return nil, fmt.Errorf("Index: %w", err)
	}
	return tb, nil
}
