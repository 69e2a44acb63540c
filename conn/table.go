// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package conn provides connectivity patterns that generate the ordered list of
(pre, post) neuron index pairs coupled by a synapse.

All patterns are pure functions of their parameters and the population sizes:
random patterns take an explicit Seed and produce the same Table for the same Seed.
Invalid parameters are reported as errors wrapping ErrConfig at construction, so
that a synapse never runs with silently-wrong connectivity.
*/
package conn

import (
	"errors"
	"fmt"
)

// ErrConfig is returned (wrapped) for invalid connectivity configurations
var ErrConfig = errors.New("conn: configuration error")

// Pattern is a connectivity rule that generates a Table for given
// pre and post population sizes.
type Pattern interface {
	// Name returns the name of the pattern, for reports
	Name() string

	// Connect returns the pair table for given number of pre and post neurons,
	// or an error wrapping ErrConfig if the sizes are not valid for this pattern.
	Connect(nPre, nPost int) (*Table, error)
}

// Table is an immutable ordered list of (pre, post) index pairs.
// Access is only through methods, which never expose the underlying storage.
type Table struct {
	nPre    int
	nPost   int
	preIdx  []int32
	postIdx []int32
}

// NewTable returns a new Table with given population sizes and pair lists,
// which are copied.  Returns an error wrapping ErrConfig if any index is out of
// range or the lists differ in length.
func NewTable(nPre, nPost int, pre, post []int) (*Table, error) {
	if nPre < 0 || nPost < 0 {
		return nil, fmt.Errorf("population sizes pre: %d post: %d must be >= 0: %w", nPre, nPost, ErrConfig)
	}
	if len(pre) != len(post) {
		return nil, fmt.Errorf("pre list len: %d != post list len: %d: %w", len(pre), len(post), ErrConfig)
	}
	tb := &Table{nPre: nPre, nPost: nPost}
	tb.preIdx = make([]int32, len(pre))
	tb.postIdx = make([]int32, len(post))
	for i := range pre {
		pi, ri := pre[i], post[i]
		if pi < 0 || pi >= nPre {
			return nil, fmt.Errorf("pair: %d pre index: %d out of range [0,%d): %w", i, pi, nPre, ErrConfig)
		}
		if ri < 0 || ri >= nPost {
			return nil, fmt.Errorf("pair: %d post index: %d out of range [0,%d): %w", i, ri, nPost, ErrConfig)
		}
		tb.preIdx[i] = int32(pi)
		tb.postIdx[i] = int32(ri)
	}
	return tb, nil
}

// newTableCap is used by patterns that generate in-range indexes by construction
func newTableCap(nPre, nPost, cp int) *Table {
	return &Table{nPre: nPre, nPost: nPost, preIdx: make([]int32, 0, cp), postIdx: make([]int32, 0, cp)}
}

func (tb *Table) add(pre, post int) {
	tb.preIdx = append(tb.preIdx, int32(pre))
	tb.postIdx = append(tb.postIdx, int32(post))
}

// Len returns the number of pairs
func (tb *Table) Len() int {
	return len(tb.preIdx)
}

// NPre returns the size of the pre population
func (tb *Table) NPre() int {
	return tb.nPre
}

// NPost returns the size of the post population
func (tb *Table) NPost() int {
	return tb.nPost
}

// Pair returns the pre and post index of pair i
func (tb *Table) Pair(i int) (pre, post int) {
	return int(tb.preIdx[i]), int(tb.postIdx[i])
}

// PreIdxs returns a copy of the pre index of each pair
func (tb *Table) PreIdxs() []int {
	idx := make([]int, len(tb.preIdx))
	for i, v := range tb.preIdx {
		idx[i] = int(v)
	}
	return idx
}

// PostIdxs returns a copy of the post index of each pair
func (tb *Table) PostIdxs() []int {
	idx := make([]int, len(tb.postIdx))
	for i, v := range tb.postIdx {
		idx[i] = int(v)
	}
	return idx
}

// RecvN returns the number of pairs targeting each post neuron (fan-in)
func (tb *Table) RecvN() []int {
	rn := make([]int, tb.nPost)
	for _, ri := range tb.postIdx {
		rn[ri]++
	}
	return rn
}

// SendN returns the number of pairs originating at each pre neuron (fan-out)
func (tb *Table) SendN() []int {
	sn := make([]int, tb.nPre)
	for _, si := range tb.preIdx {
		sn[si]++
	}
	return sn
}

// Has returns true if the table contains the given pair
func (tb *Table) Has(pre, post int) bool {
	for i := range tb.preIdx {
		if int(tb.preIdx[i]) == pre && int(tb.postIdx[i]) == post {
			return true
		}
	}
	return false
}

// MemBytes returns the number of bytes used by the index storage
func (tb *Table) MemBytes() int {
	return (len(tb.preIdx) + len(tb.postIdx)) * 4
}

// String returns a short summary of the table
func (tb *Table) String() string {
	return fmt.Sprintf("Table: pre: %d post: %d pairs: %d", tb.nPre, tb.nPost, tb.Len())
}
