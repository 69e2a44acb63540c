// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package measure computes the summary statistics of spike rasters used to
characterize coupled populations: the Omega synchrony index, the coefficient
of variation of inter-spike intervals, and binned pairwise cross-correlation.

Rasters are neuron x step booleans, as returned by network.SpikeMon.Spikes.
*/
package measure

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Bin returns the number of spikes in each consecutive window of bin steps.
// A trailing partial window is included.  bin < 1 is treated as 1.
func Bin(train []bool, bin int) []float64 {
	if bin < 1 {
		bin = 1
	}
	nb := (len(train) + bin - 1) / bin
	cnt := make([]float64, nb)
	for st, s := range train {
		if s {
			cnt[st/bin]++
		}
	}
	return cnt
}

// BinBinary is Bin, with each window 1 if it has any spike and 0 otherwise
func BinBinary(train []bool, bin int) []float64 {
	cnt := Bin(train, bin)
	for i, c := range cnt {
		if c > 0 {
			cnt[i] = 1
		}
	}
	return cnt
}

// Omega returns the synchrony index of the first n neurons of the raster
// (all if n <= 0 or n is larger than the number of neurons): the variance of the
// population-mean binned spike count trace, divided by the mean of the variances
// of the individual traces.  It is 1 for fully synchronous and near 1/n for
// independent neurons.  Returns 0 if the individual variances are all 0, or if
// the first n trains do not all have the same length.
func Omega(spikes [][]bool, bin int, n int) float64 {
	if n <= 0 || n > len(spikes) {
		n = len(spikes)
	}
	if n == 0 {
		return 0
	}
	var mean []float64
	vsum := 0.0
	for i := 0; i < n; i++ {
		tr := Bin(spikes[i], bin)
		if len(tr) < 2 {
			return 0
		}
		if mean == nil {
			mean = make([]float64, len(tr))
		}
		if len(tr) != len(mean) {
			return 0
		}
		floats.Add(mean, tr)
		vsum += stat.Variance(tr, nil)
	}
	vmean := vsum / float64(n)
	if vmean == 0 {
		return 0
	}
	floats.Scale(1/float64(n), mean)
	return stat.Variance(mean, nil) / vmean
}

// ISIs returns the inter-spike intervals of a train, in units of dt
func ISIs(train []bool, dt float32) []float64 {
	var isi []float64
	last := -1
	for st, s := range train {
		if !s {
			continue
		}
		if last >= 0 {
			isi = append(isi, float64(st-last)*float64(dt))
		}
		last = st
	}
	return isi
}

// CV returns the coefficient of variation (sample standard deviation / mean)
// of the inter-spike intervals of each neuron.  Neurons with fewer than 2
// intervals get 0.
func CV(spikes [][]bool, dt float32) []float64 {
	cvs := make([]float64, len(spikes))
	for i, tr := range spikes {
		isi := ISIs(tr, dt)
		if len(isi) < 2 {
			continue
		}
		mn, sd := stat.MeanStdDev(isi, nil)
		if mn > 0 {
			cvs[i] = sd / mn
		}
	}
	return cvs
}

// MeanCV returns the mean CV over neurons with at least 2 intervals, or 0 if none
func MeanCV(spikes [][]bool, dt float32) float64 {
	var cvs []float64
	for _, tr := range spikes {
		isi := ISIs(tr, dt)
		if len(isi) < 2 {
			continue
		}
		mn, sd := stat.MeanStdDev(isi, nil)
		if mn > 0 {
			cvs = append(cvs, sd/mn)
		}
	}
	if len(cvs) == 0 {
		return 0
	}
	return stat.Mean(cvs, nil)
}

// CrossCorrelation returns the mean over all neuron pairs of the normalized
// coincidence of their binary binned trains: sum(xi * xj) / sqrt(sum(xi) * sum(xj)).
// Pairs with a silent neuron count as 0.  Returns 0 for fewer than 2 neurons.
func CrossCorrelation(spikes [][]bool, bin int) float64 {
	n := len(spikes)
	if n < 2 {
		return 0
	}
	xs := make([][]float64, n)
	sums := make([]float64, n)
	for i, tr := range spikes {
		xs[i] = BinBinary(tr, bin)
		sums[i] = floats.Sum(xs[i])
	}
	tot := 0.0
	np := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			np++
			if sums[i] == 0 || sums[j] == 0 || len(xs[i]) != len(xs[j]) {
				continue
			}
			tot += floats.Dot(xs[i], xs[j]) / math.Sqrt(sums[i]*sums[j])
		}
	}
	return tot / float64(np)
}

// Rates returns the firing rate of each neuron in Hz, for dt in msec
func Rates(spikes [][]bool, dt float32) []float64 {
	rs := make([]float64, len(spikes))
	for i, tr := range spikes {
		if len(tr) == 0 {
			continue
		}
		cnt := 0
		for _, s := range tr {
			if s {
				cnt++
			}
		}
		rs[i] = 1000 * float64(cnt) / (float64(len(tr)) * float64(dt))
	}
	return rs
}

// Stats are the summary statistics of one raster
type Stats struct {
	Omega float64 `desc:"synchrony index"`
	CV    float64 `desc:"mean coefficient of variation of inter-spike intervals"`
	Cor   float64 `desc:"mean pairwise binned cross-correlation"`
	Rate  float64 `desc:"mean firing rate in Hz"`
}

// Compute returns all the summary statistics for a raster, with given bin
// (steps) and dt (msec), using all neurons for Omega.
func Compute(spikes [][]bool, bin int, dt float32) Stats {
	st := Stats{}
	st.Omega = Omega(spikes, bin, 0)
	st.CV = MeanCV(spikes, dt)
	st.Cor = CrossCorrelation(spikes, bin)
	if rs := Rates(spikes, dt); len(rs) > 0 {
		st.Rate = stat.Mean(rs, nil)
	}
	return st
}
