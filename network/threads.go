// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"fmt"
	"log"
	"runtime"
	"sort"
	"strings"

	"github.com/emer/emergent/timer"
)

// PrjnFunChan is a channel that runs functions on projections
type PrjnFunChan chan func(pj *Prjn)

// ThreadAlloc allocates projections to given number of threads, attempting to
// evenly divide computation by number of pairs, and (re)starts the worker
// threads if nThread > 1.  Returns a report of the allocation.
func (nt *Network) ThreadAlloc(nThread int) string {
	nt.StopThreads()
	if nThread < 1 {
		nThread = 1
	}
	nt.ThrPrjns = make([][]*Prjn, nThread)
	nt.ThrTimes = make([]timer.Time, nThread)
	cost := make([]int, nThread)
	// largest first, each to the currently least loaded thread
	srt := make([]*Prjn, len(nt.Prjns))
	copy(srt, nt.Prjns)
	sort.SliceStable(srt, func(i, j int) bool {
		return srt[i].Syn.AsBase().Len() > srt[j].Syn.AsBase().Len()
	})
	for _, pj := range srt {
		mi := 0
		for th := 1; th < nThread; th++ {
			if cost[th] < cost[mi] {
				mi = th
			}
		}
		nt.ThrPrjns[mi] = append(nt.ThrPrjns[mi], pj)
		cost[mi] += pj.Syn.AsBase().Len() + 1
	}
	if nThread > 1 {
		nt.ThrChans = make([]PrjnFunChan, nThread)
		for th := range nt.ThrChans {
			nt.ThrChans[th] = make(PrjnFunChan)
		}
		nt.StartThreads()
	} else {
		nt.ThrChans = nil
	}
	return nt.ThreadReport()
}

// ThreadReport returns a report of the thread allocations and estimated
// computational cost (number of pairs) per thread.
func (nt *Network) ThreadReport() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Network: %s Auto Thread Allocation for %d threads:\n", nt.Nm, len(nt.ThrPrjns))
	for th, prjns := range nt.ThrPrjns {
		tot := 0
		for _, pj := range prjns {
			tot += pj.Syn.AsBase().Len()
		}
		fmt.Fprintf(&b, "%4d:\t Pairs: %d\t Synapses:", th, tot)
		for _, pj := range prjns {
			fmt.Fprintf(&b, " %s", pj.Nm)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// StartThreads starts up the computation threads, which monitor the channels for work
func (nt *Network) StartThreads() {
	log.Printf("NThreads: %d\tgo max procs: %d\tnum cpu:%d\n", len(nt.ThrChans), runtime.GOMAXPROCS(0), runtime.NumCPU())
	for th := range nt.ThrChans {
		go nt.ThrWorker(th, nt.ThrChans[th], nt.ThrPrjns[th])
	}
	nt.running = true
}

// StopThreads stops the computation threads, if running
func (nt *Network) StopThreads() {
	if !nt.running {
		return
	}
	for th := range nt.ThrChans {
		close(nt.ThrChans[th])
	}
	nt.ThrChans = nil
	nt.running = false
}

// ThrWorker is the worker function run by the worker threads
func (nt *Network) ThrWorker(tt int, ch PrjnFunChan, prjns []*Prjn) {
	for fun := range ch {
		nt.ThrTimes[tt].Start()
		for _, pj := range prjns {
			fun(pj)
		}
		nt.ThrTimes[tt].Stop()
		nt.WaitGp.Done()
	}
}

// ThrPrjnFun calls function on each projection, using the worker threads if
// running, and otherwise just iterating over projections in registration order.
func (nt *Network) ThrPrjnFun(fun func(pj *Prjn), funame string) {
	nt.FunTimerStart(funame)
	if !nt.running {
		for _, pj := range nt.Prjns {
			fun(pj)
		}
	} else {
		for th := range nt.ThrChans {
			nt.WaitGp.Add(1)
			nt.ThrChans[th] <- fun
		}
		nt.WaitGp.Wait()
	}
	nt.FunTimerStop(funame)
}

// TimerReport returns the amount of time spent in each phase of the step,
// and in each thread
func (nt *Network) TimerReport() string {
	var b strings.Builder
	fmt.Fprintf(&b, "TimerReport: %v, NThreads: %v\n", nt.Nm, nt.Cfg.NThreads)
	fmt.Fprintf(&b, "\t%13s \t%7s\t%7s\n", "Function Name", "Secs", "Pct")
	fnms := make([]string, 0, len(nt.FunTimes))
	for k := range nt.FunTimes {
		fnms = append(fnms, k)
	}
	sort.Strings(fnms)
	pcts := make([]float64, len(fnms))
	tot := 0.0
	for i, fn := range fnms {
		pcts[i] = nt.FunTimes[fn].TotalSecs()
		tot += pcts[i]
	}
	for i, fn := range fnms {
		fmt.Fprintf(&b, "\t%13s \t%7.3f\t%7.1f\n", fn, pcts[i], 100*(pcts[i]/tot))
	}
	fmt.Fprintf(&b, "\t%13s \t%7.3f\n", "Total", tot)

	if len(nt.ThrTimes) <= 1 {
		return b.String()
	}
	fmt.Fprintf(&b, "\n\tThr\tSecs\tPct\n")
	pcts = make([]float64, len(nt.ThrTimes))
	tot = 0.0
	for th := range nt.ThrTimes {
		pcts[th] = nt.ThrTimes[th].TotalSecs()
		tot += pcts[th]
	}
	for th := range nt.ThrTimes {
		fmt.Fprintf(&b, "\t%v \t%7.3f\t%7.1f\n", th, pcts[th], 100*(pcts[th]/tot))
	}
	return b.String()
}

// TimerReset resets the per-function and per-thread timers
func (nt *Network) TimerReset() {
	for _, ft := range nt.FunTimes {
		ft.Reset()
	}
	for th := range nt.ThrTimes {
		nt.ThrTimes[th].Reset()
	}
}

// FunTimerStart starts function timer for given function name -- ensures creation of timer
func (nt *Network) FunTimerStart(fun string) {
	ft, ok := nt.FunTimes[fun]
	if !ok {
		ft = &timer.Time{}
		nt.FunTimes[fun] = ft
	}
	ft.Start()
}

// FunTimerStop stops function timer -- timer must already exist
func (nt *Network) FunTimerStop(fun string) {
	ft := nt.FunTimes[fun]
	ft.Stop()
}
