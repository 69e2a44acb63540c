// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package network is the host that owns neuron populations and the synapses
between them, and steps them through a run.

Each step (Cycle) runs, in order: external inputs, LIF integration of all
populations, all synapses, and spike monitors.  Every synapse accumulates its
delivered values into a per-synapse buffer (Prjn.Acc), and only after all
synapses have computed are the buffers added into post V, in registration order.
Thus every synapse reads the same post-integration state, and contributions
from several synapses onto one population add.  With NThreads > 1 the compute
phase is spread over worker goroutines, with the same results as serial mode.
*/
package network

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/c2h5oh/datasize"
	"github.com/chewxy/math32"
	"github.com/emer/emergent/timer"
	"github.com/emer/gapjunc/conn"
	"github.com/emer/gapjunc/delay"
	"github.com/emer/gapjunc/neuron"
	"github.com/emer/gapjunc/stim"
	"github.com/emer/gapjunc/synapse"
)

// ErrConfig is returned (wrapped) for invalid network configurations
var ErrConfig = errors.New("network: configuration error")

// Pop is a named population of LIF neurons
type Pop struct {
	Nm  string      `desc:"name of the population"`
	Idx int         `desc:"index in the network's Pops list"`
	LIF *neuron.LIF `desc:"the neurons"`
}

// Len returns the number of neurons
func (pp *Pop) Len() int {
	return pp.LIF.Len()
}

// State returns the neuron state shared with synapses
func (pp *Pop) State() *neuron.State {
	return &pp.LIF.State
}

// Prjn is a synapse registered between a sending (pre) and receiving (post) population
type Prjn struct {
	Nm   string          `desc:"name of the projection (same as its synapse)"`
	Idx  int             `desc:"registration index -- serial update and accumulation order"`
	Send *Pop            `desc:"pre population"`
	Recv *Pop            `desc:"post population"`
	Syn  synapse.Synapse `desc:"the synapse"`
	Acc  []float32       `view:"-" desc:"per post neuron accumulator of this step's delivered values"`
}

// Network holds populations, synapses between them, and spike monitors
type Network struct {
	Nm     string               `desc:"name of the network"`
	Cfg    RunConfig            `desc:"run configuration -- DT, Duration, Seed, NThreads"`
	Time   Time                 `desc:"current time state"`
	Pops   []*Pop               `desc:"populations, in order added"`
	Prjns  []*Prjn              `desc:"synapses, in registration order"`
	Mons   []*SpikeMon          `desc:"spike monitors, one per population"`
	PopMap map[string]*Pop      `view:"-" desc:"map of name to population"`
	MonMap map[string]*SpikeMon `view:"-" desc:"map of population name to its spike monitor"`
	Built  bool                 `inactive:"+" desc:"true after a successful Build"`

	ThrPrjns [][]*Prjn              `view:"-" desc:"projections assigned to each thread"`
	ThrChans []PrjnFunChan          `view:"-" desc:"channels for the threaded synapse workers"`
	ThrTimes []timer.Time           `view:"-" desc:"timers for each thread, to see how evenly the workload is distributed"`
	FunTimes map[string]*timer.Time `view:"-" desc:"timers for each phase of the step"`
	WaitGp   sync.WaitGroup         `view:"-"`

	running bool
}

// NewNetwork returns a new network with given name and run configuration
func NewNetwork(name string, cfg RunConfig) (*Network, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("network %s: %w", name, err)
	}
	nt := &Network{Nm: name, Cfg: cfg}
	nt.Time.Dt = cfg.DT
	nt.PopMap = make(map[string]*Pop)
	nt.MonMap = make(map[string]*SpikeMon)
	nt.FunTimes = make(map[string]*timer.Time)
	return nt, nil
}

// Name returns the network name
func (nt *Network) Name() string {
	return nt.Nm
}

// NSteps returns the number of steps in a full Run
func (nt *Network) NSteps() int {
	return nt.Cfg.NSteps()
}

// Pop returns population of given name, or nil
func (nt *Network) Pop(name string) *Pop {
	return nt.PopMap[name]
}

// PopTry returns population of given name, or an error wrapping ErrConfig
func (nt *Network) PopTry(name string) (*Pop, error) {
	pp, ok := nt.PopMap[name]
	if !ok {
		return nil, fmt.Errorf("network %s: population: %s not found: %w", nt.Nm, name, ErrConfig)
	}
	return pp, nil
}

// Prjn returns projection of given name, or nil
func (nt *Network) Prjn(name string) *Prjn {
	for _, pj := range nt.Prjns {
		if pj.Nm == name {
			return pj
		}
	}
	return nil
}

// AddPop adds a population with given name
func (nt *Network) AddPop(name string, lf *neuron.LIF) (*Pop, error) {
	if _, has := nt.PopMap[name]; has {
		return nil, fmt.Errorf("network %s: population: %s already exists: %w", nt.Nm, name, ErrConfig)
	}
	if lf == nil {
		return nil, fmt.Errorf("network %s: population: %s is nil: %w", nt.Nm, name, ErrConfig)
	}
	pp := &Pop{Nm: name, Idx: len(nt.Pops), LIF: lf}
	nt.Pops = append(nt.Pops, pp)
	nt.PopMap[name] = pp
	nt.Built = false
	return pp, nil
}

// AddLIF creates and adds a new LIF population with given shape, default
// parameters, and a seed derived from the network seed and population index.
func (nt *Network) AddLIF(name string, shape []int) (*Pop, error) {
	lf, err := neuron.NewLIF(shape, nt.Cfg.Seed+int64(len(nt.Pops))*1000003)
	if err != nil {
		return nil, fmt.Errorf("network %s: population: %s: %w: %w", nt.Nm, name, ErrConfig, err)
	}
	return nt.AddPop(name, lf)
}

// Connect registers an already configured synapse from pre to post.
// Its pair table must match the population sizes and its delay line must have been
// sized with the network DT.
func (nt *Network) Connect(pre, post string, syn synapse.Synapse) (*Prjn, error) {
	send, err := nt.PopTry(pre)
	if err != nil {
		return nil, err
	}
	recv, err := nt.PopTry(post)
	if err != nil {
		return nil, err
	}
	sb := syn.AsBase()
	if sb.Tbl == nil {
		return nil, fmt.Errorf("network %s: synapse: %s is not configured: %w", nt.Nm, syn.Name(), ErrConfig)
	}
	if sb.Tbl.NPre() != send.Len() || sb.Tbl.NPost() != recv.Len() {
		return nil, fmt.Errorf("network %s: synapse: %s sizes pre: %d post: %d do not match populations %s: %d %s: %d: %w",
			nt.Nm, syn.Name(), sb.Tbl.NPre(), sb.Tbl.NPost(), pre, send.Len(), post, recv.Len(), ErrConfig)
	}
	if math32.Abs(sb.Dly.Dt-nt.Cfg.DT) > delay.StepTol*nt.Cfg.DT {
		return nil, fmt.Errorf("network %s: synapse: %s dt: %v != network DT: %v: %w", nt.Nm, syn.Name(), sb.Dly.Dt, nt.Cfg.DT, ErrConfig)
	}
	if nt.Prjn(syn.Name()) != nil {
		return nil, fmt.Errorf("network %s: synapse: %s already exists: %w", nt.Nm, syn.Name(), ErrConfig)
	}
	pj := &Prjn{Nm: syn.Name(), Idx: len(nt.Prjns), Send: send, Recv: recv, Syn: syn}
	nt.Prjns = append(nt.Prjns, pj)
	nt.Built = false
	return pj, nil
}

// ConnectGapJunction creates a gap junction from pre to post with given pattern and
// parameters, and registers it.
func (nt *Network) ConnectGapJunction(name, pre, post string, pat conn.Pattern, pars synapse.Params) (*synapse.GapJunction, error) {
	send, recv, err := nt.sendRecv(pre, post)
	if err != nil {
		return nil, err
	}
	gj, err := synapse.NewGapJunction(name, send.Len(), recv.Len(), pat, pars, nt.Cfg.DT)
	if err != nil {
		return nil, fmt.Errorf("network %s: %w: %w", nt.Nm, ErrConfig, err)
	}
	if _, err := nt.Connect(pre, post, gj); err != nil {
		return nil, err
	}
	return gj, nil
}

// ConnectVoltageJump creates a voltage jump synapse from pre to post with given pattern
// and parameters, and registers it.
func (nt *Network) ConnectVoltageJump(name, pre, post string, pat conn.Pattern, pars synapse.Params) (*synapse.VoltageJump, error) {
	send, recv, err := nt.sendRecv(pre, post)
	if err != nil {
		return nil, err
	}
	vj, err := synapse.NewVoltageJump(name, send.Len(), recv.Len(), pat, pars, nt.Cfg.DT)
	if err != nil {
		return nil, fmt.Errorf("network %s: %w: %w", nt.Nm, ErrConfig, err)
	}
	if _, err := nt.Connect(pre, post, vj); err != nil {
		return nil, err
	}
	return vj, nil
}

func (nt *Network) sendRecv(pre, post string) (*Pop, *Pop, error) {
	send, err := nt.PopTry(pre)
	if err != nil {
		return nil, nil, err
	}
	recv, err := nt.PopTry(post)
	if err != nil {
		return nil, nil, err
	}
	return send, recv, nil
}

// Build allocates monitors, accumulators and threads for the current set of
// populations and synapses, and calls Init.  Must be called before Run / Cycle.
func (nt *Network) Build() error {
	if len(nt.Pops) == 0 {
		err := fmt.Errorf("network %s: no populations: %w", nt.Nm, ErrConfig)
		log.Println(err)
		return err
	}
	for _, pp := range nt.Pops {
		if err := pp.LIF.Params.Validate(); err != nil {
			err = fmt.Errorf("network %s: population: %s: %w: %w", nt.Nm, pp.Nm, ErrConfig, err)
			log.Println(err)
			return err
		}
	}
	nt.StopThreads()
	nsteps := nt.NSteps()
	nt.Mons = make([]*SpikeMon, len(nt.Pops))
	nt.MonMap = make(map[string]*SpikeMon, len(nt.Pops))
	for i, pp := range nt.Pops {
		mon := NewSpikeMon(pp, nsteps)
		nt.Mons[i] = mon
		nt.MonMap[pp.Nm] = mon
	}
	for _, pj := range nt.Prjns {
		pj.Acc = make([]float32, pj.Recv.Len())
	}
	nt.ThreadAlloc(nt.Cfg.NThreads)
	nt.Built = true
	nt.Init()
	return nil
}

// Init re-initializes time, all population states, delay lines and monitors,
// so a subsequent Run reproduces the same results.
func (nt *Network) Init() {
	nt.Time.Dt = nt.Cfg.DT
	nt.Time.Reset()
	for _, pp := range nt.Pops {
		pp.LIF.Init()
	}
	for _, pj := range nt.Prjns {
		pj.Syn.Init()
	}
	for _, mon := range nt.Mons {
		mon.Init()
	}
}

// Cycle runs one integration step: inputs (by population name, may be nil),
// integration, synapses and monitors, then advances Time.
func (nt *Network) Cycle(inputs map[string]stim.Source) {
	t := nt.Time.Time
	step := nt.Time.Cycle
	dt := nt.Cfg.DT

	nt.FunTimerStart("Input")
	for nm, src := range inputs {
		if pp, ok := nt.PopMap[nm]; ok && src != nil {
			pp.LIF.SetInput(src.Input(step))
		}
	}
	nt.FunTimerStop("Input")

	nt.FunTimerStart("Integrate")
	for _, pp := range nt.Pops {
		pp.LIF.Integrate(t, dt)
	}
	nt.FunTimerStop("Integrate")

	nt.SynapseUpdate(t)

	nt.FunTimerStart("Monitor")
	for _, mon := range nt.Mons {
		mon.Record(step, t)
	}
	nt.FunTimerStop("Monitor")

	nt.Time.CycleInc()
}

// SynapseUpdate updates all synapses at time t, threaded if NThreads > 1.
// All synapses compute into their Acc before any post V changes.
func (nt *Network) SynapseUpdate(t float32) {
	fun := func(pj *Prjn) {
		for i := range pj.Acc {
			pj.Acc[i] = 0
		}
		pj.Syn.UpdateInto(t, pj.Send.State(), pj.Recv.State(), pj.Acc)
	}
	if nt.Cfg.NThreads <= 1 || len(nt.ThrChans) == 0 {
		nt.FunTimerStart("Synapse")
		for _, pj := range nt.Prjns {
			fun(pj)
		}
		nt.FunTimerStop("Synapse")
	} else {
		nt.ThrPrjnFun(fun, "Synapse")
	}
	nt.FunTimerStart("Accum")
	for _, pj := range nt.Prjns {
		pj.Recv.State().AddV(pj.Acc)
	}
	nt.FunTimerStop("Accum")
}

// Run builds the network if needed, re-initializes it, and runs NSteps steps
// with given inputs by population name.
func (nt *Network) Run(inputs map[string]stim.Source) error {
	if !nt.Built {
		if err := nt.Build(); err != nil {
			return err
		}
	} else {
		nt.Init()
	}
	for pnm := range inputs {
		if _, err := nt.PopTry(pnm); err != nil {
			return err
		}
	}
	nsteps := nt.NSteps()
	for st := 0; st < nsteps; st++ {
		nt.Cycle(inputs)
	}
	return nil
}

// Close stops any worker threads
func (nt *Network) Close() {
	nt.StopThreads()
}

// SizeReport returns a string reporting the size of each population and synapse
// in the network, and total memory footprint.
func (nt *Network) SizeReport() string {
	var b strings.Builder
	neur := 0
	neurMem := 0
	syn := 0
	synMem := 0
	for _, pp := range nt.Pops {
		nn := pp.Len()
		nmem := pp.LIF.MemBytes()
		neur += nn
		neurMem += nmem
		fmt.Fprintf(&b, "%14s:\t Neurons: %d\t NeurMem: %v \t Sends To:\n", pp.Nm, nn, (datasize.ByteSize)(nmem).HumanReadable())
		for _, pj := range nt.Prjns {
			if pj.Send != pp {
				continue
			}
			sb := pj.Syn.AsBase()
			ns := sb.Len()
			syn += ns
			pmem := sb.MemBytes() + len(pj.Acc)*4
			synMem += pmem
			fmt.Fprintf(&b, "\t%14s:\t %14s:\t Pairs: %d\t Delay: %d\t SynMem: %v\n", pj.Nm, pj.Recv.Nm, ns, sb.Dly.Steps(), (datasize.ByteSize)(pmem).HumanReadable())
		}
	}
	fmt.Fprintf(&b, "\n\n%14s:\t Neurons: %d\t NeurMem: %v \t Pairs: %d \t SynMem: %v\n", nt.Nm, neur, (datasize.ByteSize)(neurMem).HumanReadable(), syn, (datasize.ByteSize)(synMem).HumanReadable())
	return b.String()
}

func errNotBuilt(nt *Network) error {
	return fmt.Errorf("network %s: not built: %w", nt.Nm, ErrConfig)
}
