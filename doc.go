// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package gapjunc is the overall repository for delay-buffered gap-junction and
voltage-jump synapse simulations of small spiking circuits, implemented in the
Go language (golang).

This top-level of the repository has no functional code -- everything is organized
into the following sub-repositories:

* delay: fixed-latency ring buffers, one slot ring per synaptic pair, that realize
transmission delay in whole integration steps.

* conn: connectivity patterns (full, 8-neighbor grid, radius-probability, explicit
index lists) that produce the immutable (pre, post) pair tables used by synapses.

* synapse: the GapJunction (continuous potential-difference coupling plus optional
spikelets) and VoltageJump (spike-triggered jump) synapses, sharing the same
delay line and post-refractory guard pipeline.

* neuron: population state (V, Spike, Refractory) and the leaky integrate-and-fire
host population that drives the synapses.

* network: the discrete-time host loop that sequences neuron integration and synapse
updates, records spike rasters and reports memory and timing.

* stim, measure, models: stimulus generation, spike-train statistics (synchrony
Omega, CV, cross-correlation), and the FSI, 2D grid, and RGC-SC circuits.

* cmd/gjsweep: command-line driver for single runs and parameter sweeps.
*/
package gapjunc
