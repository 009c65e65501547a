// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the FEM solver
package fem

import (
	"time"

	"github.com/Escoastin/Embedded-Finite-Element-Method/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Main holds all data for a simulation using the finite element method
type Main struct {
	Sim         *inp.Simulation // simulation data
	Summary     *Summary        // summary structure
	Domain      *Domain         // domain
	Solver      Solver          // finite element method solver; e.g. implicit
	SaveSummary bool            // save summary to Sim.DirOut when Run finishes
	ShowMsg     bool            // show messages
}

// NewMain returns a new Main structure
//  Input:
//   simfilepath -- simulation (.sim) filename including full path
//   alias       -- word to be appended to simulation key; e.g. when running multiple FE solutions
//   erasePrev   -- erase previous results files
//   saveSummary -- save summary
//   verbose     -- show messages
func NewMain(simfilepath, alias string, erasePrev, saveSummary, verbose bool) (o *Main, err error) {

	// read input data
	sim, err := inp.ReadSim(simfilepath, alias, erasePrev, saveSummary)
	if err != nil {
		return nil, chk.Err("cannot read simulation input data:\n%w", err)
	}
	if verbose {
		io.Pf("> Simulation (.sim) file read\n")
	}
	return NewMainSim(sim, saveSummary, verbose)
}

// NewMainSim returns a new Main structure with simulation data already decoded
func NewMainSim(sim *inp.Simulation, saveSummary, verbose bool) (o *Main, err error) {

	// new Main object
	o = new(Main)
	o.Sim = sim
	o.Summary = new(Summary)
	o.SaveSummary = saveSummary
	o.ShowMsg = verbose

	// allocate domain
	o.Domain, err = NewDomain(sim, verbose)
	if err != nil {
		return nil, err
	}

	// allocate solver
	if alloc, ok := allocators[sim.Solver.Type]; ok {
		o.Solver = alloc(o.Domain, o.Summary)
	} else {
		return nil, chk.Err("cannot find solver type named %q", sim.Solver.Type)
	}
	if o.ShowMsg {
		io.Pf("> Initialisation step completed\n")
	}
	return
}

// Run runs FE simulation
func (o *Main) Run() (err error) {

	// exit commands
	cputime := time.Now()
	defer func() { err = o.onexit(cputime, err) }()

	// message
	if o.ShowMsg {
		io.Pf("> Running FE solver\n")
	}

	// load loop
	o.Domain.Sol.Reset()
	return o.Solver.Run()
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

// onexit prints final message with cpu time and saves summary
func (o *Main) onexit(cputime time.Time, prevErr error) (err error) {

	// show final message
	if o.ShowMsg {
		if prevErr == nil {
			io.PfGreen("> Success\n")
			io.Pf("> CPU time = %v\n", time.Now().Sub(cputime))
		} else {
			io.PfRed("> Failed\n")
		}
	}

	// save summary, even if previous error is not nil
	if o.SaveSummary {
		err = o.Summary.Save(o.Sim.DirOut, o.Sim.Key, o.Sim.EncType)
		if err != nil {
			return
		}
	}

	// skip if previous error is not nil
	if prevErr != nil {
		err = prevErr
	}
	return
}
