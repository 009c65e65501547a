// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/Escoastin/Embedded-Finite-Element-Method/fem"
	"github.com/Escoastin/Embedded-Finite-Element-Method/out"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
			io.Pf("See location of error below:\n")
			chk.Verbose = true
			for i := 5; i > 3; i-- {
				chk.CallerInfo(i)
			}
		}
	}()

	// read input parameters
	fnamepath, fnkey := io.ArgToFilename(0, "", ".sim", true)
	verbose := io.ArgToBool(1, true)
	erasePrev := io.ArgToBool(2, true)
	saveSummary := io.ArgToBool(3, true)
	doplot := io.ArgToBool(4, false)

	// message
	if verbose {
		io.PfWhite("\nEFEM -- Embedded Finite Element Method for quasi-brittle fracture\n")
		io.Pf("Copyright 2016 The Gofem Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n")

		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
			"erase previous results", "erasePrev", erasePrev,
			"save summary", "saveSummary", saveSummary,
			"plot histories", "doplot", doplot,
		))
	}

	// analysis data
	analysis, err := fem.NewMain(fnamepath, "", erasePrev, saveSummary || doplot, verbose)
	if err != nil {
		chk.Panic("cannot allocate analysis:\n%v", err)
	}

	// run simulation
	err = analysis.Run()
	if err != nil {
		chk.Panic("Run failed:\n%v", err)
	}

	// plot histories of loaded equations and of all elements
	if doplot {
		files, err := plotHistories(analysis, fnkey)
		if err != nil {
			chk.Panic("cannot plot results:\n%v", err)
		}
		if verbose {
			for _, fn := range files {
				io.Pf("file <%s> written\n", fn)
			}
		}
	}
}

func plotHistories(analysis *fem.Main, fnkey string) (files []string, err error) {
	res, err := out.NewResults(analysis.Summary)
	if err != nil {
		return
	}
	res.Splot("lu", "load-displacement")
	for eq, f := range analysis.Sim.Loads.F {
		if f == 0 {
			continue
		}
		alias := io.Sf("eq%d", eq)
		if err = res.Define(alias, out.Dof{Eq: eq}); err != nil {
			return
		}
		if err = res.Plot("u", "λ", alias); err != nil {
			return
		}
	}
	res.Splot("kap", "crack opening")
	for _, r := range analysis.Summary.Last().Elems {
		alias := io.Sf("cell%d", r.Id)
		if err = res.Define(alias, out.Cell{Id: r.Id}); err != nil {
			return
		}
		if err = res.Plot("λ", "κ", alias); err != nil {
			return
		}
	}
	return res.Draw(analysis.Sim.DirOut, fnkey+".png")
}
