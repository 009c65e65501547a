// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"

	"github.com/Escoastin/Embedded-Finite-Element-Method/ele/efem"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// StepState defines the state of the nonlinear solver within a load step
type StepState int

const (
	Idle          StepState = iota // waiting for a new load increment
	Predicting                     // first iteration: tangent of converged state
	Checking                       // element updates: localization criterion and jumps
	Condensing                     // assembly of condensed residual
	GlobalSolving                  // solution of global linear system
	Converged                      // equilibrium reached
	Iterating                      // equilibrium not reached; new iteration
)

// String returns the state name
func (o StepState) String() string {
	switch o {
	case Idle:
		return "idle"
	case Predicting:
		return "predicting"
	case Checking:
		return "checking"
	case Condensing:
		return "condensing"
	case GlobalSolving:
		return "global-solving"
	case Converged:
		return "converged"
	case Iterating:
		return "iterating"
	}
	return "unknown"
}

// SolverImplicit solves the FEM problem using an incremental-iterative procedure
// (Newton-Raphson method) with proportional loading λ・F
type SolverImplicit struct {
	dom   *Domain     // domain
	sum   *Summary    // summary
	State StepState   // current state
	Trace []StepState // [optional] history of states; recorded if not nil
}

// add solver to factory
func init() {
	allocators["imp"] = func(dom *Domain, sum *Summary) Solver {
		solver := new(SolverImplicit)
		solver.dom = dom
		solver.sum = sum
		return solver
	}
}

// Run runs all load increments
func (o *SolverImplicit) Run() (err error) {

	// auxiliary
	ctl := &o.dom.Sim.Solver
	Δλ0 := 1.0 / float64(ctl.Ninc)
	md := 1.0    // increment multiplier if divergence control is on
	ndiverg := 0 // number of steps diverging

	// load loop
	var λ, Δλ float64
	var lastinc bool
	for !lastinc {

		// check for continued divergence
		if ndiverg > ctl.NdvgMax {
			return chk.Err("continuous divergence after %d cut-backs at λ=%g: %w", ndiverg-1, λ, ErrNonConvergence)
		}

		// load increment
		Δλ = Δλ0 * md
		if λ+Δλ >= 1.0-ctl.DlMin {
			Δλ = 1.0 - λ
			lastinc = true
		}
		if Δλ < ctl.DlMin {
			return chk.Err("Δλ increment is too small: %g < %g: %w", Δλ, ctl.DlMin, ErrNonConvergence)
		}

		// run iterations
		o.dom.backup()
		diverging, e := o.run_iterations(λ, Δλ)
		if e != nil {
			if !ctl.DvgCtrl || !recoverable(e) {
				return e
			}
			diverging = true
		}

		// restore solution and reduce increment
		if diverging {
			if o.dom.ShowMsg {
				io.Pfred(". . . iterations diverging (%2d) . . .\n", ndiverg+1)
			}
			o.dom.restore()
			md *= 0.5
			ndiverg++
			lastinc = false
			if o.sum != nil {
				o.sum.Ncut++
			}
			continue
		}
		ndiverg = 0
		md = 1.0

		// commit
		λ += Δλ
		if lastinc {
			λ = 1.0
		}
		o.dom.Sol.T = λ
		o.dom.Commit()

		// output
		if o.sum != nil {
			o.sum.Append(o.dom)
		}
		if o.dom.ShowMsg {
			nloc := 0
			for _, r := range o.dom.Outputs() {
				if r.Loc {
					nloc++
				}
			}
			io.Pf("> λ = %g: %d localized elements\n", λ, nloc)
		}
	}
	return
}

// run_iterations solves the nonlinear problem for one load increment
func (o *SolverImplicit) run_iterations(λ0, Δλ float64) (diverging bool, err error) {

	// auxiliary
	d := o.dom
	ctl := &d.Sim.Solver
	λ := λ0 + Δλ
	d.Sol.T = λ
	for i := 0; i < d.Ny; i++ {
		d.Sol.ΔY[i] = 0
	}
	o.set(Idle)

	// message
	var it int
	var largFb, largFb0, prevFb float64
	if ctl.ShowR {
		io.Pf("\n%13s%4s%23s\n", "λ", "it", "largFb")
		defer func() {
			io.Pf("%13.6e%4d%23.15e\n", λ, it, largFb)
		}()
	}

	// iterations
	var resids []float64
	defer func() {
		if o.sum != nil {
			o.sum.Resids = append(o.sum.Resids, resids)
		}
	}()
	for it = 0; ; it++ {

		// update elements: trial states, localization and condensation
		if it == 0 {
			o.set(Predicting)
		} else {
			o.set(Checking)
		}
		err = d.UpdateElems()
		if err != nil {
			return
		}

		// assemble right-hand side vector (fb) with negative of residuals
		o.set(Condensing)
		err = d.AssembleRhs(λ)
		if err != nil {
			return
		}

		// find largest absolute component of fb
		largFb = la.Vector(d.Fb).Largest(1)
		resids = append(resids, largFb)

		// check convergence
		if it == 0 {
			largFb0 = largFb
			if largFb < ctl.FbMin {
				break
			}
		} else {
			if largFb < ctl.FbTol*largFb0 { // converged on fb
				break
			}
			if largFb < ctl.FbMin { // converged with smallest value of fb
				break
			}
		}

		// check max number of iterations
		if it == ctl.NmaxIt {
			io.Pfpink("max number of iterations reached: it = %d\n", it)
			return false, chk.Err("λ=%g: largFb=%g after %d iterations: %w", λ, largFb, it, ErrNonConvergence)
		}

		// check divergence on fb
		if it > 1 && ctl.DvgCtrl {
			if largFb > prevFb {
				diverging = true
				return
			}
		}
		prevFb = largFb

		// assemble Jacobian matrix and solve for δy
		err = d.AssembleKb(it == 0)
		if err != nil {
			return
		}
		o.set(GlobalSolving)
		err = d.SolveLinSys()
		if err != nil {
			return
		}

		// message
		if ctl.ShowR {
			io.Pf("%13.6e%4d%23.15e\n", λ, it, largFb)
		}
		o.set(Iterating)
	}

	// success
	o.set(Converged)
	if o.sum != nil {
		o.sum.Nits = append(o.sum.Nits, it)
	}
	return
}

// set sets the current state
func (o *SolverImplicit) set(s StepState) {
	o.State = s
	if o.Trace != nil {
		o.Trace = append(o.Trace, s)
	}
}

// recoverable tells whether a cut-back may fix the error
func recoverable(err error) bool {
	return errors.Is(err, ErrNonConvergence) ||
		errors.Is(err, ErrSingularMatrix) ||
		errors.Is(err, efem.ErrLocalNonConvergence)
}
