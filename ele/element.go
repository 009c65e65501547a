// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele implements finite elements
package ele

import (
	"github.com/cpmech/gosl/la"
)

// Element defines what all elements must implement
type Element interface {

	// information and initialisation
	Id() int                        // returns the cell Id
	SetEqs(eqs [][]int) (err error) // set equations: [nverts][2] ux, uy equation numbers

	// called for each iteration; after Update for elements with internal variables
	AddToRhs(fb []float64, sol *Solution) (err error)                // adds -R to global residual vector fb
	AddToKb(Kb *la.Triplet, sol *Solution, firstIt bool) (err error) // adds element K to global Jacobian matrix Kb
}

// WithIntVars defines elements with internal variables; e.g. the state of an embedded crack
//  Notes:
//   1) Update computes a trial state from the last converged state and the current sol.Y
//   2) only Commit changes the converged state
type WithIntVars interface {
	Update(sol *Solution) (err error) // perform (tangent) update
	Commit()                          // accept trial state as converged state
	Restore()                         // discard trial state; e.g. after divergence
}

// CanOutput defines elements that can output their (converged) state
type CanOutput interface {
	Id() int                       // returns the cell Id
	OutVals(sol *Solution) *Output // values of the converged state
}

// Output holds the output values of one element at a converged step
type Output struct {
	Id        int       // cell Id
	Eps       []float64 // [3] strain (Voigt) including discontinuity modes
	Sig       []float64 // [3] stress (Voigt)
	Loc       bool      // element is localized
	Decohesed bool      // element is fully decohesed
	Kap       float64   // κ: crack-opening magnitude
	T         []float64 // [2] cohesive traction
	Tn        float64   // normal stress on the crack n・σ・n
	N         []float64 // [2] crack normal; nil if not localized
	Wjump     float64   // weak discontinuity jump
	Sjump     float64   // strong discontinuity jump
}
