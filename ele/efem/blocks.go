// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package efem

import (
	"gonum.org/v1/gonum/mat"
)

// Blocks holds the coupled stiffness blocks of a localized element
//
//   b: bulk (6 displacements)   w: weak jump ε̃   s: strong jump ũ
//
//   Kbb = A Bᵀ D B      Kbw = A Bᵀ D Gw      Kbs = A Bᵀ D Gs
//   Kww = A Gwᵀ D Gw    Kws = A Gwᵀ D Gs     Kss = A Gsᵀ D Gs
//
//   Kb = h*ᵀ D B        Kw = h*ᵀ (D - D) Gw  Ks = h*ᵀ D Gs
//
//  Notes:
//   1) Kw is identically zero: the weak mode carries no traction of its own
//   2) if Gw == h*, the weak rows of the coupled system are A Kb and A Ks
type Blocks struct {
	A   float64   // area
	Kbb *Operator // [6][6]
	Kbw *Operator // [6][1]
	Kbs *Operator // [6][1]
	Kww *Operator // [1][1]
	Kws *Operator // [1][1]
	Kss *Operator // [1][1]
	Kb  *Operator // [1][6] traction projection of bulk stiffness
	Kw  *Operator // [1][1] traction projection of weak mode; zero
	Ks  *Operator // [1][1] traction projection of strong mode
	Kwb *Operator // [1][6] weak row used in condensation
	Ksb *Operator // [1][6] strong row used in condensation
}

// Assemble builds all blocks
//  D -- [3][3] constant elastic modulus of the element
func Assemble(kin *Kinematics, D mat.Matrix) (o *Blocks, err error) {

	// operators
	Dop, err := WrapOperator("D", 3, 3, D)
	if err != nil {
		return
	}
	for _, op := range []*Operator{kin.Gw, kin.Gs, kin.Hv} {
		if err = op.Check(3, 1); err != nil {
			return
		}
	}
	if err = kin.B.Check(3, 6); err != nil {
		return
	}
	A := kin.A

	// volume blocks
	o = &Blocks{A: A}
	if o.Kbb, err = Triple("Kbb", A, kin.B, Dop, kin.B); err != nil {
		return
	}
	if o.Kbw, err = Triple("Kbw", A, kin.B, Dop, kin.Gw); err != nil {
		return
	}
	if o.Kbs, err = Triple("Kbs", A, kin.B, Dop, kin.Gs); err != nil {
		return
	}
	if o.Kww, err = Triple("Kww", A, kin.Gw, Dop, kin.Gw); err != nil {
		return
	}
	if o.Kss, err = Triple("Kss", A, kin.Gs, Dop, kin.Gs); err != nil {
		return
	}

	// traction projections
	if o.Kb, err = Triple("Kb", 1, kin.Hv, Dop, kin.B); err != nil {
		return
	}
	zero, err := Add("D-D", Dop, -1, Dop)
	if err != nil {
		return
	}
	if o.Kw, err = Triple("Kw", 1, kin.Hv, zero, kin.Gw); err != nil {
		return
	}
	if o.Ks, err = Triple("Ks", 1, kin.Hv, Dop, kin.Gs); err != nil {
		return
	}

	// rows of the discontinuity equations
	o.Ksb = o.Kbs.T("Ksb")
	if kin.Projected {
		o.Kwb = o.Kb.Scale("Kwb", A)
		o.Kws = o.Ks.Scale("Kws", A)
		o.Kww, err = Add("Kww", o.Kww, A, o.Kw)
		return
	}
	o.Kwb = o.Kbw.T("Kwb")
	o.Kws, err = Triple("Kws", A, kin.Gw, Dop, kin.Gs)
	return
}
