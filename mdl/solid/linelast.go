// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"gonum.org/v1/gonum/mat"
)

// LinElast implements an isotropic linear elastic model in plane-strain
type LinElast struct {
	E  float64 // Young's modulus
	Nu float64 // Poisson's coefficient
	K  float64 // bulk modulus
	G  float64 // shear modulus
}

// add model to factory
func init() {
	allocators["lin-elast"] = func() Model { return new(LinElast) }
}

// Init initialises model
func (o *LinElast) Init(prms dbf.Params) (err error) {
	var hasE, hasNu bool
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E, hasE = p.V, true
		case "nu":
			o.Nu, hasNu = p.V, true
		}
	}
	if !hasE || !hasNu {
		return chk.Err("lin-elast: parameters E and nu are required: %w", ErrInvalidMaterial)
	}
	return o.Set(o.E, o.Nu)
}

// Set sets E and ν and computes derived moduli
func (o *LinElast) Set(E, ν float64) (err error) {
	if math.IsNaN(E) || E <= 0 {
		return chk.Err("lin-elast: E=%g must be positive: %w", E, ErrInvalidMaterial)
	}
	if math.IsNaN(ν) || ν >= 0.5 || ν <= -1 {
		return chk.Err("lin-elast: ν=%g must satisfy -1 < ν < 0.5: %w", ν, ErrInvalidMaterial)
	}
	o.E, o.Nu = E, ν
	o.K = Calc_K_from_Enu(E, ν)
	o.G = Calc_G_from_Enu(E, ν)
	return
}

// GetPrms gets (an example) of parameters
func (o LinElast) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "E", V: 30e9},
		&dbf.P{N: "nu", V: 0.3},
	}
}

// CalcD computes the plane-strain elastic modulus
//
//          E      [ 1-ν    ν       0     ]
//  D = ---------- [  ν    1-ν      0     ]
//      (1+ν)(1-2ν)[  0     0   (1-2ν)/2  ]
//
func (o LinElast) CalcD(D *mat.Dense) (err error) {
	if r, c := D.Dims(); r != 3 || c != 3 {
		return chk.Err("lin-elast: D must be 3x3. %dx%d is invalid", r, c)
	}
	ν := o.Nu
	cf := o.E / ((1.0 + ν) * (1.0 - 2.0*ν))
	D.Zero()
	D.Set(0, 0, cf*(1.0-ν))
	D.Set(0, 1, cf*ν)
	D.Set(1, 0, cf*ν)
	D.Set(1, 1, cf*(1.0-ν))
	D.Set(2, 2, cf*(1.0-2.0*ν)/2.0)
	return
}

// GetD returns a newly allocated plane-strain modulus
func (o LinElast) GetD() (D *mat.Dense) {
	D = mat.NewDense(3, 3, nil)
	o.CalcD(D)
	return
}

// Stress computes σ = D・ε
func (o LinElast) Stress(σ, ε []float64) (err error) {
	if len(σ) != 3 || len(ε) != 3 {
		return chk.Err("lin-elast: σ and ε must have 3 components. %d and %d are invalid", len(σ), len(ε))
	}
	ν := o.Nu
	cf := o.E / ((1.0 + ν) * (1.0 - 2.0*ν))
	σ[0] = cf * ((1.0-ν)*ε[0] + ν*ε[1])
	σ[1] = cf * (ν*ε[0] + (1.0-ν)*ε[1])
	σ[2] = cf * (1.0 - 2.0*ν) / 2.0 * ε[2]
	return
}
