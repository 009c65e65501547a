// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package crack implements the localization criterion and the traction-separation law of
// cohesive cracks embedded in elements
package crack

import (
	"math"

	"github.com/Escoastin/Embedded-Finite-Element-Method/mdl/solid"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"gonum.org/v1/gonum/mat"
)

// OpeningFloor is the smallest argument of the logarithm in CrackOpening; a numerical clamp
const OpeningFloor = 1e-12

// Criterion implements the localization criterion
//
//   φ = σeq - σy
//
//  with σeq the largest principal stress. Localization happens for φ > 0 only.
type Criterion struct {
	Sy float64 // σy: tensile strength
}

// Evaluate returns φ
func (o Criterion) Evaluate(σeq float64) (φ float64) {
	return σeq - o.Sy
}

// Localizes tells whether σeq triggers localization. φ == 0 is elastic
func (o Criterion) Localizes(σeq float64) bool {
	return o.Evaluate(σeq) > 0
}

// Exponential implements an exponential traction-separation law
//
//   q(κ) = σy exp(-σy κ / Gf)     softening stress: q(0) = σy, q(∞) = 0
//   T(κ) = κ q(κ) n               traction (mode-I)
//   Kq   = -dq/dκ                 softening modulus
//
type Exponential struct {
	Sy float64 // σy: tensile strength
	Gf float64 // Gf: fracture energy
}

// Init initialises model
func (o *Exponential) Init(prms dbf.Params) (err error) {
	var hasSy, hasGf bool
	for _, p := range prms {
		switch p.N {
		case "sy":
			o.Sy, hasSy = p.V, true
		case "Gf":
			o.Gf, hasGf = p.V, true
		}
	}
	if !hasSy || !hasGf {
		return chk.Err("crack: parameters sy and Gf are required: %w", solid.ErrInvalidMaterial)
	}
	return o.Set(o.Sy, o.Gf)
}

// Set sets σy and Gf
func (o *Exponential) Set(σy, Gf float64) (err error) {
	if math.IsNaN(σy) || σy <= 0 {
		return chk.Err("crack: σy=%g must be positive: %w", σy, solid.ErrInvalidMaterial)
	}
	if math.IsNaN(Gf) || Gf <= 0 {
		return chk.Err("crack: Gf=%g must be positive: %w", Gf, solid.ErrInvalidMaterial)
	}
	o.Sy, o.Gf = σy, Gf
	return
}

// GetPrms gets (an example) of parameters
func (o Exponential) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "sy", V: 30e6},
		&dbf.P{N: "Gf", V: 700},
	}
}

// Criterion returns the localization criterion using the same σy
func (o Exponential) Criterion() Criterion {
	return Criterion{Sy: o.Sy}
}

// CrackOpening returns the opening κ corresponding to σeq
//
//   κ = -(Gf/σy) ln(max(1 - σeq/σy, ϵ))   if σeq > σy
//   κ = 0                                 otherwise
//
func (o Exponential) CrackOpening(σeq float64) (κ float64) {
	if σeq <= o.Sy {
		return 0
	}
	return -(o.Gf / o.Sy) * math.Log(math.Max(1.0-σeq/o.Sy, OpeningFloor))
}

// SofteningStress returns the remaining cohesive strength q(κ)
func (o Exponential) SofteningStress(κ float64) (q float64) {
	return o.Sy * math.Exp(-o.Sy*κ/o.Gf)
}

// ConsumedStress returns the strength consumed by the crack: σy - q(κ)
func (o Exponential) ConsumedStress(κ float64) float64 {
	return o.Sy * (1.0 - math.Exp(-o.Sy*κ/o.Gf))
}

// Traction returns T = κ q(κ) n
func (o Exponential) Traction(κ float64, n []float64) (T []float64) {
	T = make([]float64, len(n))
	s := κ * o.SofteningStress(κ)
	for i, v := range n {
		T[i] = s * v
	}
	return
}

// SofteningModulus returns Kq = (σy²/Gf) exp(-σy κ / Gf)
func (o Exponential) SofteningModulus(κ float64) float64 {
	return o.Sy * o.Sy / o.Gf * math.Exp(-o.Sy*κ/o.Gf)
}

// Kq returns the softening modulus replicated on the diagonal of a size×size matrix
func (o Exponential) Kq(κ float64, size int) *mat.Dense {
	Kq := mat.NewDense(size, size, nil)
	v := o.SofteningModulus(κ)
	for i := 0; i < size; i++ {
		Kq.Set(i, i, v)
	}
	return Kq
}

// Dissipated returns the energy dissipated per unit crack length up to κ
func (o Exponential) Dissipated(κ float64) float64 {
	return o.Gf * (1.0 - math.Exp(-o.Sy*κ/o.Gf))
}
