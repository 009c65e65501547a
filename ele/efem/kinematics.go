// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package efem

import (
	"math"

	"github.com/Escoastin/Embedded-Finite-Element-Method/shp"
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// ModeMatrix returns the 3x2 matrix M(g) such that M(g)・n is the Voigt form (engineering shear)
// of the symmetric part of g ⊗ n
//
//          [ gx  0  ]
//   M(g) = [ 0   gy ]
//          [ gy  gx ]
//
func ModeMatrix(g []float64) *mat.Dense {
	return mat.NewDense(3, 2, []float64{
		g[0], 0,
		0, g[1],
		g[1], g[0],
	})
}

// WeakJump returns the 3x1 weak discontinuity operator G_w = M(n)・n = [nx², ny², 2 nx ny]
func WeakJump(n []float64) (Gw *Operator, err error) {
	return modeOperator("Gw", n, n)
}

// StrongJump returns the 3x1 strong discontinuity operator G_s = M(-∇φ)・n
//  gradφ -- gradient of φ = Σ N_i for the nodes on the positive side of the crack
func StrongJump(gradφ, n []float64) (Gs *Operator, err error) {
	if len(gradφ) != 2 {
		return nil, chk.Err("Gs: gradient of φ must have 2 components. %d is invalid: %w", len(gradφ), ErrShapeMismatch)
	}
	return modeOperator("Gs", []float64{-gradφ[0], -gradφ[1]}, n)
}

// TractionProjection returns the 2x2 operator H* = n ⊗ n
func TractionProjection(n []float64) (Hs *Operator, err error) {
	if len(n) != 2 {
		return nil, chk.Err("H*: normal must have 2 components. %d is invalid: %w", len(n), ErrShapeMismatch)
	}
	return NewOperator("H*", 2, 2, []float64{
		n[0] * n[0], n[0] * n[1],
		n[1] * n[0], n[1] * n[1],
	})
}

// TractionProjectionVoigt returns H* in Voigt form: h* (3x1) such that h*ᵀ・σ = n・σ・n
func TractionProjectionVoigt(n []float64) (hs *Operator, err error) {
	if len(n) != 2 {
		return nil, chk.Err("h*: normal must have 2 components. %d is invalid: %w", len(n), ErrShapeMismatch)
	}
	return NewOperator("h*", 3, 1, []float64{n[0] * n[0], n[1] * n[1], 2.0 * n[0] * n[1]})
}

// PlaceholderJump returns the constant 3x1 mode [1, 0, 0]
func PlaceholderJump(name string) *Operator {
	o, _ := NewOperator(name, 3, 1, []float64{1, 0, 0})
	return o
}

// Kinematics holds the operators of a localized element
type Kinematics struct {
	A         float64   // area
	L         float64   // ℓ: length of crack segment through the centroid
	N         []float64 // [2] unit normal
	Plus      []int     // nodes on the positive side of the crack
	B         *Operator // [3][6] strain-displacement
	Gw        *Operator // [3][1] weak discontinuity
	Gs        *Operator // [3][1] strong discontinuity
	Hs        *Operator // [2][2] traction projection H* = n ⊗ n
	Hv        *Operator // [3][1] traction projection in Voigt form
	Projected bool      // Gw coincides with Hv
}

// NewKinematics computes the operators of an element crossed by a crack with normal n
//  placeholder -- use [1,0,0] as the mode of both Gw and Gs
func NewKinematics(geo *shp.Tri3, n []float64, placeholder bool) (o *Kinematics, err error) {

	// check normal
	if len(n) != 2 {
		return nil, chk.Err("normal must have 2 components. %d is invalid: %w", len(n), ErrShapeMismatch)
	}
	nn := math.Hypot(n[0], n[1])
	if nn < 1e-14 {
		return nil, chk.Err("normal must not be null")
	}

	// geometry
	o = new(Kinematics)
	o.A = geo.A
	o.N = []float64{n[0] / nn, n[1] / nn}
	o.L, o.Plus, _ = geo.CrackSegment(o.N)
	o.B, err = WrapOperator("B", 3, 6, geo.Bmatrix())
	if err != nil {
		return
	}

	// traction projection
	o.Hs, err = TractionProjection(o.N)
	if err != nil {
		return
	}
	o.Hv, err = TractionProjectionVoigt(o.N)
	if err != nil {
		return
	}

	// discontinuity modes
	if placeholder {
		o.Gw = PlaceholderJump("Gw")
		o.Gs = PlaceholderJump("Gs")
		return
	}
	o.Gw, err = WeakJump(o.N)
	if err != nil {
		return
	}
	G := geo.G()
	gradφ := make([]float64, 2)
	for _, i := range o.Plus {
		gradφ[0] += G[i][0]
		gradφ[1] += G[i][1]
	}
	o.Gs, err = StrongJump(gradφ, o.N)
	o.Projected = true
	return
}

// modeOperator computes M(g)・n
func modeOperator(name string, g, n []float64) (G *Operator, err error) {
	if len(g) != 2 || len(n) != 2 {
		return nil, chk.Err("%s: mode and normal must have 2 components. %d and %d are invalid: %w", name, len(g), len(n), ErrShapeMismatch)
	}
	var v mat.VecDense
	v.MulVec(ModeMatrix(g), mat.NewVecDense(2, []float64{n[0], n[1]}))
	return NewOperator(name, 3, 1, []float64{v.AtVec(0), v.AtVec(1), v.AtVec(2)})
}

// NormalStress returns tn = n・σ・n = H* : σ
//  σ -- [3] stress in Voigt form {σxx, σyy, σxy}
func (o *Kinematics) NormalStress(σ []float64) (tn float64, err error) {
	if len(σ) != 3 {
		return 0, chk.Err("stress must have 3 components. %d is invalid: %w", len(σ), ErrShapeMismatch)
	}
	S := [][]float64{{σ[0], σ[2]}, {σ[2], σ[1]}}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			tn += o.Hs.At(i, j) * S[i][j]
		}
	}
	return
}
