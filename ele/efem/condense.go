// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package efem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// Condenser eliminates the jump DOFs α = [ε̃, ũ] of one element
//
//           [ Kww       Kws      ]        [ Kwb ]
//   Ktot =  [                    ]    C = [     ]
//           [ Kwsᵀ  Kss + ℓ Kq   ]        [ Ksb ]
//
//   Keff = Kbb - Cᵀ Ktot⁻¹ C
//   feff = fb  - Cᵀ Ktot⁻¹ φ
//
type Condenser struct {
	Blk  *Blocks    // coupled blocks
	L    float64    // ℓ: crack segment length
	Kq   *mat.Dense // [1][1] ∂(σy - q)/∂ũ
	Ktot *mat.Dense // [2][2] discontinuity system
	C    *mat.Dense // [2][6] coupling rows
	lu   mat.LU     // factorisation of Ktot
}

// NewCondenser assembles and factorises the discontinuity system
//  Kq  -- [1][1] derivative of the consumed strength w.r.t. the strong jump; i.e. the softening
//         modulus times ∂κ/∂ũ (= sign(ũ) while κ = κ0 + |ũ| grows; zero while κ is frozen)
//  tol -- inverse of the largest acceptable condition number of Ktot
//  Note: returns ErrSingularSystem if cond(Ktot)・tol ≥ 1
func NewCondenser(blk *Blocks, ℓ float64, Kq *mat.Dense, tol float64) (o *Condenser, err error) {

	// check
	if r, c := Kq.Dims(); r != 1 || c != 1 {
		return nil, chk.Err("Kq must be 1x1 (size of strong jump block). %dx%d is invalid: %w", r, c, ErrShapeMismatch)
	}
	for _, op := range []*Operator{blk.Kww, blk.Kws, blk.Kss} {
		if err = op.Check(1, 1); err != nil {
			return
		}
	}
	for _, op := range []*Operator{blk.Kwb, blk.Ksb} {
		if err = op.Check(1, 6); err != nil {
			return
		}
	}
	if err = blk.Kbb.Check(6, 6); err != nil {
		return
	}

	// K total; lower-left block copied from upper-right
	o = &Condenser{Blk: blk, L: ℓ, Kq: Kq}
	kww := blk.Kww.At(0, 0)
	kws := blk.Kws.At(0, 0)
	kss := blk.Kss.At(0, 0) + ℓ*Kq.At(0, 0)
	o.Ktot = mat.NewDense(2, 2, []float64{
		kww, kws,
		kws, kss,
	})

	// coupling
	o.C = mat.NewDense(2, 6, nil)
	for j := 0; j < 6; j++ {
		o.C.Set(0, j, blk.Kwb.At(0, j))
		o.C.Set(1, j, blk.Ksb.At(0, j))
	}

	// singularity: rows of Ktot nearly parallel when ∇φ ∥ n
	cond := mat.Cond(o.Ktot, 2)
	if math.IsNaN(cond) || math.IsInf(cond, 0) || cond*tol >= 1 {
		return nil, chk.Err("cond(Ktot)=%g exceeds 1/tol=%g: %w", cond, 1.0/tol, ErrSingularSystem)
	}
	o.lu.Factorize(o.Ktot)
	return
}

// SolveReduced solves Ktot・Δα = -C・Δd for the jump increments caused by a displacement increment
func (o *Condenser) SolveReduced(Δd []float64) (Δα []float64, err error) {
	if len(Δd) != 6 {
		return nil, chk.Err("Δd must have 6 components. %d is invalid: %w", len(Δd), ErrShapeMismatch)
	}
	var rhs mat.VecDense
	rhs.MulVec(o.C, mat.NewVecDense(6, Δd))
	rhs.ScaleVec(-1, &rhs)
	return o.solve(&rhs)
}

// SolveLocal solves Ktot・Δα = -φ with displacements held fixed (Newton step on the
// discontinuity equilibrium)
func (o *Condenser) SolveLocal(φ []float64) (Δα []float64, err error) {
	if len(φ) != 2 {
		return nil, chk.Err("φ must have 2 components. %d is invalid: %w", len(φ), ErrShapeMismatch)
	}
	rhs := mat.NewVecDense(2, []float64{-φ[0], -φ[1]})
	return o.solve(rhs)
}

// Condense returns the effective (condensed) stiffness and internal force
//  fb -- [6] bulk internal force A Bᵀ σ
//  φ  -- [2] residual of discontinuity equilibrium
func (o *Condenser) Condense(fb, φ []float64) (Keff *mat.Dense, feff []float64, err error) {
	if len(fb) != 6 || len(φ) != 2 {
		return nil, nil, chk.Err("fb and φ must have 6 and 2 components. %d and %d are invalid: %w", len(fb), len(φ), ErrShapeMismatch)
	}

	// Keff = Kbb - Cᵀ Ktot⁻¹ C
	var X mat.Dense
	err = o.lu.SolveTo(&X, false, o.C)
	if err != nil {
		return nil, nil, chk.Err("cannot solve Ktot・X = C: %v: %w", err, ErrSingularSystem)
	}
	var CtX mat.Dense
	CtX.Mul(o.C.T(), &X)
	Keff = mat.NewDense(6, 6, nil)
	Keff.Sub(o.Blk.Kbb.M, &CtX)

	// feff = fb - Cᵀ Ktot⁻¹ φ
	var y mat.VecDense
	err = o.lu.SolveVecTo(&y, false, mat.NewVecDense(2, []float64{φ[0], φ[1]}))
	if err != nil {
		return nil, nil, chk.Err("cannot solve Ktot・y = φ: %v: %w", err, ErrSingularSystem)
	}
	var Cty mat.VecDense
	Cty.MulVec(o.C.T(), &y)
	feff = make([]float64, 6)
	for i := 0; i < 6; i++ {
		feff[i] = fb[i] - Cty.AtVec(i)
	}
	return
}

// Decohese returns the traction-free reduction of a fully decohesed element; i.e. the strong
// mode is excluded and only the weak jump is eliminated
//
//   Keff = Kbb - Kbw Kww⁻¹ Kwb
//   ε̃    = -Kww⁻¹ Kwb・d  =>  ε̃ = R・d
//
func Decohese(blk *Blocks) (Keff *mat.Dense, R []float64, err error) {
	if err = blk.Kww.Check(1, 1); err != nil {
		return
	}
	kww := blk.Kww.At(0, 0)
	if kww <= 0 || math.IsNaN(kww) {
		return nil, nil, chk.Err("Kww=%g must be positive: %w", kww, ErrSingularSystem)
	}
	KbwKwb, err := Mul("KbwKwb", 1.0/kww, blk.Kbw, blk.Kwb)
	if err != nil {
		return
	}
	K, err := Add("Keff", blk.Kbb, -1, KbwKwb)
	if err != nil {
		return
	}
	R = make([]float64, 6)
	for j := 0; j < 6; j++ {
		R[j] = -blk.Kwb.At(0, j) / kww
	}
	return K.M, R, nil
}

// solve solves Ktot・x = b
func (o *Condenser) solve(b *mat.VecDense) (x []float64, err error) {
	var v mat.VecDense
	err = o.lu.SolveVecTo(&v, false, b)
	if err != nil {
		return nil, chk.Err("cannot solve discontinuity system: %v: %w", err, ErrSingularSystem)
	}
	return []float64{v.AtVec(0), v.AtVec(1)}, nil
}
