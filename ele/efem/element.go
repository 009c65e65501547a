// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package efem

import (
	"errors"
	"math"

	"github.com/Escoastin/Embedded-Finite-Element-Method/ele"
	"github.com/Escoastin/Embedded-Finite-Element-Method/inp"
	"github.com/Escoastin/Embedded-Finite-Element-Method/mdl/crack"
	"github.com/Escoastin/Embedded-Finite-Element-Method/mdl/solid"
	"github.com/Escoastin/Embedded-Finite-Element-Method/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// Tri3 implements a constant strain triangle with one embedded crack
//  Notes:
//   1) the crack nucleates when the largest principal stress exceeds σy
//   2) the jumps [ε̃, ũ] are solved element-wise and condensed out; the global system only
//      holds displacements
type Tri3 struct {

	// basic data
	Cell *inp.Cell   // the cell structure
	X    [][]float64 // [2][3] matrix of nodal coordinates
	Geo  *shp.Tri3   // geometry

	// parameters and properties
	Mdl  solid.Small        // bulk model
	Crk  *crack.Exponential // traction-separation law
	Crit crack.Criterion    // localization criterion
	D    *mat.Dense         // [3][3] elastic modulus

	// control
	Placeholder bool    // use placeholder modes [1,0,0]
	NmaxIt      int     // max number of local iterations
	Tol         float64 // tolerance on discontinuity residual relative to ℓ σy
	CondTol     float64 // inverse of the largest acceptable condition number of Ktot

	// problem variables
	Umap []int        // assembly map (location array/element equations)
	B    *mat.Dense   // [3][6] strain-displacement matrix
	Kbb  *mat.Dense   // [6][6] bulk stiffness A Bᵀ D B
	Sta  *crack.State // converged state
	Tri  *crack.State // trial state
	Nit  int          // number of local iterations in last update

	// results of last update
	Keff *mat.Dense // [6][6] condensed stiffness
	Feff []float64  // [6] condensed internal force
	Eps  []float64  // [3] strain
	Sig  []float64  // [3] stress

	// converged results
	EpsC []float64 // [3] strain
	SigC []float64 // [3] stress

	// scratchpad
	d     []float64 // [6] element displacements
	dprev []float64 // [6] displacements at last update
	dcmt  []float64 // [6] displacements at last converged state
}

// register element
func init() {
	ele.SetAllocator("efem-tri3", func(sim *inp.Simulation, cell *inp.Cell, edat *inp.ElemData, x [][]float64) (ele.Element, error) {

		// material
		m := sim.Materials.Get(edat.Mat)
		if m == nil {
			return nil, chk.Err("cannot get material %q for efem-tri3 {tag=%d id=%d}", edat.Mat, cell.Tag, cell.Id)
		}

		// flags
		placeholder := sim.Solver.Placeholder
		if s, found := io.Keycode(edat.Extra, "placeholder"); found {
			placeholder = io.Atob(s)
		}

		// element
		o, err := NewTri3(x, m.Solid, m.Crack, placeholder)
		if err != nil {
			return nil, err
		}
		o.Cell = cell
		o.NmaxIt = sim.Solver.NmaxItLoc
		o.Tol = sim.Solver.TolLoc
		o.CondTol = sim.Solver.CondTol
		return o, nil
	})
}

// NewTri3 returns a new element; with default control values
func NewTri3(x [][]float64, mdl solid.Small, crk *crack.Exponential, placeholder bool) (o *Tri3, err error) {

	// geometry
	o = new(Tri3)
	o.X = x
	o.Geo, err = shp.NewTri3(x)
	if err != nil {
		return nil, err
	}
	o.B = o.Geo.Bmatrix()

	// models
	if mdl == nil || crk == nil {
		return nil, chk.Err("efem-tri3 requires a bulk model and a crack model")
	}
	o.Mdl = mdl
	o.Crk = crk
	o.Crit = crk.Criterion()
	o.D = mat.NewDense(3, 3, nil)
	err = o.Mdl.CalcD(o.D)
	if err != nil {
		return nil, err
	}

	// control
	o.Placeholder = placeholder
	o.NmaxIt = 50
	o.Tol = 1e-10
	o.CondTol = 1e-3

	// bulk stiffness
	var DB mat.Dense
	DB.Mul(o.D, o.B)
	o.Kbb = mat.NewDense(6, 6, nil)
	o.Kbb.Mul(o.B.T(), &DB)
	o.Kbb.Scale(o.Geo.A, o.Kbb)

	// state and results
	o.Umap = []int{0, 1, 2, 3, 4, 5}
	o.Sta = crack.NewState()
	o.Tri = crack.NewState()
	o.Keff = mat.DenseCopyOf(o.Kbb)
	o.Feff = make([]float64, 6)
	o.Eps = make([]float64, 3)
	o.Sig = make([]float64, 3)
	o.EpsC = make([]float64, 3)
	o.SigC = make([]float64, 3)
	o.d = make([]float64, 6)
	o.dprev = make([]float64, 6)
	o.dcmt = make([]float64, 6)
	return
}

// implementation ///////////////////////////////////////////////////////////////////////////////////

// Id returns the cell Id
func (o *Tri3) Id() int {
	if o.Cell == nil {
		return -1
	}
	return o.Cell.Id
}

// SetEqs set equations
func (o *Tri3) SetEqs(eqs [][]int) (err error) {
	if len(eqs) != 3 {
		return chk.Err("efem-tri3 requires equations for 3 nodes. %d is invalid", len(eqs))
	}
	for m := 0; m < 3; m++ {
		if len(eqs[m]) != 2 {
			return chk.Err("efem-tri3 requires 2 equations (ux, uy) per node. %d is invalid", len(eqs[m]))
		}
	}
	o.Umap = ele.BuildUmap(eqs)
	return
}

// AddToRhs adds -R to global residual vector fb
func (o *Tri3) AddToRhs(fb []float64, sol *ele.Solution) (err error) {
	for i, I := range o.Umap {
		fb[I] -= o.Feff[i]
	}
	return
}

// AddToKb adds element K to global Jacobian matrix Kb
func (o *Tri3) AddToKb(Kb *la.Triplet, sol *ele.Solution, firstIt bool) (err error) {
	for i, I := range o.Umap {
		for j, J := range o.Umap {
			Kb.Put(I, J, o.Keff.At(i, j))
		}
	}
	return
}

// Update computes the trial state from the converged state and the current displacements
func (o *Tri3) Update(sol *ele.Solution) (err error) {

	// displacements and bulk strain
	for i, I := range o.Umap {
		o.d[i] = sol.Y[I]
	}
	εb := make([]float64, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 6; j++ {
			εb[i] += o.B.At(i, j) * o.d[j]
		}
	}

	// localization check (one-shot)
	if !o.Tri.Localized() {
		σ := make([]float64, 3)
		err = o.Mdl.Stress(σ, εb)
		if err != nil {
			return
		}
		σ1, n := solid.PrincipalMax(σ)
		if !o.Crit.Localizes(σ1) {
			o.elastic(εb, σ)
			return
		}
		_, err = o.Tri.Localize(n, o.Crk.CrackOpening(σ1))
		if err != nil {
			return
		}
		copy(o.dprev, o.d)
	}

	// operators
	kin, err := NewKinematics(o.Geo, o.Tri.N, o.Placeholder)
	if err != nil {
		return
	}
	blk, err := Assemble(kin, o.D)
	if err != nil {
		return
	}

	// fully decohesed element
	if o.Tri.Decohesed {
		return o.decohesed(kin, blk)
	}

	// condensation
	err = o.condense(kin, blk)
	if errors.Is(err, ErrSingularSystem) || errors.Is(err, ErrLocalNonConvergence) {
		o.Tri.Decohesed = true
		return o.decohesed(kin, blk)
	}
	return
}

// Commit accepts trial state as converged state
func (o *Tri3) Commit() {
	o.Sta.Set(o.Tri)
	copy(o.EpsC, o.Eps)
	copy(o.SigC, o.Sig)
	copy(o.dcmt, o.dprev)
}

// Restore discards trial state
func (o *Tri3) Restore() {
	o.Tri.Set(o.Sta)
	copy(o.Eps, o.EpsC)
	copy(o.Sig, o.SigC)
	copy(o.dprev, o.dcmt)
}

// OutVals returns the values of the converged state
func (o *Tri3) OutVals(sol *ele.Solution) (res *ele.Output) {
	res = &ele.Output{
		Id:        o.Id(),
		Eps:       []float64{o.EpsC[0], o.EpsC[1], o.EpsC[2]},
		Sig:       []float64{o.SigC[0], o.SigC[1], o.SigC[2]},
		Loc:       o.Sta.Localized(),
		Decohesed: o.Sta.Decohesed,
		Kap:       o.Sta.Kap,
		T:         make([]float64, 2),
		Wjump:     o.Sta.Wjump,
		Sjump:     o.Sta.Sjump,
	}
	if res.Loc {
		res.N = []float64{o.Sta.N[0], o.Sta.N[1]}
		if kin, err := NewKinematics(o.Geo, res.N, o.Placeholder); err == nil {
			res.Tn, _ = kin.NormalStress(res.Sig)
		}
		if !res.Decohesed {
			res.T = o.Crk.Traction(o.Sta.Kap, o.Sta.N)
		}
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// elastic sets results of an element without discontinuity
func (o *Tri3) elastic(εb, σ []float64) {
	o.Keff.Copy(o.Kbb)
	copy(o.Eps, εb)
	copy(o.Sig, σ)
	o.bulkForce(o.Feff, σ)
	copy(o.dprev, o.d)
	o.Nit = 0
}

// decohesed sets results of a fully decohesed element
func (o *Tri3) decohesed(kin *Kinematics, blk *Blocks) (err error) {
	Keff, R, err := Decohese(blk)
	if err != nil {
		return
	}
	var εw float64
	for j := 0; j < 6; j++ {
		εw += R[j] * o.d[j]
	}
	ε, σ, err := o.strainStress(kin, εw, 0)
	if err != nil {
		return
	}
	o.Keff.Copy(Keff)
	copy(o.Eps, ε)
	copy(o.Sig, σ)
	o.bulkForce(o.Feff, σ)
	o.Tri.Wjump = εw
	o.Tri.Sjump = 0
	copy(o.dprev, o.d)
	o.Nit = 0
	return
}

// condense solves the discontinuity equilibrium and condenses the jumps out
//  1) predictor: Δα = -Ktot⁻¹ C Δd  with  Δd = d - d_prev
//  2) corrector: Δα = -Ktot⁻¹ φ     until |φ| ≤ tol ℓ σy
func (o *Tri3) condense(kin *Kinematics, blk *Blocks) (err error) {

	// predictor
	α := []float64{o.Tri.Wjump, o.Tri.Sjump}
	Δd := make([]float64, 6)
	for i := 0; i < 6; i++ {
		Δd[i] = o.d[i] - o.dprev[i]
	}
	cnd, err := NewCondenser(blk, kin.L, o.kq(α[1]), o.CondTol)
	if err != nil {
		return
	}
	Δα, err := cnd.SolveReduced(Δd)
	if err != nil {
		return
	}
	α[0] += Δα[0]
	α[1] += Δα[1]

	// corrector
	tol := o.Tol * kin.L * o.Crk.Sy
	for o.Nit = 0; ; o.Nit++ {

		// residual
		ε, σ, κ, φ, e := o.residual(kin, α)
		if e != nil {
			return e
		}
		cnd, err = NewCondenser(blk, kin.L, o.kq(α[1]), o.CondTol)
		if err != nil {
			return
		}

		// converged
		if math.Abs(φ[0]) <= tol && math.Abs(φ[1]) <= tol {
			fb := make([]float64, 6)
			o.bulkForce(fb, σ)
			var Keff *mat.Dense
			Keff, o.Feff, err = cnd.Condense(fb, φ)
			if err != nil {
				return
			}
			o.Keff.Copy(Keff)
			copy(o.Eps, ε)
			copy(o.Sig, σ)
			o.Tri.Wjump, o.Tri.Sjump = α[0], α[1]
			o.Tri.Kap = κ // κ ≥ converged κ by construction
			copy(o.dprev, o.d)
			return
		}
		if o.Nit == o.NmaxIt {
			return chk.Err("efem-tri3 %d: |φ| = %g > %g after %d iterations: %w", o.Id(), math.Max(math.Abs(φ[0]), math.Abs(φ[1])), tol, o.Nit, ErrLocalNonConvergence)
		}

		// update jumps
		Δα, err = cnd.SolveLocal(φ)
		if err != nil {
			return
		}
		α[0] += Δα[0]
		α[1] += Δα[1]
	}
}

// residual computes the strain, stress, opening and residual of discontinuity equilibrium
//
//   φw = A Gwᵀ σ
//   φs = A Gsᵀ σ + ℓ (σy - q(κ))
//
func (o *Tri3) residual(kin *Kinematics, α []float64) (ε, σ []float64, κ float64, φ []float64, err error) {
	ε, σ, err = o.strainStress(kin, α[0], α[1])
	if err != nil {
		return
	}
	κ = o.kappa(α[1])
	φ = make([]float64, 2)
	for i := 0; i < 3; i++ {
		φ[0] += kin.A * kin.Gw.At(i, 0) * σ[i]
		φ[1] += kin.A * kin.Gs.At(i, 0) * σ[i]
	}
	φ[1] += kin.L * o.Crk.ConsumedStress(κ)
	return
}

// strainStress computes ε = B d + Gw ε̃ + Gs ũ and σ = D ε
func (o *Tri3) strainStress(kin *Kinematics, εw, ũ float64) (ε, σ []float64, err error) {
	ε = make([]float64, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 6; j++ {
			ε[i] += kin.B.At(i, j) * o.d[j]
		}
		ε[i] += kin.Gw.At(i, 0)*εw + kin.Gs.At(i, 0)*ũ
	}
	σ = make([]float64, 3)
	err = o.Mdl.Stress(σ, ε)
	return
}

// kappa returns the opening for a given strong jump; never below the converged value
func (o *Tri3) kappa(ũ float64) float64 {
	return math.Max(o.Sta.Kap, o.Tri.Kap0+math.Abs(ũ))
}

// kq returns ∂(σy - q)/∂ũ = Kq(κ) ∂κ/∂ũ; zero while the opening stays below the converged one
func (o *Tri3) kq(ũ float64) *mat.Dense {
	Kq := o.Crk.Kq(o.kappa(ũ), 1)
	switch {
	case o.Tri.Kap0+math.Abs(ũ) <= o.Sta.Kap:
		Kq.Set(0, 0, 0)
	case ũ < 0:
		Kq.Set(0, 0, -Kq.At(0, 0))
	}
	return Kq
}

// bulkForce computes fb = A Bᵀ σ
func (o *Tri3) bulkForce(fb, σ []float64) {
	for j := 0; j < 6; j++ {
		fb[j] = 0
		for i := 0; i < 3; i++ {
			fb[j] += o.Geo.A * o.B.At(i, j) * σ[i]
		}
	}
}
