// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/Escoastin/Embedded-Finite-Element-Method/ele"
	"github.com/Escoastin/Embedded-Finite-Element-Method/inp"
	"github.com/Escoastin/Embedded-Finite-Element-Method/mdl/solid"
	"github.com/Escoastin/Embedded-Finite-Element-Method/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// LinearResults holds the results of a linear elastic analysis
type LinearResults struct {
	U   []float64   // [ny] displacements
	Eps [][]float64 // [ncells][3] strains
	Sig [][]float64 // [ncells][3] stresses
}

// SolveLinear solves the linear elastic problem of an intact mesh of constant strain triangles
//  Input:
//   msh    -- mesh
//   mdl    -- elastic model used by all cells
//   F      -- [2 nverts] load vector
//   fixed  -- fixed equations: 2・vid + {0:ux, 1:uy}
//   linsol -- linear solver; nil => LU
func SolveLinear(msh *inp.Mesh, mdl solid.Small, F []float64, fixed []int, linsol LinSolver) (res *LinearResults, err error) {

	// check
	ny := 2 * len(msh.Verts)
	if len(F) != ny {
		return nil, chk.Err("load vector must have %d components. len(F)=%d is invalid", ny, len(F))
	}
	if linsol == nil {
		linsol = new(LinSolLU)
	}
	D := mat.NewDense(3, 3, nil)
	err = mdl.CalcD(D)
	if err != nil {
		return
	}

	// assemble
	Bs := make([]*mat.Dense, len(msh.Cells))
	umaps := make([][]int, len(msh.Cells))
	Kb := new(la.Triplet)
	Kb.Init(ny, ny, 36*len(msh.Cells))
	for i, cell := range msh.Cells {
		geo, e := shp.NewTri3(ele.BuildCoordsMatrix(cell, msh))
		if e != nil {
			return nil, chk.Err("cell %d: %w", cell.Id, e)
		}
		Bs[i] = geo.Bmatrix()
		var DB, K mat.Dense
		DB.Mul(D, Bs[i])
		K.Mul(Bs[i].T(), &DB)
		umaps[i] = make([]int, 6)
		for m, v := range cell.Verts {
			umaps[i][2*m] = 2 * v
			umaps[i][2*m+1] = 2*v + 1
		}
		for r, I := range umaps[i] {
			for c, J := range umaps[i] {
				Kb.Put(I, J, geo.A*K.At(r, c))
			}
		}
	}

	// constraints
	fix, err := NewFixedDofs(fixed, ny)
	if err != nil {
		return
	}
	Kd := Kb.ToDense()
	K := mat.NewDense(ny, ny, nil)
	for i := 0; i < ny; i++ {
		for j := 0; j < ny; j++ {
			K.Set(i, j, Kd.Get(i, j))
		}
	}
	R := make([]float64, ny)
	copy(R, F)
	fix.Apply(K, R)

	// solve
	res = &LinearResults{U: make([]float64, ny)}
	err = linsol.Solve(res.U, K, R)
	if err != nil {
		return nil, err
	}

	// strains and stresses
	for i := range msh.Cells {
		ε := make([]float64, 3)
		for r := 0; r < 3; r++ {
			for c, I := range umaps[i] {
				ε[r] += Bs[i].At(r, c) * res.U[I]
			}
		}
		σ := make([]float64, 3)
		err = mdl.Stress(σ, ε)
		if err != nil {
			return nil, err
		}
		res.Eps = append(res.Eps, ε)
		res.Sig = append(res.Sig, σ)
	}
	return
}
