// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// ErrSingularMatrix is returned when the global Jacobian cannot be factorised
var ErrSingularMatrix = errors.New("singular global matrix")

// LinSolver solves the global linear system K・x = b with a direct method
type LinSolver interface {
	Solve(x []float64, K *mat.Dense, b []float64) (err error)
}

// GetSolver returns a linear solver by name
//  name -- "lu" or "chol"
func GetSolver(name string) (LinSolver, error) {
	switch name {
	case "", "lu":
		return new(LinSolLU), nil
	case "chol":
		return new(LinSolChol), nil
	}
	return nil, chk.Err("cannot find linear solver named %q", name)
}

// LinSolLU implements a dense LU solver
type LinSolLU struct {
	lu mat.LU
}

// Solve solves K・x = b
func (o *LinSolLU) Solve(x []float64, K *mat.Dense, b []float64) (err error) {
	n, err := checkSystem(x, K, b)
	if err != nil {
		return
	}
	o.lu.Factorize(K)
	if o.lu.Det() == 0 {
		return chk.Err("lu: zero determinant: %w", ErrSingularMatrix)
	}
	var v mat.VecDense
	err = o.lu.SolveVecTo(&v, false, mat.NewVecDense(n, b))
	if err != nil {
		return chk.Err("lu: %v: %w", err, ErrSingularMatrix)
	}
	for i := 0; i < n; i++ {
		x[i] = v.AtVec(i)
	}
	return
}

// LinSolChol implements a dense Cholesky solver; K must be symmetric positive-definite
type LinSolChol struct {
	ch mat.Cholesky
}

// Solve solves K・x = b
func (o *LinSolChol) Solve(x []float64, K *mat.Dense, b []float64) (err error) {
	n, err := checkSystem(x, K, b)
	if err != nil {
		return
	}
	S := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			S.SetSym(i, j, K.At(i, j))
		}
	}
	if ok := o.ch.Factorize(S); !ok {
		return chk.Err("chol: matrix is not positive-definite: %w", ErrSingularMatrix)
	}
	var v mat.VecDense
	err = o.ch.SolveVecTo(&v, mat.NewVecDense(n, b))
	if err != nil {
		return chk.Err("chol: %v: %w", err, ErrSingularMatrix)
	}
	for i := 0; i < n; i++ {
		x[i] = v.AtVec(i)
	}
	return
}

// checkSystem checks dimensions
func checkSystem(x []float64, K *mat.Dense, b []float64) (n int, err error) {
	r, c := K.Dims()
	if r != c || len(x) != r || len(b) != r {
		return 0, chk.Err("linear system: K is %dx%d, len(x)=%d, len(b)=%d", r, c, len(x), len(b))
	}
	return r, nil
}
