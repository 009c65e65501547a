// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package efem implements constant strain triangles with embedded weak and strong
// discontinuities (cracks) and the element-level static condensation of the jump DOFs
package efem

import (
	"errors"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// errors
var (
	ErrShapeMismatch       = errors.New("operator shape mismatch")
	ErrSingularSystem      = errors.New("singular discontinuity system")
	ErrLocalNonConvergence = errors.New("discontinuity equilibrium did not converge")
)

// Operator holds a dense matrix with declared dimensions
type Operator struct {
	Name string     // name for messages; e.g. "B", "Gw"
	Rows int        // declared number of rows
	Cols int        // declared number of columns
	M    *mat.Dense // values
}

// NewOperator returns a new operator
//  data -- row-major values; use nil for zeros
func NewOperator(name string, rows, cols int, data []float64) (o *Operator, err error) {
	if rows < 1 || cols < 1 {
		return nil, chk.Err("operator %s: %dx%d: %w", name, rows, cols, ErrShapeMismatch)
	}
	if data != nil && len(data) != rows*cols {
		return nil, chk.Err("operator %s: %dx%d cannot hold %d values: %w", name, rows, cols, len(data), ErrShapeMismatch)
	}
	return &Operator{name, rows, cols, mat.NewDense(rows, cols, data)}, nil
}

// WrapOperator returns an operator holding a copy of m, which must be rows×cols
func WrapOperator(name string, rows, cols int, m mat.Matrix) (o *Operator, err error) {
	r, c := m.Dims()
	if r != rows || c != cols {
		return nil, chk.Err("operator %s: declared %dx%d but matrix is %dx%d: %w", name, rows, cols, r, c, ErrShapeMismatch)
	}
	return &Operator{name, rows, cols, mat.DenseCopyOf(m)}, nil
}

// Check checks whether the operator has the given dimensions
func (o *Operator) Check(rows, cols int) (err error) {
	r, c := o.M.Dims()
	if o.Rows != rows || o.Cols != cols || r != rows || c != cols {
		return chk.Err("operator %s: expected %dx%d but got %dx%d: %w", o.Name, rows, cols, r, c, ErrShapeMismatch)
	}
	return
}

// At returns an entry
func (o *Operator) At(i, j int) float64 {
	return o.M.At(i, j)
}

// Scale returns α・o
func (o *Operator) Scale(name string, α float64) *Operator {
	res := &Operator{name, o.Rows, o.Cols, mat.NewDense(o.Rows, o.Cols, nil)}
	res.M.Scale(α, o.M)
	return res
}

// T returns the transpose
func (o *Operator) T(name string) *Operator {
	return &Operator{name, o.Cols, o.Rows, mat.DenseCopyOf(o.M.T())}
}

// Mul returns α・a・b
func Mul(name string, α float64, a, b *Operator) (c *Operator, err error) {
	if err = a.Check(a.Rows, a.Cols); err != nil {
		return
	}
	if err = b.Check(b.Rows, b.Cols); err != nil {
		return
	}
	if a.Cols != b.Rows {
		return nil, chk.Err("%s = %s・%s: %dx%d times %dx%d: %w", name, a.Name, b.Name, a.Rows, a.Cols, b.Rows, b.Cols, ErrShapeMismatch)
	}
	c = &Operator{name, a.Rows, b.Cols, mat.NewDense(a.Rows, b.Cols, nil)}
	c.M.Mul(a.M, b.M)
	if α != 1 {
		c.M.Scale(α, c.M)
	}
	return
}

// Triple returns α・aᵀ・d・b
func Triple(name string, α float64, a, d, b *Operator) (c *Operator, err error) {
	db, err := Mul(d.Name+b.Name, 1, d, b)
	if err != nil {
		return
	}
	return Mul(name, α, a.T(a.Name+"ᵀ"), db)
}

// Add returns a + β・b
func Add(name string, a *Operator, β float64, b *Operator) (c *Operator, err error) {
	if err = b.Check(a.Rows, a.Cols); err != nil {
		return
	}
	if err = a.Check(b.Rows, b.Cols); err != nil {
		return
	}
	c = &Operator{name, a.Rows, a.Cols, mat.NewDense(a.Rows, a.Cols, nil)}
	c.M.Scale(β, b.M)
	c.M.Add(a.M, c.M)
	return
}

// MulVec returns y = o・x
func (o *Operator) MulVec(x []float64) (y []float64, err error) {
	if err = o.Check(o.Rows, o.Cols); err != nil {
		return
	}
	if len(x) != o.Cols {
		return nil, chk.Err("%s・x: %dx%d times vector of size %d: %w", o.Name, o.Rows, o.Cols, len(x), ErrShapeMismatch)
	}
	y = make([]float64, o.Rows)
	var v mat.VecDense
	v.MulVec(o.M, mat.NewVecDense(len(x), x))
	for i := range y {
		y[i] = v.AtVec(i)
	}
	return
}
