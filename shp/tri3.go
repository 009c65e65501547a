// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements the geometry of constant strain triangles
package shp

import (
	"errors"
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// ErrDegenerateElement is returned when the area of an element is null or nearly null
var ErrDegenerateElement = errors.New("degenerate element")

// AreaTol is the tolerance for null areas relative to the squared length of the longest edge
const AreaTol = 1e-12

// Tri3 holds the geometry of a 3-node linear triangle
//
//   N_i = (a_i + b_i x + c_i y) / (2 A)
//
//   b = [y1-y2, y2-y0, y0-y1]
//   c = [x2-x1, x0-x2, x1-x0]
//
type Tri3 struct {
	X  [][]float64 // [2][3] coordinates; X[dim][node]
	A  float64     // area (positive)
	A2 float64     // twice the signed area; positive if nodes are counter-clockwise
	Ac []float64   // [3] a_i
	Bc []float64   // [3] b_i
	Cc []float64   // [3] c_i
	Xc []float64   // [2] centroid
	L  float64     // length of longest edge
}

// NewTri3 returns the geometry of a triangle
//  Input:
//   x -- [2][3] coordinates matrix: x[dim][node]
func NewTri3(x [][]float64) (o *Tri3, err error) {

	// check
	if len(x) != 2 || len(x[0]) != 3 || len(x[1]) != 3 {
		return nil, chk.Err("tri3: coordinates matrix must be 2x3")
	}

	// coefficients
	o = new(Tri3)
	o.X = x
	x0, x1, x2 := x[0][0], x[0][1], x[0][2]
	y0, y1, y2 := x[1][0], x[1][1], x[1][2]
	o.Ac = []float64{x1*y2 - x2*y1, x2*y0 - x0*y2, x0*y1 - x1*y0}
	o.Bc = []float64{y1 - y2, y2 - y0, y0 - y1}
	o.Cc = []float64{x2 - x1, x0 - x2, x1 - x0}
	o.Xc = []float64{(x0 + x1 + x2) / 3.0, (y0 + y1 + y2) / 3.0}

	// area (shoelace)
	o.A2 = x0*(y1-y2) + x1*(y2-y0) + x2*(y0-y1)
	o.A = math.Abs(o.A2) / 2.0

	// degenerate?
	for i := 0; i < 3; i++ {
		o.L = math.Max(o.L, math.Hypot(o.Bc[i], o.Cc[i])) // edge opposite to node i
	}
	if o.A2 == 0 || math.Abs(o.A2) <= AreaTol*o.L*o.L {
		return nil, chk.Err("tri3: area A=%g of triangle %v is null: %w", o.A, x, ErrDegenerateElement)
	}
	return
}

// Area returns the (positive) area of a triangle
func Area(x [][]float64) (A float64, err error) {
	o, err := NewTri3(x)
	if err != nil {
		return
	}
	return o.A, nil
}

// Bmatrix returns the strain-displacement matrix of a triangle
func Bmatrix(x [][]float64) (B *mat.Dense, err error) {
	o, err := NewTri3(x)
	if err != nil {
		return
	}
	return o.Bmatrix(), nil
}

// S computes the shape functions at point p
func (o Tri3) S(S, p []float64) {
	for i := 0; i < 3; i++ {
		S[i] = (o.Ac[i] + o.Bc[i]*p[0] + o.Cc[i]*p[1]) / o.A2
	}
}

// G returns the gradients of shape functions: G[node][dim] = dN_node/dx_dim
func (o Tri3) G() (G [][]float64) {
	G = make([][]float64, 3)
	for i := 0; i < 3; i++ {
		G[i] = []float64{o.Bc[i] / o.A2, o.Cc[i] / o.A2}
	}
	return
}

// Bmatrix returns the 3x6 strain-displacement matrix in Voigt form
//
//         1   [ b0  0  b1  0  b2  0 ]
//   B = ----- [ 0  c0  0  c1  0  c2 ]
//        2A   [ c0 b0  c1 b1  c2 b2 ]
//
//  Note: the signed area is used; thus clockwise connectivity gives the same strains
func (o Tri3) Bmatrix() (B *mat.Dense) {
	B = mat.NewDense(3, 6, nil)
	for i := 0; i < 3; i++ {
		b, c := o.Bc[i]/o.A2, o.Cc[i]/o.A2
		B.Set(0, 2*i, b)
		B.Set(1, 2*i+1, c)
		B.Set(2, 2*i, c)
		B.Set(2, 2*i+1, b)
	}
	return
}

// CrackSegment computes the intersection of the triangle with the line through the centroid
// that is perpendicular to n
//  Output:
//   ℓ    -- length of segment
//   plus -- nodes on the positive side: (x - xc)・n > 0
//   pts  -- [2][2] end points of the segment
func (o Tri3) CrackSegment(n []float64) (ℓ float64, plus []int, pts [][]float64) {

	// signed distances
	tol := 1e-12 * o.L
	s := make([]float64, 3)
	for i := 0; i < 3; i++ {
		s[i] = (o.X[0][i]-o.Xc[0])*n[0] + (o.X[1][i]-o.Xc[1])*n[1]
		if math.Abs(s[i]) <= tol {
			s[i] = 0
			pts = append(pts, []float64{o.X[0][i], o.X[1][i]})
		}
		if s[i] > 0 {
			plus = append(plus, i)
		}
	}

	// edges crossed by the line
	for i := 0; i < 3; i++ {
		j := (i + 1) % 3
		if s[i]*s[j] < 0 {
			t := s[i] / (s[i] - s[j])
			pts = append(pts, []float64{
				o.X[0][i] + t*(o.X[0][j]-o.X[0][i]),
				o.X[1][i] + t*(o.X[1][j]-o.X[1][i]),
			})
		}
	}
	if len(pts) > 1 {
		ℓ = math.Hypot(pts[1][0]-pts[0][0], pts[1][1]-pts[0][1])
	}
	return
}
