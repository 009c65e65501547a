// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// Solution holds the solution data @ nodes.
//
//        / ux0 \
//        | uy0 |
//   y =  | ux1 |   (ny = 2 nverts)
//        |  ⋮  |
//        \ uyN /
//
type Solution struct {
	T  float64   // current load factor λ ∈ [0, 1]
	Y  []float64 // DOFs (solution variables): displacements
	ΔY []float64 // total increment within current load step (for nonlinear solver)
}

// NewSolution allocates a new solution structure
func NewSolution(ny int) *Solution {
	return &Solution{Y: make([]float64, ny), ΔY: make([]float64, ny)}
}

// Reset clear values
func (o *Solution) Reset() {
	o.T = 0
	for i := 0; i < len(o.Y); i++ {
		o.Y[i] = 0
		o.ΔY[i] = 0
	}
}

// GetCopy returns a copy of this solution
func (o Solution) GetCopy() *Solution {
	s := NewSolution(len(o.Y))
	s.Set(&o)
	return s
}

// Set sets this solution with another one
func (o *Solution) Set(s *Solution) {
	o.T = s.T
	copy(o.Y, s.Y)
	copy(o.ΔY, s.ΔY)
}
