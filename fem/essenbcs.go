// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// FixedDofs holds equations with prescribed zero displacement
//  The constraints are enforced by elimination:
//
//      [ K_ff  0 ] / δy_f \   / R_f \
//      [         ] |      | = |     |
//      [  0    1 ] \ δy_c /   \  0  /
//
//  i.e. rows and columns of constrained equations are zeroed, the diagonal is set to 1 and the
//  right-hand side is set to 0
type FixedDofs struct {
	Eqs   []int  // sorted constrained equations
	fixed []bool // [ny] equation is constrained
}

// NewFixedDofs returns a new structure with constrained equations
func NewFixedDofs(eqs []int, ny int) (o *FixedDofs, err error) {
	o = &FixedDofs{fixed: make([]bool, ny)}
	for _, eq := range eqs {
		if eq < 0 || eq >= ny {
			return nil, chk.Err("fixed equation %d is out of range [0, %d)", eq, ny)
		}
		if !o.fixed[eq] {
			o.fixed[eq] = true
			o.Eqs = append(o.Eqs, eq)
		}
	}
	sort.Ints(o.Eqs)
	return
}

// IsFixed tells whether an equation is constrained
func (o *FixedDofs) IsFixed(eq int) bool {
	return o.fixed[eq]
}

// Apply modifies K and R such that δy = 0 at constrained equations
func (o *FixedDofs) Apply(K *mat.Dense, R []float64) {
	n, _ := K.Dims()
	for _, eq := range o.Eqs {
		for i := 0; i < n; i++ {
			K.Set(eq, i, 0)
			K.Set(i, eq, 0)
		}
		K.Set(eq, eq, 1)
	}
	o.ZeroRhs(R)
}

// ZeroRhs sets R = 0 at constrained equations
func (o *FixedDofs) ZeroRhs(R []float64) {
	for _, eq := range o.Eqs {
		R[eq] = 0
	}
}
