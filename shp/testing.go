// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/io"
)

// CheckShape checks that shape functions evaluate to 1.0 @ nodes, sum to one @ the centroid
// and that their gradients sum to zero
func CheckShape(tst *testing.T, o *Tri3, tol float64, verbose bool) {

	// loop over all vertices
	errS := 0.0
	S := make([]float64, 3)
	for n := 0; n < 3; n++ {

		// compute function @ vertex
		o.S(S, []float64{o.X[0][n], o.X[1][n]})

		// check
		if verbose {
			io.Pf("S = %v\n", S)
		}
		for m := 0; m < 3; m++ {
			if n == m {
				errS += math.Abs(S[m] - 1.0)
			} else {
				errS += math.Abs(S[m])
			}
		}
	}

	// partition of unity
	o.S(S, o.Xc)
	errS += math.Abs(S[0] + S[1] + S[2] - 1.0)

	// gradients
	G := o.G()
	for d := 0; d < 2; d++ {
		errS += math.Abs(G[0][d]+G[1][d]+G[2][d]) * o.L
	}

	// error
	if errS > tol {
		tst.Errorf("tri3 failed with err = %g\n", errS)
		return
	}
}
