// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/Escoastin/Embedded-Finite-Element-Method/inp"
	"github.com/cpmech/gosl/utl"
)

// BuildCoordsMatrix returns the coordinate matrix of a particular Cell
func BuildCoordsMatrix(cell *inp.Cell, msh *inp.Mesh) (x [][]float64) {
	x = utl.Alloc(msh.Ndim, len(cell.Verts))
	for i := 0; i < msh.Ndim; i++ {
		for j, v := range cell.Verts {
			x[i][j] = msh.Verts[v].C[i]
		}
	}
	return
}

// BuildUmap returns the map of local displacement DOFs to global equations
//  Input:
//   eqs -- [nverts][2] equation numbers
//  Output:
//   umap -- [2 nverts] ux0, uy0, ux1, uy1, ...
func BuildUmap(eqs [][]int) (umap []int) {
	for _, e := range eqs {
		umap = append(umap, e...)
	}
	return
}
