// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_tri3_01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tri3_01")

	x := [][]float64{
		{0, 1, 1},
		{0, 0, 1},
	}
	o, err := NewTri3(x)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.Float64(tst, "A", 1e-15, o.A, 0.5)
	chk.Array(tst, "xc", 1e-15, o.Xc, []float64{2.0 / 3.0, 1.0 / 3.0})
	CheckShape(tst, o, 1e-14, chk.Verbose)

	B := o.Bmatrix()
	io.Pforan("B = %v\n", mat.Formatted(B, mat.Prefix("    ")))
	chk.Deep2(tst, "B", 1e-15, dense2slices(B), [][]float64{
		{-1, 0, 1, 0, 0, 0},
		{0, 0, 0, -1, 0, 1},
		{0, -1, -1, 1, 1, 0},
	})

	A, err := Area(x)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.Float64(tst, "Area", 1e-15, A, 0.5)
}

func Test_tri3_02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tri3_02. clockwise connectivity")

	// u = (x, 0) => εxx = 1 regardless of ordering
	for _, x := range [][][]float64{
		{{0, 1, 1}, {0, 0, 1}},
		{{0, 1, 1}, {0, 1, 0}},
	} {
		B, err := Bmatrix(x)
		if err != nil {
			tst.Errorf("test failed: %v\n", err)
			return
		}
		d := mat.NewVecDense(6, []float64{x[0][0], 0, x[0][1], 0, x[0][2], 0})
		var ε mat.VecDense
		ε.MulVec(B, d)
		chk.Array(tst, "ε", 1e-15, ε.RawVector().Data, []float64{1, 0, 0})

		A, _ := Area(x)
		chk.Float64(tst, "A", 1e-15, A, 0.5)
	}
}

func Test_tri3_03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tri3_03. degenerate")

	for _, x := range [][][]float64{
		{{0, 1, 2}, {0, 1, 2}},
		{{0, 0, 0}, {0, 0, 0}},
		{{0, 1, 0.5}, {0, 0, 1e-14}},
	} {
		_, err := Area(x)
		require.ErrorIs(tst, err, ErrDegenerateElement)
		_, err = Bmatrix(x)
		require.ErrorIs(tst, err, ErrDegenerateElement)
	}

	_, err := NewTri3([][]float64{{0, 1}, {0, 1}})
	if err == nil {
		tst.Errorf("wrong coordinates matrix must fail\n")
	}
}

func Test_tri3_04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tri3_04. crack segment")

	o, _ := NewTri3([][]float64{{0, 1, 1}, {0, 0, 1}})
	ℓ, plus, pts := o.CrackSegment([]float64{1, 0})
	io.Pforan("ℓ = %v  plus = %v  pts = %v\n", ℓ, plus, pts)
	chk.Float64(tst, "ℓ", 1e-15, ℓ, 2.0/3.0)
	chk.Ints(tst, "plus", plus, []int{1, 2})

	o, _ = NewTri3([][]float64{{0, 1, 0}, {0, 0, 1}})
	ℓ, plus, _ = o.CrackSegment([]float64{1, 0})
	chk.Float64(tst, "ℓ", 1e-15, ℓ, 2.0/3.0)
	chk.Ints(tst, "plus", plus, []int{1})

	// line through a vertex
	o, _ = NewTri3([][]float64{{0, 2, 1}, {0, 0, 3}})
	ℓ, plus, _ = o.CrackSegment([]float64{1, 0})
	chk.Float64(tst, "ℓ", 1e-15, ℓ, 3)
	chk.Ints(tst, "plus", plus, []int{1})
}

func dense2slices(a mat.Matrix) (res [][]float64) {
	r, c := a.Dims()
	res = make([][]float64, r)
	for i := 0; i < r; i++ {
		res[i] = make([]float64, c)
		for j := 0; j < c; j++ {
			res[i][j] = a.At(i, j)
		}
	}
	return
}
