// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Escoastin/Embedded-Finite-Element-Method/ele"
	"github.com/Escoastin/Embedded-Finite-Element-Method/fem"
	"github.com/Escoastin/Embedded-Finite-Element-Method/mdl/crack"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// twoSteps returns a summary with one elastic and one localized step of a single element
func twoSteps() *fem.Summary {
	return &fem.Summary{
		Steps: []*fem.StepOut{
			{
				Lambda: 0.5,
				U:      []float64{0, 0, 1e-3, 0},
				Elems: []*ele.Output{
					{Id: 3, Eps: []float64{1e-3, 0, 0}, Sig: []float64{1e7, 2e6, 0}},
				},
			},
			{
				Lambda: 1,
				U:      []float64{0, 0, 4e-3, -1e-4},
				Elems: []*ele.Output{
					{Id: 3, Eps: []float64{4e-3, 0, 0}, Sig: []float64{2e7, 1e6, 3e5}, Loc: true,
						Kap: 2e-3, T: []float64{5e4, 0}, Tn: -4e2, N: []float64{1, 0}, Wjump: -1e-3, Sjump: 2e-3},
				},
			},
		},
		Nits: []int{1, 3},
	}
}

func Test_results01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("results01")

	_, err := NewResults(new(fem.Summary))
	require.Error(tst, err)

	res, err := NewResults(twoSteps())
	require.NoError(tst, err)
	chk.Int(tst, "ny", res.Ny, 4)
	chk.Array(tst, "λ", 1e-17, res.Lambdas(), []float64{0.5, 1})

	require.NoError(tst, res.Define("B", Dof{2}))
	require.NoError(tst, res.Define("elem", Cell{3}))

	u, err := res.GetRes("u", "B")
	require.NoError(tst, err)
	chk.Array(tst, "u", 1e-17, u, []float64{1e-3, 4e-3})

	for key, correct := range map[string][]float64{
		"κ":   {0, 2e-3},
		"w":   {0, -1e-3},
		"s":   {0, 2e-3},
		"Tx":  {0, 5e4},
		"Ty":  {0, 0},
		"tn":  {0, -4e2},
		"σxx": {1e7, 2e7},
		"σyy": {2e6, 1e6},
		"σxy": {0, 3e5},
		"εxx": {1e-3, 4e-3},
		"εyy": {0, 0},
		"εxy": {0, 0},
		"loc": {0, 1},
	} {
		vals, err := res.GetRes(key, "elem")
		require.NoError(tst, err)
		chk.Array(tst, key, 1e-17, vals, correct)
	}
}

func Test_results02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("results02")

	res, err := NewResults(twoSteps())
	require.NoError(tst, err)

	require.ErrorIs(tst, res.Define("A", Dof{4}), ErrUnknownKey)
	require.ErrorIs(tst, res.Define("A", Dof{-1}), ErrUnknownKey)
	require.ErrorIs(tst, res.Define("A", Cell{0}), ErrUnknownKey)
	require.NoError(tst, res.Define("A", Dof{0}))
	require.NoError(tst, res.Define("E", Cell{3}))

	_, err = res.GetRes("u", "none")
	require.ErrorIs(tst, err, ErrUnknownKey)
	_, err = res.GetRes("κ", "A")
	require.ErrorIs(tst, err, ErrUnknownKey)
	_, err = res.GetRes("pl", "E")
	require.ErrorIs(tst, err, ErrUnknownKey)

	require.Error(tst, res.Plot([]float64{0, 1}, []float64{0, 1, 2}, "bad"))
	require.Error(tst, res.Plot(1.0, "κ", "E"))
}

func Test_softening01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("softening01")

	law := new(crack.Exponential)
	require.NoError(tst, law.Set(30e6, 700))

	κ, q := Softening(law, 1e-4, 11)
	require.Len(tst, κ, 11)
	chk.Float64(tst, "κ0", 1e-17, κ[0], 0)
	chk.Float64(tst, "κf", 1e-17, κ[10], 1e-4)
	chk.Float64(tst, "q0", 1e-8, q[0], 30e6)
	for i := 1; i < len(q); i++ {
		if q[i] >= q[i-1] {
			tst.Errorf("softening stress must decrease: q[%d]=%g ≥ q[%d]=%g", i, q[i], i-1, q[i-1])
		}
	}
}

func Test_plot01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("plot01")

	res, err := Start("../fem/data/shear.sim", chk.Verbose)
	require.NoError(tst, err)
	require.NoError(tst, res.Define("A", Dof{4}))
	require.NoError(tst, res.Define("e0", Cell{0}))
	require.NoError(tst, res.Define("e1", Cell{1}))

	κ, err := res.GetRes("κ", "e0")
	require.NoError(tst, err)
	chk.Array(tst, "κ", 1e-12, κ, []float64{0.010449937858491793})

	res.Splot("lu", "load-displacement")
	require.NoError(tst, res.Plot("u", "λ", "A"))
	res.SplotConfig("m", "", 1e3, 1)

	res.Splot("kap", "crack opening")
	require.NoError(tst, res.Plot("λ", "κ", "e0"))
	require.NoError(tst, res.Plot("λ", "κ", "e1"))

	res.Splot("law", "softening")
	law := new(crack.Exponential)
	require.NoError(tst, law.Set(30e6, 700))
	x, y := Softening(law, 2e-4, 21)
	require.NoError(tst, res.Plot(x, y, "exponential"))

	chk.String(tst, res.Splots[0].Xlbl, "u [m]")
	chk.String(tst, res.Splots[0].Ylbl, "λ")

	dirout := tst.TempDir()
	_, err = res.Draw(dirout, "shear")
	require.Error(tst, err)

	for _, fname := range []string{"shear.png", "shear.svg"} {
		files, err := res.Draw(dirout, fname)
		require.NoError(tst, err)
		require.Len(tst, files, 3)
		ext := filepath.Ext(fname)
		chk.String(tst, files[0], filepath.Join(dirout, "shear_lu"+ext))
		for _, fn := range files {
			info, err := os.Stat(fn)
			require.NoError(tst, err)
			require.Greater(tst, info.Size(), int64(0))
		}
	}
}
