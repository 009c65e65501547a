// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/Escoastin/Embedded-Finite-Element-Method/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// elastic solution of square.sim
var (
	squareU = []float64{0, 0, 6.177304964539007e-08, 1.936170212765958e-08, 4.7943262411347514e-08, -5.531914893617018e-09, 0, 0}
	squareε = [][]float64{
		{6.177304964539007e-08, -2.48936170212766e-08, 5.531914893617025e-09},
		{4.7943262411347514e-08, 0, -5.531914893617018e-09},
	}
	squareσ = [][]float64{
		{2063.829787234042, 63.82978723404244, 63.829787234042605},
		{1936.170212765957, 829.7872340425531, -63.82978723404253},
	}
)

// newShear reads shear.sim and allows changes of solver data before allocating the domain
func newShear(tst *testing.T, modify func(s *inp.SolverData)) *Main {
	sim, err := inp.ReadSim("data/shear.sim", "", false, false)
	require.NoError(tst, err)
	if modify != nil {
		modify(&sim.Solver)
	}
	main, err := NewMainSim(sim, false, chk.Verbose)
	require.NoError(tst, err)
	return main
}

func Test_imp01(tst *testing.T) {

	/*  unit square; left side fixed; 1000 N pulling each right node
	 *
	 *     3 o---------o 2  --> 1000
	 *       |       / |
	 *       |  1  /   |
	 *       |   /  0  |
	 *       | /       |
	 *     0 o---------o 1  --> 1000
	 */

	//verbose()
	chk.PrintTitle("imp01")

	main, err := NewMain("data/square.sim", "", true, true, chk.Verbose)
	require.NoError(tst, err)
	solver := main.Solver.(*SolverImplicit)
	solver.Trace = []StepState{}
	err = main.Run()
	require.NoError(tst, err)

	// states
	require.Equal(tst, []StepState{Idle, Predicting, Condensing, GlobalSolving, Iterating, Checking, Condensing, Converged}, solver.Trace)
	chk.String(tst, solver.State.String(), "converged")

	// displacements
	sum := main.Summary
	require.Len(tst, sum.Steps, 1)
	chk.Float64(tst, "λ", 1e-17, sum.Last().Lambda, 1)
	chk.Array(tst, "U", 1e-17, sum.Last().U, squareU)
	chk.Ints(tst, "nits", sum.Nits, []int{1})
	chk.Int(tst, "ncut", sum.Ncut, 0)

	// elements stay elastic
	for i, r := range sum.Last().Elems {
		io.Pforan("%d: ε = %v  σ = %v\n", r.Id, r.Eps, r.Sig)
		chk.Int(tst, "id", r.Id, i)
		chk.Array(tst, io.Sf("ε%d", i), 1e-19, r.Eps, squareε[i])
		chk.Array(tst, io.Sf("σ%d", i), 1e-9, r.Sig, squareσ[i])
		chk.Array(tst, io.Sf("T%d", i), 1e-17, r.T, []float64{0, 0})
		if r.Loc || r.Decohesed || r.Kap != 0 || r.N != nil {
			tst.Errorf("element %d must not be localized\n", i)
		}
	}

	// summary file
	res, err := ReadSummary(main.Sim.DirOut, main.Sim.Key, main.Sim.EncType)
	require.NoError(tst, err)
	require.Len(tst, res.Steps, 1)
	chk.Array(tst, "U (file)", 1e-17, res.Steps[0].U, squareU)
	chk.Array(tst, "σ0 (file)", 1e-9, res.Steps[0].Elems[0].Sig, squareσ[0])
}

func Test_imp02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("imp02")

	sim, err := inp.ReadSim("data/square.sim", "", false, false)
	require.NoError(tst, err)
	mdl := sim.Materials[0].Solid

	for _, name := range []string{"lu", "chol"} {
		linsol, err := GetSolver(name)
		require.NoError(tst, err)
		res, err := SolveLinear(sim.Mesh, mdl, sim.Loads.F, sim.Loads.Fixed, linsol)
		require.NoError(tst, err)
		io.Pforan("%s: U = %v\n", name, res.U)
		chk.Array(tst, name+": U", 1e-17, res.U, squareU)
		for i := range sim.Mesh.Cells {
			chk.Array(tst, io.Sf("%s: ε%d", name, i), 1e-19, res.Eps[i], squareε[i])
			chk.Array(tst, io.Sf("%s: σ%d", name, i), 1e-9, res.Sig[i], squareσ[i])
		}
	}

	// the nonlinear driver with Ninc increments reaches the same linear solution
	sim.Solver.Ninc = 4
	main, err := NewMainSim(sim, false, chk.Verbose)
	require.NoError(tst, err)
	err = main.Run()
	require.NoError(tst, err)
	require.Len(tst, main.Summary.Steps, 4)
	for k, s := range main.Summary.Steps {
		chk.Float64(tst, "λ", 1e-15, s.Lambda, float64(k+1)/4.0)
	}
	chk.Array(tst, "U", 1e-17, main.Summary.Last().U, squareU)

	// wrong size of load vector
	_, err = SolveLinear(sim.Mesh, mdl, []float64{1, 2}, nil, nil)
	require.Error(tst, err)
}

func Test_imp03(tst *testing.T) {

	/*  unit square; only node 2 is free; 2e7 N along x at node 2
	 *
	 *  cell 1 localizes first with n = (1,0); since ∇φ is parallel to n, the discontinuity
	 *  system is singular and the element decoheses. then cell 0 localizes in shear with
	 *  n = (1,1)/√2
	 */

	//verbose()
	chk.PrintTitle("imp03")

	main := newShear(tst, nil)
	err := main.Run()
	require.NoError(tst, err)

	// convergence
	sum := main.Summary
	require.Len(tst, sum.Steps, 1)
	chk.Ints(tst, "nits", sum.Nits, []int{3})
	require.Len(tst, sum.Resids, 1)
	require.Len(tst, sum.Resids[0], 4)
	chk.Float64(tst, "largFb0", 1e-8, sum.Resids[0][0], 2e7)

	// displacements
	U := sum.Last().U
	io.Pforan("U = %v\n", U)
	chk.Array(tst, "U", 1e-12, U, []float64{0, 0, 0, 0, 0.00312, -0.0017333333333333333, 0, 0})

	// cell 0: cohesive crack
	r0 := sum.Last().Elems[0]
	io.Pforan("cell 0: σ = %v  n = %v  κ = %v\n", r0.Sig, r0.N, r0.Kap)
	if !r0.Loc || r0.Decohesed {
		tst.Errorf("cell 0 must be localized and cohesive\n")
	}
	chk.Array(tst, "n0", 1e-12, r0.N, []float64{0.7071067811865476, 0.7071067811865475})
	chk.Array(tst, "σ0", 1e-1, r0.Sig, []float64{-1e8, 2e7, 4e7})
	chk.Float64(tst, "κ0", 1e-10, r0.Kap, 0.010449937858491793)
	chk.Float64(tst, "ε̃0", 1e-10, r0.Wjump, -0.006586666666666666)
	chk.Float64(tst, "ũ0", 1e-10, r0.Sjump, -0.00980521403245346)
	mat := main.Sim.Materials[0]
	chk.Array(tst, "T0", 1e-15, r0.T, mat.Crack.Traction(r0.Kap, r0.N))

	// normal stress on the crack vanishes: n・σ・n = 0
	chk.Float64(tst, "tn0", 1e-1, r0.Tn, 0)

	// cell 1: decohesed
	r1 := sum.Last().Elems[1]
	io.Pforan("cell 1: σ = %v  n = %v  κ = %v\n", r1.Sig, r1.N, r1.Kap)
	if !r1.Loc || !r1.Decohesed {
		tst.Errorf("cell 1 must be decohesed\n")
	}
	chk.Array(tst, "n1", 1e-15, r1.N, []float64{1, 0})
	chk.Array(tst, "σ1", 1e-1, r1.Sig, []float64{0, 0, -2e7})
	chk.Array(tst, "T1", 1e-17, r1.T, []float64{0, 0})
	chk.Float64(tst, "κ1", 1e-15, r1.Kap, mat.Crack.CrackOpening(31.1e6))
	chk.Float64(tst, "ε̃1", 1e-12, r1.Wjump, -0.00312)
	chk.Float64(tst, "ũ1", 1e-17, r1.Sjump, 0)
}

func Test_imp04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("imp04")

	serial := newShear(tst, nil)
	require.NoError(tst, serial.Run())

	parallel := newShear(tst, func(s *inp.SolverData) { s.Nworkers = 4 })
	require.NoError(tst, parallel.Run())

	a, b := serial.Summary.Last(), parallel.Summary.Last()
	chk.Array(tst, "U", 1e-17, b.U, a.U)
	chk.Ints(tst, "nits", parallel.Summary.Nits, serial.Summary.Nits)
	for i := range a.Elems {
		chk.Array(tst, io.Sf("σ%d", i), 1e-17, b.Elems[i].Sig, a.Elems[i].Sig)
		chk.Float64(tst, io.Sf("κ%d", i), 1e-17, b.Elems[i].Kap, a.Elems[i].Kap)
	}
}

func Test_imp05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("imp05")

	// not enough iterations
	main := newShear(tst, func(s *inp.SolverData) { s.NmaxIt = 1 })
	err := main.Run()
	require.ErrorIs(tst, err, ErrNonConvergence)
	require.Len(tst, main.Summary.Steps, 0)
	chk.Ints(tst, "nits", main.Summary.Nits, nil)
}

func Test_imp06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("imp06")

	// cut-back: cracking raises the residual in the second iteration, which is taken as
	// divergence; the increment is halved until the step does not crack
	main := newShear(tst, func(s *inp.SolverData) { s.DvgCtrl = true })
	solver := main.Solver.(*SolverImplicit)
	err := main.Run()
	require.ErrorIs(tst, err, ErrNonConvergence)

	sum := main.Summary
	λs := make([]float64, len(sum.Steps))
	for i, s := range sum.Steps {
		λs[i] = s.Lambda
	}
	chk.Array(tst, "λ", 1e-15, λs, []float64{0.5, 0.75, 0.875, 0.9375})
	chk.Int(tst, "ncut", sum.Ncut, 16)

	// converged state is restored
	chk.Float64(tst, "T", 1e-15, main.Domain.Sol.T, 0.9375)
	for _, r := range main.Domain.Outputs() {
		if r.Loc {
			tst.Errorf("element %d must not be localized after restore\n", r.Id)
		}
	}
	if solver.State == Converged {
		tst.Errorf("last state must not be converged\n")
	}
}

func Test_imp07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("imp07")

	sim, err := inp.ReadSim("data/square.sim", "", false, false)
	require.NoError(tst, err)

	// unknown solver
	sim.Solver.Type = "explicit"
	_, err = NewMainSim(sim, false, false)
	require.Error(tst, err)

	// unknown linear solver
	sim.Solver.Type = "imp"
	sim.LinSol.Name = "umfpack"
	_, err = NewMainSim(sim, false, false)
	require.Error(tst, err)

	// unknown element
	sim.LinSol.Name = "lu"
	sim.ElemsData[0].Type = "u-tri3"
	_, err = NewMainSim(sim, false, false)
	require.Error(tst, err)

	// all inactive
	sim.ElemsData[0].Type = "efem-tri3"
	sim.ElemsData[0].Inact = true
	_, err = NewMainSim(sim, false, false)
	require.Error(tst, err)

	// missing file
	_, err = NewMain("data/notfound.sim", "", false, false, false)
	require.Error(tst, err)
}

func Test_imp08(tst *testing.T) {

	/*  unit square; left side fixed; 3e7 N pulling each right node
	 *
	 *  both cells localize at λ = 0.5 with normals nearly parallel to the gradient of the
	 *  strong mode; the jump systems are ill-conditioned and the cells decohese
	 */

	//verbose()
	chk.PrintTitle("imp08")

	sim, err := inp.ReadSim("data/square.sim", "", false, false)
	require.NoError(tst, err)
	sim.Loads.F = []float64{0, 0, 3e7, 0, 3e7, 0, 0, 0}
	sim.Solver.Ninc = 10
	main, err := NewMainSim(sim, false, chk.Verbose)
	require.NoError(tst, err)
	err = main.Run()
	require.NoError(tst, err)

	// convergence
	sum := main.Summary
	require.Len(tst, sum.Steps, 10)
	chk.Ints(tst, "nits", sum.Nits, []int{1, 1, 1, 1, 5, 1, 1, 1, 1, 1})
	chk.Int(tst, "ncut", sum.Ncut, 0)
	chk.Float64(tst, "λ", 1e-12, sum.Last().Lambda, 1)

	// localization
	for k, s := range sum.Steps {
		for _, r := range s.Elems {
			if r.Loc != (k >= 4) {
				tst.Errorf("step %d (λ=%g): cell %d localized = %v\n", k, s.Lambda, r.Id, r.Loc)
			}
		}
	}
	chk.Float64(tst, "λ(localization)", 1e-12, sum.Steps[4].Lambda, 0.5)

	// displacements
	U := sum.Last().U
	io.Pforan("U = %v\n", U)
	chk.Array(tst, "U", 1e-9, U, []float64{0, 0, 0.13394991273541562, 0.07065718379176573, 0.06689662958274063, 0.06903575915538865, 0, 0})

	// both cells are traction-free
	for i, r := range sum.Last().Elems {
		io.Pforan("cell %d: n = %v  κ = %v  w = %v  s = %v  tn = %v\n", r.Id, r.N, r.Kap, r.Wjump, r.Sjump, r.Tn)
		if !r.Loc || !r.Decohesed {
			tst.Errorf("cell %d must be decohesed\n", i)
		}
		chk.Array(tst, io.Sf("T%d", i), 1e-17, r.T, []float64{0, 0})
		chk.Float64(tst, io.Sf("tn%d", i), 1e-5, r.Tn, 0)
		chk.Float64(tst, io.Sf("ũ%d", i), 1e-17, r.Sjump, 0)
	}
	r0, r1 := sum.Last().Elems[0], sum.Last().Elems[1]
	chk.Array(tst, "n0", 1e-9, r0.N, []float64{0.9994921417559086, 0.03186626065585136})
	chk.Array(tst, "n1", 1e-9, r1.N, []float64{0.8683631029552815, 0.4959289479611724})
	chk.Float64(tst, "ε̃0", 1e-9, r0.Wjump, -0.13324194071246928)
	chk.Float64(tst, "κ1", 1e-9, r1.Kap, 0.013926498518771632)
}
