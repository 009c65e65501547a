// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sync"

	"github.com/Escoastin/Embedded-Finite-Element-Method/ele"
	"github.com/Escoastin/Embedded-Finite-Element-Method/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// Domain holds all Elements and the Solution at nodes.
//  Equations are numbered as 2・vid + {0:ux, 1:uy}
type Domain struct {

	// init: auxiliary variables
	Verbose bool            // verbose
	ShowMsg bool            // show messages
	Sim     *inp.Simulation // [from FEM] input data
	Msh     *inp.Mesh       // mesh data
	LinSol  LinSolver       // linear solver

	// elements
	Elems       []ele.Element     // active elements
	ElemIntvars []ele.WithIntVars // elements with internal vars
	ElemOut     []ele.CanOutput   // elements that can output values
	Cid2elem    []ele.Element     // [ncells] CellId => element. Inactive cells are 'nil'

	// loads and constraints
	F     []float64  // [ny] total external forces; applied as λ・F
	Fixed *FixedDofs // constrained equations

	// dimensions
	NnzKb int // number of nonzeros in Kb matrix
	Ny    int // total number of dofs

	// solution and linear system
	Sol *ele.Solution // solution state
	Kb  *la.Triplet   // Jacobian == dRdy
	Fb  []float64     // residual == -fb
	Wb  []float64     // workspace: δy
	K   *mat.Dense    // dense Jacobian with constraints applied

	// for divergence control
	bkpSol *ele.Solution // backup solution
}

// NewDomain allocates elements and equations
func NewDomain(sim *inp.Simulation, verbose bool) (o *Domain, err error) {

	// new domain
	o = new(Domain)
	o.Verbose = verbose
	o.ShowMsg = verbose
	o.Sim = sim
	o.Msh = sim.Mesh
	o.LinSol, err = GetSolver(sim.LinSol.Name)
	if err != nil {
		return nil, err
	}

	// equations
	o.Ny = 2 * len(o.Msh.Verts)
	o.Cid2elem = make([]ele.Element, len(o.Msh.Cells))

	// elements
	for _, cell := range o.Msh.Cells {

		// skip inactive element
		edat := sim.Etag2data(cell.Tag)
		if edat == nil {
			return nil, chk.Err("cannot get data for element {tag=%d, id=%d}", cell.Tag, cell.Id)
		}
		if edat.Inact {
			continue
		}

		// new element
		e, err := ele.New(cell, sim)
		if err != nil {
			return nil, chk.Err("new element failed:\n%w", err)
		}
		o.Cid2elem[cell.Id] = e
		o.Elems = append(o.Elems, e)

		// equation numbers
		eqs := make([][]int, len(cell.Verts))
		for j, v := range cell.Verts {
			eqs[j] = []int{2 * v, 2*v + 1}
		}
		err = e.SetEqs(eqs)
		if err != nil {
			return nil, chk.Err("cannot set element equations:\n%w", err)
		}
		o.NnzKb += 36

		// subsets of elements
		if ei, ok := e.(ele.WithIntVars); ok {
			o.ElemIntvars = append(o.ElemIntvars, ei)
		}
		if eo, ok := e.(ele.CanOutput); ok {
			o.ElemOut = append(o.ElemOut, eo)
		}
	}
	if len(o.Elems) == 0 {
		return nil, chk.Err("there are no active elements")
	}

	// loads and constraints
	o.F = make([]float64, o.Ny)
	copy(o.F, sim.Loads.F)
	o.Fixed, err = NewFixedDofs(sim.Loads.Fixed, o.Ny)
	if err != nil {
		return nil, err
	}

	// solution and linear system
	o.Sol = ele.NewSolution(o.Ny)
	o.Kb = new(la.Triplet)
	o.Kb.Init(o.Ny, o.Ny, o.NnzKb)
	o.Fb = make([]float64, o.Ny)
	o.Wb = make([]float64, o.Ny)
	o.K = mat.NewDense(o.Ny, o.Ny, nil)

	// message
	if o.ShowMsg {
		io.Pf(">> Number of elements = %d\n", len(o.Elems))
		io.Pf(">> Number of equations = %d\n", o.Ny)
		io.Pf(">> Number of fixed equations = %d\n", len(o.Fixed.Eqs))
	}
	return
}

// UpdateElems update elements after Solution has been updated
//  Note: elements are updated by Sim.Solver.Nworkers goroutines; each element is updated by
//  exactly one goroutine and only reads the shared Solution
func (o *Domain) UpdateElems() (err error) {

	// serial
	nel := len(o.ElemIntvars)
	nw := o.Sim.Solver.Nworkers
	if nw > nel {
		nw = nel
	}
	if nw < 2 {
		for _, e := range o.ElemIntvars {
			err = e.Update(o.Sol)
			if err != nil {
				return
			}
		}
		return
	}

	// parallel map over elements
	errs := make([]error, nw)
	var wg sync.WaitGroup
	wg.Add(nw)
	for w := 0; w < nw; w++ {
		go func(w int) {
			defer wg.Done()
			for i := w; i < nel; i += nw {
				if e := o.ElemIntvars[i].Update(o.Sol); e != nil {
					errs[w] = e
					return
				}
			}
		}(w)
	}
	wg.Wait()
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return
}

// AssembleRhs computes fb = λ・F - Σ f_int with fb = 0 at constrained equations
func (o *Domain) AssembleRhs(λ float64) (err error) {
	for i := 0; i < o.Ny; i++ {
		o.Fb[i] = λ * o.F[i]
	}
	for _, e := range o.Elems {
		err = e.AddToRhs(o.Fb, o.Sol)
		if err != nil {
			return
		}
	}
	o.Fixed.ZeroRhs(o.Fb)
	return
}

// AssembleKb assembles the Jacobian (scatter-add; serial) and applies constraints
func (o *Domain) AssembleKb(firstIt bool) (err error) {
	o.Kb.Start()
	for _, e := range o.Elems {
		err = e.AddToKb(o.Kb, o.Sol, firstIt)
		if err != nil {
			return
		}
	}
	Kd := o.Kb.ToDense()
	for i := 0; i < o.Ny; i++ {
		for j := 0; j < o.Ny; j++ {
			o.K.Set(i, j, Kd.Get(i, j))
		}
	}
	o.Fixed.Apply(o.K, o.Fb)
	return
}

// SolveLinSys solves K・δy = fb and updates y and Δy
func (o *Domain) SolveLinSys() (err error) {
	err = o.LinSol.Solve(o.Wb, o.K, o.Fb)
	if err != nil {
		return
	}
	for i := 0; i < o.Ny; i++ {
		o.Sol.Y[i] += o.Wb[i]  // y += δy
		o.Sol.ΔY[i] += o.Wb[i] // ΔY += δy
	}
	return
}

// Commit accepts the trial states of all elements
func (o *Domain) Commit() {
	for _, e := range o.ElemIntvars {
		e.Commit()
	}
}

// Outputs collects the output of all elements
func (o *Domain) Outputs() (res []*ele.Output) {
	res = make([]*ele.Output, len(o.ElemOut))
	for i, e := range o.ElemOut {
		res[i] = e.OutVals(o.Sol)
	}
	return
}

// auxiliary functions //////////////////////////////////////////////////////////////////////////////

// backup saves a copy of solution
func (o *Domain) backup() {
	if o.bkpSol == nil {
		o.bkpSol = ele.NewSolution(o.Ny)
	}
	o.bkpSol.Set(o.Sol)
}

// restore restores solution and internal variables
func (o *Domain) restore() {
	o.Sol.Set(o.bkpSol)
	for _, e := range o.ElemIntvars {
		e.Restore()
	}
}
