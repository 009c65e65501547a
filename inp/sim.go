// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Data holds global data for simulations
type Data struct {
	Desc    string `json:"desc"`    // description of simulation
	DirOut  string `json:"dirout"`  // directory for output; e.g. /tmp/efem
	Encoder string `json:"encoder"` // encoder name; e.g. "gob" "json"
}

// LinSolData holds data for linear solvers
type LinSolData struct {
	Name string `json:"name"` // "lu" or "chol"
}

// SolverData holds FEM solver data
type SolverData struct {

	// nonlinear solver
	Type     string  `json:"type"`     // nonlinear solver type: "imp" => implicit
	Ninc     int     `json:"ninc"`     // number of load increments
	NmaxIt   int     `json:"nmaxit"`   // number of max iterations
	FbTol    float64 `json:"fbtol"`    // tolerance for convergence on fb
	FbMin    float64 `json:"fbmin"`    // minimum value of fb
	DvgCtrl  bool    `json:"dvgctrl"`  // use divergence control: cut-back of load increment
	NdvgMax  int     `json:"ndvgmax"`  // max number of consecutive cut-backs
	DlMin    float64 `json:"dlmin"`    // minimum load increment Δλ
	ShowR    bool    `json:"showr"`    // show residual
	Nworkers int     `json:"nworkers"` // number of goroutines to update elements; ≤ 1 => serial

	// embedded discontinuities
	NmaxItLoc   int     `json:"nmaxitloc"`   // max number of element-local iterations
	TolLoc      float64 `json:"tolloc"`      // tolerance of element-local residual relative to ℓ σy
	CondTol     float64 `json:"condtol"`     // inverse of the largest acceptable condition number of the jump system
	Placeholder bool    `json:"placeholder"` // use the constant [1,0,0] mode shape in G_w and G_s
}

// ElemData holds element data
type ElemData struct {
	Tag   int    `json:"tag"`   // tag of element
	Mat   string `json:"mat"`   // material name
	Type  string `json:"type"`  // type of element. ex: efem-tri3
	Extra string `json:"extra"` // extra flags (in keycode format). ex: "!placeholder:1"
	Inact bool   `json:"inact"` // element is inactive
}

// LoadData holds the global load vector and the fixed degrees of freedom
type LoadData struct {
	F     []float64 `json:"f"`     // [2·nverts] global load vector (total load; applied in Ninc increments)
	Fixed []int     `json:"fixed"` // fixed equations: 2·vid + {0:ux, 1:uy}
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data      Data        `json:"data"`      // stores global simulation data
	Mshfile   string      `json:"mshfile"`   // file path of file with mesh data; ignored if Mesh is given
	Mesh      *Mesh       `json:"mesh"`      // the mesh (inline)
	Materials MatsData    `json:"materials"` // materials
	ElemsData []*ElemData `json:"elemsdata"` // list of elements data
	Loads     LoadData    `json:"loads"`     // global loads and fixed DOFs
	LinSol    LinSolData  `json:"linsol"`    // linear solver data
	Solver    SolverData  `json:"solver"`    // FEM solver data

	// derived
	DirOut  string // directory to save results
	Key     string // simulation key; e.g. mysim01.sim => mysim01 or mysim01-alias
	EncType string // encoder type
}

// ReadSim reads all simulation data from a .sim JSON file
func ReadSim(simfilepath, alias string, erasePrev, createDirOut bool) (o *Simulation, err error) {

	// read file
	b, err := io.ReadFile(simfilepath)
	if err != nil {
		return nil, chk.Err("ReadSim: cannot read simulation file %q:\n%v", simfilepath, err)
	}

	// decode
	dir := os.ExpandEnv(filepath.Dir(simfilepath))
	o, err = DecodeSim(b, dir)
	if err != nil {
		return nil, chk.Err("ReadSim: cannot load simulation file %q:\n%w", simfilepath, err)
	}

	// filename key
	fnkey := io.FnKey(filepath.Base(simfilepath))
	o.Key = fnkey
	if alias != "" {
		o.Key += "-" + alias
	}

	// output directory
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/efem/" + fnkey
	}

	// create directory
	if createDirOut {
		err = os.MkdirAll(o.DirOut, 0777)
		if err != nil {
			return nil, chk.Err("cannot create directory for output results (%s): %v", o.DirOut, err)
		}
	}

	// erase previous simulation results
	if erasePrev {
		io.RemoveAll(io.Sf("%s/%s*", o.DirOut, fnkey))
	}
	return
}

// DecodeSim decodes simulation data from JSON bytes; default values are set first
//  dir -- directory of mesh file, if the mesh is not given inline
func DecodeSim(b []byte, dir string) (o *Simulation, err error) {

	// decode
	o = new(Simulation)
	o.Solver.SetDefault()
	o.LinSol.SetDefault()
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, err
	}

	// encoder type
	o.EncType = o.Data.Encoder
	if o.EncType != "gob" && o.EncType != "json" {
		o.EncType = "gob"
	}

	// mesh from file
	if o.Mesh == nil {
		if o.Mshfile == "" {
			return nil, chk.Err("either mesh or mshfile must be given")
		}
		o.Mesh, err = ReadMsh(dir, o.Mshfile)
		if err != nil {
			return nil, chk.Err("cannot read mesh file:\n%w", err)
		}
	}
	err = o.PostProcess()
	return
}

// PostProcess checks and initialises mesh, materials and loads
func (o *Simulation) PostProcess() (err error) {

	// mesh
	err = o.Mesh.Init()
	if err != nil {
		return
	}

	// materials
	err = o.Materials.Init()
	if err != nil {
		return
	}

	// elements data
	if len(o.ElemsData) == 0 {
		return chk.Err("at least one elemsdata entry is required")
	}
	for _, cell := range o.Mesh.Cells {
		edat := o.Etag2data(cell.Tag)
		if edat == nil {
			return chk.Err("cannot find data for element {tag=%d, id=%d}", cell.Tag, cell.Id)
		}
		if o.Materials.Get(edat.Mat) == nil {
			return chk.Err("cannot find material %q for element {tag=%d, id=%d}", edat.Mat, cell.Tag, cell.Id)
		}
	}

	// loads
	ny := 2 * len(o.Mesh.Verts)
	if len(o.Loads.F) != ny {
		return chk.Err("load vector must have %d components. len(F)=%d is invalid", ny, len(o.Loads.F))
	}
	for _, eq := range o.Loads.Fixed {
		if eq < 0 || eq >= ny {
			return chk.Err("fixed equation %d is out of range [0, %d)", eq, ny)
		}
	}

	// solver
	return o.Solver.PostProcess()
}

// Etag2data returns the ElemData corresponding to element tag
//  Note: returns nil if not found
func (o *Simulation) Etag2data(etag int) *ElemData {
	for _, edat := range o.ElemsData {
		if edat.Tag == etag {
			return edat
		}
	}
	return nil
}

// extra settings //////////////////////////////////////////////////////////////////////////////////

// SetDefault sets defaults values
func (o *LinSolData) SetDefault() {
	o.Name = "lu"
}

// SetDefault set defaults values
func (o *SolverData) SetDefault() {

	// nonlinear solver
	o.Type = "imp"
	o.Ninc = 1
	o.NmaxIt = 20
	o.FbTol = 1e-8
	o.FbMin = 1e-10
	o.NdvgMax = 5
	o.DlMin = 1e-6

	// embedded discontinuities
	o.NmaxItLoc = 50
	o.TolLoc = 1e-10
	o.CondTol = 1e-3
}

// PostProcess performs a post-processing of the just read json file
func (o *SolverData) PostProcess() (err error) {
	if o.Ninc < 1 {
		o.Ninc = 1
	}
	if o.NmaxIt < 1 {
		return chk.Err("nmaxit must be positive. %d is invalid", o.NmaxIt)
	}
	if o.NmaxItLoc < 1 {
		return chk.Err("nmaxitloc must be positive. %d is invalid", o.NmaxItLoc)
	}
	if o.FbTol <= 0 || o.TolLoc <= 0 || o.CondTol <= 0 || o.DlMin <= 0 {
		return chk.Err("tolerances must be positive: fbtol=%g tolloc=%g condtol=%g dlmin=%g", o.FbTol, o.TolLoc, o.CondTol, o.DlMin)
	}
	return
}
