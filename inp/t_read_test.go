// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/Escoastin/Embedded-Finite-Element-Method/mdl/solid"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_msh01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("msh01")

	msh, err := ReadMsh("data", "square.msh")
	require.NoError(tst, err)
	io.Pforan("lims = [%g, %g, %g, %g]\n", msh.Xmin, msh.Xmax, msh.Ymin, msh.Ymax)
	chk.Float64(tst, "xmin", 1e-17, msh.Xmin, 0)
	chk.Float64(tst, "xmax", 1e-17, msh.Xmax, 1)
	chk.Float64(tst, "ymin", 1e-17, msh.Ymin, 0)
	chk.Float64(tst, "ymax", 1e-17, msh.Ymax, 1)
	chk.Int(tst, "ndim", msh.Ndim, 2)
	chk.Int(tst, "nverts", len(msh.Verts), 4)
	chk.Int(tst, "ncells", len(msh.Cells), 2)
	chk.Ints(tst, "cell 1", msh.Cells[1].Verts, []int{0, 2, 3})
	chk.String(tst, msh.Cells[0].Type, "tri3")
	chk.Int(tst, "vert 3: tag", msh.Verts[3].Tag, -4)
}

func Test_msh02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("msh02")

	nodes := [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	msh, err := NewMesh(nodes, [][]int{{0, 1, 2}, {0, 2, 3}}, nil)
	require.NoError(tst, err)
	chk.Int(tst, "tag", msh.Cells[1].Tag, -1)
	chk.Array(tst, "vert 2", 1e-17, msh.Verts[2].C, []float64{1, 1})

	// invalid meshes
	_, err = NewMesh(nodes[:2], [][]int{{0, 1, 2}}, nil)
	require.Error(tst, err)
	_, err = NewMesh(nodes, nil, nil)
	require.Error(tst, err)
	_, err = NewMesh(nodes, [][]int{{0, 1, 4}}, nil)
	require.Error(tst, err)
	_, err = NewMesh(nodes, [][]int{{0, 1, 2, 3}}, nil)
	require.Error(tst, err)
	_, err = NewMesh([][]float64{{0, 0}, {1, 0}, {1}}, [][]int{{0, 1, 2}}, nil)
	require.Error(tst, err)
}

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01")

	sim, err := ReadSim("data/square.sim", "", false, false)
	require.NoError(tst, err)

	// derived
	chk.String(tst, sim.Key, "square")
	chk.String(tst, sim.EncType, "json")
	chk.String(tst, sim.DirOut, "/tmp/efem/square")
	chk.Int(tst, "nverts", len(sim.Mesh.Verts), 4)

	// materials
	mat := sim.Materials.Get("concrete")
	require.NotNil(tst, mat)
	chk.String(tst, mat.Model, "lin-elast")
	require.NotNil(tst, mat.Solid)
	chk.Float64(tst, "σy", 1e-17, mat.Crack.Sy, 30e6)
	chk.Float64(tst, "Gf", 1e-17, mat.Crack.Gf, 700)
	if sim.Materials.Get("steel") != nil {
		tst.Errorf("material steel must not be found\n")
	}

	// elements and loads
	edat := sim.Etag2data(-1)
	require.NotNil(tst, edat)
	chk.String(tst, edat.Type, "efem-tri3")
	if sim.Etag2data(-2) != nil {
		tst.Errorf("tag -2 must not be found\n")
	}
	chk.Array(tst, "F", 1e-17, sim.Loads.F, []float64{0, 0, 1000, 0, 1000, 0, 0, 0})
	chk.Ints(tst, "fixed", sim.Loads.Fixed, []int{0, 1, 6, 7})

	// solver defaults
	chk.String(tst, sim.LinSol.Name, "lu")
	chk.String(tst, sim.Solver.Type, "imp")
	chk.Int(tst, "ninc", sim.Solver.Ninc, 1)
	chk.Int(tst, "nmaxit", sim.Solver.NmaxIt, 20)
	chk.Int(tst, "ndvgmax", sim.Solver.NdvgMax, 5)
	chk.Int(tst, "nmaxitloc", sim.Solver.NmaxItLoc, 50)
	chk.Float64(tst, "fbtol", 1e-17, sim.Solver.FbTol, 1e-8)
	chk.Float64(tst, "fbmin", 1e-17, sim.Solver.FbMin, 1e-10)
	chk.Float64(tst, "dlmin", 1e-17, sim.Solver.DlMin, 1e-6)
	chk.Float64(tst, "condtol", 1e-17, sim.Solver.CondTol, 1e-3)
	if sim.Solver.DvgCtrl || sim.Solver.Placeholder {
		tst.Errorf("dvgctrl and placeholder must be false by default\n")
	}
}

func Test_sim02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim02")

	sim, err := ReadSim("data/inline.sim", "a", false, false)
	require.NoError(tst, err)

	chk.String(tst, sim.Key, "inline-a")
	chk.String(tst, sim.EncType, "gob")
	chk.Float64(tst, "xmax", 1e-17, sim.Mesh.Xmax, 2)
	chk.String(tst, sim.Mesh.Cells[0].Type, "tri3")
	chk.String(tst, sim.LinSol.Name, "chol")
	chk.Int(tst, "ninc", sim.Solver.Ninc, 4)
	chk.Int(tst, "nworkers", sim.Solver.Nworkers, 2)
	chk.Float64(tst, "tolloc", 1e-17, sim.Solver.TolLoc, 1e-9)
	chk.String(tst, sim.Etag2data(-1).Extra, "!placeholder:1")
	if !sim.Solver.DvgCtrl {
		tst.Errorf("dvgctrl must be true\n")
	}
}

func Test_sim03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim03")

	mesh := `"mesh":{"verts":[{"i":0,"c":[0,0]},{"i":1,"c":[1,0]},{"i":2,"c":[0,1]}],"cells":[{"i":0,"t":-1,"v":[0,1,2]}]}`
	elems := `"elemsdata":[{"tag":-1,"mat":"m","type":"efem-tri3"}]`
	prms := `"prms":[{"n":"E","v":1e9},{"n":"nu","v":0.25},{"n":"sy","v":1e6},{"n":"Gf","v":10}]`
	loads := `"loads":{"f":[0,0,1,0,0,0],"fixed":[0,1,4]}`

	// valid
	sim, err := DecodeSim([]byte(`{`+mesh+`,`+elems+`,"materials":[{"name":"m",`+prms+`}],`+loads+`}`), "")
	require.NoError(tst, err)
	chk.Float64(tst, "E", 1e-17, sim.Materials[0].Prms.Find("E").V, 1e9)

	// missing Gf
	noGf := `"prms":[{"n":"E","v":1e9},{"n":"nu","v":0.25},{"n":"sy","v":1e6}]`
	_, err = DecodeSim([]byte(`{`+mesh+`,`+elems+`,"materials":[{"name":"m",`+noGf+`}],`+loads+`}`), "")
	require.ErrorIs(tst, err, solid.ErrInvalidMaterial)

	// invalid ν
	badNu := `"prms":[{"n":"E","v":1e9},{"n":"nu","v":0.5},{"n":"sy","v":1e6},{"n":"Gf","v":10}]`
	_, err = DecodeSim([]byte(`{`+mesh+`,`+elems+`,"materials":[{"name":"m",`+badNu+`}],`+loads+`}`), "")
	require.ErrorIs(tst, err, solid.ErrInvalidMaterial)

	// unknown material
	_, err = DecodeSim([]byte(`{`+mesh+`,"elemsdata":[{"tag":-1,"mat":"x","type":"efem-tri3"}],"materials":[{"name":"m",`+prms+`}],`+loads+`}`), "")
	require.Error(tst, err)

	// wrong size of load vector
	_, err = DecodeSim([]byte(`{`+mesh+`,`+elems+`,"materials":[{"name":"m",`+prms+`}],"loads":{"f":[0,1]}}`), "")
	require.Error(tst, err)

	// fixed equation out of range
	_, err = DecodeSim([]byte(`{`+mesh+`,`+elems+`,"materials":[{"name":"m",`+prms+`}],"loads":{"f":[0,0,1,0,0,0],"fixed":[6]}}`), "")
	require.Error(tst, err)

	// invalid solver data
	_, err = DecodeSim([]byte(`{`+mesh+`,`+elems+`,"materials":[{"name":"m",`+prms+`}],`+loads+`,"solver":{"nmaxit":0}}`), "")
	require.Error(tst, err)

	// neither mesh nor mshfile
	_, err = DecodeSim([]byte(`{`+elems+`,"materials":[{"name":"m",`+prms+`}],`+loads+`}`), "")
	require.Error(tst, err)
}
