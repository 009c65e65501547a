// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"math"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Vert holds vertex data
type Vert struct {
	Id  int       `json:"i"` // id
	Tag int       `json:"t"` // tag
	C   []float64 `json:"c"` // coordinates (size==2)
}

// Cell holds cell data
type Cell struct {
	Id    int    `json:"i"` // id
	Tag   int    `json:"t"` // tag
	Type  string `json:"y"` // geometry type; only "tri3"
	Verts []int  `json:"v"` // vertices
}

// Mesh holds a mesh of constant strain triangles
type Mesh struct {

	// from JSON
	Verts []*Vert `json:"verts"` // vertices
	Cells []*Cell `json:"cells"` // cells

	// derived
	Ndim int     // space dimension; always 2
	Xmin float64 // min x-coordinate
	Xmax float64 // max x-coordinate
	Ymin float64 // min y-coordinate
	Ymax float64 // max y-coordinate
}

// ReadMsh reads a mesh for FE analyses
//  Note: returns nil on errors
func ReadMsh(dir, fn string) (o *Mesh, err error) {

	// read file
	b, err := io.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return
	}

	// decode
	o = new(Mesh)
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, err
	}
	err = o.Init()
	if err != nil {
		return nil, err
	}
	return
}

// NewMesh returns a new mesh with nodes and elements given by coordinates and connectivity
//  Input:
//   nodes -- [nverts][2] coordinates
//   elems -- [ncells][3] vertex indices
//   tags  -- [ncells] cell tags; use nil for all -1
func NewMesh(nodes [][]float64, elems [][]int, tags []int) (o *Mesh, err error) {
	o = new(Mesh)
	for i, x := range nodes {
		o.Verts = append(o.Verts, &Vert{Id: i, Tag: 0, C: x})
	}
	for i, v := range elems {
		tag := -1
		if tags != nil {
			tag = tags[i]
		}
		o.Cells = append(o.Cells, &Cell{Id: i, Tag: tag, Type: "tri3", Verts: v})
	}
	err = o.Init()
	if err != nil {
		return nil, err
	}
	return
}

// Init checks data and computes derived quantities
func (o *Mesh) Init() (err error) {

	// check
	if len(o.Verts) < 3 {
		return chk.Err("mesh must have at least 3 vertices. nverts=%d is invalid", len(o.Verts))
	}
	if len(o.Cells) < 1 {
		return chk.Err("mesh must have at least 1 cell")
	}

	// vertices
	o.Ndim = 2
	o.Xmin, o.Ymin = math.Inf(1), math.Inf(1)
	o.Xmax, o.Ymax = math.Inf(-1), math.Inf(-1)
	for i, v := range o.Verts {
		if v.Id != i {
			return chk.Err("vertices ids must coincide with order in \"verts\" list. %d != %d", v.Id, i)
		}
		if len(v.C) != 2 {
			return chk.Err("vertex %d must have 2 coordinates. len(C)=%d is invalid", v.Id, len(v.C))
		}
		o.Xmin, o.Xmax = math.Min(o.Xmin, v.C[0]), math.Max(o.Xmax, v.C[0])
		o.Ymin, o.Ymax = math.Min(o.Ymin, v.C[1]), math.Max(o.Ymax, v.C[1])
	}

	// cells
	for i, c := range o.Cells {
		if c.Id != i {
			return chk.Err("cells ids must coincide with order in \"cells\" list. %d != %d", c.Id, i)
		}
		if c.Type == "" {
			c.Type = "tri3"
		}
		if c.Type != "tri3" || len(c.Verts) != 3 {
			return chk.Err("cell %d must be a 3-node triangle. type=%q nverts=%d is invalid", c.Id, c.Type, len(c.Verts))
		}
		for _, v := range c.Verts {
			if v < 0 || v >= len(o.Verts) {
				return chk.Err("cell %d has invalid vertex %d", c.Id, v)
			}
		}
	}
	return
}
