// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/Escoastin/Embedded-Finite-Element-Method/inp"
	"github.com/cpmech/gosl/chk"
)

// AllocatorType defines a function that allocates an element
type AllocatorType func(sim *inp.Simulation, cell *inp.Cell, edat *inp.ElemData, x [][]float64) (Element, error)

// New returns a new element from from factory
func New(cell *inp.Cell, sim *inp.Simulation) (ele Element, err error) {
	edat := sim.Etag2data(cell.Tag)
	if edat == nil {
		err = chk.Err("cannot get data for element {tag=%d, id=%d}", cell.Tag, cell.Id)
		return
	}
	fcn, ok := allocators[edat.Type]
	if !ok {
		err = chk.Err("cannot get allocator for element {type=%q, tag=%d, id=%d}", edat.Type, cell.Tag, cell.Id)
		return
	}
	x := BuildCoordsMatrix(cell, sim.Mesh)
	ele, err = fcn(sim, cell, edat, x)
	if err != nil {
		err = chk.Err("element {type=%q, tag=%d, id=%d} is not available:\n%w", edat.Type, cell.Tag, cell.Id, err)
	}
	return
}

// SetAllocator sets a new callback function to allocate an element
func SetAllocator(elementName string, fcn AllocatorType) {
	if _, ok := allocators[elementName]; ok {
		chk.Panic("cannot set allocator function for %q because element name exists already", elementName)
	}
	allocators[elementName] = fcn
}

// GetAllocator gets callback function to allocate an element
func GetAllocator(elementName string) AllocatorType {
	if fcn, ok := allocators[elementName]; ok {
		return fcn
	}
	chk.Panic("cannot get allocator function for element %q", elementName)
	return nil
}

// allocators holds all element allocators
var allocators = make(map[string]AllocatorType)
