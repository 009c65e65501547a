// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/Escoastin/Embedded-Finite-Element-Method/mdl/crack"
	"github.com/Escoastin/Embedded-Finite-Element-Method/mdl/solid"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Material holds material data
type Material struct {

	// input
	Name  string     `json:"name"`  // name of material
	Model string     `json:"model"` // name of bulk model; e.g. "lin-elast"
	Extra string     `json:"extra"` // extra information about this material
	Prms  dbf.Params `json:"prms"`  // prms holds all model parameters for this material; e.g. E, nu, sy, Gf

	// derived
	Solid solid.Small        // bulk model
	Crack *crack.Exponential // traction-separation law
}

// MatsData holds materials
type MatsData []*Material

// Init allocates and initialises all models
func (o MatsData) Init() (err error) {
	if len(o) == 0 {
		return chk.Err("at least one material is required")
	}
	names := make(map[string]bool)
	for _, m := range o {
		if names[m.Name] {
			return chk.Err("material %q is defined twice", m.Name)
		}
		names[m.Name] = true
		err = m.Init()
		if err != nil {
			return
		}
	}
	return
}

// Get returns material
//  Note: returns nil if not found
func (o MatsData) Get(name string) *Material {
	for _, mat := range o {
		if mat.Name == name {
			return mat
		}
	}
	return nil
}

// Init allocates and initialises the bulk model and the crack model of this material
func (o *Material) Init() (err error) {
	if o.Model == "" {
		o.Model = "lin-elast"
	}
	mdl, err := solid.New(o.Model)
	if err != nil {
		return
	}
	err = mdl.Init(o.Prms)
	if err != nil {
		return chk.Err("material %q:\n%w", o.Name, err)
	}
	var ok bool
	o.Solid, ok = mdl.(solid.Small)
	if !ok {
		return chk.Err("model %q of material %q cannot be used in small strain analyses", o.Model, o.Name)
	}
	o.Crack = new(crack.Exponential)
	err = o.Crack.Init(o.Prms)
	if err != nil {
		return chk.Err("material %q:\n%w", o.Name, err)
	}
	return
}
