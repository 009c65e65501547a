// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solid implements models for the bulk of solids based on continuum mechanics
/*
 *            |    plane-strain, small strains
 *  ============================================
 *            |
 *    Small   | σ = D ・ ε
 *            | ε = [εxx, εyy, γxy]
 *            | σ = [σxx, σyy, σxy]
 *            |
 */
package solid

import (
	"errors"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"gonum.org/v1/gonum/mat"
)

// ErrInvalidMaterial is returned when material constants are not physical
var ErrInvalidMaterial = errors.New("invalid material")

// Model defines the interface for solid models
type Model interface {
	Init(prms dbf.Params) error // initialises model
	GetPrms() dbf.Params        // gets (an example) of parameters
}

// Small defines solid models for small strain analyses in plane-strain
type Small interface {
	CalcD(D *mat.Dense) error    // computes D = dσ/dε (3x3)
	Stress(σ, ε []float64) error // computes σ = D・ε
}

// New returns new solid model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'solid' database", name)
	}
	return allocator(), nil
}

// allocators holds all available solid models; modelname => allocator
var allocators = map[string]func() Model{}
