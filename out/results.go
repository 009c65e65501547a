// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements post-processing of summaries of incremental EFEM analyses
package out

import (
	"errors"

	"github.com/Escoastin/Embedded-Finite-Element-Method/ele"
	"github.com/Escoastin/Embedded-Finite-Element-Method/fem"
	"github.com/Escoastin/Embedded-Finite-Element-Method/mdl/crack"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// ErrUnknownKey is returned when a result key or alias cannot be found
var ErrUnknownKey = errors.New("unknown result key")

// Locator defines where results are taken from
type Locator interface {
	locate(res *Results) error
}

// Dof locates one global equation (displacement component)
type Dof struct{ Eq int }

// Cell locates one element by cell id
type Cell struct{ Id int }

// Results holds the converged steps of one analysis and the defined entities
type Results struct {
	Sum      *fem.Summary       // summary
	Ny       int                // number of equations
	Entities map[string]Locator // maps aliases to locators
	Splots   []*SplotDat        // all subplots
	Csplot   *SplotDat          // current subplot
}

// NewResults returns a new post-processing structure
//  Note: the summary must have at least one converged step
func NewResults(sum *fem.Summary) (o *Results, err error) {
	last := sum.Last()
	if last == nil {
		return nil, chk.Err("summary has no converged steps")
	}
	o = &Results{Sum: sum, Ny: len(last.U), Entities: make(map[string]Locator)}
	return
}

// Start runs the analysis in simfnpath and returns its results
func Start(simfnpath string, verbose bool) (o *Results, err error) {
	main, err := fem.NewMain(simfnpath, "", false, false, verbose)
	if err != nil {
		return
	}
	err = main.Run()
	if err != nil {
		return
	}
	return NewResults(main.Summary)
}

// Define defines an entity to be used in GetRes and Plot
func (o *Results) Define(alias string, loc Locator) (err error) {
	err = loc.locate(o)
	if err != nil {
		return chk.Err("cannot define %q:\n%w", alias, err)
	}
	o.Entities[alias] = loc
	return
}

// Lambdas returns the load factors of all converged steps
func (o *Results) Lambdas() (λ []float64) {
	λ = make([]float64, len(o.Sum.Steps))
	for i, s := range o.Sum.Steps {
		λ[i] = s.Lambda
	}
	return
}

// GetRes returns the history of a result over all converged steps
//  key -- "u" for Dof entities
//         "κ", "w", "s", "Tx", "Ty", "tn", "σxx", "σyy", "σxy", "εxx", "εyy", "εxy", "loc" for Cell entities
//  alias -- entity defined with Define
func (o *Results) GetRes(key, alias string) (res []float64, err error) {
	loc, ok := o.Entities[alias]
	if !ok {
		return nil, chk.Err("alias %q is not defined: %w", alias, ErrUnknownKey)
	}
	res = make([]float64, len(o.Sum.Steps))
	switch l := loc.(type) {
	case Dof:
		if key != "u" {
			return nil, chk.Err("key %q is not available for dof %q: %w", key, alias, ErrUnknownKey)
		}
		for i, s := range o.Sum.Steps {
			res[i] = s.U[l.Eq]
		}
	case Cell:
		for i, s := range o.Sum.Steps {
			r := findElem(s, l.Id)
			if r == nil {
				return nil, chk.Err("cell %d has no output at λ=%g: %w", l.Id, s.Lambda, ErrUnknownKey)
			}
			res[i], err = elemValue(r, key)
			if err != nil {
				return
			}
		}
	}
	return
}

// Softening computes the softening stress q(κ) of a cohesive law
func Softening(law *crack.Exponential, κmax float64, npts int) (κ, q []float64) {
	κ = utl.LinSpace(0, κmax, npts)
	q = make([]float64, npts)
	for i, k := range κ {
		q[i] = law.SofteningStress(k)
	}
	return
}

// locators ////////////////////////////////////////////////////////////////////////////////////////

func (o Dof) locate(res *Results) error {
	if o.Eq < 0 || o.Eq >= res.Ny {
		return chk.Err("equation %d is out of range [0, %d): %w", o.Eq, res.Ny, ErrUnknownKey)
	}
	return nil
}

func (o Cell) locate(res *Results) error {
	if findElem(res.Sum.Last(), o.Id) == nil {
		return chk.Err("there is no active element with cell id %d: %w", o.Id, ErrUnknownKey)
	}
	return nil
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func findElem(s *fem.StepOut, cid int) *ele.Output {
	for _, r := range s.Elems {
		if r.Id == cid {
			return r
		}
	}
	return nil
}

func elemValue(r *ele.Output, key string) (float64, error) {
	switch key {
	case "κ":
		return r.Kap, nil
	case "w":
		return r.Wjump, nil
	case "s":
		return r.Sjump, nil
	case "Tx", "Ty":
		if len(r.T) < 2 {
			return 0, nil
		}
		if key == "Tx" {
			return r.T[0], nil
		}
		return r.T[1], nil
	case "tn":
		return r.Tn, nil
	case "σxx":
		return r.Sig[0], nil
	case "σyy":
		return r.Sig[1], nil
	case "σxy":
		return r.Sig[2], nil
	case "εxx":
		return r.Eps[0], nil
	case "εyy":
		return r.Eps[1], nil
	case "εxy":
		return r.Eps[2], nil
	case "loc":
		if r.Loc {
			return 1, nil
		}
		return 0, nil
	}
	return 0, chk.Err("key %q is not available for elements: %w", key, ErrUnknownKey)
}
