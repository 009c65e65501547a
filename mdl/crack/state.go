// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crack

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Phase holds the phase of the traction-separation law
type Phase int

const (
	Elastic   Phase = iota // κ = 0 and no discontinuity
	Softening              // κ > 0; terminal
)

// String returns the phase name
func (o Phase) String() string {
	if o == Softening {
		return "softening"
	}
	return "elastic"
}

// State holds the state of the embedded discontinuity of one element
//  Notes:
//   1) the transition Elastic → Softening happens once; the normal is frozen afterwards
//   2) κ never decreases
type State struct {
	Phase     Phase     // elastic or softening
	N         []float64 // [2] unit normal of the crack; nil if elastic
	Kap       float64   // κ: accumulated crack-opening magnitude
	Kap0      float64   // κ0: opening at nucleation
	Wjump     float64   // ε̃: weak discontinuity jump (strain jump)
	Sjump     float64   // ũ: strong discontinuity jump (displacement jump)
	Decohesed bool      // element is fully decohesed; strong mode excluded
}

// NewState returns a new elastic state
func NewState() *State {
	return new(State)
}

// Localized tells whether the discontinuity has nucleated
func (o State) Localized() bool {
	return o.Phase == Softening
}

// Localize sets the crack normal and the initial opening. It returns false if the state was
// localized already, in which case nothing is changed
func (o *State) Localize(n []float64, κ0 float64) (changed bool, err error) {
	if o.Phase == Softening {
		return
	}
	if len(n) != 2 {
		return false, chk.Err("crack normal must have 2 components; len(n)=%d is invalid", len(n))
	}
	nn := math.Hypot(n[0], n[1])
	if nn < 1e-14 {
		return false, chk.Err("crack normal must not be null")
	}
	if κ0 < 0 {
		return false, chk.Err("opening at nucleation must be non-negative; κ0=%g is invalid", κ0)
	}
	o.Phase = Softening
	o.N = []float64{n[0] / nn, n[1] / nn}
	o.Kap = κ0
	o.Kap0 = κ0
	o.Wjump = 0
	o.Sjump = 0
	return true, nil
}

// SetKap updates κ, keeping it monotonic
func (o *State) SetKap(κ float64) {
	if κ > o.Kap {
		o.Kap = κ
	}
}

// GetCopy returns a copy of State
func (o State) GetCopy() *State {
	s := o
	if o.N != nil {
		s.N = []float64{o.N[0], o.N[1]}
	}
	return &s
}

// Set sets this State with another State
func (o *State) Set(s *State) {
	o.Phase = s.Phase
	if s.N == nil {
		o.N = nil
	} else {
		if len(o.N) != 2 {
			o.N = make([]float64, 2)
		}
		o.N[0], o.N[1] = s.N[0], s.N[1]
	}
	o.Kap = s.Kap
	o.Kap0 = s.Kap0
	o.Wjump = s.Wjump
	o.Sjump = s.Sjump
	o.Decohesed = s.Decohesed
}
