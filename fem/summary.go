// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"os"
	"path/filepath"

	"github.com/Escoastin/Embedded-Finite-Element-Method/ele"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// StepOut holds the results of one converged load step
type StepOut struct {
	Lambda float64       // load factor λ
	U      []float64     // [ny] global displacements
	Elems  []*ele.Output // element results
}

// Summary records summary of outputs
type Summary struct {
	Steps  []*StepOut  // converged steps
	Nits   []int       // number of iterations of each converged step
	Resids [][]float64 // largest residual at each iteration of each attempted step
	Ncut   int         // number of cut-backs
}

// Append appends the current state of domain as a converged step
func (o *Summary) Append(dom *Domain) {
	U := make([]float64, dom.Ny)
	copy(U, dom.Sol.Y)
	o.Steps = append(o.Steps, &StepOut{
		Lambda: dom.Sol.T,
		U:      U,
		Elems:  dom.Outputs(),
	})
}

// Last returns the last converged step
//  Note: returns nil if there are no steps
func (o *Summary) Last() *StepOut {
	if len(o.Steps) == 0 {
		return nil
	}
	return o.Steps[len(o.Steps)-1]
}

// Save saves summary to disc
//  enctype -- "gob" or "json"
func (o *Summary) Save(dirout, fnkey, enctype string) (err error) {
	fn := out_sum_path(dirout, fnkey)
	fil, err := os.Create(fn)
	if err != nil {
		return chk.Err("cannot create summary file:\n%v", err)
	}
	defer fil.Close()
	enc := utl.NewEncoder(fil, enctype)
	err = enc.Encode(o)
	if err != nil {
		return chk.Err("cannot encode summary:\n%v", err)
	}
	return
}

// ReadSummary reads summary back
//  Note: returns nil on errors
func ReadSummary(dirout, fnkey, enctype string) (o *Summary, err error) {
	fil, err := os.Open(out_sum_path(dirout, fnkey))
	if err != nil {
		return
	}
	defer fil.Close()
	o = new(Summary)
	dec := utl.NewDecoder(fil, enctype)
	err = dec.Decode(o)
	if err != nil {
		return nil, chk.Err("cannot decode summary:\n%v", err)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func out_sum_path(dirout, fnkey string) string {
	return filepath.Join(dirout, io.Sf("%s.sum", fnkey))
}
