// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
)

// ErrNonConvergence is returned when a load step does not converge
var ErrNonConvergence = errors.New("load step did not converge")

// Solver implements the actual solver (load stepping)
type Solver interface {
	Run() (err error)
}

// allocators holds all available solvers
var allocators = make(map[string]func(dom *Domain, sum *Summary) Solver)
