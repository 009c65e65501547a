// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import "math"

// Calc_K_from_Enu computes K from E and ν
func Calc_K_from_Enu(E, ν float64) float64 {
	return E / (3.0 * (1.0 - 2.0*ν))
}

// Calc_G_from_Enu computes G from E and ν
func Calc_G_from_Enu(E, ν float64) float64 {
	return E / (2.0 * (1.0 + ν))
}

// PrincipalMax returns the largest principal value of a plane stress tensor given in
// Voigt form σ = [σxx, σyy, σxy] and the unit vector along the corresponding direction
func PrincipalMax(σ []float64) (σ1 float64, n []float64) {
	c := (σ[0] + σ[1]) / 2.0
	r := math.Hypot((σ[0]-σ[1])/2.0, σ[2])
	σ1 = c + r
	θ := 0.5 * math.Atan2(2.0*σ[2], σ[0]-σ[1])
	n = []float64{math.Cos(θ), math.Sin(θ)}
	return
}
