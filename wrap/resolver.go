// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wrap translates the eddy population by the mean flow and
// tiles it periodically across the 27-cell neighborhood of a query
// box, reproducing an infinite eddy field without visible periodicity
// artifacts.
package wrap

import (
	"math"

	"github.com/cpmech/turbflow/eddy"
)

// SafetyFactor is the 1.2x cut-off margin applied on top of every
// eddy's own sigma*cutoff radius when filtering against a query box;
// it must never be shrunk below 1.2 (callers may widen it indirectly
// by constructing a larger Box, but this package always applies
// exactly 1.2 internally).
const SafetyFactor = 1.2

var wrapIter = [3]int{-1, 0, 1}

// Box is the query region to filter surviving eddies against, already
// expanded by the caller if desired; Resolve applies its own
// sigma-scaled margin on top of Low/High.
type Box struct {
	Low, High [3]float64
}

// Result holds the surviving eddies, concatenated across all 27 wrap
// cells. Order is unspecified but stable across equal inputs (a
// straightforward consequence of iterating the 27 cells in a fixed
// order and appending).
type Result struct {
	Centers [][3]float64
	Alpha   [][3]float64
	Sigma   []float64
}

// Resolve returns the effective eddy list for population pop at time
// t intersecting box, including the 27-cell periodic wrap and the
// x-axis advection offset. cutOff is the active shape's normalized
// cut-off radius (ShapeRegistry.active.CutOff()). Never fails; yields
// an empty Result when no eddy is relevant.
func Resolve(pop *eddy.Population, t float64, box Box, cutOff float64) Result {
	lx := pop.Dims[0]
	ly := pop.Dims[1]
	lz := pop.Dims[2]

	d := pop.AvgVel * t
	offset := math.Mod(d, lx)
	if offset > lx/2 {
		offset -= lx
	}
	iter := int(math.Round(d/lx)) + 1

	var res Result

	for _, i := range wrapIter {
		c := pop.GetCenters(iter + i)
		shiftedX := make([]float64, pop.N)
		for n := range shiftedX {
			shiftedX[n] = c.X[n] + offset - float64(i)*lx
		}

		for _, j := range wrapIter {
			for _, k := range wrapIter {
				dy := float64(j) * ly
				dz := float64(k) * lz
				for n := 0; n < pop.N; n++ {
					sigma := pop.Sigma[n]
					margin := sigma * SafetyFactor * cutOff
					x := shiftedX[n]
					y := c.Y[n] + dy
					z := c.Z[n] + dz
					if x < box.Low[0]-margin || x > box.High[0]+margin {
						continue
					}
					if y < box.Low[1]-margin || y > box.High[1]+margin {
						continue
					}
					if z < box.Low[2]-margin || z > box.High[2]+margin {
						continue
					}
					res.Centers = append(res.Centers, [3]float64{x, y, z})
					res.Alpha = append(res.Alpha, pop.Alpha[n])
					res.Sigma = append(res.Sigma, sigma)
				}
			}
		}
	}

	return res
}
