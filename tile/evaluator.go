// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tile implements the pure function that sums the velocity
// fluctuation contributed by a filtered eddy list onto one 3D grid
// tile: a scalar, per-eddy accumulation loop in the style of gofem's
// element-assembly kernels (accumulate into a pre-allocated buffer
// across an inner element loop), rather than a materialized 5D
// broadcast tensor.
package tile

import (
	"math"

	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/turbflow/errs"
	"github.com/cpmech/turbflow/shapefunc"
)

// MaxCells bounds the M*Nx*Ny*Nz product this package will attempt
// before refusing with OutOfMemory; callers that stream over m in
// blocks never hit this (Eval never streams internally — the field
// package owns chunk sizing, this is only the last-resort guard this
// package applies to its own inputs).
const MaxCells = 1 << 34 // 2^34 (~1.7e10) eddy-node products; as float64 values that many would be 128 GiB

// Buffer is the output of one Eval call: Nx*Ny*Nz*3 float64, laid out
// row-major as V[a][b][c][0..2].
type Buffer struct {
	Nx, Ny, Nz int
	Data       []float64 // length Nx*Ny*Nz*3
}

// At returns the velocity fluctuation vector at grid index (a,b,c).
func (b *Buffer) At(a, bb, c int) [3]float64 {
	i := ((a*b.Ny+bb)*b.Nz + c) * 3
	return [3]float64{b.Data[i], b.Data[i+1], b.Data[i+2]}
}

// AddAt adds v into the velocity fluctuation vector at (a,bb,c).
func (b *Buffer) AddAt(a, bb, c int, v [3]float64) {
	i := ((a*b.Ny+bb)*b.Nz + c) * 3
	b.Data[i] += v[0]
	b.Data[i+1] += v[1]
	b.Data[i+2] += v[2]
}

// NewBuffer allocates a zeroed Buffer of the given grid shape.
func NewBuffer(nx, ny, nz int) *Buffer {
	return &Buffer{Nx: nx, Ny: ny, Nz: nz, Data: make([]float64, nx*ny*nz*3)}
}

// Eval computes V[a,b,c] = sum_m q(dhat,sigma_m) * (rhat x alpha_m)
// for every grid node (x[a],y[b],z[c]) against every eddy m in
// centers/alpha/sigma, writing into (and accumulating onto) dst.
// Summation over m is left-to-right and deterministic for a given
// input order. Pure function of its inputs; no side effects beyond
// mutating dst.
func Eval(dst *Buffer, centers, alpha [][3]float64, sigma []float64, x, y, z []float64, shape shapefunc.Shape) error {
	m := len(sigma)
	cells := int64(m) * int64(len(x)) * int64(len(y)) * int64(len(z))
	if cells > MaxCells {
		return errs.New(errs.OutOfMemory,
			"tile evaluation would require %d eddy-node products", cells).
			WithHint("reduce chunk_size so fewer grid nodes are evaluated per tile")
	}

	rhat := make([]float64, 3)
	al := make([]float64, 3)
	cross := make([]float64, 3)

	for a, xa := range x {
		for b, yb := range y {
			for c, zc := range z {
				var sum [3]float64
				for n := 0; n < m; n++ {
					ce := centers[n]
					sg := sigma[n]
					rhat[0] = (xa - ce[0]) / sg
					rhat[1] = (yb - ce[1]) / sg
					rhat[2] = (zc - ce[2]) / sg
					dhat := math.Sqrt(rhat[0]*rhat[0] + rhat[1]*rhat[1] + rhat[2]*rhat[2])
					q := shape.Q(dhat, sg)
					if q == 0 {
						continue
					}
					av := alpha[n]
					al[0], al[1], al[2] = av[0], av[1], av[2]
					utl.Cross3d(cross, rhat, al)
					sum[0] += q * cross[0]
					sum[1] += q * cross[1]
					sum[2] += q * cross[2]
				}
				dst.AddAt(a, b, c, sum)
			}
		}
	}
	return nil
}
