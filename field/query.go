// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"math"

	"github.com/cpmech/turbflow/eddy"
	"github.com/cpmech/turbflow/errs"
)

// QueryBox is the request-scoped description of a sum_vel_mesh call:
// the sub-region, sampling step, tile size, and time.
type QueryBox struct {
	Low, High [3]float64
	Step      float64
	Chunk     int
	T         float64
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Validate checks QueryBox against pop's domain bounds: low <= high
// componentwise, box contained in the domain, step > 0, chunk >= 0,
// t >= 0, and no NaN/Inf anywhere.
func (q QueryBox) Validate(pop *eddy.Population) error {
	for i := 0; i < 3; i++ {
		if !finite(q.Low[i]) || !finite(q.High[i]) {
			return errs.New(errs.InvalidQuery, "bounds must be finite, got low=%v high=%v", q.Low, q.High)
		}
		if q.Low[i] > q.High[i] {
			return errs.New(errs.InvalidQuery, "low_bounds must be <= high_bounds componentwise, got low=%v high=%v", q.Low, q.High)
		}
		if q.Low[i] < pop.Low[i] || q.High[i] > pop.High[i] {
			return errs.New(errs.InvalidQuery, "query box %v..%v is not contained in domain bounds %v..%v", q.Low, q.High, pop.Low, pop.High)
		}
	}
	if !finite(q.Step) || q.Step <= 0 {
		return errs.New(errs.InvalidQuery, "step_size must be a positive finite number, got %v", q.Step)
	}
	if q.Chunk < 0 {
		return errs.New(errs.InvalidQuery, "chunk_size must be >= 0, got %d", q.Chunk)
	}
	if !finite(q.T) || q.T < 0 {
		return errs.New(errs.InvalidQuery, "time must be >= 0, got %v", q.T)
	}
	return nil
}
