// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package field implements the orchestration of the tiled,
// wrap-resolved, shape-summed velocity field computation. It owns
// QueryBox/QueryRequest validation and the evaluation context that
// replaces the original source's process-wide mutable shape/cutoff
// globals with an explicit, immutable-per-call value.
package field

import (
	"github.com/cpmech/turbflow/errs"
	"github.com/cpmech/turbflow/shapefunc"
)

// Context carries the active shape function and the x-tile
// parallelism degree into one evaluation call. Changing its Shape
// mid-evaluation is a programming error; it is only ever read by
// SumVelMesh, never mutated by it.
type Context struct {
	Shape   shapefunc.Shape
	Threads int
}

// DefaultContext returns the CLI's convenience default: Gaussian with
// cut-off 2.0, single-threaded.
func DefaultContext() (*Context, error) {
	g, err := shapefunc.NewGaussian(2.0)
	if err != nil {
		return nil, err
	}
	return &Context{Shape: g, Threads: 1}, nil
}

// WithShape returns a copy of ctx using shape instead.
func (c *Context) WithShape(shape shapefunc.Shape) *Context {
	return &Context{Shape: shape, Threads: c.Threads}
}

// WithThreads returns a copy of ctx with the given x-tile parallelism
// degree. Fails InvalidConfig if threads < 1.
func (c *Context) WithThreads(threads int) (*Context, error) {
	if threads < 1 {
		return nil, errs.New(errs.InvalidConfig, "threads must be >= 1, got %d", threads)
	}
	return &Context{Shape: c.Shape, Threads: threads}, nil
}
