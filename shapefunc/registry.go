// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shapefunc implements the named, swappable family of radial
// shape functions q(dhat, sigma) used to spread an eddy's velocity
// fluctuation over its neighborhood. It replaces the original source's
// mutable-global dispatch with a closed Shape interface plus a
// name -> constructor Registry.
package shapefunc

import (
	"math"

	"github.com/cpmech/turbflow/errs"
)

// halfPi and c are the precomputed constants the Gaussian shape uses;
// c is chosen so the 1D Gaussian integral matches the quadratic's
// under the SEM convention. Keep these exact.
const (
	halfPi = math.Pi / 2
	c      = 3.6276
)

// Shape is a pure, vectorizable-by-caller radial function. Q must
// return 0 for dhat >= CutOff().
type Shape interface {
	// Name identifies this shape for persistence and CLI flags.
	Name() string
	// Q evaluates the shape at normalized distance dhat for an eddy
	// of length scale sigma.
	Q(dhat, sigma float64) float64
	// CutOff returns the normalized-distance cut-off radius beyond
	// which Q is guaranteed zero. For shapes with an intrinsic
	// cut-off (quadratic) this ignores any global setting.
	CutOff() float64
}

// Gaussian is the default built-in shape: C*exp(-(pi/2)*dhat^2) for
// dhat < CutOff, else 0. CutOff is configurable (default 2.0).
type Gaussian struct {
	cutoff float64
}

// NewGaussian builds a Gaussian shape with the given cut-off. cutoff
// must be > 0.
func NewGaussian(cutoff float64) (*Gaussian, error) {
	if cutoff <= 0 {
		return nil, errs.New(errs.InvalidConfig, "gaussian cut-off must be positive, got %v", cutoff)
	}
	return &Gaussian{cutoff: cutoff}, nil
}

func (g *Gaussian) Name() string { return "gaussian" }

func (g *Gaussian) Q(dhat, sigma float64) float64 {
	if dhat >= g.cutoff {
		return 0
	}
	return c * math.Exp(-halfPi*dhat*dhat)
}

func (g *Gaussian) CutOff() float64 { return g.cutoff }

// SetCutOff mutates the global cut-off used by this shape instance.
// Fails InvalidConfig if c <= 0.
func (g *Gaussian) SetCutOff(cutoff float64) error {
	if cutoff <= 0 {
		return errs.New(errs.InvalidConfig, "cut-off must be positive, got %v", cutoff)
	}
	g.cutoff = cutoff
	return nil
}

// Quadratic is the built-in shape sigma*(1-dhat)^2 for dhat < 1, else
// 0. Its cut-off is intrinsic and never affected by the global
// setting.
type Quadratic struct{}

func (Quadratic) Name() string { return "quadratic" }

func (Quadratic) Q(dhat, sigma float64) float64 {
	if dhat >= 1.0 {
		return 0
	}
	d := 1 - dhat
	return sigma * d * d
}

func (Quadratic) CutOff() float64 { return 1.0 }

// Registry maps a shape name to a constructor, mirroring gofem's
// name -> model factory pattern (mdl/fld, mdl/retention) rather than
// a package-level map of live instances: constructing fresh lets each
// EvaluationContext own an independent, mutable-cutoff Gaussian
// without shared state across contexts.
type Registry struct {
	ctors map[string]func(defaultCutoff float64) (Shape, error)
}

// NewRegistry returns a Registry pre-populated with the built-in
// family (gaussian, quadratic).
func NewRegistry() *Registry {
	r := &Registry{ctors: make(map[string]func(float64) (Shape, error))}
	r.ctors["gaussian"] = func(cutoff float64) (Shape, error) { return NewGaussian(cutoff) }
	r.ctors["quadratic"] = func(float64) (Shape, error) { return Quadratic{}, nil }
	return r
}

// Build constructs the named shape. defaultCutoff seeds shapes that
// honor a global cut-off (gaussian); shapes with an intrinsic cut-off
// (quadratic) ignore it. Fails UnknownShape if name isn't registered.
func (r *Registry) Build(name string, defaultCutoff float64) (Shape, error) {
	ctor, ok := r.ctors[name]
	if !ok {
		return nil, errs.New(errs.UnknownShape, "shape %q is not registered", name)
	}
	return ctor(defaultCutoff)
}

// Names lists all registered shape names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ctors))
	for n := range r.ctors {
		names = append(names, n)
	}
	return names
}
