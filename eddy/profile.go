// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package eddy implements the eddy Variant, Profile, and Population
// value types and the stochastic construction of a population from a
// profile.
package eddy

import (
	"github.com/cpmech/turbflow/errs"
)

// Variant is one row of a Profile: a family of eddies sharing density,
// length scale, and intensity. Orientation and Center let a variant
// pin its eddies to a fixed direction/position instead of sampling
// them randomly; both default to fully-random behavior when nil.
type Variant struct {
	Density     float64    `json:"density"`
	LengthScale float64    `json:"length_scale"`
	Intensity   float64    `json:"intensity"`
	Orientation *[3]float64 `json:"orientation,omitempty"`
	Center      *[3]float64 `json:"center,omitempty"`
}

func (v Variant) validate(index int) error {
	if !(v.Density > 0) {
		return errs.New(errs.InvalidProfile, "variant %d: density must be a positive number", index)
	}
	if !(v.LengthScale > 0) {
		return errs.New(errs.InvalidProfile, "variant %d: length_scale must be a positive number", index)
	}
	if !(v.Intensity > 0) {
		return errs.New(errs.InvalidProfile, "variant %d: intensity must be a positive number", index)
	}
	return nil
}

// Profile is the validated, immutable input record consumed by
// Population construction. Settings is an opaque bag currently unused
// by the core, carried through only for forward compatibility of the
// on-disk document.
type Profile struct {
	Settings map[string]interface{} `json:"settings,omitempty"`
	Variants []Variant               `json:"variants"`
}

// Validate checks the non-empty-variant-list and per-variant
// positivity invariants from the data model table. It is called
// automatically by NewPopulation, but is exported so store.ReadProfile
// can fail fast before touching the filesystem further.
func (p *Profile) Validate() error {
	if len(p.Variants) == 0 {
		return errs.New(errs.InvalidProfile, "eddy variants list must not be empty")
	}
	for i, v := range p.Variants {
		if err := v.validate(i); err != nil {
			return err
		}
	}
	return nil
}

func (p *Profile) densities() []float64 {
	out := make([]float64, len(p.Variants))
	for i, v := range p.Variants {
		out[i] = v.Density
	}
	return out
}

func (p *Profile) lengthScales() []float64 {
	out := make([]float64, len(p.Variants))
	for i, v := range p.Variants {
		out[i] = v.LengthScale
	}
	return out
}
