// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shapefunc

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestGaussianCutoffSwitch(t *testing.T) {
	chk.PrintTitle("GaussianCutoffSwitch")

	g, err := NewGaussian(2.0)
	if err != nil {
		t.Fatal(err)
	}
	if g.Q(1.5, 1) <= 0 {
		t.Fatalf("expected q(1.5,1) > 0 with cutoff 2.0, got %v", g.Q(1.5, 1))
	}
	if err := g.SetCutOff(5.0); err != nil {
		t.Fatal(err)
	}
	if g.Q(4, 1) <= 0 {
		t.Fatalf("expected q(4,1) > 0 with cutoff 5.0, got %v", g.Q(4, 1))
	}
	if g.Q(5, 1) != 0 {
		t.Fatalf("expected q(5,1) == 0 at the cutoff boundary, got %v", g.Q(5, 1))
	}
}

func TestQuadraticCutoff(t *testing.T) {
	var q Quadratic
	if q.Q(0.5, 1) <= 0 {
		t.Fatalf("expected q(0.5,1) > 0, got %v", q.Q(0.5, 1))
	}
	if q.Q(1.5, 1) != 0 {
		t.Fatalf("expected q(1.5,1) == 0 beyond intrinsic cutoff, got %v", q.Q(1.5, 1))
	}
	chk.Scalar(t, "cutoff", 1e-17, q.CutOff(), 1.0)
}

func TestGaussianRejectsNonPositiveCutoff(t *testing.T) {
	if _, err := NewGaussian(0); err == nil {
		t.Fatal("expected error constructing gaussian with cutoff 0")
	}
	if _, err := NewGaussian(-1); err == nil {
		t.Fatal("expected error constructing gaussian with negative cutoff")
	}
}

func TestRegistryUnknownShape(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Build("nonexistent", 2.0); err == nil {
		t.Fatal("expected UnknownShape error")
	}
}

func TestRegistryBuiltins(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"gaussian", "quadratic"} {
		s, err := r.Build(name, 2.0)
		if err != nil {
			t.Fatalf("building %q: %v", name, err)
		}
		if s.Name() != name {
			t.Fatalf("expected name %q, got %q", name, s.Name())
		}
	}
}
