// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"context"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/turbflow/eddy"
	"github.com/cpmech/turbflow/shapefunc"
)

func buildPop(t *testing.T, dims eddy.Dims, avgVel float64, seed int64) *eddy.Population {
	t.Helper()
	p := &eddy.Profile{
		Variants: []eddy.Variant{
			{Density: 5, LengthScale: 0.1, Intensity: 1.0},
		},
	}
	pop, err := eddy.NewPopulation(p, dims, avgVel, seed)
	if err != nil {
		t.Fatal(err)
	}
	return pop
}

func gaussianCtx(t *testing.T, threads int) *Context {
	t.Helper()
	shape, err := shapefunc.NewGaussian(2.0)
	if err != nil {
		t.Fatal(err)
	}
	return &Context{Shape: shape, Threads: threads}
}

func TestSumVelMeshRejectsOutOfDomainQuery(t *testing.T) {
	chk.PrintTitle("SumVelMeshRejectsOutOfDomainQuery")
	pop := buildPop(t, eddy.Dims{2, 2, 2}, 0, 5)
	eval := NewEvaluator(pop)
	q := QueryBox{Low: [3]float64{-5, -5, -5}, High: [3]float64{5, 5, 5}, Step: 0.2, Chunk: 5}
	_, err := eval.SumVelMesh(context.Background(), q, gaussianCtx(t, 1), Options{ReturnTensor: true})
	if err == nil {
		t.Fatal("expected InvalidQuery for a box outside the domain")
	}
}

func TestSumVelMeshChunkSizeIsDeterministic(t *testing.T) {
	pop := buildPop(t, eddy.Dims{2, 2, 2}, 0, 9)
	eval := NewEvaluator(pop)
	base := QueryBox{Low: [3]float64{-0.8, -0.8, -0.8}, High: [3]float64{0.8, 0.8, 0.8}, Step: 0.2}

	q1 := base
	q1.Chunk = 1
	bufChunk1, err := eval.SumVelMesh(context.Background(), q1, gaussianCtx(t, 1), Options{ReturnTensor: true})
	if err != nil {
		t.Fatal(err)
	}

	qN := base
	qN.Chunk = 0 // whole-axis tile
	bufChunkN, err := eval.SumVelMesh(context.Background(), qN, gaussianCtx(t, 1), Options{ReturnTensor: true})
	if err != nil {
		t.Fatal(err)
	}

	if bufChunk1.Nx != bufChunkN.Nx || bufChunk1.Ny != bufChunkN.Ny || bufChunk1.Nz != bufChunkN.Nz {
		t.Fatalf("grid shape mismatch: %v,%v,%v vs %v,%v,%v",
			bufChunk1.Nx, bufChunk1.Ny, bufChunk1.Nz, bufChunkN.Nx, bufChunkN.Ny, bufChunkN.Nz)
	}
	for a := 0; a < bufChunk1.Nx; a++ {
		for b := 0; b < bufChunk1.Ny; b++ {
			for c := 0; c < bufChunk1.Nz; c++ {
				v1 := bufChunk1.At(a, b, c)
				vN := bufChunkN.At(a, b, c)
				chk.Scalar(t, "vx", 1e-9, v1[0], vN[0])
				chk.Scalar(t, "vy", 1e-9, v1[1], vN[1])
				chk.Scalar(t, "vz", 1e-9, v1[2], vN[2])
			}
		}
	}
}

func TestSumVelMeshSinglePointBox(t *testing.T) {
	pop := buildPop(t, eddy.Dims{2, 2, 2}, 0, 3)
	eval := NewEvaluator(pop)
	q := QueryBox{Low: [3]float64{0, 0, 0}, High: [3]float64{0, 0, 0}, Step: 0.2, Chunk: 5}
	buf, err := eval.SumVelMesh(context.Background(), q, gaussianCtx(t, 1), Options{ReturnTensor: true})
	if err != nil {
		t.Fatal(err)
	}
	chk.IntAssert(buf.Nx, 1)
	chk.IntAssert(buf.Ny, 1)
	chk.IntAssert(buf.Nz, 1)
}

func TestSumVelMeshThreadCountDoesNotChangeResult(t *testing.T) {
	pop := buildPop(t, eddy.Dims{2, 2, 2}, 1.0, 17)
	q := QueryBox{Low: [3]float64{-0.9, -0.9, -0.9}, High: [3]float64{0.9, 0.9, 0.9}, Step: 0.3, Chunk: 2, T: 0.4}

	buf1, err := NewEvaluator(pop).SumVelMesh(context.Background(), q, gaussianCtx(t, 1), Options{ReturnTensor: true})
	if err != nil {
		t.Fatal(err)
	}
	buf4, err := NewEvaluator(pop).SumVelMesh(context.Background(), q, gaussianCtx(t, 4), Options{ReturnTensor: true})
	if err != nil {
		t.Fatal(err)
	}
	for a := 0; a < buf1.Nx; a++ {
		for b := 0; b < buf1.Ny; b++ {
			for c := 0; c < buf1.Nz; c++ {
				v1 := buf1.At(a, b, c)
				v4 := buf4.At(a, b, c)
				chk.Scalar(t, "vx", 1e-9, v1[0], v4[0])
				chk.Scalar(t, "vy", 1e-9, v1[1], v4[1])
				chk.Scalar(t, "vz", 1e-9, v1[2], v4[2])
			}
		}
	}
}

func TestSumVelMeshCancellation(t *testing.T) {
	pop := buildPop(t, eddy.Dims{2, 2, 2}, 0, 23)
	eval := NewEvaluator(pop)
	q := QueryBox{Low: [3]float64{-0.9, -0.9, -0.9}, High: [3]float64{0.9, 0.9, 0.9}, Step: 0.1, Chunk: 1}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := eval.SumVelMesh(ctx, q, gaussianCtx(t, 1), Options{ReturnTensor: true})
	if err == nil {
		t.Fatal("expected a Cancelled error for an already-cancelled context")
	}
}

func TestStepCoordsStartsAtLowAndStaysWithinHigh(t *testing.T) {
	coords := stepCoords(-1, 1, 0.5)
	if coords[0] != -1 {
		t.Fatalf("expected first coord to be low, got %v", coords[0])
	}
	if last := coords[len(coords)-1]; last > 1 {
		t.Fatalf("expected last coord <= high, got %v", last)
	}
}

func TestChunkSplitMergesTrailingSingleton(t *testing.T) {
	ranges := chunkSplit(7, 3)
	for _, r := range ranges {
		if r.hi-r.lo+1 == 1 && len(ranges) > 1 && r.lo != 0 {
			t.Fatalf("trailing singleton tile should have been merged into its predecessor: %+v", ranges)
		}
	}
}

func TestChunkSplitZeroMeansWholeAxis(t *testing.T) {
	ranges := chunkSplit(10, 0)
	if len(ranges) != 1 || ranges[0].lo != 0 || ranges[0].hi != 9 {
		t.Fatalf("expected a single whole-axis tile, got %+v", ranges)
	}
}
