// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/turbflow/tile"
)

func sampleBuffer() *tile.Buffer {
	buf := tile.NewBuffer(2, 2, 2)
	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			for c := 0; c < 2; c++ {
				buf.AddAt(a, b, c, [3]float64{float64(a), float64(b), float64(c)})
			}
		}
	}
	return buf
}

func TestSavePlotRendersPNG(t *testing.T) {
	buf := sampleBuffer()
	out := filepath.Join(t.TempDir(), "slice.png")
	if err := SavePlot(out, buf, "z", 0, 0); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Fatal("expected a non-empty PNG file")
	}
}

func TestSavePlotRejectsUnknownAxis(t *testing.T) {
	buf := sampleBuffer()
	out := filepath.Join(t.TempDir(), "slice.png")
	if err := SavePlot(out, buf, "w", 0, 0); err == nil {
		t.Fatal("expected InvalidQuery for an unrecognized axis")
	}
}

func TestSavePlotRejectsOutOfRangeIndex(t *testing.T) {
	buf := sampleBuffer()
	out := filepath.Join(t.TempDir(), "slice.png")
	if err := SavePlot(out, buf, "x", 99, 0); err == nil {
		t.Fatal("expected InvalidQuery for an out-of-range slice index")
	}
}
