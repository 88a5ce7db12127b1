// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cpmech/turbflow/errs"
	"github.com/cpmech/turbflow/tile"
)

// heatmapGrid adapts one component of a Buffer slice into
// plotter.GridXYZ, the shape gonum/plot's heatmap renderer wants.
type heatmapGrid struct {
	rows, cols int
	values     []float64 // row-major, rows*cols
}

func (g *heatmapGrid) Dims() (c, r int) { return g.cols, g.rows }
func (g *heatmapGrid) Z(c, r int) float64 { return g.values[r*g.cols+c] }
func (g *heatmapGrid) X(c int) float64    { return float64(c) }
func (g *heatmapGrid) Y(r int) float64    { return float64(r) }

// SavePlot renders a heatmap of one velocity component, sliced at
// fixed index along axis, to a PNG at outPath. Heatmap rendering is
// deliberately kept out of the core evaluation packages and lives
// here, alongside the rest of the persistence/visualization
// collaborator.
func SavePlot(outPath string, buf *tile.Buffer, axis string, index, component int) error {
	var g *heatmapGrid
	switch axis {
	case "x":
		if index < 0 || index >= buf.Nx {
			return errs.New(errs.InvalidQuery, "plot slice index %d out of range for x-axis of size %d", index, buf.Nx)
		}
		g = &heatmapGrid{rows: buf.Ny, cols: buf.Nz, values: make([]float64, buf.Ny*buf.Nz)}
		for b := 0; b < buf.Ny; b++ {
			for c := 0; c < buf.Nz; c++ {
				v := buf.At(index, b, c)
				g.values[b*buf.Nz+c] = v[component]
			}
		}
	case "y":
		if index < 0 || index >= buf.Ny {
			return errs.New(errs.InvalidQuery, "plot slice index %d out of range for y-axis of size %d", index, buf.Ny)
		}
		g = &heatmapGrid{rows: buf.Nx, cols: buf.Nz, values: make([]float64, buf.Nx*buf.Nz)}
		for a := 0; a < buf.Nx; a++ {
			for c := 0; c < buf.Nz; c++ {
				v := buf.At(a, index, c)
				g.values[a*buf.Nz+c] = v[component]
			}
		}
	case "z":
		if index < 0 || index >= buf.Nz {
			return errs.New(errs.InvalidQuery, "plot slice index %d out of range for z-axis of size %d", index, buf.Nz)
		}
		g = &heatmapGrid{rows: buf.Nx, cols: buf.Ny, values: make([]float64, buf.Nx*buf.Ny)}
		for a := 0; a < buf.Nx; a++ {
			for b := 0; b < buf.Ny; b++ {
				v := buf.At(a, b, index)
				g.values[a*buf.Ny+b] = v[component]
			}
		}
	default:
		return errs.New(errs.InvalidQuery, "plot axis must be \"x\", \"y\", or \"z\", got %q", axis)
	}

	p := plot.New()
	p.Title.Text = "velocity fluctuation"
	hm := plotter.NewHeatMap(g, moreland.SmoothBlueRed().Palette(255))
	p.Add(hm)

	if err := p.Save(6*vg.Inch, 6*vg.Inch, outPath); err != nil {
		return errs.New(errs.IoFailure, "cannot save plot %q: %v", outPath, err)
	}
	return nil
}
