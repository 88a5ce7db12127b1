// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"github.com/cpmech/turbflow/eddy"
	"github.com/cpmech/turbflow/errs"
)

// MeshParams is the params object of a "meshgrid" QueryRequest.
// ReturnTensor mirrors the original source's do_return flag: when
// false, the evaluator still runs (e.g. purely to populate a tile
// cache) but SumVelMesh returns a nil tensor.
type MeshParams struct {
	LowBounds  *[3]float64 `json:"low_bounds,omitempty"`
	HighBounds *[3]float64 `json:"high_bounds,omitempty"`
	StepSize   *float64    `json:"step_size,omitempty"`
	ChunkSize  *int        `json:"chunk_size,omitempty"`
	Time       *float64    `json:"time,omitempty"`
	ReturnTensor *bool     `json:"return_tensor,omitempty"`
}

// PointsParams is the params object of a "points" QueryRequest.
type PointsParams struct {
	Coords [][3]float64 `json:"coords,omitempty"`
	Time   *float64     `json:"time,omitempty"`
}

// PlotParams describes an optional heatmap render requested alongside
// a meshgrid query; plotting itself is implemented by the store
// package, this is just the wire shape.
type PlotParams struct {
	Axis  string `json:"axis"`  // "x", "y", or "z": which axis to slice
	Index int    `json:"index"` // index along Axis to slice at
	Out   string `json:"out"`   // parsed but not read: the CLI writes the plot to its --plot path
}

// Request is the external QueryRequest record: one of mode "meshgrid"
// or mode "points".
type Request struct {
	Mode   string        `json:"mode"`
	Params interface{}   `json:"params"`
	Plot   *PlotParams   `json:"plot,omitempty"`
}

// Defaults: step_size=0.2, chunk_size=5, time=0, low/high bounds =
// domain bounds, coords=[[0,0,0]].
const (
	DefaultStepSize  = 0.2
	DefaultChunkSize = 5
)

// ResolveMeshQuery fills in defaults (domain bounds, step/chunk/time)
// and builds the QueryBox the evaluator consumes.
func ResolveMeshQuery(p MeshParams, pop *eddy.Population) QueryBox {
	q := QueryBox{
		Low:   pop.Low,
		High:  pop.High,
		Step:  DefaultStepSize,
		Chunk: DefaultChunkSize,
		T:     0,
	}
	if p.LowBounds != nil {
		q.Low = *p.LowBounds
	}
	if p.HighBounds != nil {
		q.High = *p.HighBounds
	}
	if p.StepSize != nil {
		q.Step = *p.StepSize
	}
	if p.ChunkSize != nil {
		q.Chunk = *p.ChunkSize
	}
	if p.Time != nil {
		q.T = *p.Time
	}
	return q
}

// ResolvePointsQueries builds one single-point QueryBox per coordinate:
// a point query is a sum_vel_mesh call with low=high=point, collated
// across all requested points.
func ResolvePointsQueries(p PointsParams) []QueryBox {
	coords := p.Coords
	if len(coords) == 0 {
		coords = [][3]float64{{0, 0, 0}}
	}
	t := 0.0
	if p.Time != nil {
		t = *p.Time
	}
	out := make([]QueryBox, len(coords))
	for i, c := range coords {
		out[i] = QueryBox{Low: c, High: c, Step: DefaultStepSize, Chunk: DefaultChunkSize, T: t}
	}
	return out
}

// Validate checks the request shape itself (mode recognized, params
// present and of the right kind for the mode).
func (r *Request) Validate() error {
	switch r.Mode {
	case "meshgrid", "points":
	default:
		return errs.New(errs.InvalidQuery, "unknown query mode %q, expected \"meshgrid\" or \"points\"", r.Mode)
	}
	if r.Params == nil {
		return errs.New(errs.InvalidQuery, "query request is missing params")
	}
	switch r.Params.(type) {
	case MeshParams:
		if r.Mode == "meshgrid" {
			return nil
		}
	case PointsParams:
		if r.Mode == "points" {
			return nil
		}
	}
	return errs.New(errs.InvalidQuery, "params of type %T do not match query mode %q", r.Params, r.Mode)
}
