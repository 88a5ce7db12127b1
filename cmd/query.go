// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"path/filepath"

	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/cpmech/turbflow/errs"
	"github.com/cpmech/turbflow/field"
	"github.com/cpmech/turbflow/shapefunc"
	"github.com/cpmech/turbflow/store"
	"github.com/cpmech/turbflow/tile"
)

var (
	queryName    string
	queryPath    string
	queryShape   string
	queryCutoff  float64
	queryThreads int
	queryPlotOut string
	queryCache   bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run one query against a persisted field",
	RunE: func(c *cobra.Command, args []string) error {
		banner()

		pop, err := store.LoadField(StoreRoot, queryName)
		if err != nil {
			return err
		}

		req, err := store.ReadQuery(queryPath)
		if err != nil {
			return err
		}

		registry := shapefunc.NewRegistry()
		shape, err := registry.Build(queryShape, queryCutoff)
		if err != nil {
			return err
		}
		fctx := &field.Context{Shape: shape, Threads: queryThreads}

		eval := field.NewEvaluator(pop)

		switch req.Mode {
		case "meshgrid":
			p := req.Params.(field.MeshParams)
			q := field.ResolveMeshQuery(p, pop)
			returnTensor := true
			if p.ReturnTensor != nil {
				returnTensor = *p.ReturnTensor
			}

			opts := field.Options{ReturnTensor: returnTensor}
			var sink *store.TileCache
			if queryCache {
				sink, err = store.NewTileCache(storeFieldDir(queryName))
				if err != nil {
					return err
				}
				opts.CacheTiles = true
				opts.Sink = sink
			}

			buf, err := eval.SumVelMesh(context.Background(), q, fctx, opts)
			if err != nil {
				return err
			}

			if buf != nil {
				summarize(buf)
				if queryPlotOut != "" {
					axis, index := "z", buf.Nz/2
					if req.Plot != nil {
						axis, index = req.Plot.Axis, req.Plot.Index
					}
					if err := store.SavePlot(queryPlotOut, buf, axis, index, 0); err != nil {
						return err
					}
				}
			}
			return nil

		case "points":
			p := req.Params.(field.PointsParams)
			boxes := field.ResolvePointsQueries(p)
			for i, qb := range boxes {
				buf, err := eval.SumVelMesh(context.Background(), qb, fctx, field.Options{ReturnTensor: true})
				if err != nil {
					return err
				}
				v := buf.At(0, 0, 0)
				io.Pf("point %d: v = (%.6f, %.6f, %.6f)\n", i, v[0], v[1], v[2])
			}
			return nil
		}
		return errs.New(errs.InvalidQuery, "unhandled query mode %q", req.Mode)
	},
}

func init() {
	queryCmd.Flags().StringVarP(&queryName, "name", "n", "", "field name to query (required)")
	queryCmd.Flags().StringVarP(&queryPath, "query", "q", "", "path to the query request JSON document (required)")
	queryCmd.Flags().StringVarP(&queryShape, "shape", "s", "gaussian", "active shape function: gaussian|quadratic")
	queryCmd.Flags().Float64VarP(&queryCutoff, "cutoff", "c", 2.0, "global shape cut-off (only honored by shapes that use one)")
	queryCmd.Flags().IntVar(&queryThreads, "threads", 1, "x-tile parallelism degree")
	queryCmd.Flags().StringVar(&queryPlotOut, "plot", "", "write a heatmap PNG of the result to this path")
	queryCmd.Flags().BoolVar(&queryCache, "cache-tiles", false, "stream per-x-plane tiles to the on-disk tile cache")
	queryCmd.MarkFlagRequired("name")
	queryCmd.MarkFlagRequired("query")
}

func summarize(buf *tile.Buffer) {
	n := buf.Nx * buf.Ny * buf.Nz
	vx := make([]float64, n)
	vy := make([]float64, n)
	vz := make([]float64, n)
	idx := 0
	for a := 0; a < buf.Nx; a++ {
		for b := 0; b < buf.Ny; b++ {
			for c := 0; c < buf.Nz; c++ {
				v := buf.At(a, b, c)
				vx[idx], vy[idx], vz[idx] = v[0], v[1], v[2]
				idx++
			}
		}
	}
	io.Pf("mean velocity: (%.6f, %.6f, %.6f)\n", stat.Mean(vx, nil), stat.Mean(vy, nil), stat.Mean(vz, nil))
	io.Pf("stddev velocity: (%.6f, %.6f, %.6f)\n", stat.StdDev(vx, nil), stat.StdDev(vy, nil), stat.StdDev(vz, nil))
}

func storeFieldDir(name string) string {
	return filepath.Join(StoreRoot, name)
}
