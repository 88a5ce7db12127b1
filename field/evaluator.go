// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"context"
	"sync"

	"github.com/cpmech/turbflow/eddy"
	"github.com/cpmech/turbflow/errs"
	"github.com/cpmech/turbflow/tile"
	"github.com/cpmech/turbflow/wrap"
)

// MaxTensorCells bounds Nx*Ny*Nz*3 for a single return_tensor
// allocation; a query that would exceed it must shrink its box, grow
// its step, or rely on cache_tiles streaming instead.
const MaxTensorCells = 1 << 30

// axisRange is one contiguous chunk of grid indices along an axis.
type axisRange struct{ lo, hi int } // inclusive

// Manifest describes one sum_vel_mesh call's tiling, handed to a
// TileSink's Begin before any Push: the tile cache writes per-x-plane
// tensors plus a manifest JSON containing low_bounds, high_bounds,
// step_size, and the per-axis tile index ranges.
type Manifest struct {
	LowBounds, HighBounds [3]float64
	StepSize              float64
	XTiles, YTiles, ZTiles [][2]int
}

// TileSink is the narrow interface the evaluator calls into when
// CacheTiles is set. The core never reads from it; store.TileCache
// implements it. Calls are serialized by the evaluator even when
// x-tile work is parallelized.
type TileSink interface {
	Begin(m Manifest) error
	Push(xIndexLo int, xCoordRange [2]int, buf *tile.Buffer) error
}

// Options selects sum_vel_mesh's output modes; both may be combined.
type Options struct {
	ReturnTensor bool
	CacheTiles   bool
	Sink         TileSink
}

// Evaluator orchestrates wrap resolution and tile evaluation over a
// tiled query box, operating on one Population.
type Evaluator struct {
	Pop *eddy.Population
}

// NewEvaluator builds an Evaluator over pop.
func NewEvaluator(pop *eddy.Population) *Evaluator {
	return &Evaluator{Pop: pop}
}

// stepCoords generates coords = low + step*k for k=0,1,... while
// coords[k] <= high+eps, then drops the last entry if it exceeds high.
// Guarantees coords[0] == low and coords[len-1] <= high.
func stepCoords(low, high, step float64) []float64 {
	eps := step * 1e-9
	var coords []float64
	for k := 0; ; k++ {
		c := low + step*float64(k)
		if c > high+eps {
			break
		}
		coords = append(coords, c)
	}
	if len(coords) == 0 {
		coords = []float64{low}
	}
	if coords[len(coords)-1] > high {
		coords = coords[:len(coords)-1]
	}
	if len(coords) == 0 {
		coords = []float64{low}
	}
	return coords
}

// chunkSplit partitions [0,n) into contiguous index ranges of size
// chunk. A final chunk of length 1 is merged into its predecessor; a
// single-element axis yields one tile; chunk==0 yields one tile
// spanning the whole axis.
func chunkSplit(n, chunk int) []axisRange {
	if n <= 1 {
		return []axisRange{{0, n - 1}}
	}
	if chunk <= 0 {
		return []axisRange{{0, n - 1}}
	}
	var ranges []axisRange
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk - 1
		if hi >= n {
			hi = n - 1
		}
		ranges = append(ranges, axisRange{lo, hi})
	}
	if len(ranges) >= 2 {
		last := ranges[len(ranges)-1]
		if last.hi-last.lo+1 == 1 {
			ranges = ranges[:len(ranges)-1]
			ranges[len(ranges)-1].hi = last.hi
		}
	}
	return ranges
}

func withinMargin(v, margin, lo, hi float64) bool {
	return v > lo-margin && v < hi+margin
}

// filterByX narrows a wrap.Result to eddies whose x falls within
// [lo,hi] expanded by each eddy's own sigma*1.2*cutOff margin.
func filterByX(r wrap.Result, lo, hi, cutOff float64) wrap.Result {
	var out wrap.Result
	for i, c := range r.Centers {
		margin := r.Sigma[i] * wrap.SafetyFactor * cutOff
		if withinMargin(c[0], margin, lo, hi) {
			out.Centers = append(out.Centers, c)
			out.Alpha = append(out.Alpha, r.Alpha[i])
			out.Sigma = append(out.Sigma, r.Sigma[i])
		}
	}
	return out
}

func filterByY(r wrap.Result, lo, hi, cutOff float64) wrap.Result {
	var out wrap.Result
	for i, c := range r.Centers {
		margin := r.Sigma[i] * wrap.SafetyFactor * cutOff
		if withinMargin(c[1], margin, lo, hi) {
			out.Centers = append(out.Centers, c)
			out.Alpha = append(out.Alpha, r.Alpha[i])
			out.Sigma = append(out.Sigma, r.Sigma[i])
		}
	}
	return out
}

func filterByZ(r wrap.Result, lo, hi, cutOff float64) wrap.Result {
	var out wrap.Result
	for i, c := range r.Centers {
		margin := r.Sigma[i] * wrap.SafetyFactor * cutOff
		if withinMargin(c[2], margin, lo, hi) {
			out.Centers = append(out.Centers, c)
			out.Alpha = append(out.Alpha, r.Alpha[i])
			out.Sigma = append(out.Sigma, r.Sigma[i])
		}
	}
	return out
}

// SumVelMesh is the public sum_vel_mesh operation.
func (e *Evaluator) SumVelMesh(ctx context.Context, q QueryBox, fctx *Context, opts Options) (*tile.Buffer, error) {
	if err := q.Validate(e.Pop); err != nil {
		return nil, err
	}
	if opts.CacheTiles && opts.Sink == nil {
		return nil, errs.New(errs.InvalidQuery, "cache_tiles requires a non-nil Sink")
	}

	x := stepCoords(q.Low[0], q.High[0], q.Step)
	y := stepCoords(q.Low[1], q.High[1], q.Step)
	z := stepCoords(q.Low[2], q.High[2], q.Step)

	xTiles := chunkSplit(len(x), q.Chunk)
	yTiles := chunkSplit(len(y), q.Chunk)
	zTiles := chunkSplit(len(z), q.Chunk)

	if opts.ReturnTensor {
		cells := int64(len(x)) * int64(len(y)) * int64(len(z)) * 3
		if cells > MaxTensorCells {
			return nil, errs.New(errs.OutOfMemory, "return tensor would require %d float64 cells", cells).
				WithHint("reduce the query box, increase step_size, or use cache_tiles streaming instead of return_tensor")
		}
	}

	cutOff := fctx.Shape.CutOff()
	global := wrap.Resolve(e.Pop, q.T, wrap.Box{Low: q.Low, High: q.High}, cutOff)

	var out *tile.Buffer
	if opts.ReturnTensor {
		// Every x-tile below writes its full disjoint x-slab (overwrite,
		// not add), so this only needs to be correctly sized, not
		// pre-filled with the mean-flow background.
		out = tile.NewBuffer(len(x), len(y), len(z))
	}

	if opts.CacheTiles {
		m := Manifest{LowBounds: q.Low, HighBounds: q.High, StepSize: q.Step}
		for _, xc := range xTiles {
			m.XTiles = append(m.XTiles, [2]int{xc.lo, xc.hi})
		}
		for _, yc := range yTiles {
			m.YTiles = append(m.YTiles, [2]int{yc.lo, yc.hi})
		}
		for _, zc := range zTiles {
			m.ZTiles = append(m.ZTiles, [2]int{zc.lo, zc.hi})
		}
		if err := opts.Sink.Begin(m); err != nil {
			return nil, errs.New(errs.IoFailure, "tile sink Begin failed: %v", err)
		}
	}

	threads := fctx.Threads
	if threads < 1 {
		threads = 1
	}

	var mu sync.Mutex // serializes sink.Push across goroutines
	var wg sync.WaitGroup
	sem := make(chan struct{}, threads)
	errCh := make(chan error, len(xTiles))

	processXTile := func(xc axisRange) error {
		if err := ctx.Err(); err != nil {
			return errs.New(errs.Cancelled, "evaluation cancelled before x-tile [%d,%d]", xc.lo, xc.hi)
		}
		mx := filterByX(global, x[xc.lo], x[xc.hi], cutOff)

		nx := xc.hi - xc.lo + 1
		plane := tile.NewBuffer(nx, len(y), len(z))
		for a := 0; a < nx; a++ {
			for b := 0; b < len(y); b++ {
				for c := 0; c < len(z); c++ {
					plane.AddAt(a, b, c, [3]float64{e.Pop.AvgVel, 0, 0})
				}
			}
		}

		for _, yc := range yTiles {
			my := filterByY(mx, y[yc.lo], y[yc.hi], cutOff)
			for _, zc := range zTiles {
				mz := filterByZ(my, z[zc.lo], z[zc.hi], cutOff)

				sub := tile.NewBuffer(nx, yc.hi-yc.lo+1, zc.hi-zc.lo+1)
				if err := tile.Eval(sub, mz.Centers, mz.Alpha, mz.Sigma,
					x[xc.lo:xc.hi+1], y[yc.lo:yc.hi+1], z[zc.lo:zc.hi+1], fctx.Shape); err != nil {
					return err
				}
				for a := 0; a < sub.Nx; a++ {
					for b := 0; b < sub.Ny; b++ {
						for c := 0; c < sub.Nz; c++ {
							plane.AddAt(a, yc.lo+b, zc.lo+c, sub.At(a, b, c))
						}
					}
				}
			}
		}

		if opts.ReturnTensor {
			for a := 0; a < nx; a++ {
				for b := 0; b < len(y); b++ {
					for c := 0; c < len(z); c++ {
						v := plane.At(a, b, c)
						// overwrite, not add: plane already carries the
						// background and the full fluctuation for this slab.
						i := (((xc.lo+a)*out.Ny + b) * out.Nz + c) * 3
						out.Data[i] = v[0]
						out.Data[i+1] = v[1]
						out.Data[i+2] = v[2]
					}
				}
			}
		}

		if opts.CacheTiles {
			mu.Lock()
			err := opts.Sink.Push(xc.lo, [2]int{xc.lo, xc.hi}, plane)
			mu.Unlock()
			if err != nil {
				return errs.New(errs.IoFailure, "tile sink Push failed: %v", err)
			}
		}
		return nil
	}

	for _, xc := range xTiles {
		xc := xc
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			if err := processXTile(xc); err != nil {
				select {
				case errCh <- err:
				default:
				}
			}
		}()
	}
	wg.Wait()
	close(errCh)
	if err, ok := <-errCh; ok {
		return nil, err
	}

	if !opts.ReturnTensor {
		return nil, nil
	}
	return out, nil
}
