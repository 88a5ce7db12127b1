// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eddy

import (
	"math"

	"github.com/cpmech/gosl/rnd"

	"github.com/cpmech/turbflow/errs"
)

// Dims is the domain size (Lx, Ly, Lz). Bounds are always +/- Dims/2.
type Dims [3]float64

// yz is one cached (y, z) stream for every eddy in the population, at
// one flow-iteration key.
type yz struct {
	Y []float64
	Z []float64
}

// Population is the immutable-after-construction set of eddies built
// from a Profile. Mutation is limited to SetAvgVel (the data model's
// only documented mutator). The iteration cache grows lazily via
// GetCenters/ensureIteration and is never shrunk within the lifetime
// of this value.
type Population struct {
	N int

	InitX []float64 // shared across all iteration keys
	Sigma []float64 // length scale per eddy
	Alpha [][3]float64

	Dims   Dims
	Low    [3]float64
	High   [3]float64
	AvgVel float64

	Seed int64

	cache map[int]yz
}

// stochRound derives an integer eddy count from a continuous expected
// value by stochastic rounding: floor(x) + 1[u < frac(x)], u ~ U[0,1)
// independently per call.
func stochRound(x float64) int {
	whole := math.Floor(x)
	frac := x - whole
	if rnd.Float64(0, 1) < frac {
		whole++
	}
	return int(whole)
}

// randomUnitVector samples a direction uniformly on S^2:
// phi = 2pi*U[0,1), cos(theta) = 2*U[0,1)-1.
func randomUnitVector() [3]float64 {
	phi := 2 * math.Pi * rnd.Float64(0, 1)
	cosTheta := 2*rnd.Float64(0, 1) - 1
	sinTheta := math.Sqrt(1 - cosTheta*cosTheta)
	return [3]float64{
		sinTheta * math.Cos(phi),
		sinTheta * math.Sin(phi),
		cosTheta,
	}
}

// NewPopulation validates dims/avgVel, derives eddy counts by
// stochastic rounding of each variant's density times the domain
// volume, and samples positions, length scales, and orientations.
// seed seeds the package-global RNG the same way gofem's inp package
// seeds rnd for reproducible simulations; pass 0 to use whatever state
// rnd is already in (e.g. after a prior rnd.Init elsewhere in the
// process).
func NewPopulation(p *Profile, dims Dims, avgVel float64, seed int64) (*Population, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	for i, d := range dims {
		if !(d > 0) || math.IsNaN(d) || math.IsInf(d, 0) {
			return nil, errs.New(errs.InvalidProfile, "dimension %d must be a finite positive number, got %v", i, d)
		}
	}
	if avgVel < 0 || math.IsNaN(avgVel) {
		return nil, errs.New(errs.InvalidConfig, "average velocity must be >= 0, got %v", avgVel)
	}

	minDim := math.Min(dims[0], math.Min(dims[1], dims[2]))
	for i, v := range p.Variants {
		if 2*v.LengthScale > minDim {
			return nil, errs.New(errs.EddyTooLarge,
				"variant %d: length scale %v is too large for domain %v (2*sigma must be <= min dimension)",
				i, v.LengthScale, minDim)
		}
	}

	if seed != 0 {
		rnd.Init(int(seed))
	}

	low := [3]float64{-dims[0] / 2, -dims[1] / 2, -dims[2] / 2}
	high := [3]float64{dims[0] / 2, dims[1] / 2, dims[2] / 2}
	volume := dims[0] * dims[1] * dims[2]

	counts := make([]int, len(p.Variants))
	total := 0
	for i, d := range p.densities() {
		counts[i] = stochRound(d * volume)
		total += counts[i]
	}

	pop := &Population{
		N:      total,
		Dims:   dims,
		Low:    low,
		High:   high,
		AvgVel: avgVel,
		Seed:   seed,
		cache:  make(map[int]yz),
	}

	pop.Sigma = make([]float64, 0, total)
	for i, ls := range p.lengthScales() {
		for c := 0; c < counts[i]; c++ {
			pop.Sigma = append(pop.Sigma, ls)
		}
	}

	pop.InitX = make([]float64, total)
	variantOf := make([]int, total)
	{
		idx := 0
		for vi, c := range counts {
			for k := 0; k < c; k++ {
				variantOf[idx] = vi
				idx++
			}
		}
	}
	for i := range pop.InitX {
		if ctr := p.Variants[variantOf[i]].Center; ctr != nil {
			pop.InitX[i] = ctr[0]
		} else {
			pop.InitX[i] = rnd.Float64(low[0], high[0])
		}
	}

	// Seed iteration caches for keys 0,1,2. When avgVel == 0 the three
	// keys must be identical so the x-wrap reproduces the same eddies
	// (stationary field); otherwise keys 1 and 2 are drawn
	// independently to break periodicity.
	pop.cache[0] = pop.sampleYZ(p, variantOf, low, high)
	if avgVel == 0 {
		pop.cache[1] = pop.cache[0]
		pop.cache[2] = pop.cache[0]
	} else {
		pop.cache[1] = pop.sampleYZ(p, variantOf, low, high)
		pop.cache[2] = pop.sampleYZ(p, variantOf, low, high)
	}

	pop.Alpha = make([][3]float64, total)
	intensities := make([]float64, total)
	{
		idx := 0
		for vi, c := range counts {
			for k := 0; k < c; k++ {
				intensities[idx] = p.Variants[vi].Intensity
				idx++
			}
		}
	}
	for i := range pop.Alpha {
		var dir [3]float64
		if o := p.Variants[variantOf[i]].Orientation; o != nil {
			dir = normalize(*o)
		} else {
			dir = randomUnitVector()
		}
		pop.Alpha[i] = [3]float64{dir[0] * intensities[i], dir[1] * intensities[i], dir[2] * intensities[i]}
	}

	return pop, nil
}

func normalize(v [3]float64) [3]float64 {
	n := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if n == 0 {
		return v
	}
	return [3]float64{v[0] / n, v[1] / n, v[2] / n}
}

func (pop *Population) sampleYZ(p *Profile, variantOf []int, low, high [3]float64) yz {
	out := yz{Y: make([]float64, pop.N), Z: make([]float64, pop.N)}
	for i := 0; i < pop.N; i++ {
		if ctr := p.Variants[variantOf[i]].Center; ctr != nil {
			out.Y[i] = ctr[1]
			out.Z[i] = ctr[2]
			continue
		}
		out.Y[i] = rnd.Float64(low[1], high[1])
		out.Z[i] = rnd.Float64(low[2], high[2])
	}
	return out
}

// ensureIteration samples fresh y,z for key if not already cached.
// Keys may be negative; they're used by WrapResolver at the low-x
// boundary.
func (pop *Population) ensureIteration(key int) yz {
	if c, ok := pop.cache[key]; ok {
		return c
	}
	// There is no per-variant Profile retained on Population after
	// construction (it's immutable-after-construction data, not the
	// validated Profile), so lazily-sampled iterations fall back to
	// plain uniform sampling; Center overrides only apply to the
	// eagerly-sampled keys 0,1,2 seeded at construction. Every newly
	// requested key re-samples uniformly regardless of how key 0 was
	// seeded.
	c := yz{Y: make([]float64, pop.N), Z: make([]float64, pop.N)}
	for i := 0; i < pop.N; i++ {
		c.Y[i] = rnd.Float64(pop.Low[1], pop.High[1])
		c.Z[i] = rnd.Float64(pop.Low[2], pop.High[2])
	}
	pop.cache[key] = c
	return c
}

// Centers holds the x, y, z coordinates of every eddy at one flow
// iteration. X is always pop.InitX (shared); Y, Z are the cached
// per-iteration streams.
type Centers struct {
	X []float64
	Y []float64
	Z []float64
}

// GetCenters returns (init_x, y[key], z[key]), sampling and caching
// key's y,z streams first if they aren't already cached.
func (pop *Population) GetCenters(key int) Centers {
	c := pop.ensureIteration(key)
	return Centers{X: pop.InitX, Y: c.Y, Z: c.Z}
}

// SetAvgVel is the only documented mutator on Population. Fails
// InvalidConfig if u < 0.
func (pop *Population) SetAvgVel(u float64) error {
	if u < 0 || math.IsNaN(u) {
		return errs.New(errs.InvalidConfig, "average velocity must be >= 0, got %v", u)
	}
	pop.AvgVel = u
	return nil
}
