// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eddy

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/cpmech/turbflow/errs"
)

// snapshot is the wire shape for Population, opaque to everything but
// this package (the format is delegated to the storage collaborator,
// but the encoding itself lives here so Population's unexported cache
// field can be reached without exposing a mutable view of it).
type snapshot struct {
	N      int
	InitX  []float64
	Sigma  []float64
	Alpha  [][3]float64
	Dims   Dims
	Low    [3]float64
	High   [3]float64
	AvgVel float64
	Seed   int64
	// CacheKeys/CacheY/CacheZ store only the iteration keys already
	// materialized at serialize time, so deserialize reproduces the
	// cache bit-identically without forcing every key ever used to be
	// resident, and without resampling keys that were never touched.
	CacheKeys []int
	CacheY    [][]float64
	CacheZ    [][]float64
}

// Marshal serializes pop to an opaque binary snapshot.
func (pop *Population) Marshal() ([]byte, error) {
	s := snapshot{
		N: pop.N, InitX: pop.InitX, Sigma: pop.Sigma, Alpha: pop.Alpha,
		Dims: pop.Dims, Low: pop.Low, High: pop.High, AvgVel: pop.AvgVel, Seed: pop.Seed,
	}
	for k, v := range pop.cache {
		s.CacheKeys = append(s.CacheKeys, k)
		s.CacheY = append(s.CacheY, v.Y)
		s.CacheZ = append(s.CacheZ, v.Z)
	}
	buf, err := msgpack.Marshal(&s)
	if err != nil {
		return nil, errs.New(errs.IoFailure, "failed to marshal eddy population: %v", err)
	}
	return buf, nil
}

// Unmarshal reconstructs a Population from a snapshot produced by
// Marshal, reproducing every array bit-identically.
func Unmarshal(data []byte) (*Population, error) {
	var s snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, errs.New(errs.IoFailure, "failed to unmarshal eddy population: %v", err)
	}
	pop := &Population{
		N: s.N, InitX: s.InitX, Sigma: s.Sigma, Alpha: s.Alpha,
		Dims: s.Dims, Low: s.Low, High: s.High, AvgVel: s.AvgVel, Seed: s.Seed,
		cache: make(map[int]yz, len(s.CacheKeys)),
	}
	for i, k := range s.CacheKeys {
		pop.cache[k] = yz{Y: s.CacheY[i], Z: s.CacheZ[i]}
	}
	return pop, nil
}
