// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cpmech/turbflow/errs"
	"github.com/cpmech/turbflow/field"
	"github.com/cpmech/turbflow/tile"
)

// tensorHeader is the small JSON sidecar written next to a dense
// binary tensor dump: a raw result tensor is a dense 4D float array
// with shape [Nx, Ny, Nz, 3] in row-major natural order.
type tensorHeader struct {
	Nx, Ny, Nz int
	LowBounds  [3]float64
	HighBounds [3]float64
	StepSize   float64
	Time       float64
}

// SaveTensor writes buf as a dense row-major binary file
// (path+".bin") plus a JSON header (path+".json") describing its
// shape and the query bounds it was computed from.
func SaveTensor(path string, buf *tile.Buffer, q field.QueryBox) error {
	hdr := tensorHeader{Nx: buf.Nx, Ny: buf.Ny, Nz: buf.Nz, LowBounds: q.Low, HighBounds: q.High, StepSize: q.Step, Time: q.T}
	hb, err := json.MarshalIndent(hdr, "", "  ")
	if err != nil {
		return errs.New(errs.IoFailure, "cannot marshal tensor header: %v", err)
	}
	if err := os.WriteFile(path+".json", hb, 0o644); err != nil {
		return errs.New(errs.IoFailure, "cannot write tensor header %q: %v", path+".json", err)
	}

	f, err := os.Create(path + ".bin")
	if err != nil {
		return errs.New(errs.IoFailure, "cannot create tensor file %q: %v", path+".bin", err)
	}
	defer f.Close()

	bits := make([]byte, 8*len(buf.Data))
	for i, v := range buf.Data {
		binary.LittleEndian.PutUint64(bits[i*8:], math.Float64bits(v))
	}
	if _, err := f.Write(bits); err != nil {
		return errs.New(errs.IoFailure, "cannot write tensor data %q: %v", path+".bin", err)
	}
	return nil
}

// TileCache implements field.TileSink, writing each x-plane tensor to
// its own file under dir/chunks/ plus a single manifest.json: a sink
// with two calls, begin(manifest) and push(x_index, tensor).
type TileCache struct {
	Dir string
}

// NewTileCache prepares (clearing any previous contents of) the tile
// cache directory dir/chunks, matching file_io.clear_cache("chunks").
func NewTileCache(dir string) (*TileCache, error) {
	chunks := filepath.Join(dir, "chunks")
	if err := os.RemoveAll(chunks); err != nil {
		return nil, errs.New(errs.IoFailure, "cannot clear tile cache %q: %v", chunks, err)
	}
	if err := os.MkdirAll(chunks, 0o755); err != nil {
		return nil, errs.New(errs.IoFailure, "cannot create tile cache %q: %v", chunks, err)
	}
	return &TileCache{Dir: chunks}, nil
}

func (c *TileCache) Begin(m field.Manifest) error {
	buf, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.Dir, "manifest.json"), buf, 0o644)
}

func (c *TileCache) Push(xIndexLo int, xCoordRange [2]int, buf *tile.Buffer) error {
	bits := make([]byte, 8*len(buf.Data))
	for i, v := range buf.Data {
		binary.LittleEndian.PutUint64(bits[i*8:], math.Float64bits(v))
	}
	name := filepath.Join(c.Dir, "x_"+strconv.Itoa(xIndexLo)+".bin")
	return os.WriteFile(name, bits, 0o644)
}
