// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store implements the persistence collaborator kept
// deliberately external to the core: reading Profile/QueryRequest
// documents, saving/loading field snapshots, dumping result tensors,
// and the tile cache sink, in the style of gofem's out/out.go
// (result persistence).
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/turbflow/eddy"
	"github.com/cpmech/turbflow/errs"
	"github.com/cpmech/turbflow/field"
)

// ReadProfile loads and validates a Profile document from path.
func ReadProfile(path string) (*eddy.Profile, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.New(errs.IoFailure, "cannot read profile %q: %v", path, err)
	}
	var p eddy.Profile
	if err := json.Unmarshal(buf, &p); err != nil {
		return nil, errs.New(errs.InvalidProfile, "cannot parse profile %q: %v", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ReadQuery loads a QueryRequest document from path.
func ReadQuery(path string) (*field.Request, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.New(errs.IoFailure, "cannot read query %q: %v", path, err)
	}
	var raw struct {
		Mode   string          `json:"mode"`
		Params json.RawMessage `json:"params"`
		Plot   *field.PlotParams `json:"plot,omitempty"`
	}
	if err := json.Unmarshal(buf, &raw); err != nil {
		return nil, errs.New(errs.InvalidQuery, "cannot parse query %q: %v", path, err)
	}
	r := &field.Request{Mode: raw.Mode, Plot: raw.Plot}
	switch raw.Mode {
	case "meshgrid":
		var p field.MeshParams
		if len(raw.Params) > 0 {
			if err := json.Unmarshal(raw.Params, &p); err != nil {
				return nil, errs.New(errs.InvalidQuery, "cannot parse meshgrid params: %v", err)
			}
		}
		r.Params = p
	case "points":
		var p field.PointsParams
		if len(raw.Params) > 0 {
			if err := json.Unmarshal(raw.Params, &p); err != nil {
				return nil, errs.New(errs.InvalidQuery, "cannot parse points params: %v", err)
			}
		}
		r.Params = p
	default:
		return nil, errs.New(errs.InvalidQuery, "unknown query mode %q", raw.Mode)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// fieldDir returns the directory a named field's artifacts live
// under, creating it if necessary.
func fieldDir(root, name string) (string, error) {
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errs.New(errs.IoFailure, "cannot create field directory %q: %v", dir, err)
	}
	return dir, nil
}

// SaveField persists pop's opaque snapshot under root/name/field.bin.
func SaveField(root, name string, pop *eddy.Population) error {
	dir, err := fieldDir(root, name)
	if err != nil {
		return err
	}
	buf, err := pop.Marshal()
	if err != nil {
		return err
	}
	path := filepath.Join(dir, "field.bin")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return errs.New(errs.IoFailure, "cannot write field snapshot %q: %v", path, err)
	}
	return nil
}

// LoadField reconstructs a Population previously saved by SaveField.
func LoadField(root, name string) (*eddy.Population, error) {
	path := filepath.Join(root, name, "field.bin")
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.New(errs.IoFailure, "cannot read field snapshot %q: %v", path, err)
	}
	return eddy.Unmarshal(buf)
}
