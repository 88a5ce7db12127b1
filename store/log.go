// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/turbflow/errs"
)

// Log is a per-field run log, mirroring inp.LogFile / fem.End()'s
// flush-on-exit discipline: every line written through it is echoed
// to stdout and also goes to the field's directory as name/field.log.
type Log struct {
	file *os.File
}

// OpenLog opens (creating/truncating) root/name/field.log for
// appending diagnostic lines during a run.
func OpenLog(root, name string) (*Log, error) {
	dir, err := fieldDir(root, name)
	if err != nil {
		return nil, err
	}
	f, err := os.Create(filepath.Join(dir, "field.log"))
	if err != nil {
		return nil, errs.New(errs.IoFailure, "cannot open log file: %v", err)
	}
	return &Log{file: f}, nil
}

// Printf writes a formatted line to both the log file and stdout via
// gosl/io.Pf, the same console helper gofem's fem/main packages use
// for progress output. io.Ff formats into a bytes.Buffer rather than a
// file, so the log file itself is appended to directly with fmt.Fprintf.
func (l *Log) Printf(format string, args ...interface{}) {
	io.Pf(format, args...)
	fmt.Fprintf(l.file, format, args...)
}

// Close flushes and closes the underlying log file.
func (l *Log) Close() error {
	return l.file.Close()
}
