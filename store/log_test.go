// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenLogWritesToFieldDir(t *testing.T) {
	root := t.TempDir()
	log, err := OpenLog(root, "myfield")
	if err != nil {
		t.Fatal(err)
	}
	log.Printf("building field with %d eddies\n", 42)
	if err := log.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(root, "myfield", "field.log"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "42 eddies") {
		t.Fatalf("expected log contents to contain the formatted line, got: %q", string(data))
	}
}
