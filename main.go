// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/cpmech/turbflow/cmd"
)

func main() {
	os.Exit(cmd.Execute(os.Args[1:]))
}
