// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/cpmech/turbflow/errs"
)

// exitCodeFor maps a core/store error to a process exit code: 0
// success, 1 validation failure, 2 runtime/IO failure. It also prints
// the diagnostic (and hint, if any) to stderr, the dedicated error
// stream, the way main.go prints a crashed gofem simulation's final
// error to the console.
func exitCodeFor(err error) int {
	var te *errs.Error
	if !errors.As(err, &te) {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 2
	}
	fmt.Fprintf(os.Stderr, "ERROR: %s: %s\n", te.Kind, te.Cause)
	if te.Hint != "" {
		fmt.Fprintf(os.Stderr, "hint: %s\n", te.Hint)
	}
	switch te.Kind {
	case errs.InvalidProfile, errs.InvalidConfig, errs.EddyTooLarge, errs.InvalidQuery, errs.UnknownShape:
		return 1
	default:
		return 2
	}
}
