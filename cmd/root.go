// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmd implements the CLI front end: "new" and "query"
// subcommands built with cobra, grounded on
// o9nn-echo.go/cmd/echo.go's command/flag structure.
package cmd

import (
	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
)

// StoreRoot is the directory persisted fields live under. It is a
// package-level default (overridable by --store) rather than a true
// global: every command reads it once at Execute time, it is never
// mutated mid-run.
var StoreRoot string

var rootCmd = &cobra.Command{
	Use:   "turbflow",
	Short: "Synthetic Eddy Method generator for turbulent velocity fields",
	Long: "turbflow builds and queries synthetic-eddy-method turbulent velocity\n" +
		"fields for use as CFD inlet boundary conditions.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&StoreRoot, "store", ".turbflow", "directory persisted fields are read from and written to")
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(queryCmd)
}

// Execute runs the CLI, returning a process exit code: 0 on success,
// 1 on validation failure, 2 on runtime/IO failure.
func Execute(args []string) int {
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		return exitCodeFor(err)
	}
	return 0
}

func banner() {
	io.PfWhite("\nturbflow -- Synthetic Eddy Method turbulence generator\n\n")
}
