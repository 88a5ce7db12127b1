// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cpmech/turbflow/eddy"
	"github.com/cpmech/turbflow/errs"
	"github.com/cpmech/turbflow/store"
)

var (
	newProfilePath string
	newName        string
	newDims        []float64
	newAvgVel      float64
	newSeed        int64
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create and persist a new field from a profile",
	RunE: func(c *cobra.Command, args []string) error {
		banner()
		// "-d Lx Ly Lz": the flag takes Lx, the remaining values arrive
		// as positional arguments. "-d Lx,Ly,Lz" leaves args empty.
		for _, a := range args {
			v, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return errs.New(errs.InvalidConfig, "invalid dimension %q: %v", a, err)
			}
			newDims = append(newDims, v)
		}
		if len(newDims) != 3 {
			return errs.New(errs.InvalidConfig, "exactly 3 dimensions (Lx Ly Lz) are required, got %d", len(newDims))
		}
		if newName == "" {
			newName = uuid.NewString()
		}

		profile, err := store.ReadProfile(newProfilePath)
		if err != nil {
			return err
		}

		log, err := store.OpenLog(StoreRoot, newName)
		if err != nil {
			return err
		}
		defer log.Close()

		log.Printf("Building field %q from profile %q, dims=%v, avg_vel=%v\n", newName, newProfilePath, newDims, newAvgVel)

		pop, err := eddy.NewPopulation(profile, eddy.Dims{newDims[0], newDims[1], newDims[2]}, newAvgVel, newSeed)
		if err != nil {
			return err
		}
		log.Printf("Total eddies: %d\n", pop.N)

		if err := store.SaveField(StoreRoot, newName, pop); err != nil {
			return err
		}
		log.Printf("Field %q saved under %q\n", newName, StoreRoot)
		return nil
	},
}

func init() {
	newCmd.Flags().StringVarP(&newProfilePath, "profile", "p", "", "path to the eddy profile JSON document (required)")
	newCmd.Flags().StringVarP(&newName, "name", "n", "", "field name; a random UUID is used if omitted")
	newCmd.Flags().Float64SliceVarP(&newDims, "dims", "d", nil, "domain dimensions Lx Ly Lz")
	newCmd.Flags().Float64VarP(&newAvgVel, "avg-vel", "v", 0, "mean axial velocity U")
	newCmd.Flags().Int64Var(&newSeed, "seed", 0, "RNG seed (0 = unspecified, use process RNG state)")
	newCmd.MarkFlagRequired("profile")
	newCmd.MarkFlagRequired("dims")
}
