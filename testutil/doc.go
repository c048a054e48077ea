// Package testutil provides testing utilities for adview.
//
// This package is intended for use in tests and benchmarks only.
// It generates reproducible AnnData tables in memory.
//
// # Random Tables
//
//	rng := testutil.NewRNG(seed)
//	c := testutil.NewAnnData(rng, 2700, 500)  // obs x var
//	cat, _ := table.Build(c, "obs")
package testutil
