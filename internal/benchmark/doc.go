// SPDX-License-Identifier: MPL-2.0

// Package benchmark provides benchmarks for PGO profile generation.
// These benchmarks cover the hot paths in the pfname codebase:
//   - Publisher Id derivation and parsing
//   - Package Family Name parsing, comparison and sorting
//   - CUE batch decoding and configuration loading
//   - End-to-end CLI invocation
//
// To generate a PGO profile, run:
//
//	go test -run=^$ -bench=. -cpuprofile=default.pgo ./internal/benchmark/
package benchmark
