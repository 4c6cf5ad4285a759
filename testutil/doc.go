// Package testutil provides helpers shared by tests: a seeded thread-safe
// random source, dataset generation, and a brute-force reference
// implementation for recall measurements.
package testutil
