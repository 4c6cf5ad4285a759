// Package sieve provides an embedded approximate nearest-neighbor (ANN)
// index for Go, built from a forest of randomized projection trees.
//
// A Sieve is constructed once from a fixed dataset and is immutable
// afterwards; any number of goroutines may search it concurrently.
//
// # Quick start
//
//	ctx := context.Background()
//
//	vectors := [][]float32{{1, 2}, {3, 4}}
//	ids := []int64{0, 1}
//
//	s, err := sieve.Build(ctx, 2, 8, vectors, ids,
//	    sieve.WithRandomSeed(42),
//	)
//	if err != nil {
//	    panic(err)
//	}
//
//	results, err := s.Search([]float32{1, 2}).
//	    KNN(1).
//	    Execute(ctx)
//
// # Tuning
//
// Recall and cost are traded off with three knobs:
//
//   - number of trees: more independently randomized trees propose more
//     candidates (linear build cost and memory)
//   - beam width: more leaves visited per tree at query time
//     (WithBeamWidth, or per query via SearchBuilder.Beam)
//   - max leaf size: smaller leaves mean deeper trees and finer partitions
//
// Exact search is available through BruteSearch as a reference path for
// measuring recall; it scans every stored vector.
package sieve
