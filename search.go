// This file implements a fluent search API for querying Sieve indexes.
package sieve

import (
	"context"

	"github.com/walln/sieve/index/forest"
)

// Search creates a new fluent search builder for the given query vector.
//
// Example:
//
//	results, err := s.Search(query).
//	    KNN(10).
//	    Beam(4).
//	    Execute(ctx)
func (s *Sieve) Search(query []float32) *SearchBuilder {
	return &SearchBuilder{
		s:     s,
		query: query,
		k:     10, // Default k
	}
}

// SearchBuilder is a fluent builder for constructing search queries.
type SearchBuilder struct {
	s      *Sieve
	query  []float32
	k      int
	beam   int
	filter func(id int64) bool
}

// KNN sets the number of nearest neighbors to return.
func (sb *SearchBuilder) KNN(k int) *SearchBuilder {
	sb.k = k
	return sb
}

// Beam overrides the index's configured beam width for this query.
// Higher values visit more leaves per tree, improving recall at a linear
// cost in work performed.
func (sb *SearchBuilder) Beam(width int) *SearchBuilder {
	sb.beam = width
	return sb
}

// Filter restricts results to ids for which fn returns true.
func (sb *SearchBuilder) Filter(fn func(id int64) bool) *SearchBuilder {
	sb.filter = fn
	return sb
}

// Execute runs the search and returns results ascending by distance,
// ties broken by ascending id.
func (sb *SearchBuilder) Execute(ctx context.Context) ([]SearchResult, error) {
	return sb.s.knnSearch(ctx, sb.query, sb.k, &forest.SearchOptions{
		BeamWidth: sb.beam,
		Filter:    sb.filter,
	})
}
