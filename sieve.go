package sieve

import (
	"context"
	"time"

	"github.com/walln/sieve/index"
	"github.com/walln/sieve/index/forest"
)

// SearchResult represents a single search result: the caller-supplied id of
// a stored vector and its squared L2 distance to the query.
type SearchResult = index.SearchResult

// Sieve is an immutable approximate nearest-neighbor index over a fixed
// dataset of equal-dimension vectors.
type Sieve struct {
	forest  *forest.Forest
	logger  *Logger
	metrics MetricsCollector
}

// Build constructs an index of numTrees independently randomized projection
// trees over the given dataset. vectors and ids are parallel sequences;
// every vector must have length dimension. The input is validated eagerly
// and copied, and a failure in any tree build fails the whole call.
//
// Returns ErrInvalidArgument when the vectors/ids lengths differ, numTrees
// or dimension is not positive, or the dataset is empty, and
// ErrDimensionMismatch when a vector's length disagrees with dimension.
func Build(ctx context.Context, dimension, numTrees int, vectors [][]float32, ids []int64, optFns ...Option) (*Sieve, error) {
	o := applyOptions(optFns)

	start := time.Now()
	f, err := forest.Build(ctx, vectors, ids, func(fo *forest.Options) {
		fo.Dimension = dimension
		fo.NumTrees = numTrees
		fo.MaxLeafSize = o.maxLeafSize
		fo.MaxDepth = o.maxDepth
		fo.BeamWidth = o.beamWidth
		fo.RandomSeed = o.randomSeed
	})
	o.metricsCollector.RecordBuild(len(vectors), time.Since(start), err)
	if err != nil {
		o.logger.Error("index build failed", "error", err)
		return nil, translateError(err)
	}

	o.logger.Info("index built",
		"vectors", f.Len(),
		"dimension", f.Dimension(),
		"trees", f.NumTrees(),
		"duration", time.Since(start),
	)

	return &Sieve{forest: f, logger: o.logger, metrics: o.metricsCollector}, nil
}

// KNNSearch returns the topK approximate nearest neighbors of query,
// ascending by distance with ties broken by ascending id. It uses the
// index's configured beam width; use Search for per-query control.
//
// Returns ErrDimensionMismatch when the query length disagrees with the
// index dimension and ErrInvalidArgument when topK is not positive.
func (s *Sieve) KNNSearch(ctx context.Context, query []float32, topK int) ([]SearchResult, error) {
	return s.knnSearch(ctx, query, topK, nil)
}

func (s *Sieve) knnSearch(ctx context.Context, query []float32, topK int, opts *forest.SearchOptions) ([]SearchResult, error) {
	start := time.Now()
	results, err := s.forest.KNNSearch(ctx, query, topK, opts)
	s.metrics.RecordSearch(topK, time.Since(start), err)
	if err != nil {
		return nil, translateError(err)
	}

	s.logger.Debug("search completed",
		"k", topK,
		"results", len(results),
		"duration", time.Since(start),
	)

	return results, nil
}

// BruteSearch returns the exact topK nearest neighbors of query by scanning
// every stored vector. It is a reference path for measuring the recall of
// KNNSearch, not a production search path.
func (s *Sieve) BruteSearch(ctx context.Context, query []float32, topK int) ([]SearchResult, error) {
	start := time.Now()
	results, err := s.forest.BruteSearch(ctx, query, topK, nil)
	s.metrics.RecordSearch(topK, time.Since(start), err)
	if err != nil {
		return nil, translateError(err)
	}

	return results, nil
}

// Dimension returns the configured vector dimensionality.
func (s *Sieve) Dimension() int { return s.forest.Dimension() }

// Len returns the number of stored vectors.
func (s *Sieve) Len() int { return s.forest.Len() }

// NumTrees returns the number of trees in the forest.
func (s *Sieve) NumTrees() int { return s.forest.NumTrees() }

// VectorByID returns a copy of the first stored vector with the given id.
func (s *Sieve) VectorByID(id int64) ([]float32, bool) {
	return s.forest.VectorByID(id)
}

// Stats returns per-tree shape statistics for the underlying forest.
func (s *Sieve) Stats() forest.Stats { return s.forest.Stats() }
