// Package forest implements an approximate nearest-neighbor index built
// from a forest of independently randomized projection trees.
//
// Each tree recursively bisects the dataset with random hyperplanes until
// the buckets are small. A query descends every tree, the visited leaf
// buckets are unioned into a candidate pool, and the candidates are ranked
// by exact squared L2 distance. Recall improves with more trees and a wider
// beam, at a linear cost in work performed.
//
// The index is build-once, read-many: it is immutable after Build and safe
// for concurrent searches without locking.
package forest

import (
	"container/heap"
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/walln/sieve/distance"
	"github.com/walln/sieve/index"
)

const (
	// DefaultMaxLeafSize is the default leaf bucket bound.
	DefaultMaxLeafSize = 10

	// DefaultBeamWidth is the default number of leaves visited per tree.
	DefaultBeamWidth = 1
)

// Options represents the options for configuring a Forest.
type Options struct {
	// Dimension is the fixed vector dimensionality for this index.
	// It must be > 0 and is enforced for all build and search vectors.
	Dimension int

	// NumTrees is the number of independently randomized trees. More trees
	// improve recall at a linear cost in build time and memory.
	NumTrees int

	// MaxLeafSize bounds the number of vectors in a leaf bucket. Values < 1
	// fall back to DefaultMaxLeafSize.
	MaxLeafSize int

	// MaxDepth bounds recursion during construction. Values < 1 derive the
	// bound from the dataset size.
	MaxDepth int

	// BeamWidth is the default number of leaves explored per tree during
	// search. Values < 1 fall back to DefaultBeamWidth. Higher values
	// improve recall and cost proportionally more work.
	BeamWidth int

	// RandomSeed makes construction reproducible. When nil, every build is
	// seeded from the wall clock.
	RandomSeed *int64
}

// DefaultOptions contains the default configuration options for the forest.
var DefaultOptions = Options{
	NumTrees:    1,
	MaxLeafSize: DefaultMaxLeafSize,
	BeamWidth:   DefaultBeamWidth,
}

// SearchOptions customizes a single search call.
type SearchOptions struct {
	// BeamWidth overrides the index's configured beam width when > 0.
	BeamWidth int

	// Filter restricts results to ids for which it returns true. A nil
	// filter admits everything.
	Filter func(id int64) bool
}

// Forest is an immutable random projection forest over a fixed dataset.
type Forest struct {
	opts    Options
	ids     []int64
	vectors [][]float32
	trees   []tree
}

// Build validates the dataset eagerly, then constructs the configured number
// of trees in parallel; each tree worker owns an independent random source
// so different trees disagree on partition boundaries. A failure in any tree
// build fails the whole call - there is no partially usable index.
//
// The vectors are copied; the caller may mutate its slices afterwards.
func Build(ctx context.Context, vectors [][]float32, ids []int64, optFns ...func(o *Options)) (*Forest, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Dimension < 1 {
		return nil, &index.ErrInvalidDimension{Dimension: opts.Dimension}
	}
	if opts.NumTrees < 1 {
		return nil, fmt.Errorf("%w: got %d", index.ErrInvalidNumTrees, opts.NumTrees)
	}
	if len(vectors) != len(ids) {
		return nil, fmt.Errorf("%w: %d vectors, %d ids", index.ErrLengthMismatch, len(vectors), len(ids))
	}
	if len(vectors) == 0 {
		return nil, index.ErrEmptyDataset
	}

	if opts.MaxLeafSize < 1 {
		opts.MaxLeafSize = DefaultMaxLeafSize
	}
	if opts.BeamWidth < 1 {
		opts.BeamWidth = DefaultBeamWidth
	}
	if opts.MaxDepth < 1 {
		opts.MaxDepth = defaultMaxDepth(len(vectors))
	}

	f := &Forest{
		opts:    opts,
		ids:     append([]int64(nil), ids...),
		vectors: make([][]float32, len(vectors)),
		trees:   make([]tree, opts.NumTrees),
	}

	for i, v := range vectors {
		if len(v) != opts.Dimension {
			return nil, &index.ErrDimensionMismatch{Expected: opts.Dimension, Actual: len(v)}
		}
		f.vectors[i] = append([]float32(nil), v...)
	}

	seed := time.Now().UnixNano()
	if opts.RandomSeed != nil {
		seed = *opts.RandomSeed
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range f.trees {
		i := i
		g.Go(func() error {
			// Derive the per-tree seed from the tree slot, not from
			// scheduling order, so fixed-seed builds are reproducible.
			rng := rand.New(rand.NewSource(seed + int64(i)))

			t, err := buildTree(gctx, f.vectors, opts, rng)
			if err != nil {
				return fmt.Errorf("tree %d: %w", i, err)
			}
			f.trees[i] = t

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return f, nil
}

// KNNSearch returns the k approximate nearest neighbors of query, ascending
// by squared L2 distance with ties broken by ascending id. Candidate
// collection fans out across all trees in parallel; the per-tree candidate
// sets are unioned (deduplicating ids proposed by several trees) before the
// exact ranking pass. An empty candidate pool yields an empty result.
func (f *Forest) KNNSearch(ctx context.Context, query []float32, k int, opts *SearchOptions) ([]index.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k < 1 {
		return nil, index.ErrInvalidK
	}
	if len(query) != f.opts.Dimension {
		return nil, &index.ErrDimensionMismatch{Expected: f.opts.Dimension, Actual: len(query)}
	}

	beamWidth := f.opts.BeamWidth
	var filter func(id int64) bool
	if opts != nil {
		if opts.BeamWidth > 0 {
			beamWidth = opts.BeamWidth
		}
		filter = opts.Filter
	}

	bitmaps := make([]*roaring.Bitmap, len(f.trees))

	g, gctx := errgroup.WithContext(ctx)
	for i := range f.trees {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			bm := roaring.New()
			f.trees[i].collectCandidates(query, beamWidth, bm)
			bitmaps[i] = bm

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	candidates := roaring.ParOr(0, bitmaps...)

	return f.selectTopK(query, candidates.Iterator(), k, filter), nil
}

// BruteSearch ranks every stored vector against query and returns the exact
// k nearest neighbors. It is the reference fallback path: search quality
// baselines are measured against it, and production queries should use
// KNNSearch.
func (f *Forest) BruteSearch(ctx context.Context, query []float32, k int, filter func(id int64) bool) ([]index.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k < 1 {
		return nil, index.ErrInvalidK
	}
	if len(query) != f.opts.Dimension {
		return nil, &index.ErrDimensionMismatch{Expected: f.opts.Dimension, Actual: len(query)}
	}

	return f.selectTopK(query, allPositions(len(f.vectors)), k, filter), nil
}

// selectTopK computes exact distances for every candidate position and keeps
// the k best in a bounded max-heap. Ordering is ascending by distance, ties
// broken by ascending id, so results are deterministic for a fixed dataset.
// This pass is exact; any approximation error comes from which candidates
// the trees proposed.
func (f *Forest) selectTopK(query []float32, positions positionIterator, k int, filter func(id int64) bool) []index.SearchResult {
	top := make(resultHeap, 0, k)

	for positions.HasNext() {
		pos := positions.Next()

		id := f.ids[pos]
		if filter != nil && !filter(id) {
			continue
		}

		r := index.SearchResult{ID: id, Distance: distance.SquaredL2(query, f.vectors[pos])}

		if top.Len() < k {
			heap.Push(&top, r)
			continue
		}
		if worse(r, top[0]) {
			continue
		}
		top[0] = r
		heap.Fix(&top, 0)
	}

	results := make([]index.SearchResult, top.Len())
	for i := top.Len() - 1; i >= 0; i-- {
		results[i] = heap.Pop(&top).(index.SearchResult)
	}

	return results
}

// Dimension returns the configured vector dimensionality.
func (f *Forest) Dimension() int { return f.opts.Dimension }

// Len returns the number of stored vectors.
func (f *Forest) Len() int { return len(f.vectors) }

// NumTrees returns the number of trees in the forest.
func (f *Forest) NumTrees() int { return len(f.trees) }

// VectorByID returns a copy of the first stored vector with the given id.
// The second return value is false when the id is not in the index.
func (f *Forest) VectorByID(id int64) ([]float32, bool) {
	for pos, storedID := range f.ids {
		if storedID == id {
			return append([]float32(nil), f.vectors[pos]...), true
		}
	}
	return nil, false
}

// TreeStats describes the shape of a single tree.
type TreeStats struct {
	Nodes    int
	Leaves   int
	MaxDepth int
}

// Stats describes the shape of the whole forest.
type Stats struct {
	Vectors int
	Trees   []TreeStats
}

// Stats returns per-tree node, leaf and depth counts.
func (f *Forest) Stats() Stats {
	s := Stats{Vectors: len(f.vectors), Trees: make([]TreeStats, len(f.trees))}
	for i := range f.trees {
		s.Trees[i] = f.trees[i].stats()
	}
	return s
}

// positionIterator yields candidate vector positions; satisfied by the
// roaring bitmap iterator and by allPositions.
type positionIterator interface {
	HasNext() bool
	Next() uint32
}

type rangeIterator struct {
	next uint32
	n    uint32
}

func allPositions(n int) positionIterator {
	return &rangeIterator{n: uint32(n)}
}

func (it *rangeIterator) HasNext() bool { return it.next < it.n }

func (it *rangeIterator) Next() uint32 {
	pos := it.next
	it.next++
	return pos
}

// worse reports whether a ranks strictly after b: farther away, or equally
// far with a larger id.
func worse(a, b index.SearchResult) bool {
	if a.Distance != b.Distance {
		return a.Distance > b.Distance
	}
	return a.ID > b.ID
}

// resultHeap is a max-heap by (distance, id) so the worst retained result
// sits on top and is evicted first.
type resultHeap []index.SearchResult

func (h resultHeap) Len() int           { return len(h) }
func (h resultHeap) Less(i, j int) bool { return worse(h[i], h[j]) }
func (h resultHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *resultHeap) Push(x any) {
	*h = append(*h, x.(index.SearchResult))
}

func (h *resultHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
