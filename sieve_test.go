package sieve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walln/sieve/testutil"
)

func TestBuild(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		s, err := Build(ctx, 2, 2, [][]float32{{1, 2}, {3, 4}}, []int64{0, 1},
			WithRandomSeed(42),
		)
		require.NoError(t, err)

		assert.Equal(t, 2, s.Dimension())
		assert.Equal(t, 2, s.Len())
		assert.Equal(t, 2, s.NumTrees())
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		_, err := Build(ctx, 2, 2, [][]float32{{1, 2}, {3, 4}}, []int64{0})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("ZeroTrees", func(t *testing.T) {
		_, err := Build(ctx, 2, 0, [][]float32{{1, 2}}, []int64{0})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("EmptyDataset", func(t *testing.T) {
		_, err := Build(ctx, 2, 1, nil, nil)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("WrongVectorDimension", func(t *testing.T) {
		_, err := Build(ctx, 3, 1, [][]float32{{1, 2}}, []int64{0})

		var dm *ErrDimensionMismatch
		require.ErrorAs(t, err, &dm)
		assert.Equal(t, 3, dm.Expected)
		assert.Equal(t, 2, dm.Actual)
	})
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	s, err := Build(ctx, 2, 2, [][]float32{{1, 2}, {3, 4}}, []int64{0, 1},
		WithRandomSeed(42),
	)
	require.NoError(t, err)

	t.Run("ExactMatch", func(t *testing.T) {
		results, err := s.Search([]float32{1, 2}).KNN(1).Execute(ctx)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, int64(0), results[0].ID)
		assert.Equal(t, float32(0), results[0].Distance)
	})

	t.Run("TieOrderedByID", func(t *testing.T) {
		results, err := s.Search([]float32{2, 3}).KNN(2).Beam(4).Execute(ctx)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, SearchResult{ID: 0, Distance: 2}, results[0])
		assert.Equal(t, SearchResult{ID: 1, Distance: 2}, results[1])
	})

	t.Run("KNNSearchConvenience", func(t *testing.T) {
		results, err := s.KNNSearch(ctx, []float32{3, 4}, 1)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, int64(1), results[0].ID)
	})

	t.Run("InvalidK", func(t *testing.T) {
		_, err := s.KNNSearch(ctx, []float32{1, 2}, 0)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("QueryDimensionMismatch", func(t *testing.T) {
		_, err := s.KNNSearch(ctx, []float32{1, 2, 3}, 1)

		var dm *ErrDimensionMismatch
		require.ErrorAs(t, err, &dm)
		assert.Equal(t, 2, dm.Expected)
	})

	t.Run("Filter", func(t *testing.T) {
		results, err := s.Search([]float32{1, 2}).
			KNN(2).
			Beam(4).
			Filter(func(id int64) bool { return id == 1 }).
			Execute(ctx)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, int64(1), results[0].ID)
	})
}

func TestSearchRecall(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(42)

	vectors := rng.UniformVectors(500, 16)
	ids := testutil.SequentialIDs(len(vectors))

	s, err := Build(ctx, 16, 8, vectors, ids,
		WithRandomSeed(42),
		WithMaxLeafSize(8),
		WithBeamWidth(4),
	)
	require.NoError(t, err)

	var total float64
	const queries = 20
	for q := 0; q < queries; q++ {
		query := rng.UniformVectors(1, 16)[0]

		got, err := s.KNNSearch(ctx, query, 10)
		require.NoError(t, err)

		want, err := testutil.BruteForce(query, vectors, ids, 10)
		require.NoError(t, err)

		total += testutil.Recall(got, want)
	}

	// 8 trees with a beam of 4 comfortably clear 80% recall on uniform
	// data of this size.
	assert.Greater(t, total/queries, 0.8)
}

func TestBruteSearchMatchesReference(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(11)

	vectors := rng.UniformVectors(50, 4)
	ids := testutil.SequentialIDs(len(vectors))

	s, err := Build(ctx, 4, 1, vectors, ids, WithRandomSeed(1))
	require.NoError(t, err)

	query := rng.UniformVectors(1, 4)[0]

	got, err := s.BruteSearch(ctx, query, 5)
	require.NoError(t, err)

	want, err := testutil.BruteForce(query, vectors, ids, 5)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestBuildDeterminism(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(3)

	vectors := rng.UniformVectors(200, 8)
	ids := testutil.SequentialIDs(len(vectors))

	build := func() *Sieve {
		s, err := Build(ctx, 8, 4, vectors, ids, WithRandomSeed(99))
		require.NoError(t, err)
		return s
	}

	a, b := build(), build()
	for iter := 0; iter < 10; iter++ {
		query := rng.UniformVectors(1, 8)[0]

		ra, err := a.KNNSearch(ctx, query, 10)
		require.NoError(t, err)
		rb, err := b.KNNSearch(ctx, query, 10)
		require.NoError(t, err)

		assert.Equal(t, ra, rb)
	}
}

func TestMetricsCollection(t *testing.T) {
	ctx := context.Background()
	metrics := &BasicMetricsCollector{}

	s, err := Build(ctx, 2, 1, [][]float32{{1, 2}}, []int64{0},
		WithRandomSeed(1),
		WithMetricsCollector(metrics),
	)
	require.NoError(t, err)

	_, err = s.KNNSearch(ctx, []float32{1, 2}, 1)
	require.NoError(t, err)

	_, err = s.KNNSearch(ctx, []float32{1, 2, 3}, 1)
	require.Error(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.BuildCount)
	assert.Equal(t, int64(0), stats.BuildErrors)
	assert.Equal(t, int64(2), stats.SearchCount)
	assert.Equal(t, int64(1), stats.SearchErrors)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(5)

	vectors := rng.UniformVectors(100, 4)
	s, err := Build(ctx, 4, 3, vectors, testutil.SequentialIDs(len(vectors)),
		WithRandomSeed(5),
		WithMaxLeafSize(5),
	)
	require.NoError(t, err)

	stats := s.Stats()
	assert.Equal(t, 100, stats.Vectors)
	require.Len(t, stats.Trees, 3)
	for _, ts := range stats.Trees {
		assert.Greater(t, ts.Leaves, 1)
	}
}
