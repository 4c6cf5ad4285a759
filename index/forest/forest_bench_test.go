package forest

import (
	"context"
	"math/rand"
	"testing"
)

func benchVectors(n, dim int) ([][]float32, []int64) {
	rng := rand.New(rand.NewSource(1))
	vectors := make([][]float32, n)
	ids := make([]int64, n)
	for i := range vectors {
		v := make([]float32, dim)
		for j := range v {
			v[j] = rng.Float32()
		}
		vectors[i] = v
		ids[i] = int64(i)
	}
	return vectors, ids
}

func BenchmarkBuild(b *testing.B) {
	vectors, ids := benchVectors(10_000, 64)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, err := Build(ctx, vectors, ids, func(o *Options) {
			o.Dimension = 64
			o.NumTrees = 8
			o.RandomSeed = seedPtr(42)
		})
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkKNNSearch(b *testing.B) {
	vectors, ids := benchVectors(10_000, 64)
	ctx := context.Background()

	f, err := Build(ctx, vectors, ids, func(o *Options) {
		o.Dimension = 64
		o.NumTrees = 8
		o.RandomSeed = seedPtr(42)
	})
	if err != nil {
		b.Fatal(err)
	}

	query := vectors[123]

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := f.KNNSearch(ctx, query, 10, &SearchOptions{BeamWidth: 4}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBruteSearch(b *testing.B) {
	vectors, ids := benchVectors(10_000, 64)
	ctx := context.Background()

	f, err := Build(ctx, vectors, ids, func(o *Options) {
		o.Dimension = 64
		o.NumTrees = 1
		o.RandomSeed = seedPtr(42)
	})
	if err != nil {
		b.Fatal(err)
	}

	query := vectors[123]

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := f.BruteSearch(ctx, query, 10, nil); err != nil {
			b.Fatal(err)
		}
	}
}
