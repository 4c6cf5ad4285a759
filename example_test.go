package sieve_test

import (
	"context"
	"fmt"

	"github.com/walln/sieve"
)

func Example() {
	ctx := context.Background()

	vectors := [][]float32{
		{1, 2},
		{3, 4},
		{5, 6},
	}
	ids := []int64{10, 20, 30}

	s, err := sieve.Build(ctx, 2, 4, vectors, ids, sieve.WithRandomSeed(42))
	if err != nil {
		panic(err)
	}

	results, err := s.Search([]float32{1, 2}).KNN(2).Beam(4).Execute(ctx)
	if err != nil {
		panic(err)
	}

	for _, r := range results {
		fmt.Printf("id=%d distance=%.1f\n", r.ID, r.Distance)
	}

	// Output:
	// id=10 distance=0.0
	// id=20 distance=8.0
}
