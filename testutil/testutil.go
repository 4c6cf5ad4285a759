package testutil

import (
	"math/rand"
	"sort"
	"sync"

	"github.com/walln/sieve/index"
	"github.com/walln/sieve/metric"
)

// RNG encapsulates a seeded random number generator. It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float32 returns, as a float32, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float32() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float32()
}

// UniformVectors generates random vectors with values in range [0, 1).
// Uses a single backing array for efficiency.
func (r *RNG) UniformVectors(num int, dimensions int) [][]float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float32, num*dimensions)
	vectors := make([][]float32, num)

	for i := 0; i < num; i++ {
		vec := data[i*dimensions : (i+1)*dimensions]
		for j := range vec {
			vec[j] = r.rand.Float32()
		}
		vectors[i] = vec
	}

	return vectors
}

// SequentialIDs returns the ids 0..n-1.
func SequentialIDs(n int) []int64 {
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = int64(i)
	}
	return ids
}

// BruteForce is a reference nearest-neighbor implementation: it ranks every
// vector against the query by length-checked squared L2 distance and returns
// the k best, ascending by distance with ties broken by ascending id.
// Index search results are verified against it.
func BruteForce(query []float32, vectors [][]float32, ids []int64, k int) ([]index.SearchResult, error) {
	results := make([]index.SearchResult, 0, len(vectors))
	for i, v := range vectors {
		d, err := metric.SquaredL2(query, v)
		if err != nil {
			return nil, err
		}
		results = append(results, index.SearchResult{ID: ids[i], Distance: d})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].ID < results[j].ID
	})

	if len(results) > k {
		results = results[:k]
	}

	return results, nil
}

// Recall returns the fraction of reference results present in got.
func Recall(got, want []index.SearchResult) float64 {
	if len(want) == 0 {
		return 1
	}

	wantIDs := make(map[int64]bool, len(want))
	for _, r := range want {
		wantIDs[r.ID] = true
	}

	hits := 0
	for _, r := range got {
		if wantIDs[r.ID] {
			hits++
		}
	}

	return float64(hits) / float64(len(want))
}
