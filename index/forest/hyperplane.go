package forest

import (
	"math/rand"

	"github.com/walln/sieve/internal/math32"
)

// maxSplitAttempts bounds how often a random draw is retried before the
// deterministic alternating fallback kicks in.
const maxSplitAttempts = 3

// hyperplane is a linear decision boundary: points with
// dot(normal, x) - offset >= 0 fall on the right side.
type hyperplane struct {
	normal []float32
	offset float32
}

// margin returns the signed distance-like classification value of x.
func (h hyperplane) margin(x []float32) float32 {
	return math32.Dot(h.normal, x) - h.offset
}

// rightOf reports the side of x. Ties (margin == 0) go right; the rule must
// stay consistent between construction and traversal.
func (h hyperplane) rightOf(x []float32) bool {
	return h.margin(x) >= 0
}

// splitPositions partitions positions into two non-empty sides using a
// random hyperplane through the midpoint of two sampled vectors. Degenerate
// draws (identical sample vectors, or a one-sided partition) are retried up
// to maxSplitAttempts times; after that the input is split deterministically
// by alternating order so recursion always makes progress. The caller must
// pass at least two positions.
func splitPositions(positions []uint32, vectors [][]float32, rng *rand.Rand) (hyperplane, []uint32, []uint32) {
	dim := len(vectors[positions[0]])

	for attempt := 0; attempt < maxSplitAttempts; attempt++ {
		plane, ok := samplePlane(positions, vectors, rng, dim)
		if !ok {
			continue
		}

		left := make([]uint32, 0, len(positions)/2)
		right := make([]uint32, 0, len(positions)/2)
		for _, pos := range positions {
			if plane.rightOf(vectors[pos]) {
				right = append(right, pos)
			} else {
				left = append(left, pos)
			}
		}

		if len(left) == 0 || len(right) == 0 {
			continue
		}

		return plane, left, right
	}

	// Alternating fallback. The stored hyperplane is all-zero, so every
	// query classifies as a tie and descends right; the left side remains
	// reachable through beam backtracking.
	left := make([]uint32, 0, (len(positions)+1)/2)
	right := make([]uint32, 0, len(positions)/2)
	for i, pos := range positions {
		if i%2 == 0 {
			left = append(left, pos)
		} else {
			right = append(right, pos)
		}
	}

	return hyperplane{normal: make([]float32, dim)}, left, right
}

// samplePlane draws two distinct positions without replacement and builds
// the hyperplane normal to their difference, passing through their midpoint.
// Returns false when the two sampled vectors are identical.
func samplePlane(positions []uint32, vectors [][]float32, rng *rand.Rand, dim int) (hyperplane, bool) {
	n := len(positions)
	i := rng.Intn(n)
	j := rng.Intn(n - 1)
	if j >= i {
		j++
	}

	p := vectors[positions[i]]
	q := vectors[positions[j]]

	normal := make([]float32, dim)
	math32.Sub(normal, q, p)
	if math32.IsZero(normal) {
		return hyperplane{}, false
	}

	mid := make([]float32, dim)
	math32.Midpoint(mid, p, q)

	return hyperplane{normal: normal, offset: math32.Dot(normal, mid)}, true
}
