package forest

import (
	"context"
	"math"
	"math/bits"
	"math/rand"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/walln/sieve/internal/queue"
)

// depthMargin is added to log2(n) when deriving the default recursion bound.
const depthMargin = 8

type nodeKind uint8

const (
	nodeKindInternal nodeKind = iota
	nodeKindLeaf
)

// node is a tagged variant: either an internal split or a leaf bucket.
// Nodes live in the owning tree's arena and reference children by index.
type node struct {
	kind nodeKind

	// Internal nodes only.
	plane hyperplane
	left  uint32
	right uint32

	// Leaf nodes only. Holds dense vector positions, not caller ids.
	items []uint32
}

// tree is one randomized projection tree. The root is always node 0.
// The leaf item sets form a strict partition of the positions the tree
// was built over.
type tree struct {
	nodes []node
}

// defaultMaxDepth derives the recursion safety bound from the dataset size:
// proportional to log2(n) plus a constant margin. It guards against
// pathological recursion on highly clustered data; well-behaved builds
// bottom out on maxLeafSize long before reaching it.
func defaultMaxDepth(n int) int {
	return bits.Len(uint(n)) + depthMargin
}

// buildTree recursively partitions all vector positions into a projection
// tree. Randomness comes exclusively from rng so builds are reproducible
// under a fixed seed. The only possible error is context cancellation.
func buildTree(ctx context.Context, vectors [][]float32, opts Options, rng *rand.Rand) (tree, error) {
	positions := make([]uint32, len(vectors))
	for i := range positions {
		positions[i] = uint32(i)
	}

	t := tree{nodes: make([]node, 0, 2*len(vectors)/opts.MaxLeafSize+1)}
	if _, err := t.grow(ctx, positions, vectors, opts, rng, 0); err != nil {
		return tree{}, err
	}

	return t, nil
}

// grow appends the subtree over positions and returns its node index.
func (t *tree) grow(ctx context.Context, positions []uint32, vectors [][]float32, opts Options, rng *rand.Rand, depth int) (uint32, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	idx := uint32(len(t.nodes))
	t.nodes = append(t.nodes, node{})

	if len(positions) <= opts.MaxLeafSize || depth >= opts.MaxDepth {
		t.nodes[idx] = node{kind: nodeKindLeaf, items: positions}
		return idx, nil
	}

	plane, leftPos, rightPos := splitPositions(positions, vectors, rng)

	left, err := t.grow(ctx, leftPos, vectors, opts, rng, depth+1)
	if err != nil {
		return 0, err
	}
	right, err := t.grow(ctx, rightPos, vectors, opts, rng, depth+1)
	if err != nil {
		return 0, err
	}

	t.nodes[idx] = node{kind: nodeKindInternal, plane: plane, left: left, right: right}

	return idx, nil
}

// collectCandidates performs a best-first beam search for query, adding the
// positions of every visited leaf into the bitmap. At each internal node the
// query descends into the side its hyperplane classification selects while
// the skipped sibling joins a frontier ordered by the query's distance to
// that hyperplane. Traversal stops after beamWidth leaves or when the
// frontier is exhausted.
func (t *tree) collectCandidates(query []float32, beamWidth int, into *roaring.Bitmap) {
	if len(t.nodes) == 0 {
		return
	}

	frontier := queue.NewMin(beamWidth * 2)
	frontier.Push(queue.Item{Node: 0, Distance: 0})

	for visited := 0; visited < beamWidth; visited++ {
		item, ok := frontier.Pop()
		if !ok {
			return
		}

		nd := &t.nodes[item.Node]
		for nd.kind == nodeKindInternal {
			margin := nd.plane.margin(query)

			next, skipped := nd.left, nd.right
			if margin >= 0 {
				next, skipped = nd.right, nd.left
			}

			frontier.Push(queue.Item{Node: skipped, Distance: float32(math.Abs(float64(margin)))})
			nd = &t.nodes[next]
		}

		into.AddMany(nd.items)
	}
}

// stats walks the tree and aggregates node counts and depth.
func (t *tree) stats() TreeStats {
	s := TreeStats{Nodes: len(t.nodes)}
	if len(t.nodes) == 0 {
		return s
	}

	type frame struct {
		idx   uint32
		depth int
	}

	stack := []frame{{idx: 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.depth > s.MaxDepth {
			s.MaxDepth = f.depth
		}

		nd := &t.nodes[f.idx]
		if nd.kind == nodeKindLeaf {
			s.Leaves++
			continue
		}
		stack = append(stack, frame{idx: nd.left, depth: f.depth + 1}, frame{idx: nd.right, depth: f.depth + 1})
	}

	return s
}
