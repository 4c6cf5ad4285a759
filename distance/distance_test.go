package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDot(t *testing.T) {
	assert.Equal(t, float32(32), Dot([]float32{1, 2, 3}, []float32{4, 5, 6}))
}

func TestSquaredL2(t *testing.T) {
	a := []float32{1, 2}
	b := []float32{3, 4}

	assert.Equal(t, float32(8), SquaredL2(a, b))
	assert.Equal(t, SquaredL2(a, b), SquaredL2(b, a))
	assert.Equal(t, float32(0), SquaredL2(a, a))
}
