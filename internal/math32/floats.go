// Package math32 provides float32 vector primitives used by the index.
// This is an internal package - external users should use the distance package.
package math32

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float32) float32 {
	var ret float32
	for i := range a {
		ret += a[i] * b[i]
	}

	return ret
}

// SquaredL2 calculates the squared L2 distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float32) float32 {
	var distance float32
	for i := range a {
		distance += (a[i] - b[i]) * (a[i] - b[i])
	}

	return distance
}

// Sub stores the component-wise difference a - b in dst.
// All three slices must be the same length.
func Sub(dst, a, b []float32) {
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
}

// Midpoint stores the component-wise midpoint (a + b) / 2 in dst.
// All three slices must be the same length.
func Midpoint(dst, a, b []float32) {
	for i := range dst {
		dst[i] = (a[i] + b[i]) / 2
	}
}

// IsZero reports whether every component of v is zero.
func IsZero(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}

	return true
}
