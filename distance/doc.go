// Package distance exposes the unchecked distance kernels used on hot
// search paths. Vector lengths are validated once at the index boundary;
// callers of this package are responsible for passing equal-length slices.
// For length-checked variants see the metric package.
package distance
