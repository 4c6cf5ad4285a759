// Package index defines the result and error types shared by index
// implementations and the sieve facade.
//
// The only index implementation is the random projection forest in the
// forest subpackage. Exact brute-force search is exposed as a method on the
// forest rather than as a separate index type; it exists as a reference
// path, not a production one.
package index
