// Package projection computes the filtered-then-sorted view of a row set and
// memoizes it behind a single-slot fingerprint cache.
//
// The cache avoids recomputing a projection when nothing changed between
// render cycles. Key features:
//   - SHA256 fingerprints over a canonical serialization of data, filter,
//     and sort inputs for deterministic hit detection
//   - Single-slot cache: at most one projection is retained (no LRU)
//   - Reference-stable results: a cache hit returns the identical slice,
//     letting callers skip downstream work via pointer comparison
//   - Non-destructive: the projection is always a permutation/subset of the
//     input slice, never a mutation of it
//
// A Projector is owned by a single table instance and is not safe for
// concurrent use; the table's event loop serializes all calls.
package projection
