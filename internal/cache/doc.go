// Package cache provides a size-bounded LRU cache.
//
// Entries are weighed by a caller-supplied function (bytes for blobs, one
// unit per entry for basis sets). When a resource.Controller is attached,
// every admitted unit is charged against its memory budget and released on
// eviction, so cached data competes with scan buffers for the same limit.
package cache
