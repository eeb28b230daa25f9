// Package buffer provides growable, allocator-backed slices and a pool of
// reusable blocks. Growth goes through an Allocator so callers can bound or
// instrument memory use; the zero configuration allocates from the Go heap.
package buffer
