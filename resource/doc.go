// Package resource bounds the memory, worker slots and IO bandwidth used while
// building Bloch bases.
//
//   - Memory: orbit sieves reserve their size before allocation
//   - Workers: parallel scans take one slot per goroutine
//   - IO: snapshot reads and writes pass through a token bucket
//
// Example:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30,
//	    MaxWorkers:       4,
//	})
//
//	if err := rc.TryAcquireMemory(size); err != nil {
//	    return err // ErrMemoryLimitExceeded
//	}
//	defer rc.ReleaseMemory(size)
//
// All methods handle a nil Controller gracefully: they become no-ops.
package resource
