// Package memory provides the native memory ownership primitive that backs
// decoded pixel buffers and decoder scratch planes.
//
// # Overview
//
// Every region of raw memory is obtained with Allocate and returned exactly
// once with Handle.Release. A process-wide counter tracks how many regions are
// currently outstanding; it must return to zero once every handle has been
// released, which makes it usable as a leak detector in tests:
//
//	base := memory.Outstanding()
//	runDecode()
//	if memory.Outstanding() != base {
//	    t.Fatal("decode leaked native memory")
//	}
//
// # Ownership
//
// A Handle is a small comparable value. Copies of a handle refer to the same
// allocation and compare equal; two separate allocations never do, even if
// their size and contents match. Releasing through any copy releases the
// allocation for all of them, and a second release reports
// types.ErrDoubleRelease instead of touching memory again.
//
// Owner wraps a handle for scoped release on every exit path:
//
//	o, err := memory.Acquire(n)
//	if err != nil {
//	    return err
//	}
//	defer o.Close()
//
//	// ... use o.Bytes() ...
//
//	// move into a longer-lived structure; the deferred Close becomes a no-op
//	h, err := o.Transfer()
//
// # Backing
//
// On unix platforms regions are anonymous private mappings obtained through
// internal/mmfile, so they live outside the Go heap and are zero-filled.
//
// # Thread Safety
//
// Allocate, Release and Outstanding are safe for concurrent use. Reading or
// writing a region while another goroutine releases it is a caller bug; a
// handle has exactly one owner at a time.
package memory
