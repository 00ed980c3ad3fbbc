package memory

import (
	"fmt"
	"sync/atomic"

	"github.com/joshuapare/tiffkit/internal/mmfile"
	"github.com/joshuapare/tiffkit/pkg/types"
)

var (
	// outstanding counts allocations that have not been released.
	outstanding atomic.Int64

	// nextID issues identity tokens. Tokens are never reused.
	nextID atomic.Uint64

	// limit bounds a single allocation in bytes; zero means unlimited.
	limit atomic.Int64
)

type allocation struct {
	id       uint64
	data     []byte
	size     int
	released atomic.Bool
}

// Handle refers to one native allocation. The zero Handle refers to nothing
// and is never valid.
type Handle struct {
	a *allocation
}

// Allocate requests n bytes of zeroed native memory.
// Returns an error wrapping types.ErrAllocationFailure if n is negative,
// exceeds the configured limit, or the system cannot provide the region.
func Allocate(n int) (Handle, error) {
	if n < 0 {
		return Handle{}, fmt.Errorf("memory: allocate %d bytes: negative size: %w", n, types.ErrAllocationFailure)
	}
	if l := limit.Load(); l > 0 && int64(n) > l {
		return Handle{}, fmt.Errorf("memory: allocate %d bytes: exceeds limit %d: %w", n, l, types.ErrAllocationFailure)
	}
	data, err := mmfile.Anon(n)
	if err != nil {
		return Handle{}, fmt.Errorf("memory: allocate %d bytes: %w: %w", n, types.ErrAllocationFailure, err)
	}
	a := &allocation{
		id:   nextID.Add(1),
		data: data,
		size: n,
	}
	outstanding.Add(1)
	return Handle{a: a}, nil
}

// Release returns the region to the system. Calling Release on a handle (or
// any copy of it) that was already released returns types.ErrDoubleRelease.
func (h Handle) Release() error {
	if h.a == nil {
		return fmt.Errorf("memory: release of zero handle: %w", types.ErrReleased)
	}
	if !h.a.released.CompareAndSwap(false, true) {
		return fmt.Errorf("memory: allocation %d: %w", h.a.id, types.ErrDoubleRelease)
	}
	data := h.a.data
	h.a.data = nil
	outstanding.Add(-1)
	if err := mmfile.Unmap(data); err != nil {
		return fmt.Errorf("memory: unmap allocation %d: %w", h.a.id, err)
	}
	return nil
}

// IsValid reports whether h still refers to a live allocation.
func (h Handle) IsValid() bool {
	return h.a != nil && !h.a.released.Load()
}

// Bytes returns the region. It fails with types.ErrReleased once the handle
// has been released; the returned slice must not be used after Release.
func (h Handle) Bytes() ([]byte, error) {
	if !h.IsValid() {
		return nil, fmt.Errorf("memory: bytes of %s: %w", h, types.ErrReleased)
	}
	return h.a.data, nil
}

// Len returns the requested size in bytes, or 0 for the zero handle.
func (h Handle) Len() int {
	if h.a == nil {
		return 0
	}
	return h.a.size
}

// ID returns the identity token of the allocation, or 0 for the zero handle.
func (h Handle) ID() uint64 {
	if h.a == nil {
		return 0
	}
	return h.a.id
}

// Equal reports whether h and o refer to the same allocation.
// It is equivalent to h == o.
func (h Handle) Equal(o Handle) bool { return h.a == o.a }

func (h Handle) String() string {
	if h.a == nil {
		return "Handle(nil)"
	}
	return fmt.Sprintf("Handle(#%d, %d bytes)", h.a.id, h.a.size)
}

// Outstanding returns the number of allocations not yet released.
func Outstanding() int64 { return outstanding.Load() }

// SetLimit bounds the size of a single allocation and returns the previous
// bound. Zero or a negative value removes the bound.
func SetLimit(n int64) int64 {
	if n < 0 {
		n = 0
	}
	return limit.Swap(n)
}

// Limit returns the current single-allocation bound (0 = unlimited).
func Limit() int64 { return limit.Load() }
