package memory

import (
	"fmt"

	"github.com/joshuapare/tiffkit/pkg/types"
)

// Owner releases its handle when closed unless ownership was transferred.
// An Owner is not safe for concurrent use.
type Owner struct {
	h     Handle
	owned bool
}

// Acquire allocates n bytes and wraps them in an Owner.
func Acquire(n int) (*Owner, error) {
	h, err := Allocate(n)
	if err != nil {
		return nil, err
	}
	return &Owner{h: h, owned: true}, nil
}

// Own takes responsibility for releasing an existing handle.
func Own(h Handle) *Owner {
	return &Owner{h: h, owned: h.IsValid()}
}

// Handle returns the owned handle without giving up ownership.
func (o *Owner) Handle() Handle { return o.h }

// Bytes returns the owned region, or nil once it was transferred or closed.
func (o *Owner) Bytes() []byte {
	if !o.owned {
		return nil
	}
	b, err := o.h.Bytes()
	if err != nil {
		return nil
	}
	return b
}

// Transfer hands the handle to the caller. The Owner no longer releases it.
func (o *Owner) Transfer() (Handle, error) {
	if !o.owned {
		return Handle{}, fmt.Errorf("memory: transfer of %s: %w", o.h, types.ErrReleased)
	}
	o.owned = false
	return o.h, nil
}

// Close releases the handle if still owned. It is safe to call more than
// once and on a nil Owner, which makes it suitable for defer.
func (o *Owner) Close() error {
	if o == nil || !o.owned {
		return nil
	}
	o.owned = false
	return o.h.Release()
}
