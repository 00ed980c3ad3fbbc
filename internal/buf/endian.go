// Package buf contains helpers for endian-safe, bounds-checked sample decoding.
package buf

import (
	"fmt"

	"github.com/joshuapare/tiffkit/pkg/types"
)

// MaxSampleBytes is the widest sample ReadSample can widen into a uint64.
const MaxSampleBytes = 8

// ReadSample reads a width-byte unsigned sample from data at off in the given
// byte order and returns it together with the advanced cursor.
//
// Widths that are not a power of two (for example 3-byte samples) read exactly
// width bytes; the missing high-order bytes are zero for both byte orders.
func ReadSample(data []byte, off, width int, order types.ByteOrder) (uint64, int, error) {
	if width < 1 || width > MaxSampleBytes {
		return 0, off, fmt.Errorf("sample width %d: %w", width, types.ErrUnsupported)
	}
	b, ok := Slice(data, off, width)
	if !ok {
		return 0, off, fmt.Errorf("sample at %d+%d exceeds %d bytes: %w", off, width, len(data), types.ErrBufferBounds)
	}
	return assemble(b, order), off + width, nil
}

// assemble widens b without bounds checks. len(b) must be 1..8.
func assemble(b []byte, order types.ByteOrder) uint64 {
	var v uint64
	if order == types.LittleEndian {
		for i := len(b) - 1; i >= 0; i-- {
			v = v<<8 | uint64(b[i])
		}
		return v
	}
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

// PutSample encodes the low width bytes of v into data at off and returns the
// advanced cursor. It is the inverse of ReadSample.
func PutSample(data []byte, off, width int, order types.ByteOrder, v uint64) (int, error) {
	if width < 1 || width > MaxSampleBytes {
		return off, fmt.Errorf("sample width %d: %w", width, types.ErrUnsupported)
	}
	b, ok := Slice(data, off, width)
	if !ok {
		return off, fmt.Errorf("sample at %d+%d exceeds %d bytes: %w", off, width, len(data), types.ErrBufferBounds)
	}
	if order == types.LittleEndian {
		for i := range b {
			b[i] = byte(v >> (8 * i))
		}
	} else {
		for i := range b {
			b[width-1-i] = byte(v >> (8 * i))
		}
	}
	return off + width, nil
}

// SampleReader walks a strip sample by sample with a fixed width and order.
// The zero value is not usable; create one with NewSampleReader.
type SampleReader struct {
	data  []byte
	off   int
	width int
	order types.ByteOrder
}

// NewSampleReader returns a reader positioned at the start of data.
func NewSampleReader(data []byte, width int, order types.ByteOrder) (*SampleReader, error) {
	if width < 1 || width > MaxSampleBytes {
		return nil, fmt.Errorf("sample width %d: %w", width, types.ErrUnsupported)
	}
	return &SampleReader{data: data, width: width, order: order}, nil
}

// Next returns the next sample.
func (r *SampleReader) Next() (uint64, error) {
	v, next, err := ReadSample(r.data, r.off, r.width, r.order)
	if err != nil {
		return 0, err
	}
	r.off = next
	return v, nil
}

// Skip advances the cursor by n samples without reading them.
func (r *SampleReader) Skip(n int) {
	r.off += n * r.width
}

// Offset returns the current byte offset.
func (r *SampleReader) Offset() int { return r.off }
