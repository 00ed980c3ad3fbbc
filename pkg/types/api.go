package types

import "fmt"

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindAllocation  ErrKind = iota // native memory could not be provided
	ErrKindBounds                     // region or source read exceeds buffer extents
	ErrKindRelease                    // handle released twice or used after release
	ErrKindUnsupported                // valid layout we don't decode (yet)
	ErrKindLayout                     // inconsistent sample layout or region set
)

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Sentinels commonly returned by implementations.
var (
	// ErrAllocationFailure indicates the system could not provide native memory.
	ErrAllocationFailure = &Error{Kind: ErrKindAllocation, Msg: "native allocation failed"}
	// ErrBufferBounds indicates a destination region or source read outside the buffer.
	ErrBufferBounds = &Error{Kind: ErrKindBounds, Msg: "buffer bounds violation"}
	// ErrDoubleRelease indicates a handle was released more than once.
	ErrDoubleRelease = &Error{Kind: ErrKindRelease, Msg: "handle already released"}
	// ErrReleased indicates an operation on a handle whose memory was returned.
	ErrReleased = &Error{Kind: ErrKindRelease, Msg: "use of released handle"}
	// ErrUnsupported indicates a recognized but unsupported sample layout.
	ErrUnsupported = &Error{Kind: ErrKindUnsupported, Msg: "unsupported sample layout"}
	// ErrInvalidLayout indicates layout parameters that contradict each other.
	ErrInvalidLayout = &Error{Kind: ErrKindLayout, Msg: "invalid sample layout"}
)

// -----------------------------------------------------------------------------
// Format parameters (supplied by the container layer)
// -----------------------------------------------------------------------------

// ByteOrder selects how multi-byte samples are assembled.
type ByteOrder uint8

const (
	BigEndian ByteOrder = iota
	LittleEndian
)

func (o ByteOrder) String() string {
	switch o {
	case BigEndian:
		return "big-endian"
	case LittleEndian:
		return "little-endian"
	default:
		return fmt.Sprintf("ByteOrder(%d)", uint8(o))
	}
}

// Photometric is the TIFF PhotometricInterpretation tag value.
type Photometric uint16

const (
	PhotometricWhiteIsZero Photometric = 0
	PhotometricBlackIsZero Photometric = 1
	PhotometricRGB         Photometric = 2
	PhotometricYCbCr       Photometric = 6
)

func (p Photometric) String() string {
	switch p {
	case PhotometricWhiteIsZero:
		return "WhiteIsZero"
	case PhotometricBlackIsZero:
		return "BlackIsZero"
	case PhotometricRGB:
		return "RGB"
	case PhotometricYCbCr:
		return "YCbCr"
	default:
		return fmt.Sprintf("Photometric(%d)", uint16(p))
	}
}

// PlanarConfig is the TIFF PlanarConfiguration tag value.
type PlanarConfig uint16

const (
	PlanarChunky   PlanarConfig = 1 // samples of one pixel stored together
	PlanarSeparate PlanarConfig = 2 // one plane per channel
)

// ExtraSamples is the TIFF ExtraSamples tag value describing the sample that
// follows the color channels.
type ExtraSamples uint16

const (
	ExtraSamplesUnspecified  ExtraSamples = 0
	ExtraSamplesAssociated   ExtraSamples = 1 // color channels premultiplied by alpha
	ExtraSamplesUnassociated ExtraSamples = 2
)

// Associated reports whether color samples are premultiplied by alpha.
func (e ExtraSamples) Associated() bool { return e == ExtraSamplesAssociated }

// Rational is an unsigned TIFF RATIONAL.
type Rational struct {
	Num uint32
	Den uint32
}

// Float returns the rational as float64. A zero denominator yields 0.
func (r Rational) Float() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// Region is a rectangular window of a destination pixel buffer.
type Region struct {
	Left, Top     int
	Width, Height int
}

// Right returns the exclusive right edge.
func (r Region) Right() int { return r.Left + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Region) Bottom() int { return r.Top + r.Height }

// Overlaps reports whether r and o share at least one pixel.
func (r Region) Overlaps(o Region) bool {
	return r.Left < o.Right() && o.Left < r.Right() &&
		r.Top < o.Bottom() && o.Top < r.Bottom()
}

// Within validates r against a width×height buffer.
// Returns an error wrapping ErrBufferBounds on violation.
func (r Region) Within(width, height int) error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("region %dx%d: non-positive size: %w", r.Width, r.Height, ErrBufferBounds)
	}
	if r.Left < 0 || r.Top < 0 || r.Left > width-r.Width || r.Top > height-r.Height {
		return fmt.Errorf("region (%d,%d)+%dx%d exceeds %dx%d: %w",
			r.Left, r.Top, r.Width, r.Height, width, height, ErrBufferBounds)
	}
	return nil
}
