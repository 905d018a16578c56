package pixbuf

import (
	"errors"
	"fmt"
)

// Common errors for buffer operations.
var (
	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("pixbuf: position out of range")

	// ErrIndexOutOfRange is returned when a linear index is past the end
	// or lands in a padding column.
	ErrIndexOutOfRange = errors.New("pixbuf: index out of range")

	// ErrSourceTooSmall is returned when storage is smaller than stride*height.
	ErrSourceTooSmall = errors.New("pixbuf: storage too small")

	// ErrInvalidDimensions is returned when width or height is negative.
	ErrInvalidDimensions = errors.New("pixbuf: invalid dimensions")

	// ErrInvalidStride is returned when stride is less than width.
	ErrInvalidStride = errors.New("pixbuf: stride too small for width")

	// ErrReadOnly is returned when a write is attempted on read-only storage.
	ErrReadOnly = errors.New("pixbuf: storage is read-only")

	// ErrInvertedRegion is returned when a region's end precedes its start.
	ErrInvertedRegion = errors.New("pixbuf: region end precedes start")

	// ErrIncomplete is returned by Builder.Finish when pixels were never written.
	ErrIncomplete = errors.New("pixbuf: buffer not fully initialized")

	// ErrNegativeOffset is returned when a seek resolves before the stream start.
	ErrNegativeOffset = errors.New("pixbuf: negative offset")

	// ErrOffsetOverflow is returned when a seek offset does not fit in an int.
	ErrOffsetOverflow = errors.New("pixbuf: offset overflow")

	// ErrInvalidWhence is returned for a seek whence other than io.SeekStart,
	// io.SeekCurrent or io.SeekEnd.
	ErrInvalidWhence = errors.New("pixbuf: invalid whence")
)

// Axes reports which coordinate axes were out of range.
type Axes uint8

const (
	// AxisX means only x was out of range.
	AxisX Axes = iota + 1
	// AxisY means only y was out of range.
	AxisY
	// AxisBoth means both x and y were out of range.
	AxisBoth
)

func (a Axes) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisBoth:
		return "x and y"
	default:
		return fmt.Sprintf("Axes(%d)", uint8(a))
	}
}

// PositionOutOfRangeError describes an (x, y) pair outside the image.
// It unwraps to ErrOutOfBounds.
type PositionOutOfRangeError struct {
	X, Y int
	Axes Axes
}

func (e *PositionOutOfRangeError) Error() string {
	return fmt.Sprintf("pixbuf: position (%d, %d) out of range on %s", e.X, e.Y, e.Axes)
}

func (e *PositionOutOfRangeError) Unwrap() error { return ErrOutOfBounds }

// IndexReason explains why a linear index was rejected.
type IndexReason uint8

const (
	// PastEnd means the index is beyond the last valid index.
	PastEnd IndexReason = iota + 1
	// OutsideStride means the index lands in a row's padding columns.
	OutsideStride
)

func (r IndexReason) String() string {
	switch r {
	case PastEnd:
		return "past end"
	case OutsideStride:
		return "outside stride"
	default:
		return fmt.Sprintf("IndexReason(%d)", uint8(r))
	}
}

// IndexOutOfRangeError describes a rejected linear index.
// It unwraps to ErrIndexOutOfRange.
type IndexOutOfRangeError struct {
	Index  int
	Reason IndexReason
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("pixbuf: index %d out of range (%s)", e.Index, e.Reason)
}

func (e *IndexOutOfRangeError) Unwrap() error { return ErrIndexOutOfRange }

// SourceTooSmallError is returned by the storage constructors. Source is the
// rejected storage, handed back so the caller can reuse it.
// It unwraps to ErrSourceTooSmall.
type SourceTooSmallError[T any] struct {
	Source Storage[T]
	Width  int
	Height int
	Stride int
}

func (e *SourceTooSmallError[T]) Error() string {
	return fmt.Sprintf("pixbuf: storage of %d elements too small for %dx%d with stride %d (need %d)",
		storageLen(e.Source), e.Width, e.Height, e.Stride, e.Stride*e.Height)
}

func (e *SourceTooSmallError[T]) Unwrap() error { return ErrSourceTooSmall }

// InvertedRegionError is returned when a region's end precedes its start on
// at least one axis. It unwraps to ErrInvertedRegion.
type InvertedRegionError struct {
	Start, End Point
}

func (e *InvertedRegionError) Error() string {
	return fmt.Sprintf("pixbuf: region end %v precedes start %v", e.End, e.Start)
}

func (e *InvertedRegionError) Unwrap() error { return ErrInvertedRegion }

// IncompleteError reports how many pixels a Builder never wrote.
// It unwraps to ErrIncomplete.
type IncompleteError struct {
	Remaining int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("pixbuf: %d pixels never written", e.Remaining)
}

func (e *IncompleteError) Unwrap() error { return ErrIncomplete }

// SeekError wraps a failed cursor seek.
type SeekError struct {
	Offset int64
	Whence int
	Err    error
}

func (e *SeekError) Error() string {
	return fmt.Sprintf("pixbuf: seek %d (whence %d): %v", e.Offset, e.Whence, e.Err)
}

func (e *SeekError) Unwrap() error { return e.Err }
