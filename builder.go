package pixbuf

import (
	"errors"
	"fmt"
)

// Builder constructs a dense buffer whose pixels must all be written before
// the buffer can be read. It exposes no read path; Finish hands out the
// buffer only once every pixel has been set.
type Builder[T any] struct {
	layout    Layout
	data      []T
	buf       *Buffer[T]
	written   []uint64
	remaining int
}

// NewBuilder allocates a width x height builder.
func NewBuilder[T any](width, height int) (*Builder[T], error) {
	b, err := New[T](width, height)
	if err != nil {
		return nil, err
	}
	n := b.layout.Len()
	return &Builder[T]{
		layout:    b.layout,
		data:      b.src.Pixels(),
		buf:       b,
		written:   make([]uint64, (n+63)/64),
		remaining: n,
	}, nil
}

// Width returns the image width in pixels.
func (b *Builder[T]) Width() int {
	return b.layout.Width
}

// Height returns the image height in pixels.
func (b *Builder[T]) Height() int {
	return b.layout.Height
}

// Remaining returns the number of pixels not yet written.
func (b *Builder[T]) Remaining() int {
	return b.remaining
}

// Written reports whether (x, y) has been set.
func (b *Builder[T]) Written(x, y int) bool {
	i, err := b.layout.PositionToIndex(x, y)
	if err != nil {
		return false
	}
	return b.written[i/64]&(1<<(i%64)) != 0
}

// Set writes the pixel at (x, y).
func (b *Builder[T]) Set(x, y int, v T) error {
	if b.buf == nil {
		return errFinished
	}
	i, err := b.layout.PositionToIndex(x, y)
	if err != nil {
		return err
	}
	b.data[i] = v
	b.mark(i)
	return nil
}

// SetRow writes row y from row, which must hold exactly Width pixels.
func (b *Builder[T]) SetRow(y int, row []T) error {
	if b.buf == nil {
		return errFinished
	}
	l := b.layout
	if y < 0 || y >= l.Height {
		return &PositionOutOfRangeError{X: 0, Y: y, Axes: AxisY}
	}
	if len(row) != l.Width {
		return fmt.Errorf("%w: row of %d pixels, width %d", ErrInvalidDimensions, len(row), l.Width)
	}
	start := y * l.Stride
	copy(b.data[start:start+l.Width], row)
	for i := start; i < start+l.Width; i++ {
		b.mark(i)
	}
	return nil
}

func (b *Builder[T]) mark(i int) {
	word, bit := i/64, uint64(1)<<(i%64)
	if b.written[word]&bit == 0 {
		b.written[word] |= bit
		b.remaining--
	}
}

// Finish returns the buffer if every pixel was written. Otherwise it returns
// an *IncompleteError and the builder stays usable. After a successful
// Finish the builder rejects further writes.
func (b *Builder[T]) Finish() (*Buffer[T], error) {
	if b.buf == nil {
		return nil, errFinished
	}
	if b.remaining > 0 {
		return nil, &IncompleteError{Remaining: b.remaining}
	}
	out := b.buf
	b.buf = nil
	return out, nil
}

var errFinished = errors.New("pixbuf: builder already finished")
