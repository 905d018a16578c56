package pixbuf

import (
	"io"
	"math"
	"unsafe"
)

// Cursor streams a buffer's pixels as bytes. It walks the storage row by row
// and never reads or writes padding columns, so a codec, file or socket can
// drive pixel data in and out without knowing about strides.
//
// The offset is a byte offset into the storage: Stride*size bytes per row.
// A read or write that reaches the end of a row's Width pixels continues at
// the start of the next row.
//
// The pixel type must be plain data: its bytes are aliased directly, so T
// must not contain pointers, and any interior padding bytes of T are exposed
// as they are.
type Cursor[T any] struct {
	buf *Buffer[T]
	off int
}

var (
	_ io.ReadWriteSeeker = (*Cursor[byte])(nil)
	_ io.WriterTo        = (*Cursor[byte])(nil)
)

// Cursor returns a cursor positioned at the first pixel of b.
func (b *Buffer[T]) Cursor() *Cursor[T] {
	return &Cursor[T]{buf: b}
}

// Buffer returns the buffer the cursor streams.
func (c *Cursor[T]) Buffer() *Buffer[T] {
	return c.buf
}

// Offset returns the current byte offset.
func (c *Cursor[T]) Offset() int64 {
	return int64(c.off)
}

// Size returns the byte offset one past the last pixel, the base for
// io.SeekEnd. For a dense buffer this is Width*Height*size.
func (c *Cursor[T]) Size() int64 {
	return int64(c.buf.layout.Span()) * int64(pixelSize[T]())
}

// Seek implements io.Seeker. io.SeekEnd is relative to Size, one past the
// last pixel: Width*Height*size for a dense buffer, and (Height-1)*Stride +
// Width pixels for a padded one, so the trailing padding of the last row is
// not part of the stream. Seeking into padding is allowed; the next Read or
// Write moves on to the following row.
func (c *Cursor[T]) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = int64(c.off)
	case io.SeekEnd:
		base = c.Size()
	default:
		return 0, &SeekError{Offset: offset, Whence: whence, Err: ErrInvalidWhence}
	}
	if offset > 0 && base > math.MaxInt64-offset {
		return 0, &SeekError{Offset: offset, Whence: whence, Err: ErrOffsetOverflow}
	}
	abs := base + offset
	if abs < 0 {
		return 0, &SeekError{Offset: offset, Whence: whence, Err: ErrNegativeOffset}
	}
	if uint64(abs) > math.MaxInt {
		return 0, &SeekError{Offset: offset, Whence: whence, Err: ErrOffsetOverflow}
	}
	c.off = int(abs)
	return abs, nil
}

// Read implements io.Reader. It returns io.EOF once the offset is past the
// last row.
func (c *Cursor[T]) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	data := asBytes(c.buf.pixels())
	n := 0
	for n < len(p) {
		row, next, ok := c.rest(data)
		if !ok {
			break
		}
		k := copy(p[n:], row)
		n += k
		c.advance(k, len(row), next)
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Write implements io.Writer. Writing past the last row stops with
// io.ErrShortWrite and the number of bytes stored.
func (c *Cursor[T]) Write(p []byte) (int, error) {
	pix, err := c.buf.mutablePixels()
	if err != nil {
		return 0, err
	}
	data := asBytes(pix)
	n := 0
	for n < len(p) {
		row, next, ok := c.rest(data)
		if !ok {
			return n, io.ErrShortWrite
		}
		k := copy(row, p[n:])
		n += k
		c.advance(k, len(row), next)
	}
	return n, nil
}

// WriteTo implements io.WriterTo, writing the remaining pixels to w one row
// segment at a time.
func (c *Cursor[T]) WriteTo(w io.Writer) (int64, error) {
	data := asBytes(c.buf.pixels())
	var total int64
	for {
		row, next, ok := c.rest(data)
		if !ok {
			return total, nil
		}
		k, err := w.Write(row)
		total += int64(k)
		c.advance(k, len(row), next)
		if err != nil {
			return total, err
		}
		if k < len(row) {
			return total, io.ErrShortWrite
		}
	}
}

// Flush does nothing; the cursor does not buffer.
func (c *Cursor[T]) Flush() error {
	return nil
}

// rest returns the bytes from the offset to the end of the current row's
// pixels, first moving the offset out of any padding. next is the offset of
// the following row. ok is false at the end of the stream.
func (c *Cursor[T]) rest(data []byte) (row []byte, next int, ok bool) {
	l := c.buf.layout
	size := pixelSize[T]()
	pitch := l.Stride * size
	rowLen := l.Width * size
	end := pitch * l.Height
	for c.off < end && rowLen > 0 {
		rowStart := c.off / pitch * pitch
		if c.off-rowStart < rowLen {
			return data[c.off : rowStart+rowLen], rowStart + pitch, true
		}
		c.off = rowStart + pitch
	}
	return nil, 0, false
}

// advance moves past k bytes of a row segment of length n. Finishing the
// segment jumps to next, skipping the padding.
func (c *Cursor[T]) advance(k, n, next int) {
	if k < n {
		c.off += k
		return
	}
	c.off = next
}

func pixelSize[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// asBytes reinterprets s as its len(s)*size bytes.
func asBytes[T any](s []T) []byte {
	size := pixelSize[T]()
	if len(s) == 0 || size == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*size)
}
