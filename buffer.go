package pixbuf

import "slices"

// Buffer is a rectangular image of T pixels over arbitrary storage.
//
// Pixels are addressed row-major with Stride elements per row; columns
// [Width, Stride) are padding and are never read or written by pixel-level
// operations. The storage holds at least Stride*Height elements, except for
// region views, which hold exactly the Span of their layout.
//
// Thread safety: Buffer is safe for concurrent read access. Write operations
// (Set*, Store, Fill, cursor writes) require external synchronization.
type Buffer[T any] struct {
	layout Layout
	src    Storage[T]
}

// FromStorage creates a buffer over s with stride equal to width.
func FromStorage[T any](s Storage[T], width, height int) (*Buffer[T], error) {
	return FromStorageWithStride(s, width, height, width)
}

// FromStorageWithStride creates a buffer over s with an explicit stride.
// If s holds fewer than stride*height elements the error is a
// *SourceTooSmallError carrying s back to the caller.
func FromStorageWithStride[T any](s Storage[T], width, height, stride int) (*Buffer[T], error) {
	l := Layout{Width: width, Height: height, Stride: stride}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if storageLen(s) < stride*height {
		return nil, &SourceTooSmallError[T]{Source: s, Width: width, Height: height, Stride: stride}
	}
	return &Buffer[T]{layout: l, src: s}, nil
}

// New creates a dense buffer over freshly allocated zeroed storage.
func New[T any](width, height int) (*Buffer[T], error) {
	l := DenseLayout(width, height)
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return newOwned[T](l), nil
}

// Filled creates a dense buffer with every pixel set to v.
func Filled[T any](width, height int, v T) (*Buffer[T], error) {
	b, err := New[T](width, height)
	if err != nil {
		return nil, err
	}
	data := b.src.Pixels()
	for i := range data {
		data[i] = v
	}
	return b, nil
}

// newOwned allocates owned storage for l without validation.
func newOwned[T any](l Layout) *Buffer[T] {
	return &Buffer[T]{layout: l, src: NewOwned[T](l.Stride * l.Height)}
}

// Width returns the image width in pixels.
func (b *Buffer[T]) Width() int {
	return b.layout.Width
}

// Height returns the image height in pixels.
func (b *Buffer[T]) Height() int {
	return b.layout.Height
}

// Stride returns the number of storage elements per row (including padding).
func (b *Buffer[T]) Stride() int {
	return b.layout.Stride
}

// Layout returns the addressing layout.
func (b *Buffer[T]) Layout() Layout {
	return b.layout
}

// Storage returns the backing storage.
func (b *Buffer[T]) Storage() Storage[T] {
	return b.src
}

// IsEmpty returns true if the image has zero dimensions.
func (b *Buffer[T]) IsEmpty() bool {
	return b.layout.IsEmpty()
}

// ByteLen returns the number of pixel bytes a cursor streams: Width*Height
// times the pixel size. Padding is not counted.
func (b *Buffer[T]) ByteLen() int64 {
	return int64(b.layout.Len()) * int64(pixelSize[T]())
}

// Writable reports whether the storage accepts writes.
func (b *Buffer[T]) Writable() bool {
	_, ok := b.src.(MutableStorage[T])
	return ok
}

func (b *Buffer[T]) pixels() []T {
	if b.src == nil {
		return nil
	}
	return b.src.Pixels()
}

func (b *Buffer[T]) mutablePixels() ([]T, error) {
	ms, ok := b.src.(MutableStorage[T])
	if !ok {
		return nil, ErrReadOnly
	}
	return ms.MutablePixels(), nil
}

// At returns the pixel at (x, y).
func (b *Buffer[T]) At(x, y int) (T, error) {
	i, err := b.layout.PositionToIndex(x, y)
	if err != nil {
		var zero T
		return zero, err
	}
	return b.pixels()[i], nil
}

// Set sets the pixel at (x, y).
func (b *Buffer[T]) Set(x, y int, v T) error {
	i, err := b.layout.PositionToIndex(x, y)
	if err != nil {
		return err
	}
	return b.setIndex(i, v)
}

// AtIndex returns the pixel at linear storage index i.
func (b *Buffer[T]) AtIndex(i int) (T, error) {
	if _, _, err := b.layout.IndexToPosition(i); err != nil {
		var zero T
		return zero, err
	}
	return b.pixels()[i], nil
}

// SetIndex sets the pixel at linear storage index i.
func (b *Buffer[T]) SetIndex(i int, v T) error {
	if _, _, err := b.layout.IndexToPosition(i); err != nil {
		return err
	}
	return b.setIndex(i, v)
}

// Lookup returns the pixel at c, which is either an Index or a Point.
func (b *Buffer[T]) Lookup(c Coord) (T, error) {
	_, i, err := c.resolve(b.layout)
	if err != nil {
		var zero T
		return zero, err
	}
	return b.pixels()[i], nil
}

// Store sets the pixel at c, which is either an Index or a Point.
func (b *Buffer[T]) Store(c Coord, v T) error {
	_, i, err := c.resolve(b.layout)
	if err != nil {
		return err
	}
	return b.setIndex(i, v)
}

func (b *Buffer[T]) setIndex(i int, v T) error {
	data, err := b.mutablePixels()
	if err != nil {
		return err
	}
	data[i] = v
	return nil
}

// Row returns the pixels of row y limited to the image width (excluding
// padding). Returns nil if y is out of bounds.
//
// The slice aliases the storage. Writing through it on read-only storage
// breaks the storage's contract.
func (b *Buffer[T]) Row(y int) []T {
	if y < 0 || y >= b.layout.Height || b.layout.IsEmpty() {
		return nil
	}
	start := y * b.layout.Stride
	return b.pixels()[start : start+b.layout.Width]
}

// Fill sets every pixel to v. Dense buffers are filled in one pass;
// otherwise each row's [0, Width) is filled and padding is left untouched.
func (b *Buffer[T]) Fill(v T) error {
	data, err := b.mutablePixels()
	if err != nil {
		return err
	}
	if b.layout.IsEmpty() {
		return nil
	}
	if b.layout.IsDense() {
		data = data[:b.layout.Len()]
		for i := range data {
			data[i] = v
		}
		return nil
	}
	for y := range b.layout.Height {
		start := y * b.layout.Stride
		row := data[start : start+b.layout.Width]
		for i := range row {
			row[i] = v
		}
	}
	return nil
}

// Clear sets all pixels to the zero value.
func (b *Buffer[T]) Clear() error {
	var zero T
	return b.Fill(zero)
}

// Reallocate returns an owned dense copy (Stride == Width). Use it to hand a
// region or a padded buffer to a consumer that assumes no padding.
func (b *Buffer[T]) Reallocate() *Buffer[T] {
	l := DenseLayout(b.layout.Width, b.layout.Height)
	out := newOwned[T](l)
	if l.IsEmpty() {
		return out
	}
	if !b.layout.IsDense() {
		slogger().Debug("pixbuf: reallocate strided buffer",
			"width", l.Width, "height", l.Height, "stride", b.layout.Stride)
	}
	dst := out.src.Pixels()
	src := b.pixels()
	for y := range l.Height {
		copy(dst[y*l.Width:(y+1)*l.Width], src[y*b.layout.Stride:y*b.layout.Stride+l.Width])
	}
	return out
}

// Clone creates a deep copy that keeps the stride. Padding elements are
// copied as they are.
func (b *Buffer[T]) Clone() *Buffer[T] {
	out := newOwned[T](b.layout)
	copy(out.src.Pixels(), b.pixels()[:b.layout.Span()])
	return out
}

// Map returns a dense owned buffer holding f applied to every pixel of b in
// row-major order.
func Map[T, U any](b *Buffer[T], f func(T) U) *Buffer[U] {
	l := DenseLayout(b.layout.Width, b.layout.Height)
	out := newOwned[U](l)
	dst := out.src.Pixels()
	i := 0
	for _, row := range b.Rows() {
		for _, p := range row {
			dst[i] = f(p)
			i++
		}
	}
	return out
}

// Equal reports whether a and b have the same height and identical rows.
// Stride and storage kind are ignored.
func Equal[T comparable](a, b *Buffer[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc is like Equal but compares pixels with eq.
func EqualFunc[T, U any](a *Buffer[T], b *Buffer[U], eq func(T, U) bool) bool {
	if a.layout.Height != b.layout.Height {
		return false
	}
	for y := range a.layout.Height {
		if !slices.EqualFunc(a.Row(y), b.Row(y), eq) {
			return false
		}
	}
	return true
}
