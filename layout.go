package pixbuf

import (
	"fmt"
	"math"
)

// Layout describes how a width x height image is addressed in row-major
// storage with Stride elements per row. Columns [Width, Stride) of every row
// are padding and never part of the image.
//
// All index arithmetic in the package goes through Layout, so the rule for
// skipping padding is defined in exactly one place. A layout that fails
// Validate has no valid indices.
type Layout struct {
	Width  int
	Height int
	Stride int
}

// DenseLayout returns a layout with Stride == width.
func DenseLayout(width, height int) Layout {
	return Layout{Width: width, Height: height, Stride: width}
}

// Validate reports whether the layout can describe a buffer.
func (l Layout) Validate() error {
	if l.Width < 0 || l.Height < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, l.Width, l.Height)
	}
	if l.Stride < 0 || (l.Height > 0 && l.Stride < l.Width) {
		return fmt.Errorf("%w: stride %d, width %d", ErrInvalidStride, l.Stride, l.Width)
	}
	if l.Height > 0 && l.Stride > math.MaxInt/l.Height {
		return fmt.Errorf("%w: stride %d x height %d overflows int", ErrInvalidDimensions, l.Stride, l.Height)
	}
	return nil
}

// IsEmpty reports whether the layout has no pixels. A layout with rows but
// zero width is empty.
func (l Layout) IsEmpty() bool {
	return l.Width <= 0 || l.Height <= 0
}

// addressable reports whether indices can be mapped at all: the layout has
// pixels and each row fits in the stride.
func (l Layout) addressable() bool {
	return !l.IsEmpty() && l.Stride >= l.Width
}

// IsDense reports whether rows carry no padding.
func (l Layout) IsDense() bool {
	return l.Stride == l.Width
}

// Len returns the number of logical pixels.
func (l Layout) Len() int {
	if l.IsEmpty() {
		return 0
	}
	return l.Width * l.Height
}

// Span returns the number of storage elements from the first pixel to one
// past the last pixel: (Height-1)*Stride + Width. The last row's padding is
// not included.
func (l Layout) Span() int {
	if l.IsEmpty() {
		return 0
	}
	return (l.Height-1)*l.Stride + l.Width
}

// MaxIndex returns the last valid linear index, or -1 for an empty layout.
func (l Layout) MaxIndex() int {
	if l.IsEmpty() {
		return -1
	}
	return (l.Height-1)*l.Stride + (l.Width - 1)
}

// PositionToIndex maps (x, y) to a linear storage index.
func (l Layout) PositionToIndex(x, y int) (int, error) {
	xOut := x < 0 || x >= l.Width
	yOut := y < 0 || y >= l.Height
	switch {
	case xOut && yOut:
		return 0, &PositionOutOfRangeError{X: x, Y: y, Axes: AxisBoth}
	case xOut:
		return 0, &PositionOutOfRangeError{X: x, Y: y, Axes: AxisX}
	case yOut:
		return 0, &PositionOutOfRangeError{X: x, Y: y, Axes: AxisY}
	}
	return x + y*l.Stride, nil
}

// IndexToPosition maps a linear storage index back to (x, y).
// Indices that land in padding report OutsideStride.
func (l Layout) IndexToPosition(i int) (x, y int, err error) {
	if i < 0 || !l.addressable() {
		return 0, 0, &IndexOutOfRangeError{Index: i, Reason: PastEnd}
	}
	if i%l.Stride >= l.Width {
		return 0, 0, &IndexOutOfRangeError{Index: i, Reason: OutsideStride}
	}
	if i > l.MaxIndex() {
		return 0, 0, &IndexOutOfRangeError{Index: i, Reason: PastEnd}
	}
	return i % l.Stride, i / l.Stride, nil
}

// NextIndex returns the next non-padding index after i in row-major order.
// At the end of a row it jumps over the padding to the next row's start.
// It reports false when i is the last index.
func (l Layout) NextIndex(i int) (int, bool) {
	if !l.addressable() || i >= l.MaxIndex() {
		return 0, false
	}
	return l.NormalizeIndex(i + 1), true
}

// NormalizeIndex clamps i to [0, MaxIndex()] and moves an index that lands in
// padding forward to the start of the next row. It returns -1 for an empty
// or invalid layout.
func (l Layout) NormalizeIndex(i int) int {
	if !l.addressable() {
		return -1
	}
	if i < 0 {
		return 0
	}
	if last := l.MaxIndex(); i >= last {
		return last
	}
	if col := i % l.Stride; col >= l.Width {
		return i - col + l.Stride
	}
	return i
}

// Coord is a coordinate-like value: either an Index or a Point.
type Coord interface {
	// resolve returns the position and index of a pixel inside l.
	resolve(l Layout) (Point, int, error)
	// corner returns the exclusive corner position used as a region end.
	corner(l Layout) (Point, error)
}

// Index is a linear storage index.
type Index int

func (i Index) resolve(l Layout) (Point, int, error) {
	x, y, err := l.IndexToPosition(int(i))
	if err != nil {
		return Point{}, 0, err
	}
	return Point{X: x, Y: y}, int(i), nil
}

func (i Index) corner(l Layout) (Point, error) {
	p, _, err := i.resolve(l)
	return p, err
}

// Point is an (x, y) pixel position.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

func (p Point) resolve(l Layout) (Point, int, error) {
	i, err := l.PositionToIndex(p.X, p.Y)
	if err != nil {
		return Point{}, 0, err
	}
	return p, i, nil
}

// corner accepts the far edges x == Width and y == Height, which are one past
// the last pixel on each axis.
func (p Point) corner(l Layout) (Point, error) {
	xOut := p.X < 0 || p.X > l.Width
	yOut := p.Y < 0 || p.Y > l.Height
	switch {
	case xOut && yOut:
		return Point{}, &PositionOutOfRangeError{X: p.X, Y: p.Y, Axes: AxisBoth}
	case xOut:
		return Point{}, &PositionOutOfRangeError{X: p.X, Y: p.Y, Axes: AxisX}
	case yOut:
		return Point{}, &PositionOutOfRangeError{X: p.X, Y: p.Y, Axes: AxisY}
	}
	return p, nil
}
