package pixbuf

import "iter"

// Indices yields every non-padding storage index in row-major order.
func (b *Buffer[T]) Indices() iter.Seq[int] {
	return func(yield func(int) bool) {
		if b.layout.IsEmpty() {
			return
		}
		for i, ok := 0, true; ok; i, ok = b.layout.NextIndex(i) {
			if !yield(i) {
				return
			}
		}
	}
}

// All yields every pixel with its position in row-major order.
func (b *Buffer[T]) All() iter.Seq2[Point, T] {
	return func(yield func(Point, T) bool) {
		data := b.pixels()
		for i := range b.Indices() {
			x, y, _ := b.layout.IndexToPosition(i)
			if !yield(Pt(x, y), data[i]) {
				return
			}
		}
	}
}

// Rows yields each row's pixels, limited to the image width.
func (b *Buffer[T]) Rows() iter.Seq2[int, []T] {
	return func(yield func(int, []T) bool) {
		for y := range b.layout.Height {
			if !yield(y, b.Row(y)) {
				return
			}
		}
	}
}
