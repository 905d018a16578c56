package pixbuf

// Region returns a read-only view of the rectangle [start, end) of b.
//
// start must address a pixel. end is the exclusive corner: a Point may sit
// on the far edge (x == Width or y == Height), an Index must address a pixel.
// The view shares b's stride, so its rows stay non-contiguous exactly as in
// the parent, and its storage is the parent's storage from start through the
// last pixel of the rectangle. No pixels are copied.
func (b *Buffer[T]) Region(start, end Coord) (*Buffer[T], error) {
	l, lo, hi, err := b.carve(start, end)
	if err != nil {
		return nil, err
	}
	return &Buffer[T]{layout: l, src: Borrow(b.pixels()[lo:hi])}, nil
}

// RegionMut is like Region but the view is writable and aliases b.
// It fails with ErrReadOnly if b's storage is read-only.
func (b *Buffer[T]) RegionMut(start, end Coord) (*Buffer[T], error) {
	data, err := b.mutablePixels()
	if err != nil {
		return nil, err
	}
	l, lo, hi, err := b.carve(start, end)
	if err != nil {
		return nil, err
	}
	return &Buffer[T]{layout: l, src: Slice[T](data[lo:hi:hi])}, nil
}

// SubImage returns a read-only view of the w x h rectangle at (x, y).
func (b *Buffer[T]) SubImage(x, y, w, h int) (*Buffer[T], error) {
	return b.Region(Pt(x, y), Pt(x+w, y+h))
}

// carve validates a region and returns its layout and storage range.
func (b *Buffer[T]) carve(start, end Coord) (Layout, int, int, error) {
	s, lo, err := start.resolve(b.layout)
	if err != nil {
		return Layout{}, 0, 0, err
	}
	e, err := end.corner(b.layout)
	if err != nil {
		return Layout{}, 0, 0, err
	}
	if e.X < s.X || e.Y < s.Y {
		return Layout{}, 0, 0, &InvertedRegionError{Start: s, End: e}
	}
	l := Layout{Width: e.X - s.X, Height: e.Y - s.Y, Stride: b.layout.Stride}
	hi := lo + l.Span()
	slogger().Debug("pixbuf: carve region",
		"start", s, "end", e, "stride", l.Stride, "elements", hi-lo)
	return l, lo, hi, nil
}
