package pixbuf

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCursor_RoundTrip(t *testing.T) {
	src, _ := New[[4]uint8](5, 3)
	for p := range src.All() {
		_ = src.Set(p.X, p.Y, [4]uint8{uint8(p.X), uint8(p.Y), uint8(p.X * p.Y), 255})
	}

	captured, err := io.ReadAll(src.Cursor())
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if int64(len(captured)) != src.ByteLen() {
		t.Fatalf("read %d bytes, want %d", len(captured), src.ByteLen())
	}

	dst, _ := New[[4]uint8](5, 3)
	n, err := dst.Cursor().Write(captured)
	if err != nil || n != len(captured) {
		t.Fatalf("Write() = %d, %v", n, err)
	}
	if !Equal(src, dst) {
		t.Error("round trip buffer differs from source")
	}
}

func TestCursor_PaddedRoundTrip(t *testing.T) {
	const pad = 0xAB
	srcData := make([]uint8, 6*4)
	for i := range srcData {
		srcData[i] = uint8(i)
	}
	src, _ := FromStorageWithStride(Slice[uint8](srcData), 4, 4, 6)

	var stream bytes.Buffer
	n, err := io.Copy(&stream, src.Cursor())
	if err != nil || n != 16 {
		t.Fatalf("Copy() = %d, %v, want 16 bytes", n, err)
	}
	want := []byte{0, 1, 2, 3, 6, 7, 8, 9, 12, 13, 14, 15, 18, 19, 20, 21}
	if diff := cmp.Diff(want, stream.Bytes()); diff != "" {
		t.Errorf("stream mismatch (-want +got):\n%s", diff)
	}

	dstData := bytes.Repeat([]byte{pad}, 6*4)
	dst, _ := FromStorageWithStride(Slice[uint8](dstData), 4, 4, 6)
	if _, err := io.Copy(dst.Cursor(), &stream); err != nil {
		t.Fatalf("Copy() into cursor error = %v", err)
	}
	if !Equal(src, dst) {
		t.Error("padded round trip differs")
	}
	for i, v := range dstData {
		if i%6 >= 4 && v != pad {
			t.Errorf("padding dstData[%d] = %#x, want %#x", i, v, pad)
		}
	}
}

func TestCursor_ReadWithinRow(t *testing.T) {
	buf, _ := FromStorageWithStride(Slice[uint8]{1, 2, 3, 0, 4, 5, 6, 0}, 3, 2, 4)
	cur := buf.Cursor()

	p := make([]byte, 2)
	n, err := cur.Read(p)
	if err != nil || n != 2 || cur.Offset() != 2 {
		t.Fatalf("Read() = %d, %v, offset %d", n, err, cur.Offset())
	}
	if diff := cmp.Diff([]byte{1, 2}, p); diff != "" {
		t.Errorf("first read (-want +got):\n%s", diff)
	}

	// Finishing the row jumps over the padding byte.
	p = make([]byte, 1)
	if n, err := cur.Read(p); err != nil || n != 1 || p[0] != 3 {
		t.Fatalf("Read() = %d, %v, %v", n, err, p)
	}
	if cur.Offset() != 4 {
		t.Errorf("offset after row end = %d, want 4", cur.Offset())
	}

	rest := make([]byte, 10)
	n, err = cur.Read(rest)
	if err != nil || n != 3 {
		t.Fatalf("Read() = %d, %v, want 3", n, err)
	}
	if diff := cmp.Diff([]byte{4, 5, 6}, rest[:n]); diff != "" {
		t.Errorf("last row (-want +got):\n%s", diff)
	}
	if n, err := cur.Read(rest); n != 0 || err != io.EOF {
		t.Errorf("Read() at end = %d, %v, want 0, EOF", n, err)
	}
}

func TestCursor_SeekEnd(t *testing.T) {
	buf, _ := New[uint8](7, 3)
	cur := buf.Cursor()

	off, err := cur.Seek(0, io.SeekEnd)
	if err != nil || off != 21 {
		t.Fatalf("Seek(0, End) = %d, %v, want 21", off, err)
	}
	if n, err := cur.Read(make([]byte, 4)); n != 0 || err != io.EOF {
		t.Errorf("Read() after seek to end = %d, %v, want 0, EOF", n, err)
	}

	off, err = cur.Seek(-3, io.SeekEnd)
	if err != nil || off != 18 {
		t.Fatalf("Seek(-3, End) = %d, %v, want 18", off, err)
	}
	if n, _ := cur.Read(make([]byte, 8)); n != 3 {
		t.Errorf("Read() after Seek(-3, End) = %d, want 3", n)
	}
}

func TestCursor_SeekEnd_Padded(t *testing.T) {
	buf, _ := FromStorageWithStride(NewOwned[uint16](5*2), 3, 2, 5)
	cur := buf.Cursor()
	off, err := cur.Seek(0, io.SeekEnd)
	if err != nil || off != (5+3)*2 {
		t.Fatalf("Seek(0, End) = %d, %v, want 16", off, err)
	}
	if n, err := cur.Read(make([]byte, 4)); n != 0 || err != io.EOF {
		t.Errorf("Read() at end = %d, %v, want 0, EOF", n, err)
	}
}

func TestCursor_Seek(t *testing.T) {
	buf, _ := FromStorage(Slice[uint8]{10, 11, 12, 13, 14, 15}, 3, 2)
	cur := buf.Cursor()

	if off, err := cur.Seek(4, io.SeekStart); err != nil || off != 4 {
		t.Fatalf("Seek(4, Start) = %d, %v", off, err)
	}
	if off, err := cur.Seek(-2, io.SeekCurrent); err != nil || off != 2 {
		t.Fatalf("Seek(-2, Current) = %d, %v", off, err)
	}
	p := make([]byte, 1)
	if _, err := cur.Read(p); err != nil || p[0] != 12 {
		t.Errorf("Read() after seek = %v, %v, want 12", p, err)
	}

	tests := []struct {
		name    string
		offset  int64
		whence  int
		wantErr error
	}{
		{"negative start", -1, io.SeekStart, ErrNegativeOffset},
		{"before start", -100, io.SeekCurrent, ErrNegativeOffset},
		{"overflow", math.MaxInt64, io.SeekEnd, ErrOffsetOverflow},
		{"bad whence", 0, 7, ErrInvalidWhence},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := cur.Offset()
			_, err := cur.Seek(tt.offset, tt.whence)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Seek() error = %v, want %v", err, tt.wantErr)
			}
			var serr *SeekError
			if !errors.As(err, &serr) {
				t.Errorf("Seek() error = %T, want *SeekError", err)
			}
			if cur.Offset() != before {
				t.Errorf("failed Seek moved offset from %d to %d", before, cur.Offset())
			}
		})
	}
}

func TestCursor_SeekIntoPadding(t *testing.T) {
	buf, _ := FromStorageWithStride(Slice[uint8]{1, 2, 0, 0, 3, 4, 0, 0}, 2, 2, 4)
	cur := buf.Cursor()
	if _, err := cur.Seek(3, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	p := make([]byte, 4)
	n, err := cur.Read(p)
	if err != nil || n != 2 {
		t.Fatalf("Read() = %d, %v, want 2", n, err)
	}
	if diff := cmp.Diff([]byte{3, 4}, p[:n]); diff != "" {
		t.Errorf("Read() from padding (-want +got):\n%s", diff)
	}
}

func TestCursor_ShortWrite(t *testing.T) {
	buf, _ := New[uint8](2, 2)
	n, err := buf.Cursor().Write([]byte{1, 2, 3, 4, 5})
	if n != 4 || !errors.Is(err, io.ErrShortWrite) {
		t.Errorf("Write() = %d, %v, want 4, ErrShortWrite", n, err)
	}
	if diff := cmp.Diff([]uint8{1, 2, 3, 4}, buf.Storage().Pixels()); diff != "" {
		t.Errorf("storage (-want +got):\n%s", diff)
	}
}

func TestCursor_WriteReadOnly(t *testing.T) {
	buf, _ := FromStorage(Borrow([]uint8{1, 2, 3, 4}), 2, 2)
	if _, err := buf.Cursor().Write([]byte{9}); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Write() error = %v, want ErrReadOnly", err)
	}
	if err := buf.Cursor().Flush(); err != nil {
		t.Errorf("Flush() error = %v", err)
	}
}

func TestCursor_MultiBytePixels(t *testing.T) {
	buf, _ := FromStorageWithStride(NewOwned[uint32](3*2), 2, 2, 3)
	cur := buf.Cursor()
	if got := buf.ByteLen(); got != 16 {
		t.Fatalf("ByteLen() = %d, want 16", got)
	}
	payload := make([]byte, 16)
	for i := range payload {
		payload[i] = 0x11
	}
	if _, err := cur.Write(payload); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if cur.Offset() != 24 {
		t.Errorf("offset after full write = %d, want 24", cur.Offset())
	}
	for p, v := range buf.All() {
		if v != 0x11111111 {
			t.Errorf("pixel %v = %#x, want 0x11111111", p, v)
		}
	}
	if pad := buf.Storage().Pixels()[2]; pad != 0 {
		t.Errorf("padding pixel = %#x, want 0", pad)
	}
}

func TestCursor_Region(t *testing.T) {
	canvas := newCanvas(t)
	region, _ := canvas.Region(Pt(0, 0), Pt(2, 2))

	got := make([]byte, region.ByteLen())
	if _, err := io.ReadFull(region.Cursor(), got); err != nil {
		t.Fatalf("ReadFull() error = %v", err)
	}
	want := []byte{255, 0, 0, 0, 0, 0, 255, 255, 0, 255, 0, 0}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("region bytes (-want +got):\n%s", diff)
	}
}

func TestCursor_WriteToShortWriter(t *testing.T) {
	buf, _ := FromStorage(Slice[uint8]{1, 2, 3, 4}, 2, 2)
	cur := buf.Cursor()
	w := &limitedWriter{limit: 3}
	n, err := cur.WriteTo(w)
	if n != 3 || !errors.Is(err, io.ErrShortWrite) {
		t.Errorf("WriteTo() = %d, %v, want 3, ErrShortWrite", n, err)
	}
	if cur.Offset() != 3 {
		t.Errorf("offset = %d, want 3", cur.Offset())
	}
}

// limitedWriter accepts at most limit bytes in total.
type limitedWriter struct {
	limit int
	got   []byte
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	n := min(len(p), w.limit-len(w.got))
	w.got = append(w.got, p[:n]...)
	return n, nil
}

func BenchmarkCursor_ReadPadded(b *testing.B) {
	buf, _ := FromStorageWithStride(NewOwned[[4]uint8](1088*1080), 1080, 1080, 1088)
	dst := make([]byte, buf.ByteLen())
	b.SetBytes(buf.ByteLen())
	for b.Loop() {
		_, _ = io.ReadFull(buf.Cursor(), dst)
	}
}

func BenchmarkFill_Padded(b *testing.B) {
	buf, _ := FromStorageWithStride(NewOwned[uint32](1088*1080), 1080, 1080, 1088)
	for b.Loop() {
		_ = buf.Fill(0xFF00FF00)
	}
}

func TestCursor_Accessors(t *testing.T) {
	buf, _ := New[uint16](4, 2)
	cur := buf.Cursor()
	if cur.Buffer() != buf {
		t.Error("Buffer() does not return the streamed buffer")
	}
	if cur.Size() != 16 {
		t.Errorf("Size() = %d, want 16", cur.Size())
	}
	if cur.Offset() != 0 {
		t.Errorf("Offset() = %d, want 0", cur.Offset())
	}
}
