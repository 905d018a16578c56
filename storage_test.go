package pixbuf

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGrowable_ResizeAndReserve(t *testing.T) {
	g := NewGrowable[uint8](4, 8)
	if g.Len() != 4 || g.Cap() != 8 {
		t.Fatalf("Len, Cap = %d, %d, want 4, 8", g.Len(), g.Cap())
	}

	buf, err := FromStorage(g, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	_ = buf.Fill(3)

	g.Reserve(16)
	if g.Cap() < 20 {
		t.Errorf("Cap() after Reserve(16) = %d, want >= 20", g.Cap())
	}
	if diff := cmp.Diff([]uint8{3, 3, 3, 3}, g.Pixels()); diff != "" {
		t.Errorf("Reserve lost data (-want +got):\n%s", diff)
	}

	g.Resize(6)
	if diff := cmp.Diff([]uint8{3, 3, 3, 3, 0, 0}, g.Pixels()); diff != "" {
		t.Errorf("Resize grow (-want +got):\n%s", diff)
	}

	g.Resize(2)
	g.Resize(4)
	if diff := cmp.Diff([]uint8{3, 3, 0, 0}, g.Pixels()); diff != "" {
		t.Errorf("shrink then grow must zero (-want +got):\n%s", diff)
	}

	// A new buffer over the grown block sees the new extent.
	g.Resize(9)
	wide, err := FromStorage(g, 3, 3)
	if err != nil {
		t.Fatalf("FromStorage() over resized block error = %v", err)
	}
	if !wide.Writable() {
		t.Error("Growable buffer is not writable")
	}
}

func TestShared_RefCount(t *testing.T) {
	s := NewShared([]uint8{1, 2, 3, 4})
	if s.Refs() != 1 {
		t.Fatalf("Refs() = %d, want 1", s.Refs())
	}

	a, _ := FromStorage(s, 2, 2)
	b, _ := FromStorage(s.Retain(), 2, 2)
	if s.Refs() != 2 {
		t.Fatalf("Refs() after Retain = %d, want 2", s.Refs())
	}

	_ = a.Set(1, 1, 9)
	if v, _ := b.At(1, 1); v != 9 {
		t.Errorf("write through one handle not visible through the other: got %d", v)
	}

	if s.Release() {
		t.Error("Release() with a remaining reference reported last")
	}
	if !s.Release() {
		t.Error("final Release() did not report last")
	}
}

func TestShared_Unique(t *testing.T) {
	s := NewShared([]uint8{1, 2, 3, 4})
	if u := s.Unique(); u != s {
		t.Error("Unique() on sole reference copied the block")
	}

	other := s.Retain()
	u := s.Unique()
	if u == other {
		t.Fatal("Unique() with two references returned the shared block")
	}
	if other.Refs() != 1 || u.Refs() != 1 {
		t.Errorf("Refs() = %d (other), %d (unique), want 1, 1", other.Refs(), u.Refs())
	}
	u.MutablePixels()[0] = 100
	if other.Pixels()[0] != 1 {
		t.Error("write to unique copy reached the shared block")
	}
}

func TestReadOnly_Storage(t *testing.T) {
	data := []uint8{1, 2, 3, 4}
	ro := Borrow(data)
	if _, ok := any(ro).(MutableStorage[uint8]); ok {
		t.Fatal("ReadOnly implements MutableStorage")
	}
	buf, _ := FromStorage(ro, 2, 2)
	if err := buf.Fill(0); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Fill() error = %v, want ErrReadOnly", err)
	}
	if diff := cmp.Diff([]uint8{1, 2, 3, 4}, data); diff != "" {
		t.Errorf("read-only data changed (-want +got):\n%s", diff)
	}
}

func TestSlice_FixedArray(t *testing.T) {
	var arr [6]uint16
	buf, err := FromStorageWithStride(Slice[uint16](arr[:]), 2, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	_ = buf.Set(1, 1, 42)
	if arr[4] != 42 {
		t.Errorf("arr[4] = %d, want 42", arr[4])
	}
}
