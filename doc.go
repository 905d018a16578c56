// Package pixbuf provides a generic rectangular pixel buffer over arbitrary
// storage.
//
// # Overview
//
// A [Buffer] addresses Width x Height pixels of any plain-data type in
// row-major order with Stride elements per row. Columns [Width, Stride) of
// each row are padding: no pixel operation reads or writes them. The same
// addressing rules, defined once by [Layout], drive three things:
//
//   - indexed access by (x, y) or by linear index
//   - zero-copy region views that share the parent's stride
//   - a byte-stream [Cursor] that reads and writes rows without ever
//     touching padding
//
// # Storage
//
// A buffer does not care where its pixels live. Any [Storage] works:
// [Owned] blocks allocated by the package, [Growable] blocks, caller slices
// borrowed through [Slice] (writable) or [ReadOnly] (read-only), and
// reference-counted [Shared] blocks.
//
//	pix := make([]uint8, 64*48)
//	buf, err := pixbuf.FromStorageWithStride(pixbuf.Slice[uint8](pix), 60, 48, 64)
//
// # Regions
//
//	view, err := buf.Region(pixbuf.Pt(10, 10), pixbuf.Pt(20, 30))
//
// The view is 10x20 pixels, keeps Stride 64, and aliases buf's storage.
//
// # Streaming
//
// Cursor implements io.Reader, io.Writer, io.Seeker and io.WriterTo:
//
//	_, err := io.Copy(zstdWriter, buf.Cursor())
//
// The codec sub-package builds PNG, BMP, TIFF, zstd and LZW interchange on
// top of the cursor.
package pixbuf
