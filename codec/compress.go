package codec

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/gogpu/pixbuf"
	lzwenc "github.com/hhrutter/lzw"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/image/tiff/lzw"
)

// ErrShortStream is returned when a compressed stream ends before the
// destination buffer is full.
var ErrShortStream = errors.New("codec: stream shorter than buffer")

// Decoders are stateless between streams and configured identically, so
// they are pooled. Encoders depend on options and are created per call.
var zstdDecPool sync.Pool

func acquireZstdDecoder() (*zstd.Decoder, error) {
	if dec, ok := zstdDecPool.Get().(*zstd.Decoder); ok {
		return dec, nil
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("codec: zstd reader: %w", err)
	}
	return dec, nil
}

// releaseZstdDecoder drops the decoder's reference to the caller's reader
// before pooling it.
func releaseZstdDecoder(dec *zstd.Decoder) {
	_ = dec.Reset(nil)
	zstdDecPool.Put(dec)
}

// EncodeZstd compresses the pixel bytes of b (padding excluded) to w and
// returns the number of uncompressed bytes consumed.
func EncodeZstd[T any](w io.Writer, b *pixbuf.Buffer[T], opts ...Option) (int64, error) {
	o := applyOptions(opts)
	enc, err := zstd.NewWriter(w,
		zstd.WithEncoderLevel(o.zstdLevel),
		zstd.WithEncoderConcurrency(o.zstdConcurrency))
	if err != nil {
		return 0, fmt.Errorf("codec: zstd writer: %w", err)
	}

	n, err := io.Copy(enc, b.Cursor())
	if err != nil {
		_ = enc.Close()
		return n, fmt.Errorf("codec: zstd encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return n, fmt.Errorf("codec: zstd encode: %w", err)
	}

	pixbuf.Logger().Debug("codec: zstd encoded",
		"width", b.Width(), "height", b.Height(), "bytes", n)
	return n, nil
}

// DecodeZstd decompresses r into dst. The stream must hold exactly
// dst.ByteLen() bytes: a longer stream fails with io.ErrShortWrite, a
// shorter one with ErrShortStream.
func DecodeZstd[T any](r io.Reader, dst *pixbuf.Buffer[T]) (int64, error) {
	dec, err := acquireZstdDecoder()
	if err != nil {
		return 0, err
	}
	defer releaseZstdDecoder(dec)

	if err := dec.Reset(r); err != nil {
		return 0, fmt.Errorf("codec: zstd reset: %w", err)
	}
	n, err := io.Copy(dst.Cursor(), dec)
	if err != nil {
		return n, fmt.Errorf("codec: zstd decode: %w", err)
	}
	return n, checkFilled(n, dst.ByteLen(), "zstd")
}

// EncodeLZW compresses the pixel bytes of b (padding excluded) to w using
// the TIFF flavour of LZW: MSB first, 8-bit literals, code width growing one
// code early.
func EncodeLZW[T any](w io.Writer, b *pixbuf.Buffer[T]) (int64, error) {
	enc := lzwenc.NewWriter(w, true)

	n, err := io.Copy(enc, b.Cursor())
	if err != nil {
		_ = enc.Close()
		return n, fmt.Errorf("codec: lzw encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return n, fmt.Errorf("codec: lzw encode: %w", err)
	}

	pixbuf.Logger().Debug("codec: lzw encoded",
		"width", b.Width(), "height", b.Height(), "bytes", n)
	return n, nil
}

// DecodeLZW decompresses a TIFF-flavour LZW stream from r into dst. The bit
// order defaults to lzw.MSB, matching EncodeLZW; streams written LSB first
// need WithLZWOrder(lzw.LSB).
func DecodeLZW[T any](r io.Reader, dst *pixbuf.Buffer[T], opts ...Option) (int64, error) {
	o := applyOptions(opts)
	dec := lzw.NewReader(r, o.lzwOrder, 8)
	defer func() { _ = dec.Close() }()

	n, err := io.Copy(dst.Cursor(), dec)
	if err != nil {
		return n, fmt.Errorf("codec: lzw decode: %w", err)
	}
	return n, checkFilled(n, dst.ByteLen(), "lzw")
}

func checkFilled(got, want int64, name string) error {
	if got < want {
		pixbuf.Logger().Warn("codec: short stream", "codec", name, "got", got, "want", want)
		return fmt.Errorf("%w: %s stream gave %d of %d bytes", ErrShortStream, name, got, want)
	}
	return nil
}
