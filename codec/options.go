package codec

import (
	"image/jpeg"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/image/tiff"
	"golang.org/x/image/tiff/lzw"
)

// Option configures an encoder or decoder.
//
// Example:
//
//	err := codec.EncodeTIFF(w, buf, codec.WithTIFFCompression(tiff.Uncompressed))
type Option func(*options)

// options holds codec configuration.
type options struct {
	zstdLevel       zstd.EncoderLevel
	zstdConcurrency int
	lzwOrder        lzw.Order
	jpegQuality     int
	tiff            tiff.Options
}

// defaultOptions returns the default codec options.
func defaultOptions() options {
	return options{
		zstdLevel:       zstd.SpeedDefault,
		zstdConcurrency: 1,
		lzwOrder:        lzw.MSB,
		jpegQuality:     jpeg.DefaultQuality,
		tiff:            tiff.Options{Compression: tiff.Deflate, Predictor: true},
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithZstdLevel sets the zstd encoder level.
func WithZstdLevel(level zstd.EncoderLevel) Option {
	return func(o *options) {
		o.zstdLevel = level
	}
}

// WithZstdConcurrency sets how many goroutines the zstd encoder may use.
// Values below 1 are treated as 1.
func WithZstdConcurrency(n int) Option {
	return func(o *options) {
		o.zstdConcurrency = max(n, 1)
	}
}

// WithLZWOrder sets the bit order DecodeLZW expects. EncodeLZW always
// writes MSB first.
func WithLZWOrder(order lzw.Order) Option {
	return func(o *options) {
		o.lzwOrder = order
	}
}

// WithJPEGQuality sets the JPEG quality, clamped to [1, 100].
func WithJPEGQuality(q int) Option {
	return func(o *options) {
		o.jpegQuality = min(max(q, 1), 100)
	}
}

// WithTIFFCompression sets the TIFF compression scheme.
func WithTIFFCompression(c tiff.CompressionType) Option {
	return func(o *options) {
		o.tiff.Compression = c
	}
}

// WithTIFFPredictor enables or disables the TIFF horizontal predictor.
func WithTIFFPredictor(enabled bool) Option {
	return func(o *options) {
		o.tiff.Predictor = enabled
	}
}
