package codec

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/gogpu/pixbuf"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Pixel layouts with a standard library image counterpart.
type (
	// Gray is one 8-bit luminance sample, as in image.Gray.
	Gray = uint8
	// RGB is three 8-bit samples, expanded to opaque image.NRGBA.
	RGB = [3]uint8
	// RGBA is four 8-bit non-premultiplied samples, as in image.NRGBA.
	RGBA = [4]uint8
)

// ErrUnsupportedPixel is returned when a buffer's pixel type has no image
// counterpart.
var ErrUnsupportedPixel = errors.New("codec: unsupported pixel type")

// ToImage converts b to a standard library image by streaming its pixels
// through a cursor. Gray buffers become *image.Gray; RGB and RGBA buffers
// become *image.NRGBA.
func ToImage[T any](b *pixbuf.Buffer[T]) (image.Image, error) {
	switch src := any(b).(type) {
	case *pixbuf.Buffer[Gray]:
		return toGray(src)
	case *pixbuf.Buffer[RGBA]:
		return toNRGBA(src)
	case *pixbuf.Buffer[RGB]:
		return rgbToNRGBA(src)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedPixel, b)
	}
}

func toGray(b *pixbuf.Buffer[Gray]) (*image.Gray, error) {
	img := image.NewGray(image.Rect(0, 0, b.Width(), b.Height()))
	if _, err := io.ReadFull(b.Cursor(), img.Pix); err != nil {
		return nil, fmt.Errorf("codec: read gray pixels: %w", err)
	}
	return img, nil
}

func toNRGBA(b *pixbuf.Buffer[RGBA]) (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width(), b.Height()))
	if _, err := io.ReadFull(b.Cursor(), img.Pix); err != nil {
		return nil, fmt.Errorf("codec: read RGBA pixels: %w", err)
	}
	return img, nil
}

func rgbToNRGBA(b *pixbuf.Buffer[RGB]) (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width(), b.Height()))
	row := make([]byte, 3*b.Width())
	cur := b.Cursor()
	for y := range b.Height() {
		if _, err := io.ReadFull(cur, row); err != nil {
			return nil, fmt.Errorf("codec: read RGB row %d: %w", y, err)
		}
		dst := img.Pix[y*img.Stride:]
		for x := range b.Width() {
			dst[x*4] = row[x*3]
			dst[x*4+1] = row[x*3+1]
			dst[x*4+2] = row[x*3+2]
			dst[x*4+3] = 255 // Opaque
		}
	}
	return img, nil
}

// FromImage creates an RGBA buffer from a standard library image.
func FromImage(img image.Image) (*pixbuf.Buffer[RGBA], error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	buf, err := pixbuf.New[RGBA](width, height)
	if err != nil {
		return nil, err
	}

	// Fast path: NRGBA rows are already in buffer byte order.
	if nrgba, ok := img.(*image.NRGBA); ok {
		cur := buf.Cursor()
		for y := range height {
			start := nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			if _, err := cur.Write(nrgba.Pix[start : start+width*4]); err != nil {
				return nil, fmt.Errorf("codec: write row %d: %w", y, err)
			}
		}
		return buf, nil
	}

	// Generic slow path for any image type
	for y := range height {
		for x := range width {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			if err := buf.Set(x, y, RGBA{c.R, c.G, c.B, c.A}); err != nil {
				return nil, fmt.Errorf("codec: set pixel (%d, %d): %w", x, y, err)
			}
		}
	}
	return buf, nil
}

// FromGray creates a gray buffer from an *image.Gray without converting
// samples.
func FromGray(img *image.Gray) (*pixbuf.Buffer[Gray], error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	buf, err := pixbuf.New[Gray](width, height)
	if err != nil {
		return nil, err
	}
	cur := buf.Cursor()
	for y := range height {
		start := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		if _, err := cur.Write(img.Pix[start : start+width]); err != nil {
			return nil, fmt.Errorf("codec: write row %d: %w", y, err)
		}
	}
	return buf, nil
}

// EncodePNG encodes b as PNG to w.
func EncodePNG[T any](w io.Writer, b *pixbuf.Buffer[T]) error {
	img, err := ToImage(b)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("codec: encode PNG: %w", err)
	}
	pixbuf.Logger().Debug("codec: encoded PNG", "width", b.Width(), "height", b.Height())
	return nil
}

// EncodeBMP encodes b as BMP to w.
func EncodeBMP[T any](w io.Writer, b *pixbuf.Buffer[T]) error {
	img, err := ToImage(b)
	if err != nil {
		return err
	}
	if err := bmp.Encode(w, img); err != nil {
		return fmt.Errorf("codec: encode BMP: %w", err)
	}
	pixbuf.Logger().Debug("codec: encoded BMP", "width", b.Width(), "height", b.Height())
	return nil
}

// EncodeJPEG encodes b as JPEG to w. The quality defaults to
// jpeg.DefaultQuality; alpha is discarded.
func EncodeJPEG[T any](w io.Writer, b *pixbuf.Buffer[T], opts ...Option) error {
	o := applyOptions(opts)
	img, err := ToImage(b)
	if err != nil {
		return err
	}
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: o.jpegQuality}); err != nil {
		return fmt.Errorf("codec: encode JPEG: %w", err)
	}
	pixbuf.Logger().Debug("codec: encoded JPEG",
		"width", b.Width(), "height", b.Height(), "quality", o.jpegQuality)
	return nil
}

// EncodeTIFF encodes b as TIFF to w. Compression defaults to Deflate with
// the horizontal predictor.
func EncodeTIFF[T any](w io.Writer, b *pixbuf.Buffer[T], opts ...Option) error {
	o := applyOptions(opts)
	img, err := ToImage(b)
	if err != nil {
		return err
	}
	if err := tiff.Encode(w, img, &o.tiff); err != nil {
		return fmt.Errorf("codec: encode TIFF: %w", err)
	}
	pixbuf.Logger().Debug("codec: encoded TIFF",
		"width", b.Width(), "height", b.Height(), "compression", o.tiff.Compression)
	return nil
}

// Decode decodes a PNG, JPEG, BMP or TIFF image from r into an RGBA buffer,
// auto-detecting the format. It also returns the format name.
func Decode(r io.Reader) (*pixbuf.Buffer[RGBA], string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("codec: decode: %w", err)
	}
	buf, err := FromImage(img)
	if err != nil {
		return nil, "", err
	}
	pixbuf.Logger().Debug("codec: decoded", "format", format,
		"width", buf.Width(), "height", buf.Height())
	return buf, format, nil
}

// DecodePNG decodes a PNG image from r.
func DecodePNG(r io.Reader) (*pixbuf.Buffer[RGBA], error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("codec: decode PNG: %w", err)
	}
	return FromImage(img)
}

// DecodeJPEG decodes a JPEG image from r.
func DecodeJPEG(r io.Reader) (*pixbuf.Buffer[RGBA], error) {
	img, err := jpeg.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("codec: decode JPEG: %w", err)
	}
	return FromImage(img)
}

// DecodeBMP decodes a BMP image from r.
func DecodeBMP(r io.Reader) (*pixbuf.Buffer[RGBA], error) {
	img, err := bmp.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("codec: decode BMP: %w", err)
	}
	return FromImage(img)
}

// DecodeTIFF decodes a TIFF image from r.
func DecodeTIFF(r io.Reader) (*pixbuf.Buffer[RGBA], error) {
	img, err := tiff.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("codec: decode TIFF: %w", err)
	}
	return FromImage(img)
}
