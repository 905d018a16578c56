// Package codec moves pixbuf buffers in and out of encoded forms.
//
// Every conversion streams pixel bytes through a pixbuf.Cursor, so padded
// buffers and region views work without first being reallocated.
//
// # Images
//
// Gray ([uint8]), RGB ([3]uint8) and RGBA ([4]uint8) buffers convert to
// image.Gray and image.NRGBA and encode as PNG, JPEG, BMP or TIFF. Decoding always
// produces an RGBA buffer.
//
// # Raw streams
//
// EncodeZstd and EncodeLZW compress the raw row-major pixel bytes;
// DecodeZstd and DecodeLZW fill a caller-provided buffer of the right size.
package codec
