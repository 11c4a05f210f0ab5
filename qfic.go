// Package qfic implements a fractal image codec: a lossy compression engine
// for square grayscale raster images whose side length is a power of two.
//
// An image is represented as a set of affine contractive transformations
// between larger "domain" blocks and smaller "range" blocks of the same
// image. Encoding is a recursive quadtree search for those transformations;
// decoding reconstructs the image by iterating them from a random seed
// until the attractor converges.
//
// Basic usage for encoding:
//
//	enc := qfic.NewEncoder(image)
//	compressed, err := enc.Compress()
//
// Basic usage for decoding:
//
//	decoded, err := qfic.Decompress(compressed, qfic.DefaultOptions())
//
// Basic usage for persistence:
//
//	n, err := qfic.WriteBinaryV1(w, compressed)
//	roundTripped, err := qfic.ReadBinaryV1(r)
package qfic

import (
	"io"

	"github.com/dpeckham/qfic/internal/codec"
	"github.com/dpeckham/qfic/internal/geom"
	"github.com/dpeckham/qfic/internal/metrics"
	"github.com/dpeckham/qfic/internal/view"
	"github.com/dpeckham/qfic/model"
)

// Size is an image's (width, height), re-exported for callers that don't
// want to import the internal geometry package directly.
type Size = geom.Size

// Coords is a pixel position, re-exported from internal/geom.
type Coords = geom.Coords

// Rotation is one of the four 90-degree-quantized domain-block rotations.
type Rotation = geom.Rotation

// The four wire-encoded rotations, re-exported from internal/geom.
const (
	RotateBy0   = geom.RotateBy0
	RotateBy90  = geom.RotateBy90
	RotateBy180 = geom.RotateBy180
	RotateBy270 = geom.RotateBy270
)

// View is the read-only pixel-addressable capability an Encoder consumes
// and a Decoder produces: a size and a pixel accessor.
type View = view.View

// Block, Transformation and Compressed are re-exported from package model —
// see there for field docs.
type (
	Block          = model.Block
	Transformation = model.Transformation
	Compressed     = model.Compressed
)

// NewSize builds a Size from explicit width and height.
func NewSize(width, height uint32) Size { return geom.NewSize(width, height) }

// SquareSize builds a Size whose width and height both equal side.
func SquareSize(side uint32) Size { return geom.Squared(side) }

// NewCoords builds a Coords from explicit x and y.
func NewCoords(x, y uint32) Coords { return geom.NewCoords(x, y) }

// WriteBinaryV1 serializes c to w in QFIC v1 format (see internal/codec for
// the exact byte layout) and returns the number of bytes written. It fails
// with an error wrapping ErrInvalidBlockSize if any transformation's domain
// block size is not exactly twice its range block size.
func WriteBinaryV1(w io.Writer, c *Compressed) (int64, error) {
	return codec.WriteV1(w, c)
}

// ReadBinaryV1 deserializes a QFIC v1 stream from r. It fails with an error
// wrapping ErrInvalidRotation if a rotation byte on the wire is outside
// 0..=3.
func ReadBinaryV1(r io.Reader) (*Compressed, error) {
	return codec.ReadV1(r)
}

// Sentinel errors surfaced by WriteBinaryV1 and ReadBinaryV1, re-exported
// from internal/codec so callers can use errors.Is without importing it.
var (
	ErrInvalidBlockSize = codec.ErrInvalidBlockSize
	ErrInvalidRotation  = codec.ErrInvalidRotation
)

// MSE computes the mean squared pixel-intensity error between a and b. It
// fails with an error wrapping ErrSizeMismatch if a and b differ in size.
func MSE(a, b View) (float64, error) {
	return metrics.MSE(a, b)
}

// PSNR computes the peak signal-to-noise ratio between a and b, in
// decibels. It returns +Inf when a and b are pixel-identical, and fails
// with an error wrapping ErrSizeMismatch if a and b differ in size.
func PSNR(a, b View) (float64, error) {
	return metrics.PSNR(a, b)
}

// ErrSizeMismatch is returned by MSE and PSNR when the two images being
// compared do not share a size, re-exported from internal/metrics.
var ErrSizeMismatch = metrics.ErrSizeMismatch
