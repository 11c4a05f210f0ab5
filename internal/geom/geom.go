// Package geom holds the small value types shared by every layer of the
// fractal codec: pixel intensities, image sizes, pixel coordinates and the
// four quantized rotations. None of these types know how to read or write
// pixels themselves — that capability lives in package view.
package geom

import "fmt"

// Pixel is an 8-bit grayscale intensity.
type Pixel = uint8

// Size is the (width, height) of a raster or view.
type Size struct {
	Width  uint32
	Height uint32
}

// NewSize builds a Size from explicit width and height.
func NewSize(width, height uint32) Size {
	return Size{Width: width, Height: height}
}

// Squared builds a Size whose width and height both equal side.
func Squared(side uint32) Size {
	return Size{Width: side, Height: side}
}

// Area returns width*height.
func (s Size) Area() uint32 {
	return s.Width * s.Height
}

// IsSquare reports whether width equals height.
func (s Size) IsSquare() bool {
	return s.Width == s.Height
}

// IsPowerOfTwo reports whether the (square) side length is a power of two.
func (s Size) IsPowerOfTwo() bool {
	side := s.Width
	return side != 0 && side&(side-1) == 0
}

// Transpose swaps width and height, as happens under a 90/270 rotation.
func (s Size) Transpose() Size {
	return Size{Width: s.Height, Height: s.Width}
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Coords is a (x, y) pixel position; origin top-left, x right, y down.
type Coords struct {
	X uint32
	Y uint32
}

// NewCoords builds a Coords from explicit x and y.
func NewCoords(x, y uint32) Coords {
	return Coords{X: x, Y: y}
}

func (c Coords) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Rotation is one of the four 90-degree-quantized rotations applied when
// sampling a domain block for a range-block match.
type Rotation uint8

const (
	RotateBy0 Rotation = iota
	RotateBy90
	RotateBy180
	RotateBy270
)

// AllRotations lists the four rotations in wire order (matches their byte
// encoding).
var AllRotations = [4]Rotation{RotateBy0, RotateBy90, RotateBy180, RotateBy270}

func (r Rotation) String() string {
	switch r {
	case RotateBy0:
		return "0°"
	case RotateBy90:
		return "90°"
	case RotateBy180:
		return "180°"
	case RotateBy270:
		return "270°"
	default:
		return fmt.Sprintf("Rotation(%d)", uint8(r))
	}
}

// Byte encodes the rotation as its QFIC v1 wire value (0..=3).
func (r Rotation) Byte() uint8 {
	return uint8(r)
}

// RotationFromByte decodes a QFIC v1 wire rotation byte. The second return
// value is false when b is outside 0..=3.
func RotationFromByte(b uint8) (Rotation, bool) {
	if b > uint8(RotateBy270) {
		return 0, false
	}
	return Rotation(b), true
}
