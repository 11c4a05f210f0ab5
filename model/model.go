// Package model holds the data containers that an Encoder produces and a
// Decoder consumes: Block, Transformation and Compressed. They carry no
// behavior beyond String formatting, and the invariants stated in their doc
// comments are not checked here — the algorithms that build and interpret
// them live in the encoder, decoder and internal/codec packages.
package model

import (
	"fmt"

	"github.com/dpeckham/qfic/internal/geom"
)

// Block denotes an axis-aligned square region of an image whose top-left
// pixel is Origin.
type Block struct {
	BlockSize uint32
	Origin    geom.Coords
}

func (b Block) String() string {
	return fmt.Sprintf("Block[%d@%s]", b.BlockSize, b.Origin)
}

// Transformation is one affine contractive map between a downscaled and
// rotated Domain block and a Range block: decoding writes
// clamp(domain_pixel*Saturation+Brightness, 0, 255) into every Range pixel.
//
// Invariants: Domain.BlockSize == 2*Range.BlockSize; |Saturation| <= 1.0.
type Transformation struct {
	Range      Block
	Domain     Block
	Rotation   geom.Rotation
	Brightness int16
	Saturation float64
}

// Compressed is the output of an Encoder and the input to a Decoder: the
// original image's Size plus the ordered sequence of Transformations that
// reconstruct it. The order is not semantically significant to decoding —
// it is preserved only because Go slices are ordered.
type Compressed struct {
	Size            geom.Size
	Transformations []Transformation
}
