package view

import (
	"errors"
	"fmt"

	"github.com/dpeckham/qfic/internal/geom"
)

// ErrInvalidSize is returned by SquaredBlocks when size does not evenly
// divide the source's side.
var ErrInvalidSize = errors.New("view: block size does not divide source size")

// Block is a bounded sub-square of a source view: Pixel(x, y) reads
// source.Pixel(origin.x+x, origin.y+y).
type Block struct {
	size   uint32
	origin geom.Coords
	inner  View
}

// NewBlock builds a Block view of the given size anchored at origin within
// source. Callers that already know their bounds are in range (the
// decoder, whose domain origins were produced by the encoder's
// SquaredBlocks tiling) can use this directly instead of going through
// SquaredBlocks.
func NewBlock(source View, size uint32, origin geom.Coords) *Block {
	return &Block{inner: source, size: size, origin: origin}
}

// Size implements View.
func (b *Block) Size() geom.Size {
	return geom.Squared(b.size)
}

// Origin returns the block's top-left coordinate within its source.
func (b *Block) Origin() geom.Coords {
	return b.origin
}

// BlockSize returns the block's side length.
func (b *Block) BlockSize() uint32 {
	return b.size
}

// Pixel implements View.
func (b *Block) Pixel(x, y uint32) geom.Pixel {
	if x >= b.size || y >= b.size {
		panic(fmt.Sprintf("view: block pixel (%d, %d) out of bounds for size %d", x, y, b.size))
	}
	return b.inner.Pixel(b.origin.X+x, b.origin.Y+y)
}

// SquaredBlocks tiles source — which must be square — into non-overlapping
// size x size blocks, returned in row-major order of the block grid. It
// fails with ErrInvalidSize when size does not evenly divide source's side.
func SquaredBlocks(source View, size uint32) ([]*Block, error) {
	s := source.Size()
	if !s.IsSquare() {
		panic(fmt.Sprintf("view: squared_blocks requires a square source, got %s", s))
	}
	if size == 0 || s.Width%size != 0 {
		return nil, fmt.Errorf("%w: source %s, block size %d", ErrInvalidSize, s, size)
	}

	perSide := s.Width / size
	blocks := make([]*Block, 0, perSide*perSide)
	for by := uint32(0); by < perSide; by++ {
		for bx := uint32(0); bx < perSide; bx++ {
			blocks = append(blocks, &Block{
				inner:  source,
				size:   size,
				origin: geom.NewCoords(bx*size, by*size),
			})
		}
	}
	return blocks, nil
}
