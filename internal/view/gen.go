package view

import (
	"math"

	"github.com/dpeckham/qfic/internal/geom"
)

// genImage is a small procedural View with no backing buffer — useful for
// synthetic test fixtures that would otherwise need a multi-megabyte
// literal pixel array.
type genImage struct {
	size  geom.Size
	pixel func(x, y uint32) geom.Pixel
}

func (g *genImage) Size() geom.Size { return g.size }

func (g *genImage) Pixel(x, y uint32) geom.Pixel { return g.pixel(x, y) }

// GenCircle procedurally generates a size x size square image containing a
// white (255) filled circle of the given radius, centered, on a black (0)
// background.
func GenCircle(size uint32, radius float64) View {
	cx, cy := float64(size/2), float64(size/2)
	return &genImage{
		size: geom.Squared(size),
		pixel: func(x, y uint32) geom.Pixel {
			dx := cx - float64(x)
			dy := cy - float64(y)
			if math.Sqrt(dx*dx+dy*dy) <= radius {
				return 255
			}
			return 0
		},
	}
}

// GenSquare procedurally generates a size x size image containing a white
// (255) filled square centered on pixel (size/2, size/2), on a black (0)
// background. The square reaches squareSize/2 pixels out from that center
// in each direction, so it is 2*(squareSize/2)+1 pixels wide.
func GenSquare(size uint32, squareSize uint32) View {
	cx, cy := int64(size/2), int64(size/2)
	half := int64(squareSize / 2)
	return &genImage{
		size: geom.Squared(size),
		pixel: func(x, y uint32) geom.Pixel {
			dx := cx - int64(x)
			dy := cy - int64(y)
			if abs64(dx) <= half && abs64(dy) <= half {
				return 255
			}
			return 0
		},
	}
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// FakeImage is a deterministic test View whose pixel at (x, y) is
// y*width+x mod 256 — handy for asserting exact pixel identity under block
// tiling, downscaling and rotation without depending on a real raster.
func FakeImage(size geom.Size) View {
	return &genImage{
		size: size,
		pixel: func(x, y uint32) geom.Pixel {
			return geom.Pixel((y*size.Width + x) % 256)
		},
	}
}
