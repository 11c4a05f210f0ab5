// Package view implements the read-only, lazily-composed pixel views the
// encoder and decoder operate on — an owning raster plus three pure
// compositions over it (sub-block, 2x2 downscale, 90-degree rotation) — and
// the one mutable raster type the decoder writes into.
//
// Every view is a plain Go value holding a View reference to its source;
// there is no caching and no explicit reference counting. Composition is
// just nesting one view inside another.
package view

import (
	"fmt"
	"math/rand"

	"github.com/dpeckham/qfic/internal/geom"
)

// View is the universal pixel-source capability: a size and a pixel
// accessor. Every concrete view (Raster, Block, Downscaled, Rotated) and
// every procedurally-generated test image implements it.
type View interface {
	Size() geom.Size
	Pixel(x, y uint32) geom.Pixel
}

// Raster is an owning, row-major pixel buffer. It is the only view that can
// be written to, and decoding is the only operation that ever does so.
type Raster struct {
	size geom.Size
	data []geom.Pixel
}

// NewRaster wraps data (row-major, len == size.Area()) as a Raster.
func NewRaster(size geom.Size, data []geom.Pixel) *Raster {
	if uint32(len(data)) != size.Area() {
		panic(fmt.Sprintf("view: raster data length %d does not match size %s", len(data), size))
	}
	return &Raster{size: size, data: data}
}

// NewBlankRaster allocates a zero-filled Raster of the given size.
func NewBlankRaster(size geom.Size) *Raster {
	return &Raster{size: size, data: make([]geom.Pixel, size.Area())}
}

// NewRandomRaster allocates a Raster whose pixels are filled from a PRNG
// seeded deterministically from size.Area(), so that decoding a given
// Compressed always starts from the same seed raster.
func NewRandomRaster(size geom.Size) *Raster {
	return NewRandomRasterSeeded(size, uint64(size.Area()))
}

// NewRandomRasterSeeded is NewRandomRaster with an explicit seed, mainly
// useful for tests that want reproducible-but-distinct seed rasters.
func NewRandomRasterSeeded(size geom.Size, seed uint64) *Raster {
	rng := rand.New(rand.NewSource(int64(seed)))
	data := make([]geom.Pixel, size.Area())
	for i := range data {
		data[i] = geom.Pixel(rng.Intn(256))
	}
	return &Raster{size: size, data: data}
}

// Size implements View.
func (r *Raster) Size() geom.Size {
	return r.size
}

// Pixel implements View. Out-of-bounds access is a programming error and
// panics rather than returning a zero value.
func (r *Raster) Pixel(x, y uint32) geom.Pixel {
	if x >= r.size.Width || y >= r.size.Height {
		panic(fmt.Sprintf("view: pixel (%d, %d) out of bounds for %s raster", x, y, r.size))
	}
	return r.data[y*r.size.Width+x]
}

// SetPixel bounds-checks and writes a pixel. Out-of-bounds access is a
// fatal invariant violation.
func (r *Raster) SetPixel(x, y uint32, value geom.Pixel) {
	if x >= r.size.Width || y >= r.size.Height {
		panic(fmt.Sprintf("view: set_pixel (%d, %d) out of bounds for %s raster", x, y, r.size))
	}
	r.data[y*r.size.Width+x] = value
}

// Snapshot returns an independent copy of r, used by the decoder to take an
// immutable "previous pass" at the start of each iteration.
func (r *Raster) Snapshot() *Raster {
	data := make([]geom.Pixel, len(r.data))
	copy(data, r.data)
	return &Raster{size: r.size, data: data}
}

// Materialize copies any View into an owning Raster.
func Materialize(src View) *Raster {
	size := src.Size()
	data := make([]geom.Pixel, size.Area())
	i := 0
	for y := uint32(0); y < size.Height; y++ {
		for x := uint32(0); x < size.Width; x++ {
			data[i] = src.Pixel(x, y)
			i++
		}
	}
	return &Raster{size: size, data: data}
}
