// Package imageio bridges qfic's internal pixel views to and from ordinary
// Go images: decoding any stdlib-registered raster format into a square,
// power-of-two-sided grayscale view.View, and encoding a view.View back out
// as PNG. It is not part of the codec's core: an encoder or decoder never
// imports it, and it exists only so that real image files can feed the core
// instead of only procedural test fixtures.
package imageio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math/bits"

	// Register the common raster decoders with image.Decode.
	_ "image/gif"
	_ "image/jpeg"

	xdraw "golang.org/x/image/draw"

	"github.com/dpeckham/qfic/internal/geom"
	"github.com/dpeckham/qfic/internal/view"
)

// Load decodes an image from r, converts it to grayscale using the NTSC
// luminance weighting, and resamples it to the largest power-of-two square
// that fits within its smaller dimension.
func Load(r io.Reader) (view.View, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode: %w", err)
	}

	gray := toGray(src)

	side := largestPowerOfTwoSquare(gray.Bounds())
	if side == 0 {
		return nil, fmt.Errorf("imageio: image too small to extract a power-of-two square")
	}

	resized := image.NewGray(image.Rect(0, 0, int(side), int(side)))
	xdraw.CatmullRom.Scale(resized, resized.Bounds(), gray, gray.Bounds(), xdraw.Over, nil)

	return &grayView{img: resized, size: geom.Squared(side)}, nil
}

// Save encodes src as a grayscale PNG to w.
func Save(w io.Writer, src view.View) error {
	size := src.Size()
	img := image.NewGray(image.Rect(0, 0, int(size.Width), int(size.Height)))

	for y := uint32(0); y < size.Height; y++ {
		for x := uint32(0); x < size.Width; x++ {
			img.SetGray(int(x), int(y), color.Gray{Y: src.Pixel(x, y)})
		}
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("imageio: encode: %w", err)
	}
	return nil
}

// toGray converts any image.Image to NTSC-weighted 8-bit grayscale:
// (299*R + 587*G + 114*B) / 1000, matching the original codec's
// preprocessing step rather than relying on Go's perceptual Rec. 601 luma.
func toGray(src image.Image) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := src.At(x, y).RGBA()
			// RGBA returns 16-bit-scaled components; reduce to 8-bit first.
			r8, g8, b8 := r>>8, g>>8, b>>8
			lum := (299*r8 + 587*g8 + 114*b8) / 1000
			dst.SetGray(x, y, color.Gray{Y: uint8(lum)})
		}
	}

	return dst
}

// largestPowerOfTwoSquare returns the largest power of two no greater than
// the smaller of bounds' width and height.
func largestPowerOfTwoSquare(bounds image.Rectangle) uint32 {
	side := bounds.Dx()
	if bounds.Dy() < side {
		side = bounds.Dy()
	}
	if side <= 0 {
		return 0
	}
	return uint32(1) << uint(bits.Len(uint(side))-1)
}

// grayView adapts an *image.Gray, already square and power-of-two-sided, as
// a view.View.
type grayView struct {
	img  *image.Gray
	size geom.Size
}

func (g *grayView) Size() geom.Size { return g.size }

func (g *grayView) Pixel(x, y uint32) geom.Pixel {
	return geom.Pixel(g.img.GrayAt(int(x), int(y)).Y)
}
