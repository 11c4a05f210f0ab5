package view

import (
	"fmt"

	"github.com/dpeckham/qfic/internal/geom"
)

// Downscaled is a 2x2 box-filtered view over source: its side is
// floor(source side / 2), and each output pixel is the floored average of
// the four corresponding source pixels.
type Downscaled struct {
	inner View
}

// Downscale2x2 wraps source in a Downscaled view.
func Downscale2x2(source View) *Downscaled {
	return &Downscaled{inner: source}
}

// Size implements View.
func (d *Downscaled) Size() geom.Size {
	s := d.inner.Size()
	return geom.NewSize(s.Width/2, s.Height/2)
}

// Pixel implements View.
func (d *Downscaled) Pixel(x, y uint32) geom.Pixel {
	size := d.Size()
	if x >= size.Width || y >= size.Height {
		panic(fmt.Sprintf("view: downscaled pixel (%d, %d) out of bounds for %s", x, y, size))
	}
	a := uint32(d.inner.Pixel(2*x, 2*y))
	b := uint32(d.inner.Pixel(2*x+1, 2*y))
	c := uint32(d.inner.Pixel(2*x, 2*y+1))
	e := uint32(d.inner.Pixel(2*x+1, 2*y+1))
	sum := a + b + c + e
	return geom.Pixel(sum / 4)
}
