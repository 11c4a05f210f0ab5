package view

import (
	"fmt"

	"github.com/dpeckham/qfic/internal/geom"
)

// Rotated quantizes source by one of the four 90-degree rotations. By90 and
// By270 swap width and height; By0 and By180 keep the original size.
type Rotated struct {
	inner    View
	rotation geom.Rotation
}

// Rotate wraps source in a Rotated view.
func Rotate(source View, rotation geom.Rotation) *Rotated {
	return &Rotated{inner: source, rotation: rotation}
}

// AllRotations returns the four rotations of source, in wire order
// (By0, By90, By180, By270).
func AllRotations(source View) [4]*Rotated {
	return [4]*Rotated{
		Rotate(source, geom.RotateBy0),
		Rotate(source, geom.RotateBy90),
		Rotate(source, geom.RotateBy180),
		Rotate(source, geom.RotateBy270),
	}
}

// Rotation reports which rotation this view applies.
func (r *Rotated) Rotation() geom.Rotation {
	return r.rotation
}

// Size implements View.
func (r *Rotated) Size() geom.Size {
	s := r.inner.Size()
	switch r.rotation {
	case geom.RotateBy90, geom.RotateBy270:
		return s.Transpose()
	default:
		return s
	}
}

// Pixel implements View.
func (r *Rotated) Pixel(x, y uint32) geom.Pixel {
	size := r.Size()
	if x >= size.Width || y >= size.Height {
		panic(fmt.Sprintf("view: rotated pixel (%d, %d) out of bounds for %s", x, y, size))
	}
	inner := r.inner.Size()
	switch r.rotation {
	case geom.RotateBy0:
		return r.inner.Pixel(x, y)
	case geom.RotateBy90:
		return r.inner.Pixel(y, inner.Height-1-x)
	case geom.RotateBy180:
		return r.inner.Pixel(inner.Width-1-x, inner.Height-1-y)
	case geom.RotateBy270:
		return r.inner.Pixel(inner.Width-1-y, x)
	default:
		panic(fmt.Sprintf("view: unknown rotation %v", r.rotation))
	}
}
