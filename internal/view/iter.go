package view

import "github.com/dpeckham/qfic/internal/geom"

// Each walks every pixel of src in row-major order, invoking fn with the
// pixel value and its coordinates. This module targets go 1.21, predating
// range-over-func, so enumeration is a plain callback rather than an
// iter.Seq2.
func Each(src View, fn func(p geom.Pixel, c geom.Coords)) {
	size := src.Size()
	for y := uint32(0); y < size.Height; y++ {
		for x := uint32(0); x < size.Width; x++ {
			fn(src.Pixel(x, y), geom.NewCoords(x, y))
		}
	}
}

// Flatten collects every pixel of src, row-major, as float64 — the shape
// internal/solve wants for its gonum-backed reductions.
func Flatten(src View) []float64 {
	size := src.Size()
	out := make([]float64, 0, size.Area())
	for y := uint32(0); y < size.Height; y++ {
		for x := uint32(0); x < size.Width; x++ {
			out = append(out, float64(src.Pixel(x, y)))
		}
	}
	return out
}
