package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpeckham/qfic/internal/geom"
)

func TestRasterSetPixelAndPixel(t *testing.T) {
	r := NewBlankRaster(geom.Squared(4))
	r.SetPixel(1, 2, 200)
	assert.Equal(t, geom.Pixel(200), r.Pixel(1, 2))
	assert.Equal(t, geom.Pixel(0), r.Pixel(0, 0))
}

func TestRasterPixelOutOfBoundsPanics(t *testing.T) {
	r := NewBlankRaster(geom.Squared(2))
	assert.Panics(t, func() { r.Pixel(2, 0) })
	assert.Panics(t, func() { r.SetPixel(0, 2, 1) })
}

func TestRasterSnapshotIsIndependent(t *testing.T) {
	r := NewBlankRaster(geom.Squared(2))
	r.SetPixel(0, 0, 10)
	snap := r.Snapshot()
	r.SetPixel(0, 0, 50)
	assert.Equal(t, geom.Pixel(10), snap.Pixel(0, 0))
	assert.Equal(t, geom.Pixel(50), r.Pixel(0, 0))
}

func TestNewRandomRasterIsDeterministic(t *testing.T) {
	a := NewRandomRaster(geom.Squared(8))
	b := NewRandomRaster(geom.Squared(8))
	require.Equal(t, a.Size(), b.Size())
	for y := uint32(0); y < 8; y++ {
		for x := uint32(0); x < 8; x++ {
			assert.Equal(t, a.Pixel(x, y), b.Pixel(x, y))
		}
	}
}

func TestNewRandomRasterSeededDiffersAcrossSeeds(t *testing.T) {
	a := NewRandomRasterSeeded(geom.Squared(16), 1)
	b := NewRandomRasterSeeded(geom.Squared(16), 2)
	different := false
	Each(a, func(p geom.Pixel, c geom.Coords) {
		if p != b.Pixel(c.X, c.Y) {
			different = true
		}
	})
	assert.True(t, different)
}

func TestMaterialize(t *testing.T) {
	src := FakeImage(geom.Squared(4))
	raster := Materialize(src)
	Each(src, func(p geom.Pixel, c geom.Coords) {
		assert.Equal(t, p, raster.Pixel(c.X, c.Y))
	})
}
