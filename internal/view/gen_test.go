package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dpeckham/qfic/internal/geom"
)

func TestGenCircleCenterIsWhite(t *testing.T) {
	img := GenCircle(16, 6)
	assert.Equal(t, geom.Pixel(255), img.Pixel(8, 8))
	assert.Equal(t, geom.Pixel(0), img.Pixel(0, 0))
}

func TestGenSquareInsetIsWhite(t *testing.T) {
	img := GenSquare(16, 8)
	assert.Equal(t, geom.Pixel(255), img.Pixel(8, 8))
	assert.Equal(t, geom.Pixel(0), img.Pixel(0, 0))
}

func TestFakeImageIsDeterministicAndWraps(t *testing.T) {
	img := FakeImage(geom.Squared(4))
	assert.Equal(t, geom.Pixel(0), img.Pixel(0, 0))
	assert.Equal(t, geom.Pixel(1), img.Pixel(1, 0))
	assert.Equal(t, geom.Pixel(4), img.Pixel(0, 1))

	wide := FakeImage(geom.Squared(32))
	assert.Equal(t, geom.Pixel(0), wide.Pixel(0, 8)) // 8*32 = 256 wraps to 0
}

func TestIterEachVisitsEveryPixel(t *testing.T) {
	img := FakeImage(geom.Squared(4))
	count := 0
	Each(img, func(p geom.Pixel, c geom.Coords) {
		assert.Equal(t, img.Pixel(c.X, c.Y), p)
		count++
	})
	assert.Equal(t, 16, count)
}

func TestFlattenLengthMatchesArea(t *testing.T) {
	img := FakeImage(geom.Squared(4))
	flat := Flatten(img)
	assert.Len(t, flat, 16)
	assert.Equal(t, float64(img.Pixel(1, 0)), flat[1])
}
