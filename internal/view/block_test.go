package view

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpeckham/qfic/internal/geom"
)

func TestSquaredBlocksTiling(t *testing.T) {
	src := FakeImage(geom.Squared(4))
	blocks, err := SquaredBlocks(src, 2)
	require.NoError(t, err)
	require.Len(t, blocks, 4)

	// Row-major order: (0,0), (2,0), (0,2), (2,2).
	wantOrigins := []geom.Coords{
		geom.NewCoords(0, 0),
		geom.NewCoords(2, 0),
		geom.NewCoords(0, 2),
		geom.NewCoords(2, 2),
	}
	for i, b := range blocks {
		assert.Equal(t, wantOrigins[i], b.Origin())
		assert.Equal(t, uint32(2), b.BlockSize())
	}
}

func TestSquaredBlocksPixelsMatchSource(t *testing.T) {
	src := FakeImage(geom.Squared(4))
	blocks, err := SquaredBlocks(src, 2)
	require.NoError(t, err)

	b := blocks[3] // origin (2, 2)
	assert.Equal(t, src.Pixel(2, 2), b.Pixel(0, 0))
	assert.Equal(t, src.Pixel(3, 3), b.Pixel(1, 1))
}

func TestSquaredBlocksInvalidSize(t *testing.T) {
	src := FakeImage(geom.Squared(4))
	_, err := SquaredBlocks(src, 3)
	assert.True(t, errors.Is(err, ErrInvalidSize))
}

func TestSquaredBlocksNonSquareSourcePanics(t *testing.T) {
	src := FakeImage(geom.NewSize(4, 8))
	assert.Panics(t, func() { SquaredBlocks(src, 2) })
}

func TestBlockPixelOutOfBoundsPanics(t *testing.T) {
	src := FakeImage(geom.Squared(4))
	b := NewBlock(src, 2, geom.NewCoords(0, 0))
	assert.Panics(t, func() { b.Pixel(2, 0) })
}
