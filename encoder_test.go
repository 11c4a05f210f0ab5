package qfic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpeckham/qfic/internal/geom"
	"github.com/dpeckham/qfic/internal/metrics"
	"github.com/dpeckham/qfic/internal/view"
)

func TestCompressNonSquareImagePanics(t *testing.T) {
	img := view.FakeImage(geom.NewSize(4, 8))
	enc := NewEncoder(img)
	assert.Panics(t, func() { enc.Compress() })
}

func TestCompressNonPowerOfTwoSidePanics(t *testing.T) {
	img := view.FakeImage(geom.Squared(6))
	enc := NewEncoder(img)
	assert.Panics(t, func() { enc.Compress() })
}

func TestCompressProducesCoveringTransformationsForFlatImage(t *testing.T) {
	// A uniform image is trivially representable: every range block's
	// domain candidate downscales to the same constant, so every search
	// should accept at the top level (R = N/2) without ever subdividing.
	flat := newFlatView(32, 128)
	enc := NewEncoder(flat)
	compressed, err := enc.Compress()
	require.NoError(t, err)

	assert.Equal(t, geom.Squared(32), compressed.Size)
	require.NotEmpty(t, compressed.Transformations)

	for _, tr := range compressed.Transformations {
		assert.LessOrEqual(t, tr.Saturation, 1.0)
		assert.GreaterOrEqual(t, tr.Saturation, -1.0)
		assert.Equal(t, tr.Domain.BlockSize, 2*tr.Range.BlockSize)
	}
}

func TestCompressCircleConverges(t *testing.T) {
	img := view.GenCircle(64, 28)
	enc := NewEncoder(img).WithErrorThreshold(RmsAnyLowerThan(8.0))
	compressed, err := enc.Compress()
	require.NoError(t, err)
	require.NotEmpty(t, compressed.Transformations)

	decoded, err := Decompress(compressed, DefaultOptions())
	require.NoError(t, err)

	mse, err := metrics.MSE(img, decoded.Final)
	require.NoError(t, err)
	assert.Less(t, mse, 400.0)
}

func TestCompressReportsProgressMonotonically(t *testing.T) {
	flat := newFlatView(16, 200)
	var last uint32
	enc := NewEncoder(flat).WithProgressReporter(func(covered, total uint32) {
		assert.GreaterOrEqual(t, covered, last)
		assert.LessOrEqual(t, covered, total)
		last = covered
	})
	_, err := enc.Compress()
	require.NoError(t, err)
}

// flatView is a uniform-intensity square image, useful for asserting the
// encoder's search always succeeds at the top level without subdividing.
type flatView struct {
	size  geom.Size
	value geom.Pixel
}

func newFlatView(side uint32, value geom.Pixel) *flatView {
	return &flatView{size: geom.Squared(side), value: value}
}

func (f *flatView) Size() geom.Size            { return f.size }
func (f *flatView) Pixel(x, y uint32) geom.Pixel { return f.value }
