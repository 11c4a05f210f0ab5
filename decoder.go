package qfic

import (
	"github.com/rs/zerolog"

	"github.com/dpeckham/qfic/internal/view"
	"github.com/dpeckham/qfic/model"
)

// Options configures Decompress.
type Options struct {
	// Iterations is the number of fixed-point iterations to run. Roughly
	// 8-12 suffice for visible convergence at 8-bit precision (spec §4.4).
	Iterations uint8

	// KeepEachIteration, if set, retains a snapshot of the raster after
	// every iteration in Decompressed.Iterations.
	KeepEachIteration bool

	logger *zerolog.Logger
}

// DefaultOptions returns Options{Iterations: 10}.
func DefaultOptions() Options {
	return Options{Iterations: 10}
}

// WithLogger attaches a logger used to trace per-iteration progress.
func (o Options) WithLogger(logger zerolog.Logger) Options {
	o.logger = &logger
	return o
}

// Decompressed is the result of decoding: the converged raster, and,
// if requested, a snapshot after every iteration.
type Decompressed struct {
	Final      *view.Raster
	Iterations []*view.Raster
}

// Decompress reconstructs an image from compressed by iterating its
// transformations from a deterministic pseudo-random seed until the
// attractor of the collage converges (spec §4.4). The seed is derived
// solely from compressed.Size, so repeated decodes of the same Compressed
// are bit-for-bit identical.
func Decompress(compressed *model.Compressed, opts Options) (*Decompressed, error) {
	logger := opts.logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	current := view.NewRandomRaster(compressed.Size)

	var snapshots []*view.Raster

	for iter := uint8(1); iter <= opts.Iterations; iter++ {
		previous := current.Snapshot()

		for _, t := range compressed.Transformations {
			domainBlock := view.NewBlock(previous, t.Domain.BlockSize, t.Domain.Origin)
			downscaled := view.Downscale2x2(domainBlock)
			source := view.Rotate(downscaled, t.Rotation)

			r := t.Range.BlockSize
			ox, oy := t.Range.Origin.X, t.Range.Origin.Y

			for y := uint32(0); y < r; y++ {
				for x := uint32(0); x < r; x++ {
					d := float64(source.Pixel(x, y))
					v := d*t.Saturation + float64(t.Brightness)
					current.SetPixel(ox+x, oy+y, clampPixel(v))
				}
			}
		}

		logger.Debug().Uint8("iteration", iter).Msg("decode iteration complete")

		if opts.KeepEachIteration {
			snapshots = append(snapshots, current.Snapshot())
		}
	}

	return &Decompressed{
		Final:      current.Snapshot(),
		Iterations: snapshots,
	}, nil
}

func clampPixel(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
