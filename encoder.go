package qfic

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/dpeckham/qfic/internal/geom"
	"github.com/dpeckham/qfic/internal/solve"
	"github.com/dpeckham/qfic/internal/view"
	"github.com/dpeckham/qfic/model"
)

// ErrorThreshold configures when the encoder accepts a candidate domain
// mapping for a range block. RmsAnyLowerThan is currently the only variant:
// the first candidate (domain block, rotation) pair whose mapping RMS error
// falls below the threshold wins — this is an any-match search, not a
// best-match search, and because candidates are evaluated in parallel,
// which candidate wins is unspecified when more than one qualifies.
type ErrorThreshold struct {
	rmsLowerThan float64
}

// RmsAnyLowerThan builds an ErrorThreshold that accepts the first candidate
// whose RMS error is strictly less than threshold.
func RmsAnyLowerThan(threshold float64) ErrorThreshold {
	return ErrorThreshold{rmsLowerThan: threshold}
}

// DefaultErrorThreshold is RmsAnyLowerThan(5.0), the encoder's default.
func DefaultErrorThreshold() ErrorThreshold {
	return RmsAnyLowerThan(5.0)
}

func (t ErrorThreshold) accepts(rmsError float64) bool {
	return rmsError < t.rmsLowerThan
}

// ProgressFunc is invoked by encoder worker goroutines as range blocks are
// accepted. It must be safe for concurrent invocation.
type ProgressFunc func(areaCovered, totalArea uint32)

// Stats tracks how much of the image's area has been covered by accepted
// range-block transformations so far. areaCovered is updated with an
// atomic add from possibly many worker goroutines at once.
type Stats struct {
	totalArea   uint32
	areaCovered atomic.Uint32
}

func newStats(size geom.Size) *Stats {
	return &Stats{totalArea: size.Area()}
}

// ReportBlockMapped records that a range block of the given side length has
// just been successfully mapped.
func (s *Stats) ReportBlockMapped(blockSize uint32) {
	s.areaCovered.Add(blockSize * blockSize)
}

// Report returns a consistent (areaCovered, totalArea) snapshot.
func (s *Stats) Report() (areaCovered, totalArea uint32) {
	return s.areaCovered.Load(), s.totalArea
}

// Encoder recursively partitions a square, power-of-two-sided image into a
// quadtree of range blocks and searches, for each, a domain block and
// rotation whose downscaled-and-rotated pixels can stand in for it within
// an acceptable error. See the package doc and spec §4.3 for the full
// algorithm.
type Encoder struct {
	image          View
	errorThreshold ErrorThreshold
	progressFn     ProgressFunc
	logger         zerolog.Logger
	stats          *Stats
	concurrency    int
}

// NewEncoder builds an Encoder over image, which must be square with a
// power-of-two side; violating that is a programming error, so Compress
// panics rather than returning an error for it (spec §7: invariant
// violations abort immediately rather than surfacing as a function of
// untrusted input).
func NewEncoder(image View) *Encoder {
	return &Encoder{
		image:          image,
		errorThreshold: DefaultErrorThreshold(),
		logger:         zerolog.Nop(),
		stats:          newStats(image.Size()),
		concurrency:    runtime.GOMAXPROCS(0),
	}
}

// WithErrorThreshold sets the acceptance threshold used by Compress.
func (e *Encoder) WithErrorThreshold(t ErrorThreshold) *Encoder {
	e.errorThreshold = t
	return e
}

// WithProgressReporter registers fn to be called as range blocks are
// accepted during Compress.
func (e *Encoder) WithProgressReporter(fn ProgressFunc) *Encoder {
	e.progressFn = fn
	return e
}

// WithLogger sets the logger used for per-search tracing and
// unmappable-block warnings. The default is a disabled (no-op) logger.
func (e *Encoder) WithLogger(logger zerolog.Logger) *Encoder {
	e.logger = logger
	return e
}

// Compress runs the quadtree encoder to completion and returns the
// resulting Compressed model.
func (e *Encoder) Compress() (*model.Compressed, error) {
	size := e.image.Size()
	if !size.IsSquare() || !size.IsPowerOfTwo() {
		panic(fmt.Sprintf("qfic: encoder requires a square, power-of-two-sided image, got %s", size))
	}

	e.logger.Info().Stringer("size", size).Msg("compressing image")

	rangeBlockSize := size.Width / 2
	rangeBlocks, err := view.SquaredBlocks(e.image, rangeBlockSize)
	if err != nil {
		return nil, fmt.Errorf("qfic: partition initial range blocks: %w", err)
	}

	transformations, err := e.searchAll(context.Background(), rangeBlocks)
	if err != nil {
		return nil, err
	}

	e.logger.Info().Int("transformations", len(transformations)).Msg("compression complete")

	return &model.Compressed{
		Size:            size,
		Transformations: transformations,
	}, nil
}

// searchAll runs search over every block in blocks in parallel and
// concatenates the results. This is the fork half of the encoder's
// fork/join recursion at every level of the quadtree (spec §4.3 steps 3
// and 4f).
func (e *Encoder) searchAll(ctx context.Context, blocks []*view.Block) ([]model.Transformation, error) {
	results := make([][]model.Transformation, len(blocks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, rb := range blocks {
		i, rb := i, rb
		g.Go(func() error {
			sub, err := e.search(gctx, rb)
			if err != nil {
				return err
			}
			results[i] = sub
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []model.Transformation
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

// search finds a matching domain block for a single range block, or
// subdivides it into four quadrants and recurses. It returns the
// transformations collected from rb and its descendants.
func (e *Encoder) search(ctx context.Context, rb *view.Block) ([]model.Transformation, error) {
	e.logger.Debug().Uint32("size", rb.BlockSize()).Stringer("origin", rb.Origin()).Msg("searching range block")

	t, err := e.findTransformation(ctx, rb)
	if err != nil {
		return nil, err
	}

	if t != nil {
		e.stats.ReportBlockMapped(rb.BlockSize())
		if e.progressFn != nil {
			covered, total := e.stats.Report()
			e.progressFn(covered, total)
		}
		return []model.Transformation{*t}, nil
	}

	if rb.BlockSize() == 1 {
		e.logger.Warn().Stringer("origin", rb.Origin()).Msg("unable to map 1x1 range block; seed pixel will stand uncorrected")
		return nil, nil
	}

	children, err := view.SquaredBlocks(rb, rb.BlockSize()/2)
	if err != nil {
		// rb.BlockSize() is a power of two by construction — the image's
		// side is a power of two and every split halves it — so this
		// cannot fail; treat it as the programming error it would be.
		panic(fmt.Sprintf("qfic: could not quarter range block: %v", err))
	}

	return e.searchAll(ctx, children)
}

// findTransformation searches every (domain block, rotation) candidate for
// rb in parallel, accepting the first whose mapping error satisfies the
// encoder's ErrorThreshold. It returns (nil, nil) when no candidate
// qualifies.
func (e *Encoder) findTransformation(ctx context.Context, rb *view.Block) (*model.Transformation, error) {
	domainBlocks, err := view.SquaredBlocks(e.image, 2*rb.BlockSize())
	if err != nil {
		return nil, fmt.Errorf("qfic: partition domain blocks: %w", err)
	}

	winner := make(chan model.Transformation, 1)
	var found atomic.Bool

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for _, db := range domainBlocks {
		db := db
		downscaled := view.Downscale2x2(db)
		for _, rotation := range geom.AllRotations {
			rotation := rotation
			g.Go(func() error {
				if found.Load() {
					return nil
				}
				select {
				case <-gctx.Done():
					return nil
				default:
				}

				candidate := view.Rotate(downscaled, rotation)
				mapping, ok := solve.Solve(candidate, rb)
				if !ok || !e.errorThreshold.accepts(mapping.Error) {
					return nil
				}

				if found.CompareAndSwap(false, true) {
					winner <- model.Transformation{
						Range: model.Block{
							BlockSize: rb.BlockSize(),
							Origin:    rb.Origin(),
						},
						Domain: model.Block{
							BlockSize: db.BlockSize(),
							Origin:    db.Origin(),
						},
						Rotation:   rotation,
						Brightness: mapping.Brightness,
						Saturation: mapping.Saturation,
					}
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(winner)

	t, ok := <-winner
	if !ok {
		return nil, nil
	}
	return &t, nil
}
