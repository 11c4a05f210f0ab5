// Package codec implements the QFIC v1 binary wire format: a compact,
// deterministic, little-endian serialization of a Compressed model that
// groups transformations by range-block size to amortize the per-group
// size header. See model.Compressed for the in-memory shape and spec §4.5
// for the exact byte layout this package writes and reads.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/dpeckham/qfic/internal/geom"
	"github.com/dpeckham/qfic/model"
)

// ErrInvalidBlockSize is returned by WriteV1 when a transformation's domain
// block size is not exactly twice its range block size — the domain size
// is never stored on the wire, it is reconstructed as 2*range_block_size on
// read, so a violation here would silently corrupt the round trip.
var ErrInvalidBlockSize = errors.New("codec: domain block size must be 2x range block size")

// ErrInvalidRotation is returned by ReadV1 when a rotation byte on the wire
// is outside 0..=3.
var ErrInvalidRotation = errors.New("codec: rotation byte out of range")

type entry struct {
	rbOrigin geom.Coords
	dbOrigin geom.Coords
	rotation uint8
	brightness int16
	saturation float64
}

// WriteV1 serializes c to w in QFIC v1 format and returns the number of
// bytes written.
func WriteV1(w io.Writer, c *model.Compressed) (int64, error) {
	groups, order, err := groupByRangeSize(c)
	if err != nil {
		return 0, err
	}

	counter := &countingWriter{w: w}

	if err := binary.Write(counter, binary.LittleEndian, c.Size.Width); err != nil {
		return counter.n, fmt.Errorf("codec: write width: %w", err)
	}
	if err := binary.Write(counter, binary.LittleEndian, c.Size.Height); err != nil {
		return counter.n, fmt.Errorf("codec: write height: %w", err)
	}

	for _, rangeSize := range order {
		group := groups[rangeSize]
		if err := binary.Write(counter, binary.LittleEndian, rangeSize); err != nil {
			return counter.n, fmt.Errorf("codec: write group size: %w", err)
		}
		if err := binary.Write(counter, binary.LittleEndian, uint32(len(group))); err != nil {
			return counter.n, fmt.Errorf("codec: write entry count: %w", err)
		}
		for _, e := range group {
			if err := writeEntry(counter, e); err != nil {
				return counter.n, err
			}
		}
	}

	return counter.n, nil
}

// ReadV1 deserializes a QFIC v1 stream from r.
func ReadV1(r io.Reader) (*model.Compressed, error) {
	var width, height uint32
	if err := binary.Read(r, binary.LittleEndian, &width); err != nil {
		return nil, fmt.Errorf("codec: read width: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &height); err != nil {
		return nil, fmt.Errorf("codec: read height: %w", err)
	}

	var transformations []model.Transformation

	for {
		var rangeSize uint32
		err := binary.Read(r, binary.LittleEndian, &rangeSize)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("codec: read group size: %w", err)
		}

		var count uint32
		if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
			return nil, fmt.Errorf("codec: read entry count: %w", err)
		}

		for i := uint32(0); i < count; i++ {
			e, err := readEntry(r)
			if err != nil {
				return nil, err
			}
			rotation, ok := geom.RotationFromByte(e.rotation)
			if !ok {
				return nil, fmt.Errorf("%w: %d", ErrInvalidRotation, e.rotation)
			}
			transformations = append(transformations, model.Transformation{
				Range: model.Block{
					BlockSize: rangeSize,
					Origin:    e.rbOrigin,
				},
				Domain: model.Block{
					BlockSize: 2 * rangeSize,
					Origin:    e.dbOrigin,
				},
				Rotation:   rotation,
				Brightness: e.brightness,
				Saturation: e.saturation,
			})
		}
	}

	return &model.Compressed{
		Size:            geom.NewSize(width, height),
		Transformations: transformations,
	}, nil
}

// groupByRangeSize validates and buckets c's transformations by range block
// size. The returned order slice fixes an iteration order over the (Go)
// map so callers get a single deterministic traversal per call, even though
// the format itself makes no promise about group order across encodes.
func groupByRangeSize(c *model.Compressed) (map[uint32][]entry, []uint32, error) {
	groups := make(map[uint32][]entry)
	var order []uint32

	for _, t := range c.Transformations {
		if t.Domain.BlockSize != 2*t.Range.BlockSize {
			return nil, nil, fmt.Errorf("%w: range=%d domain=%d", ErrInvalidBlockSize, t.Range.BlockSize, t.Domain.BlockSize)
		}

		rangeSize := t.Range.BlockSize
		if _, seen := groups[rangeSize]; !seen {
			order = append(order, rangeSize)
		}
		groups[rangeSize] = append(groups[rangeSize], entry{
			rbOrigin:   t.Range.Origin,
			dbOrigin:   t.Domain.Origin,
			rotation:   t.Rotation.Byte(),
			brightness: t.Brightness,
			saturation: t.Saturation,
		})
	}

	return groups, order, nil
}

func writeEntry(w io.Writer, e entry) error {
	fields := []any{e.rbOrigin.X, e.rbOrigin.Y, e.dbOrigin.X, e.dbOrigin.Y, e.rotation, e.brightness, e.saturation}
	for _, f := range fields {
		if err := binary.Write(w, binary.LittleEndian, f); err != nil {
			return fmt.Errorf("codec: write entry: %w", err)
		}
	}
	return nil
}

func readEntry(r io.Reader) (entry, error) {
	var e entry
	var rbX, rbY, dbX, dbY uint32
	for _, f := range []any{&rbX, &rbY, &dbX, &dbY, &e.rotation, &e.brightness, &e.saturation} {
		if err := binary.Read(r, binary.LittleEndian, f); err != nil {
			return entry{}, fmt.Errorf("codec: read entry: %w", err)
		}
	}
	e.rbOrigin = geom.NewCoords(rbX, rbY)
	e.dbOrigin = geom.NewCoords(dbX, dbY)
	return e, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
