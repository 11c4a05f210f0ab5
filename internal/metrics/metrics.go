// Package metrics computes the MSE and PSNR similarity metrics used to
// judge how closely a decoded image matches its source.
package metrics

import (
	"errors"
	"fmt"
	"math"

	"github.com/dpeckham/qfic/internal/geom"
	"github.com/dpeckham/qfic/internal/view"
)

// ErrSizeMismatch is returned by MSE and PSNR when the two images being
// compared do not share a size.
var ErrSizeMismatch = errors.New("metrics: images have different sizes")

// MSE computes the mean squared pixel-intensity error between a and b.
func MSE(a, b view.View) (float64, error) {
	sizeA, sizeB := a.Size(), b.Size()
	if sizeA != sizeB {
		return 0, fmt.Errorf("%w: %s != %s", ErrSizeMismatch, sizeA, sizeB)
	}

	var sum float64
	view.Each(a, func(pa geom.Pixel, c geom.Coords) {
		pb := b.Pixel(c.X, c.Y)
		diff := float64(int32(pa) - int32(pb))
		sum += diff * diff
	})

	return sum / float64(sizeA.Area()), nil
}

// PSNR computes the peak signal-to-noise ratio between a and b, in
// decibels. It returns +Inf when a and b are pixel-identical.
func PSNR(a, b view.View) (float64, error) {
	mse, err := MSE(a, b)
	if err != nil {
		return 0, err
	}

	maxA := maxPixel(a)
	maxB := maxPixel(b)
	peak := maxA
	if maxB > peak {
		peak = maxB
	}

	if mse == 0 {
		return math.Inf(1), nil
	}

	return 20*math.Log10(float64(peak)) - 10*math.Log10(mse), nil
}

func maxPixel(v view.View) geom.Pixel {
	var max geom.Pixel
	view.Each(v, func(p geom.Pixel, _ geom.Coords) {
		if p > max {
			max = p
		}
	})
	return max
}
