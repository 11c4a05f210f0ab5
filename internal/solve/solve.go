// Package solve implements the fractal codec's mapping solver: the
// closed-form least-squares fit of a brightness/saturation affine map
// between a domain candidate and a range block.
package solve

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/dpeckham/qfic/internal/view"
)

// Mapping is the result of a successful solve: the affine map
// range ≈ Saturation*domain + Brightness, and its RMS error against the
// actual range block.
type Mapping struct {
	Error      float64
	Brightness int16
	Saturation float64
}

// Solve fits the least-squares-optimal (saturation, brightness) pair
// mapping domain onto rng, both of which must have the same size. It
// returns ok == false when the fit is non-contractive (|saturation| > 1),
// per the collage theorem requirement that every transformation be
// contractive for iterated decoding to converge.
func Solve(domain, rng view.View) (Mapping, bool) {
	d := view.Flatten(domain)
	r := view.Flatten(rng)

	n := float64(len(d))

	sDR := floats.Dot(d, r)
	sDD := floats.Dot(d, d)
	sRR := floats.Dot(r, r)
	sD := floats.Sum(d)
	sR := floats.Sum(r)

	delta := n*sDD - sD*sD

	var saturation float64
	if delta != 0 {
		saturation = (n*sDR - sD*sR) / delta
	}

	var brightnessRaw float64
	if delta != 0 {
		brightnessRaw = (sR - saturation*sD) / n
	} else {
		brightnessRaw = sR / n
	}
	brightness := clamp(brightnessRaw, 0, 255)

	if math.Abs(saturation) > 1.0 {
		return Mapping{}, false
	}

	errSq := (sRR + saturation*(saturation*sDD-2*sDR+2*brightness*sD) + brightness*(n*brightness-2*sR)) / n
	if errSq < 0 {
		// Guard against tiny negative values from floating-point cancellation
		// in an otherwise-exact-zero error.
		errSq = 0
	}

	return Mapping{
		Error:      math.Sqrt(errSq),
		Brightness: int16(brightness),
		Saturation: saturation,
	}, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
