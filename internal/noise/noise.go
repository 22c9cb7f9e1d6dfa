// Package noise provides seedable coherent noise fields for the generation
// pipeline. Every phase that needs noise derives its own independent seed by
// XOR-ing the run seed with a phase salt, rather than sharing one generator
// across phases.
package noise

import (
	"github.com/aquilax/go-perlin"
)

// Field wraps a single Perlin generator seeded for one phase.
type Field struct {
	p *perlin.Perlin
}

// Salts used to derive independent per-phase seeds from the run seed.
const (
	ElevationSalt   = int64(0x5151)
	TemperatureSalt = int64(0x7A57)
	PrecipSalt      = int64(0xC0FFEE)
)

// New creates a field seeded with seed XOR salt. alpha/beta/n follow the
// standard Perlin fBm parameterization (persistence, lacunarity, octaves).
func New(seed, salt int64, alpha, beta float64, octaves int32) *Field {
	return &Field{p: perlin.NewPerlin(alpha, beta, octaves, seed^salt)}
}

// At returns raw (unnormalized) 2D noise at the given coordinates.
func (f *Field) At(x, y float64) float64 {
	return f.p.Noise2D(x, y)
}

// WrapX samples noise at (x, y) on a field of the given width, blending the
// two ends of the x-axis inside a border band so a field sampled across
// 0..width wraps seamlessly (no east-west seam). borderWidth is the number of
// columns at each edge over which the blend is applied.
func (f *Field) WrapX(x, y float64, width int, borderWidth float64) float64 {
	if borderWidth <= 0 || float64(width) <= 2*borderWidth {
		return f.At(x, y)
	}
	w := float64(width)
	direct := f.At(x, y)

	switch {
	case x < borderWidth:
		// Blend this column's sample with the sample that would be produced
		// by wrapping around from the far (east) edge. Both bands reach an
		// equal-weight blend at the seam, so x=0 and x=width agree.
		wrapped := f.At(x+w, y)
		t := 0.5 + 0.5*x/borderWidth
		return direct*t + wrapped*(1-t)
	case x > w-borderWidth:
		wrapped := f.At(x-w, y)
		t := 0.5 + 0.5*(w-x)/borderWidth
		return direct*t + wrapped*(1-t)
	default:
		return direct
	}
}

// Normalize01 rescales a slice of raw noise samples (any range) into [0,1]
// in place and returns it for convenience.
func Normalize01(values []float64) []float64 {
	if len(values) == 0 {
		return values
	}
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	span := max - min
	if span == 0 {
		for i := range values {
			values[i] = 0
		}
		return values
	}
	for i, v := range values {
		values[i] = (v - min) / span
	}
	return values
}
