// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/relief/terrain"
	"github.com/SoftbearStudios/relief/world"
	"golang.org/x/sync/errgroup"
	"math"
)

const (
	// Lacunarity multiplies the frequency after each octave.
	Lacunarity = 2.0
	// Gain multiplies the amplitude after each octave.
	Gain = 0.4
)

var (
	ErrNegativeOctaves = errors.New("noise: octaves must not be negative")
	ErrNonFinite       = errors.New("noise: sample is not finite")
)

// Params describes a noise generated terrain.
type Params struct {
	NX, NY    int     // Grid resolution.
	Scale     float64 // World units per cell fed to the noise.
	Octaves   int
	Amplitude float64
	Frequency float64
	Seed      int64
	Source    string // See NewSource.
	Workers   int    // Rows are filled in parallel when > 1.

	// Redistribution > 1 pushes midlands down into valleys, see Redistribute.
	Redistribution float64
}

// DefaultParams is a 256x256 hilly terrain.
func DefaultParams() Params {
	return Params{
		NX:        256,
		NY:        256,
		Scale:     1,
		Octaves:   5,
		Amplitude: 100,
		Frequency: 0.05,
		Seed:           56,
		Source:         SourceGradient,
		Redistribution: 1,
	}
}

// Generate creates a grid filled with fractal noise. The bounds span
// (0, 0) to (NX, NY) and the max height is MaxHeight(Amplitude, Octaves).
func Generate(params Params) (*terrain.Grid, error) {
	source, err := NewSource(params.Source, params.Seed)
	if err != nil {
		return nil, err
	}

	bounds := world.Box2From(world.Vec2{}, world.Vec2{X: float64(params.NX), Y: float64(params.NY)})
	g, err := terrain.New(bounds, params.NX, params.NY)
	if err != nil {
		return nil, err
	}
	if err := g.SetHeightRange(0, MaxHeight(params.Amplitude, params.Octaves)); err != nil {
		return nil, err
	}

	s := Synthesizer{
		Source:         source,
		Scale:          params.Scale,
		Octaves:        params.Octaves,
		Amplitude:      params.Amplitude,
		Frequency:      params.Frequency,
		Workers:        params.Workers,
		Redistribution: params.Redistribution,
	}
	if err := s.Fill(g); err != nil {
		return nil, err
	}
	return g, nil
}

// MaxHeight is the soft upper bound of a fractal terrain: the amplitude grown
// by a factor of (1 + 1/(2i)) for each octave i.
func MaxHeight(amplitude float64, octaves int) float64 {
	max := amplitude
	for i := 1; i <= octaves; i++ {
		max += max / float64(2*i)
	}
	return max
}

// Redistribute raises h, as a fraction of max, to the given exponent. Exponents
// at or below 1 leave h unchanged.
func Redistribute(h, max, exponent float64) float64 {
	if exponent <= 1 || max <= 0 || h <= 0 {
		return h
	}
	return max * math.Pow(h/max, exponent)
}

// Synthesizer layers octaves of a Source (fractal brownian motion).
type Synthesizer struct {
	Source    Source
	Scale     float64
	Octaves   int
	Amplitude float64
	Frequency float64
	Workers   int

	Redistribution float64
}

// At sums the octaves for cell x, y.
func (s *Synthesizer) At(x, y int) float64 {
	amplitude := s.Amplitude
	frequency := s.Frequency
	px := float64(x) * s.Scale
	py := float64(y) * s.Scale

	var h float64
	for i := 0; i < s.Octaves; i++ {
		h += amplitude * s.Source.Sample(px*frequency, py*frequency)
		frequency *= Lacunarity
		amplitude *= Gain
	}
	if s.Redistribution > 1 {
		h = Redistribute(h, MaxHeight(s.Amplitude, s.Octaves), s.Redistribution)
	}
	return h
}

// Fill overwrites every cell of g with At. g is left untouched if any sample
// is not finite.
func (s *Synthesizer) Fill(g *terrain.Grid) error {
	if s.Octaves < 0 {
		return ErrNegativeOctaves
	}

	nx, ny := g.NX(), g.NY()
	heights := make([]float64, nx*ny)

	fillRows := func(y0, y1 int) error {
		for y := y0; y < y1; y++ {
			row := heights[y*nx : (y+1)*nx]
			for x := range row {
				h := s.At(x, y)
				if math.IsNaN(h) || math.IsInf(h, 0) {
					return fmt.Errorf("%w: %v at (%d, %d)", ErrNonFinite, h, x, y)
				}
				row[x] = h
			}
		}
		return nil
	}

	workers := s.Workers
	if workers > ny {
		workers = ny
	}
	if workers <= 1 {
		if err := fillRows(0, ny); err != nil {
			return err
		}
	} else {
		var group errgroup.Group
		band := (ny + workers - 1) / workers
		for y0 := 0; y0 < ny; y0 += band {
			y0 := y0
			y1 := y0 + band
			if y1 > ny {
				y1 = ny
			}
			group.Go(func() error {
				return fillRows(y0, y1)
			})
		}
		if err := group.Wait(); err != nil {
			return err
		}
	}

	return g.SetHeights(heights)
}
