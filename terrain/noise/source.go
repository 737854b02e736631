// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"fmt"
	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Source is continuous 2D noise in [0, 1].
// Implementations must be safe for concurrent Sample calls.
type Source interface {
	Sample(x, y float64) float64
}

const (
	// SourceGradient is the built in Perlin.
	SourceGradient = "gradient"
	// SourcePerlin is github.com/aquilax/go-perlin.
	SourcePerlin = "perlin"
	// SourceSimplex is github.com/ojrac/opensimplex-go.
	SourceSimplex = "simplex"
)

// NewSource creates a seeded Source by name. The empty name is SourceGradient.
func NewSource(name string, seed int64) (Source, error) {
	switch name {
	case "", SourceGradient:
		return NewPerlin(seed), nil
	case SourcePerlin:
		return newLibraryPerlin(seed), nil
	case SourceSimplex:
		return newSimplex(seed), nil
	default:
		return nil, fmt.Errorf("noise: unknown source %q", name)
	}
}

type libraryPerlin struct {
	p *perlin.Perlin
}

func newLibraryPerlin(seed int64) libraryPerlin {
	// alpha 2, beta 2, 3 internal octaves, as most generators in the wild use.
	return libraryPerlin{p: perlin.NewPerlin(2, 2, 3, seed)}
}

func (l libraryPerlin) Sample(x, y float64) float64 {
	return clamp01((l.p.Noise2D(x, y) + 1) * 0.5)
}

type simplex struct {
	n opensimplex.Noise
}

func newSimplex(seed int64) simplex {
	return simplex{n: opensimplex.NewNormalized(seed)}
}

func (s simplex) Sample(x, y float64) float64 {
	return clamp01(s.n.Eval2(x, y))
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
