// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package erosion wears terrain down in proportion to its slope.
package erosion

import (
	"errors"
	"github.com/SoftbearStudios/relief/terrain"
)

var ErrNegativeStrength = errors.New("erosion: strength must not be negative")

// DebrisFlow lowers every cell by its slope times strength, clamped to the
// grid's soft bounds.
//
// All slopes are measured before any height changes. Writing in place while
// measuring would feed already eroded neighbors into later slopes.
func DebrisFlow(g *terrain.Grid, strength float64) error {
	if strength < 0 {
		return ErrNegativeStrength
	}

	nx, ny := g.NX(), g.NY()
	slopes := make([]float64, nx*ny)
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			slopes[g.Index(x, y)] = g.Slope(x, y)
		}
	}

	heights := g.Heights()
	for i, h := range heights {
		heights[i] = terrain.Clamp(h-slopes[i]*strength, g.MinHeight(), g.MaxHeight())
	}
	return g.SetHeights(heights)
}

// Run applies DebrisFlow iterations times.
func Run(g *terrain.Grid, strength float64, iterations int) error {
	for i := 0; i < iterations; i++ {
		if err := DebrisFlow(g, strength); err != nil {
			return err
		}
	}
	return nil
}
