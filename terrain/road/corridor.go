// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package road

import (
	"errors"
	"github.com/SoftbearStudios/relief/terrain"
	"math"
)

var ErrInvalidWidth = errors.New("road: corridor width must be positive")

// CarveCorridor blends every cell within width of the path exactly once,
// toward the height of its nearest path cell with weight (1 - (d/width)²)³.
// Unlike flattening per path cell, overlapping footprints cannot compound.
func CarveCorridor(g *terrain.Grid, path Path, width float64) error {
	if !(width > 0) {
		return ErrInvalidWidth
	}

	n := g.Len()
	nearest := make([]float64, n)
	for i := range nearest {
		nearest[i] = math.Inf(1)
	}
	targets := make([]float64, n)

	r := int(math.Ceil(width))
	for _, p := range path {
		px, py := g.ReverseIndex(p)
		ph := g.HeightAt(p)

		for y := py - r; y <= py+r; y++ {
			for x := px - r; x <= px+r; x++ {
				if !g.Contains(x, y) {
					continue
				}
				dx, dy := float64(x-px), float64(y-py)
				d := math.Sqrt(dx*dx + dy*dy)
				i := g.Index(x, y)
				if d <= width && d < nearest[i] {
					nearest[i] = d
					targets[i] = ph
				}
			}
		}
	}

	for i, d := range nearest {
		if math.IsInf(d, 1) {
			continue
		}
		u := d / width
		a := 1 - u*u
		a = a * a * a
		h := g.HeightAt(i)
		g.SetHeightAt(i, (1-a)*h+a*targets[i])
	}

	return nil
}
