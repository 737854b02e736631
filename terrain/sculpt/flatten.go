// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sculpt edits terrain inside circular footprints.
package sculpt

import (
	"errors"
	"github.com/SoftbearStudios/relief/terrain"
	"github.com/SoftbearStudios/relief/world"
	"math"
)

var ErrNegativeRadius = errors.New("sculpt: radius and transition width must not be negative")

// Flatten levels the disc of innerRadius around center (in cell coordinates)
// to height and blends a ring of transitionWidth around it toward height with
// Crater as the weight. Cells farther away are untouched.
func Flatten(g *terrain.Grid, center world.Vec2, innerRadius, height, transitionWidth float64) error {
	if innerRadius < 0 || transitionWidth < 0 {
		return ErrNegativeRadius
	}

	inner := world.Circle2From(center, innerRadius)
	outer := world.Circle2From(center, innerRadius+transitionWidth)

	bounds := outer.Bounds()
	x0 := maxInt(0, int(math.Floor(bounds.A.X)))
	y0 := maxInt(0, int(math.Floor(bounds.A.Y)))
	x1 := minInt(g.NX()-1, int(math.Ceil(bounds.B.X)))
	y1 := minInt(g.NY()-1, int(math.Ceil(bounds.B.Y)))

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := world.Vec2{X: float64(x), Y: float64(y)}

			if !outer.Inside(p) {
				continue
			}

			w := 1.0
			if !inner.Inside(p) {
				w = Crater(center.Distance(p), inner.Radius, outer.Radius)
			}

			if w >= 1 {
				g.SetHeight(x, y, height)
			} else if w > 0 {
				h := g.Height(x, y)
				g.SetHeight(x, y, h+(height-h)*w)
			}
		}
	}

	return nil
}

// Crater is the falloff weight at distance d of a disc with inner radius ri
// blending out to re: 1 up to ri, 0 from re, and (1 - u²)² in between with
// u = (d - ri) / (re - ri).
func Crater(d, ri, re float64) float64 {
	if d <= ri {
		return 1
	}
	if d >= re {
		return 0
	}
	u := (d - ri) / (re - ri)
	v := 1 - u*u
	return v * v
}

func minInt(x, y int) int {
	if x < y {
		return x
	}
	return y
}

func maxInt(x, y int) int {
	if x > y {
		return x
	}
	return y
}
