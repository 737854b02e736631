// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"github.com/SoftbearStudios/relief/world"
)

// Position2D maps cell i, j to world space, interpolating across the bounds.
// i and j are clamped to [0, nx] and [0, ny] first so callers may pass
// positions just off the grid.
func (g *Grid) Position2D(i, j int) world.Vec2 {
	i = clampInt(i, 0, g.nx)
	j = clampInt(j, 0, g.ny)

	a := g.bounds.A
	ab := g.bounds.Diagonal()
	return world.Vec2{
		X: a.X + ab.X*fraction(i, g.nx),
		Y: a.Y + ab.Y*fraction(j, g.ny),
	}
}

// Position is Position2D with the height as Z.
func (g *Grid) Position(i, j int) world.Vec3 {
	p := g.Position2D(i, j)
	return world.Vec3{X: p.X, Y: p.Y, Z: g.Height(i, j)}
}

// Gradient by central differences. Border cells have no neighbor on one side
// and always return the zero vector.
func (g *Grid) Gradient(x, y int) world.Vec2 {
	if x <= 0 || x >= g.nx-1 || y <= 0 || y >= g.ny-1 {
		return world.Vec2{}
	}

	diagonal := g.bounds.Diagonal()
	ex := 2 * diagonal.X / float64(g.nx-1)
	ey := 2 * diagonal.Y / float64(g.ny-1)
	if ex == 0 || ey == 0 {
		return world.Vec2{}
	}

	return world.Vec2{
		X: (g.Height(x+1, y) - g.Height(x-1, y)) / ex,
		Y: (g.Height(x, y+1) - g.Height(x, y-1)) / ey,
	}
}

// Slope is the length of the gradient.
func (g *Grid) Slope(x, y int) float64 {
	return g.Gradient(x, y).Length()
}

// Normal is the unit surface normal.
func (g *Grid) Normal(x, y int) world.Vec3 {
	grad := g.Gradient(x, y)
	// 0 - v rather than -v so flat cells don't format as -0.
	return world.Vec3{X: 0 - grad.X, Y: 0 - grad.Y, Z: 1}.Norm()
}

// fraction of the way cell i is across n cells. Single cell axes stay at 0.
func fraction(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
