// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import "github.com/SoftbearStudios/relief/world"

// Normalize01 maps value from [min, max] to [0, 1] without clamping.
func Normalize01(value, min, max float64) float64 {
	if max == min {
		return 0
	}
	return (value - min) / (max - min)
}

// Clamp saturates value at min and max.
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Lerp is a + (b-a)*t, unclamped.
func Lerp(a, b, t float64) float64 {
	return world.Lerp(a, b, t)
}

// Normalized is the height at i scaled to [0, 1] by the grid's soft bounds.
func (g *Grid) Normalized(i int) float64 {
	return Clamp(Normalize01(g.heights[i], g.minHeight, g.maxHeight), 0, 1)
}
