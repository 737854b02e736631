// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"fmt"
	"math"
)

// Vec2 is a point or direction on the terrain plane.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (vec Vec2) Mul(factor float64) Vec2 {
	vec.X *= factor
	vec.Y *= factor
	return vec
}

func (vec Vec2) Div(divisor float64) Vec2 {
	vec.X /= divisor
	vec.Y /= divisor
	return vec
}

func (vec Vec2) Add(otherVec Vec2) Vec2 {
	vec.X += otherVec.X
	vec.Y += otherVec.Y
	return vec
}

func (vec Vec2) Sub(otherVec Vec2) Vec2 {
	vec.X -= otherVec.X
	vec.Y -= otherVec.Y
	return vec
}

func (vec Vec2) Dot(otherVec Vec2) float64 {
	return vec.X*otherVec.X + vec.Y*otherVec.Y
}

func (vec Vec2) Distance(otherVec Vec2) float64 {
	return vec.Sub(otherVec).Length()
}

func (vec Vec2) DistanceSquared(otherVec Vec2) float64 {
	x := vec.X - otherVec.X
	y := vec.Y - otherVec.Y
	return x*x + y*y
}

func (vec Vec2) Length() float64 {
	return math.Hypot(vec.X, vec.Y)
}

func (vec Vec2) LengthSquared() float64 {
	return vec.X*vec.X + vec.Y*vec.Y
}

// Lerp is unclamped, t outside [0, 1] extrapolates.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func (vec Vec2) Lerp(otherVec Vec2, factor float64) Vec2 {
	vec.X = Lerp(vec.X, otherVec.X, factor)
	vec.Y = Lerp(vec.Y, otherVec.Y, factor)
	return vec
}

func (vec Vec2) Floor() Vec2 {
	vec.X = math.Floor(vec.X)
	vec.Y = math.Floor(vec.Y)
	return vec
}

// Norm returns the unit vector. The zero vector stays zero.
func (vec Vec2) Norm() Vec2 {
	length := vec.Length()
	if length == 0 {
		return vec
	}
	return vec.Div(length)
}

func (vec Vec2) String() string {
	return fmt.Sprintf("%f %f", vec.X, vec.Y)
}
