// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"fmt"
	"math"
)

// Vec3 is a terrain position (x, y, height) or a surface normal.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (vec Vec3) Mul(factor float64) Vec3 {
	vec.X *= factor
	vec.Y *= factor
	vec.Z *= factor
	return vec
}

func (vec Vec3) Div(divisor float64) Vec3 {
	vec.X /= divisor
	vec.Y /= divisor
	vec.Z /= divisor
	return vec
}

func (vec Vec3) Add(otherVec Vec3) Vec3 {
	vec.X += otherVec.X
	vec.Y += otherVec.Y
	vec.Z += otherVec.Z
	return vec
}

func (vec Vec3) Sub(otherVec Vec3) Vec3 {
	vec.X -= otherVec.X
	vec.Y -= otherVec.Y
	vec.Z -= otherVec.Z
	return vec
}

func (vec Vec3) Dot(otherVec Vec3) float64 {
	return vec.X*otherVec.X + vec.Y*otherVec.Y + vec.Z*otherVec.Z
}

func (vec Vec3) Distance(otherVec Vec3) float64 {
	return vec.Sub(otherVec).Length()
}

func (vec Vec3) Length() float64 {
	return math.Sqrt(vec.Dot(vec))
}

func (vec Vec3) Norm() Vec3 {
	length := vec.Length()
	if length == 0 {
		return vec
	}
	return vec.Div(length)
}

// XY drops the height.
func (vec Vec3) XY() Vec2 {
	return Vec2{X: vec.X, Y: vec.Y}
}

// String formats the components the way OBJ "v" and "vn" lines expect.
func (vec Vec3) String() string {
	return fmt.Sprintf("%f %f %f", vec.X, vec.Y, vec.Z)
}
