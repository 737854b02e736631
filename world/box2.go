// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

// Box2 is an axis aligned box from corner A (min) to corner B (max).
type Box2 struct {
	A Vec2 `json:"a"`
	B Vec2 `json:"b"`
}

func Box2From(a, b Vec2) Box2 {
	return Box2{A: a, B: b}
}

func (box Box2) Width() float64 {
	return box.B.X - box.A.X
}

func (box Box2) Height() float64 {
	return box.B.Y - box.A.Y
}

// Diagonal is the vector from A to B.
func (box Box2) Diagonal() Vec2 {
	return box.B.Sub(box.A)
}

func (box Box2) Center() Vec2 {
	return box.A.Lerp(box.B, 0.5)
}

// Inside p is strictly inside box, points on the border are outside.
func (box Box2) Inside(p Vec2) bool {
	return p.X > box.A.X && p.X < box.B.X && p.Y > box.A.Y && p.Y < box.B.Y
}

// Intersects box overlaps the circle (border contact counts).
func (box Box2) Intersects(c Circle2) bool {
	nearest := Vec2{
		X: clamp(c.Center.X, box.A.X, box.B.X),
		Y: clamp(c.Center.Y, box.A.Y, box.B.Y),
	}
	return nearest.DistanceSquared(c.Center) <= c.Radius*c.Radius
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
