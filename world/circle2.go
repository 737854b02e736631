// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"fmt"
	"math"
)

type Circle2 struct {
	Center Vec2    `json:"center"`
	Radius float64 `json:"radius"`
}

func Circle2From(center Vec2, radius float64) Circle2 {
	return Circle2{Center: center, Radius: radius}
}

// Inside p is strictly closer to the center than the radius.
func (c Circle2) Inside(p Vec2) bool {
	return c.Center.Distance(p) < c.Radius
}

// Intersects the outlines of c and other cross at two points.
func (c Circle2) Intersects(other Circle2) bool {
	d := c.Center.Distance(other.Center)
	return d > math.Abs(c.Radius-other.Radius) && d < c.Radius+other.Radius
}

func (c Circle2) Translate(delta Vec2) Circle2 {
	c.Center = c.Center.Add(delta)
	return c
}

// Bounds is the bounding square of the circle.
func (c Circle2) Bounds() Box2 {
	r := Vec2{X: c.Radius, Y: c.Radius}
	return Box2{A: c.Center.Sub(r), B: c.Center.Add(r)}
}

func (c Circle2) String() string {
	return fmt.Sprintf("center: %s, radius: %f", c.Center, c.Radius)
}
