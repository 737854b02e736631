// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"fmt"
	"github.com/SoftbearStudios/relief/world"
	"github.com/chewxy/math32"
	"image"
	"image/color"
)

// Color is linear RGB in [0, 1].
type Color [3]float32

// Stop colors a quantized height; heights between stops are interpolated.
type Stop struct {
	Level byte
	Color Color
}

// Ramp is a list of stops sorted by level.
type Ramp []Stop

// DefaultRamp goes from deep ocean through sand, grass and rock to snow.
var DefaultRamp = Ramp{
	{0, RGB(0, 50, 115)},
	{OceanLevel, RGB(0, 75, 130)},
	{OceanLevel + 1, RGB(194, 178, 128)},
	{SandLevel, RGB(194, 178, 128)},
	{GrassLevel, RGB(90, 180, 30)},
	{RockLevel, RGB(105, 110, 115)},
	{SnowLevel, Gray(220)},
}

// At is the color of quantized height h.
func (ramp Ramp) At(h byte) Color {
	if len(ramp) == 0 {
		return Color{}
	}
	if h <= ramp[0].Level {
		return ramp[0].Color
	}
	for k := 1; k < len(ramp); k++ {
		a, b := ramp[k-1], ramp[k]
		if h <= b.Level {
			t := float32(h-a.Level) / float32(b.Level-a.Level)
			return a.Color.Lerp(b.Color, t)
		}
	}
	return ramp[len(ramp)-1].Color
}

// Render draws a colored preview with DefaultRamp, one pixel per cell, lit by
// DefaultSun.
func (g *Grid) Render() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, g.nx, g.ny))
	quantized := g.Bytes()
	for y := 0; y < g.ny; y++ {
		for x := 0; x < g.nx; x++ {
			c := DefaultRamp.At(quantized[g.Index(x, y)])
			img.SetRGBA(x, y, c.Scale(DefaultSun.Shade(g.Normal(x, y))).Pixel())
		}
	}
	return img
}

// Sun lights shaded renders. Angles are in radians; Elevation must be
// positive.
type Sun struct {
	Azimuth   float32
	Elevation float32

	// Ambient is the brightness of surfaces facing away from the sun.
	Ambient float32
}

// DefaultSun shines from an azimuth of 135 degrees, 45 degrees up.
var DefaultSun = Sun{Azimuth: math32.Pi * 3 / 4, Elevation: math32.Pi / 4, Ambient: 0.35}

// Shade is the brightness of a surface with the given unit normal relative to
// flat ground, which is always 1.
func (sun Sun) Shade(normal world.Vec3) float32 {
	sinAzimuth, cosAzimuth := math32.Sincos(sun.Azimuth)
	sinElevation, cosElevation := math32.Sincos(sun.Elevation)
	if sinElevation <= 0 {
		return 1
	}
	if normal.X == 0 && normal.Y == 0 {
		return 1
	}

	dot := float32(normal.X)*cosAzimuth*cosElevation + float32(normal.Y)*sinAzimuth*cosElevation + float32(normal.Z)*sinElevation
	lambert := math32.Max(0, dot) / sinElevation
	return sun.Ambient + (1-sun.Ambient)*lambert
}

// Render colors quantized heights (see Grid.Bytes) of a width x height map.
func (ramp Ramp) Render(quantized []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	var lut [256]color.RGBA
	for h := range lut {
		lut[h] = ramp.At(byte(h)).Pixel()
	}

	for y := 0; y < height; y++ {
		row := quantized[y*width : (y+1)*width]
		for x, h := range row {
			img.SetRGBA(x, y, lut[h])
		}
	}
	return img
}

func Gray(v byte) Color {
	return RGB(v, v, v)
}

func RGB(r, g, b byte) Color {
	const factor = 1.0 / 255
	return Color{float32(r) * factor, float32(g) * factor, float32(b) * factor}
}

func (c Color) String() string {
	return fmt.Sprintf("rgb(%.3f, %.3f, %.3f)", c[0], c[1], c[2])
}

// Lerp moves t of the way to other, t is clamped to [0, 1].
func (c Color) Lerp(other Color, t float32) Color {
	t = clampUnit(t)
	for i := range c {
		c[i] += (other[i] - c[i]) * t
	}
	return c
}

// Scale multiplies the brightness. Channels may leave [0, 1] until Pixel.
func (c Color) Scale(f float32) Color {
	for i := range c {
		c[i] *= f
	}
	return c
}


func (c Color) Pixel() color.RGBA {
	return color.RGBA{R: unitToByte(c[0]), G: unitToByte(c[1]), B: unitToByte(c[2]), A: 255}
}

func unitToByte(f float32) byte {
	return byte(clampUnit(f)*255 + 0.5)
}

func clampUnit(f float32) float32 {
	return math32.Max(0, math32.Min(f, 1))
}
