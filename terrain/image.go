// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"github.com/SoftbearStudios/relief/world"
	"image"
)

// FromImage builds a grid with one cell per pixel, mapping the red channel
// linearly from [0, 255] to [minHeight, maxHeight].
//
// A non grayscale image is not fatal: the grid is still returned, flat and
// marked invalid, together with ErrNotGrayscale. Callers check Valid.
func FromImage(img image.Image, bounds world.Box2, minHeight, maxHeight float64) (*Grid, error) {
	rect := img.Bounds()
	nx, ny := rect.Dx(), rect.Dy()
	if nx <= 0 || ny <= 0 {
		return &Grid{bounds: bounds, minHeight: minHeight, maxHeight: maxHeight}, ErrEmptyImage
	}
	if minHeight > maxHeight {
		return nil, ErrInvalidBounds
	}

	g, err := New(bounds, nx, ny)
	if err != nil {
		return nil, err
	}
	g.minHeight = minHeight
	g.maxHeight = maxHeight

	if !IsGrayscale(img) {
		g.valid = false
		return g, ErrNotGrayscale
	}

	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			r, _, _, _ := img.At(rect.Min.X+x, rect.Min.Y+y).RGBA()
			red := float64(r >> 8)
			g.heights[g.Index(x, y)] = Lerp(minHeight, maxHeight, Normalize01(red, 0, 255))
		}
	}

	return g, nil
}

// IsGrayscale every pixel has equal red, green and blue channels.
func IsGrayscale(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	}

	rect := img.Bounds()
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r != g || g != b {
				return false
			}
		}
	}
	return true
}
