// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package compressed packs terrain previews for the catalog.
package compressed

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/relief/terrain"
	"github.com/SoftbearStudios/relief/world"
	"image"
	"io"
)

var ErrCorrupt = errors.New("compressed: preview does not match its size")

// Data is a grid quantized to 4 bits per cell.
type Data struct {
	Runs      []byte  `json:"runs"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	MinHeight float64 `json:"minHeight"`
	MaxHeight float64 `json:"maxHeight"`
}

// Encode normalizes g to its height range and packs it.
func Encode(g *terrain.Grid) *Data {
	var buffer Buffer
	buffer.Grow(g.Len())
	_, _ = buffer.Write(g.Bytes())

	return &Data{
		Runs:      buffer.Bytes(),
		Width:     g.NX(),
		Height:    g.NY(),
		MinHeight: g.MinHeight(),
		MaxHeight: g.MaxHeight(),
	}
}

// Decode unpacks the quantized bytes, row by row.
func Decode(data *Data) ([]byte, error) {
	var buffer Buffer
	buffer.Reset(data.Runs)

	n := data.Width * data.Height
	if buffer.Len() != n {
		return nil, fmt.Errorf("%w: %d cells, %d expected", ErrCorrupt, buffer.Len(), n)
	}

	out := make([]byte, n)
	if _, err := io.ReadFull(&buffer, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Grid restores an approximate height grid over bounds.
func (data *Data) Grid(bounds world.Box2) (*terrain.Grid, error) {
	quantized, err := Decode(data)
	if err != nil {
		return nil, err
	}

	heights := make([]float64, len(quantized))
	for i, b := range quantized {
		heights[i] = terrain.Lerp(data.MinHeight, data.MaxHeight, float64(b)/255)
	}

	g, err := terrain.FromHeights(bounds, heights, data.Width, data.Height)
	if err != nil {
		return nil, err
	}
	if err = g.SetHeightRange(data.MinHeight, data.MaxHeight); err != nil {
		return nil, err
	}
	return g, nil
}

// Resample decodes and bi-linearly scales the preview to width x height.
func (data *Data) Resample(width, height int) ([]byte, error) {
	quantized, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 || data.Width == 0 || data.Height == 0 {
		return nil, nil
	}

	at := func(x, y int) byte {
		x = minInt(x, data.Width-1)
		y = minInt(y, data.Height-1)
		return quantized[y*data.Width+x]
	}

	out := make([]byte, width*height)
	for y := 0; y < height; y++ {
		fy := scale(y, height, data.Height)
		sy := int(fy)
		for x := 0; x < width; x++ {
			fx := scale(x, width, data.Width)
			sx := int(fx)
			out[y*width+x] = blerp(at(sx, sy), at(sx+1, sy), at(sx, sy+1), at(sx+1, sy+1), fx-float64(sx), fy-float64(sy))
		}
	}
	return out, nil
}

// Render colors the preview through ramp at width x height, or at its own size
// if either is zero.
func (data *Data) Render(ramp terrain.Ramp, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		quantized, err := Decode(data)
		if err != nil {
			return nil, err
		}
		return ramp.Render(quantized, data.Width, data.Height), nil
	}

	quantized, err := data.Resample(width, height)
	if err != nil {
		return nil, err
	}
	return ramp.Render(quantized, width, height), nil
}

// scale maps i of [0, to) onto [0, from - 1].
func scale(i, to, from int) float64 {
	if to <= 1 {
		return 0
	}
	return float64(i) * float64(from-1) / float64(to-1)
}

// blerp interpolates 4 corner bytes given the x and y offsets.
func blerp(c00, c10, c01, c11 byte, tx, ty float64) byte {
	return byte(terrain.Lerp(
		terrain.Lerp(float64(c00), float64(c10), tx),
		terrain.Lerp(float64(c01), float64(c11), tx),
		ty,
	) + 0.5)
}

func minInt(x, y int) int {
	if x < y {
		return x
	}
	return y
}
