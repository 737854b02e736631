// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/relief/world"
	"math"
)

const (
	// DefaultMinHeight is the soft lower bound of a new grid.
	DefaultMinHeight = 0
	// DefaultMaxHeight is the soft upper bound of a new grid.
	DefaultMaxHeight = 100
)

var (
	ErrInvalidSize   = errors.New("terrain: grid size must be positive")
	ErrHeightsLength = errors.New("terrain: heights length does not match nx*ny")
	ErrInvalidBounds = errors.New("terrain: min height must not exceed max height")
	ErrNotGrayscale  = errors.New("terrain: image is not grayscale")
	ErrEmptyImage    = errors.New("terrain: image is empty")
)

// BoundsError reports access to a cell outside the grid.
type BoundsError struct {
	X, Y   int
	NX, NY int
}

func (err *BoundsError) Error() string {
	return fmt.Sprintf("terrain: cell (%d, %d) outside %dx%d grid", err.X, err.Y, err.NX, err.NY)
}

// Grid is a heightfield of nx*ny samples spread over a bounding box.
// Samples are stored row major, see Index.
// A Grid is not safe for concurrent mutation.
type Grid struct {
	bounds    world.Box2
	nx, ny    int
	heights   []float64
	minHeight float64
	maxHeight float64
	version   uint64
	valid     bool
}

// New creates a flat grid at height 0.
func New(bounds world.Box2, nx, ny int) (*Grid, error) {
	if nx <= 0 || ny <= 0 || nx > math.MaxInt/ny {
		return nil, ErrInvalidSize
	}
	return &Grid{
		bounds:    bounds,
		nx:        nx,
		ny:        ny,
		heights:   make([]float64, nx*ny),
		minHeight: DefaultMinHeight,
		maxHeight: DefaultMaxHeight,
		valid:     true,
	}, nil
}

// FromHeights creates a grid from row major samples. The slice is copied.
func FromHeights(bounds world.Box2, heights []float64, nx, ny int) (*Grid, error) {
	g, err := New(bounds, nx, ny)
	if err != nil {
		return nil, err
	}
	if len(heights) != nx*ny {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrHeightsLength, len(heights), nx*ny)
	}
	copy(g.heights, heights)
	return g, nil
}

func (g *Grid) NX() int {
	return g.nx
}

func (g *Grid) NY() int {
	return g.ny
}

// Len is the number of cells.
func (g *Grid) Len() int {
	return len(g.heights)
}

func (g *Grid) Bounds() world.Box2 {
	return g.bounds
}

func (g *Grid) SetBounds(bounds world.Box2) {
	g.bounds = bounds
	g.version++
}

func (g *Grid) MinHeight() float64 {
	return g.minHeight
}

func (g *Grid) MaxHeight() float64 {
	return g.maxHeight
}

// SetHeightRange changes the soft bounds used by normalization and clamping.
// Samples are left untouched.
func (g *Grid) SetHeightRange(min, max float64) error {
	if min > max {
		return ErrInvalidBounds
	}
	g.minHeight = min
	g.maxHeight = max
	g.version++
	return nil
}

// Valid is false for grids whose source was rejected (see FromImage).
func (g *Grid) Valid() bool {
	return g != nil && g.valid
}

// Version increases on every mutation, so derived data can be cached against it.
func (g *Grid) Version() uint64 {
	return g.version
}

// Index of the sample at x, y. Coordinates are not checked.
func (g *Grid) Index(x, y int) int {
	return y*g.nx + x
}

// ReverseIndex recovers x, y from an Index.
func (g *Grid) ReverseIndex(i int) (x, y int) {
	return i % g.nx, i / g.nx
}

// Contains x, y is a cell of the grid.
func (g *Grid) Contains(x, y int) bool {
	return x >= 0 && x < g.nx && y >= 0 && y < g.ny
}

// At is the checked version of Height.
func (g *Grid) At(x, y int) (float64, error) {
	if !g.Contains(x, y) {
		return 0, g.boundsError(x, y)
	}
	return g.heights[g.Index(x, y)], nil
}

// Height of the cell at x, y. It panics with a *BoundsError outside the grid.
func (g *Grid) Height(x, y int) float64 {
	if !g.Contains(x, y) {
		panic(g.boundsError(x, y))
	}
	return g.heights[g.Index(x, y)]
}

// SetHeight panics with a *BoundsError outside the grid.
func (g *Grid) SetHeight(x, y int, h float64) {
	if !g.Contains(x, y) {
		panic(g.boundsError(x, y))
	}
	g.heights[g.Index(x, y)] = h
	g.version++
}

// HeightAt reads by flat index.
func (g *Grid) HeightAt(i int) float64 {
	return g.heights[i]
}

// SetHeightAt writes by flat index.
func (g *Grid) SetHeightAt(i int, h float64) {
	g.heights[i] = h
	g.version++
}

// SetHeights overwrites every sample from a row major slice, which is copied.
func (g *Grid) SetHeights(heights []float64) error {
	if len(heights) != len(g.heights) {
		return fmt.Errorf("%w: got %d, want %d", ErrHeightsLength, len(heights), len(g.heights))
	}
	copy(g.heights, heights)
	g.version++
	return nil
}

// Heights returns a copy of the samples.
func (g *Grid) Heights() []float64 {
	heights := make([]float64, len(g.heights))
	copy(heights, g.heights)
	return heights
}

func (g *Grid) Clone() *Grid {
	clone := *g
	clone.heights = g.Heights()
	return &clone
}

func (g *Grid) boundsError(x, y int) *BoundsError {
	return &BoundsError{X: x, Y: y, NX: g.nx, NY: g.ny}
}
