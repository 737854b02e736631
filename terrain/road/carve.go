// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package road

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/relief/terrain"
	"github.com/SoftbearStudios/relief/terrain/sculpt"
	"github.com/SoftbearStudios/relief/world"
)

const DefaultTransition = 10

var (
	ErrUnreachable = errors.New("road: target is unreachable from source")
	ErrUnknownMode = errors.New("road: unknown carve mode")
)

type Mode string

const (
	// ModeFlatten flattens a crater around every path cell.
	ModeFlatten Mode = "flatten"
	// ModeCorridor blends each cell near the path once.
	ModeCorridor Mode = "corridor"
)

// Cell is a grid coordinate.
type Cell struct {
	X, Y int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Options control how a road is carved.
type Options struct {
	Width      float64 // Radius of the level strip.
	Transition float64 // Width of the blend on either side of the strip.
	Mode       Mode
}

func (o Options) withDefaults() Options {
	if o.Transition == 0 {
		o.Transition = DefaultTransition
	}
	if o.Mode == "" {
		o.Mode = ModeFlatten
	}
	return o
}

// Carve routes the cheapest road from one cell to another and levels the
// terrain along it. The returned path runs from the target back to the source.
// On error the grid is unchanged.
func Carve(g *terrain.Grid, from, to Cell, options Options) (Path, error) {
	return carve(g, Build(g), from, to, options)
}

func carve(g *terrain.Grid, graph Graph, from, to Cell, options Options) (Path, error) {
	path, _, err := route(g, graph, from, to)
	if err != nil {
		return nil, err
	}
	if err = CarvePath(g, path, options); err != nil {
		return nil, err
	}
	return path, nil
}

// route returns the path target to source and its total cost.
func route(g *terrain.Grid, graph Graph, from, to Cell) (Path, float64, error) {
	for _, c := range [...]Cell{from, to} {
		if !g.Contains(c.X, c.Y) {
			return nil, 0, &terrain.BoundsError{X: c.X, Y: c.Y, NX: g.NX(), NY: g.NY()}
		}
	}

	source, target := g.Index(from.X, from.Y), g.Index(to.X, to.Y)
	tree := ShortestPaths(graph, source)
	if !tree.Reachable(target) {
		return nil, 0, fmt.Errorf("%w: %s to %s", ErrUnreachable, from, to)
	}
	return tree.PathTo(target), tree.Distance[target], nil
}

// CarvePath levels the terrain along an already routed path.
func CarvePath(g *terrain.Grid, path Path, options Options) error {
	options = options.withDefaults()

	switch options.Mode {
	case ModeFlatten:
		// Targets are read before any cell is modified, so later cells of the
		// path are not leveled to heights already changed by earlier ones.
		heights := make([]float64, len(path))
		for k, i := range path {
			heights[k] = g.HeightAt(i)
		}

		for k, i := range path {
			x, y := g.ReverseIndex(i)
			center := world.Vec2{X: float64(x), Y: float64(y)}
			if err := sculpt.Flatten(g, center, options.Width, heights[k], options.Transition); err != nil {
				return err
			}
		}
		return nil
	case ModeCorridor:
		return CarveCorridor(g, path, options.Width+options.Transition)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, options.Mode)
	}
}
