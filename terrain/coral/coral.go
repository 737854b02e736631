// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package coral grows reefs on a heightfield by diffusion limited aggregation.
//
// Walkers are released at random cells and wander until they come within two
// cell sizes of the aggregate, where they stick with a probability equal to
// the normalized height below them. The grown aggregate is then stamped onto
// the grid as a bump of exp(-(d/cellSize)^10) per cell.
package coral

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/relief/terrain"
	"math"
	"math/rand"
)

const (
	// walkersPerParticle bounds the walkers released for each wanted cell.
	walkersPerParticle = 1000
	falloffExponent    = 10
)

var (
	ErrInvalidCellSize = errors.New("coral: cell size must be positive")
	ErrNegativeHeight  = errors.New("coral: height must not be negative")
	ErrStarved         = errors.New("coral: walkers ran out before the aggregate was complete")
)

type Params struct {
	Seed      int64
	Particles int     // Cells in the aggregate, including the seed cell.
	CellSize  int     // Walker step and radius of a stamped cell, in cells.
	Height    float64 // Added under the center of every cell.

	// ShallowLimit is the highest normalized height walkers stick to.
	ShallowLimit float64
}

func DefaultParams() Params {
	return Params{
		Seed:         1,
		Particles:    50,
		CellSize:     1,
		Height:       5,
		ShallowLimit: 1,
	}
}

type Cell struct {
	X, Y int
}

func (cell Cell) String() string {
	return fmt.Sprintf("(%d, %d)", cell.X, cell.Y)
}

// Aggregate is a coral grown from the center of a grid. Cells are in the
// order they stuck; the first is the seed.
type Aggregate struct {
	Cells    []Cell
	CellSize int

	nx, ny int
	near   []bool // Cells where a walker touches the aggregate.
}

func newAggregate(nx, ny, cellSize int) *Aggregate {
	return &Aggregate{CellSize: cellSize, nx: nx, ny: ny, near: make([]bool, nx*ny)}
}

func (agg *Aggregate) add(cell Cell) {
	agg.Cells = append(agg.Cells, cell)

	reach := 2 * agg.CellSize
	for y := max(0, cell.Y-reach); y <= min(agg.ny-1, cell.Y+reach); y++ {
		for x := max(0, cell.X-reach); x <= min(agg.nx-1, cell.X+reach); x++ {
			dx, dy := x-cell.X, y-cell.Y
			if dx*dx+dy*dy <= reach*reach {
				agg.near[y*agg.nx+x] = true
			}
		}
	}
}

// Touches reports whether a walker at cell would be close enough to stick.
func (agg *Aggregate) Touches(cell Cell) bool {
	if cell.X < 0 || cell.Y < 0 || cell.X >= agg.nx || cell.Y >= agg.ny {
		return false
	}
	return agg.near[cell.Y*agg.nx+cell.X]
}

// Grow runs the aggregation over g without modifying it. The result only
// depends on g and params. If the walker budget runs out, the partial
// aggregate is returned with ErrStarved.
func Grow(g *terrain.Grid, params Params) (*Aggregate, error) {
	if params.CellSize <= 0 {
		return nil, ErrInvalidCellSize
	}
	limit := params.ShallowLimit
	if limit <= 0 {
		limit = 1
	}

	nx, ny := g.NX(), g.NY()
	random := rand.New(rand.NewSource(params.Seed))
	agg := newAggregate(nx, ny, params.CellSize)
	agg.add(Cell{X: nx / 2, Y: ny / 2})

	// Walkers that drift this long are abandoned.
	maxAge := nx
	walkers := params.Particles * walkersPerParticle

	for len(agg.Cells) < params.Particles {
		if walkers == 0 {
			return agg, fmt.Errorf("%w: %d of %d cells", ErrStarved, len(agg.Cells), params.Particles)
		}
		walkers--

		walker := Cell{X: random.Intn(nx), Y: random.Intn(ny)}
		for age := 0; age < maxAge; age++ {
			if agg.Touches(walker) {
				h := g.Normalized(g.Index(walker.X, walker.Y))
				if h <= limit && random.Float64() <= h {
					agg.add(walker)
					break
				}
			}
			walker = step(random, walker, params.CellSize, nx, ny)
		}
	}
	return agg, nil
}

// step moves up to size cells along each axis, staying on the grid.
func step(random *rand.Rand, cell Cell, size, nx, ny int) Cell {
	cell.X = clampIndex(cell.X+random.Intn(2*size+1)-size, nx)
	cell.Y = clampIndex(cell.Y+random.Intn(2*size+1)-size, ny)
	return cell
}

func clampIndex(i, n int) int {
	return max(0, min(i, n-1))
}

// Stamp raises g under every cell of agg by height times the summed falloff,
// capped at 1. Heights never go down, and never rise past the soft max.
func Stamp(g *terrain.Grid, agg *Aggregate, height float64) error {
	if height < 0 {
		return ErrNegativeHeight
	}
	if agg.CellSize <= 0 {
		return ErrInvalidCellSize
	}

	nx, ny := g.NX(), g.NY()
	coverage := make([]float64, nx*ny)
	size := float64(agg.CellSize)
	// exp(-(d/size)^10) underflows to 0 long before two cell sizes.
	reach := 2 * agg.CellSize

	for _, cell := range agg.Cells {
		for y := max(0, cell.Y-reach); y <= min(ny-1, cell.Y+reach); y++ {
			for x := max(0, cell.X-reach); x <= min(nx-1, cell.X+reach); x++ {
				d := math.Hypot(float64(x-cell.X), float64(y-cell.Y))
				coverage[g.Index(x, y)] += Falloff(d, size)
			}
		}
	}

	heights := g.Heights()
	for i, c := range coverage {
		if c == 0 {
			continue
		}
		h := heights[i]
		heights[i] = math.Max(h, math.Min(h+height*math.Min(c, 1), g.MaxHeight()))
	}
	return g.SetHeights(heights)
}

// Falloff is the coverage of a coral cell of the given size at distance d.
func Falloff(d, size float64) float64 {
	return math.Exp(-math.Pow(d/size, falloffExponent))
}

// Run grows a coral on g and stamps it. A starved aggregate is still stamped.
func Run(g *terrain.Grid, params Params) (*Aggregate, error) {
	if params.Height < 0 {
		return nil, ErrNegativeHeight
	}
	agg, err := Grow(g, params)
	if agg == nil {
		return nil, err
	}
	if stampErr := Stamp(g, agg, params.Height); stampErr != nil {
		return agg, stampErr
	}
	return agg, err
}
