// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package road

import (
	"github.com/SoftbearStudios/relief/terrain"
)

// Planner routes roads over one grid, rebuilding its graph only when the
// grid has been modified since the last build.
type Planner struct {
	grid    *terrain.Grid
	graph   Graph
	version uint64
	builds  int
}

func NewPlanner(g *terrain.Grid) *Planner {
	return &Planner{grid: g}
}

// Graph returns the road graph of the grid in its current state.
func (p *Planner) Graph() Graph {
	if p.graph == nil || p.version != p.grid.Version() {
		p.graph = Build(p.grid)
		p.version = p.grid.Version()
		p.builds++
	}
	return p.graph
}

// Builds is how many times the graph has been built.
func (p *Planner) Builds() int {
	return p.builds
}

// Route returns the cheapest path (target to source) and its cost.
func (p *Planner) Route(from, to Cell) (Path, float64, error) {
	return route(p.grid, p.Graph(), from, to)
}

// Carve is Carve using the cached graph. Carving modifies the grid, so the
// next call rebuilds the graph.
func (p *Planner) Carve(from, to Cell, options Options) (Path, error) {
	return carve(p.grid, p.Graph(), from, to, options)
}
