// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package road finds cheap routes across terrain and carves roads along them.
package road

import (
	"github.com/SoftbearStudios/relief/terrain"
	"math"
)

// Edge is a directed arc to Target costing Weight.
type Edge struct {
	Target int
	Weight float64
}

// Graph is an adjacency list indexed by terrain.Grid.Index.
type Graph [][]Edge

// offsets of the neighbors of a cell, 1 being the cell and 2 its neighbors:
//
//	. 2 . 2 .
//	2 2 2 2 2
//	. 2 1 2 .
//	2 2 2 2 2
//	. 2 . 2 .
//
// The knight moves on the outer ring let roads bend less sharply than the
// 8 adjacent cells alone allow.
var offsets = [...][2]int{
	{-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1},
	{-2, -1}, {-1, -2}, {1, -2}, {2, -1}, {-2, 1}, {-1, 2}, {1, 2}, {2, 1},
}

// Build creates the road graph of g. Arcs never leave the grid.
func Build(g *terrain.Grid) Graph {
	nx, ny := g.NX(), g.NY()
	graph := make(Graph, nx*ny)

	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			edges := make([]Edge, 0, len(offsets))
			for _, o := range offsets {
				k, l := x+o[0], y+o[1]
				if !g.Contains(k, l) {
					continue
				}
				edges = append(edges, Edge{Target: g.Index(k, l), Weight: Cost(g, x, y, k, l)})
			}
			graph[g.Index(x, y)] = edges
		}
	}

	return graph
}

// Cost of moving from cell i, j to cell k, l: 10% planar distance and 90%
// absolute slope, so routes avoid climbing before they avoid detours.
func Cost(g *terrain.Grid, i, j, k, l int) float64 {
	d := g.Position2D(i, j).Distance(g.Position2D(k, l))
	if d == 0 {
		return 0
	}
	s := math.Abs((g.Height(i, j) - g.Height(k, l)) / d)
	return 0.1*d + 0.9*s
}

// Edges is the number of arcs.
func (graph Graph) Edges() int {
	n := 0
	for _, edges := range graph {
		n += len(edges)
	}
	return n
}
