// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package road

import (
	"container/heap"
	"math"
)

// NoPrevious marks a node without predecessor: the source, or unreachable nodes.
const NoPrevious = -1

// Tree is the single source shortest path tree of a graph.
type Tree struct {
	Source   int
	Distance []float64 // +Inf if unreachable.
	Previous []int     // NoPrevious for the source and unreachable nodes.
}

// ShortestPaths runs Dijkstra from source over the whole graph. It does not
// stop at any target, so one Tree answers PathTo for every node.
func ShortestPaths(graph Graph, source int) *Tree {
	n := len(graph)
	tree := &Tree{
		Source:   source,
		Distance: make([]float64, n),
		Previous: make([]int, n),
	}
	for i := range tree.Distance {
		tree.Distance[i] = math.Inf(1)
		tree.Previous[i] = NoPrevious
	}
	if source < 0 || source >= n {
		return tree
	}
	tree.Distance[source] = 0

	queue := &nodeQueue{{distance: 0, node: source}}
	for queue.Len() > 0 {
		item := heap.Pop(queue).(queued)
		u := item.node
		if item.distance > tree.Distance[u] {
			// Superseded by a shorter distance pushed later.
			continue
		}

		for _, edge := range graph[u] {
			v := edge.Target
			through := item.distance + edge.Weight
			if through < tree.Distance[v] {
				tree.Distance[v] = through
				tree.Previous[v] = u
				heap.Push(queue, queued{distance: through, node: v})
			}
		}
	}

	return tree
}

// Reachable target has a finite distance from the source.
func (tree *Tree) Reachable(target int) bool {
	return target >= 0 && target < len(tree.Distance) && !math.IsInf(tree.Distance[target], 1)
}

// PathTo follows predecessors from target, so the path runs target to source.
// For an unreachable target the path ends without reaching the source; check
// Reachable first.
func (tree *Tree) PathTo(target int) Path {
	if target < 0 || target >= len(tree.Previous) {
		return nil
	}
	var path Path
	for v := target; v != NoPrevious; v = tree.Previous[v] {
		path = append(path, v)
	}
	return path
}

// Path is a sequence of node indices.
type Path []int

type queued struct {
	distance float64
	node     int
}

// nodeQueue is a min heap ordered by distance, then node.
type nodeQueue []queued

func (q nodeQueue) Len() int {
	return len(q)
}

func (q nodeQueue) Less(i, j int) bool {
	if q[i].distance != q[j].distance {
		return q[i].distance < q[j].distance
	}
	return q[i].node < q[j].node
}

func (q nodeQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *nodeQueue) Push(x interface{}) {
	*q = append(*q, x.(queued))
}

func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
