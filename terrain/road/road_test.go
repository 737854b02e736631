// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package road

import (
	"errors"
	"github.com/SoftbearStudios/relief/terrain"
	"github.com/SoftbearStudios/relief/terrain/noise"
	"github.com/SoftbearStudios/relief/world"
	"math"
	"testing"
)

func flat(t testing.TB, nx, ny int, h float64) *terrain.Grid {
	t.Helper()
	g, err := terrain.New(world.Box2From(world.Vec2{}, world.Vec2{X: float64(nx - 1), Y: float64(ny - 1)}), nx, ny)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < g.Len(); i++ {
		g.SetHeightAt(i, h)
	}
	return g
}

func hilly(t testing.TB) *terrain.Grid {
	t.Helper()
	params := noise.DefaultParams()
	params.NX, params.NY = 32, 24
	params.Seed = 7
	g, err := noise.Generate(params)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestBuild_Neighbors(t *testing.T) {
	g := flat(t, 5, 5, 0)
	graph := Build(g)

	tests := []struct {
		x, y  int
		count int
	}{
		{2, 2, 16},
		{0, 0, 5},
		{4, 4, 5},
		{2, 0, 9},
		{1, 1, 12},
	}

	for _, test := range tests {
		if n := len(graph[g.Index(test.x, test.y)]); n != test.count {
			t.Errorf("neighbors of (%d, %d) expected %d got %d", test.x, test.y, test.count, n)
		}
	}

	// 144 arcs between adjacent cells plus 12 per knight offset.
	if n := graph.Edges(); n != 144+8*12 {
		t.Error("Edges expected", 144+8*12, "got", n)
	}
	if n := Build(flat(t, 1, 1, 0)).Edges(); n != 0 {
		t.Error("Edges of a single cell expected 0 got", n)
	}

	// Every offset is reversible, so arcs come in pairs.
	for u, edges := range graph {
		for _, e := range edges {
			found := false
			for _, back := range graph[e.Target] {
				if back.Target == u {
					found = true
				}
			}
			if !found {
				t.Error("no arc back from", e.Target, "to", u)
			}
		}
	}
}

func TestCost(t *testing.T) {
	g := flat(t, 5, 5, 0)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			g.SetHeight(x, y, float64(3*x))
		}
	}

	if c := Cost(g, 0, 0, 1, 0); math.Abs(c-2.8) > 1e-9 {
		t.Error("cost expected", 2.8, "got", c)
	}
	if c := Cost(g, 0, 0, 0, 1); math.Abs(c-0.1) > 1e-9 {
		t.Error("cost expected", 0.1, "got", c)
	}

	d := math.Sqrt(5)
	expected := 0.1*d + 0.9*3/d
	if c := Cost(g, 0, 0, 1, 2); math.Abs(c-expected) > 1e-9 {
		t.Error("cost expected", expected, "got", c)
	}
	if a, b := Cost(g, 1, 2, 0, 0), Cost(g, 0, 0, 1, 2); a != b {
		t.Error("cost expected symmetric", a, "got", b)
	}
}

func TestShortestPaths_Uniform(t *testing.T) {
	g := flat(t, 3, 3, 0)
	tree := ShortestPaths(Build(g), g.Index(0, 0))

	expected := 0.2 * math.Sqrt2
	if d := tree.Distance[g.Index(2, 2)]; math.Abs(d-expected) > 1e-9 {
		t.Error("distance expected", expected, "got", d)
	}

	path := tree.PathTo(g.Index(2, 2))
	want := Path{8, 4, 0}
	if len(path) != len(want) {
		t.Fatal("path expected", want, "got", path)
	}
	for k := range want {
		if path[k] != want[k] {
			t.Error("path expected", want, "got", path)
			break
		}
	}

	if tree.Distance[tree.Source] != 0 || tree.Previous[tree.Source] != NoPrevious {
		t.Error("source expected distance 0 and no previous, got", tree.Distance[0], tree.Previous[0])
	}
}

func TestShortestPaths_Contiguous(t *testing.T) {
	g := hilly(t)
	source, target := g.Index(1, 2), g.Index(29, 20)
	tree := ShortestPaths(Build(g), source)

	if !tree.Reachable(target) {
		t.Fatal("target expected reachable")
	}

	path := tree.PathTo(target)
	if path[0] != target || path[len(path)-1] != source {
		t.Fatal("path expected to run from", target, "to", source, "got", path)
	}

	for k := 1; k < len(path); k++ {
		ax, ay := g.ReverseIndex(path[k-1])
		bx, by := g.ReverseIndex(path[k])
		adjacent := false
		for _, o := range offsets {
			if ax+o[0] == bx && ay+o[1] == by {
				adjacent = true
			}
		}
		if !adjacent {
			t.Errorf("(%d, %d) and (%d, %d) are not neighbors", ax, ay, bx, by)
		}
		if tree.Distance[path[k]] >= tree.Distance[path[k-1]] {
			t.Error("distance expected to decrease toward source, got", tree.Distance[path[k]], "after", tree.Distance[path[k-1]])
		}
	}

	// Every node is settled, not only those on the way to one target.
	for i := range tree.Distance {
		if !tree.Reachable(i) {
			t.Error("node expected reachable", i)
		}
	}
}

func TestShortestPaths_Unreachable(t *testing.T) {
	graph := Graph{
		{{Target: 1, Weight: 1}},
		{{Target: 0, Weight: 1}},
		{{Target: 1, Weight: 1}},
	}
	tree := ShortestPaths(graph, 0)

	if tree.Reachable(2) {
		t.Error("node 2 expected unreachable")
	}
	if !math.IsInf(tree.Distance[2], 1) || tree.Previous[2] != NoPrevious {
		t.Error("unreachable expected +Inf and no previous, got", tree.Distance[2], tree.Previous[2])
	}
	if path := tree.PathTo(2); len(path) != 1 || path[0] != 2 {
		t.Error("path expected [2] got", path)
	}
	if path := tree.PathTo(3); path != nil {
		t.Error("path expected nil got", path)
	}
}

func TestCarve(t *testing.T) {
	g := flat(t, 20, 20, 0)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			g.SetHeight(x, y, float64(x))
		}
	}

	from, to := Cell{2, 10}, Cell{17, 10}
	path, err := Carve(g, from, to, Options{Width: 1, Transition: 2})
	if err != nil {
		t.Fatal(err)
	}
	if path[0] != g.Index(to.X, to.Y) || path[len(path)-1] != g.Index(from.X, from.Y) {
		t.Error("path expected to run from", to, "to", from, "got", path)
	}

	// The source is flattened last, to its own height.
	if h := g.Height(from.X, from.Y); h != 2 {
		t.Error("source height expected", 2, "got", h)
	}

	for i, h := range g.Heights() {
		if h < 0 || h > 19 {
			x, y := g.ReverseIndex(i)
			t.Errorf("(%d, %d) expected within [0, 19] got %f", x, y, h)
		}
	}

	// Far from the road.
	if h := g.Height(10, 0); h != 10 {
		t.Error("untouched height expected", 10, "got", h)
	}
}

func TestCarve_Flat(t *testing.T) {
	g := flat(t, 12, 12, 5)
	if _, err := Carve(g, Cell{0, 0}, Cell{11, 11}, Options{Width: 2}); err != nil {
		t.Fatal(err)
	}
	for _, h := range g.Heights() {
		if h != 5 {
			t.Fatal("flat terrain expected unchanged, got", h)
		}
	}
}

func TestCarve_Errors(t *testing.T) {
	g := flat(t, 3, 3, math.NaN())
	version := g.Version()

	// NaN weights never improve on +Inf.
	if _, err := Carve(g, Cell{0, 0}, Cell{2, 2}, Options{Width: 1}); !errors.Is(err, ErrUnreachable) {
		t.Error("expected", ErrUnreachable, "got", err)
	}
	if g.Version() != version {
		t.Error("grid expected unchanged")
	}

	var boundsErr *terrain.BoundsError
	if _, err := Carve(g, Cell{0, 0}, Cell{3, 0}, Options{}); !errors.As(err, &boundsErr) {
		t.Error("expected bounds error got", err)
	}

	g = flat(t, 3, 3, 0)
	if _, err := Carve(g, Cell{0, 0}, Cell{2, 2}, Options{Mode: "tunnel"}); !errors.Is(err, ErrUnknownMode) {
		t.Error("expected", ErrUnknownMode, "got", err)
	}
}

func TestCarveCorridor(t *testing.T) {
	g := flat(t, 10, 10, 0)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			g.SetHeight(x, y, float64(x*y))
		}
	}
	before := g.Clone()

	var path Path
	for x := 0; x < 10; x++ {
		path = append(path, g.Index(x, 4))
	}

	if err := CarveCorridor(g, path, 2); err != nil {
		t.Fatal(err)
	}

	for x := 0; x < 10; x++ {
		if h := g.Height(x, 4); h != before.Height(x, 4) {
			t.Error("path height expected", before.Height(x, 4), "got", h)
		}
		if h := g.Height(x, 7); h != before.Height(x, 7) {
			t.Error("height beyond width expected", before.Height(x, 7), "got", h)
		}

		// One cell off the road, a = (1 - 1/4)³ toward the road.
		a := 27.0 / 64
		expected := (1-a)*before.Height(x, 5) + a*before.Height(x, 4)
		if h := g.Height(x, 5); math.Abs(h-expected) > 1e-9 {
			t.Error("blended height expected", expected, "got", h)
		}
	}

	if err := CarveCorridor(g, path, 0); !errors.Is(err, ErrInvalidWidth) {
		t.Error("expected", ErrInvalidWidth, "got", err)
	}
}

func TestPlanner(t *testing.T) {
	g := hilly(t)
	planner := NewPlanner(g)

	planner.Graph()
	planner.Graph()
	if planner.Builds() != 1 {
		t.Error("builds expected", 1, "got", planner.Builds())
	}

	from, to := Cell{0, 0}, Cell{31, 23}
	path, cost, err := planner.Route(from, to)
	if err != nil {
		t.Fatal(err)
	}
	tree := ShortestPaths(Build(g), g.Index(from.X, from.Y))
	if expected := tree.Distance[g.Index(to.X, to.Y)]; cost != expected {
		t.Error("cost expected", expected, "got", cost)
	}
	if len(path) != len(tree.PathTo(g.Index(to.X, to.Y))) {
		t.Error("path expected to match solver")
	}
	if planner.Builds() != 1 {
		t.Error("routing expected to reuse graph")
	}

	if _, err := planner.Carve(from, to, Options{Width: 1, Mode: ModeCorridor}); err != nil {
		t.Fatal(err)
	}
	planner.Graph()
	if planner.Builds() != 2 {
		t.Error("carving expected to invalidate graph, builds", planner.Builds())
	}
}

func BenchmarkShortestPaths(b *testing.B) {
	g := hilly(b)
	for i := 0; i < b.N; i++ {
		ShortestPaths(Build(g), 0)
	}
}
