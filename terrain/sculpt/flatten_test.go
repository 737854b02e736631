// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sculpt

import (
	"github.com/SoftbearStudios/relief/terrain"
	"github.com/SoftbearStudios/relief/terrain/noise"
	"github.com/SoftbearStudios/relief/world"
	"math"
	"testing"
)

func flat(t *testing.T, n int) *terrain.Grid {
	t.Helper()
	g, err := terrain.New(world.Box2From(world.Vec2{}, world.Vec2{X: float64(n - 1), Y: float64(n - 1)}), n, n)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestFlatten_Example(t *testing.T) {
	g := flat(t, 5)
	center := world.Vec2{X: 2, Y: 2}

	if err := Flatten(g, center, 1, 10, 1); err != nil {
		t.Fatal(err)
	}

	if h := g.Height(2, 2); h != 10 {
		t.Error("expected center at exactly 10 got", h)
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			d := center.Distance(world.Vec2{X: float64(x), Y: float64(y)})
			h := g.Height(x, y)
			if d >= 2 && h != 0 {
				t.Errorf("Height(%d, %d) at distance %f expected 0 got %f", x, y, d, h)
			}
			if h < 0 || h > 10 {
				t.Errorf("Height(%d, %d) expected within [0, 10] got %f", x, y, h)
			}
		}
	}

	// On the inner circle the crater weight is 1.
	if h := g.Height(2, 3); h != 10 {
		t.Error("expected cell on the inner circle at 10 got", h)
	}
	// Diagonal neighbors sit in the ring.
	want := 10 * Crater(math.Sqrt2, 1, 2)
	if h := g.Height(3, 3); math.Abs(h-want) > 1e-9 {
		t.Error("expected blended diagonal", want, "got", h)
	}
}

func TestFlatten_InnerDiscIdempotent(t *testing.T) {
	params := noise.DefaultParams()
	params.NX, params.NY = 24, 24
	once, err := noise.Generate(params)
	if err != nil {
		t.Fatal(err)
	}
	twice := once.Clone()

	// No lattice point lies strictly between radius 3 and 3.1, so every cell
	// touched gets weight 0 or 1.
	center := world.Vec2{X: 11, Y: 9}
	_ = Flatten(once, center, 3, 42, 0.1)
	_ = Flatten(twice, center, 3, 42, 0.1)
	_ = Flatten(twice, center, 3, 42, 0.1)

	for i := 0; i < once.Len(); i++ {
		if once.HeightAt(i) != twice.HeightAt(i) {
			t.Fatalf("height %d differs after a second flatten: %f vs %f", i, once.HeightAt(i), twice.HeightAt(i))
		}
	}
}

func TestFlatten_RingNotIdempotent(t *testing.T) {
	g := flat(t, 5)
	center := world.Vec2{X: 2, Y: 2}

	_ = Flatten(g, center, 1, 10, 1)
	once := g.Heights()
	_ = Flatten(g, center, 1, 10, 1)

	w := Crater(math.Sqrt2, 1, 2)
	wantOnce := 10 * w
	wantTwice := wantOnce + (10-wantOnce)*w
	for _, cell := range [][2]int{{1, 1}, {3, 1}, {1, 3}, {3, 3}} {
		i := g.Index(cell[0], cell[1])
		if math.Abs(once[i]-wantOnce) > 1e-9 {
			t.Error("first flatten at", cell, "expected", wantOnce, "got", once[i])
		}
		if h := g.HeightAt(i); math.Abs(h-wantTwice) > 1e-9 {
			t.Error("second flatten at", cell, "expected", wantTwice, "got", h)
		}
		if math.Abs(g.HeightAt(i)-9.015870) > 1e-6 || math.Abs(once[i]-6.862915) > 1e-6 {
			t.Error("ring cell", cell, "expected 6.862915 then 9.015870 got", once[i], g.HeightAt(i))
		}
	}

	// The disc and everything outside the outer circle are fixed points.
	for i, h := range g.Heights() {
		x, y := g.ReverseIndex(i)
		d := center.Distance(world.Vec2{X: float64(x), Y: float64(y)})
		if (d <= 1 || d >= 2) && h != once[i] {
			t.Errorf("Height(%d, %d) expected unchanged %f got %f", x, y, once[i], h)
		}
	}
}

func TestFlatten_Converges(t *testing.T) {
	g := flat(t, 9)
	center := world.Vec2{X: 4, Y: 4}

	_ = Flatten(g, center, 1, 10, 3)
	first := g.Heights()
	_ = Flatten(g, center, 1, 10, 3)

	// Repeating only closes the remaining gap in the ring, never overshoots.
	for i, h := range g.Heights() {
		if h < first[i] || h > 10 {
			t.Fatalf("height %d expected in [%f, 10] got %f", i, first[i], h)
		}
	}
}

func TestFlatten_Lowers(t *testing.T) {
	g := flat(t, 7)
	for i := 0; i < g.Len(); i++ {
		g.SetHeightAt(i, 50)
	}

	_ = Flatten(g, world.Vec2{X: 0, Y: 0}, 2, 20, 2)

	if h := g.Height(0, 0); h != 20 {
		t.Error("expected corner footprint clamped to the grid and flattened got", h)
	}
	if h := g.Height(2, 1); h >= 50 || h <= 20 {
		t.Error("expected ring cell lowered toward 20 got", h)
	}
	if h := g.Height(6, 6); h != 50 {
		t.Error("expected far cell untouched got", h)
	}

	if err := Flatten(g, world.Vec2{}, -1, 0, 0); err != ErrNegativeRadius {
		t.Error("expected ErrNegativeRadius got", err)
	}
}

func TestCrater(t *testing.T) {
	tests := []struct {
		d, ri, re float64
		w         float64
	}{
		{0, 1, 2, 1},
		{1, 1, 2, 1},
		{2, 1, 2, 0},
		{5, 1, 2, 0},
		{1.5, 1, 2, 0.5625},
		{1, 1, 1, 1},
	}
	for _, test := range tests {
		if w := Crater(test.d, test.ri, test.re); math.Abs(w-test.w) > 1e-12 {
			t.Errorf("Crater(%f, %f, %f) expected %f got %f", test.d, test.ri, test.re, test.w, w)
		}
	}

	prev := 1.0
	for d := 1.0; d <= 3; d += 0.01 {
		w := Crater(d, 1, 3)
		if w > prev {
			t.Fatalf("expected Crater to fall off monotonically, rose at %f", d)
		}
		prev = w
	}
}
