// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"errors"
	"github.com/SoftbearStudios/relief/world"
	"image"
	"image/color"
	"math"
	"testing"
)

func bowl(t *testing.T, nx, ny int) *Grid {
	t.Helper()
	g, err := New(world.Box2From(world.Vec2{}, world.Vec2{X: float64(nx - 1), Y: float64(ny - 1)}), nx, ny)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			g.SetHeight(x, y, float64(x*x+y))
		}
	}
	return g
}

func TestGrid_IndexRoundTrip(t *testing.T) {
	g := bowl(t, 7, 5)
	for y := 0; y < g.NY(); y++ {
		for x := 0; x < g.NX(); x++ {
			i := g.Index(x, y)
			if i != y*7+x {
				t.Errorf("Index(%d, %d) expected %d got %d", x, y, y*7+x, i)
			}
			rx, ry := g.ReverseIndex(i)
			if rx != x || ry != y {
				t.Errorf("ReverseIndex(%d) expected (%d, %d) got (%d, %d)", i, x, y, rx, ry)
			}
		}
	}
}

func TestGrid_GradientBorder(t *testing.T) {
	g := bowl(t, 6, 6)
	for y := 0; y < g.NY(); y++ {
		for x := 0; x < g.NX(); x++ {
			border := x == 0 || y == 0 || x == g.NX()-1 || y == g.NY()-1
			grad := g.Gradient(x, y)
			if border && grad != (world.Vec2{}) {
				t.Errorf("Gradient(%d, %d) on border expected zero got %v", x, y, grad)
			}
			if !border && grad == (world.Vec2{}) {
				t.Errorf("Gradient(%d, %d) inside expected non zero", x, y)
			}
		}
	}
}

func TestGrid_Gradient(t *testing.T) {
	g := bowl(t, 6, 6)

	// h = x*x + y with one world unit per cell.
	grad := g.Gradient(2, 3)
	if math.Abs(grad.X-4) > 1e-9 || math.Abs(grad.Y-1) > 1e-9 {
		t.Error("Gradient(2, 3) expected (4, 1) got", grad)
	}
	if s := g.Slope(2, 3); math.Abs(s-math.Sqrt(17)) > 1e-9 {
		t.Error("Slope(2, 3) expected", math.Sqrt(17), "got", s)
	}

	n := g.Normal(2, 3)
	if math.Abs(n.Length()-1) > 1e-9 || n.X >= 0 || n.Y >= 0 || n.Z <= 0 {
		t.Error("Normal(2, 3) expected unit vector facing up and away from the slope got", n)
	}
	if n := g.Normal(0, 0); n != (world.Vec3{Z: 1}) {
		t.Error("Normal on border expected straight up got", n)
	}
}

func TestGrid_Position(t *testing.T) {
	g, _ := New(world.Box2From(world.Vec2{X: 10, Y: 20}, world.Vec2{X: 20, Y: 40}), 11, 5)

	tests := []struct {
		i, j int
		pos  world.Vec2
	}{
		{0, 0, world.Vec2{X: 10, Y: 20}},
		{10, 4, world.Vec2{X: 20, Y: 40}},
		{5, 2, world.Vec2{X: 15, Y: 30}},
		{-3, -1, world.Vec2{X: 10, Y: 20}},
		{11, 5, world.Vec2{X: 21, Y: 45}}, // clamped to nx, ny
		{50, 50, world.Vec2{X: 21, Y: 45}},
	}
	for _, test := range tests {
		if p := g.Position2D(test.i, test.j); p != test.pos {
			t.Errorf("Position2D(%d, %d) expected %v got %v", test.i, test.j, test.pos, p)
		}
	}

	g.SetHeight(5, 2, 7)
	if p := g.Position(5, 2); p != (world.Vec3{X: 15, Y: 30, Z: 7}) {
		t.Error("Position(5, 2) expected (15, 30, 7) got", p)
	}
}

func TestGrid_Bounds(t *testing.T) {
	g := bowl(t, 3, 3)

	if _, err := g.At(3, 0); err == nil {
		t.Error("At(3, 0) expected error")
	} else {
		var boundsErr *BoundsError
		if !errors.As(err, &boundsErr) || boundsErr.X != 3 {
			t.Error("At(3, 0) expected *BoundsError got", err)
		}
	}
	if h, err := g.At(2, 1); err != nil || h != 5 {
		t.Error("At(2, 1) expected 5 got", h, err)
	}

	defer func() {
		if _, ok := recover().(*BoundsError); !ok {
			t.Error("Height(-1, 0) expected *BoundsError panic")
		}
	}()
	g.Height(-1, 0)
}

func TestGrid_Version(t *testing.T) {
	g := bowl(t, 3, 3)
	v := g.Version()
	g.SetHeight(1, 1, 3)
	if g.Version() == v {
		t.Error("SetHeight expected to bump version")
	}

	clone := g.Clone()
	clone.SetHeight(1, 1, 9)
	if g.Height(1, 1) != 3 {
		t.Error("Clone expected its own samples")
	}
}

func TestFromHeights(t *testing.T) {
	heights := []float64{1, 2, 3, 4}
	g, err := FromHeights(world.Box2{}, heights, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	heights[0] = 100
	if g.Height(0, 0) != 1 {
		t.Error("FromHeights expected to copy samples")
	}

	if _, err := FromHeights(world.Box2{}, heights, 3, 2); !errors.Is(err, ErrHeightsLength) {
		t.Error("FromHeights expected ErrHeightsLength got", err)
	}
	if _, err := New(world.Box2{}, 0, 2); err != ErrInvalidSize {
		t.Error("New expected ErrInvalidSize got", err)
	}
}

func TestNew_Overflow(t *testing.T) {
	// nx*ny wraps around, which must not produce an empty grid.
	for _, size := range [][2]int{{math.MaxInt/2 + 1, 2}, {2, math.MaxInt/2 + 1}, {math.MaxInt, math.MaxInt}} {
		if g, err := New(world.Box2{}, size[0], size[1]); err != ErrInvalidSize {
			t.Error("New expected ErrInvalidSize for", size, "got", g, err)
		}
	}
}

func TestFromImage(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 4, 2))
	gray.SetGray(0, 0, color.Gray{Y: 0})
	gray.SetGray(3, 1, color.Gray{Y: 255})
	gray.SetGray(1, 0, color.Gray{Y: 51})

	bounds := world.Box2From(world.Vec2{}, world.Vec2{X: 4, Y: 2})
	g, err := FromImage(gray, bounds, 10, 20)
	if err != nil {
		t.Fatal(err)
	}
	if !g.Valid() || g.NX() != 4 || g.NY() != 2 {
		t.Fatal("FromImage expected valid 4x2 grid got", g.NX(), g.NY())
	}
	if g.Height(0, 0) != 10 || g.Height(3, 1) != 20 || math.Abs(g.Height(1, 0)-12) > 1e-9 {
		t.Error("FromImage expected heights 10, 20, 12 got", g.Height(0, 0), g.Height(3, 1), g.Height(1, 0))
	}

	colored := image.NewRGBA(image.Rect(0, 0, 2, 2))
	colored.Set(1, 1, color.RGBA{R: 255, A: 255})
	g, err = FromImage(colored, bounds, 0, 1)
	if err != ErrNotGrayscale {
		t.Error("FromImage expected ErrNotGrayscale got", err)
	}
	if g == nil || g.Valid() {
		t.Error("FromImage expected an invalid grid for a colored image")
	}

	if _, err := FromImage(image.NewGray(image.Rect(0, 0, 0, 0)), bounds, 0, 1); err != ErrEmptyImage {
		t.Error("FromImage expected ErrEmptyImage got", err)
	}
}

func TestHelpers(t *testing.T) {
	if Clamp(5, 0, 1) != 1 || Clamp(-5, 0, 1) != 0 || Clamp(0.5, 0, 1) != 0.5 {
		t.Error("Clamp expected saturation at the bounds")
	}
	if Lerp(2, 4, 0.5) != 3 || Lerp(2, 4, 2) != 6 {
		t.Error("Lerp expected unclamped interpolation")
	}
	if Normalize01(75, 50, 100) != 0.5 {
		t.Error("Normalize01 expected 0.5 got", Normalize01(75, 50, 100))
	}
}

func TestRender(t *testing.T) {
	g := bowl(t, 8, 4)
	img := g.Render()
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Error("Render expected 8x4 image got", b)
	}
	if _, _, _, a := img.At(3, 2).RGBA(); a != 0xffff {
		t.Error("Render expected opaque pixels")
	}
}

func TestRender_Lighting(t *testing.T) {
	// A valley along y: the east facing slope faces away from the sun.
	const nx, ny = 9, 3
	heights := make([]float64, nx*ny)
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			heights[y*nx+x] = 10 * math.Abs(float64(x-4))
		}
	}
	g, err := FromHeights(world.Box2From(world.Vec2{}, world.Vec2{X: nx - 1, Y: ny - 1}), heights, nx, ny)
	if err != nil {
		t.Fatal(err)
	}
	img := g.Render().(*image.RGBA)

	east, west := img.RGBAAt(2, 1), img.RGBAAt(6, 1)
	if east.G >= west.G || east.B >= west.B {
		t.Error("slope facing away from the sun expected darker got", east, "vs", west)
	}

	// Border gradients are zero, so border cells keep their ramp color.
	want := DefaultRamp.At(g.Byte(g.Index(2, 0))).Pixel()
	if c := img.RGBAAt(2, 0); c != want {
		t.Error("border pixel expected", want, "got", c)
	}
	shaded := DefaultRamp.At(g.Byte(g.Index(2, 1))).Scale(DefaultSun.Shade(g.Normal(2, 1))).Pixel()
	if east != shaded {
		t.Error("shaded pixel expected", shaded, "got", east)
	}
}

func TestSun_Shade(t *testing.T) {
	sun := Sun{Azimuth: 0, Elevation: math.Pi / 6}
	tests := []struct {
		normal   world.Vec3
		expected float32
	}{
		{world.Vec3{Z: 1}, 1},
		{world.Vec3{X: -1}, 0},
		{world.Vec3{X: 1}, float32(math.Sqrt(3))},
		{world.Vec3{X: -1, Z: 1}.Norm(), 0},
	}
	for _, test := range tests {
		if s := sun.Shade(test.normal); math.Abs(float64(s-test.expected)) > 1e-5 {
			t.Error("Shade", test.normal, "expected", test.expected, "got", s)
		}
	}

	sun.Ambient = 0.25
	if s := sun.Shade(world.Vec3{X: -1}); math.Abs(float64(s)-0.25) > 1e-6 {
		t.Error("Shade away from the sun expected ambient 0.25 got", s)
	}
	if s := sun.Shade(world.Vec3{Z: 1}); s != 1 {
		t.Error("Shade of flat ground expected 1 got", s)
	}
}

func TestColor_Lerp(t *testing.T) {
	a, b := Gray(0), Gray(255)
	if c := a.Lerp(b, 2).Pixel(); c != b.Pixel() {
		t.Error("Lerp past 1 expected", b.Pixel(), "got", c)
	}
	if c := a.Lerp(b, -1).Pixel(); c != a.Pixel() {
		t.Error("Lerp below 0 expected", a.Pixel(), "got", c)
	}
	if c := Gray(200).Scale(2).Pixel(); c != Gray(255).Pixel() {
		t.Error("Scale expected clamped white got", c)
	}
}

func TestRamp_At(t *testing.T) {
	ramp := Ramp{{0, Gray(0)}, {100, Gray(200)}, {200, RGB(200, 0, 0)}}

	tests := []struct {
		h        byte
		expected color.RGBA
	}{
		{0, color.RGBA{A: 255}},
		{50, color.RGBA{R: 100, G: 100, B: 100, A: 255}},
		{100, color.RGBA{R: 200, G: 200, B: 200, A: 255}},
		{150, color.RGBA{R: 200, G: 100, B: 100, A: 255}},
		{255, color.RGBA{R: 200, A: 255}},
	}

	for _, test := range tests {
		if c := ramp.At(test.h).Pixel(); c != test.expected {
			t.Error("Ramp.At", test.h, "expected", test.expected, "got", c)
		}
	}

	if c := DefaultRamp.At(SandLevel).Pixel(); c != (color.RGBA{R: 194, G: 178, B: 128, A: 255}) {
		t.Error("sand expected got", c)
	}
}
