// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"math"
	"math/rand"
)

// permSize covers perm[perm[i+1]+j+1] with i and j masked to 255.
const permSize = 512

// Perlin is 2D gradient noise. The permutation table is derived from the seed
// once and never modified, so a Perlin may be shared between goroutines.
type Perlin struct {
	perm [permSize]int
}

// NewPerlin shuffles 0..255 with the seed and repeats it to fill the table.
func NewPerlin(seed int64) *Perlin {
	p := &Perlin{}
	shuffled := rand.New(rand.NewSource(seed)).Perm(permSize / 2)
	for i, v := range shuffled {
		p.perm[i] = v
		p.perm[i+permSize/2] = v
	}
	return p
}

// Sample returns noise in [0, 1] at x, y.
func (p *Perlin) Sample(x, y float64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	tx := x - x0
	ty := y - y0

	i := int(x0) & 255
	j := int(y0) & 255

	perm := &p.perm
	h00 := perm[perm[j]+i]
	h10 := perm[perm[j]+i+1]
	h01 := perm[perm[j+1]+i]
	h11 := perm[perm[j+1]+i+1]

	s := grad(h00, tx, ty)
	t := grad(h10, tx-1, ty)
	u := grad(h01, tx, ty-1)
	v := grad(h11, tx-1, ty-1)

	sx := fade(tx)
	st := s + sx*(t-s)
	uv := u + sx*(v-u)

	n := st + fade(ty)*(uv-st)
	return clamp01((n + 1) / 2)
}

// grad dots the offset with one of (±1, ±1), picked by the low two bits of hash.
func grad(hash int, dx, dy float64) float64 {
	if hash&1 == 0 {
		dx = -dx
	}
	if hash&2 == 0 {
		dy = -dy
	}
	return dx + dy
}

// fade is 3t² - 2t³.
func fade(t float64) float64 {
	return t * t * (3 - 2*t)
}
