// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

// Levels of a height quantized to a byte (see Grid.Byte).
const (
	OceanLevel = 63
	SandLevel  = OceanLevel + 10
	GrassLevel = SandLevel + 50
	RockLevel  = GrassLevel + 40
	SnowLevel  = 255
)

// Byte quantizes the height at i to [0, 255] using the soft bounds.
func (g *Grid) Byte(i int) byte {
	return byte(g.Normalized(i)*255 + 0.5)
}

// Bytes quantizes every sample, row major.
func (g *Grid) Bytes() []byte {
	buf := make([]byte, len(g.heights))
	for i := range buf {
		buf[i] = g.Byte(i)
	}
	return buf
}
