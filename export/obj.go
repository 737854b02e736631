// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes terrain to meshes, images and snapshots, and loads
// heightmaps from images.
package export

import (
	"bufio"
	"fmt"
	"github.com/SoftbearStudios/relief/terrain"
	"io"
	"os"
)

// WriteOBJ writes g as a Wavefront OBJ mesh: a vertex and a normal per cell,
// row major, then two triangles per cell of every row but the first, facing
// the previous row.
func WriteOBJ(w io.Writer, g *terrain.Grid) error {
	bw := bufio.NewWriter(w)
	nx, ny := g.NX(), g.NY()

	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			if _, err := fmt.Fprintf(bw, "v %s\n", g.Position(x, y)); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(bw, "vn %s\n", g.Normal(x, y)); err != nil {
				return err
			}
		}
	}

	// OBJ indices are 1-based.
	for y := 1; y < ny; y++ {
		for x := 0; x < nx-1; x++ {
			current := g.Index(x, y) + 1
			above := current - nx
			rDiagonal := above + 1
			right := current + 1

			if _, err := fmt.Fprintf(bw, "f %d %d %d\n", current, rDiagonal, above); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(bw, "f %d %d %d\n", current, right, rDiagonal); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// SaveOBJ writes g to the OBJ file at path.
func SaveOBJ(path string, g *terrain.Grid) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
	}()

	return WriteOBJ(file, g)
}
