// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/relief/terrain"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

var ErrUnknownFormat = errors.New("export: unknown image format")

// Heightmap is g as a grayscale image, normalized to its height range.
func Heightmap(g *terrain.Grid) *image.Gray {
	nx := g.NX()
	img := image.NewGray(image.Rect(0, 0, nx, g.NY()))
	pix := g.Bytes()
	for y := 0; y < g.NY(); y++ {
		copy(img.Pix[y*img.Stride:], pix[y*nx:(y+1)*nx])
	}
	return img
}

// SaveImage encodes img by the extension of path.
func SaveImage(path string, img image.Image) (err error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png", ".jpg", ".jpeg":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
	}()

	if ext == ".png" {
		return png.Encode(file, img)
	}
	return jpeg.Encode(file, img, &jpeg.Options{Quality: 95})
}
