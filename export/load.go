// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// LoadImage decodes a png, jpeg, bmp or tiff heightmap. If width or height is
// positive the image is resampled with Lanczos3; a zero dimension keeps the
// aspect ratio.
func LoadImage(path string, width, height int) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	if width < 0 || height < 0 {
		return nil, fmt.Errorf("resizing %s image to %dx%d: negative size", format, width, height)
	}
	if width == 0 && height == 0 {
		return img, nil
	}

	bounds := img.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return img, nil
	}
	return resize.Resize(uint(width), uint(height), img, resize.Lanczos3), nil
}
