// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package imagecdn

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrNotImage = errors.New("file is not a supported image")

// ImageInfo is the header information of an upload
type ImageInfo struct {
	Width  int
	Height int
	Format string
}

// Inspect decodes only the image header of data
func Inspect(data []byte) (ImageInfo, error) {
	if len(data) == 0 {
		return ImageInfo{}, ErrNotImage
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageInfo{}, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return ImageInfo{}, fmt.Errorf("%w: empty dimensions", ErrNotImage)
	}
	return ImageInfo{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}
