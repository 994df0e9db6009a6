// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package imagecdn

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielhkuo/mavi-puzzle/puzzle"
)

var (
	ErrNotConfigured = errors.New("image CDN credentials not configured")
	ErrUploadFailed  = errors.New("image upload failed")
	ErrDestroyFailed = errors.New("image delete failed")
)

// Thumbnail dimensions
const (
	ThumbnailWidth  = 300
	ThumbnailHeight = 225
)

// UploadResult describes a stored original image
type UploadResult struct {
	PublicID string `json:"public_id"`
	URL      string `json:"secure_url"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
}

// Service stores images and builds delivery URLs for them
type Service interface {
	Upload(ctx context.Context, filename string, data []byte) (UploadResult, error)
	Destroy(ctx context.Context, publicID string) error
	ThumbnailURL(publicID string) string
	PieceURL(publicID string, rect puzzle.PieceRect) string
}

// PieceURLs builds the delivery URL of every piece in set, keyed by difficulty
func PieceURLs(svc Service, set puzzle.PieceSet) map[string][]string {
	urls := make(map[string][]string, len(set.Rects))
	for d, rects := range set.Rects {
		list := make([]string, len(rects))
		for i, rect := range rects {
			list[i] = svc.PieceURL(set.ImageID, rect)
		}
		urls[string(d)] = list
	}
	return urls
}

// pieceTransformation fills the image to the canonical square, then crops one cell
func pieceTransformation(rect puzzle.PieceRect) string {
	return fmt.Sprintf("c_fill,g_auto,h_%d,w_%d/c_crop,h_%d,w_%d,x_%d,y_%d/f_auto,q_auto:best",
		puzzle.CanonicalSize, puzzle.CanonicalSize,
		rect.Height, rect.Width, rect.X, rect.Y)
}

func thumbnailTransformation() string {
	return fmt.Sprintf("c_fill,f_auto,g_auto,h_%d,q_auto:best,w_%d", ThumbnailHeight, ThumbnailWidth)
}
