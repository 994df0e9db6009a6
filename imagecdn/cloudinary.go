// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package imagecdn

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"

	"github.com/danielhkuo/mavi-puzzle/puzzle"
)

const imageResource = "image"

var uploadTags = api.CldAPIArray{"puzzle", "mavi", "historical"}

// Config holds Cloudinary account settings.
// APIBase overrides the upload API host; empty uses Cloudinary's.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
	APIBase   string
}

// Client wraps the Cloudinary SDK for uploads and delivery URLs
type Client struct {
	cfg Config
	cld *cloudinary.Cloudinary
	err error
}

// NewClient creates a Cloudinary client for cfg. Delivery URLs only
// need the cloud name; uploads need the full credentials.
func NewClient(cfg Config) *Client {
	c := &Client{cfg: cfg}

	conf, err := config.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		c.err = err
		return c
	}
	if cfg.APIBase != "" {
		conf.API.UploadPrefix = cfg.APIBase
	}
	conf.URL.Secure = true
	conf.URL.ForceVersion = false
	conf.URL.Analytics = false

	c.cld, c.err = cloudinary.NewFromConfiguration(*conf)
	return c
}

func (c *Client) configured() bool {
	return c.err == nil && c.cfg.CloudName != "" && c.cfg.APIKey != "" && c.cfg.APISecret != ""
}

// Upload stores data in the configured folder
func (c *Client) Upload(ctx context.Context, filename string, data []byte) (UploadResult, error) {
	if !c.configured() {
		return UploadResult{}, ErrNotConfigured
	}

	resp, err := c.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:       c.cfg.Folder,
		Tags:         uploadTags,
		ResourceType: imageResource,
	})
	if err != nil {
		return UploadResult{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if resp.Error.Message != "" {
		return UploadResult{}, fmt.Errorf("%w: %s", ErrUploadFailed, resp.Error.Message)
	}
	if resp.PublicID == "" {
		return UploadResult{}, fmt.Errorf("%w: response missing public_id", ErrUploadFailed)
	}

	slog.Info("image uploaded", "filename", filename, "public_id", resp.PublicID, "width", resp.Width, "height", resp.Height)
	return UploadResult{
		PublicID: resp.PublicID,
		URL:      resp.SecureURL,
		Width:    resp.Width,
		Height:   resp.Height,
		Format:   resp.Format,
	}, nil
}

// Destroy removes the image with publicID
func (c *Client) Destroy(ctx context.Context, publicID string) error {
	if !c.configured() {
		return ErrNotConfigured
	}

	resp, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: imageResource,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDestroyFailed, err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("%w: %s", ErrDestroyFailed, resp.Error.Message)
	}
	if resp.Result != "ok" {
		return fmt.Errorf("%w: result %q", ErrDestroyFailed, resp.Result)
	}
	return nil
}

// ThumbnailURL returns a 300x225 gravity-aware fill of the image
func (c *Client) ThumbnailURL(publicID string) string {
	return c.deliveryURL(publicID, thumbnailTransformation())
}

// PieceURL returns the URL of one cell cut from the canonical square
func (c *Client) PieceURL(publicID string, rect puzzle.PieceRect) string {
	return c.deliveryURL(publicID, pieceTransformation(rect))
}

// deliveryURL returns "" when the URL can't be built
func (c *Client) deliveryURL(publicID, transformation string) string {
	if c.cld == nil {
		return ""
	}
	img, err := c.cld.Image(publicID)
	if err != nil {
		slog.Warn("failed to build image URL", "public_id", publicID, "error", err)
		return ""
	}
	img.Transformation = transformation

	u, err := img.String()
	if err != nil {
		slog.Warn("failed to build image URL", "public_id", publicID, "error", err)
		return ""
	}
	return u
}
