// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package imagecdn stores puzzle images on Cloudinary and builds the
transformation URLs that cut them into pieces.

# Pieces

Every puzzle image is first filled to a 1260x1260 square (gravity auto),
then cropped to one grid cell:

	https://res.cloudinary.com/<cloud>/image/upload/
		c_fill,g_auto,h_1260,w_1260/c_crop,h_420,w_420,x_420,y_0/f_auto,q_auto:best/<public_id>

Nothing is cut ahead of time; the CDN renders and caches each URL on
first request. PieceURLs builds the URLs for every difficulty:

	urls := imagecdn.PieceURLs(cdn, puzzle.AllDifficultyPieceRects(result.PublicID))

# Uploads

Client goes through the cloudinary-go SDK, which signs upload and destroy
calls with the API secret. Without credentials both return
ErrNotConfigured, while URL building keeps working as long as the cloud
name is set. Config.APIBase points the SDK at another host in tests.

Inspect decodes only the image header (JPEG, PNG, GIF, WebP, BMP, TIFF)
so uploads can be rejected before they reach the CDN.
*/
package imagecdn
