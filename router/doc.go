// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the MAVI Puzzle API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(conn, cfg, cdn, hub)

CORS is applied around the mux by the caller.

# Endpoints

Health:

	GET /health

Catalogue (public):

	GET  /api/difficulties                      - Grid and multiplier per difficulty
	GET  /api/achievements                      - Achievement catalogue
	GET  /api/puzzles                           - Published puzzles
	GET  /api/puzzles/{id}                      - One puzzle with piece data
	GET  /api/puzzles/{id}/pieces/{difficulty}  - Cut rectangles and URLs
	POST /api/puzzles/{id}/plays                - Count a play

Scores (public):

	POST /api/scores                    - Submit a completion
	GET  /api/scores/leaderboard        - Global ranking
	GET  /api/scores/user/{user_id}     - A player's history
	GET  /api/scores/puzzle/{puzzle_id} - Best scores for one puzzle
	GET  /api/scores/live               - Websocket feed

Users:

	POST /api/users      - Register
	GET  /api/users/{id} - Profile and stats

Admin (requires X-Admin-Key when an admin key is configured):

	POST   /api/admin/puzzles                           - Upload
	GET    /api/admin/puzzles                           - All puzzles
	GET    /api/admin/puzzles/{id}                      - Any status
	PUT    /api/admin/puzzles/{id}                      - Partial update
	DELETE /api/admin/puzzles/{id}                      - Delete with image
	GET    /api/admin/puzzles/{id}/pieces/{difficulty}  - Pieces for any status
	DELETE /api/admin/scores/{id}                       - Remove a score
	POST   /api/admin/scores/{id}/flag                  - Flag a score
*/
package router
