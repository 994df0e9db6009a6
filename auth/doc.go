// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identifiers and admin key checks.

# Record IDs

Puzzles, scores and users are keyed by random UUIDs:

	id := auth.NewID()

# Admin Keys

Admin routes compare the X-Admin-Key header with the configured key:

	err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), cfg.AdminKey)

Both values are SHA-256 hashed before a constant-time comparison, so the
check leaks neither content nor length. GenerateAdminKey produces a
random 192-bit key for deployment (see `puzzlectl keygen`).

# Players

There is no player authentication. Score submission takes the user_id
query parameter as given and falls back to the guest marker:

	userID := auth.UserIDOrGuest(r.URL.Query().Get("user_id"))
*/
package auth
