// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs completion at info level (method, path, duration_ms) and the
request start at debug level.

# Admin Routes

Guard admin handlers with the configured key:

	mux.HandleFunc("DELETE /api/admin/scores/{id}",
		middleware.WithLogging(middleware.RequireAdmin(cfg.AdminKey, h.DeleteScore)))

A missing X-Admin-Key yields 401, a wrong one 403. When no key is
configured the routes are open, which suits local development only.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(cfg.AllowedOrigin, mux),
	}

With "*" the request Origin is echoed back; otherwise the configured
origin is always sent. Allows GET, POST, PUT, DELETE, OPTIONS with
headers Content-Type, Authorization, X-Admin-Key.

# JSON Helpers

Responses and request bodies are encoded with sonic in standard-library
compatible mode:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.SubmitScoreRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

Bodies over MaxBodyBytes return ErrBodyTooLarge; an empty body returns ErrEmptyBody.

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Checks X-Forwarded-For, then X-Real-IP, then RemoteAddr. Used in logs.
*/
package middleware
