// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package live pushes leaderboard events to websocket subscribers.
//
// A single Hub goroutine owns the client set. Handlers call Broadcast,
// which never blocks: when the queue is full the event is dropped and
// logged. Subscribers connect to GET /api/scores/live, optionally with
// ?puzzle_id= to receive events for one puzzle only.
//
// Frames are JSON:
//
//	{"event":"score_submitted","puzzle_id":"...","data":{...},"timestamp":"..."}
//
// Usage:
//
//	hub := live.NewHub(cfg.AllowedOrigin)
//	go hub.Run(ctx)
//	mux.HandleFunc("GET /api/scores/live", hub.ServeWS)
package live
