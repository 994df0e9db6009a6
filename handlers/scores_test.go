// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/mavi-puzzle/models"
	"github.com/danielhkuo/mavi-puzzle/scoring"
	"github.com/danielhkuo/mavi-puzzle/testutil"
)

func submit(t *testing.T, h *ScoreHandler, userID string, req models.SubmitScoreRequest) *httptest.ResponseRecorder {
	t.Helper()
	path := "/api/scores"
	if userID != "" {
		path += "?user_id=" + userID
	}
	w := httptest.NewRecorder()
	h.SubmitScore(w, testutil.MakeRequest("POST", path, req, nil))
	return w
}

func TestSubmitScore(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	hub := &testutil.FakeBroadcaster{}
	h := NewScoreHandler(conn, hub)

	puzzleID := testutil.CreateTestPuzzle(t, conn, "Old Mill", models.StatusPublished)
	userID := testutil.CreateTestUser(t, conn, "alice")

	w := submit(t, h, userID, models.SubmitScoreRequest{
		PuzzleID:       puzzleID,
		CompletionTime: 25000,
		Moves:          9,
		Difficulty:     "easy",
	})
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.SubmitScoreResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Score.Score != 9860 {
		t.Errorf("Expected score 9860, got %d", resp.Score.Score)
	}
	if resp.Score.UserID != userID {
		t.Errorf("Expected user_id %s, got %s", userID, resp.Score.UserID)
	}
	if !resp.Score.IsValidated {
		t.Error("New scores should be validated")
	}

	ids := map[string]bool{}
	for _, a := range resp.Achievements {
		ids[a.ID] = true
	}
	if len(ids) != 2 || !ids[scoring.SpeedDemon] || !ids[scoring.PerfectEasy] {
		t.Errorf("Expected speed_demon and perfect_easy, got %v", resp.Achievements)
	}
	if resp.AchievementPoints != 150 {
		t.Errorf("Expected 150 achievement points, got %d", resp.AchievementPoints)
	}

	if hub.Count() != 1 {
		t.Errorf("Expected 1 live event, got %d", hub.Count())
	}

	// Second game moves the running average
	w = submit(t, h, userID, models.SubmitScoreRequest{
		PuzzleID:       puzzleID,
		CompletionTime: 35000,
		Moves:          12,
		Difficulty:     "easy",
	})
	testutil.AssertStatus(t, w, http.StatusCreated)

	var completions int
	var avg int64
	err := conn.QueryRow("SELECT total_completions, average_completion_time FROM puzzle WHERE id = ?", puzzleID).Scan(&completions, &avg)
	if err != nil {
		t.Fatal(err)
	}
	if completions != 2 {
		t.Errorf("Expected 2 completions, got %d", completions)
	}
	if avg != 30000 {
		t.Errorf("Expected average 30000ms, got %d", avg)
	}

	var played int
	var playTime int64
	err = conn.QueryRow("SELECT total_puzzles_completed, total_play_time FROM app_user WHERE id = ?", userID).Scan(&played, &playTime)
	if err != nil {
		t.Fatal(err)
	}
	if played != 2 || playTime != 60000 {
		t.Errorf("Expected 2 games and 60000ms, got %d and %d", played, playTime)
	}
}

func TestSubmitScoreGuestDefault(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewScoreHandler(conn, nil)
	puzzleID := testutil.CreateTestPuzzle(t, conn, "Old Mill", models.StatusPublished)

	w := submit(t, h, "", models.SubmitScoreRequest{
		PuzzleID:       puzzleID,
		CompletionTime: 1000,
		Moves:          1,
		Difficulty:     "bogus",
	})
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.SubmitScoreResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Score.UserID != models.GuestUserID {
		t.Errorf("Expected guest user, got %s", resp.Score.UserID)
	}
	// Unknown difficulty scores with multiplier 1.0
	if resp.Score.Score != 9988 {
		t.Errorf("Expected 9988, got %d", resp.Score.Score)
	}
	if resp.Achievements == nil {
		t.Error("Achievements should be an empty list, not null")
	}
}

func TestSubmitScoreValidation(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewScoreHandler(conn, nil)

	tests := []struct {
		name string
		req  models.SubmitScoreRequest
	}{
		{"missing puzzle", models.SubmitScoreRequest{Difficulty: "easy"}},
		{"missing difficulty", models.SubmitScoreRequest{PuzzleID: "p"}},
		{"negative time", models.SubmitScoreRequest{PuzzleID: "p", Difficulty: "easy", CompletionTime: -1}},
		{"negative moves", models.SubmitScoreRequest{PuzzleID: "p", Difficulty: "easy", Moves: -5}},
		{"moves past limit", models.SubmitScoreRequest{PuzzleID: "p", Difficulty: "easy", Moves: MaxMoves + 1}},
		{"huge moves", models.SubmitScoreRequest{PuzzleID: "p", Difficulty: "easy", Moves: 1_000_000_000_000_000_000}},
		{"max time", models.SubmitScoreRequest{PuzzleID: "p", Difficulty: "easy", CompletionTime: math.MaxInt64}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := submit(t, h, "", tt.req)
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}

	t.Run("empty body", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/scores", nil)
		h.SubmitScore(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestSubmitScoreLargeInputsScoreZero(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewScoreHandler(conn, nil)
	puzzleID := testutil.CreateTestPuzzle(t, conn, "Old Mill", models.StatusPublished)

	testutil.CreateTestScore(t, conn, models.GuestUserID, puzzleID, "easy", 500, time.Now().Add(-time.Hour))

	w := submit(t, h, "", models.SubmitScoreRequest{
		PuzzleID:       puzzleID,
		CompletionTime: MaxCompletionTime,
		Moves:          MaxMoves,
		Difficulty:     "master",
	})
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.SubmitScoreResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Score.Score != 0 {
		t.Errorf("Expected score 0, got %d", resp.Score.Score)
	}

	w = httptest.NewRecorder()
	h.Leaderboard(w, testutil.MakeRequest("GET", "/api/scores/leaderboard", nil, nil))
	var entries []models.LeaderboardEntry
	testutil.AssertJSON(t, w, &entries)
	if len(entries) != 2 || entries[0].Score != 500 {
		t.Errorf("Slow submission must not top the board: %+v", entries)
	}
}

func TestLeaderboard(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewScoreHandler(conn, nil)

	puzzleID := testutil.CreateTestPuzzle(t, conn, "Old Mill", models.StatusPublished)
	otherID := testutil.CreateTestPuzzle(t, conn, "Harvest", models.StatusPublished)
	alice := testutil.CreateTestUser(t, conn, "alice")

	now := time.Now().UTC()
	testutil.CreateTestScore(t, conn, alice, puzzleID, "easy", 9000, now.Add(-time.Hour))
	testutil.CreateTestScore(t, conn, models.GuestUserID, puzzleID, "easy", 9500, now.Add(-48*time.Hour))
	testutil.CreateTestScore(t, conn, "deleted-user", otherID, "hard", 8000, now.Add(-2*time.Hour))
	testutil.CreateTestScore(t, conn, alice, "deleted-puzzle", "easy", 7000, now.Add(-3*time.Hour))

	t.Run("all-time ranking", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Leaderboard(w, testutil.MakeRequest("GET", "/api/scores/leaderboard", nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var entries []models.LeaderboardEntry
		testutil.AssertJSON(t, w, &entries)
		if len(entries) != 4 {
			t.Fatalf("Expected 4 entries, got %d", len(entries))
		}

		wantScores := []int64{9500, 9000, 8000, 7000}
		wantUsers := []string{"Guest", "alice", "Guest", "alice"}
		wantTitles := []string{"Old Mill", "Old Mill", "Harvest", "Unknown"}
		for i, e := range entries {
			if e.Rank != i+1 {
				t.Errorf("Entry %d: expected rank %d, got %d", i, i+1, e.Rank)
			}
			if e.Score != wantScores[i] {
				t.Errorf("Entry %d: expected score %d, got %d", i, wantScores[i], e.Score)
			}
			if e.User.Username != wantUsers[i] {
				t.Errorf("Entry %d: expected user %s, got %s", i, wantUsers[i], e.User.Username)
			}
			if e.Puzzle == nil || e.Puzzle.Title != wantTitles[i] {
				t.Errorf("Entry %d: expected puzzle %s, got %+v", i, wantTitles[i], e.Puzzle)
			}
		}
		if entries[0].Puzzle.ThumbnailURL == nil {
			t.Error("Expected thumbnail for a known puzzle")
		}
	})

	tests := []struct {
		name   string
		query  string
		scores []int64
	}{
		{"daily", "?timeframe=daily", []int64{9000, 8000, 7000}},
		{"weekly", "?timeframe=weekly", []int64{9500, 9000, 8000, 7000}},
		{"unknown timeframe is all-time", "?timeframe=yearly", []int64{9500, 9000, 8000, 7000}},
		{"by puzzle", "?puzzle_id=" + puzzleID, []int64{9500, 9000}},
		{"by difficulty", "?difficulty=hard", []int64{8000}},
		{"combined", "?difficulty=easy&timeframe=daily", []int64{9000, 7000}},
		{"limit", "?limit=2", []int64{9500, 9000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Leaderboard(w, testutil.MakeRequest("GET", "/api/scores/leaderboard"+tt.query, nil, nil))
			testutil.AssertStatus(t, w, http.StatusOK)

			var entries []models.LeaderboardEntry
			testutil.AssertJSON(t, w, &entries)
			if len(entries) != len(tt.scores) {
				t.Fatalf("Expected %d entries, got %d", len(tt.scores), len(entries))
			}
			for i, e := range entries {
				if e.Score != tt.scores[i] {
					t.Errorf("Entry %d: expected %d, got %d", i, tt.scores[i], e.Score)
				}
			}
		})
	}

	t.Run("invalid limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Leaderboard(w, testutil.MakeRequest("GET", "/api/scores/leaderboard?limit=abc", nil, nil))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestLeaderboardTiesBreakByEarliest(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewScoreHandler(conn, nil)
	puzzleID := testutil.CreateTestPuzzle(t, conn, "Old Mill", models.StatusPublished)

	now := time.Now().UTC()
	late := testutil.CreateTestScore(t, conn, "guest", puzzleID, "easy", 5000, now.Add(-time.Minute))
	early := testutil.CreateTestScore(t, conn, "guest", puzzleID, "easy", 5000, now.Add(-time.Hour))

	w := httptest.NewRecorder()
	h.Leaderboard(w, testutil.MakeRequest("GET", "/api/scores/leaderboard", nil, nil))

	var entries []models.LeaderboardEntry
	testutil.AssertJSON(t, w, &entries)
	if len(entries) != 2 || entries[0].ScoreID != early || entries[1].ScoreID != late {
		t.Errorf("Expected earliest score first, got %+v", entries)
	}
}

func TestPuzzleScores(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewScoreHandler(conn, nil)
	puzzleID := testutil.CreateTestPuzzle(t, conn, "Old Mill", models.StatusPublished)

	now := time.Now().UTC()
	for i, d := range []string{"easy", "easy", "hard"} {
		testutil.CreateTestScore(t, conn, "guest", puzzleID, d, int64(1000*(i+1)), now)
	}
	testutil.CreateTestScore(t, conn, "guest", "other", "easy", 99999, now)

	req := testutil.MakeRequest("GET", "/api/scores/puzzle/"+puzzleID+"?difficulty=easy", nil, nil)
	req.SetPathValue("puzzle_id", puzzleID)
	w := httptest.NewRecorder()
	h.PuzzleScores(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var entries []models.LeaderboardEntry
	testutil.AssertJSON(t, w, &entries)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Score != 2000 || entries[1].Score != 1000 {
		t.Errorf("Unexpected order %d, %d", entries[0].Score, entries[1].Score)
	}
	if entries[0].Puzzle != nil {
		t.Error("Per-puzzle board should omit puzzle info")
	}
}

func TestUserScores(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewScoreHandler(conn, nil)
	puzzleID := testutil.CreateTestPuzzle(t, conn, "Old Mill", models.StatusPublished)
	alice := testutil.CreateTestUser(t, conn, "alice")

	now := time.Now().UTC()
	oldest := testutil.CreateTestScore(t, conn, alice, puzzleID, "easy", 100, now.Add(-3*time.Hour))
	newest := testutil.CreateTestScore(t, conn, alice, puzzleID, "easy", 50, now.Add(-time.Hour))
	testutil.CreateTestScore(t, conn, alice, puzzleID, "easy", 75, now.Add(-2*time.Hour))
	testutil.CreateTestScore(t, conn, "guest", puzzleID, "easy", 999, now)

	req := testutil.MakeRequest("GET", "/api/scores/user/"+alice, nil, nil)
	req.SetPathValue("user_id", alice)
	w := httptest.NewRecorder()
	h.UserScores(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var scores []models.Score
	testutil.AssertJSON(t, w, &scores)
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].ID != newest || scores[2].ID != oldest {
		t.Errorf("Expected newest first, got %s ... %s", scores[0].ID, scores[2].ID)
	}

	req = testutil.MakeRequest("GET", "/api/scores/user/"+alice+"?limit=1", nil, nil)
	req.SetPathValue("user_id", alice)
	w = httptest.NewRecorder()
	h.UserScores(w, req)
	testutil.AssertJSON(t, w, &scores)
	if len(scores) != 1 {
		t.Errorf("Expected 1 score with limit=1, got %d", len(scores))
	}
}

func TestDeleteScore(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	hub := &testutil.FakeBroadcaster{}
	h := NewScoreHandler(conn, hub)
	scoreID := testutil.CreateTestScore(t, conn, "guest", "p", "easy", 100, time.Now())

	req := testutil.MakeRequest("DELETE", "/", nil, nil)
	req.SetPathValue("id", scoreID)
	w := httptest.NewRecorder()
	h.DeleteScore(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var count int
	conn.QueryRow("SELECT COUNT(*) FROM score WHERE id = ?", scoreID).Scan(&count)
	if count != 0 {
		t.Error("Score should be deleted")
	}
	if hub.Count() != 1 {
		t.Errorf("Expected 1 live event, got %d", hub.Count())
	}

	// Second delete is a 404
	w = httptest.NewRecorder()
	h.DeleteScore(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestFlagScore(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewScoreHandler(conn, nil)
	scoreID := testutil.CreateTestScore(t, conn, "guest", "p", "easy", 100, time.Now())

	req := testutil.MakeRequest("POST", "/", models.FlagScoreRequest{Reason: "impossible time"}, nil)
	req.SetPathValue("id", scoreID)
	w := httptest.NewRecorder()
	h.FlagScore(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var validated bool
	var reason *string
	if err := conn.QueryRow("SELECT is_validated, flag_reason FROM score WHERE id = ?", scoreID).Scan(&validated, &reason); err != nil {
		t.Fatal(err)
	}
	if validated {
		t.Error("Expected is_validated = false")
	}
	if reason == nil || *reason != "impossible time" {
		t.Errorf("Expected flag reason, got %v", reason)
	}

	req = testutil.MakeRequest("POST", "/", nil, nil)
	req.SetPathValue("id", "missing")
	w = httptest.NewRecorder()
	h.FlagScore(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestTimeframeStart(t *testing.T) {
	now := time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		timeframe string
		want      time.Time
		ok        bool
	}{
		{TimeframeDaily, now.Add(-24 * time.Hour), true},
		{TimeframeWeekly, now.Add(-7 * 24 * time.Hour), true},
		{TimeframeMonthly, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), true},
		{TimeframeAllTime, time.Time{}, false},
		{"", time.Time{}, false},
		{"fortnightly", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := TimeframeStart(tt.timeframe, now)
		if ok != tt.ok || !got.Equal(tt.want) {
			t.Errorf("TimeframeStart(%q) = %v, %v; want %v, %v", tt.timeframe, got, ok, tt.want, tt.ok)
		}
	}
}
