// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"

	"github.com/danielhkuo/mavi-puzzle/auth"
	"github.com/danielhkuo/mavi-puzzle/cliparse"
	"github.com/danielhkuo/mavi-puzzle/db"
	"github.com/danielhkuo/mavi-puzzle/imagecdn"
	"github.com/danielhkuo/mavi-puzzle/models"
	"github.com/danielhkuo/mavi-puzzle/puzzle"
)

// TestAdminKey is the admin key in GetTestConfig
const TestAdminKey = "test-admin-key"

// SetupTestDB opens a fresh SQLite database in a temp dir with the full schema
func SetupTestDB(t *testing.T) *db.DB {
	t.Helper()

	conn, err := db.Open(db.SQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseType:  string(db.SQLite),
		DatabaseURL:   ":memory:",
		AdminKey:      TestAdminKey,
		AllowedOrigin: "*",
		LogLevel:      "error",
		Cloudinary: cliparse.CloudinaryConfig{
			CloudName: "demo",
			Folder:    "mavi-puzzles",
		},
	}
}

// FakeCDN records uploads and deletes and builds real delivery URLs
type FakeCDN struct {
	*imagecdn.Client

	mu         sync.Mutex
	Uploaded   []string
	Destroyed  []string
	UploadErr  error
	DestroyErr error
}

func NewFakeCDN() *FakeCDN {
	return &FakeCDN{Client: imagecdn.NewClient(imagecdn.Config{CloudName: "demo"})}
}

func (f *FakeCDN) Upload(ctx context.Context, filename string, data []byte) (imagecdn.UploadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.UploadErr != nil {
		return imagecdn.UploadResult{}, f.UploadErr
	}

	info, err := imagecdn.Inspect(data)
	if err != nil {
		return imagecdn.UploadResult{}, err
	}

	publicID := "mavi-puzzles/" + auth.NewID()
	f.Uploaded = append(f.Uploaded, publicID)
	return imagecdn.UploadResult{
		PublicID: publicID,
		URL:      "https://res.cloudinary.com/demo/image/upload/" + publicID + "." + info.Format,
		Width:    info.Width,
		Height:   info.Height,
		Format:   info.Format,
	}, nil
}

func (f *FakeCDN) Destroy(ctx context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DestroyErr != nil {
		return f.DestroyErr
	}
	f.Destroyed = append(f.Destroyed, publicID)
	return nil
}

// FakeBroadcaster records live events
type FakeBroadcaster struct {
	mu     sync.Mutex
	Events []string
}

func (b *FakeBroadcaster) Broadcast(event, puzzleID string, data interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Events = append(b.Events, event+":"+puzzleID)
}

// Count returns how many events were recorded
func (b *FakeBroadcaster) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.Events)
}

// CreateTestPuzzle inserts a puzzle with piece URLs for every difficulty
// status should be "draft", "published", or "archived"
func CreateTestPuzzle(t *testing.T, conn *db.DB, title, status string) string {
	t.Helper()

	puzzleID := auth.NewID()
	publicID := "mavi-puzzles/" + puzzleID
	cdn := NewFakeCDN()

	pieceData, err := sonic.Marshal(imagecdn.PieceURLs(cdn, puzzle.AllDifficultyPieceRects(publicID)))
	if err != nil {
		t.Fatalf("Failed to encode piece data: %v", err)
	}
	available, _ := sonic.Marshal(models.DefaultDifficulties)

	now := time.Now().UTC()
	_, err = conn.Exec(`
		INSERT INTO puzzle (id, title, description, category, tags, image_public_id, image_url,
			image_width, image_height, image_format, thumbnail_url, piece_data, difficulty_available,
			status, created_at, updated_at)
		VALUES (?, ?, 'A test puzzle', 'General', '["test"]', ?, ?, 1600, 1200, 'jpg', ?, ?, ?, ?, ?, ?)
	`, puzzleID, title, publicID, "https://res.cloudinary.com/demo/image/upload/"+publicID+".jpg",
		cdn.ThumbnailURL(publicID), string(pieceData), string(available), status, now, now)
	if err != nil {
		t.Fatalf("Failed to create test puzzle: %v", err)
	}

	return puzzleID
}

// CreateTestUser inserts a player and returns the user ID
func CreateTestUser(t *testing.T, conn *db.DB, username string) string {
	t.Helper()

	userID := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO app_user (id, email, username, role, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, userID, username+"@example.com", username, models.RolePlayer, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID
}

// CreateTestScore inserts a score row directly and returns its ID
func CreateTestScore(t *testing.T, conn *db.DB, userID, puzzleID, difficulty string, score int64, completedAt time.Time) string {
	t.Helper()

	scoreID := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO score (id, user_id, puzzle_id, completion_time, moves, difficulty, score, completed_at)
		VALUES (?, ?, ?, 60000, 40, ?, ?, ?)
	`, scoreID, userID, puzzleID, difficulty, score, completedAt.UTC())
	if err != nil {
		t.Fatalf("Failed to create test score: %v", err)
	}

	return scoreID
}

// TestPNG returns an encoded w x h PNG
func TestPNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, G: 120, B: 40, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeMultipartRequest builds a form upload with an optional file part
func MakeMultipartRequest(t *testing.T, method, path string, fields map[string]string, filename, contentType string, file []byte, headers map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("Failed to write field: %v", err)
		}
	}
	if filename != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("Failed to create file part: %v", err)
		}
		part.Write(file)
	}
	mw.Close()

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

// AdminHeaders returns the header map for admin requests
func AdminHeaders() map[string]string {
	return map[string]string{"X-Admin-Key": TestAdminKey}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
