package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/scene"
)

type discardLogger struct{}

func (discardLogger) Printf(format string, args ...interface{}) {}

func get(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := get(t, NewServer(0, discardLogger{}).Handler(), "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("Unexpected body %q", rec.Body.String())
	}
}

func TestHandleScenes(t *testing.T) {
	rec := get(t, NewServer(0, discardLogger{}).Handler(), "/api/scenes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var scenes []scene.SceneInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &scenes); err != nil {
		t.Fatalf("Failed to decode scenes: %v", err)
	}
	if len(scenes) != len(scene.ListScenes()) {
		t.Errorf("Expected %d scenes, got %d", len(scene.ListScenes()), len(scenes))
	}
}

func TestHandleRender_PNG(t *testing.T) {
	handler := NewServer(0, discardLogger{}).Handler()
	target := "/api/render?scene=simple&width=16&samples=1&depth=2&seed=5"

	rec := get(t, handler, target)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %q", ct)
	}

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 9 {
		t.Errorf("Expected 16x9 image, got %v", img.Bounds())
	}

	// A seeded request renders the same image every time
	again := get(t, handler, target)
	if !bytes.Equal(rec.Body.Bytes(), again.Body.Bytes()) {
		t.Error("Expected identical images for the same seed")
	}
}

func TestHandleRender_PPM(t *testing.T) {
	rec := get(t, NewServer(0, discardLogger{}).Handler(), "/api/render?scene=simple&width=16&samples=1&depth=1&format=ppm")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.HasPrefix(rec.Body.String(), "P3\n16 9\n255\n") {
		t.Errorf("Unexpected PPM header in %q", rec.Body.String()[:20])
	}
}

func TestHandleRender_ZeroDepth(t *testing.T) {
	rec := get(t, NewServer(0, discardLogger{}).Handler(), "/api/render?scene=simple&width=16&samples=1&depth=0&format=ppm")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// With no bounces the sphere in the middle of the 16x9 image is black
	lines := strings.Split(rec.Body.String(), "\n")
	if center := lines[3+4*16+8]; center != "0 0 0" {
		t.Errorf("Expected black centre pixel at depth 0, got %q", center)
	}
}

func TestHandleRender_Errors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"width too small", "width=2", http.StatusBadRequest},
		{"width not a number", "width=abc", http.StatusBadRequest},
		{"zero samples", "samples=0", http.StatusBadRequest},
		{"negative depth", "depth=-1", http.StatusBadRequest},
		{"bad seed", "seed=x", http.StatusBadRequest},
		{"bad format", "format=gif", http.StatusBadRequest},
		{"unknown scene", "scene=cornell", http.StatusNotFound},
	}

	handler := NewServer(0, discardLogger{}).Handler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, handler, "/api/render?"+tt.query)
			if rec.Code != tt.status {
				t.Fatalf("Expected %d, got %d", tt.status, rec.Code)
			}

			var resp map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Expected JSON error body: %v", err)
			}
			if resp["error"] == "" {
				t.Error("Expected error message")
			}
		})
	}
}

func TestHandleSceneConfig(t *testing.T) {
	handler := NewServer(0, discardLogger{}).Handler()

	rec := get(t, handler, "/api/scene-config?scene=default")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var resp struct {
		Scene    string         `json:"scene"`
		Defaults map[string]int `json:"defaults"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode config: %v", err)
	}
	if resp.Defaults["width"] != 400 || resp.Defaults["height"] != 225 {
		t.Errorf("Unexpected defaults %v", resp.Defaults)
	}

	if rec := get(t, handler, "/api/scene-config?scene=missing"); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown scene, got %d", rec.Code)
	}
}

func TestParseRenderRequest_Defaults(t *testing.T) {
	req, err := parseRenderRequest(url.Values{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if req.Scene != "default" || req.Format != output.FormatPNG || req.Reproduce {
		t.Errorf("Unexpected defaults %+v", req)
	}
	if req.Width != 0 || req.Samples != 0 || req.MaxDepth != -1 {
		t.Errorf("Expected unset overrides, got %+v", req)
	}
}
