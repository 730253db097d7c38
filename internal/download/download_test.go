package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestDownloadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("missing User-Agent")
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(`{"objects":[]}`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	path, err := Download(context.Background(), srv.URL+"/scenes/demo?rev=2", dir)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "demo.json"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}
	data, _ := os.ReadFile(path)
	if string(data) != `{"objects":[]}` {
		t.Errorf("content = %s", data)
	}
}

func TestDownloadContentDisposition(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="my level.json"`)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	path, err := Download(context.Background(), srv.URL+"/x", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "my_level.json" {
		t.Errorf("name = %s", filepath.Base(path))
	}
}

func TestDownloadHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	if _, err := Download(context.Background(), srv.URL+"/missing.json", t.TempDir()); err == nil {
		t.Error("want error for 404")
	}
}

func TestDownloadCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Download(ctx, srv.URL, t.TempDir()); err == nil {
		t.Error("want error for canceled context")
	}
}

func TestIsURL(t *testing.T) {
	tests := map[string]bool{
		"https://example.com/a.json": true,
		"HTTP://x":                   true,
		"scene.json":                 false,
		"/tmp/https.json":            false,
	}
	for in, want := range tests {
		if got := IsURL(in); got != want {
			t.Errorf("IsURL(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"":           "scene",
		"a b/c":      "a_b_c",
		"..":         "scene",
		"level-1.v2": "level-1.v2",
	}
	for in, want := range tests {
		if got := sanitizeFilename(in); got != want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
