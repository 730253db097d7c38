package fonts

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFonts(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		p := filepath.Join(dir, filepath.FromSlash(n))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("font"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	writeFonts(t, dir, "Inter/Inter-Regular.ttf", "Mono.OTF", "readme.txt")
	got, err := ScanDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Inter/Inter-Regular.ttf", "Mono.OTF"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ScanDir = %v, want %v", got, want)
	}
	if got, err := ScanDir(filepath.Join(dir, "missing")); err != nil || len(got) != 0 {
		t.Errorf("missing dir = %v, %v", got, err)
	}
}

func TestCandidates(t *testing.T) {
	got := Candidates("Inter/Inter-Bold.ttf")
	want := []string{"Inter/Inter-Bold.ttf", "Inter", "Inter-Bold"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Candidates = %v, want %v", got, want)
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	writeFonts(t, dir,
		"Inter/Inter-Bold.ttf",
		"Inter/Inter-Regular.ttf",
		"Google_Sans_Code/GoogleSansCode-Medium.ttf",
	)
	tests := []struct {
		name string
		want string
	}{
		{"Inter", "Inter/Inter-Regular.ttf"},
		{"inter bold", "Inter/Inter-Bold.ttf"},
		{"Google Sans", "Google_Sans_Code/GoogleSansCode-Medium.ttf"},
		{"Inter/Inter-Black.ttf", "Inter/Inter-Regular.ttf"},
	}
	for _, tt := range tests {
		got, err := Find(tt.name, dir)
		if err != nil {
			t.Errorf("Find(%q): %v", tt.name, err)
			continue
		}
		if want := filepath.Join(dir, filepath.FromSlash(tt.want)); got != want {
			t.Errorf("Find(%q) = %q, want %q", tt.name, got, want)
		}
	}
	if _, err := Find("Comic", dir); !errors.Is(err, ErrNotFound) {
		t.Errorf("Find(Comic) err = %v, want ErrNotFound", err)
	}
}

func TestFindExistingPath(t *testing.T) {
	dir := t.TempDir()
	writeFonts(t, dir, "x.ttf")
	p := filepath.Join(dir, "x.ttf")
	if got, err := Find(p, t.TempDir()); err != nil || got != p {
		t.Errorf("Find(path) = %q, %v", got, err)
	}
}
