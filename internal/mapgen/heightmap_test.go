package mapgen

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// gradient is dark on the left and bright on the right.
func gradient(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x * 255 / (w - 1))})
		}
	}
	return img
}

func TestHeightmapTiles(t *testing.T) {
	opts := Options{Width: 4, Depth: 2, TileSize: 1, HeightScale: 4}
	tiles := HeightmapTiles(gradient(16, 8), opts)
	if len(tiles) != 8 {
		t.Fatalf("len = %d, want 8", len(tiles))
	}
	first, last := tiles[0].Scale[1], tiles[3].Scale[1]
	if first >= last {
		t.Errorf("left column %v not lower than right column %v", first, last)
	}
	for i, tile := range tiles {
		if tile.Scale[1] < minHeight || tile.Scale[1] > opts.HeightScale+1e-5 {
			t.Errorf("tile %d height = %v", i, tile.Scale[1])
		}
	}
	if HeightmapTiles(nil, opts) != nil {
		t.Error("nil image: want no tiles")
	}
}

func TestOpenHeightmap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, gradient(4, 4)); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := OpenHeightmap(path)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("bounds = %v", b)
	}
	if _, err := OpenHeightmap(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("missing file: want error")
	}
}
