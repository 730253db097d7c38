package mapgen

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// OpenHeightmap decodes a PNG, JPEG, BMP or WebP image from path.
func OpenHeightmap(path string) (image.Image, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("heightmap: %w", err)
	}
	return img, nil
}

// HeightmapTiles builds the height field from an image instead of noise. The
// image is resampled to Width×Depth and each pixel's luminance (black low,
// white high) sets its column's height. Seed and the noise fields are ignored.
func HeightmapTiles(img image.Image, opts Options) []Tile {
	if img == nil || opts.Width <= 0 || opts.Depth <= 0 {
		return nil
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil
	}
	opts = opts.normalized()
	gray := effect.Grayscale(transform.Resize(img, opts.Width, opts.Depth, transform.Linear))
	gb := gray.Bounds()
	return grid(opts, func(x, z int) float32 {
		return float32(gray.RGBAAt(gb.Min.X+x, gb.Min.Y+z).R) / 255
	})
}
