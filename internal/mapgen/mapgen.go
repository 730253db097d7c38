package mapgen

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"corebell/internal/scene"
)

// Options controls procedural height field generation.
// Width/Depth are in tiles; TileSize is the world size of one tile on X/Z.
// HeightScale is the maximum height of the terrain in world units.
// Seed controls randomness; Seed == 0 uses a time-based seed.
// Octaves, Frequency, Lacunarity, and Gain control the fractal noise shape.
type Options struct {
	Width       int
	Depth       int
	TileSize    float32
	HeightScale float32

	Seed       int64
	Octaves    int
	Frequency  float32
	Lacunarity float32
	Gain       float32
}

// DefaultOptions returns a sane default configuration.
func DefaultOptions() Options {
	return Options{
		Width:       16,
		Depth:       16,
		TileSize:    1.0,
		HeightScale: 3.0,
		Octaves:     4,
		Frequency:   0.08,
		Lacunarity:  2.0,
		Gain:        0.5,
	}
}

const minHeight = float32(0.15)

// Tile is one column of the height field.
type Tile struct {
	Position mgl32.Vec3
	Scale    mgl32.Vec3
	Color    scene.Color
}

var (
	lowColor  = scene.RGB(0x3a, 0x7d, 0x2c)
	midColor  = scene.RGB(0x8b, 0x6b, 0x3d)
	highColor = scene.RGB(0xee, 0xee, 0xee)
)

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.TileSize <= 0 {
		o.TileSize = d.TileSize
	}
	if o.HeightScale <= 0 {
		o.HeightScale = 1
	}
	if o.Octaves <= 0 {
		o.Octaves = 1
	}
	if o.Frequency <= 0 {
		o.Frequency = 0.05
	}
	if o.Lacunarity <= 0 {
		o.Lacunarity = d.Lacunarity
	}
	if o.Gain <= 0 {
		o.Gain = d.Gain
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	return o
}

// Tiles builds the height field as a grid of columns sitting on Y=0, centered
// on the origin in XZ. Each column's height comes from fractal noise.
func Tiles(opts Options) []Tile {
	if opts.Width <= 0 || opts.Depth <= 0 {
		return nil
	}
	opts = opts.normalized()
	return grid(opts, func(x, z int) float32 {
		return fractalValueNoise2D(float32(x)*opts.Frequency, float32(z)*opts.Frequency, opts.Seed, opts.Octaves, opts.Lacunarity, opts.Gain)
	})
}

// grid lays out Width×Depth columns; sample returns a height in [0,1] per tile.
func grid(opts Options, sample func(x, z int) float32) []Tile {
	halfTile := opts.TileSize * 0.5
	startX := -float32(opts.Width)*opts.TileSize*0.5 + halfTile
	startZ := -float32(opts.Depth)*opts.TileSize*0.5 + halfTile

	tiles := make([]Tile, 0, opts.Width*opts.Depth)
	for z := 0; z < opts.Depth; z++ {
		for x := 0; x < opts.Width; x++ {
			h := sample(x, z)
			height := minHeight + h*(opts.HeightScale-minHeight)
			if !isFinite(height) || height <= 0 {
				height = minHeight
			}
			tiles = append(tiles, Tile{
				Position: mgl32.Vec3{startX + float32(x)*opts.TileSize, height * 0.5, startZ + float32(z)*opts.TileSize},
				Scale:    mgl32.Vec3{opts.TileSize, height, opts.TileSize},
				Color:    bandColor(h),
			})
		}
	}
	return tiles
}

func bandColor(h float32) scene.Color {
	switch {
	case h > 0.7:
		return highColor
	case h > 0.45:
		return midColor
	}
	return lowColor
}

// Build adds the noise height field to reg as static cubes and returns their ids.
func Build(reg *scene.Registry, opts Options) ([]scene.ID, error) {
	return BuildTiles(reg, Tiles(opts))
}

// BuildTiles adds tiles to reg as static cubes and returns their ids.
func BuildTiles(reg *scene.Registry, tiles []Tile) ([]scene.ID, error) {
	ids := make([]scene.ID, 0, len(tiles))
	for _, t := range tiles {
		id, err := reg.Add(scene.KindCube, scene.Options{
			Position: scene.Vec3(t.Position[0], t.Position[1], t.Position[2]),
			Size:     scene.Vec3(t.Scale[0], t.Scale[1], t.Scale[2]),
			Color:    scene.ColorPtr(t.Color),
			Mass:     scene.Float(0),
		})
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// fractalValueNoise2D is simple fractal value noise: layered smooth value noise with
// configurable octaves, lacunarity, and gain. Output is in [0,1].
func fractalValueNoise2D(x, y float32, seed int64, octaves int, lacunarity, gain float32) float32 {
	var sum float32
	var amplitude float32 = 1
	var maxAmp float32 = 0
	freq := float32(1)

	for i := 0; i < octaves; i++ {
		n := valueNoise2D(x*freq, y*freq, int32(seed)+int32(i))
		sum += n * amplitude
		maxAmp += amplitude
		amplitude *= gain
		freq *= lacunarity
	}
	if maxAmp == 0 {
		return 0
	}
	return sum / maxAmp
}

// valueNoise2D is smooth value noise in [0,1] on a hashed lattice.
func valueNoise2D(x, y float32, seed int32) float32 {
	x0 := int32(math32.Floor(x))
	y0 := int32(math32.Floor(y))
	sx := smoothStep(x - float32(x0))
	sy := smoothStep(y - float32(y0))

	ix0 := lerp(hash2D(x0, y0, seed), hash2D(x0+1, y0, seed), sx)
	ix1 := lerp(hash2D(x0, y0+1, seed), hash2D(x0+1, y0+1, seed), sx)
	return lerp(ix0, ix1, sy)
}

// hash2D maps integer lattice coordinates to a deterministic pseudo-random float in [0,1].
func hash2D(x, y, seed int32) float32 {
	n := x*374761393 + y*668265263 + seed*362437
	n = (n ^ (n >> 13)) * 1274126177
	n = n ^ (n >> 16)
	const invMaxInt = 1.0 / 2147483647.0
	return float32(n&0x7fffffff) * float32(invMaxInt)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// smoothStep is cubic easing: 3t^2 - 2t^3.
func smoothStep(t float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

func isFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
