package mapgen

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"corebell/internal/scene"
)

func TestTilesDeterministic(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 42
	a, b := Tiles(opts), Tiles(opts)
	if len(a) != opts.Width*opts.Depth {
		t.Fatalf("len = %d, want %d", len(a), opts.Width*opts.Depth)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("tile %d differs between runs with the same seed", i)
		}
	}
}

func TestTilesSitOnGround(t *testing.T) {
	opts := Options{Width: 4, Depth: 3, TileSize: 2, HeightScale: 5, Seed: 7}
	for i, tile := range Tiles(opts) {
		bottom := tile.Position[1] - tile.Scale[1]/2
		if !mgl32.FloatEqualThreshold(bottom, 0, 1e-5) {
			t.Errorf("tile %d bottom = %v, want 0", i, bottom)
		}
		if tile.Scale[1] < minHeight || tile.Scale[1] > opts.HeightScale+1e-5 {
			t.Errorf("tile %d height = %v", i, tile.Scale[1])
		}
	}
}

func TestTilesCentered(t *testing.T) {
	tiles := Tiles(Options{Width: 2, Depth: 2, TileSize: 1, Seed: 1})
	var sum mgl32.Vec3
	for _, tile := range tiles {
		sum = sum.Add(tile.Position)
	}
	if sum[0] != 0 || sum[2] != 0 {
		t.Errorf("XZ centroid sum = %v, want 0", sum)
	}
}

func TestTilesEmpty(t *testing.T) {
	if got := Tiles(Options{Width: 0, Depth: 5}); got != nil {
		t.Errorf("Tiles(0x5) = %v, want nil", got)
	}
}

func TestNoiseRange(t *testing.T) {
	for x := float32(-5); x < 5; x += 0.37 {
		n := fractalValueNoise2D(x, x*0.5, 3, 4, 2, 0.5)
		if n < 0 || n > 1 {
			t.Fatalf("noise(%v) = %v, out of [0,1]", x, n)
		}
	}
}

type nopMesh struct{}

func (nopMesh) SetTransform(_, _, _ mgl32.Vec3) {}
func (nopMesh) Material() scene.Material        { return scene.Material{} }
func (nopMesh) SetMaterial(scene.Material)      {}

type nopRenderer struct{}

func (nopRenderer) CreateMesh(scene.Kind, scene.Material) (scene.Mesh, error) { return nopMesh{}, nil }
func (nopRenderer) RemoveMesh(scene.Mesh)                                     {}

func TestBuild(t *testing.T) {
	reg := scene.NewRegistry(nopRenderer{}, nil)
	ids, err := Build(reg, Options{Width: 3, Depth: 3, Seed: 9})
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 9 || reg.Len() != 9 {
		t.Errorf("ids = %d, registry = %d, want 9", len(ids), reg.Len())
	}
	for _, id := range ids {
		o, _ := reg.Get(id)
		if o.Kind != scene.KindCube || o.Mass != 0 {
			t.Errorf("tile object = %+v", o)
		}
	}
}
