package scene

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestLayoutGrid(t *testing.T) {
	got := Layout(PatternGrid, 5, mgl32.Vec3{1, 0, 1}, 2, nil)
	want := []mgl32.Vec3{{1, 0, 1}, {3, 0, 1}, {5, 0, 1}, {1, 0, 3}, {3, 0, 3}}
	if len(got) != len(want) {
		t.Fatalf("len = %d", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pos %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLayoutLine(t *testing.T) {
	got := Layout(PatternLine, 3, mgl32.Vec3{}, 0, nil)
	if got[2] != (mgl32.Vec3{4, 0, 0}) {
		t.Errorf("third = %v, want default spacing 2", got[2])
	}
}

func TestLayoutRandomBounded(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for _, p := range Layout(PatternRandom, 50, mgl32.Vec3{}, 2, rnd) {
		if p[0] < -25 || p[0] > 25 || p[2] < -25 || p[2] > 25 || p[1] != 0 {
			t.Errorf("pos %v out of bounds", p)
		}
	}
}

func TestParsePattern(t *testing.T) {
	for in, want := range map[string]Pattern{"": PatternGrid, "Line": PatternLine, "spread": PatternRandom} {
		if got, err := ParsePattern(in); err != nil || got != want {
			t.Errorf("ParsePattern(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParsePattern("spiral"); err == nil {
		t.Error("ParsePattern(spiral): want error")
	}
}

func TestSpawn(t *testing.T) {
	ed, _, _ := newTestEditor()
	rnd := rand.New(rand.NewSource(3))
	ids, err := ed.Spawn(SpawnRequest{
		Kinds:    []Kind{KindCube},
		Count:    4,
		ScaleMin: Vec3(1, 2, 1),
		ScaleMax: Vec3(1, 4, 1),
		Options:  Options{Color: ColorPtr(RGB(1, 2, 3))},
	}, rnd)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 4 || ed.Registry.Len() != 4 {
		t.Fatalf("spawned %d, registry %d", len(ids), ed.Registry.Len())
	}
	if ed.Selection.Len() != 0 {
		t.Error("Spawn changed the selection")
	}
	for _, o := range ed.Registry.Objects() {
		if o.Scale[1] < 2 || o.Scale[1] > 4 {
			t.Errorf("height %v outside [2,4]", o.Scale[1])
		}
		if !mgl32.FloatEqual(o.Position[1]-o.Scale[1]/2, 0) {
			t.Errorf("object not resting on origin plane: %v", o.Position)
		}
		if o.Color != RGB(1, 2, 3) {
			t.Errorf("color = %v", o.Color)
		}
	}
}

func TestSpawnClamps(t *testing.T) {
	ed, _, _ := newTestEditor()
	ids, _ := ed.Spawn(SpawnRequest{Count: MaxSpawn + 10}, rand.New(rand.NewSource(1)))
	if len(ids) != MaxSpawn {
		t.Errorf("spawned %d, want %d", len(ids), MaxSpawn)
	}
}
