package primitives

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"corebell/internal/scene"
)

func TestDecode(t *testing.T) {
	d, err := Decode(strings.NewReader("type: sphere\nsize: [2, 2, 2]\ncolor: \"#ff8800\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	k, o, err := d.Options()
	if err != nil {
		t.Fatal(err)
	}
	if k != scene.KindSphere {
		t.Errorf("kind = %s", k)
	}
	if *o.Size != (mgl32.Vec3{2, 2, 2}) || *o.Color != scene.RGB(0xff, 0x88, 0) {
		t.Errorf("options = %+v", o)
	}
	if o.Position != nil || o.Mass != nil {
		t.Error("unset fields were filled")
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	if _, err := Decode(strings.NewReader("type: cube\nradius: 3\n")); err == nil {
		t.Error("want error for unknown key")
	}
}

func TestDefOptionsErrors(t *testing.T) {
	if _, _, err := (Def{Type: "teapot"}).Options(); !errors.Is(err, scene.ErrUnknownKind) {
		t.Errorf("err = %v, want ErrUnknownKind", err)
	}
	if _, _, err := (Def{Type: "cube", Color: "blurple"}).Options(); err == nil {
		t.Error("want error for bad color")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write("cube.yaml", "color: \"#123456\"\n")
	write("cone.yml", "type: cone\nmass: 2\n")
	write("bad.yaml", "type: cube\nwat: 1\n")
	write("notes.txt", "ignored")

	defs, errs := LoadDir(dir)
	if len(errs) != 1 {
		t.Errorf("errs = %v, want 1", errs)
	}
	if len(defs) != 2 {
		t.Fatalf("defs = %v, want cube and cone", defs)
	}
	if *defs[scene.KindCube].Color != scene.RGB(0x12, 0x34, 0x56) {
		t.Errorf("cube color = %v", *defs[scene.KindCube].Color)
	}
	if *defs[scene.KindCone].Mass != 2 {
		t.Errorf("cone mass = %v", *defs[scene.KindCone].Mass)
	}
}

func TestLoadDirMissing(t *testing.T) {
	defs, errs := LoadDir(filepath.Join(t.TempDir(), "nope"))
	if len(defs) != 0 || errs != nil {
		t.Errorf("LoadDir(missing) = %v, %v", defs, errs)
	}
}

func TestShippedDefinitions(t *testing.T) {
	defs, errs := LoadDir(filepath.Join("..", "..", "assets", "primitives"))
	if len(errs) != 0 {
		t.Fatalf("shipped definitions: %v", errs)
	}
	for _, k := range scene.Kinds() {
		if _, ok := defs[k]; !ok {
			t.Errorf("no shipped definition for %s", k)
		}
	}
}
