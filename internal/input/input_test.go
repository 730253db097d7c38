package input

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"corebell/internal/scene"
)

type nopMesh struct{ m scene.Material }

func (n *nopMesh) SetTransform(_, _, _ mgl32.Vec3) {}
func (n *nopMesh) Material() scene.Material        { return n.m }
func (n *nopMesh) SetMaterial(m scene.Material)    { n.m = m }

type nopRenderer struct{}

func (nopRenderer) CreateMesh(_ scene.Kind, m scene.Material) (scene.Mesh, error) {
	return &nopMesh{m: m}, nil
}
func (nopRenderer) RemoveMesh(scene.Mesh) {}

func TestParseChord(t *testing.T) {
	tests := []struct {
		in   string
		want Chord
	}{
		{"t", Chord{Key: "t"}},
		{"Ctrl+S", Chord{Key: "s", Ctrl: true}},
		{"cmd+o", Chord{Key: "o", Ctrl: true}},
		{"ctrl+shift+z", Chord{Key: "z", Ctrl: true, Shift: true}},
	}
	for _, tt := range tests {
		got, err := ParseChord(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseChord(%q) = %+v, %v", tt.in, got, err)
		}
		if back, _ := ParseChord(got.String()); back != got {
			t.Errorf("String() %q does not parse back", got.String())
		}
	}
	for _, bad := range []string{"", "ctrl+", "alt+x"} {
		if _, err := ParseChord(bad); err == nil {
			t.Errorf("ParseChord(%q): want error", bad)
		}
	}
}

func TestDefaultBindings(t *testing.T) {
	b := DefaultBindings()
	tests := []struct {
		chord string
		want  Action
	}{
		{"t", ActionTranslate},
		{"r", ActionRotate},
		{"s", ActionScale},
		{"delete", ActionDelete},
		{"escape", ActionTerminal},
		{"ctrl+s", ActionSave},
		{"ctrl+o", ActionOpen},
		{"ctrl+t", ActionNone},
	}
	for _, tt := range tests {
		c, _ := ParseChord(tt.chord)
		if got := b.Lookup(c); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.chord, got, tt.want)
		}
	}
}

func TestBind(t *testing.T) {
	b := DefaultBindings()
	if err := b.Bind("g", "translate"); err != nil {
		t.Fatal(err)
	}
	if err := b.Bind("t", "none"); err != nil {
		t.Fatal(err)
	}
	if b.Lookup(Chord{Key: "g"}) != ActionTranslate || b.Lookup(Chord{Key: "t"}) != ActionNone {
		t.Error("rebinding failed")
	}
	if err := b.Bind("x", "explode"); err == nil {
		t.Error("unknown action: want error")
	}
}

func TestDispatch(t *testing.T) {
	ed := scene.New(scene.Config{Renderer: nopRenderer{}})
	if !Dispatch(ed, ActionRotate, Hooks{}) || ed.Transform.Mode() != scene.ModeRotate {
		t.Errorf("mode = %v", ed.Transform.Mode())
	}

	id, _ := ed.AddByName("cube", scene.Options{})
	Dispatch(ed, ActionDelete, Hooks{})
	if ed.Registry.Has(id) || ed.Selection.Len() != 0 {
		t.Error("delete did not remove the selected object")
	}

	var saved bool
	if !Dispatch(ed, ActionSave, Hooks{Save: func() { saved = true }}) || !saved {
		t.Error("save hook not called")
	}
	if Dispatch(ed, ActionOpen, Hooks{}) {
		t.Error("open without hook reported handled")
	}
	if Dispatch(ed, ActionNone, Hooks{}) {
		t.Error("ActionNone reported handled")
	}
}
