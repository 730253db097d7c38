package debug

import (
	"runtime"
	"strings"
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

func TestLinesDefault(t *testing.T) {
	ed := scene.New(scene.Config{Renderer: nopRenderer{}})
	ed.AddByName("cube", scene.Options{})
	d := New()
	lines := d.Lines(60, ed)
	if len(lines) != 1 || lines[0] != "Objects: 1  Selected: 1  Mode: translate  Physics: paused" {
		t.Errorf("lines = %q", lines)
	}
}

func TestLinesCached(t *testing.T) {
	d := New()
	d.ShowScene = false
	d.SetShowFPS(true)
	d.SetShowMemAlloc(true)
	reads := 0
	d.readMem = func(m *runtime.MemStats) {
		reads++
		m.Alloc = 3 * 1024 * 1024
	}
	first := d.Lines(60, nil)
	if strings.Join(first, "|") != "FPS: 60|Mem: 3.00 MiB" {
		t.Errorf("first = %q", first)
	}
	if got := d.Lines(10, nil); got[0] != "FPS: 60" {
		t.Errorf("FPS refreshed before the interval: %q", got[0])
	}
	for i := 0; i < updateInterval; i++ {
		d.Lines(10, nil)
	}
	if got := d.Lines(10, nil); got[0] != "FPS: 10" {
		t.Errorf("FPS not refreshed: %q", got[0])
	}
	if reads != 2 {
		t.Errorf("memstats read %d times, want 2", reads)
	}
}
