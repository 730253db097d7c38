// Package report loads scenes without a window and summarizes them.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"corebell/internal/archive"
	"corebell/internal/primitives"
	"corebell/internal/scene"
)

type headlessMesh struct{ m scene.Material }

func (h *headlessMesh) SetTransform(_, _, _ mgl32.Vec3) {}
func (h *headlessMesh) Material() scene.Material        { return h.m }
func (h *headlessMesh) SetMaterial(m scene.Material)    { h.m = m }

// Headless is a scene.Renderer that draws nothing.
type Headless struct{}

func (Headless) CreateMesh(_ scene.Kind, m scene.Material) (scene.Mesh, error) {
	return &headlessMesh{m: m}, nil
}
func (Headless) RemoveMesh(scene.Mesh) {}

// Summary is what Check found in a scene.
type Summary struct {
	Path    string
	Report  scene.LoadReport
	Counts  map[scene.Kind]int
	Objects []scene.Object
}

// Load reads a scene document or bundle into a headless editor. Bundles are
// extracted to a temporary directory that is removed before returning.
func Load(path string) (Summary, error) {
	ed := scene.New(scene.Config{Renderer: Headless{}})
	sceneFile := path
	if archive.IsBundle(path) {
		dir, err := os.MkdirTemp("", "corebell-check-")
		if err != nil {
			return Summary{}, err
		}
		defer os.RemoveAll(dir)
		b, err := archive.Open(path, dir)
		if err != nil {
			return Summary{}, err
		}
		if b.PrimitivesDir != "" {
			for _, err := range primitives.Apply(ed.Registry, b.PrimitivesDir) {
				ed.Log().Warn("%v", err)
			}
		}
		sceneFile = b.SceneFile
	}
	rep, err := ed.LoadFile(sceneFile)
	if err != nil {
		return Summary{}, err
	}
	s := Summary{Path: path, Report: rep, Counts: map[scene.Kind]int{}, Objects: ed.Registry.Objects()}
	for _, o := range s.Objects {
		s.Counts[o.Kind]++
	}
	return s, nil
}

// Write prints the per-kind counts and skipped entries.
func (s Summary) Write(w io.Writer) {
	fmt.Fprintf(w, "%s: %d objects loaded, %d skipped\n", s.Path, s.Report.Loaded, len(s.Report.Skipped))
	kinds := make([]scene.Kind, 0, len(s.Counts))
	for k := range s.Counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, k := range kinds {
		fmt.Fprintf(w, "  %-14s %d\n", k, s.Counts[k])
	}
	for _, err := range s.Report.Skipped {
		fmt.Fprintf(w, "  skipped: %v\n", err)
	}
}

// Check loads path and writes its summary to w.
func Check(w io.Writer, path string) error {
	s, err := Load(path)
	if err != nil {
		return err
	}
	s.Write(w)
	return nil
}
