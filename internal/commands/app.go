package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"corebell/internal/logger"
)

// ModelExts are the 3D model formats model-import accepts.
var ModelExts = []string{".gltf", ".glb", ".obj", ".iqm", ".vox", ".m3d"}

// AppHooks connect the application commands to the window, overlays and services.
// A nil hook leaves its command unregistered.
type AppHooks struct {
	Grid       func(show bool)
	FPS        func(show bool)
	MemAlloc   func(show bool)
	Fullscreen func(on bool)
	Model      func() string
	SetModel   func(name string) error
	Mood       func(mood string) error
	Font       func(name string) error

	// ImportModel shows a model file at a position and uniform scale.
	// Imported models are reference geometry: not objects, never saved.
	ImportModel  func(path string, at mgl32.Vec3, scale float32) error
	ClearImports func() int
}

// RegisterApp registers grid, fps, memalloc, window, model, mood, font and model-import.
func RegisterApp(r *Registry, log *logger.Logger, h AppHooks) {
	toggle(r, "grid", "show or hide the editor grid", h.Grid)
	toggle(r, "fps", "show or hide the FPS counter", h.FPS)
	toggle(r, "memalloc", "show or hide heap usage", h.MemAlloc)

	if h.Fullscreen != nil {
		fs := NewFlagSet("window")
		full := fs.Bool("fullscreen", false, "switch to fullscreen")
		windowed := fs.Bool("windowed", false, "switch to a window")
		r.Register("window", "window --fullscreen|--windowed", fs, func() error {
			switch {
			case *full == *windowed:
				return fmt.Errorf("usage: cmd window --fullscreen|--windowed")
			case *full:
				h.Fullscreen(true)
			default:
				h.Fullscreen(false)
			}
			return nil
		})
	}

	if h.Model != nil && h.SetModel != nil {
		fs := NewFlagSet("model")
		r.Register("model", "model [name]: show or set the AI model", fs, func() error {
			if fs.NArg() == 0 {
				log.Info("model: %s", h.Model())
				return nil
			}
			if err := h.SetModel(fs.Arg(0)); err != nil {
				return err
			}
			log.Info("model set to %s", fs.Arg(0))
			return nil
		})
	}

	if h.Mood != nil {
		fs := NewFlagSet("mood")
		r.Register("mood", "mood <happy|calm|energetic>: recommend music", fs, func() error {
			if fs.NArg() != 1 {
				return fmt.Errorf("usage: cmd mood <happy|calm|energetic>")
			}
			return h.Mood(fs.Arg(0))
		})
	}

	if h.Font != nil {
		fs := NewFlagSet("font")
		r.Register("font", "font <name|path>: change the overlay font", fs, func() error {
			if fs.NArg() == 0 {
				return fmt.Errorf("usage: cmd font <name|path>")
			}
			return h.Font(strings.Join(fs.Args(), " "))
		})
	}

	if h.ImportModel != nil && h.ClearImports != nil {
		fs := NewFlagSet("model-import")
		var at vec3Value
		fs.Var(&at, "at", "position x,y,z")
		scale := fs.Float64("scale", 1, "uniform scale")
		clearAll := fs.Bool("clear", false, "remove every imported model")
		r.Register("model-import", "model-import <file.gltf|glb|obj> [--at x,y,z] [--scale s] | --clear", fs, func() error {
			if *clearAll {
				log.Info("removed %d imported models", h.ClearImports())
				return nil
			}
			if fs.NArg() != 1 {
				return fmt.Errorf("usage: cmd model-import <file> [--at x,y,z] [--scale s]")
			}
			path := fs.Arg(0)
			if !isModelFile(path) {
				return fmt.Errorf("%s: unsupported model format (use %s)", path, strings.Join(ModelExts, ", "))
			}
			if *scale <= 0 {
				return fmt.Errorf("scale must be positive")
			}
			if err := h.ImportModel(path, at.v, float32(*scale)); err != nil {
				return err
			}
			log.Info("imported %s", filepath.Base(path))
			return nil
		})
	}
}

func isModelFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range ModelExts {
		if ext == e {
			return true
		}
	}
	return false
}

// toggle registers a --show/--hide command.
func toggle(r *Registry, name, summary string, set func(bool)) {
	if set == nil {
		return
	}
	fs := NewFlagSet(name)
	show := fs.Bool("show", false, "show")
	hide := fs.Bool("hide", false, "hide")
	r.Register(name, name+" --show|--hide: "+summary, fs, func() error {
		if *show == *hide {
			return fmt.Errorf("usage: cmd %s --show|--hide", name)
		}
		set(*show)
		return nil
	})
}
