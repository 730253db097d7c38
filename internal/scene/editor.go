package scene

import (
	"fmt"
	"io"
	"os"
	"strings"

	"corebell/internal/logger"
)

// Config wires an Editor to its collaborators. Only Renderer is required.
type Config struct {
	Renderer  Renderer
	Physics   Physics
	Gizmo     Gizmo
	Highlight *Material
	Log       *logger.Logger
	SceneFile string
}

// Editor owns the registry, the selection and the transform state machine.
// All methods must be called from the frame loop goroutine; other goroutines
// hand work over with Post.
type Editor struct {
	Registry  *Registry
	Selection *Selection
	Transform *Transform

	log       *logger.Logger
	physics   Physics
	simulate  bool
	sceneFile string
	posts     chan func()
}

// New builds an Editor. A nil Log keeps log lines in memory only.
func New(cfg Config) *Editor {
	hl := DefaultHighlight
	if cfg.Highlight != nil {
		hl = *cfg.Highlight
	}
	log := cfg.Log
	if log == nil {
		log = logger.New("")
	}
	file := cfg.SceneFile
	if file == "" {
		file = DefaultSceneFile
	}
	reg := NewRegistry(cfg.Renderer, cfg.Physics)
	sel := NewSelection(reg, hl)
	return &Editor{
		Registry:  reg,
		Selection: sel,
		Transform: NewTransform(reg, sel, cfg.Gizmo),
		log:       log,
		physics:   cfg.Physics,
		simulate:  cfg.Physics != nil,
		sceneFile: file,
		posts:     make(chan func(), 64),
	}
}

// Log returns the editor's logger.
func (e *Editor) Log() *logger.Logger {
	return e.log
}

// SceneFile is the path used by SaveFile and LoadFile when none is given.
func (e *Editor) SceneFile() string {
	return e.sceneFile
}

// AddByName parses name as a primitive kind and adds it.
func (e *Editor) AddByName(name string, o Options) (ID, error) {
	k, err := ParseKind(name)
	if err != nil {
		return NilID, err
	}
	return e.Add(k, o)
}

// Add creates an object and makes it the selection.
func (e *Editor) Add(k Kind, o Options) (ID, error) {
	id, err := e.Registry.Add(k, o)
	if err != nil {
		e.log.Error("add %s: %v", k, err)
		return NilID, err
	}
	e.Selection.Select(id)
	e.log.Info("added %s %s", k, id.Short())
	return id, nil
}

// Remove deletes id; it also leaves the selection.
func (e *Editor) Remove(id ID) bool {
	if !e.Registry.Has(id) {
		return false
	}
	e.Registry.Remove(id)
	e.log.Info("removed %s", id.Short())
	return true
}

// RemoveSelected deletes every selected object and returns how many were removed.
func (e *Editor) RemoveSelected() int {
	n := 0
	for _, id := range e.Selection.IDs() {
		if e.Remove(id) {
			n++
		}
	}
	return n
}

// Click applies a pick result. A hit selects the object (adding to the
// selection with shift); a miss without shift deselects everything.
func (e *Editor) Click(id ID, hit, shift bool) {
	switch {
	case hit && shift:
		e.Selection.ToggleAdd(id)
	case hit:
		e.Selection.Select(id)
	case !shift:
		e.Selection.Deselect()
	}
}

// SetMode switches the transform mode.
func (e *Editor) SetMode(m Mode) {
	e.Transform.SetMode(m)
	e.log.Info("mode %s", m)
}

// Lookup resolves a terminal reference. "selected" (or "sel") names the
// primary selection; anything else goes to Registry.Lookup.
func (e *Editor) Lookup(ref string) (ID, bool) {
	switch strings.ToLower(strings.TrimSpace(ref)) {
	case "selected", "sel":
		return e.Selection.Primary()
	}
	return e.Registry.Lookup(ref)
}

// SetSimulate turns the physics step on or off. It has no effect without a physics collaborator.
func (e *Editor) SetSimulate(on bool) {
	e.simulate = on && e.physics != nil
}

// Simulating reports whether Step advances physics.
func (e *Editor) Simulating() bool {
	return e.simulate
}

// Save writes the scene to w.
func (e *Editor) Save(w io.Writer) error {
	return Save(e.Registry, w)
}

// Load replaces the scene with the document read from r.
func (e *Editor) Load(r io.Reader) (LoadReport, error) {
	rep, err := Load(e.Registry, r)
	if err != nil {
		e.log.Error("%v", err)
		return rep, err
	}
	for _, s := range rep.Skipped {
		e.log.Warn("load: skipped %v", s)
	}
	e.log.Info("loaded %d objects", rep.Loaded)
	return rep, nil
}

// SaveFile writes the scene to path, or to SceneFile when path is empty.
func (e *Editor) SaveFile(path string) (string, error) {
	if path == "" {
		path = e.sceneFile
	}
	f, err := os.Create(path)
	if err != nil {
		return path, fmt.Errorf("save scene: %w", err)
	}
	if err := e.Save(f); err != nil {
		f.Close()
		return path, err
	}
	if err := f.Close(); err != nil {
		return path, fmt.Errorf("save scene: %w", err)
	}
	e.log.Info("saved %d objects to %s", e.Registry.Len(), path)
	return path, nil
}

// LoadFile reads the scene from path, or from SceneFile when path is empty.
func (e *Editor) LoadFile(path string) (LoadReport, error) {
	if path == "" {
		path = e.sceneFile
	}
	f, err := os.Open(path)
	if err != nil {
		err = &LoadError{Reason: "open " + path, Err: err}
		e.log.Error("%v", err)
		return LoadReport{}, err
	}
	defer f.Close()
	return e.Load(f)
}

// Post queues fn to run on the frame loop during the next Step. It is safe
// to call from any goroutine.
func (e *Editor) Post(fn func()) {
	e.posts <- fn
}

// Step runs one frame of editor work: queued posts, then the physics step,
// then body poses are copied back onto objects and meshes.
func (e *Editor) Step(dt float32) {
	e.drain()
	if e.simulate {
		e.physics.Step(dt)
		e.Registry.SyncPoses()
	}
}

func (e *Editor) drain() {
	for {
		select {
		case fn := <-e.posts:
			fn()
		default:
			return
		}
	}
}
