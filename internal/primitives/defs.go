package primitives

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"corebell/internal/scene"
)

// Def is the YAML definition of a primitive's defaults (e.g. assets/primitives/cube.yaml).
// Unset fields keep the built-in default.
type Def struct {
	Type     string      `yaml:"type"`
	Size     *[3]float32 `yaml:"size,omitempty"`
	Position *[3]float32 `yaml:"position,omitempty"`
	Color    string      `yaml:"color,omitempty"`
	Mass     *float32    `yaml:"mass,omitempty"`
}

// Decode reads one definition. Unknown keys are rejected.
func Decode(r io.Reader) (Def, error) {
	var d Def
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return d, nil
		}
		return Def{}, err
	}
	return d, nil
}

// Options converts the definition into registry defaults.
func (d Def) Options() (scene.Kind, scene.Options, error) {
	k, err := scene.ParseKind(d.Type)
	if err != nil {
		return 0, scene.Options{}, err
	}
	var o scene.Options
	if d.Size != nil {
		v := mgl32.Vec3(*d.Size)
		o.Size = &v
	}
	if d.Position != nil {
		v := mgl32.Vec3(*d.Position)
		o.Position = &v
	}
	if d.Color != "" {
		c, err := scene.ParseColor(d.Color)
		if err != nil {
			return 0, scene.Options{}, err
		}
		o.Color = &c
	}
	if d.Mass != nil {
		o.Mass = scene.Float(*d.Mass)
	}
	return k, o, nil
}

// LoadFile decodes one definition file. A missing type is taken from the file name.
func LoadFile(path string) (scene.Kind, scene.Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, scene.Options{}, err
	}
	defer f.Close()
	d, err := Decode(f)
	if err != nil {
		return 0, scene.Options{}, fmt.Errorf("%s: %w", path, err)
	}
	if d.Type == "" {
		d.Type = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	k, o, err := d.Options()
	if err != nil {
		return 0, scene.Options{}, fmt.Errorf("%s: %w", path, err)
	}
	return k, o, nil
}

// LoadDir reads every *.yaml and *.yml file in dir. A missing directory yields
// no definitions. Bad files are reported and skipped; the rest still load.
func LoadDir(dir string) (map[scene.Kind]scene.Options, []error) {
	defs := make(map[scene.Kind]scene.Options)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defs, nil
		}
		return defs, []error{err}
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	var errs []error
	for _, n := range names {
		k, o, err := LoadFile(filepath.Join(dir, n))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		defs[k] = o
	}
	return defs, errs
}

// Apply installs the definitions in dir as reg's defaults.
func Apply(reg *scene.Registry, dir string) []error {
	defs, errs := LoadDir(dir)
	for k, o := range defs {
		reg.SetDefaults(k, o)
	}
	return errs
}
