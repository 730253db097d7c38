package commands

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"corebell/internal/archive"
	"corebell/internal/download"
	"corebell/internal/mapgen"
	"corebell/internal/primitives"
	"corebell/internal/scene"
)

// Default directories for Dirs fields left empty.
const (
	DefaultDownloadDir = "scenes/downloaded"
	DefaultBundleDir   = "scenes/bundles"
)

// Dirs are the filesystem locations the editor commands use. Primitives is
// the kind-defaults directory packed by export; empty skips it.
type Dirs struct {
	Download   string
	Bundles    string
	Primitives string
}

// vec3Value is a flag.Value for "x,y,z".
type vec3Value struct {
	v   mgl32.Vec3
	set bool
}

func (f *vec3Value) String() string {
	if !f.set {
		return ""
	}
	return fmt.Sprintf("%g,%g,%g", f.v[0], f.v[1], f.v[2])
}

// Set parses "x,y,z". The empty string clears the value.
func (f *vec3Value) Set(s string) error {
	if s == "" {
		*f = vec3Value{}
		return nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return fmt.Errorf("expected x,y,z, got %q", s)
	}
	for i, p := range parts {
		n, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return fmt.Errorf("expected x,y,z, got %q", s)
		}
		f.v[i] = float32(n)
	}
	f.set = true
	return nil
}

func (f *vec3Value) ptr() *mgl32.Vec3 {
	if !f.set {
		return nil
	}
	v := f.v
	return &v
}

// RegisterEditor registers the scene editing commands: add, list, select,
// deselect, delete, mode, nudge, color, save, load, export, clear, physics, sim and terrain.
func RegisterEditor(r *Registry, ed *scene.Editor, dirs Dirs) {
	if dirs.Download == "" {
		dirs.Download = DefaultDownloadDir
	}
	if dirs.Bundles == "" {
		dirs.Bundles = DefaultBundleDir
	}
	log := ed.Log()

	// loadPath loads a scene file, or a bundle's primitives and scene.
	loadPath := func(path string) error {
		if archive.IsBundle(path) {
			b, err := archive.Open(path, dirs.Bundles)
			if err != nil {
				return err
			}
			if b.PrimitivesDir != "" {
				for _, err := range primitives.Apply(ed.Registry, b.PrimitivesDir) {
					log.Warn("%v", err)
				}
			}
			path = b.SceneFile
		}
		_, err := ed.LoadFile(path)
		return err
	}

	addFS := NewFlagSet("add")
	var pos, size vec3Value
	addFS.Var(&pos, "pos", "position x,y,z")
	addFS.Var(&size, "size", "size x,y,z")
	color := addFS.String("color", "", "color #rrggbb")
	mass := addFS.Float64("mass", -1, "mass (0 = static)")
	count := addFS.Int("count", 1, "number of objects")
	pattern := addFS.String("pattern", "grid", "grid, line or random")
	spacing := addFS.Float64("spacing", 2, "distance between objects")
	r.Register("add", "add <kind|random> [--pos x,y,z] [--size x,y,z] [--color #hex] [--mass m] [--count n --pattern p]", addFS, func() error {
		if addFS.NArg() != 1 {
			return fmt.Errorf("usage: cmd add <%s|random>", strings.Join(scene.KindNames(), "|"))
		}
		o := scene.Options{Position: pos.ptr(), Size: size.ptr()}
		if *color != "" {
			c, err := scene.ParseColor(*color)
			if err != nil {
				return err
			}
			o.Color = &c
		}
		if *mass >= 0 {
			o.Mass = scene.Float(float32(*mass))
		}
		name := addFS.Arg(0)
		if *count <= 1 && name != "random" {
			_, err := ed.AddByName(name, o)
			return err
		}
		p, err := scene.ParsePattern(*pattern)
		if err != nil {
			return err
		}
		req := scene.SpawnRequest{Count: *count, Pattern: p, Spacing: float32(*spacing), Options: o}
		if o.Position != nil {
			req.Origin = *o.Position
		}
		if name != "random" {
			k, err := scene.ParseKind(name)
			if err != nil {
				return err
			}
			req.Kinds = []scene.Kind{k}
		}
		_, err = ed.Spawn(req, nil)
		return err
	})

	r.Register("list", "list objects with their index and id", nil, func() error {
		objs := ed.Registry.Objects()
		if len(objs) == 0 {
			log.Info("scene is empty")
			return nil
		}
		for i, o := range objs {
			mark := " "
			if ed.Selection.Contains(o.ID) {
				mark = "*"
			}
			log.Info("%s%d %s %s pos(%.2f %.2f %.2f) %s", mark, i+1, o.ID.Short(), o.Kind, o.Position[0], o.Position[1], o.Position[2], o.Color.Hex())
		}
		return nil
	})

	selFS := NewFlagSet("select")
	add := selFS.Bool("add", false, "add to the selection")
	r.Register("select", "select <index|id> [--add]", selFS, func() error {
		if selFS.NArg() != 1 {
			return fmt.Errorf("usage: cmd select <index|id> [--add]")
		}
		id, ok := ed.Lookup(selFS.Arg(0))
		if !ok {
			return fmt.Errorf("no object %q", selFS.Arg(0))
		}
		if *add {
			ed.Selection.ToggleAdd(id)
		} else {
			ed.Selection.Select(id)
		}
		return nil
	})

	r.Register("deselect", "clear the selection", nil, func() error {
		ed.Selection.Deselect()
		return nil
	})

	delFS := NewFlagSet("delete")
	r.Register("delete", "delete [selected|index|id|random]", delFS, func() error {
		ref := "selected"
		if delFS.NArg() > 0 {
			ref = delFS.Arg(0)
		}
		switch ref {
		case "selected", "sel":
			n := ed.RemoveSelected()
			if n == 0 {
				return fmt.Errorf("nothing selected")
			}
			return nil
		case "random":
			ids := ed.Registry.IDs()
			if len(ids) == 0 {
				return fmt.Errorf("scene is empty")
			}
			ed.Remove(ids[rand.Intn(len(ids))])
			return nil
		}
		id, ok := ed.Lookup(ref)
		if !ok {
			return fmt.Errorf("no object %q", ref)
		}
		ed.Remove(id)
		return nil
	})

	modeFS := NewFlagSet("mode")
	r.Register("mode", "mode <translate|rotate|scale>", modeFS, func() error {
		if modeFS.NArg() != 1 {
			return fmt.Errorf("usage: cmd mode <translate|rotate|scale> (current: %s)", ed.Transform.Mode())
		}
		m, err := scene.ParseMode(modeFS.Arg(0))
		if err != nil {
			return err
		}
		ed.SetMode(m)
		return nil
	})

	nudgeFS := NewFlagSet("nudge")
	r.Register("nudge", "nudge <x|y|z> <amount>: apply the current mode to the selection", nudgeFS, func() error {
		if nudgeFS.NArg() != 2 {
			return fmt.Errorf("usage: cmd nudge <x|y|z> <amount>")
		}
		axis := strings.Index("xyz", strings.ToLower(nudgeFS.Arg(0)))
		if axis < 0 || len(nudgeFS.Arg(0)) != 1 {
			return fmt.Errorf("axis must be x, y or z")
		}
		amount, err := strconv.ParseFloat(nudgeFS.Arg(1), 32)
		if err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		if ed.Transform.Nudge(axis, float32(amount)) == 0 {
			return fmt.Errorf("nothing selected")
		}
		return nil
	})

	colorFS := NewFlagSet("color")
	r.Register("color", "color <#hex>: recolor the selection", colorFS, func() error {
		if colorFS.NArg() != 1 {
			return fmt.Errorf("usage: cmd color <#rrggbb>")
		}
		c, err := scene.ParseColor(colorFS.Arg(0))
		if err != nil {
			return err
		}
		ids := ed.Selection.IDs()
		if len(ids) == 0 {
			return fmt.Errorf("nothing selected")
		}
		for _, id := range ids {
			ed.Registry.SetColor(id, c)
		}
		return nil
	})

	saveFS := NewFlagSet("save")
	r.Register("save", "save [path]: write the scene (default "+ed.SceneFile()+")", saveFS, func() error {
		_, err := ed.SaveFile(saveFS.Arg(0))
		return err
	})

	loadFS := NewFlagSet("load")
	r.Register("load", "load [path|url]: replace the scene (.json or .zip bundle)", loadFS, func() error {
		src := loadFS.Arg(0)
		if !download.IsURL(src) {
			return loadPath(src)
		}
		log.Info("downloading %s", src)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()
			path, err := download.Download(ctx, src, dirs.Download)
			ed.Post(func() {
				if err == nil {
					err = loadPath(path)
				}
				if err != nil {
					log.Error("%v", err)
				}
			})
		}()
		return nil
	})

	exportFS := NewFlagSet("export")
	r.Register("export", "export <file.zip>: save the scene and kind defaults as a bundle", exportFS, func() error {
		if exportFS.NArg() != 1 || !archive.IsBundle(exportFS.Arg(0)) {
			return fmt.Errorf("usage: cmd export <file.zip>")
		}
		tmp, err := os.CreateTemp("", "corebell-*.json")
		if err != nil {
			return err
		}
		defer os.Remove(tmp.Name())
		err = ed.Save(tmp)
		if cerr := tmp.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		out, err := os.Create(exportFS.Arg(0))
		if err != nil {
			return err
		}
		if err := archive.Pack(out, tmp.Name(), dirs.Primitives); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
		log.Info("exported %d objects to %s", ed.Registry.Len(), exportFS.Arg(0))
		return nil
	})

	r.Register("clear", "remove every object", nil, func() error {
		n := ed.Registry.Len()
		ed.Registry.Clear()
		log.Info("cleared %d objects", n)
		return nil
	})

	physFS := NewFlagSet("physics")
	r.Register("physics", "physics <on|off>: give the selection a body or remove it", physFS, func() error {
		if physFS.NArg() != 1 {
			return fmt.Errorf("usage: cmd physics <on|off>")
		}
		on, err := parseBool(physFS.Arg(0))
		if err != nil {
			return err
		}
		ids := ed.Selection.IDs()
		if len(ids) == 0 {
			return fmt.Errorf("nothing selected")
		}
		for _, id := range ids {
			ed.Registry.SetPhysics(id, on)
		}
		return nil
	})

	simFS := NewFlagSet("sim")
	r.Register("sim", "sim <on|off>: run or pause the physics step", simFS, func() error {
		if simFS.NArg() != 1 {
			return fmt.Errorf("usage: cmd sim <on|off> (currently %v)", ed.Simulating())
		}
		on, err := parseBool(simFS.Arg(0))
		if err != nil {
			return err
		}
		ed.SetSimulate(on)
		if on && !ed.Simulating() {
			return fmt.Errorf("physics is disabled")
		}
		return nil
	})

	terrFS := NewFlagSet("terrain")
	tsize := terrFS.Int("size", 16, "tiles per side")
	theight := terrFS.Float64("height", 3, "maximum height")
	tseed := terrFS.Int64("seed", 0, "noise seed (0 = random)")
	timage := terrFS.String("image", "", "grayscale heightmap image instead of noise")
	r.Register("terrain", "terrain [--size n] [--height h] [--seed s] [--image file]: build a height field of cubes", terrFS, func() error {
		if *tsize < 1 || *tsize > 64 {
			return fmt.Errorf("size must be between 1 and 64")
		}
		opts := mapgen.DefaultOptions()
		opts.Width, opts.Depth = *tsize, *tsize
		opts.HeightScale = float32(*theight)
		opts.Seed = *tseed
		tiles := mapgen.Tiles(opts)
		if *timage != "" {
			img, err := mapgen.OpenHeightmap(*timage)
			if err != nil {
				return err
			}
			tiles = mapgen.HeightmapTiles(img, opts)
		}
		ids, err := mapgen.BuildTiles(ed.Registry, tiles)
		log.Info("terrain: %d tiles", len(ids))
		return err
	})

	r.Register("help", "list commands", nil, func() error {
		for _, line := range r.Help() {
			log.Info("%s", line)
		}
		return nil
	})
}
