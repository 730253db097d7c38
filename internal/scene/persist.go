package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultSceneFile is the file name used when saving without an explicit path.
const DefaultSceneFile = "scene.json"

// Document is the persisted form of a scene. Object ids are not stored.
type Document struct {
	Objects []DocObject `json:"objects"`
}

// DocObject is one persisted object. Mass is omitted for objects without physics.
type DocObject struct {
	Type     string     `json:"type"`
	Position [3]float32 `json:"position"`
	Rotation [3]float32 `json:"rotation"`
	Scale    [3]float32 `json:"scale"`
	Color    string     `json:"color"`
	Mass     float32    `json:"mass,omitempty"`
}

// LoadReport describes a completed load: how many objects were created and
// which entries were skipped (each skip wraps ErrUnknownKind).
type LoadReport struct {
	Loaded  int
	Skipped []error
}

// Snapshot builds the document for the registry in insertion order.
func Snapshot(reg *Registry) Document {
	doc := Document{Objects: make([]DocObject, 0, reg.Len())}
	for _, o := range reg.Objects() {
		doc.Objects = append(doc.Objects, DocObject{
			Type:     o.Kind.String(),
			Position: o.Position,
			Rotation: o.Rotation,
			Scale:    o.Scale,
			Color:    o.Color.Hex(),
			Mass:     o.Mass,
		})
	}
	return doc
}

// Save writes the registry as an indented JSON document.
func Save(reg *Registry, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Snapshot(reg)); err != nil {
		return fmt.Errorf("save scene: %w", err)
	}
	return nil
}

type pending struct {
	kind     Kind
	doc      DocObject
	color    *Color
	hasScale bool
}

// Load replaces the registry contents with the document read from r.
// The whole document is validated first: malformed JSON or a wrong shape
// returns a *LoadError and leaves the registry untouched. Then the registry
// is cleared once and every entry with a recognized kind is added; entries
// with unknown kinds are skipped and listed in the report.
func Load(reg *Registry, r io.Reader) (LoadReport, error) {
	var report LoadReport
	data, err := io.ReadAll(r)
	if err != nil {
		return report, &LoadError{Reason: "read document", Err: err}
	}
	var raw struct {
		Objects *[]json.RawMessage `json:"objects"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return report, &LoadError{Reason: "invalid JSON", Err: err}
	}
	if raw.Objects == nil {
		return report, &LoadError{Reason: `missing "objects" array`}
	}

	var valid []pending
	for i, msg := range *raw.Objects {
		var d DocObject
		if err := json.Unmarshal(msg, &d); err != nil {
			return report, &LoadError{Reason: fmt.Sprintf("object %d", i), Err: err}
		}
		var present struct {
			Scale *[3]float32 `json:"scale"`
		}
		_ = json.Unmarshal(msg, &present)
		p := pending{doc: d, hasScale: present.Scale != nil}
		if d.Color != "" {
			c, err := ParseColor(d.Color)
			if err != nil {
				return report, &LoadError{Reason: fmt.Sprintf("object %d", i), Err: err}
			}
			p.color = &c
		}
		k, err := ParseKind(d.Type)
		if err != nil {
			report.Skipped = append(report.Skipped, fmt.Errorf("object %d: %w", i, err))
			continue
		}
		p.kind = k
		valid = append(valid, p)
	}

	reg.Clear()
	for _, p := range valid {
		opts := Options{Position: (*mgl32.Vec3)(&p.doc.Position), Color: p.color}
		if p.doc.Mass > 0 {
			opts.Mass = Float(p.doc.Mass)
		}
		id, err := reg.Add(p.kind, opts)
		if err != nil {
			report.Skipped = append(report.Skipped, err)
			continue
		}
		scale := mgl32.Vec3(p.doc.Scale)
		if !p.hasScale {
			// a missing scale means the kind's default size
			scale = *reg.Defaults(p.kind).Size
		}
		reg.SetTransform(id, p.doc.Position, p.doc.Rotation, scale)
		report.Loaded++
	}
	return report, nil
}

// IsLoadError reports whether err is (or wraps) a *LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
