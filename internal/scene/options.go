package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jinzhu/copier"
)

// Options are the recognized overrides for a new object. A nil field means
// "use the kind's default". Size becomes the object's initial scale since
// every primitive mesh is unit sized.
type Options struct {
	Size     *mgl32.Vec3 `json:"size,omitempty" yaml:"size,omitempty"`
	Position *mgl32.Vec3 `json:"position,omitempty" yaml:"position,omitempty"`
	Color    *Color      `json:"color,omitempty" yaml:"color,omitempty"`
	Mass     *float32    `json:"mass,omitempty" yaml:"mass,omitempty"`
}

// Vec3 is a helper for building option pointers inline.
func Vec3(x, y, z float32) *mgl32.Vec3 {
	v := mgl32.Vec3{x, y, z}
	return &v
}

// ColorPtr is a helper for building option pointers inline.
func ColorPtr(c Color) *Color {
	return &c
}

// Float is a helper for building option pointers inline.
func Float(f float32) *float32 {
	return &f
}

var (
	defaultSpawn  = mgl32.Vec3{0, 1, 0}
	defaultColors = [kindCount]Color{
		KindCube:         RGB(0x00, 0xff, 0x00),
		KindSphere:       RGB(0xff, 0x00, 0x00),
		KindCylinder:     RGB(0x00, 0x00, 0xff),
		KindCone:         RGB(0xff, 0xff, 0x00),
		KindTorus:        RGB(0xff, 0x00, 0xff),
		KindPlane:        RGB(0x80, 0x80, 0x80),
		KindIcosahedron:  RGB(0x00, 0x7b, 0xff),
		KindDodecahedron: RGB(0x00, 0x7b, 0xff),
		KindTetrahedron:  RGB(0x00, 0x7b, 0xff),
	}
)

// DefaultOptions returns the built-in defaults for k with every field set.
func DefaultOptions(k Kind) Options {
	size := mgl32.Vec3{1, 1, 1}
	if k == KindPlane {
		size = mgl32.Vec3{2, 1, 2}
	}
	col := RGB(0x00, 0x7b, 0xff)
	if k.Valid() {
		col = defaultColors[k]
	}
	pos := defaultSpawn
	return Options{
		Size:     &size,
		Position: &pos,
		Color:    &col,
		Mass:     Float(0),
	}
}

// clone copies every pointer so the result shares no storage with o.
func (o Options) clone() Options {
	var out Options
	if o.Size != nil {
		v := *o.Size
		out.Size = &v
	}
	if o.Position != nil {
		v := *o.Position
		out.Position = &v
	}
	if o.Color != nil {
		v := *o.Color
		out.Color = &v
	}
	if o.Mass != nil {
		v := *o.Mass
		out.Mass = &v
	}
	return out
}

// Over returns base with every field set in o taking precedence.
func (o Options) Over(base Options) Options {
	out := base.clone()
	src := o.clone()
	if err := copier.CopyWithOption(&out, &src, copier.Option{IgnoreEmpty: true}); err != nil {
		// copier only fails on mismatched kinds; both sides are Options.
		panic(fmt.Sprintf("scene: merge options: %v", err))
	}
	return out
}

// DecodeOptions decodes a JSON object of options. Fields other than size,
// position, color and mass are rejected with ErrUnknownOption.
func DecodeOptions(data []byte) (Options, error) {
	var o Options
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&o); err != nil {
		if strings.HasPrefix(err.Error(), "json: unknown field") {
			return Options{}, fmt.Errorf("%w: %s", ErrUnknownOption, strings.TrimPrefix(err.Error(), "json: unknown field "))
		}
		return Options{}, fmt.Errorf("decode options: %w", err)
	}
	return o, nil
}

// OptionsFromMap decodes options from a loosely typed map such as an LLM action payload.
// Keys listed in ignore (e.g. "action", "type") are dropped before strict decoding.
func OptionsFromMap(m map[string]interface{}, ignore ...string) (Options, error) {
	filtered := make(map[string]interface{}, len(m))
	for k, v := range m {
		filtered[k] = v
	}
	for _, k := range ignore {
		delete(filtered, k)
	}
	data, err := json.Marshal(filtered)
	if err != nil {
		return Options{}, fmt.Errorf("decode options: %w", err)
	}
	return DecodeOptions(data)
}
