package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

type entry struct {
	obj  Object
	mesh Mesh
	body Body
}

// Registry tracks the objects of the current scene in insertion order.
// Every entry has a live mesh; removing an entry releases its mesh and body
// and notifies removal listeners before Remove returns.
type Registry struct {
	renderer Renderer
	physics  Physics
	defaults map[Kind]Options
	order    []ID
	entries  map[ID]*entry
	onRemove []func(ID)
	// restyle lets the selection keep a highlighted mesh highlighted when its color changes.
	restyle func(ID, Material) bool
}

// NewRegistry returns an empty registry. physics may be nil, in which case no bodies are created.
func NewRegistry(r Renderer, p Physics) *Registry {
	return &Registry{
		renderer: r,
		physics:  p,
		defaults: make(map[Kind]Options),
		entries:  make(map[ID]*entry),
	}
}

// SetDefaults overrides the built-in defaults for k. Unset fields in o keep the built-in value.
func (r *Registry) SetDefaults(k Kind, o Options) {
	r.defaults[k] = o.Over(DefaultOptions(k))
}

// Defaults returns the effective defaults for k.
func (r *Registry) Defaults(k Kind) Options {
	if d, ok := r.defaults[k]; ok {
		return d.clone()
	}
	return DefaultOptions(k)
}

// OnRemove registers fn to run synchronously whenever an object is removed.
func (r *Registry) OnRemove(fn func(ID)) {
	r.onRemove = append(r.onRemove, fn)
}

// Add creates an object of kind k with o layered over the kind defaults and returns its fresh ID.
func (r *Registry) Add(k Kind, o Options) (ID, error) {
	if !k.Valid() {
		return NilID, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	eff := o.Over(r.Defaults(k))
	obj := Object{
		ID:       newID(),
		Kind:     k,
		Position: *eff.Position,
		Scale:    *eff.Size,
		Color:    *eff.Color,
		Mass:     *eff.Mass,
	}
	mesh, err := r.renderer.CreateMesh(k, Material{Color: obj.Color, Opacity: 1})
	if err != nil {
		return NilID, fmt.Errorf("create %s mesh: %w", k, err)
	}
	mesh.SetTransform(obj.Position, obj.Rotation, obj.Scale)
	e := &entry{obj: obj, mesh: mesh}
	if obj.Mass > 0 {
		e.body = r.newBody(obj)
	}
	r.entries[obj.ID] = e
	r.order = append(r.order, obj.ID)
	return obj.ID, nil
}

func (r *Registry) newBody(obj Object) Body {
	if r.physics == nil {
		return nil
	}
	return r.physics.AddBody(obj.Position, obj.Quat(), obj.Scale, obj.Mass)
}

// Remove deletes id. Absent ids are ignored.
func (r *Registry) Remove(id ID) {
	e, ok := r.entries[id]
	if !ok {
		return
	}
	if e.body != nil && r.physics != nil {
		r.physics.RemoveBody(e.body)
	}
	r.renderer.RemoveMesh(e.mesh)
	delete(r.entries, id)
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	for _, fn := range r.onRemove {
		fn(id)
	}
}

// Clear removes every object.
func (r *Registry) Clear() {
	ids := make([]ID, len(r.order))
	copy(ids, r.order)
	for _, id := range ids {
		r.Remove(id)
	}
}

// Get returns a copy of the object with the given id.
func (r *Registry) Get(id ID) (Object, bool) {
	e, ok := r.entries[id]
	if !ok {
		return Object{}, false
	}
	return e.obj, true
}

// Has reports whether id is registered.
func (r *Registry) Has(id ID) bool {
	_, ok := r.entries[id]
	return ok
}

// Len returns the number of objects.
func (r *Registry) Len() int {
	return len(r.order)
}

// IDs returns the object ids in insertion order.
func (r *Registry) IDs() []ID {
	out := make([]ID, len(r.order))
	copy(out, r.order)
	return out
}

// Objects returns a snapshot of every object in insertion order.
func (r *Registry) Objects() []Object {
	out := make([]Object, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id].obj)
	}
	return out
}

// HasBody reports whether id has a physics body.
func (r *Registry) HasBody(id ID) bool {
	e, ok := r.entries[id]
	return ok && e.body != nil
}

// MeshOwner returns the id whose mesh is m (used to map a raycast hit back to an object).
func (r *Registry) MeshOwner(m Mesh) (ID, bool) {
	for _, id := range r.order {
		if r.entries[id].mesh == m {
			return id, true
		}
	}
	return NilID, false
}

// Lookup resolves a user reference: a 1-based index in insertion order,
// a full id, or a unique id prefix. A number outside the index range is tried
// as an id prefix, since short ids can be all digits.
func (r *Registry) Lookup(ref string) (ID, bool) {
	ref = strings.TrimSpace(strings.ToLower(ref))
	if ref == "" {
		return NilID, false
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(r.order) {
		return r.order[n-1], true
	}
	if id, err := ParseID(ref); err == nil {
		return id, r.Has(id)
	}
	match := NilID
	for _, id := range r.order {
		if strings.HasPrefix(id.String(), ref) {
			if match != NilID {
				return NilID, false
			}
			match = id
		}
	}
	return match, match != NilID
}

// SetTransform replaces the pose and scale of id and pushes them to the mesh and body.
func (r *Registry) SetTransform(id ID, position, rotation, scale mgl32.Vec3) bool {
	e, ok := r.entries[id]
	if !ok {
		return false
	}
	e.obj.Position = position
	e.obj.Rotation = rotation
	e.obj.Scale = scale
	e.mesh.SetTransform(position, rotation, scale)
	if e.body != nil {
		e.body.SetPose(position, e.obj.Quat())
		e.body.SetScale(scale)
	}
	return true
}

// SetColor changes the base color of id.
func (r *Registry) SetColor(id ID, c Color) bool {
	e, ok := r.entries[id]
	if !ok {
		return false
	}
	e.obj.Color = c
	m := Material{Color: c, Opacity: 1}
	if r.restyle != nil && r.restyle(id, m) {
		return true
	}
	e.mesh.SetMaterial(m)
	return true
}

// SetPhysics attaches or detaches a physics body. Turning physics on for a
// massless object gives it mass 1.
func (r *Registry) SetPhysics(id ID, on bool) bool {
	e, ok := r.entries[id]
	if !ok {
		return false
	}
	switch {
	case on && e.body == nil:
		if e.obj.Mass <= 0 {
			e.obj.Mass = 1
		}
		e.body = r.newBody(e.obj)
	case !on && e.body != nil:
		if r.physics != nil {
			r.physics.RemoveBody(e.body)
		}
		e.body = nil
		e.obj.Mass = 0
	}
	return true
}

// SyncPoses copies each body's pose onto its object and mesh. It iterates a
// snapshot of the ids so listeners that remove objects cannot invalidate it.
// Rotation is rewritten only when the body has actually turned, so the stored
// Euler angles keep their range while a body merely falls.
func (r *Registry) SyncPoses() {
	for _, id := range r.IDs() {
		e, ok := r.entries[id]
		if !ok || e.body == nil {
			continue
		}
		pos, rot := e.body.Pose()
		e.obj.Position = pos
		if !SameOrientation(rot, e.obj.Quat()) {
			e.obj.Rotation = QuatToEuler(rot)
		}
		e.mesh.SetTransform(e.obj.Position, e.obj.Rotation, e.obj.Scale)
	}
}

func (r *Registry) mesh(id ID) Mesh {
	if e, ok := r.entries[id]; ok {
		return e.mesh
	}
	return nil
}
