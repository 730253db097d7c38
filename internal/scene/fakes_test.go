package scene

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

type fakeMesh struct {
	kind     Kind
	pos      mgl32.Vec3
	rot      mgl32.Vec3
	scale    mgl32.Vec3
	material Material
	removed  bool
}

func (m *fakeMesh) SetTransform(p, r, s mgl32.Vec3) { m.pos, m.rot, m.scale = p, r, s }
func (m *fakeMesh) Material() Material              { return m.material }
func (m *fakeMesh) SetMaterial(mat Material)        { m.material = mat }

type fakeRenderer struct {
	meshes []*fakeMesh
	fail   bool
}

func (r *fakeRenderer) CreateMesh(k Kind, mat Material) (Mesh, error) {
	if r.fail {
		return nil, errors.New("no gpu")
	}
	m := &fakeMesh{kind: k, material: mat}
	r.meshes = append(r.meshes, m)
	return m, nil
}

func (r *fakeRenderer) RemoveMesh(m Mesh) {
	m.(*fakeMesh).removed = true
}

func (r *fakeRenderer) live() int {
	n := 0
	for _, m := range r.meshes {
		if !m.removed {
			n++
		}
	}
	return n
}

type fakeBody struct {
	pos     mgl32.Vec3
	rot     mgl32.Quat
	scale   mgl32.Vec3
	removed bool
}

func (b *fakeBody) Pose() (mgl32.Vec3, mgl32.Quat)     { return b.pos, b.rot }
func (b *fakeBody) SetPose(p mgl32.Vec3, q mgl32.Quat) { b.pos, b.rot = p, q }
func (b *fakeBody) SetScale(s mgl32.Vec3)              { b.scale = s }

// fakePhysics drops every body by one unit per Step.
type fakePhysics struct {
	bodies []*fakeBody
	steps  int
}

func (p *fakePhysics) AddBody(pos mgl32.Vec3, rot mgl32.Quat, scale mgl32.Vec3, mass float32) Body {
	b := &fakeBody{pos: pos, rot: rot, scale: scale}
	p.bodies = append(p.bodies, b)
	return b
}

func (p *fakePhysics) RemoveBody(b Body) { b.(*fakeBody).removed = true }

func (p *fakePhysics) Step(dt float32) {
	p.steps++
	for _, b := range p.bodies {
		if !b.removed {
			b.pos[1]--
		}
	}
}

type fakeGizmo struct {
	ids      []ID
	mode     Mode
	attached bool
	attaches int
}

func (g *fakeGizmo) Attach(ids []ID, m Mode) {
	g.ids, g.mode, g.attached = ids, m, true
	g.attaches++
}

func (g *fakeGizmo) Detach() {
	g.ids, g.attached = nil, false
}

func newTestEditor() (*Editor, *fakeRenderer, *fakeGizmo) {
	r := &fakeRenderer{}
	g := &fakeGizmo{}
	return New(Config{Renderer: r, Gizmo: g}), r, g
}

func meshOf(reg *Registry, id ID) *fakeMesh {
	m := reg.mesh(id)
	if m == nil {
		return nil
	}
	return m.(*fakeMesh)
}
