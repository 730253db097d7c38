package graphics

import (
	"github.com/go-gl/mathgl/mgl32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"corebell/internal/scene"
)

// mesh is the handle handed to the scene registry. It only records state;
// the GPU side is shared per kind and drawn by Renderer.Render.
type mesh struct {
	kind     scene.Kind
	position mgl32.Vec3
	rotation mgl32.Vec3
	scale    mgl32.Vec3
	material scene.Material
}

func (m *mesh) SetTransform(p, r, s mgl32.Vec3) { m.position, m.rotation, m.scale = p, r, s }
func (m *mesh) Material() scene.Material        { return m.material }
func (m *mesh) SetMaterial(mat scene.Material)  { m.material = mat }

// transform is offset, then scale, then XYZ rotation, then translation.
func (m *mesh) transform(offset mgl32.Vec3) rl.Matrix {
	t := rl.MatrixScale(m.scale[0], m.scale[1], m.scale[2])
	if offset != (mgl32.Vec3{}) {
		t = rl.MatrixMultiply(rl.MatrixTranslate(offset[0], offset[1], offset[2]), t)
	}
	t = rl.MatrixMultiply(t, toMatrix(scene.EulerToQuat(m.rotation).Mat4()))
	return rl.MatrixMultiply(t, rl.MatrixTranslate(m.position[0], m.position[1], m.position[2]))
}

// toMatrix copies a column-major mgl32 matrix into raylib's layout. Both
// libraries store columns contiguously and transform column vectors.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

// kindModel is the GPU mesh for one primitive kind. offset centers meshes
// that raylib generates with their base at Y=0.
type kindModel struct {
	mesh   rl.Mesh
	offset mgl32.Vec3
}

// generators build a unit-sized mesh per kind. The three platonic solids are
// approximated with raylib's low-resolution sphere and cone generators.
var generators = map[scene.Kind]func() kindModel{
	scene.KindCube:     func() kindModel { return kindModel{mesh: rl.GenMeshCube(1, 1, 1)} },
	scene.KindSphere:   func() kindModel { return kindModel{mesh: rl.GenMeshSphere(0.5, 16, 16)} },
	scene.KindCylinder: func() kindModel { return kindModel{mesh: rl.GenMeshCylinder(0.5, 1, 16), offset: mgl32.Vec3{0, -0.5, 0}} },
	scene.KindCone:     func() kindModel { return kindModel{mesh: rl.GenMeshCone(0.5, 1, 16), offset: mgl32.Vec3{0, -0.5, 0}} },
	scene.KindTorus:    func() kindModel { return kindModel{mesh: rl.GenMeshTorus(0.25, 1, 16, 32)} },
	scene.KindPlane:    func() kindModel { return kindModel{mesh: rl.GenMeshPlane(1, 1, 1, 1)} },
	scene.KindIcosahedron: func() kindModel {
		return kindModel{mesh: rl.GenMeshSphere(0.5, 3, 5)}
	},
	scene.KindDodecahedron: func() kindModel {
		return kindModel{mesh: rl.GenMeshSphere(0.5, 4, 6)}
	},
	scene.KindTetrahedron: func() kindModel {
		return kindModel{mesh: rl.GenMeshCone(0.5, 1, 3), offset: mgl32.Vec3{0, -0.5, 0}}
	},
}

// Renderer implements scene.Renderer with raylib. Meshes may be created before
// the window exists; GPU resources are allocated on the first Render.
type Renderer struct {
	models   map[scene.Kind]kindModel
	meshes   []*mesh
	mtl      rl.Material
	ready    bool
	viewPos  [3]float32
	lightDir [3]float32
	imports  []importedModel
}

var _ scene.Renderer = (*Renderer)(nil)

// NewRenderer returns a renderer lit from above-right.
func NewRenderer() *Renderer {
	return &Renderer{
		models:   make(map[scene.Kind]kindModel),
		lightDir: [3]float32{0.5, 1, 0.5},
	}
}

// CreateMesh registers a mesh of kind k. It fails only for kinds without a generator.
func (r *Renderer) CreateMesh(k scene.Kind, mat scene.Material) (scene.Mesh, error) {
	if _, ok := generators[k]; !ok {
		return nil, scene.ErrUnknownKind
	}
	m := &mesh{kind: k, scale: mgl32.Vec3{1, 1, 1}, material: mat}
	r.meshes = append(r.meshes, m)
	return m, nil
}

// RemoveMesh stops drawing m.
func (r *Renderer) RemoveMesh(sm scene.Mesh) {
	for i, m := range r.meshes {
		if m == sm {
			r.meshes = append(r.meshes[:i], r.meshes[i+1:]...)
			return
		}
	}
}

// Len returns the number of live meshes.
func (r *Renderer) Len() int {
	return len(r.meshes)
}

func (r *Renderer) ensure() {
	if r.ready {
		return
	}
	r.mtl = rl.LoadMaterialDefault()
	if shader := loadLitShader(); rl.IsShaderValid(shader) {
		r.mtl.Shader = shader
	}
	r.ready = true
}

func (r *Renderer) model(k scene.Kind) kindModel {
	km, ok := r.models[k]
	if !ok {
		km = generators[k]()
		r.models[k] = km
	}
	return km
}

// SetView sets camera position for this frame's specular term.
func (r *Renderer) SetView(cam rl.Camera3D) {
	r.viewPos = [3]float32{cam.Position.X, cam.Position.Y, cam.Position.Z}
}

// Render draws every mesh. Must be called between BeginMode3D and EndMode3D.
// Opaque meshes are drawn first, then translucent and wireframe ones.
func (r *Renderer) Render() {
	r.ensure()
	r.setLitShaderUniforms(r.mtl.Shader)
	var late []*mesh
	for _, m := range r.meshes {
		if m.material.Wireframe || m.material.Opacity < 1 {
			late = append(late, m)
			continue
		}
		r.draw(m)
	}
	r.drawImports()
	for _, m := range late {
		r.draw(m)
	}
}

func (r *Renderer) draw(m *mesh) {
	km := r.model(m.kind)
	c := m.material.Color
	alpha := m.material.Opacity
	if alpha <= 0 || alpha > 1 {
		alpha = 1
	}
	if albedo := r.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.NewColor(c[0], c[1], c[2], uint8(alpha*255))
	}
	if m.material.Wireframe {
		rl.EnableWireMode()
		rl.DrawMesh(km.mesh, r.mtl, m.transform(km.offset))
		rl.DisableWireMode()
		return
	}
	rl.DrawMesh(km.mesh, r.mtl, m.transform(km.offset))
}

// Pick returns the nearest mesh hit by ray, if any.
func (r *Renderer) Pick(ray rl.Ray) (scene.Mesh, bool) {
	var best *mesh
	var bestDist float32
	for _, m := range r.meshes {
		km := r.model(m.kind)
		hit := rl.GetRayCollisionMesh(ray, km.mesh, m.transform(km.offset))
		if hit.Hit && (best == nil || hit.Distance < bestDist) {
			best, bestDist = m, hit.Distance
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}
