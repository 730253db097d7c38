package scene

import "github.com/go-gl/mathgl/mgl32"

// Material is the visual treatment a mesh is drawn with. Selection swaps it
// for a highlight and restores the captured value on deselect.
type Material struct {
	Color     Color
	Opacity   float32
	Wireframe bool
}

// DefaultHighlight is the green half-transparent wireframe used for selected objects.
var DefaultHighlight = Material{Color: RGB(0x00, 0xff, 0x00), Opacity: 0.5, Wireframe: true}

// Mesh is a renderable handle owned by the renderer collaborator.
type Mesh interface {
	SetTransform(position, rotation, scale mgl32.Vec3)
	Material() Material
	SetMaterial(Material)
}

// Renderer creates and releases meshes. Drawing happens on the renderer's own schedule.
type Renderer interface {
	CreateMesh(kind Kind, m Material) (Mesh, error)
	RemoveMesh(Mesh)
}

// Body is a physical body owned by the physics collaborator.
type Body interface {
	Pose() (mgl32.Vec3, mgl32.Quat)
	SetPose(position mgl32.Vec3, rotation mgl32.Quat)
	SetScale(scale mgl32.Vec3)
}

// Physics simulates bodies. Step advances the simulation by dt seconds.
type Physics interface {
	AddBody(position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3, mass float32) Body
	RemoveBody(Body)
	Step(dt float32)
}

// Gizmo exposes the manipulation handles for the selected objects.
type Gizmo interface {
	Attach(ids []ID, mode Mode)
	Detach()
}

type noGizmo struct{}

func (noGizmo) Attach([]ID, Mode) {}
func (noGizmo) Detach()           {}
