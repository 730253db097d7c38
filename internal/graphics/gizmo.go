package graphics

import (
	"github.com/go-gl/mathgl/mgl32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"corebell/internal/scene"
)

const (
	handleLength = 1.5
	handleRadius = 0.12
	// rotateSpeed is radians per pixel of drag.
	rotateSpeed  = 0.02
)

// ringTilt rotates raylib's XY-plane circle so ring i is perpendicular to axis i.
var ringTilt = [3]struct {
	axis  rl.Vector3
	angle float32
}{
	{rl.NewVector3(0, 1, 0), 90},
	{rl.NewVector3(1, 0, 0), 90},
	{rl.NewVector3(0, 0, 1), 0},
}

var axisColors = [3]rl.Color{
	rl.NewColor(230, 70, 70, 255),
	rl.NewColor(70, 230, 70, 255),
	rl.NewColor(70, 110, 240, 255),
}

// Gizmo implements scene.Gizmo: three axis handles at the centroid of the
// attached objects, drawn as arrows (translate), rings (rotate) or cubes (scale).
// Dragging a handle nudges the selection along that axis.
type Gizmo struct {
	ids      []scene.ID
	mode     scene.Mode
	dragAxis int
	attached bool
}

var _ scene.Gizmo = (*Gizmo)(nil)

// NewGizmo returns a detached gizmo.
func NewGizmo() *Gizmo {
	return &Gizmo{dragAxis: -1}
}

func (g *Gizmo) Attach(ids []scene.ID, mode scene.Mode) {
	g.ids = append(g.ids[:0], ids...)
	g.mode = mode
	g.attached = true
}

func (g *Gizmo) Detach() {
	g.ids = g.ids[:0]
	g.attached = false
	g.dragAxis = -1
}

// Dragging reports whether a handle is held, so clicks are not treated as picks.
func (g *Gizmo) Dragging() bool {
	return g.dragAxis >= 0
}

func (g *Gizmo) center(reg *scene.Registry) (mgl32.Vec3, bool) {
	var sum mgl32.Vec3
	n := 0
	for _, id := range g.ids {
		if o, ok := reg.Get(id); ok {
			sum = sum.Add(o.Position)
			n++
		}
	}
	if n == 0 {
		return sum, false
	}
	return sum.Mul(1 / float32(n)), true
}

func handleTip(c mgl32.Vec3, axis int) rl.Vector3 {
	tip := c
	tip[axis] += handleLength
	return vec(tip)
}

func vec(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}

// Update starts, continues or ends a handle drag. It returns true while the
// gizmo owns the mouse.
func (g *Gizmo) Update(view *View, reg *scene.Registry, tr *scene.Transform) bool {
	if !g.attached {
		return false
	}
	c, ok := g.center(reg)
	if !ok {
		return false
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		ray := view.Ray()
		for axis := 0; axis < 3; axis++ {
			if rl.GetRayCollisionSphere(ray, handleTip(c, axis), handleRadius*2).Hit {
				g.dragAxis = axis
				break
			}
		}
	}
	if g.dragAxis < 0 {
		return false
	}
	if !rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		g.dragAxis = -1
		return true
	}
	delta := rl.GetMouseDelta()
	if delta.X == 0 && delta.Y == 0 {
		return true
	}
	from := rl.GetWorldToScreen(vec(c), view.Camera)
	to := rl.GetWorldToScreen(handleTip(c, g.dragAxis), view.Camera)
	axis := mgl32.Vec2{to.X - from.X, to.Y - from.Y}
	pixels := axis.Len()
	if pixels < 1 {
		return true
	}
	along := mgl32.Vec2{delta.X, delta.Y}.Dot(axis.Mul(1 / pixels))
	amount := along * handleLength / pixels
	if g.mode == scene.ModeRotate {
		amount = along * rotateSpeed
	}
	tr.Nudge(g.dragAxis, amount)
	return true
}

// Draw renders the handles. Must be called between BeginMode3D and EndMode3D.
func (g *Gizmo) Draw(reg *scene.Registry) {
	if !g.attached {
		return
	}
	c, ok := g.center(reg)
	if !ok {
		return
	}
	origin := vec(c)
	for axis := 0; axis < 3; axis++ {
		col := axisColors[axis]
		if axis == g.dragAxis {
			col = rl.Yellow
		}
		tip := handleTip(c, axis)
		switch g.mode {
		case scene.ModeTranslate:
			rl.DrawLine3D(origin, tip, col)
			end := c
			end[axis] += handleLength + 0.3
			rl.DrawCylinderEx(tip, vec(end), handleRadius, 0, 8, col)
		case scene.ModeRotate:
			rl.DrawCircle3D(origin, handleLength, ringTilt[axis].axis, ringTilt[axis].angle, col)
			rl.DrawSphere(tip, handleRadius, col)
		case scene.ModeScale:
			rl.DrawLine3D(origin, tip, col)
			rl.DrawCube(tip, handleRadius*2, handleRadius*2, handleRadius*2, col)
		}
	}
}
