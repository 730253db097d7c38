package physics

import (
	"corebell/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

var _ scene.Physics = (*World)(nil)

// World holds a set of bodies and runs a simple physics step: gravity, integration, floor and AABB collision.
type World struct {
	Gravity mgl32.Vec3
	Bodies  []*Body

	floor    float32
	hasFloor bool
}

// NewWorld returns a world with gravity (0, -9.8, 0) and no floor.
func NewWorld() *World {
	return &World{Gravity: mgl32.Vec3{0, -9.8, 0}}
}

// SetGravity sets the gravity vector.
func (w *World) SetGravity(g mgl32.Vec3) {
	w.Gravity = g
}

// SetFloor stops dynamic bodies from falling below y.
func (w *World) SetFloor(y float32) {
	w.floor = y
	w.hasFloor = true
}

// ClearFloor removes the floor; bodies fall until they hit another body.
func (w *World) ClearFloor() {
	w.hasFloor = false
}

// AddBody creates a body and adds it to the world.
func (w *World) AddBody(position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3, mass float32) scene.Body {
	b := NewBody(position, rotation, scale, mass)
	w.Bodies = append(w.Bodies, b)
	return b
}

// RemoveBody drops b from the world. Unknown bodies are ignored.
func (w *World) RemoveBody(sb scene.Body) {
	b, ok := sb.(*Body)
	if !ok {
		return
	}
	for i, o := range w.Bodies {
		if o == b {
			w.Bodies = append(w.Bodies[:i], w.Bodies[i+1:]...)
			return
		}
	}
}

// penetrationAxis returns the overlap amount and axis index (0=X, 1=Y, 2=Z) for the minimum penetration.
// If no overlap, returns (0, -1).
func penetrationAxis(a, b AABB) (depth float32, axis int) {
	axis = -1
	for i := 0; i < 3; i++ {
		o := min(a.Max[i], b.Max[i]) - max(a.Min[i], b.Min[i])
		if o <= 0 {
			return 0, -1
		}
		if axis < 0 || o < depth {
			depth, axis = o, i
		}
	}
	return depth, axis
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float32) {
	if dt <= 0 {
		return
	}
	for _, b := range w.Bodies {
		if b.Static {
			continue
		}
		b.Velocity = b.Velocity.Add(w.Gravity.Mul(dt))
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
		if w.hasFloor {
			box := b.Box()
			if box.Min[1] < w.floor {
				b.Position[1] += w.floor - box.Min[1]
				if b.Velocity[1] < 0 {
					b.Velocity[1] = 0
				}
			}
		}
	}

	// Resolve overlapping pairs by pushing them apart along the minimum penetration axis.
	for i := 0; i < len(w.Bodies); i++ {
		bi := w.Bodies[i]
		for j := i + 1; j < len(w.Bodies); j++ {
			bj := w.Bodies[j]
			if bi.Static && bj.Static {
				continue
			}
			boxI, boxJ := bi.Box(), bj.Box()
			if !boxI.Overlaps(boxJ) {
				continue
			}
			depth, axis := penetrationAxis(boxI, boxJ)
			if axis < 0 {
				continue
			}
			// sign points from i towards j
			sign := float32(1)
			if bj.Position[axis] < bi.Position[axis] {
				sign = -1
			}
			var moveI, moveJ float32
			switch {
			case bi.Static:
				moveJ = depth
			case bj.Static:
				moveI = -depth
			default:
				total := bi.Mass + bj.Mass
				moveI = -depth * (bj.Mass / total)
				moveJ = depth * (bi.Mass / total)
			}
			bi.Position[axis] += sign * moveI
			bj.Position[axis] += sign * moveJ
			if !bi.Static {
				bi.Velocity[axis] = 0
			}
			if !bj.Static {
				bj.Velocity[axis] = 0
			}
		}
	}
}
