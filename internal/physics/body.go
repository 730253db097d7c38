package physics

import "github.com/go-gl/mathgl/mgl32"

// Body is a rigid body with position, velocity and an axis-aligned box sized by scale.
// Static bodies do not move and are not affected by gravity. Orientation is
// carried for the editor but does not affect collision.
type Body struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Velocity mgl32.Vec3
	Scale    mgl32.Vec3
	Mass     float32
	Static   bool
}

// NewBody returns a body at rest. A mass of zero or less makes the body static.
func NewBody(position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3, mass float32) *Body {
	return &Body{
		Position: position,
		Rotation: rotation,
		Scale:    scale,
		Mass:     mass,
		Static:   mass <= 0,
	}
}

// Pose returns the current position and orientation.
func (b *Body) Pose() (mgl32.Vec3, mgl32.Quat) {
	return b.Position, b.Rotation
}

// SetPose teleports the body and clears its velocity.
func (b *Body) SetPose(position mgl32.Vec3, rotation mgl32.Quat) {
	b.Position = position
	b.Rotation = rotation
	b.Velocity = mgl32.Vec3{}
}

// SetScale resizes the collision box.
func (b *Body) SetScale(scale mgl32.Vec3) {
	b.Scale = scale
}

// Box returns the body's axis-aligned bounds.
func (b *Body) Box() AABB {
	half := mgl32.Vec3{}
	for i := 0; i < 3; i++ {
		s := b.Scale[i]
		if s == 0 {
			s = 1
		}
		if s < 0 {
			s = -s
		}
		half[i] = s * 0.5
	}
	return AABB{Min: b.Position.Sub(half), Max: b.Position.Add(half)}
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl32.Vec3
}

// Overlaps reports whether the boxes intersect with positive volume.
func (a AABB) Overlaps(b AABB) bool {
	for i := 0; i < 3; i++ {
		if a.Max[i] <= b.Min[i] || b.Max[i] <= a.Min[i] {
			return false
		}
	}
	return true
}
