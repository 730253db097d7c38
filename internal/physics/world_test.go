package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

var unit = mgl32.Vec3{1, 1, 1}

func TestGravityIntegration(t *testing.T) {
	w := NewWorld()
	b := w.AddBody(mgl32.Vec3{0, 10, 0}, mgl32.QuatIdent(), unit, 1)
	w.Step(1)
	pos, _ := b.Pose()
	if !mgl32.FloatEqualThreshold(pos[1], 0.2, 1e-5) {
		t.Errorf("y = %v, want 0.2", pos[1])
	}
}

func TestFloorStopsFall(t *testing.T) {
	w := NewWorld()
	w.SetFloor(0)
	b := w.AddBody(mgl32.Vec3{0, 1, 0}, mgl32.QuatIdent(), unit, 1).(*Body)
	for i := 0; i < 120; i++ {
		w.Step(1.0 / 60)
	}
	if !mgl32.FloatEqualThreshold(b.Position[1], 0.5, 1e-5) {
		t.Errorf("resting y = %v, want 0.5", b.Position[1])
	}
	if b.Velocity[1] != 0 {
		t.Errorf("resting vy = %v, want 0", b.Velocity[1])
	}
}

func TestStaticBodyDoesNotMove(t *testing.T) {
	w := NewWorld()
	b := w.AddBody(mgl32.Vec3{0, 5, 0}, mgl32.QuatIdent(), unit, 0).(*Body)
	w.Step(1)
	if !b.Static || b.Position != (mgl32.Vec3{0, 5, 0}) {
		t.Errorf("static body = %+v", b)
	}
}

func TestCollisionPushesApart(t *testing.T) {
	w := NewWorld()
	w.SetGravity(mgl32.Vec3{})
	ground := w.AddBody(mgl32.Vec3{0, 0, 0}, mgl32.QuatIdent(), mgl32.Vec3{10, 1, 10}, 0).(*Body)
	box := w.AddBody(mgl32.Vec3{0, 0.8, 0}, mgl32.QuatIdent(), unit, 1).(*Body)
	w.Step(1.0 / 60)
	if ground.Position != (mgl32.Vec3{}) {
		t.Errorf("static ground moved to %v", ground.Position)
	}
	if box.Box().Min[1] < ground.Box().Max[1]-1e-5 {
		t.Errorf("box still overlaps ground: %v", box.Position)
	}

	// the body listed first is above; it must be pushed up, not down
	w2 := NewWorld()
	w2.SetGravity(mgl32.Vec3{})
	top := w2.AddBody(mgl32.Vec3{0, 0.8, 0}, mgl32.QuatIdent(), unit, 1).(*Body)
	w2.AddBody(mgl32.Vec3{0, 0, 0}, mgl32.QuatIdent(), mgl32.Vec3{10, 1, 10}, 0)
	w2.Step(1.0 / 60)
	if top.Position[1] < 0.8 {
		t.Errorf("top body pushed down to %v", top.Position[1])
	}
}

func TestRemoveBody(t *testing.T) {
	w := NewWorld()
	a := w.AddBody(mgl32.Vec3{}, mgl32.QuatIdent(), unit, 1)
	b := w.AddBody(mgl32.Vec3{}, mgl32.QuatIdent(), unit, 1)
	w.RemoveBody(a)
	w.RemoveBody(a)
	if len(w.Bodies) != 1 || w.Bodies[0] != b {
		t.Errorf("Bodies = %v", w.Bodies)
	}
}

func TestSetPoseClearsVelocity(t *testing.T) {
	w := NewWorld()
	b := w.AddBody(mgl32.Vec3{0, 10, 0}, mgl32.QuatIdent(), unit, 1).(*Body)
	w.Step(0.5)
	b.SetPose(mgl32.Vec3{1, 2, 3}, mgl32.QuatIdent())
	if b.Velocity != (mgl32.Vec3{}) {
		t.Errorf("Velocity = %v", b.Velocity)
	}
}
