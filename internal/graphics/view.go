package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridExtent = 50
	gridMajor  = 10
)

var (
	gridMinorColor = rl.NewColor(128, 128, 128, 50)
	gridMajorColor = rl.NewColor(160, 160, 160, 120)
	axisColors     = [3]rl.Color{
		rl.NewColor(220, 80, 80, 220),
		rl.NewColor(80, 220, 80, 220),
		rl.NewColor(80, 80, 220, 220),
	}
)

// View holds the editor camera and draws the world backdrop: skybox and grid.
// Update flies the camera while the right mouse button is held; Draw renders
// between BeginMode3D and EndMode3D.
type View struct {
	Camera      rl.Camera3D
	GridVisible bool
	flying      bool
	sky         *skybox
}

// NewView returns a view looking at the origin from (10,10,10) with the grid on.
// A skybox is drawn when assets/skybox/skybox.png or .jpg exists.
func NewView() *View {
	return &View{
		Camera: rl.Camera3D{
			Position:   rl.NewVector3(10, 10, 10),
			Target:     rl.NewVector3(0, 0, 0),
			Up:         rl.NewVector3(0, 1, 0),
			Fovy:       45,
			Projection: rl.CameraPerspective,
		},
		GridVisible: true,
		sky:         findSkybox(),
	}
}

// SetGridVisible sets whether the editor grid is drawn.
func (s *View) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// Update runs once per frame. While the right mouse button is held the cursor is
// captured and raylib's free camera reads mouse look and WASD; otherwise the
// cursor stays free for picking. With keyboard false (terminal open) the camera stays put.
func (s *View) Update(keyboard bool) {
	fly := keyboard && rl.IsMouseButtonDown(rl.MouseButtonRight)
	if fly != s.flying {
		if fly {
			rl.DisableCursor()
		} else {
			rl.EnableCursor()
		}
		s.flying = fly
	}
	if fly {
		rl.UpdateCamera(&s.Camera, rl.CameraFree)
	}
}

// Ray returns the pick ray under the mouse cursor.
func (s *View) Ray() rl.Ray {
	return rl.GetScreenToWorldRay(rl.GetMousePosition(), s.Camera)
}

// Draw renders the skybox, the grid when visible, then world.
func (s *View) Draw(world func()) {
	rl.BeginMode3D(s.Camera)
	if s.sky != nil {
		s.sky.draw(s.Camera)
	}
	if s.GridVisible {
		drawGrid()
	}
	if world != nil {
		world()
	}
	rl.EndMode3D()
}

// drawGrid draws unit lines on the XZ plane, brighter every gridMajor units,
// and the three world axes through the origin.
func drawGrid() {
	const e = float32(gridExtent)
	for i := -gridExtent; i <= gridExtent; i++ {
		c := gridMinorColor
		if i%gridMajor == 0 {
			c = gridMajorColor
		}
		f := float32(i)
		rl.DrawLine3D(rl.NewVector3(f, 0, -e), rl.NewVector3(f, 0, e), c)
		rl.DrawLine3D(rl.NewVector3(-e, 0, f), rl.NewVector3(e, 0, f), c)
	}
	for axis, c := range axisColors {
		var from, to [3]float32
		from[axis], to[axis] = -e, e
		rl.DrawLine3D(rl.NewVector3(from[0], from[1], from[2]), rl.NewVector3(to[0], to[1], to[2]), c)
	}
}
