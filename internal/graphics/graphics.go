// Package graphics is the raylib side of the editor: window loop, camera view,
// mesh renderer, gizmo, overlays and keyboard/mouse polling.
package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the initial window.
type Window struct {
	Title      string
	Width      int32
	Height     int32
	Fullscreen bool
}

// Run opens the window and runs the main loop until it is closed. Each frame it
// calls update with the frame time, then clears the screen and calls draw.
// ESC is reserved for the terminal; close via the window button.
func Run(w Window, update func(dt float32), draw func()) {
	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	if w.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	width, height := w.Width, w.Height
	if w.Fullscreen {
		width, height = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	}
	rl.InitWindow(width, height, w.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(24, 26, 30, 255))
		draw()
		rl.EndDrawing()
	}
}

// SetFullscreen switches between fullscreen and windowed.
func SetFullscreen(on bool) {
	if rl.IsWindowFullscreen() != on {
		rl.ToggleFullscreen()
	}
}
